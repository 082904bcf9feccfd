package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/batben/batben/pkg/powerinfo"
)

type statusJSON struct {
	Reader   string                 `json:"reader"`
	Percent  float64                `json:"percent"`
	EnergyWh float64                `json:"energyWh"`
	State    powerinfo.BatteryState `json:"state"`
}

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		GroupID: gOther,
		Short:   "Print the current battery reading",
		Long:    `Read the battery once and print what the configured reader sees. Useful to check a reader works before a long run.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}

			reader, kind, err := newReader(conf)
			if err != nil {
				return err
			}

			r, err := reader.Read()
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(statusJSON{
					Reader:   string(kind),
					Percent:  r.Percent,
					EnergyWh: r.EnergyWh,
					State:    r.State,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, bold("Battery status:"))
			fmt.Fprintf(out, "  Reader: %s\n", kind)
			fmt.Fprintf(out, "  Current charge: %s\n", bold("%.1f%%", r.Percent))
			if r.EnergyWh > 0 {
				fmt.Fprintf(out, "  Energy: %s\n", bold("%.2f Wh", r.EnergyWh))
			} else {
				fmt.Fprintf(out, "  Energy: %s\n", "not reported")
			}
			fmt.Fprintf(out, "  State: %s\n", bold("%s", stateText(r.State)))
			return nil
		},
	}
}

func stateText(s powerinfo.BatteryState) string {
	switch s {
	case powerinfo.Charging:
		return color.GreenString("charging")
	case powerinfo.Discharging:
		return color.RedString("discharging")
	default:
		return s.String()
	}
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
