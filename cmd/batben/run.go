package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/batben/batben/pkg/bracket"
	"github.com/batben/batben/pkg/config"
	"github.com/batben/batben/pkg/hostinfo"
	"github.com/batben/batben/pkg/report"
	"github.com/batben/batben/pkg/sleep"
	"github.com/batben/batben/pkg/workload"
)

// runOptions selects the phases of one measurement run.
type runOptions struct {
	duration    time.Duration
	sleep       bool
	wake        bool
	workload    string
	sleepMethod sleep.Method
	sleepMode   string
}

// runPhases measures the sleep phase, then the wake phase, each bracketed by
// two battery readings. It stops at the first error.
func runPhases(cmd *cobra.Command, conf config.Config, o runOptions) error {
	if !o.sleep && !o.wake {
		return fmt.Errorf("nothing to do: both the sleep and the wake portion are disabled")
	}
	if o.duration <= 0 {
		return fmt.Errorf("invalid duration %s: must be positive", o.duration)
	}

	reader, kind, err := newReader(conf)
	if err != nil {
		return err
	}

	// Build everything up front, so a typo does not cost a full sleep phase.
	var sleeper sleep.Sleeper
	if o.sleep {
		sleeper, err = sleep.New(o.sleepMethod, o.sleepMode)
		if err != nil {
			return err
		}
	}
	var wl workload.Workload
	if o.wake {
		wl, err = workload.New(o.workload, conf.WorkloadParams())
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	rep := report.New(string(kind), hostinfo.Collect())
	if !jsonOutput {
		report.PrintHeader(out, rep)
	}

	if o.sleep {
		logrus.Infof("measuring battery drain during %s of sleep", o.duration)
		_, res, err := bracket.Measure(reader, sleep.Operation(sleeper, o.duration))
		if err != nil {
			return fmt.Errorf("sleep portion failed: %w", err)
		}
		p := report.Phase{Name: report.PhaseSleep, Result: res}
		rep.Add(p)
		if !jsonOutput {
			report.PrintPhase(out, p)
		}
	}

	if o.wake {
		logrus.Infof("running simulated workload %q for %s", wl.Name(), o.duration)
		summary, res, err := bracket.Measure(reader, workload.Operation(wl, o.duration))
		if err != nil {
			return fmt.Errorf("wake portion failed: %w", err)
		}
		p := report.Phase{Name: report.PhaseWake, Result: res, Workload: &summary}
		rep.Add(p)
		if !jsonOutput {
			report.PrintPhase(out, p)
		}
	}

	if jsonOutput {
		return report.WriteJSON(out, rep)
	}
	return nil
}

// durationFlag returns --time in seconds if given, else the configured duration.
func durationFlag(cmd *cobra.Command, seconds int, conf config.Config) time.Duration {
	if cmd.Flags().Changed("time") {
		return time.Duration(seconds) * time.Second
	}
	return conf.Duration()
}
