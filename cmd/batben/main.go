package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/batben/batben/pkg/config"
	"github.com/batben/batben/pkg/powerinfo"
)

var (
	logLevel   = "info"
	configPath = defaultConfigPath()
	readerKind = ""
	jsonOutput = false

	buildReader = powerinfo.NewReader
)

var (
	gMeasure      = "Measure:"
	gOther        = "Other:"
	commandGroups = []string{
		gMeasure,
		gOther,
	}
)

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "batben.json"
	}
	return filepath.Join(dir, "batben.json")
}

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	if errors.Is(err, powerinfo.ErrNoBattery) {
		fmt.Fprintln(os.Stderr, "\nError: No battery found or can't read battery level")
		fmt.Fprintln(os.Stderr, "Is this a laptop?")
	} else if errors.Is(err, powerinfo.ErrReaderUnavailable) {
		fmt.Fprintln(os.Stderr, "\nError: Can't query the battery")
		fmt.Fprintln(os.Stderr, "  - Is the UPower daemon running? ('systemctl status upower')")
		fmt.Fprintf(os.Stderr, "  - Or try another reader with '--reader' (one of %v)\n", powerinfo.ReaderKinds)
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batben",
		Short: "batben measures how much battery your laptop spends asleep and awake",
		Long: `batben measures how much battery your laptop spends asleep and awake.

It reads the battery level and energy before and after suspending the
machine or running a synthetic developer workload, and reports the
difference. It is a rough heuristic to compare power tuning, not a lab.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&readerKind, "reader", "", fmt.Sprintf("battery reader, one of %v (default from config)", powerinfo.ReaderKinds))
	globalFlags.BoolVar(&jsonOutput, "json", false, "print results as JSON")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewVersionCommand(),
		NewBenchCommand(),
		NewSleepCheckCommand(),
		NewStatusCommand(),
		NewConfigCommand(),
	)

	return cmd
}

// loadConfig reads the config file given by --config.
func loadConfig() (*config.File, error) {
	conf, err := config.NewFile(configPath)
	if err != nil {
		return nil, err
	}
	logrus.WithFields(conf.LogrusFields()).Debug("config loaded")
	return conf, nil
}

// newReader builds the battery reader from --reader, falling back to the config.
func newReader(conf config.Config) (powerinfo.Reader, powerinfo.ReaderKind, error) {
	kind := conf.Reader()
	if readerKind != "" {
		kind = powerinfo.ReaderKind(readerKind)
	}
	r, err := buildReader(kind, conf.UPowerDevice())
	return r, kind, err
}
