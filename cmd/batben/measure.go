package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/batben/batben/pkg/sleep"
	"github.com/batben/batben/pkg/workload"
)

func NewBenchCommand() *cobra.Command {
	var (
		seconds int
		name    string
	)

	cmd := &cobra.Command{
		Use:     "bench",
		Short:   "Run a workload and report its battery impact",
		GroupID: gMeasure,
		Long: `Run a synthetic workload and report its battery impact.

Workloads:
  quick   sysbench CPU test for a fifth of the time, idle for the rest
  cpu     prime counting
  memory  allocate, fill and drop large slices
  io      write, fsync, read and delete small files
  net     HTTP GETs against a fixed URL
  dev     a developer: mostly idle, with cpu, io and memory bursts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("workload") {
				name = conf.Workload()
			}

			return runPhases(cmd, conf, runOptions{
				duration: durationFlag(cmd, seconds, conf),
				wake:     true,
				workload: name,
			})
		},
	}

	f := cmd.Flags()
	f.IntVarP(&seconds, "time", "t", 30, "run benchmark for N seconds (default from config)")
	f.StringVarP(&name, "workload", "w", workload.NameQuick, fmt.Sprintf("which workload pattern to run, one of %v (default from config)", workload.Names))

	return cmd
}

func NewSleepCheckCommand() *cobra.Command {
	var (
		seconds int
		noSleep bool
		noWake  bool
		name    string
		method  string
		mode    string
	)

	cmd := &cobra.Command{
		Use:     "sleep-check",
		Short:   "Measure battery during suspend and after resume",
		GroupID: gMeasure,
		Long: `Measure battery drain while suspended, then while awake.

The machine is suspended for the given time and woken up by the RTC alarm.
Then a workload runs for the same time. Both portions are measured and
reported separately.

Suspending needs root with rtcwake. With '--sleep-method logind' the suspend
goes through systemd-logind, but arming the wake alarm still needs write
access to /sys/class/rtc/rtc0/wakealarm.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := loadConfig()
			if err != nil {
				return err
			}

			o := runOptions{
				duration:    durationFlag(cmd, seconds, conf),
				sleep:       !noSleep,
				wake:        !noWake,
				workload:    name,
				sleepMethod: conf.SleepMethod(),
				sleepMode:   conf.SleepMode(),
			}
			if cmd.Flags().Changed("sleep-method") {
				o.sleepMethod = sleep.Method(method)
			}
			if cmd.Flags().Changed("sleep-mode") {
				o.sleepMode = mode
			}

			return runPhases(cmd, conf, o)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&seconds, "time", "t", 60, "how long to stay in each state in seconds (default from config)")
	f.BoolVar(&noSleep, "no-sleep", false, "skip the suspend portion")
	f.BoolVar(&noWake, "no-wake", false, "skip the post-resume measurement")
	f.StringVarP(&name, "workload", "w", workload.NameDev, fmt.Sprintf("workload for the wake portion, one of %v", workload.Names))
	f.StringVar(&method, "sleep-method", string(sleep.MethodRTCWake), fmt.Sprintf("how to suspend, one of %v (default from config)", sleep.Methods))
	f.StringVar(&mode, "sleep-mode", sleep.DefaultRTCWakeMode, "rtcwake suspend mode, e.g. freeze or mem (default from config)")

	return cmd
}
