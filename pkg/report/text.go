package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// PrintHeader prints what is being measured and where.
func PrintHeader(w io.Writer, r *Report) {
	fmt.Fprintln(w, bold("batben %s", r.Version)+" run "+r.RunID)
	h := r.Host
	if h.Hostname != "" {
		fmt.Fprintf(w, "  Host: %s (%s %s, kernel %s)\n", h.Hostname, h.Platform, h.PlatformVersion, h.KernelVersion)
	}
	if h.CPUModel != "" || h.CPUThreads > 0 {
		fmt.Fprintf(w, "  CPU: %s, %d threads\n", h.CPUModel, h.CPUThreads)
	}
	if h.MemTotal > 0 {
		fmt.Fprintf(w, "  Memory: %s\n", humanize.IBytes(h.MemTotal))
	}
	fmt.Fprintf(w, "  Battery reader: %s\n", r.Reader)
	fmt.Fprintln(w)
}

// PrintPhase prints the result of one phase.
func PrintPhase(w io.Writer, p Phase) {
	res := p.Result

	switch p.Name {
	case PhaseSleep:
		fmt.Fprintln(w, bold("Sleep portion:"))
	case PhaseWake:
		fmt.Fprintln(w, bold("Wake portion:"))
	default:
		fmt.Fprintln(w, bold("%s:", p.Name))
	}

	if res.ChargingDetected {
		fmt.Fprintln(w, color.New(color.Bold, color.FgYellow).Sprint("  Energy increased during this period... Did you plug in your laptop?"))
	}

	fmt.Fprintf(w, "  Battery life spent: %s\n", signed("%.1f%%", res.BatteryDeltaPercent))
	fmt.Fprintf(w, "  Power spent: %s\n", signed("%.1fWh", res.EnergyDeltaWh))
	if watts, ok := p.AveragePowerW(); ok {
		fmt.Fprintf(w, "  Average power: %s\n", bold("%.2f W", watts))
	}
	fmt.Fprintf(w, "  Elapsed time: %s\n", bold("%.1fs", res.Elapsed.Seconds()))
	fmt.Fprintf(w, "  Battery: %.1f%% -> %.1f%%", res.Initial.Percent, res.Final.Percent)
	if res.Initial.EnergyWh > 0 {
		fmt.Fprintf(w, " (%.2fWh -> %.2fWh)", res.Initial.EnergyWh, res.Final.EnergyWh)
	}
	fmt.Fprintln(w)

	if s := p.Workload; s != nil {
		fmt.Fprintf(w, "  Workload: %s\n", bold("%s", s.Workload))
		if s.Score != "" {
			fmt.Fprintf(w, "    perf score of %s\n", s.Score)
		}
		for _, b := range s.Bursts {
			fmt.Fprintf(w, "    %s: %d events in %.2fs (%.2f events/sec)\n", b.Name, b.Events, b.Duration.Seconds(), b.EventsPerSecond())
		}
	}

	fmt.Fprintln(w)
}

// signed colors drain red and gain green.
func signed(format string, v float64) string {
	switch {
	case v > 0:
		return color.New(color.Bold, color.FgRed).Sprintf(format, v)
	case v < 0:
		return color.New(color.Bold, color.FgGreen).Sprintf(format, v)
	default:
		return bold(format, v)
	}
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}
