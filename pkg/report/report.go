// Package report renders measurement results for humans (colored text) and
// for scripts (JSON).
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/batben/batben/pkg/bracket"
	"github.com/batben/batben/pkg/hostinfo"
	"github.com/batben/batben/pkg/version"
	"github.com/batben/batben/pkg/workload"
)

// Phase names.
const (
	PhaseSleep = "sleep"
	PhaseWake  = "wake"
)

// Phase is one measured operation of a run.
type Phase struct {
	Name   string
	Result bracket.Result
	// Workload is set for wake phases.
	Workload *workload.Summary
}

// AveragePowerW is the average power drawn during the phase in watts.
// ok is false when the reader does not report energy.
func (p Phase) AveragePowerW() (w float64, ok bool) {
	if p.Result.Initial.EnergyWh == 0 || p.Result.Elapsed <= 0 {
		return 0, false
	}
	return p.Result.EnergyDeltaWh / p.Result.Elapsed.Hours(), true
}

// Report is everything one invocation measured.
type Report struct {
	RunID     string
	Version   string
	StartedAt time.Time
	Reader    string
	Host      hostinfo.Info
	Phases    []Phase
}

func New(reader string, host hostinfo.Info) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Version:   version.Version,
		StartedAt: time.Now(),
		Reader:    reader,
		Host:      host,
	}
}

func (r *Report) Add(p Phase) {
	r.Phases = append(r.Phases, p)
}
