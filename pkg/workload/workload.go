// Package workload generates synthetic load (CPU, memory, disk I/O, network)
// to stand in for real usage while the battery is being measured.
//
// A workload is made of bursts. Each burst is a small, parameterized,
// self-contained unit of work that reports how many events it completed.
// Workloads repeat bursts until the requested duration has passed, so the
// actual run time is approximate.
package workload

import (
	"fmt"
	"slices"
	"time"

	"github.com/batben/batben/pkg/bracket"
)

// Workload runs synthetic load for approximately d.
type Workload interface {
	Name() string
	Run(d time.Duration) (Summary, error)
}

// Names of the built-in workloads.
const (
	NameQuick  = "quick"
	NameCPU    = "cpu"
	NameIO     = "io"
	NameMemory = "memory"
	NameNet    = "net"
	NameDev    = "dev"
)

// Names lists the built-in workloads.
var Names = []string{NameQuick, NameCPU, NameIO, NameMemory, NameNet, NameDev}

// New returns the built-in workload called name.
func New(name string, p Params) (Workload, error) {
	if !IsValidName(name) {
		return nil, fmt.Errorf("unknown workload %q, valid workloads are %v", name, Names)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	switch name {
	case NameQuick:
		return &Quick{Params: p}, nil
	case NameCPU:
		return &Repeat{name: NameCPU, burst: p.cpuBurst}, nil
	case NameMemory:
		return &Repeat{name: NameMemory, burst: p.memoryBurst}, nil
	case NameIO:
		return &IO{Params: p}, nil
	case NameNet:
		return &Repeat{name: NameNet, burst: p.netBurst()}, nil
	case NameDev:
		return &Dev{Params: p}, nil
	default:
		return nil, fmt.Errorf("unknown workload %q, valid workloads are %v", name, Names)
	}
}

// IsValidName reports whether name is a built-in workload.
func IsValidName(name string) bool {
	return slices.Contains(Names, name)
}

// Operation wraps w so it can be measured by bracket.Measure.
func Operation(w Workload, d time.Duration) bracket.Operation[Summary] {
	return func() (Summary, error) {
		return w.Run(d)
	}
}

// Summary is what a workload did during its run.
type Summary struct {
	Workload string        `json:"workload"`
	Bursts   []BurstStats  `json:"bursts,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
	// Score is the sysbench result line, only set by the quick workload.
	Score string `json:"score,omitempty"`
}

// add folds a burst into the per-name totals, keeping first-seen order.
func (s *Summary) add(b BurstStats) {
	for i := range s.Bursts {
		if s.Bursts[i].Name == b.Name {
			s.Bursts[i].Runs += b.Runs
			s.Bursts[i].Events += b.Events
			s.Bursts[i].Duration += b.Duration
			return
		}
	}
	s.Bursts = append(s.Bursts, b)
}

// Events is the total number of events over all bursts.
func (s Summary) Events() int {
	total := 0
	for _, b := range s.Bursts {
		total += b.Events
	}
	return total
}

// burstFunc runs one burst.
type burstFunc func() (BurstStats, error)

// Repeat runs the same burst back to back until the duration has passed.
type Repeat struct {
	name  string
	burst burstFunc
}

func (r *Repeat) Name() string { return r.name }

func (r *Repeat) Run(d time.Duration) (Summary, error) {
	s := Summary{Workload: r.name}
	start := time.Now()
	// At least one burst, even for tiny durations.
	for {
		b, err := r.burst()
		if err != nil {
			return s, err
		}
		s.add(b)
		if time.Since(start) >= d {
			break
		}
	}
	s.Elapsed = time.Since(start)
	return s, nil
}
