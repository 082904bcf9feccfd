package report

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/batben/batben/pkg/hostinfo"
	"github.com/batben/batben/pkg/powerinfo"
	"github.com/batben/batben/pkg/workload"
)

type reportJSON struct {
	RunID     string        `json:"runId"`
	Version   string        `json:"version"`
	StartedAt time.Time     `json:"startedAt"`
	Reader    string        `json:"reader"`
	Host      hostinfo.Info `json:"host"`
	Phases    []phaseJSON   `json:"phases"`
}

type phaseJSON struct {
	Phase               string        `json:"phase"`
	BatteryDeltaPercent float64       `json:"batteryDeltaPercent"`
	EnergyDeltaWh       float64       `json:"energyDeltaWh"`
	ElapsedSeconds      float64       `json:"elapsedSeconds"`
	ChargingDetected    bool          `json:"chargingDetected"`
	AveragePowerWatts   *float64      `json:"averagePowerWatts"`
	Initial             readingJSON   `json:"initial"`
	Final               readingJSON   `json:"final"`
	Workload            *workloadJSON `json:"workload,omitempty"`
}

type readingJSON struct {
	Percent  float64                `json:"percent"`
	EnergyWh float64                `json:"energyWh"`
	State    powerinfo.BatteryState `json:"state"`
	Time     time.Time              `json:"time"`
}

type workloadJSON struct {
	Name           string      `json:"name"`
	ElapsedSeconds float64     `json:"elapsedSeconds"`
	Score          string      `json:"score,omitempty"`
	Bursts         []burstJSON `json:"bursts"`
}

type burstJSON struct {
	Name            string  `json:"name"`
	Runs            int     `json:"runs"`
	Events          int     `json:"events"`
	Seconds         float64 `json:"seconds"`
	EventsPerSecond float64 `json:"eventsPerSecond"`
}

// WriteJSON writes the whole report as one indented JSON document.
func WriteJSON(w io.Writer, r *Report) error {
	out := reportJSON{
		RunID:     r.RunID,
		Version:   r.Version,
		StartedAt: r.StartedAt,
		Reader:    r.Reader,
		Host:      r.Host,
		Phases:    make([]phaseJSON, 0, len(r.Phases)),
	}

	for _, p := range r.Phases {
		res := p.Result
		pj := phaseJSON{
			Phase:               p.Name,
			BatteryDeltaPercent: res.BatteryDeltaPercent,
			EnergyDeltaWh:       res.EnergyDeltaWh,
			ElapsedSeconds:      round(res.Elapsed.Seconds(), 3),
			ChargingDetected:    res.ChargingDetected,
			Initial:             newReadingJSON(res.Initial),
			Final:               newReadingJSON(res.Final),
		}
		if watts, ok := p.AveragePowerW(); ok {
			watts = round(watts, 3)
			pj.AveragePowerWatts = &watts
		}
		if p.Workload != nil {
			pj.Workload = newWorkloadJSON(p.Workload)
		}
		out.Phases = append(out.Phases, pj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func newReadingJSON(r powerinfo.Reading) readingJSON {
	return readingJSON{
		Percent:  r.Percent,
		EnergyWh: r.EnergyWh,
		State:    r.State,
		Time:     r.Time,
	}
}

func newWorkloadJSON(s *workload.Summary) *workloadJSON {
	wj := &workloadJSON{
		Name:           s.Workload,
		ElapsedSeconds: round(s.Elapsed.Seconds(), 3),
		Score:          s.Score,
		Bursts:         make([]burstJSON, 0, len(s.Bursts)),
	}
	for _, b := range s.Bursts {
		wj.Bursts = append(wj.Bursts, burstJSON{
			Name:            b.Name,
			Runs:            b.Runs,
			Events:          b.Events,
			Seconds:         round(b.Duration.Seconds(), 3),
			EventsPerSecond: round(b.EventsPerSecond(), 2),
		})
	}
	return wj
}

func round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}
