package workload

import (
	"time"

	"github.com/sirupsen/logrus"
)

// BurstStats counts the events done by bursts of one kind.
type BurstStats struct {
	Name     string        `json:"name"`
	Runs     int           `json:"runs"`
	Events   int           `json:"events"`
	Duration time.Duration `json:"duration"`
}

// EventsPerSecond is 0 when no time was spent.
func (b BurstStats) EventsPerSecond() float64 {
	if b.Duration <= 0 {
		return 0
	}
	return float64(b.Events) / b.Duration.Seconds()
}

// Timed runs fn, which returns a number of events, and logs the event rate.
func Timed(name string, fn func() (int, error)) (BurstStats, error) {
	start := time.Now()
	count, err := fn()
	b := BurstStats{
		Name:     name,
		Runs:     1,
		Events:   count,
		Duration: time.Since(start),
	}
	if err != nil {
		return b, err
	}

	logrus.Infof("%s: %d events in %.2fs (%.2f events/sec)", name, b.Events, b.Duration.Seconds(), b.EventsPerSecond())

	return b, nil
}
