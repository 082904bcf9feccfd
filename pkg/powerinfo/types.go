package powerinfo

import (
	"time"
)

// BatteryState represents the charging state reported by the power source.
type BatteryState int

const (
	// Unknown means the reader could not tell.
	Unknown BatteryState = iota
	// Discharging indicates the battery is discharging.
	Discharging
	// Charging indicates the battery is charging.
	Charging
	// Full indicates the battery is full.
	Full
)

func (s BatteryState) String() string {
	switch s {
	case Discharging:
		return "discharging"
	case Charging:
		return "charging"
	case Full:
		return "full"
	default:
		return "unknown"
	}
}

// MarshalText lets the state show up as a word in JSON reports.
func (s BatteryState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Reading is a snapshot of the battery at one instant.
// Units:
// - Percent: 0-100
// - EnergyWh: Wh remaining, 0 if the device does not report it
type Reading struct {
	Percent  float64      `json:"percent"`
	EnergyWh float64      `json:"energyWh"`
	State    BatteryState `json:"state"`
	Time     time.Time    `json:"time"`
}

// Reader returns the current battery reading.
//
// Read fails with an error wrapping ErrNoBattery if the host has no battery,
// and ErrReaderUnavailable if the underlying facility cannot be queried.
// It is called right before and right after a measured operation, so it
// must be fast.
type Reader interface {
	Read() (Reading, error)
}

// ReaderFunc adapts a plain function to Reader.
type ReaderFunc func() (Reading, error)

func (f ReaderFunc) Read() (Reading, error) {
	return f()
}

func newReading(percent, energyWh float64, state BatteryState) Reading {
	return Reading{
		Percent:  clampPercent(percent),
		EnergyWh: energyWh,
		State:    state,
		Time:     time.Now(),
	}
}

// clampPercent keeps firmware rounding (e.g. current > full) inside [0, 100].
func clampPercent(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
