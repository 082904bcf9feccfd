// Package bracket measures the battery cost of an operation by reading the
// battery right before and right after it.
package bracket

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/batben/batben/pkg/powerinfo"
)

// ErrEnergyIncreased is an advisory, not a failure: energy went up between
// the two readings, most likely because a charger was plugged in.
var ErrEnergyIncreased = errors.New("energy increased during this period... Did you plug in your laptop?")

// Operation is a blocking unit of work, e.g. a suspend or a workload.
type Operation[T any] func() (T, error)

// Result is the outcome of one measured operation.
// Deltas are initial minus final, so positive means drained.
type Result struct {
	BatteryDeltaPercent float64           `json:"batteryDeltaPercent"`
	EnergyDeltaWh       float64           `json:"energyDeltaWh"`
	Elapsed             time.Duration     `json:"elapsed"`
	ChargingDetected    bool              `json:"chargingDetected"`
	Initial             powerinfo.Reading `json:"initial"`
	Final               powerinfo.Reading `json:"final"`
}

// NewResult computes the deltas between two readings.
func NewResult(initial, final powerinfo.Reading, elapsed time.Duration) Result {
	energyDelta := initial.EnergyWh - final.EnergyWh
	return Result{
		BatteryDeltaPercent: initial.Percent - final.Percent,
		EnergyDeltaWh:       energyDelta,
		Elapsed:             elapsed,
		ChargingDetected:    energyDelta < 0,
		Initial:             initial,
		Final:               final,
	}
}

// Measure reads the battery, runs op, reads the battery again and returns
// op's value together with the measured Result.
//
// If the first read fails, op is not called and the reader's error is
// returned. Errors from op are returned unchanged. If the second read fails
// the error wraps powerinfo.ErrReaderUnavailable and op's value is dropped.
// Charging during the operation is logged as a warning, not returned.
func Measure[T any](reader powerinfo.Reader, op Operation[T]) (T, Result, error) {
	var zero T

	start := time.Now()

	initial, err := reader.Read()
	if err != nil {
		return zero, Result{}, err
	}
	logrus.WithFields(logrus.Fields{
		"percent":  initial.Percent,
		"energyWh": initial.EnergyWh,
		"state":    initial.State,
	}).Debug("initial battery reading")

	ret, err := op()
	if err != nil {
		return zero, Result{}, err
	}

	elapsed := time.Since(start)

	final, err := reader.Read()
	if err != nil {
		if errors.Is(err, powerinfo.ErrReaderUnavailable) {
			return zero, Result{}, err
		}
		return zero, Result{}, fmt.Errorf("%w: final reading: %w", powerinfo.ErrReaderUnavailable, err)
	}
	logrus.WithFields(logrus.Fields{
		"percent":  final.Percent,
		"energyWh": final.EnergyWh,
		"state":    final.State,
	}).Debug("final battery reading")

	res := NewResult(initial, final, elapsed)
	if res.ChargingDetected {
		logrus.WithField("energyDeltaWh", res.EnergyDeltaWh).Warn(ErrEnergyIncreased)
	}

	return ret, res, nil
}
