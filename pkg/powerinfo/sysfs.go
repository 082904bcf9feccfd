package powerinfo

import (
	"github.com/distatus/battery"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var _ Reader = &SysfsReader{}

// SysfsReader reads batteries through the kernel interface exposed to
// distatus/battery (sysfs on Linux, IOKit on macOS). Multiple batteries are
// summed up.
type SysfsReader struct {
	getAll func() ([]*battery.Battery, error)
}

func NewSysfsReader() *SysfsReader {
	return &SysfsReader{getAll: battery.GetAll}
}

func (r *SysfsReader) Read() (Reading, error) {
	batteries, err := r.getAll()

	// Partial errors come back as battery.Errors, one entry per battery.
	// A battery is skipped only when its charge or capacity is unreadable.
	errs, partial := err.(battery.Errors)
	if err != nil && !partial {
		return Reading{}, pkgerrors.Wrapf(ErrReaderUnavailable, "failed to get batteries: %v", err)
	}

	if len(batteries) == 0 {
		return Reading{}, ErrNoBattery
	}

	var (
		totalCharge   float64 // mWh
		totalCapacity float64 // mWh
		state         = Unknown
		used          int
	)

	for i, bat := range batteries {
		var perr battery.ErrPartial
		if partial && i < len(errs) && errs[i] != nil {
			p, ok := errs[i].(battery.ErrPartial)
			if !ok {
				logrus.WithField("index", i).Debugf("skipping battery: %v", errs[i])
				continue
			}
			perr = p
		}

		// Only charge, capacity and state matter here. Rate and voltage
		// errors (e.g. no power_now) are ignored.
		if perr.Current != nil {
			logrus.WithField("index", i).Debugf("skipping battery without current charge: %v", perr.Current)
			continue
		}
		full := bat.Full
		if perr.Full != nil {
			full = 0
		}
		if full == 0 && perr.Design == nil {
			full = bat.Design
		}
		if full == 0 {
			continue
		}
		totalCapacity += full
		totalCharge += bat.Current
		if used == 0 {
			state = convertState(bat.State)
			if perr.State != nil {
				// e.g. "Not charging" at a charge threshold.
				logrus.WithField("index", i).Debugf("unknown battery state: %v", perr.State)
				state = Unknown
			}
		}
		used++
	}

	if used == 0 {
		return Reading{}, pkgerrors.Wrapf(ErrReaderUnavailable, "none of the %d batteries reported usable data", len(batteries))
	}

	return newReading(totalCharge/totalCapacity*100, totalCharge/1e3, state), nil
}

func convertState(s battery.State) BatteryState {
	switch s {
	case battery.Charging:
		return Charging
	case battery.Discharging:
		return Discharging
	case battery.Full:
		return Full
	default:
		return Unknown
	}
}
