package powerinfo

import (
	"github.com/godbus/dbus/v5"
	pkgerrors "github.com/pkg/errors"
)

const (
	upowerService   = "org.freedesktop.UPower"
	upowerDeviceIfc = "org.freedesktop.UPower.Device"

	// DefaultUPowerDevice is the first laptop battery as named by UPower.
	DefaultUPowerDevice = "/org/freedesktop/UPower/devices/battery_BAT0"
)

// UPower device states, see UpDeviceState.
const (
	upStateCharging         uint32 = 1
	upStateDischarging      uint32 = 2
	upStateFullyCharged     uint32 = 4
	upStatePendingDischarge uint32 = 6
)

var _ Reader = &UPowerReader{}

// UPowerReader asks the UPower daemon over the system D-Bus.
type UPowerReader struct {
	device string
	object func(device string) (dbus.BusObject, error)
}

func NewUPowerReader(device string) *UPowerReader {
	if device == "" {
		device = DefaultUPowerDevice
	}
	return &UPowerReader{
		device: device,
		object: systemBusObject,
	}
}

func systemBusObject(device string) (dbus.BusObject, error) {
	// The shared connection must not be closed by us.
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}
	return conn.Object(upowerService, dbus.ObjectPath(device)), nil
}

func (r *UPowerReader) Read() (Reading, error) {
	obj, err := r.object(r.device)
	if err != nil {
		return Reading{}, pkgerrors.Wrapf(ErrReaderUnavailable, "failed to connect to system bus: %v", err)
	}

	present, err := r.property(obj, "IsPresent")
	if err != nil {
		return Reading{}, err
	}
	if p, ok := present.(bool); ok && !p {
		return Reading{}, pkgerrors.Wrapf(ErrNoBattery, "UPower device %s is not present", r.device)
	}

	percent, err := r.float(obj, "Percentage")
	if err != nil {
		return Reading{}, err
	}

	// Energy is optional. Some devices only report percentage.
	energy, err := r.float(obj, "Energy")
	if err != nil {
		energy = 0
	}

	state := Unknown
	if v, err := r.property(obj, "State"); err == nil {
		if s, ok := v.(uint32); ok {
			state = convertUPowerState(s)
		}
	}

	return newReading(percent, energy, state), nil
}

func (r *UPowerReader) property(obj dbus.BusObject, name string) (interface{}, error) {
	v, err := obj.GetProperty(upowerDeviceIfc + "." + name)
	if err != nil {
		return nil, pkgerrors.Wrapf(ErrReaderUnavailable, "failed to get %s of %s: %v", name, r.device, err)
	}
	return v.Value(), nil
}

func (r *UPowerReader) float(obj dbus.BusObject, name string) (float64, error) {
	v, err := r.property(obj, name)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok {
		return 0, pkgerrors.Wrapf(ErrReaderUnavailable, "unexpected type %T for %s", v, name)
	}
	return f, nil
}

func convertUPowerState(s uint32) BatteryState {
	switch s {
	case upStateCharging:
		return Charging
	case upStateDischarging, upStatePendingDischarge:
		return Discharging
	case upStateFullyCharged:
		return Full
	default:
		return Unknown
	}
}
