package powerinfo

import "errors"

var (
	// ErrNoBattery is returned when the host has no battery we can see
	ErrNoBattery = errors.New("no battery found")

	// ErrReaderUnavailable is returned when the power-reading facility (sysfs, UPower, D-Bus) cannot be queried
	ErrReaderUnavailable = errors.New("battery reader unavailable")
)
