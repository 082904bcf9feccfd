package powerinfo

import "fmt"

// ReaderKind names a Reader implementation.
type ReaderKind string

const (
	ReaderSysfs     ReaderKind = "sysfs"
	ReaderUPower    ReaderKind = "upower"
	ReaderUPowerCLI ReaderKind = "upower-cli"
)

// ReaderKinds lists all accepted reader names, default first.
var ReaderKinds = []ReaderKind{ReaderSysfs, ReaderUPower, ReaderUPowerCLI}

// NewReader builds the reader named by kind. device is the UPower object
// path and is ignored by the sysfs reader.
func NewReader(kind ReaderKind, device string) (Reader, error) {
	switch kind {
	case ReaderSysfs, "":
		return NewSysfsReader(), nil
	case ReaderUPower:
		return NewUPowerReader(device), nil
	case ReaderUPowerCLI:
		return NewUPowerCLIReader(device), nil
	default:
		return nil, fmt.Errorf("unknown battery reader %q, valid readers are %v", kind, ReaderKinds)
	}
}
