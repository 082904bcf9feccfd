package powerinfo

import (
	"bufio"
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var _ Reader = &UPowerCLIReader{}

// UPowerCLIReader shells out to `upower -i <device>`. It is slower than
// UPowerReader but works where the D-Bus policy denies direct access.
type UPowerCLIReader struct {
	device string
	run    func(name string, args ...string) ([]byte, error)
}

func NewUPowerCLIReader(device string) *UPowerCLIReader {
	if device == "" {
		device = DefaultUPowerDevice
	}
	return &UPowerCLIReader{
		device: device,
		run: func(name string, args ...string) ([]byte, error) {
			return exec.Command(name, args...).Output()
		},
	}
}

func (r *UPowerCLIReader) Read() (Reading, error) {
	out, err := r.run("upower", "-i", r.device)
	if err != nil {
		return Reading{}, pkgerrors.Wrapf(ErrReaderUnavailable, "failed to run upower -i %s: %v", r.device, err)
	}

	return parseUPowerOutput(out)
}

// parseUPowerOutput extracts percentage, energy and state from the
// human-readable output of `upower -i`.
func parseUPowerOutput(out []byte) (Reading, error) {
	var (
		percent    float64
		energy     float64
		state      = Unknown
		hasPercent bool
	)

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "present":
			if value == "no" {
				return Reading{}, ErrNoBattery
			}
		case "percentage":
			p, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(value, "%")), 64)
			if err != nil {
				return Reading{}, pkgerrors.Wrapf(ErrReaderUnavailable, "invalid percentage %q", value)
			}
			percent = p
			hasPercent = true
		case "energy":
			// "45.06 Wh"
			fields := strings.Fields(value)
			if len(fields) == 0 {
				continue
			}
			e, err := strconv.ParseFloat(fields[0], 64)
			if err != nil {
				logrus.Debugf("ignoring invalid energy %q", value)
				continue
			}
			energy = e
		case "state":
			state = parseUPowerStateText(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return Reading{}, pkgerrors.Wrapf(ErrReaderUnavailable, "failed to read upower output: %v", err)
	}

	if !hasPercent {
		return Reading{}, pkgerrors.Wrap(ErrNoBattery, "upower reported no percentage")
	}

	return newReading(percent, energy, state), nil
}

func parseUPowerStateText(s string) BatteryState {
	switch s {
	case "charging":
		return Charging
	case "discharging", "pending-discharge":
		return Discharging
	case "fully-charged":
		return Full
	default:
		return Unknown
	}
}
