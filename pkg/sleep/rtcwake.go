package sleep

import (
	"os/exec"
	"strconv"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// DefaultRTCWakeMode is suspend-to-idle, which works on most laptops.
const DefaultRTCWakeMode = "freeze"

// RTCWake suspends with util-linux rtcwake. It needs root.
type RTCWake struct {
	Mode string

	run func(name string, args ...string) error
}

func NewRTCWake(mode string) *RTCWake {
	if mode == "" {
		mode = DefaultRTCWakeMode
	}
	return &RTCWake{
		Mode: mode,
		run: func(name string, args ...string) error {
			// rtcwake's own output is not interesting.
			return exec.Command(name, args...).Run()
		},
	}
}

func (r *RTCWake) Sleep(d time.Duration) error {
	args := []string{"-m", r.Mode, "-s", strconv.Itoa(seconds(d))}
	logrus.WithFields(logrus.Fields{
		"mode":     r.Mode,
		"duration": d,
	}).Info("suspending with rtcwake")

	if err := r.run("rtcwake", args...); err != nil {
		return pkgerrors.Wrapf(err, "rtcwake %v failed (are you root?)", args)
	}

	logrus.Info("resumed")
	return nil
}
