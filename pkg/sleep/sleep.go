// Package sleep suspends the machine for a fixed time and returns once it
// has woken up again.
package sleep

import (
	"fmt"
	"time"

	"github.com/batben/batben/pkg/bracket"
)

// Sleeper suspends the machine for d and blocks until it has resumed.
type Sleeper interface {
	Sleep(d time.Duration) error
}

// Method names a Sleeper implementation.
type Method string

const (
	MethodRTCWake Method = "rtcwake"
	MethodLogind  Method = "logind"
)

// Methods lists the accepted methods, default first.
var Methods = []Method{MethodRTCWake, MethodLogind}

// New builds the sleeper for method. mode is the rtcwake suspend mode and
// is ignored by logind, which uses whatever suspend state logind is
// configured with.
func New(method Method, mode string) (Sleeper, error) {
	switch method {
	case MethodRTCWake, "":
		return NewRTCWake(mode), nil
	case MethodLogind:
		return NewLogind(), nil
	default:
		return nil, fmt.Errorf("unknown sleep method %q, valid methods are %v", method, Methods)
	}
}

// Operation wraps s so it can be measured by bracket.Measure.
func Operation(s Sleeper, d time.Duration) bracket.Operation[time.Duration] {
	return func() (time.Duration, error) {
		start := time.Now()
		if err := s.Sleep(d); err != nil {
			return 0, err
		}
		return time.Since(start), nil
	}
}

// seconds rounds d up to whole seconds, at least 1. RTC alarms have
// one-second resolution.
func seconds(d time.Duration) int {
	s := int((d + time.Second - 1) / time.Second)
	if s < 1 {
		return 1
	}
	return s
}
