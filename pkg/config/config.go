package config

import (
	"time"

	"github.com/batben/batben/pkg/powerinfo"
	"github.com/batben/batben/pkg/sleep"
	"github.com/batben/batben/pkg/workload"
)

type Config interface {
	// Duration is how long each phase (sleep, wake) lasts.
	Duration() time.Duration
	Reader() powerinfo.ReaderKind
	UPowerDevice() string
	SleepMethod() sleep.Method
	SleepMode() string
	Workload() string
	WorkloadParams() workload.Params

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
