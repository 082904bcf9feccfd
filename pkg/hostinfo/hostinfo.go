// Package hostinfo describes the machine a benchmark ran on, so results
// from different machines or kernels are not mixed up.
package hostinfo

import (
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/sirupsen/logrus"
)

// Info is a best-effort description of the host. Fields that could not be
// read are left empty.
type Info struct {
	Hostname        string   `json:"hostname"`
	Platform        string   `json:"platform"`
	PlatformVersion string   `json:"platformVersion"`
	KernelVersion   string   `json:"kernelVersion"`
	CPUModel        string   `json:"cpuModel"`
	CPUThreads      int      `json:"cpuThreads"`
	MemTotal        uint64   `json:"memTotal"`
	Load            *LoadAvg `json:"load,omitempty"`
}

// LoadAvg is the 1, 5 and 15 minute load average.
type LoadAvg struct {
	Load1  float64 `json:"load1"`
	Load5  float64 `json:"load5"`
	Load15 float64 `json:"load15"`
}

// Collect gathers host information. It never fails; missing pieces are
// logged at debug level.
func Collect() Info {
	var info Info

	if h, err := host.Info(); err == nil {
		info.Hostname = h.Hostname
		info.Platform = h.Platform
		info.PlatformVersion = h.PlatformVersion
		info.KernelVersion = h.KernelVersion
	} else {
		logrus.Debugf("failed to get host info: %v", err)
	}

	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	} else if err != nil {
		logrus.Debugf("failed to get cpu info: %v", err)
	}

	if n, err := cpu.Counts(true); err == nil {
		info.CPUThreads = n
	} else {
		logrus.Debugf("failed to get cpu count: %v", err)
	}

	if v, err := mem.VirtualMemory(); err == nil {
		info.MemTotal = v.Total
	} else {
		logrus.Debugf("failed to get memory info: %v", err)
	}

	info.Load = Load()

	return info
}

// Load returns the current load average, or nil if unsupported.
func Load() *LoadAvg {
	avg, err := load.Avg()
	if err != nil {
		logrus.Debugf("failed to get load average: %v", err)
		return nil
	}
	return &LoadAvg{Load1: avg.Load1, Load5: avg.Load5, Load15: avg.Load15}
}
