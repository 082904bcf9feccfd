package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/batben/batben/pkg/powerinfo"
	"github.com/batben/batben/pkg/sleep"
	"github.com/batben/batben/pkg/utils/ptr"
	"github.com/batben/batben/pkg/workload"
)

var (
	defaultParams = workload.DefaultParams()

	defaultFileConfig = &RawFileConfig{
		DurationSeconds:  ptr.To(60),
		Reader:           ptr.To(string(powerinfo.ReaderSysfs)),
		UPowerDevice:     ptr.To(powerinfo.DefaultUPowerDevice),
		SleepMethod:      ptr.To(string(sleep.MethodRTCWake)),
		SleepMode:        ptr.To(sleep.DefaultRTCWakeMode),
		Workload:         ptr.To(workload.NameQuick),
		CPUPrimeLimit:    ptr.To(defaultParams.CPUPrimeLimit),
		MemorySizeMB:     ptr.To(defaultParams.MemorySizeMB),
		MemoryIterations: ptr.To(defaultParams.MemoryIterations),
		IOFileCount:      ptr.To(defaultParams.IOFileCount),
		IOFileSizeKB:     ptr.To(defaultParams.IOFileSizeKB),
		NetURL:           ptr.To(defaultParams.NetURL),
		NetIterations:    ptr.To(defaultParams.NetIterations),
		NetRate:          ptr.To(defaultParams.NetRate),
		SysbenchThreads:  ptr.To(defaultParams.SysbenchThreads),
		// Network bursts hit a public URL. Only when asked to.
		DevNetwork: ptr.To(false),
	}
)

var _ Config = &File{}

type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

// DefaultRawFileConfig returns a copy of the defaults with every field set.
func DefaultRawFileConfig() *RawFileConfig {
	c := *defaultFileConfig
	return &c
}

type RawFileConfig struct {
	DurationSeconds  *int     `json:"durationSeconds,omitempty"`
	Reader           *string  `json:"reader,omitempty"`
	UPowerDevice     *string  `json:"upowerDevice,omitempty"`
	SleepMethod      *string  `json:"sleepMethod,omitempty"`
	SleepMode        *string  `json:"sleepMode,omitempty"`
	Workload         *string  `json:"workload,omitempty"`
	CPUPrimeLimit    *int     `json:"cpuPrimeLimit,omitempty"`
	MemorySizeMB     *int     `json:"memorySizeMB,omitempty"`
	MemoryIterations *int     `json:"memoryIterations,omitempty"`
	IOFileCount      *int     `json:"ioFileCount,omitempty"`
	IOFileSizeKB     *int     `json:"ioFileSizeKB,omitempty"`
	NetURL           *string  `json:"netURL,omitempty"`
	NetIterations    *int     `json:"netIterations,omitempty"`
	NetRate          *float64 `json:"netRate,omitempty"`
	SysbenchThreads  *int     `json:"sysbenchThreads,omitempty"`
	DevNetwork       *bool    `json:"devNetwork,omitempty"`
}

// get returns *v, or *def if v is not set.
func get[T any](f *File, v func(*RawFileConfig) *T) T {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if p := v(f.c); p != nil {
		return *p
	}
	return *v(defaultFileConfig)
}

func (f *File) Duration() time.Duration {
	return time.Duration(get(f, func(c *RawFileConfig) *int { return c.DurationSeconds })) * time.Second
}

func (f *File) Reader() powerinfo.ReaderKind {
	return powerinfo.ReaderKind(get(f, func(c *RawFileConfig) *string { return c.Reader }))
}

func (f *File) UPowerDevice() string {
	return get(f, func(c *RawFileConfig) *string { return c.UPowerDevice })
}

func (f *File) SleepMethod() sleep.Method {
	return sleep.Method(get(f, func(c *RawFileConfig) *string { return c.SleepMethod }))
}

func (f *File) SleepMode() string {
	return get(f, func(c *RawFileConfig) *string { return c.SleepMode })
}

func (f *File) Workload() string {
	return get(f, func(c *RawFileConfig) *string { return c.Workload })
}

func (f *File) WorkloadParams() workload.Params {
	p := workload.DefaultParams()
	p.CPUPrimeLimit = get(f, func(c *RawFileConfig) *int { return c.CPUPrimeLimit })
	p.MemorySizeMB = get(f, func(c *RawFileConfig) *int { return c.MemorySizeMB })
	p.MemoryIterations = get(f, func(c *RawFileConfig) *int { return c.MemoryIterations })
	p.IOFileCount = get(f, func(c *RawFileConfig) *int { return c.IOFileCount })
	p.IOFileSizeKB = get(f, func(c *RawFileConfig) *int { return c.IOFileSizeKB })
	p.NetURL = get(f, func(c *RawFileConfig) *string { return c.NetURL })
	p.NetIterations = get(f, func(c *RawFileConfig) *int { return c.NetIterations })
	p.NetRate = get(f, func(c *RawFileConfig) *float64 { return c.NetRate })
	p.SysbenchThreads = get(f, func(c *RawFileConfig) *int { return c.SysbenchThreads })
	p.DevNetwork = get(f, func(c *RawFileConfig) *bool { return c.DevNetwork })
	return p
}

// Raw returns a copy of the raw config with defaults filled in.
func (f *File) Raw() *RawFileConfig {
	p := f.WorkloadParams()
	return &RawFileConfig{
		DurationSeconds:  ptr.To(int(f.Duration() / time.Second)),
		Reader:           ptr.To(string(f.Reader())),
		UPowerDevice:     ptr.To(f.UPowerDevice()),
		SleepMethod:      ptr.To(string(f.SleepMethod())),
		SleepMode:        ptr.To(f.SleepMode()),
		Workload:         ptr.To(f.Workload()),
		CPUPrimeLimit:    ptr.To(p.CPUPrimeLimit),
		MemorySizeMB:     ptr.To(p.MemorySizeMB),
		MemoryIterations: ptr.To(p.MemoryIterations),
		IOFileCount:      ptr.To(p.IOFileCount),
		IOFileSizeKB:     ptr.To(p.IOFileSizeKB),
		NetURL:           ptr.To(p.NetURL),
		NetIterations:    ptr.To(p.NetIterations),
		NetRate:          ptr.To(p.NetRate),
		SysbenchThreads:  ptr.To(p.SysbenchThreads),
		DevNetwork:       ptr.To(p.DevNetwork),
	}
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"duration":     f.Duration(),
		"reader":       f.Reader(),
		"upowerDevice": f.UPowerDevice(),
		"sleepMethod":  f.SleepMethod(),
		"sleepMode":    f.SleepMode(),
		"workload":     f.Workload(),
	}
}
