package workload

import (
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Params sizes the individual bursts.
type Params struct {
	// CPUPrimeLimit is the upper bound of one prime counting burst.
	CPUPrimeLimit int

	// MemorySizeMB is allocated and released MemoryIterations times per burst.
	MemorySizeMB     int
	MemoryIterations int

	// IOFileCount files of IOFileSizeKB are written, read and deleted per burst.
	IOFileCount  int
	IOFileSizeKB int
	// TempDir is where I/O bursts create their scratch directory.
	// Empty means os.TempDir().
	TempDir string

	// NetURL is fetched NetIterations times per burst, at most NetRate
	// requests per second.
	NetURL        string
	NetIterations int
	NetRate       float64
	NetTimeout    time.Duration

	// SysbenchThreads is passed to sysbench by the quick workload.
	SysbenchThreads int

	// IdleMin and IdleMax bound the random pause between dev bursts.
	IdleMin time.Duration
	IdleMax time.Duration
	// DevNetwork adds network bursts to the dev workload.
	DevNetwork bool
}

// DefaultParams returns burst sizes that take roughly a second each on a
// recent laptop.
func DefaultParams() Params {
	return Params{
		CPUPrimeLimit:    200000,
		MemorySizeMB:     64,
		MemoryIterations: 10,
		IOFileCount:      50,
		IOFileSizeKB:     4,
		NetURL:           "https://www.google.com/robots.txt",
		NetIterations:    10,
		NetRate:          10,
		NetTimeout:       5 * time.Second,
		SysbenchThreads:  8,
		IdleMin:          1 * time.Second,
		IdleMax:          2 * time.Second,
	}
}

// Validate rejects sizes a burst cannot run with. A NetRate of 0 means
// unlimited.
func (p Params) Validate() error {
	positive := []struct {
		name string
		v    int
	}{
		{"cpuPrimeLimit", p.CPUPrimeLimit},
		{"memorySizeMB", p.MemorySizeMB},
		{"memoryIterations", p.MemoryIterations},
		{"ioFileCount", p.IOFileCount},
		{"ioFileSizeKB", p.IOFileSizeKB},
		{"netIterations", p.NetIterations},
		{"sysbenchThreads", p.SysbenchThreads},
	}
	for _, f := range positive {
		if f.v <= 0 {
			return fmt.Errorf("invalid workload parameter %s=%d: must be positive", f.name, f.v)
		}
	}

	if p.NetRate < 0 {
		return fmt.Errorf("invalid workload parameter netRate=%g: must not be negative", p.NetRate)
	}
	if p.NetTimeout < 0 || p.IdleMin < 0 || p.IdleMax < 0 {
		return fmt.Errorf("invalid workload timing: timeout %s, idle %s to %s", p.NetTimeout, p.IdleMin, p.IdleMax)
	}

	return nil
}

func (p Params) cpuBurst() (BurstStats, error) {
	return Timed("CPU", func() (int, error) {
		return CountPrimes(p.CPUPrimeLimit), nil
	})
}

func (p Params) memoryBurst() (BurstStats, error) {
	return Timed("MEM", func() (int, error) {
		return MemoryBurst(p.MemorySizeMB, p.MemoryIterations), nil
	})
}

func (p Params) ioBurst(dir string) (BurstStats, error) {
	return Timed("IO", func() (int, error) {
		return IOBurst(dir, p.IOFileCount, p.IOFileSizeKB)
	})
}

// netBurst returns a burst that shares one HTTP client and one limiter
// across calls, so pacing holds between consecutive bursts too.
func (p Params) netBurst() burstFunc {
	client := &http.Client{Timeout: p.NetTimeout}
	limiter := rate.NewLimiter(rate.Limit(p.NetRate), 1)
	if p.NetRate <= 0 {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return func() (BurstStats, error) {
		return Timed("NET", func() (int, error) {
			return NetBurst(client, p.NetURL, p.NetIterations, limiter), nil
		})
	}
}
