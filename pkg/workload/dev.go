package workload

import (
	"math/rand/v2"
	"os"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Dev simulates a developer: mostly idle, with bursts of CPU, disk and
// memory activity (and network if enabled) every second or two.
type Dev struct {
	Params
}

func (w *Dev) Name() string { return NameDev }

func (w *Dev) Run(d time.Duration) (Summary, error) {
	s := Summary{Workload: NameDev}

	dir, err := os.MkdirTemp(w.TempDir, "batben-dev-")
	if err != nil {
		return s, pkgerrors.Wrap(err, "failed to create scratch directory")
	}
	defer removeScratch(dir)

	bursts := []burstFunc{
		w.cpuBurst,
		func() (BurstStats, error) { return w.ioBurst(dir) },
		w.memoryBurst,
	}
	if w.DevNetwork {
		bursts = append(bursts, w.netBurst())
	}

	start := time.Now()
	for {
		logrus.Debugf("elapsed time %s", time.Since(start).Round(time.Millisecond))

		for _, burst := range bursts {
			b, err := burst()
			if err != nil {
				return s, err
			}
			s.add(b)
		}

		if time.Since(start) >= d {
			break
		}
		time.Sleep(min(w.idle(), d-time.Since(start)))
	}

	s.Elapsed = time.Since(start)
	return s, nil
}

// idle picks a pause in [IdleMin, IdleMax).
func (w *Dev) idle() time.Duration {
	if w.IdleMax <= w.IdleMin {
		return w.IdleMin
	}
	return w.IdleMin + rand.N(w.IdleMax-w.IdleMin)
}
