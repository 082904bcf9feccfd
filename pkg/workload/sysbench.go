package workload

import (
	"bufio"
	"bytes"
	"os/exec"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var runSysbench = func(args ...string) ([]byte, error) {
	return exec.Command("sysbench", args...).Output()
}

// Sysbench runs the sysbench CPU test for the given number of seconds and
// returns its "events per second" line. If sysbench prints no such line the
// whole output is returned.
func Sysbench(threads, seconds int) (string, error) {
	out, err := runSysbench(
		"--threads="+strconv.Itoa(threads),
		"--time="+strconv.Itoa(seconds),
		"cpu", "run",
	)
	if err != nil {
		return "", pkgerrors.Wrap(err, "failed to run sysbench")
	}

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "events per second:") {
			return line, nil
		}
	}

	return strings.TrimSpace(string(out)), nil
}

// Quick benchmarks the CPU with sysbench for a fifth of the duration and
// idles for the rest, a rough stand-in for staring at an editor.
type Quick struct {
	Params
}

func (w *Quick) Name() string { return NameQuick }

func (w *Quick) Run(d time.Duration) (Summary, error) {
	s := Summary{Workload: NameQuick}
	start := time.Now()

	benchSeconds := max(int(d.Seconds())/5, 1)
	wait := d - time.Duration(benchSeconds)*time.Second

	b, err := Timed("SYSBENCH", func() (int, error) {
		score, err := Sysbench(w.SysbenchThreads, benchSeconds)
		if err != nil {
			return 0, err
		}
		s.Score = score
		return benchSeconds, nil
	})
	if err != nil {
		return s, err
	}
	s.add(b)
	logrus.Infof("perf score of %s", s.Score)

	if wait > 0 {
		logrus.Debugf("idling for %s", wait)
		time.Sleep(wait)
	}

	s.Elapsed = time.Since(start)
	return s, nil
}
