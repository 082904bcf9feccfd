package workload

import (
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestMemoryBurst(t *testing.T) {
	assert.Equal(t, 3, MemoryBurst(1, 3))
	assert.Equal(t, 0, MemoryBurst(1, 0))
}

func TestIOBurst(t *testing.T) {
	dir := t.TempDir()

	n, err := IOBurst(dir, 5, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "every file must be deleted after the burst")
}

func TestIOBurstMissingDir(t *testing.T) {
	n, err := IOBurst(t.TempDir()+"/does-not-exist", 3, 1)
	assert.Error(t, err)
	assert.Equal(t, 0, n)
}

func TestNetBurst(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("User-agent: *\nDisallow:\n"))
	}))
	defer srv.Close()

	ok := NetBurst(srv.Client(), srv.URL+"/robots.txt", 4, rate.NewLimiter(rate.Inf, 1))
	assert.Equal(t, 4, ok)
	assert.Equal(t, int32(4), hits.Load())
}

func TestNetBurstCountsOnlySuccesses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := &http.Client{Timeout: time.Second}
	ok := NetBurst(client, url, 3, rate.NewLimiter(rate.Inf, 1))
	assert.Equal(t, 0, ok)
}

func TestNetBurstRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	// 20 req/s with a burst of 1: 3 requests need at least 2 waits of 50ms.
	start := time.Now()
	ok := NetBurst(srv.Client(), srv.URL, 3, rate.NewLimiter(rate.Limit(20), 1))
	assert.Equal(t, 3, ok)
	assert.GreaterOrEqual(t, time.Since(start), 90*time.Millisecond)
}

func TestTimed(t *testing.T) {
	b, err := Timed("TEST", func() (int, error) {
		time.Sleep(10 * time.Millisecond)
		return 20, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "TEST", b.Name)
	assert.Equal(t, 1, b.Runs)
	assert.Equal(t, 20, b.Events)
	assert.GreaterOrEqual(t, b.Duration, 10*time.Millisecond)
	assert.Greater(t, b.EventsPerSecond(), 0.0)

	assert.Equal(t, 0.0, BurstStats{Events: 5}.EventsPerSecond())
}

func TestSysbench(t *testing.T) {
	orig := runSysbench
	defer func() { runSysbench = orig }()

	var gotArgs []string
	runSysbench = func(args ...string) ([]byte, error) {
		gotArgs = args
		return []byte(`sysbench 1.0.20 (using system LuaJIT 2.1.0-beta3)

CPU speed:
    events per second: 12345.67

General statistics:
    total time:                          2.0001s
`), nil
	}

	line, err := Sysbench(8, 2)
	require.NoError(t, err)
	assert.Equal(t, "events per second: 12345.67", line)
	assert.Equal(t, []string{"--threads=8", "--time=2", "cpu", "run"}, gotArgs)
}

func TestQuick(t *testing.T) {
	orig := runSysbench
	defer func() { runSysbench = orig }()

	runSysbench = func(...string) ([]byte, error) {
		return []byte("    events per second:  500.00\n"), nil
	}

	w, err := New(NameQuick, DefaultParams())
	require.NoError(t, err)

	s, err := w.Run(time.Second)
	require.NoError(t, err)
	assert.Equal(t, NameQuick, s.Workload)
	assert.Equal(t, "events per second:  500.00", s.Score)
	require.Len(t, s.Bursts, 1)
	assert.Equal(t, "SYSBENCH", s.Bursts[0].Name)
}
