package workload

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallParams(t *testing.T) Params {
	p := DefaultParams()
	p.CPUPrimeLimit = 1000
	p.MemorySizeMB = 1
	p.MemoryIterations = 1
	p.IOFileCount = 2
	p.IOFileSizeKB = 1
	p.TempDir = t.TempDir()
	p.IdleMin = 0
	p.IdleMax = 0
	return p
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		w, err := New(name, DefaultParams())
		require.NoError(t, err, name)
		assert.Equal(t, name, w.Name())
		assert.True(t, IsValidName(name))
	}

	_, err := New("gpu", DefaultParams())
	assert.Error(t, err)
	assert.False(t, IsValidName("gpu"))
}

func TestNewRejectsInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
		errMsg string
	}{
		{name: "negative memory size", modify: func(p *Params) { p.MemorySizeMB = -1 }, errMsg: "memorySizeMB=-1"},
		{name: "zero iterations", modify: func(p *Params) { p.MemoryIterations = 0 }, errMsg: "memoryIterations=0"},
		{name: "zero prime limit", modify: func(p *Params) { p.CPUPrimeLimit = 0 }, errMsg: "cpuPrimeLimit=0"},
		{name: "negative file size", modify: func(p *Params) { p.IOFileSizeKB = -4 }, errMsg: "ioFileSizeKB=-4"},
		{name: "negative net rate", modify: func(p *Params) { p.NetRate = -1 }, errMsg: "netRate=-1"},
		{name: "negative idle", modify: func(p *Params) { p.IdleMin = -time.Second }, errMsg: "invalid workload timing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)

			for _, name := range Names {
				_, err := New(name, p)
				assert.ErrorContains(t, err, tt.errMsg, name)
			}
		})
	}

	p := DefaultParams()
	p.NetRate = 0
	assert.NoError(t, p.Validate(), "zero net rate means unlimited")
}

func TestRepeatRunsForDuration(t *testing.T) {
	w, err := New(NameCPU, smallParams(t))
	require.NoError(t, err)

	s, err := w.Run(20 * time.Millisecond)
	require.NoError(t, err)

	assert.Equal(t, NameCPU, s.Workload)
	require.Len(t, s.Bursts, 1)
	assert.Equal(t, "CPU", s.Bursts[0].Name)
	assert.GreaterOrEqual(t, s.Bursts[0].Runs, 1)
	assert.Equal(t, s.Bursts[0].Runs*CountPrimes(1000), s.Events())
	assert.GreaterOrEqual(t, s.Elapsed, 20*time.Millisecond)
}

func TestIOWorkloadCleansUp(t *testing.T) {
	p := smallParams(t)
	w, err := New(NameIO, p)
	require.NoError(t, err)

	s, err := w.Run(time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, NameIO, s.Workload)
	assert.Positive(t, s.Events())

	entries, err := os.ReadDir(p.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDev(t *testing.T) {
	p := smallParams(t)
	w, err := New(NameDev, p)
	require.NoError(t, err)

	s, err := Operation(w, time.Millisecond)()
	require.NoError(t, err)

	assert.Equal(t, NameDev, s.Workload)
	names := make([]string, 0, len(s.Bursts))
	for _, b := range s.Bursts {
		names = append(names, b.Name)
	}
	assert.Equal(t, []string{"CPU", "IO", "MEM"}, names)

	entries, err := os.ReadDir(p.TempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch directory must be removed")
}

func TestDevIdle(t *testing.T) {
	w := &Dev{Params: Params{IdleMin: time.Second, IdleMax: 2 * time.Second}}
	for i := 0; i < 100; i++ {
		d := w.idle()
		assert.GreaterOrEqual(t, d, time.Second)
		assert.Less(t, d, 2*time.Second)
	}

	w = &Dev{Params: Params{IdleMin: time.Second}}
	assert.Equal(t, time.Second, w.idle())
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.add(BurstStats{Name: "CPU", Runs: 1, Events: 10, Duration: time.Second})
	s.add(BurstStats{Name: "IO", Runs: 1, Events: 2, Duration: time.Second})
	s.add(BurstStats{Name: "CPU", Runs: 1, Events: 5, Duration: time.Second})

	require.Len(t, s.Bursts, 2)
	assert.Equal(t, BurstStats{Name: "CPU", Runs: 2, Events: 15, Duration: 2 * time.Second}, s.Bursts[0])
	assert.Equal(t, 17, s.Events())
}
