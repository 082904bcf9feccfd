package hostinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollect(t *testing.T) {
	info := Collect()

	// Everything is best effort, but these are available on every CI host
	// we run on.
	if runtime.GOOS == "linux" {
		assert.NotEmpty(t, info.KernelVersion)
		assert.Positive(t, info.CPUThreads)
		assert.Positive(t, info.MemTotal)
		assert.NotNil(t, info.Load)
	}
}
