package workload

import (
	"math/rand/v2"
	"time"
)

// sink keeps the compiler from dropping the memory burst's work.
var sink int64

// MemoryBurst allocates sizeMB of random integers, sums them and drops the
// slice, iterations times. It pauses 10ms between iterations to give the
// garbage collector a chance to run.
func MemoryBurst(sizeMB, iterations int) int {
	n := sizeMB * 1024 * 1024 / 8
	for i := 0; i < iterations; i++ {
		big := make([]int64, n)
		for j := range big {
			big[j] = rand.Int64N(1000)
		}

		var sum int64
		for _, v := range big {
			sum += v
		}
		sink = sum % 100

		time.Sleep(10 * time.Millisecond)
	}
	return iterations
}
