package helpers

import (
	"fmt"
	"sync"
)

type PoolStats struct {
	creates int
	resets  int
	hits    int
}

func (s PoolStats) String() string {
	return fmt.Sprint("creates: ", s.creates, ", resets: ", s.resets, ", hits: ", s.hits)
}

const _poolSize = 256

// CreatePool returns get/release/stats functions over a bounded ring of
// reusable values. Releasing into a full ring drops the value.
func CreatePool[T any](create func() T, reset func(*T)) (func() *T, func(*T), func() PoolStats) {
	availableBuffer := [_poolSize]*T{}
	startIndex := 0
	available := 0

	lock := sync.Mutex{}
	stats := PoolStats{}

	var get = func() *T {
		lock.Lock()

		if available > 0 {
			result := availableBuffer[startIndex]
			availableBuffer[startIndex] = nil
			startIndex = (startIndex + 1) % _poolSize
			available--
			stats.hits++

			lock.Unlock()
			return result
		}

		stats.creates++
		lock.Unlock()

		result := create()
		return &result
	}

	var release = func(t *T) {
		reset(t)

		lock.Lock()
		defer lock.Unlock()

		stats.resets++
		if available == _poolSize {
			return
		}
		availableBuffer[(startIndex+available)%_poolSize] = t
		available++
	}

	var getStats = func() PoolStats {
		lock.Lock()
		defer lock.Unlock()
		return stats
	}

	return get, release, getStats
}
