package utils

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsAllJobs(t *testing.T) {
	pool := NewWorkerPool(4)

	var counter int64
	for i := 0; i < 50; i++ {
		pool.Submit(func() {
			atomic.AddInt64(&counter, 1)
		})
	}
	pool.Wait()

	if counter != 50 {
		t.Errorf("ran %d jobs; want 50", counter)
	}
}

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	const maxWorkers = 3
	pool := NewWorkerPool(maxWorkers)

	var mu sync.Mutex
	running, peak := 0, 0

	for i := 0; i < 20; i++ {
		pool.Submit(func() {
			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()

			mu.Lock()
			running--
			mu.Unlock()
		})
	}
	pool.Wait()

	if peak > maxWorkers {
		t.Errorf("peak concurrency %d exceeds limit %d", peak, maxWorkers)
	}
}

func TestPathSetDeduplicates(t *testing.T) {
	s := NewPathSet()

	if !s.Add("/data/a.csv") {
		t.Error("first Add should return true")
	}
	if s.Add("/data/a.csv") {
		t.Error("second Add of the same path should return false")
	}
	if !s.Add("/data/b.csv") {
		t.Error("Add of a new path should return true")
	}
	if s.Size() != 2 {
		t.Errorf("Size = %d; want 2", s.Size())
	}
}
