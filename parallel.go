package eos

import (
	"sync"
)

// forChunks calls fn on contiguous ranges [lo, hi) covering [0, n). With
// parallel queries enabled and enough elements, ranges run on separate
// goroutines; otherwise fn is called once on the whole range.
//
// The error of the lowest failing range is returned.
func (t *Table) forChunks(n int, fn func(lo, hi int) error) error {
	workers := t.workersFor(n)
	if workers <= 1 {
		return fn(0, n)
	}

	chunk := (n + workers - 1) / workers
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= n {
			break
		}
		hi := min(lo+chunk, n)

		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			errs[w] = fn(lo, hi)
		}(w, lo, hi)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// workersFor returns the number of goroutines to use for n elements.
func (t *Table) workersFor(n int) int {
	if !t.config.EnableParallel {
		return 1
	}
	workers := min(t.config.Workers, n/t.config.MinChunk)
	return max(workers, 1)
}
