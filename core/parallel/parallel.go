// Package parallel provides a small helper for splitting index ranges
// across CPU cores. It serves in-memory hot loops; block-level task graphs
// use chunked.ForEach instead.
package parallel

import (
	"runtime"
	"sync"
)

// Run splits [0, items) into one contiguous range per available core and
// invokes fn(start, end) for each range on its own goroutine, waiting for
// all of them.
func Run(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}

	// Ceiling division so the last worker picks up the remainder.
	span := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += span {
		end := start + span
		if end > items {
			end = items
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// RunWithThreshold runs fn sequentially over the whole range when items is
// at or below threshold, and parallelizes otherwise. Small inputs are not
// worth the goroutine overhead.
func RunWithThreshold(items, threshold int, fn func(start, end int)) {
	if items <= threshold {
		if items > 0 {
			fn(0, items)
		}
		return
	}
	Run(items, fn)
}
