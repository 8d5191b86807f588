package main

import (
	"context"
	"runtime"
	"sync"
)

// maxWorkers caps automatic parallelism; builds are mostly file I/O.
const maxWorkers = 8

// resolveWorkers determines the number of parallel builds.
// Priority: explicit flag > GOMAXPROCS-based calculation.
func resolveWorkers(flagJobs int) int {
	if flagJobs > 0 {
		return flagJobs
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / 2
	if n < 1 {
		return 1
	}
	if n > maxWorkers {
		return maxWorkers
	}
	return n
}

// buildBatch runs build for every slug on up to workers goroutines.
// Results keep the order of slugs. Slugs not started before ctx is
// cancelled report ctx.Err().
func buildBatch(ctx context.Context, workers int, slugs []string, build func(slug string) buildResult) []buildResult {
	if len(slugs) == 0 {
		return nil
	}
	if workers > len(slugs) {
		workers = len(slugs)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]buildResult, len(slugs))
	jobs := make(chan int, len(slugs))
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = buildResult{Slug: slugs[idx], Err: err}
					continue
				}
				results[idx] = build(slugs[idx])
			}
		}()
	}

	for i := range slugs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
