package inference

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"goseg/domain/core"
)

// maxRedraws bounds how often one iteration is redrawn when a resample turns
// out degenerate (e.g. a bootstrap draw with an empty subgroup).
const maxRedraws = 100

// drawFunc produces one simulated estimate from one seeded stream.
type drawFunc func(rng *rand.Rand) (float64, error)

// simulate runs iterations of draw with bounded parallelism. Each iteration
// gets its own deterministic stream from the RNG port, so results are
// reproducible at any worker count. Degenerate draws are retried on a fresh
// stream; any other error aborts the run.
func simulate(ctx context.Context, opts Options, name string, draw drawFunc) ([]float64, error) {
	start := time.Now()
	estimates := make([]float64, opts.Iterations)

	sem := semaphore.NewWeighted(int64(opts.Workers))
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		cancel()
	}

	for iter := 0; iter < opts.Iterations; iter++ {
		if err := sem.Acquire(runCtx, 1); err != nil {
			fail(err)
			break
		}
		wg.Add(1)
		go func(iter int) {
			defer wg.Done()
			defer sem.Release(1)

			for attempt := 0; attempt < maxRedraws; attempt++ {
				stream, err := opts.RNG.IterationStream(runCtx, name, iter+attempt*opts.Iterations, opts.Seed)
				if err != nil {
					fail(err)
					return
				}
				est, err := draw(stream)
				if err == nil {
					estimates[iter] = est
					return
				}
				if !isDegenerateDraw(err) {
					fail(err)
					return
				}
			}
			fail(core.ErrDegenerate)
		}(iter)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	log.Printf("[Inference] %s: %d simulations in %v (%d workers)", name, opts.Iterations, time.Since(start), opts.Workers)
	return estimates, nil
}

// isDegenerateDraw reports whether a simulated frame simply had nothing to
// measure, which warrants a redraw rather than a failed run.
func isDegenerateDraw(err error) bool {
	return errors.Is(err, core.ErrInsufficientData) || errors.Is(err, core.ErrDegenerate)
}
