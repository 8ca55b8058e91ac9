package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// runBounded runs tasks on an ants pool of at most workers goroutines and returns
// the first error. Remaining tasks see a cancelled context once one fails.
func runBounded(ctx context.Context, workers int, tasks []func(context.Context) error) error {
	if len(tasks) == 0 {
		return nil
	}
	workers = min(max(workers, 1), len(tasks))

	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		once     sync.Once
		firstErr error
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for _, task := range tasks {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			if err := task(ctx); err != nil {
				fail(err)
			}
		}); err != nil {
			wg.Done()
			fail(fmt.Errorf("submit task: %w", err))
			break
		}
	}
	wg.Wait()

	if firstErr == nil && ctx.Err() != nil {
		// Parent context ended before all tasks ran.
		return ctx.Err()
	}
	return firstErr
}
