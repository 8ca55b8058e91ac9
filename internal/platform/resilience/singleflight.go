package resilience

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// SingleFlight deduplicates concurrent calls for the same key. Callers stop waiting
// when their context ends; the shared call keeps running for the others.
type SingleFlight[T any] struct {
	group singleflight.Group
}

func (g *SingleFlight[T]) Do(ctx context.Context, key string, fn func() (T, error)) (T, bool, error) {
	ch := g.group.DoChan(key, func() (any, error) {
		return fn()
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Shared, res.Err
		}
		return res.Val.(T), res.Shared, nil
	}
}

// Forget drops an in-flight key so the next call starts a fresh load.
func (g *SingleFlight[T]) Forget(key string) {
	g.group.Forget(key)
}
