package adapters

import (
	"context"
	"sync"
)

// Handle lazily initializes a shared resource exactly once. Concurrent
// callers wait on the same load; each wait is bounded by its own context
// while the load itself runs to completion in the background.
type Handle[T any] struct {
	once sync.Once
	done chan struct{}
	load func() (T, error)

	val T
	err error
}

// NewHandle creates a handle around load. Nothing runs until the first Get.
func NewHandle[T any](load func() (T, error)) *Handle[T] {
	return &Handle[T]{
		done: make(chan struct{}),
		load: load,
	}
}

// Get returns the loaded value, starting the load on first use
func (h *Handle[T]) Get(ctx context.Context) (T, error) {
	h.once.Do(func() {
		go func() {
			defer close(h.done)
			h.val, h.err = h.load()
		}()
	})

	select {
	case <-h.done:
		return h.val, h.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Ready reports whether the load has finished
func (h *Handle[T]) Ready() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}
