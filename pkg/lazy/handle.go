// Package lazy provides a process-wide handle that is created on first use.
package lazy

import (
	"context"
	"sync"
)

// Handle initialises a shared value once. Concurrent callers wait for the
// in-flight initialisation instead of starting their own, and a failed
// attempt is not cached so the next caller retries.
type Handle[T any] struct {
	mu      sync.Mutex
	init    func(ctx context.Context) (T, error)
	release func(T) error
	value   T
	ready   bool
}

func New[T any](init func(ctx context.Context) (T, error), release func(T) error) *Handle[T] {
	return &Handle[T]{init: init, release: release}
}

func (h *Handle[T]) Get(ctx context.Context) (T, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.ready {
		return h.value, nil
	}
	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	v, err := h.init(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	h.value = v
	h.ready = true
	return v, nil
}

// Close releases the value if one was created. The handle can be reused
// afterwards and will initialise again.
func (h *Handle[T]) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.ready {
		return nil
	}
	var err error
	if h.release != nil {
		err = h.release(h.value)
	}
	var zero T
	h.value = zero
	h.ready = false
	return err
}
