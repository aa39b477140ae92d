// Package hook provides a registry of handlers grouped under string keys.
package hook

import (
	"context"
	"fmt"
	"sync"
)

// Handler is one registered hook. O carries the arguments shared by every
// handler of a registry and R is the value each handler produces.
type Handler[O, R any] func(ctx context.Context, opts O) (R, error)

// HookError reports which handler of a key failed.
type HookError struct {
	Key   string
	Index int
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("hook %q #%d: %v", e.Key, e.Index, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

// Registry maps keys to handlers, keeping registration order per key.
// Handlers are not required to be idempotent: applying the same key twice runs
// every handler twice.
type Registry[O, R any] struct {
	mu    sync.RWMutex
	hooks map[string][]Handler[O, R]
}

func NewRegistry[O, R any]() *Registry[O, R] {
	return &Registry[O, R]{
		hooks: make(map[string][]Handler[O, R]),
	}
}

// AddHook registers h under each of keys.
func (r *Registry[O, R]) AddHook(h Handler[O, R], keys ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range keys {
		r.hooks[key] = append(r.hooks[key], h)
	}
}

// ApplyHook runs the handlers registered under key in registration order and
// returns their results in the same order. An unknown key yields an empty
// slice. The first failing handler stops the run; its error is returned as a
// *HookError together with the results collected before it.
func (r *Registry[O, R]) ApplyHook(ctx context.Context, key string, opts O) ([]R, error) {
	r.mu.RLock()
	handlers := append([]Handler[O, R](nil), r.hooks[key]...)
	r.mu.RUnlock()

	results := make([]R, 0, len(handlers))
	for i, h := range handlers {
		if err := ctx.Err(); err != nil {
			return results, &HookError{Key: key, Index: i, Err: err}
		}
		res, err := h(ctx, opts)
		if err != nil {
			return results, &HookError{Key: key, Index: i, Err: err}
		}
		results = append(results, res)
	}
	return results, nil
}

// Len returns the number of handlers registered under key.
func (r *Registry[O, R]) Len(key string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.hooks[key])
}
