package purefn

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPanicked wraps the value recovered from a panicking Go function.
var ErrPanicked = errors.New("future function panicked")

// Result represents the outcome of a future.
type Result[O any] struct {
	Value O
	Err   error
}

// Future is a value that resolves exactly once.
type Future[O any] struct {
	done   chan struct{}
	mu     sync.Mutex
	result Result[O]
	hooks  []func()
}

// NewFuture returns a pending future and the function resolving it. Only the
// first call to resolve has an effect.
func NewFuture[O any]() (*Future[O], func(O, error)) {
	f := &Future[O]{done: make(chan struct{})}
	return f, f.resolve
}

// Go runs fn in a new goroutine and resolves the future with its result.
func Go[O any](fn func() (O, error)) *Future[O] {
	f, resolve := NewFuture[O]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero O
				resolve(zero, fmt.Errorf("%w: %v", ErrPanicked, r))
			}
		}()
		resolve(fn())
	}()
	return f
}

// Resolved returns a future already holding v.
func Resolved[O any](v O) *Future[O] {
	f, resolve := NewFuture[O]()
	resolve(v, nil)
	return f
}

// Failed returns a future already holding err.
func Failed[O any](err error) *Future[O] {
	f, resolve := NewFuture[O]()
	var zero O
	resolve(zero, err)
	return f
}

func (f *Future[O]) resolve(v O, err error) {
	f.mu.Lock()
	select {
	case <-f.done:
		f.mu.Unlock()
		return
	default:
	}
	f.result = Result[O]{Value: v, Err: err}
	close(f.done)
	hooks := f.hooks
	f.hooks = nil
	f.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

// whenDone runs fn once the future is resolved, right away if it already is.
func (f *Future[O]) whenDone(fn func()) {
	f.mu.Lock()
	select {
	case <-f.done:
		f.mu.Unlock()
		fn()
	default:
		f.hooks = append(f.hooks, fn)
		f.mu.Unlock()
	}
}

// Done is closed once the future is resolved.
func (f *Future[O]) Done() <-chan struct{} {
	return f.done
}

// Result returns the outcome and whether the future has resolved.
func (f *Future[O]) Result() (Result[O], bool) {
	select {
	case <-f.done:
		return f.result, true
	default:
		return Result[O]{}, false
	}
}

// Await blocks until the future resolves or ctx is done.
func (f *Future[O]) Await(ctx context.Context) (O, error) {
	select {
	case <-f.done:
		return f.result.Value, f.result.Err
	case <-ctx.Done():
		var zero O
		return zero, ctx.Err()
	}
}
