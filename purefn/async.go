package purefn

// AsyncMemo caches the futures returned by a function. Calls made while a
// future is pending share it, and a future that resolves with an error is
// dropped from the cache so the next call starts over.
type AsyncMemo[O any] struct {
	*cache[*Future[O]]
	fn func(args ...any) *Future[O]
}

// NewAsync returns an async memoizer for fn.
func NewAsync[O any](fn func(args ...any) *Future[O], opts ...Option) *AsyncMemo[O] {
	if fn == nil {
		panic(nilFunc)
	}
	c := newCache[*Future[O]](opts)
	// A failed future can still sit in its slot until its purge hook runs.
	c.failed = func(f *Future[O]) bool {
		res, done := f.Result()
		return done && res.Err != nil
	}
	return &AsyncMemo[O]{cache: c, fn: fn}
}

// Call returns the future cached for args or the one fn returns. A nil future
// is passed through and not cached.
func (m *AsyncMemo[O]) Call(args ...any) *Future[O] {
	f, n, stored := m.resolve(args, func() (*Future[O], bool) {
		f := m.fn(args...)
		return f, f != nil
	})
	if !stored {
		return f
	}

	f.whenDone(func() {
		res, _ := f.Result()
		if res.Err == nil {
			return
		}
		n.Lock()
		defer n.Unlock()
		// A newer future may already sit in the slot.
		if s, ok := n.Load(); ok && s.value == f {
			n.Clear()
			m.instr.purge(args, res.Err)
		}
	})
	return f
}

// MemoizeAsync is Memoize for functions returning a Future.
func MemoizeAsync[O any](fn func(args ...any) *Future[O], opts ...Option) func(args ...any) *Future[O] {
	return NewAsync(fn, opts...).Call
}
