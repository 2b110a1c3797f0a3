package purefn

import (
	"time"

	"github.com/on-the-ground/memoize_ive_go/purefn/internal/trie"
)

type slot[O any] struct {
	value   O
	stored  time.Time
	expires time.Time
	forever bool
}

func (s slot[O]) entry() Entry[O] {
	return Entry[O]{Value: s.value, Stored: s.stored, Expires: s.expires, NeverExpires: s.forever}
}

// cache owns the argument trie and the expiration policy shared by every
// memoizer flavour.
type cache[O any] struct {
	tree  *trie.Trie[slot[O]]
	cfg   config
	instr *instruments
	// failed marks stored values that must not be served even while fresh.
	failed func(O) bool
}

const nilFunc = "purefn: memoized function is nil"

func newCache[O any](opts []Option) *cache[O] {
	cfg := newConfig(opts)
	c := &cache[O]{
		tree:  trie.New[slot[O]](),
		cfg:   cfg,
		instr: newInstruments(cfg),
	}
	c.tree.OnRelease(c.instr.release)
	return c
}

// resolve returns the value cached for args while it is fresh. Otherwise it
// calls compute and stores the result unless compute reports keep == false.
// The node stays locked throughout, so concurrent callers with the same
// arguments wait for one computation.
func (c *cache[O]) resolve(args []any, compute func() (v O, keep bool)) (O, *trie.Node[slot[O]], bool) {
	n := c.tree.Walk(args)
	n.Lock()
	defer n.Unlock()

	now := c.cfg.clock()
	if s, ok := n.Load(); ok && s.entry().Fresh(now) && !c.isFailed(s.value) {
		c.instr.hit(args)
		return s.value, n, false
	}
	c.instr.miss(args)

	expires, forever := c.cfg.expiration(now)
	v, keep := compute()
	if !keep {
		return v, n, false
	}
	n.Store(slot[O]{value: v, stored: now, expires: expires, forever: forever})
	c.instr.store(args)
	return v, n, true
}

func (c *cache[O]) isFailed(v O) bool {
	return c.failed != nil && c.failed(v)
}

// Peek returns the entry stored for args, fresh or stale, without calling the
// memoized function.
func (c *cache[O]) Peek(args ...any) (Entry[O], bool) {
	n, ok := c.tree.Find(args)
	if !ok {
		return Entry[O]{}, false
	}
	n.Lock()
	defer n.Unlock()
	s, ok := n.Load()
	if !ok {
		return Entry[O]{}, false
	}
	return s.entry(), true
}

// Forget drops the entry stored for args and reports whether there was one.
func (c *cache[O]) Forget(args ...any) bool {
	n, ok := c.tree.Find(args)
	if !ok {
		return false
	}
	n.Lock()
	defer n.Unlock()
	if _, ok := n.Load(); !ok {
		return false
	}
	n.Clear()
	return true
}

// Memo caches the results of a function by its exact argument sequence.
type Memo[O any] struct {
	*cache[O]
	fn func(args ...any) O
}

// New returns a memoizer for fn.
func New[O any](fn func(args ...any) O, opts ...Option) *Memo[O] {
	if fn == nil {
		panic(nilFunc)
	}
	return &Memo[O]{cache: newCache[O](opts), fn: fn}
}

// Call returns the cached result for args, invoking fn when there is no fresh
// one. A panic in fn leaves the cache untouched.
func (m *Memo[O]) Call(args ...any) O {
	v, _, _ := m.resolve(args, func() (O, bool) {
		return m.fn(args...), true
	})
	return v
}

// Memoize wraps fn so repeated calls with identical arguments reuse the first
// result until it expires.
func Memoize[O any](fn func(args ...any) O, opts ...Option) func(args ...any) O {
	return New(fn, opts...).Call
}

// ErrMemo is a Memo for functions that can fail. Errors are returned to the
// caller and never cached.
type ErrMemo[O any] struct {
	*cache[O]
	fn func(args ...any) (O, error)
}

// NewErr returns a memoizer for a fallible fn.
func NewErr[O any](fn func(args ...any) (O, error), opts ...Option) *ErrMemo[O] {
	if fn == nil {
		panic(nilFunc)
	}
	return &ErrMemo[O]{cache: newCache[O](opts), fn: fn}
}

// Call returns the cached result for args or calls fn. When fn fails its
// result and error are returned as is and nothing is stored.
func (m *ErrMemo[O]) Call(args ...any) (O, error) {
	var err error
	v, _, _ := m.resolve(args, func() (O, bool) {
		var v O
		v, err = m.fn(args...)
		return v, err == nil
	})
	return v, err
}

// MemoizeErr is Memoize for functions returning an error.
func MemoizeErr[O any](fn func(args ...any) (O, error), opts ...Option) func(args ...any) (O, error) {
	return NewErr(fn, opts...).Call
}
