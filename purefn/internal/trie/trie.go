package trie

import (
	"runtime"
	"sync"
	"unsafe"
	"weak"
)

// Trie resolves argument sequences to nodes, one level per argument.
//
// Value arguments key a plain map. Reference arguments key a map by address,
// and each entry holds only a weak pointer to its object, so a subtree is
// dropped once the object that keys it has been collected. A slot that
// references its own key object keeps it reachable, and objects from the tiny
// allocator may outlive every reference to them, so neither is released.
type Trie[S any] struct {
	mu        sync.Mutex
	root      *Node[S]
	onRelease func()
}

// Node is one position in the trie. Its slot is guarded by the node lock,
// which callers hold while they check, compute and store.
type Node[S any] struct {
	mu     sync.Mutex
	values map[any]*Node[S]
	refs   map[refKey]*refEntry[S]
	slot   S
	filled bool
}

type refEntry[S any] struct {
	node *Node[S]
	weak weak.Pointer[byte]
	// pinned entries key memory that is never freed (globals, static funcs,
	// zero-size values), so the address alone identifies them.
	pinned bool
}

func (e *refEntry[S]) holds(p unsafe.Pointer) bool {
	return e.pinned || e.weak.Value() == (*byte)(p)
}

// release is the cleanup argument for a reference entry. Everything in it is
// weak so a pending cleanup never keeps the trie alive.
type release[S any] struct {
	tree   weak.Pointer[Trie[S]]
	parent weak.Pointer[Node[S]]
	entry  weak.Pointer[refEntry[S]]
	key    refKey
}

func New[S any]() *Trie[S] {
	return &Trie[S]{root: &Node[S]{}}
}

// OnRelease registers fn to run after a subtree was dropped because its key
// object was collected. It runs on the runtime's cleanup goroutine.
func (t *Trie[S]) OnRelease(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onRelease = fn
}

// Walk returns the node for args, creating every missing node on the way.
// No arguments resolve to the root.
func (t *Trie[S]) Walk(args []any) *Node[S] {
	keys := keysOf(args)

	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.root
	for _, k := range keys {
		n = t.child(n, k)
	}
	return n
}

// Find is the read-only variant of Walk.
func (t *Trie[S]) Find(args []any) (*Node[S], bool) {
	keys := keysOf(args)

	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.root
	for _, k := range keys {
		if !k.IsRef() {
			c, ok := n.values[k.value]
			if !ok {
				return nil, false
			}
			n = c
			continue
		}
		e, ok := n.refs[k.ref]
		if !ok || !e.holds(k.ptr) {
			return nil, false
		}
		n = e.node
	}
	return n, true
}

// Len counts the nodes below the root.
func (t *Trie[S]) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.root.count()
}

func (n *Node[S]) count() int {
	total := 0
	for _, c := range n.values {
		total += 1 + c.count()
	}
	for _, e := range n.refs {
		total += 1 + e.node.count()
	}
	return total
}

func keysOf(args []any) []Key {
	keys := make([]Key, len(args))
	for i, arg := range args {
		keys[i] = KeyOf(arg)
	}
	return keys
}

func (t *Trie[S]) child(n *Node[S], k Key) *Node[S] {
	if !k.IsRef() {
		if c, ok := n.values[k.value]; ok {
			return c
		}
		if n.values == nil {
			n.values = make(map[any]*Node[S])
		}
		c := &Node[S]{}
		n.values[k.value] = c
		return c
	}

	// An entry whose object died before its cleanup ran may share the address
	// of a new object. It is replaced, never matched.
	if e, ok := n.refs[k.ref]; ok && e.holds(k.ptr) {
		return e.node
	}
	if n.refs == nil {
		n.refs = make(map[refKey]*refEntry[S])
	}
	e := t.observe(n, k)
	n.refs[k.ref] = e
	return e.node
}

func (t *Trie[S]) observe(parent *Node[S], k Key) *refEntry[S] {
	e := &refEntry[S]{node: &Node[S]{}}
	r := release[S]{
		tree:   weak.Make(t),
		parent: weak.Make(parent),
		entry:  weak.Make(e),
		key:    k.ref,
	}
	if !addCleanup((*byte)(k.ptr), r) {
		e.pinned = true
		return e
	}
	e.weak = weak.Make((*byte)(k.ptr))
	return e
}

// addCleanup reports false when p is not heap memory. The runtime registers
// nothing for such pointers since they are never freed.
func addCleanup[S any](p *byte, r release[S]) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return runtime.AddCleanup(p, releaseEntry[S], r) != runtime.Cleanup{}
}

func releaseEntry[S any](r release[S]) {
	t, parent := r.tree.Value(), r.parent.Value()
	if t == nil || parent == nil {
		return
	}

	t.mu.Lock()
	e, ok := parent.refs[r.key]
	released := ok && e == r.entry.Value()
	if released {
		delete(parent.refs, r.key)
	}
	onRelease := t.onRelease
	t.mu.Unlock()

	if released && onRelease != nil {
		onRelease()
	}
}

// Lock acquires the node's slot lock.
func (n *Node[S]) Lock() { n.mu.Lock() }

// Unlock releases the node's slot lock.
func (n *Node[S]) Unlock() { n.mu.Unlock() }

// Load returns the slot and whether it was ever stored. The caller holds the
// node lock.
func (n *Node[S]) Load() (S, bool) {
	return n.slot, n.filled
}

// Store fills the slot, overwriting any previous value. The caller holds the
// node lock.
func (n *Node[S]) Store(s S) {
	n.slot = s
	n.filled = true
}

// Clear empties the slot. The caller holds the node lock.
func (n *Node[S]) Clear() {
	var zero S
	n.slot = zero
	n.filled = false
}
