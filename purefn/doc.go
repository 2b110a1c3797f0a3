// Package purefn memoizes functions by the exact sequence of their arguments.
//
// Memoize is not just a utility to add caching.
// It is a tool that *forces the developer to ask*:
//
//	→ "Is this function really pure?"
//	→ "Can this computation be treated as a lazy table?"
//
// A memoized function keeps one cache entry per distinct argument sequence.
// Arguments are matched position by position:
//   - Values (numbers, strings, bools, nil, comparable structs) match by ==,
//     and their dynamic type is part of the match: int(0), int64(0) and
//     false are three different arguments.
//   - References (pointers, maps, channels, funcs, slices) match by identity.
//     Two structurally equal objects are different arguments.
//
// Entries keyed by a reference do not keep the referenced object alive. Once
// the object is collected, its entries are dropped, with two exceptions:
//   - A cached result that refers to its own key object keeps that object
//     reachable through the cache, so the entry lives as long as the memoizer.
//     Memoize(func(args ...any) any { return args[0] }) is the simplest case.
//   - Small pointer-free objects such as new(int64) share memory blocks with
//     other allocations and may never be reported as collected.
//
// Features:
//   - Memoize, MemoizeErr and MemoizeAsync over variadic functions.
//   - MemoizeI0O1 to MemoizeI4O2: typed wrappers for common arities.
//   - Per-entry expiry, fixed (WithTTL) or computed at store time (WithTTLFunc).
//   - Errors and panics are never cached. Failed futures are dropped.
//   - Concurrent callers with the same arguments wait for a single call.
//   - zap debug logging and OpenTelemetry counters.
//
// Example:
//
//	var fib func(int) int
//	fib = purefn.MemoizeI1O1(func(n int) int {
//		if n <= 1 {
//			return n
//		}
//		return fib(n-1) + fib(n-2)
//	})
//
// The cache grows with every distinct argument sequence and is only bounded
// by expiry. A memoized function must not call itself with the same
// arguments; that call would wait on itself.
//
// WARNING: Do not memoize impure functions (e.g., those depending on time, I/O, etc)
// unless a ttl bounds how stale their results may get.
package purefn
