package purefn

import (
	"github.com/on-the-ground/memoize_ive_go/shared/helper"
)

// The O2 family caches both results together. Use MemoizeErr instead when
// the second result is an error that must not be cached.

func MemoizeI1O2[I1, O1, O2 any](
	fn func(I1) (O1, O2),
	opts ...Option,
) func(I1) (O1, O2) {
	memo := New(
		func(args ...any) result[O1, O2] {
			return resultOf[O1, O2](fn(helper.ArgAs[I1](args[0])))
		},
		opts...,
	)
	return func(i1 I1) (O1, O2) {
		return memo.Call(i1).unpack()
	}
}

func MemoizeI2O2[I1, I2, O1, O2 any](
	fn func(I1, I2) (O1, O2),
	opts ...Option,
) func(I1, I2) (O1, O2) {
	memo := New(
		func(args ...any) result[O1, O2] {
			return resultOf[O1, O2](fn(helper.ArgAs[I1](args[0]), helper.ArgAs[I2](args[1])))
		},
		opts...,
	)
	return func(i1 I1, i2 I2) (O1, O2) {
		return memo.Call(i1, i2).unpack()
	}
}

func MemoizeI3O2[I1, I2, I3, O1, O2 any](
	fn func(I1, I2, I3) (O1, O2),
	opts ...Option,
) func(I1, I2, I3) (O1, O2) {
	memo := New(
		func(args ...any) result[O1, O2] {
			return resultOf[O1, O2](fn(helper.ArgAs[I1](args[0]), helper.ArgAs[I2](args[1]), helper.ArgAs[I3](args[2])))
		},
		opts...,
	)
	return func(i1 I1, i2 I2, i3 I3) (O1, O2) {
		return memo.Call(i1, i2, i3).unpack()
	}
}

func MemoizeI4O2[I1, I2, I3, I4, O1, O2 any](
	fn func(I1, I2, I3, I4) (O1, O2),
	opts ...Option,
) func(I1, I2, I3, I4) (O1, O2) {
	memo := New(
		func(args ...any) result[O1, O2] {
			return resultOf[O1, O2](fn(
				helper.ArgAs[I1](args[0]),
				helper.ArgAs[I2](args[1]),
				helper.ArgAs[I3](args[2]),
				helper.ArgAs[I4](args[3]),
			))
		},
		opts...,
	)
	return func(i1 I1, i2 I2, i3 I3, i4 I4) (O1, O2) {
		return memo.Call(i1, i2, i3, i4).unpack()
	}
}

type result[O1 any, O2 any] struct {
	O1 O1
	O2 O2
}

func resultOf[O1, O2 any](o1 O1, o2 O2) result[O1, O2] {
	return result[O1, O2]{O1: o1, O2: o2}
}

func (r result[O1, O2]) unpack() (O1, O2) {
	return r.O1, r.O2
}
