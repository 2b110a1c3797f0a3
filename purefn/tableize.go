package purefn

import (
	"github.com/on-the-ground/memoize_ive_go/shared/helper"
)

func MemoizeI0O1[O1 any](
	fn func() O1,
	opts ...Option,
) func() O1 {
	memo := New(
		func(args ...any) O1 {
			return fn()
		},
		opts...,
	)
	return func() O1 {
		return memo.Call()
	}
}

func MemoizeI1O1[I1, O1 any](
	fn func(I1) O1,
	opts ...Option,
) func(I1) O1 {
	memo := New(
		func(args ...any) O1 {
			return fn(helper.ArgAs[I1](args[0]))
		},
		opts...,
	)
	return func(i1 I1) O1 {
		return memo.Call(i1)
	}
}

func MemoizeI2O1[I1, I2, O1 any](
	fn func(I1, I2) O1,
	opts ...Option,
) func(I1, I2) O1 {
	memo := New(
		func(args ...any) O1 {
			return fn(helper.ArgAs[I1](args[0]), helper.ArgAs[I2](args[1]))
		},
		opts...,
	)
	return func(i1 I1, i2 I2) O1 {
		return memo.Call(i1, i2)
	}
}

func MemoizeI3O1[I1, I2, I3, O1 any](
	fn func(I1, I2, I3) O1,
	opts ...Option,
) func(I1, I2, I3) O1 {
	memo := New(
		func(args ...any) O1 {
			return fn(helper.ArgAs[I1](args[0]), helper.ArgAs[I2](args[1]), helper.ArgAs[I3](args[2]))
		},
		opts...,
	)
	return func(i1 I1, i2 I2, i3 I3) O1 {
		return memo.Call(i1, i2, i3)
	}
}

func MemoizeI4O1[I1, I2, I3, I4, O1 any](
	fn func(I1, I2, I3, I4) O1,
	opts ...Option,
) func(I1, I2, I3, I4) O1 {
	memo := New(
		func(args ...any) O1 {
			return fn(
				helper.ArgAs[I1](args[0]),
				helper.ArgAs[I2](args[1]),
				helper.ArgAs[I3](args[2]),
				helper.ArgAs[I4](args[3]),
			)
		},
		opts...,
	)
	return func(i1 I1, i2 I2, i3 I3, i4 I4) O1 {
		return memo.Call(i1, i2, i3, i4)
	}
}
