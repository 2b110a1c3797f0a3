package purefn_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/on-the-ground/memoize_ive_go/purefn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestMemoizeAsync_SingleFlight(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	var calls atomic.Int32
	mem := purefn.MemoizeAsync(func(args ...any) *purefn.Future[string] {
		calls.Add(1)
		return purefn.Go(func() (string, error) {
			<-release
			return "user:" + args[0].(string), nil
		})
	})

	first := mem("42")
	second := mem("42")
	assert.Same(t, first, second)
	assert.EqualValues(t, 1, calls.Load())

	_, resolved := first.Result()
	assert.False(t, resolved)

	close(release)
	v, err := second.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user:42", v)

	// resolved futures stay cached
	assert.Same(t, first, mem("42"))
	assert.EqualValues(t, 1, calls.Load())
}

func TestMemoizeAsync_ParallelCallers(t *testing.T) {
	ctx := context.Background()
	release := make(chan struct{})
	var calls atomic.Int32
	mem := purefn.MemoizeAsync(func(args ...any) *purefn.Future[int] {
		calls.Add(1)
		return purefn.Go(func() (int, error) {
			<-release
			return args[0].(int) * 2, nil
		})
	})

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			v, err := mem(21).Await(gctx)
			if err != nil {
				return err
			}
			if v != 42 {
				return errors.New("unexpected value")
			}
			return nil
		})
	}
	time.Sleep(20 * time.Millisecond)
	close(release)

	require.NoError(t, g.Wait())
	assert.EqualValues(t, 1, calls.Load())
}

func TestMemoizeAsync_FailuresAreRetried(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	release := make(chan struct{})
	var calls atomic.Int32
	memo := purefn.NewAsync(func(args ...any) *purefn.Future[int] {
		n := calls.Add(1)
		return purefn.Go(func() (int, error) {
			<-release
			if n == 1 {
				return 0, boom
			}
			return int(n), nil
		})
	})

	first := memo.Call("k")
	assert.Same(t, first, memo.Call("k"), "pending futures are shared")

	close(release)
	_, err := first.Await(ctx)
	assert.ErrorIs(t, err, boom)

	// retrying right after the failure never gets the failed future back
	second := memo.Call("k")
	assert.NotSame(t, first, second)
	v, err := second.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Same(t, second, memo.Call("k"))
	assert.EqualValues(t, 2, calls.Load())
}

func TestMemoizeAsync_AlreadyFailedFutureIsNotCached(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	mem := purefn.MemoizeAsync(func(args ...any) *purefn.Future[int] {
		calls++
		if calls == 1 {
			return purefn.Failed[int](boom)
		}
		return purefn.Resolved(calls)
	})

	_, err := mem().Await(context.Background())
	assert.ErrorIs(t, err, boom)

	v, err := mem().Await(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, v)

	_, _ = mem().Await(context.Background())
	assert.Equal(t, 2, calls)
}

func TestMemoizeAsync_NilFutureIsNotCached(t *testing.T) {
	calls := 0
	mem := purefn.MemoizeAsync(func(args ...any) *purefn.Future[int] {
		calls++
		return nil
	})

	assert.Nil(t, mem(1))
	assert.Nil(t, mem(1))
	assert.Equal(t, 2, calls)
}

func TestMemoizeAsync_Expiration(t *testing.T) {
	clock := newFakeClock()
	calls := 0
	mem := purefn.MemoizeAsync(func(args ...any) *purefn.Future[int] {
		calls++
		return purefn.Resolved(calls)
	}, purefn.WithTTL(10*time.Millisecond), purefn.WithClock(clock.Now))

	first := mem()
	assert.Same(t, first, mem())

	clock.Advance(10 * time.Millisecond)
	second := mem()
	assert.NotSame(t, first, second)
	assert.Equal(t, 2, calls)
}
