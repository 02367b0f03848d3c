package executor_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/patchnet/executor"
)

func TestPool_RunsEveryItem(t *testing.T) {
	p, err := executor.New(3, executor.WithQueue(2))
	require.NoError(t, err)
	assert.Equal(t, 3, p.Size())

	var n atomic.Int64
	hs := make([]*executor.Handle, 0, 50)
	for i := 0; i < 50; i++ {
		h, err := p.Submit(context.Background(), func(context.Context) error {
			n.Add(1)
			return nil
		})
		require.NoError(t, err)
		hs = append(hs, h)
	}
	for _, h := range hs {
		require.NoError(t, h.Wait(context.Background()))
	}
	p.Close()
	assert.EqualValues(t, 50, n.Load())
}

func TestPool_DefaultSize(t *testing.T) {
	p, err := executor.New(0)
	require.NoError(t, err)
	defer p.Close()
	assert.Positive(t, p.Size())
}

func TestPool_ErrorAndPanic(t *testing.T) {
	p, err := executor.New(1)
	require.NoError(t, err)
	defer p.Close()

	boom := errors.New("boom")
	h1, err := p.Submit(context.Background(), func(context.Context) error { return boom })
	require.NoError(t, err)
	h2, err := p.Submit(context.Background(), func(context.Context) error { panic("bad") })
	require.NoError(t, err)
	h3, err := p.Submit(context.Background(), func(context.Context) error { return nil })
	require.NoError(t, err)

	assert.ErrorIs(t, h1.Wait(context.Background()), boom)
	assert.ErrorIs(t, h2.Wait(context.Background()), executor.ErrPanic)
	assert.NoError(t, h3.Wait(context.Background()), "worker survives a panic")
	<-h3.Done()
	assert.NoError(t, h3.Err())
}

func TestPool_SubmitValidation(t *testing.T) {
	p, err := executor.New(1)
	require.NoError(t, err)

	_, err = p.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, executor.ErrNilWork)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Submit(ctx, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)

	p.Close()
	p.Close()
	_, err = p.Submit(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, executor.ErrClosed)
}

func TestPool_SubmitBlocksWhenFull(t *testing.T) {
	p, err := executor.New(1, executor.WithQueue(0))
	require.NoError(t, err)
	defer p.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	_, err = p.Submit(context.Background(), func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	require.NoError(t, err)
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = p.Submit(ctx, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	close(release)
}

func TestPool_CloseDrainsQueue(t *testing.T) {
	p, err := executor.New(2, executor.WithQueue(10))
	require.NoError(t, err)

	var mu sync.Mutex
	var done []int
	for i := 0; i < 10; i++ {
		i := i
		_, err := p.Submit(context.Background(), func(context.Context) error {
			time.Sleep(time.Millisecond)
			mu.Lock()
			done = append(done, i)
			mu.Unlock()
			return nil
		})
		require.NoError(t, err)
	}
	p.Close()
	assert.Len(t, done, 10)
}

func TestHandle_WaitContext(t *testing.T) {
	p, err := executor.New(1)
	require.NoError(t, err)

	release := make(chan struct{})
	h, err := p.Submit(context.Background(), func(context.Context) error {
		<-release
		return nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, h.Wait(ctx), context.Canceled)

	close(release)
	assert.NoError(t, h.Wait(context.Background()))
	p.Close()
}
