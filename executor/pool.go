// File: pool.go
// Role: Worker pool with blocking submission and per-item handles.

package executor

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("executor: pool closed")

	// ErrPanic wraps a panic raised by a work item.
	ErrPanic = errors.New("executor: work panicked")

	// ErrNilWork is returned by Submit for a nil Work.
	ErrNilWork = errors.New("executor: nil work")
)

// Work is one unit of work. ctx is the context given to Submit.
type Work func(ctx context.Context) error

// Handle is the future-like result of a submitted Work.
type Handle struct {
	done chan struct{}
	err  error
}

// Done is closed once the work has returned.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Err returns the work's error; valid after Done is closed.
func (h *Handle) Err() error { return h.err }

// Wait blocks until the work returns or ctx is done. A ctx error does not
// stop the work.
func (h *Handle) Wait(ctx context.Context) error {
	select {
	case <-h.done:
		return h.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type item struct {
	ctx  context.Context
	work Work
	h    *Handle
}

// Pool runs submitted work on a fixed number of goroutines.
type Pool struct {
	size  int
	queue chan item
	log   *zap.Logger

	mu     sync.RWMutex // guards closed against concurrent Submit
	closed bool
	wg     sync.WaitGroup
}

// Option configures New.
type Option func(*config)

type config struct {
	queue int
	log   *zap.Logger
}

// WithQueue sets the queue capacity (default: the pool size). Zero makes
// every Submit wait for an idle worker.
func WithQueue(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.queue = n
		}
	}
}

// WithLogger sets the pool logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.log = l
		}
	}
}

// New starts a pool of size workers; size ≤ 0 means GOMAXPROCS.
func New(size int, opts ...Option) (*Pool, error) {
	if size <= 0 {
		size = runtime.GOMAXPROCS(0)
	}
	cfg := config{queue: size, log: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	p := &Pool{size: size, queue: make(chan item, cfg.queue), log: cfg.log}
	p.wg.Add(size)
	for w := 0; w < size; w++ {
		go p.worker(w)
	}
	p.log.Debug("executor started", zap.Int("workers", size), zap.Int("queue", cfg.queue))

	return p, nil
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

// Submit queues w, blocking while the queue is full. It fails with ErrClosed
// after Close, or with ctx's error if ctx ends before w is queued; in both
// cases w never runs.
func (p *Pool) Submit(ctx context.Context, w Work) (*Handle, error) {
	if w == nil {
		return nil, ErrNilWork
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrClosed
	}
	h := &Handle{done: make(chan struct{})}
	select {
	case p.queue <- item{ctx: ctx, work: w, h: h}:
		return h, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops intake and waits until every queued item has run.
// It is safe to call more than once.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	p.wg.Wait()
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for it := range p.queue {
		it.h.err = run(it)
		close(it.h.done)
	}
	p.log.Debug("executor worker stopped", zap.Int("worker", id))
}

func run(it item) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return it.work(it.ctx)
}
