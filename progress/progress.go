package progress

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"
)

// ErrCancelled is returned by computations that stopped because their
// Reporter asked to.
var ErrCancelled = errors.New("progress: cancelled")

// Reporter receives progress and answers cancellation polls.
type Reporter interface {
	Report(step, total int)
	Cancelled() bool
}

// Nop ignores reports and never cancels.
type Nop struct{}

func (Nop) Report(int, int) {}

func (Nop) Cancelled() bool { return false }

// Canceller is a Reporter whose cancellation flag can be raised from any
// goroutine. The zero value is ready to use.
type Canceller struct {
	cancelled atomic.Bool
	step      atomic.Int64
}

// Cancel raises the flag.
func (c *Canceller) Cancel() { c.cancelled.Store(true) }

// Cancelled reports whether Cancel was called.
func (c *Canceller) Cancelled() bool { return c.cancelled.Load() }

// Report records the last step seen.
func (c *Canceller) Report(step, _ int) { c.step.Store(int64(step)) }

// Step returns the last reported step.
func (c *Canceller) Step() int { return int(c.step.Load()) }

// Logger logs every Every-th step (and the last one) at Info level.
type Logger struct {
	Log   *zap.Logger
	Every int
	Task  string
}

// NewLogger returns a Logger for task that reports every n steps.
func NewLogger(log *zap.Logger, task string, every int) *Logger {
	if log == nil {
		log = zap.NewNop()
	}
	if every < 1 {
		every = 1
	}

	return &Logger{Log: log, Every: every, Task: task}
}

func (l *Logger) Report(step, total int) {
	if step%l.Every != 0 && step != total {
		return
	}
	l.Log.Info("progress",
		zap.String("task", l.Task),
		zap.Int("step", step),
		zap.Int("total", total),
	)
}

func (l *Logger) Cancelled() bool { return false }

// Tee fans reports out to every reporter; it is cancelled as soon as any of
// them is.
type Tee []Reporter

func (t Tee) Report(step, total int) {
	for _, r := range t {
		r.Report(step, total)
	}
}

func (t Tee) Cancelled() bool {
	for _, r := range t {
		if r.Cancelled() {
			return true
		}
	}

	return false
}

// Counter wraps a Reporter and turns Inc calls into Report(step, total)
// with a monotonically increasing step. Safe for concurrent use.
type Counter struct {
	r     Reporter
	total int
	done  atomic.Int64
}

// NewCounter returns a Counter over total units reporting to r (Nop if nil).
func NewCounter(r Reporter, total int) *Counter {
	if r == nil {
		r = Nop{}
	}

	return &Counter{r: r, total: total}
}

// Inc marks one more unit done and reports it.
func (c *Counter) Inc() {
	c.r.Report(int(c.done.Add(1)), c.total)
}

// Cancelled forwards to the wrapped reporter.
func (c *Counter) Cancelled() bool { return c.r.Cancelled() }

type ctxKey struct{}

// WithReporter returns a context carrying r.
func WithReporter(ctx context.Context, r Reporter) context.Context {
	return context.WithValue(ctx, ctxKey{}, r)
}

// FromContext returns the Reporter carried by ctx, or Nop.
func FromContext(ctx context.Context) Reporter {
	if r, ok := ctx.Value(ctxKey{}).(Reporter); ok && r != nil {
		return r
	}

	return Nop{}
}

// Check returns the context error if ctx is done, ErrCancelled if r asks to
// stop, and nil otherwise.
func Check(ctx context.Context, r Reporter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r != nil && r.Cancelled() {
		return ErrCancelled
	}

	return nil
}
