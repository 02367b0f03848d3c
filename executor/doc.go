// Package executor is a fixed-size worker pool: a channel of work items
// consumed by a constant number of goroutines.
//
//	p, _ := executor.New(4, executor.WithQueue(8))
//	h, _ := p.Submit(ctx, func(ctx context.Context) error { ... })
//	err := h.Wait(ctx)
//	p.Close()
//
// Submit blocks while the queue is full, which is the pool's only form of
// backpressure. Every submitted item runs exactly once, even after Close;
// Close stops intake and waits for the queue to drain. A panicking item is
// reported through its Handle as ErrPanic and does not kill the worker.
package executor
