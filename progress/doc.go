// Package progress is the progress and cancellation collaborator handed to
// long-running computations (distance matrices, global metrics, delta tasks).
//
// A Reporter receives Report(step, total) as work advances and is polled via
// Cancelled() between units of work. Reporters travel either explicitly (in
// metric.CalcOptions) or through a context with WithReporter/FromContext.
//
// Implementations:
//
//   - Nop:        ignores reports, never cancels.
//   - Canceller:  a flag that any goroutine can raise with Cancel().
//   - Logger:     logs every n-th step through zap.
//   - Tee:        fans reports out to several reporters; cancelled if any is.
//
// All reporters in this package are safe for concurrent use.
package progress
