// Package delta implements the delta-metric task: for every patch of a graph
// it evaluates a global metric on the graph without that patch and reports
// the change against the full-graph baseline.
//
// The patch set is cut into batches of batchSize patches (ascending ID; the
// last batch may be shorter). Every batch runs on an executor.Pool with its
// own clone of the metric launcher, evaluates the derived graphs
// g.WithoutPatch(id), and commits its values to a shared accumulator only
// when the whole batch succeeded. A patch is written at most once.
//
// Task lifecycle:
//
//	Pending → Running → Completed
//	                  → PartiallyFailed  (some batch failed or was dropped)
//	                  → Failed           (the baseline could not be computed)
//
// Errors:
//
//   - Configuration errors (nil graph or launcher, batchSize < 1, a task run
//     twice) are returned before any work is dispatched; the state stays Pending.
//   - ErrComputationFailure wraps a baseline failure; no result is returned.
//   - *PartialFailureError lists the failed patch ids together with the
//     *BatchError of every failed batch. It is returned alongside a valid
//     Result holding every other patch's delta.
//
// Cancellation: cancelling ctx (or the progress reporter carried by ctx) stops
// dispatch. Batches already handed to the pool run to completion; the others
// are reported as BatchErrors with Cancelled set.
//
// Modes: Difference reports base − removed, Ratio reports
// (base − removed) / base for every value of the metric's result tuple.
package delta
