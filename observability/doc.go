// Package observability holds the Prometheus collector of patchnet runs.
//
// A Collector owns a private registry, so several collectors (one per test,
// one per CLI run) never clash on registration. It implements
// distance.RowObserver and delta.Observer and is handed to the engine and the
// task through their WithObserver options.
package observability
