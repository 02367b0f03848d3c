// Package patchnet is a landscape connectivity engine: habitat patches and
// the dispersal links between them become a weighted graph, which is then
// measured, clustered and stress-tested patch by patch.
//
// What is inside?
//
//	core/          — immutable patch graph, cost definitions (least cost,
//	                 Euclidean; complete, threshold or MST topology), derived
//	                 graphs without a patch
//	dijkstra/, bfs/ — single-source least-cost and hop-count search
//	gridgraph/     — raster cost surfaces and cell-to-cell least cost
//	distance/      — distance matrices: least-cost and flow distance, point
//	                 attachment, parallel rows
//	modularity/    — greedy agglomerative modularity clustering with
//	                 local-search refinement
//	metric/        — global and local connectivity metrics (PC, EC, IIC, H,
//	                 NC, GD, Q, PCintra, Dg, CC, F, Nr, Sum adapters) with
//	                 detail-name parameters
//	delta/         — per-patch delta of a global metric, batched on
//	executor/      — a fixed-size worker pool
//	progress/      — progress and cancellation reporters
//	graphsource/   — YAML/JSON patch and link documents
//	builder/       — deterministic landscape fixtures (Star, Cycle, Grid, …)
//	config/, logging/, observability/ — CLI configuration, zap loggers and
//	                 Prometheus counters
//	cmd/patchnet   — the command-line tool
//
// Quick ASCII example:
//
//	    [1]───[2]
//	     │  ╲
//	    [4]   [3]
//
//	Removing patch 1 splits the landscape into three pieces; the delta task
//	ranks it first.
//
//	go run ./cmd/patchnet -i landscape.yaml -m PC_d1000_p0.05_beta1 --delta.enabled
package patchnet
