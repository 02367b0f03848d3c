// Package bfs counts links: breadth-first search over a core.Graph giving
// the topological distance nl_ij between patches, ignoring link costs.
//
// It feeds the hop-based metrics (IIC divides by 1+nl_ij, the Harary index
// sums 1/nl_ij) and answers "which patches lie within k links" questions.
//
//	res, err := bfs.BFS(g, 1, bfs.WithContext(ctx), bfs.WithMaxLinkCost(500))
//	hops, _ := bfs.Hops(g, 1)
//	near, _ := bfs.Within(g, 1, 2)
//
// Results are indexed by dense node index. Neighbors are enqueued in
// ascending index, so Order and Parent are reproducible.
//
// Errors: ErrNilGraph, ErrPatchNotFound, ErrOptionViolation, ctx.Err(), or a
// wrapped visitor error.
package bfs
