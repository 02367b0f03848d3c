// Package builder generates deterministic landscape fixtures: patches and
// links in classic topologies, frozen into a *core.Graph by BuildLandscape.
//
// The package offers:
//
//   - Constructors (func(*Draft, builderConfig) error):
//     – Cycle(n):         ring of n patches.
//     – Path(n):          linear chain.
//     – Star(n):          hub plus n-1 leaves; the hub is the first patch.
//     – Complete(n):      every pair linked.
//     – Grid(r, c):       orthogonal lattice.
//     – RandomSparse(n,p): scattered patches, each pair linked with probability p.
//   - Options (BuilderOption):
//     – WithIDScheme, WithSeed/WithRand, WithCostFn, WithArea/WithAreaFn, WithSpacing.
//   - Link cost distributions (CostFn):
//     – DefaultCostFn, ConstantCostFn, UniformCostFn, ExponentialCostFn.
//
// Guarantees:
//
//   - Determinism: same options, seed and constructor order give the same graph.
//   - Composition: constructors share one Draft, so BuildLandscape(def, opts,
//     Cycle(5), Star(4)) yields two components with unique patch IDs.
//   - Option constructors panic on meaningless input; constructors return
//     sentinel errors and never panic.
//
// Link Length is the Euclidean distance between centroids, so the same
// fixture serves least-cost and Euclidean cost definitions.
package builder
