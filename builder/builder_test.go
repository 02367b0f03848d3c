// Package builder_test contains functional tests for the landscape
// constructors, verifying counts, topology, determinism and composition.
package builder_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/patchnet/builder"
	"github.com/katalvlaran/patchnet/core"
)

// TestBuilders_Functional runs table-driven functional tests for each builder.
func TestBuilders_Functional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ctor        builder.Constructor
		wantV       int
		wantE       int
		sampleCheck func(t *testing.T, g *core.Graph)
	}{
		{
			name: "Cycle(5)", ctor: builder.Cycle(5), wantV: 5, wantE: 5,
			sampleCheck: func(t *testing.T, g *core.Graph) {
				for i := 1; i <= 5; i++ {
					_, cost, ok := g.Edge(i, i%5+1)
					assert.True(t, ok, "ring link %d", i)
					assert.Equal(t, builder.DefaultLinkCost, cost)
				}
				l, _, _ := g.Edge(1, 2)
				assert.InDelta(t, builder.DefaultSpacing, l.Length, 1e-12)
				a, _ := g.Patch(1)
				b, _ := g.Patch(2)
				assert.InDelta(t, builder.DefaultSpacing, math.Hypot(a.X-b.X, a.Y-b.Y), 1e-12)
			},
		},
		{
			name: "Path(4)", ctor: builder.Path(4), wantV: 4, wantE: 3,
			sampleCheck: func(t *testing.T, g *core.Graph) {
				d, _ := g.Degree(1)
				assert.Equal(t, 1, d)
				d, _ = g.Degree(2)
				assert.Equal(t, 2, d)
			},
		},
		{
			name: "Star(5)", ctor: builder.Star(5), wantV: 5, wantE: 4,
			sampleCheck: func(t *testing.T, g *core.Graph) {
				nbs, _ := g.Neighbors(1)
				assert.Equal(t, []int{2, 3, 4, 5}, nbs, "hub is the first patch")
			},
		},
		{
			name: "Complete(4)", ctor: builder.Complete(4), wantV: 4, wantE: 6,
		},
		{
			name: "Grid(2,3)", ctor: builder.Grid(2, 3), wantV: 6, wantE: 7,
			sampleCheck: func(t *testing.T, g *core.Graph) {
				_, _, ok := g.Edge(1, 4)
				assert.True(t, ok, "vertical link")
				_, _, ok = g.Edge(3, 4)
				assert.False(t, ok, "no wrap-around")
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			g, err := builder.BuildLandscape(core.DefaultCostDefinition(), nil, tc.ctor)
			require.NoError(t, err)
			assert.Equal(t, tc.wantV, g.Order())
			assert.Equal(t, tc.wantE, g.Size())
			assert.True(t, g.Connected())
			if tc.sampleCheck != nil {
				tc.sampleCheck(t, g)
			}
		})
	}
}

func TestBuilders_Errors(t *testing.T) {
	cases := []struct {
		name string
		ctor builder.Constructor
		opts []builder.BuilderOption
		want error
	}{
		{"Cycle(2)", builder.Cycle(2), nil, builder.ErrTooFewVertices},
		{"Path(1)", builder.Path(1), nil, builder.ErrTooFewVertices},
		{"Star(1)", builder.Star(1), nil, builder.ErrTooFewVertices},
		{"Complete(0)", builder.Complete(0), nil, builder.ErrTooFewVertices},
		{"Grid(0,3)", builder.Grid(0, 3), nil, builder.ErrTooFewVertices},
		{"RandomSparse p>1", builder.RandomSparse(3, 1.5), []builder.BuilderOption{builder.WithSeed(1)}, builder.ErrInvalidProbability},
		{"RandomSparse no rng", builder.RandomSparse(3, 0.5), nil, builder.ErrNeedRandSource},
		{"nil constructor", nil, nil, builder.ErrConstructFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.BuildLandscape(core.DefaultCostDefinition(), tc.opts, tc.ctor)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestRandomSparse_Deterministic(t *testing.T) {
	build := func() *core.Graph {
		g, err := builder.BuildLandscape(core.DefaultCostDefinition(),
			[]builder.BuilderOption{builder.WithSeed(99), builder.WithCostFn(builder.UniformCostFn(1, 10))},
			builder.RandomSparse(20, 0.2))
		require.NoError(t, err)
		return g
	}
	a, b := build(), build()
	assert.Equal(t, a.Links(), b.Links())
	assert.Equal(t, a.Patches(), b.Patches())
	for i := range a.Links() {
		c := a.LinkCost(i)
		assert.True(t, c >= 1 && c < 10, "cost %g in range", c)
	}
}

func TestComposition_UniqueIDs(t *testing.T) {
	g, err := builder.BuildLandscape(core.DefaultCostDefinition(),
		[]builder.BuilderOption{builder.WithIDScheme(func(i int) int { return 100 + i }), builder.WithArea(3)},
		builder.Cycle(3), builder.Star(3))
	require.NoError(t, err)

	assert.Equal(t, []int{100, 101, 102, 103, 104, 105}, g.IDs())
	assert.Equal(t, 2, g.ComponentCount())
	assert.InDelta(t, 18.0, g.TotalCapacity(), 1e-12)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { builder.WithIDScheme(nil) })
	assert.Panics(t, func() { builder.WithRand(nil) })
	assert.Panics(t, func() { builder.WithCostFn(nil) })
	assert.Panics(t, func() { builder.WithArea(-1) })
	assert.Panics(t, func() { builder.WithAreaFn(nil) })
	assert.Panics(t, func() { builder.WithSpacing(0) })
	assert.Panics(t, func() { builder.ConstantCostFn(-1) })
	assert.Panics(t, func() { builder.UniformCostFn(3, 1) })
	assert.Panics(t, func() { builder.ExponentialCostFn(0) })
}

func TestBuildDraft_EditBeforeBuild(t *testing.T) {
	d, err := builder.BuildDraft(nil, builder.Path(3))
	require.NoError(t, err)
	d.Links = append(d.Links, core.Link{From: 2, To: 2, Length: 0.5, IntraPatch: true})
	d.Patches[1].Capacity = 10

	g, err := core.Build(d.Patches, d.Links, core.DefaultCostDefinition())
	require.NoError(t, err)
	assert.Equal(t, 2, g.Size())
	assert.InDelta(t, 12.0, g.TotalCapacity(), 1e-12)
}
