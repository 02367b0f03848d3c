// Package builder contains unit tests for the configuration primitives
// (builderConfig and BuilderOption) to ensure correct application and override behavior.
package builder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBuilderConfig_Defaults(t *testing.T) {
	cfg := newBuilderConfig()
	assert.Equal(t, 8, cfg.idFn(7))
	assert.Nil(t, cfg.rng)
	assert.Equal(t, DefaultLinkCost, cfg.costFn(nil))
	assert.Equal(t, DefaultPatchArea, cfg.areaFn(0, nil))
	assert.Equal(t, DefaultSpacing, cfg.spacing)
}

// TestOptions_LastWins verifies options apply in order.
func TestOptions_LastWins(t *testing.T) {
	cfg := newBuilderConfig(
		WithArea(2), WithArea(5),
		WithCostFn(ConstantCostFn(3)),
		WithSpacing(10),
		WithSeed(1),
	)
	assert.Equal(t, 5.0, cfg.areaFn(0, nil))
	assert.Equal(t, 3.0, cfg.costFn(nil))
	assert.Equal(t, 10.0, cfg.spacing)
	assert.NotNil(t, cfg.rng)

	r := rand.New(rand.NewSource(5))
	cfg = newBuilderConfig(WithSeed(1), WithRand(r))
	assert.Same(t, r, cfg.rng)
}

func TestCostFns_NilRNGFallback(t *testing.T) {
	assert.Equal(t, DefaultLinkCost, UniformCostFn(2, 4)(nil))
	assert.Equal(t, DefaultLinkCost, ExponentialCostFn(2)(nil))
	assert.Equal(t, 2.0, UniformCostFn(2, 2)(rand.New(rand.NewSource(1))))

	r := rand.New(rand.NewSource(3))
	for i := 0; i < 100; i++ {
		assert.GreaterOrEqual(t, ExponentialCostFn(0.5)(r), 0.0)
	}
}
