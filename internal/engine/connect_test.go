package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/dxfmeasure/internal/model"
)

func mustExtractAll(t *testing.T, entities []model.Entity) []Extraction {
	t.Helper()
	exts, skipped := ExtractAll(entities)
	require.Empty(t, skipped)
	return exts
}

func TestComponents_SharedEndpointMergesAtZeroTol(t *testing.T) {
	exts := mustExtractAll(t, []model.Entity{
		model.NewLine(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 10, Y: 0}),
		model.NewLine(model.Point2D{X: 10, Y: 0}, model.Point2D{X: 10, Y: 5}),
	})
	comps, err := Components(exts, 0.0)
	require.NoError(t, err)

	require.Len(t, comps, 1)
	assert.Equal(t, []int{0, 1}, comps[0].Entities)
}

func TestComponents_GapRespectsTolerance(t *testing.T) {
	// Endpoints 0.05 apart: tol 0.03 keeps the lines separate,
	// tol 0.06 merges them.
	entities := []model.Entity{
		model.NewLine(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 10, Y: 0}),
		model.NewLine(model.Point2D{X: 10.05, Y: 0}, model.Point2D{X: 10.05, Y: 5}),
	}
	exts := mustExtractAll(t, entities)

	comps, err := Components(exts, 0.03)
	require.NoError(t, err)
	assert.Len(t, comps, 2)

	comps, err = Components(exts, 0.06)
	require.NoError(t, err)
	assert.Len(t, comps, 1)
}

func TestComponents_ZeroTolRequiresExactCoincidence(t *testing.T) {
	exts := mustExtractAll(t, []model.Entity{
		model.NewLine(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 10, Y: 0}),
		model.NewLine(model.Point2D{X: 10.0000001, Y: 0}, model.Point2D{X: 10, Y: 5}),
	})
	comps, err := Components(exts, 0.0)
	require.NoError(t, err)
	assert.Len(t, comps, 2)
}

func TestComponents_ClosedEntitiesAreSingletons(t *testing.T) {
	// A circle and a closed polyline have no endpoints and never merge,
	// even when they touch other entities.
	exts := mustExtractAll(t, []model.Entity{
		model.NewCircle(model.Point2D{X: 0, Y: 0}, 5),
		model.NewLine(model.Point2D{X: 5, Y: 0}, model.Point2D{X: 10, Y: 0}),
		model.NewPolyline([]model.Point2D{
			{X: 10, Y: 0}, {X: 12, Y: 0}, {X: 12, Y: 2},
		}, nil, true),
	})
	comps, err := Components(exts, 0.0)
	require.NoError(t, err)

	require.Len(t, comps, 3)
	assert.Equal(t, []int{0}, comps[0].Entities)
	assert.Equal(t, []int{1}, comps[1].Entities)
	assert.Equal(t, []int{2}, comps[2].Entities)
}

func TestComponents_ChainTransitivity(t *testing.T) {
	// a-b and b-c and c-d: one component of four lines.
	exts := mustExtractAll(t, []model.Entity{
		model.NewLine(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 1, Y: 0}),
		model.NewLine(model.Point2D{X: 1, Y: 0}, model.Point2D{X: 1, Y: 1}),
		model.NewLine(model.Point2D{X: 1, Y: 1}, model.Point2D{X: 0, Y: 1}),
		model.NewLine(model.Point2D{X: 0, Y: 1}, model.Point2D{X: 0, Y: 0}),
	})
	comps, err := Components(exts, 0.0)
	require.NoError(t, err)

	require.Len(t, comps, 1)
	assert.Equal(t, []int{0, 1, 2, 3}, comps[0].Entities)
}

func TestComponents_MonotoneInTolerance(t *testing.T) {
	entities := []model.Entity{
		model.NewLine(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 1, Y: 0}),
		model.NewLine(model.Point2D{X: 1.02, Y: 0}, model.Point2D{X: 2, Y: 0}),
		model.NewLine(model.Point2D{X: 2.08, Y: 0}, model.Point2D{X: 3, Y: 0}),
	}
	exts := mustExtractAll(t, entities)

	prev := len(entities) + 1
	for _, tol := range []float64{0, 0.01, 0.03, 0.05, 0.1, 1} {
		comps, err := Components(exts, tol)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(comps), prev, "tol %g", tol)
		prev = len(comps)
	}
}

func TestComponents_NegativeToleranceRejected(t *testing.T) {
	_, err := Components(nil, -0.1)
	assert.ErrorIs(t, err, ErrInvalidTolerance)
}

func TestComponents_SkippedEntitiesGetNoComponent(t *testing.T) {
	exts, skipped := ExtractAll([]model.Entity{
		model.NewLine(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 1, Y: 0}),
		model.NewCircle(model.Point2D{}, -1),
	})
	require.Len(t, skipped, 1)

	comps, err := Components(exts, 0.0)
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, []int{0}, comps[0].Entities)
}

func TestComponents_TinyToleranceDoesNotOverflowGrid(t *testing.T) {
	// A tolerance far below the coordinate scale produces quotients
	// outside int range; the clamped bucketing must still merge
	// coincident endpoints and keep distant entities apart.
	exts := mustExtractAll(t, []model.Entity{
		model.NewLine(model.Point2D{X: 0, Y: 0}, model.Point2D{X: 10, Y: 0}),
		model.NewLine(model.Point2D{X: 10, Y: 0}, model.Point2D{X: 10, Y: 5}),
		model.NewLine(model.Point2D{X: 100, Y: 100}, model.Point2D{X: 200, Y: 100}),
	})
	comps, err := Components(exts, 1e-300)
	require.NoError(t, err)

	require.Len(t, comps, 2)
	assert.Equal(t, []int{0, 1}, comps[0].Entities)
	assert.Equal(t, []int{2}, comps[1].Entities)
}

func TestGridIndex_Clamped(t *testing.T) {
	const clamp = 1 << 40
	assert.Equal(t, clamp, gridIndex(1, 1e-300))
	assert.Equal(t, -clamp, gridIndex(-1, 1e-300))
	assert.Equal(t, 3, gridIndex(0.35, 0.1))
	assert.Equal(t, -4, gridIndex(-0.35, 0.1))
}

func TestUnionFind_PathCompressionAndRank(t *testing.T) {
	uf := newUnionFind(6)
	uf.union(0, 1)
	uf.union(2, 3)
	uf.union(1, 3)
	uf.union(4, 5)

	assert.Equal(t, uf.find(0), uf.find(3))
	assert.Equal(t, uf.find(4), uf.find(5))
	assert.NotEqual(t, uf.find(0), uf.find(4))
}
