package measures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goseg/domain/core"
	"goseg/domain/frame"
	"goseg/domain/spatial"
)

// gridFrame builds a 2x2 rook-contiguity grid with the given subgroup
// counts; every unit houses 100 people on a unit square.
func gridFrame(t *testing.T, group []float64) (*frame.Frame, *spatial.Weights) {
	t.Helper()
	f, err := frame.New([]string{"nw", "ne", "sw", "se"}, map[string][]float64{
		"group": group,
		"total": {100, 100, 100, 100},
	})
	require.NoError(t, err)
	f, err = f.WithGeometry(&frame.Geometry{
		Areas:      []float64{1, 1, 1, 1},
		Perimeters: []float64{4, 4, 4, 4},
		CentroidX:  []float64{0, 1, 0, 1},
		CentroidY:  []float64{1, 1, 0, 0},
	})
	require.NoError(t, err)

	w, err := spatial.FromAdjacency(4, [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 3}})
	require.NoError(t, err)
	return f, w
}

func TestSpatialDissimSeparatesClusterFromCheckerboard(t *testing.T) {
	clustered, w := gridFrame(t, []float64{90, 90, 10, 10})
	checker, _ := gridFrame(t, []float64{90, 10, 10, 90})

	aspatialClustered, err := NewDissim(clustered, "group", "total")
	require.NoError(t, err)
	aspatialChecker, err := NewDissim(checker, "group", "total")
	require.NoError(t, err)
	require.InDelta(t, aspatialClustered.Statistic(), aspatialChecker.Statistic(), 1e-12,
		"fixtures must be aspatially identical")

	sdClustered, err := NewSpatialDissim(clustered, "group", "total", w, false)
	require.NoError(t, err)
	sdChecker, err := NewSpatialDissim(checker, "group", "total", w, false)
	require.NoError(t, err)

	assert.Greater(t, sdClustered.Statistic(), sdChecker.Statistic(),
		"checkerboard patterns must be discounted more than clusters")
	assert.Less(t, sdClustered.Statistic(), aspatialClustered.Statistic())
}

func TestBoundaryAndPARVariants(t *testing.T) {
	f, _ := gridFrame(t, []float64{90, 90, 10, 10})

	// Boundary lengths stand in for binary contiguity.
	w, err := spatial.NewWeights(
		[][]int{{1, 2}, {0, 3}, {0, 3}, {1, 2}},
		[][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}},
	)
	require.NoError(t, err)

	b, err := NewBoundarySpatialDissim(f, "group", "total", w, true)
	require.NoError(t, err)
	p, err := NewPerimeterAreaRatioSpatialDissim(f, "group", "total", w, true)
	require.NoError(t, err)

	raw, err := NewDissim(f, "group", "total")
	require.NoError(t, err)
	assert.Less(t, b.Statistic(), raw.Statistic())
	// Equal PAR across units makes the pair scaling exactly 1.
	assert.InDelta(t, b.Statistic(), p.Statistic(), 1e-12)

	bare, err := frame.New(nil, map[string][]float64{"group": {1, 2, 3, 4}, "total": {5, 5, 5, 5}})
	require.NoError(t, err)
	_, err = NewPerimeterAreaRatioSpatialDissim(bare, "group", "total", w, true)
	assert.ErrorIs(t, err, core.ErrMissingGeometry)
}

func TestSpatialProxProfOrdersArrangements(t *testing.T) {
	clustered, w := gridFrame(t, []float64{90, 90, 10, 10})
	checker, _ := gridFrame(t, []float64{90, 10, 10, 90})

	pc, err := NewSpatialProxProf(clustered, "group", "total", w, 200)
	require.NoError(t, err)
	px, err := NewSpatialProxProf(checker, "group", "total", w, 200)
	require.NoError(t, err)
	assert.Greater(t, pc.Statistic(), px.Statistic())
}

func TestSpatialProximityAndClustering(t *testing.T) {
	clustered, _ := gridFrame(t, []float64{90, 90, 10, 10})
	checker, _ := gridFrame(t, []float64{90, 10, 10, 90})

	spc, err := NewSpatialProximity(clustered, "group", "total", spatial.DefaultAlpha, spatial.DefaultBeta)
	require.NoError(t, err)
	spx, err := NewSpatialProximity(checker, "group", "total", spatial.DefaultAlpha, spatial.DefaultBeta)
	require.NoError(t, err)
	assert.Greater(t, spc.Statistic(), spx.Statistic())
	assert.Greater(t, spc.Statistic(), 1.0, "clustered groups raise SP above 1")

	rcl, err := NewRelativeClustering(clustered, "group", "total", spatial.DefaultAlpha, spatial.DefaultBeta)
	require.NoError(t, err)
	// Symmetric fixture: both groups cluster identically.
	assert.InDelta(t, 0, rcl.Statistic(), 1e-12)

	acl, err := NewAbsoluteClustering(clustered, "group", "total", spatial.DefaultAlpha, spatial.DefaultBeta)
	require.NoError(t, err)
	aclChecker, err := NewAbsoluteClustering(checker, "group", "total", spatial.DefaultAlpha, spatial.DefaultBeta)
	require.NoError(t, err)
	assert.Greater(t, acl.Statistic(), aclChecker.Statistic())
}

func TestDistanceDecayMeasures(t *testing.T) {
	clustered, _ := gridFrame(t, []float64{90, 90, 10, 10})

	iso, err := NewDistanceDecayIsolation(clustered, "group", "total", spatial.DefaultAlpha, spatial.DefaultBeta)
	require.NoError(t, err)
	exp, err := NewDistanceDecayExposure(clustered, "group", "total", spatial.DefaultAlpha, spatial.DefaultBeta)
	require.NoError(t, err)

	assert.Greater(t, iso.Statistic(), 0.0)
	assert.Less(t, iso.Statistic(), 1.0)
	assert.InDelta(t, 1.0, iso.Statistic()+exp.Statistic(), 1e-12,
		"decay-weighted contact probabilities partition to one")
}

func TestDeltaAndConcentration(t *testing.T) {
	f, err := frame.New(nil, map[string][]float64{
		"group": {80, 10, 5, 5},
		"total": {100, 100, 100, 100},
	})
	require.NoError(t, err)
	f, err = f.WithGeometry(&frame.Geometry{
		Areas:     []float64{1, 2, 3, 4},
		CentroidX: []float64{0, 1, 0, 1},
		CentroidY: []float64{1, 1, 0, 0},
	})
	require.NoError(t, err)

	del, err := NewDelta(f, "group", "total")
	require.NoError(t, err)
	assert.Greater(t, del.Statistic(), 0.0)
	assert.LessOrEqual(t, del.Statistic(), 1.0)

	aco, err := NewAbsoluteConcentration(f, "group", "total")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, aco.Statistic(), 0.0)
	assert.LessOrEqual(t, aco.Statistic(), 1.0)

	rco, err := NewRelativeConcentration(f, "group", "total")
	require.NoError(t, err)
	assert.False(t, rco.Statistic() != rco.Statistic(), "RCO must be finite")

	noGeom, err := frame.New(nil, map[string][]float64{"group": {1, 2}, "total": {5, 5}})
	require.NoError(t, err)
	_, err = NewDelta(noGeom, "group", "total")
	assert.ErrorIs(t, err, core.ErrMissingGeometry)
}

func TestCentralization(t *testing.T) {
	// Units ring a center; the subgroup piles into the innermost unit.
	f, err := frame.New(nil, map[string][]float64{
		"group": {80, 10, 5, 5},
		"total": {100, 100, 100, 100},
	})
	require.NoError(t, err)
	f, err = f.WithGeometry(&frame.Geometry{
		Areas:     []float64{1, 1, 1, 1},
		CentroidX: []float64{0.5, 2, -2, 3},
		CentroidY: []float64{0.5, 1, -1, -3},
	})
	require.NoError(t, err)

	ace, err := NewAbsoluteCentralization(f, "group", "total")
	require.NoError(t, err)
	assert.Greater(t, ace.Statistic(), 0.0, "inner-city subgroup must be centralized")
	assert.LessOrEqual(t, ace.Statistic(), 1.0)

	rce, err := NewRelativeCentralization(f, "group", "total")
	require.NoError(t, err)
	assert.Greater(t, rce.Statistic(), 0.0)
	assert.LessOrEqual(t, rce.Statistic(), 1.0)
	assert.GreaterOrEqual(t, rce.Statistic(), -1.0)
}

func TestSpatialRecomputeAgainstFittedWeights(t *testing.T) {
	f, w := gridFrame(t, []float64{90, 90, 10, 10})

	sd, err := NewSpatialDissim(f, "group", "total", w, false)
	require.NoError(t, err)
	got, err := sd.Recompute(sd.Core())
	require.NoError(t, err)
	assert.Equal(t, sd.Statistic(), got)

	short, err := frame.New(nil, map[string][]float64{"group": {1, 2}, "total": {5, 5}})
	require.NoError(t, err)
	_, err = sd.Recompute(short)
	assert.ErrorIs(t, err, core.ErrWeightsMismatch)
}

func TestWeightsMismatchRejected(t *testing.T) {
	f, _ := gridFrame(t, []float64{90, 90, 10, 10})
	w, err := spatial.FromAdjacency(3, [][2]int{{0, 1}})
	require.NoError(t, err)
	_, err = NewSpatialDissim(f, "group", "total", w, false)
	assert.ErrorIs(t, err, core.ErrWeightsMismatch)
}
