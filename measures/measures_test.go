package measures

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goseg/domain/core"
	"goseg/domain/frame"
	"goseg/ports"
)

// Interface compliance.
var (
	_ ports.Estimator          = (*Dissim)(nil)
	_ ports.Estimator          = (*GiniSeg)(nil)
	_ ports.Estimator          = (*Entropy)(nil)
	_ ports.Estimator          = (*Atkinson)(nil)
	_ ports.Estimator          = (*Exposure)(nil)
	_ ports.Estimator          = (*Isolation)(nil)
	_ ports.Estimator          = (*CorrelationR)(nil)
	_ ports.Estimator          = (*ConProf)(nil)
	_ ports.Estimator          = (*ModifiedDissim)(nil)
	_ ports.Estimator          = (*ModifiedGiniSeg)(nil)
	_ ports.Estimator          = (*BiasCorrectedDissim)(nil)
	_ ports.Estimator          = (*DensityCorrectedDissim)(nil)
	_ ports.Estimator          = (*MinMax)(nil)
	_ ports.Estimator          = (*MultiGini)(nil)
	_ ports.Estimator          = (*MultiDissim)(nil)
	_ ports.Estimator          = (*MultiDiversity)(nil)
	_ ports.Estimator          = (*MultiInformationTheory)(nil)
	_ ports.TwoGroupConfigured = (*Dissim)(nil)
)

func evenFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(nil, map[string][]float64{
		"group": {10, 20, 30, 40},
		"total": {50, 100, 150, 200},
	})
	require.NoError(t, err)
	return f
}

func segregatedFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(nil, map[string][]float64{
		"group": {100, 100, 0, 0},
		"total": {100, 100, 100, 100},
	})
	require.NoError(t, err)
	return f
}

func TestEvennessMeasuresAtExtremes(t *testing.T) {
	even := evenFrame(t)
	seg := segregatedFrame(t)

	tests := []struct {
		name string
		fit  func(f *frame.Frame) (ports.Estimator, error)
	}{
		{"dissim", func(f *frame.Frame) (ports.Estimator, error) { return NewDissim(f, "group", "total") }},
		{"gini", func(f *frame.Frame) (ports.Estimator, error) { return NewGiniSeg(f, "group", "total") }},
		{"entropy", func(f *frame.Frame) (ports.Estimator, error) { return NewEntropy(f, "group", "total") }},
		{"correlation", func(f *frame.Frame) (ports.Estimator, error) { return NewCorrelationR(f, "group", "total") }},
		{"min_max", func(f *frame.Frame) (ports.Estimator, error) { return NewMinMax(f, "group", "total") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.fit(even)
			require.NoError(t, err)
			assert.InDelta(t, 0, e.Statistic(), 1e-12, "evenly mixed data must score 0")

			s, err := tt.fit(seg)
			require.NoError(t, err)
			assert.InDelta(t, 1, s.Statistic(), 1e-12, "fully segregated data must score 1")
		})
	}
}

func TestDissimKnownValue(t *testing.T) {
	f, err := frame.New(nil, map[string][]float64{
		"group": {30, 10},
		"total": {40, 60},
	})
	require.NoError(t, err)

	d, err := NewDissim(f, "group", "total")
	require.NoError(t, err)
	// x shares: 0.75, 0.25; y shares: 10/60, 50/60.
	want := 0.5 * (math.Abs(0.75-10.0/60) + math.Abs(0.25-50.0/60))
	assert.InDelta(t, want, d.Statistic(), 1e-12)
	assert.Equal(t, "group", d.GroupColumn())
	assert.Equal(t, "total", d.TotalColumn())
}

func TestExposureIsolationComplement(t *testing.T) {
	f := evenFrame(t)

	exp, err := NewExposure(f, "group", "total")
	require.NoError(t, err)
	iso, err := NewIsolation(f, "group", "total")
	require.NoError(t, err)

	// With uniform composition, xPx = P and xPy = 1-P.
	assert.InDelta(t, 0.2, iso.Statistic(), 1e-12)
	assert.InDelta(t, 0.8, exp.Statistic(), 1e-12)
	assert.InDelta(t, 1.0, iso.Statistic()+exp.Statistic(), 1e-12)
}

func TestAtkinsonBounds(t *testing.T) {
	seg := segregatedFrame(t)
	a, err := NewAtkinson(seg, "group", "total", DefaultAtkinsonShape)
	require.NoError(t, err)
	assert.InDelta(t, 1, a.Statistic(), 1e-12)

	even := evenFrame(t)
	a, err = NewAtkinson(even, "group", "total", DefaultAtkinsonShape)
	require.NoError(t, err)
	assert.InDelta(t, 0, a.Statistic(), 1e-12)

	_, err = NewAtkinson(even, "group", "total", 1.5)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func TestConProfExtremes(t *testing.T) {
	seg := segregatedFrame(t)
	p, err := NewConProf(seg, "group", "total", 200)
	require.NoError(t, err)
	assert.InDelta(t, 1, p.Statistic(), 1e-9)
	assert.Len(t, p.Profile(), 200)

	even := evenFrame(t)
	p, err = NewConProf(even, "group", "total", 200)
	require.NoError(t, err)
	assert.InDelta(t, 0, p.Statistic(), 0.01)

	_, err = NewConProf(even, "group", "total", 1)
	assert.ErrorIs(t, err, core.ErrInvalidParameter)
}

func clusteredFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(nil, map[string][]float64{
		"group": {15, 2, 12, 1, 14, 2, 13, 1},
		"total": {20, 20, 20, 20, 20, 20, 20, 20},
	})
	require.NoError(t, err)
	return f
}

func TestModifiedDissimDiscountsSmallSampleNoise(t *testing.T) {
	// With real segregation in the data, the simulated expectation under
	// random allocation is positive, so the modified index lands strictly
	// between zero and the raw value.
	f := clusteredFrame(t)

	raw, err := NewDissim(f, "group", "total")
	require.NoError(t, err)
	mod, err := NewModifiedDissim(f, "group", "total", 300, 42)
	require.NoError(t, err)

	assert.Greater(t, mod.Statistic(), 0.0)
	assert.Less(t, mod.Statistic(), raw.Statistic())

	// Same seed, same answer.
	again, err := NewModifiedDissim(f, "group", "total", 300, 42)
	require.NoError(t, err)
	assert.Equal(t, mod.Statistic(), again.Statistic())

	_, err = NewModifiedDissim(f, "group", "total", 0, 42)
	assert.ErrorIs(t, err, core.ErrNoIterations)
}

func TestModifiedGiniStaysBelowRaw(t *testing.T) {
	f := clusteredFrame(t)

	raw, err := NewGiniSeg(f, "group", "total")
	require.NoError(t, err)
	mod, err := NewModifiedGiniSeg(f, "group", "total", 300, 7)
	require.NoError(t, err)
	assert.Greater(t, mod.Statistic(), 0.0)
	assert.Less(t, mod.Statistic(), raw.Statistic())
}

func TestBiasCorrectedDissim(t *testing.T) {
	f, err := frame.New(nil, map[string][]float64{
		"group": {30, 10, 25, 5},
		"total": {50, 50, 50, 50},
	})
	require.NoError(t, err)

	raw, err := NewDissim(f, "group", "total")
	require.NoError(t, err)
	bc, err := NewBiasCorrectedDissim(f, "group", "total", 500, 17)
	require.NoError(t, err)

	// Bootstrap resampling inflates D, so the correction must pull the
	// estimate below the raw value.
	assert.Less(t, bc.Statistic(), raw.Statistic())
	assert.Greater(t, bc.Statistic(), 0.0)
}

func TestDensityCorrectedDissim(t *testing.T) {
	f, err := frame.New(nil, map[string][]float64{
		"group": {30, 10, 25, 5},
		"total": {50, 50, 50, 50},
	})
	require.NoError(t, err)

	raw, err := NewDissim(f, "group", "total")
	require.NoError(t, err)
	dc, err := NewDensityCorrectedDissim(f, "group", "total")
	require.NoError(t, err)

	assert.LessOrEqual(t, dc.Statistic(), raw.Statistic())
	assert.GreaterOrEqual(t, dc.Statistic(), 0.0)
}

func TestRecomputeMatchesFitOnCoreData(t *testing.T) {
	f := evenFrame(t)
	tests := []struct {
		name string
		fit  func() (ports.Estimator, error)
	}{
		{"dissim", func() (ports.Estimator, error) { return NewDissim(f, "group", "total") }},
		{"entropy", func() (ports.Estimator, error) { return NewEntropy(f, "group", "total") }},
		{"exposure", func() (ports.Estimator, error) { return NewExposure(f, "group", "total") }},
		{"modified_dissim", func() (ports.Estimator, error) { return NewModifiedDissim(f, "group", "total", 100, 5) }},
		{"density_corrected", func() (ports.Estimator, error) { return NewDensityCorrectedDissim(f, "group", "total") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := tt.fit()
			require.NoError(t, err)
			got, err := est.Recompute(est.Core())
			require.NoError(t, err)
			assert.Equal(t, est.Statistic(), got)
		})
	}
}

func TestValidationErrors(t *testing.T) {
	f := evenFrame(t)

	_, err := NewDissim(f, "missing", "total")
	assert.ErrorIs(t, err, core.ErrColumnNotFound)

	bad, err := frame.New(nil, map[string][]float64{
		"group": {60},
		"total": {50},
	})
	require.NoError(t, err)
	_, err = NewDissim(bad, "group", "total")
	assert.ErrorIs(t, err, core.ErrCountExceedsTotal)

	empty, err := frame.New(nil, map[string][]float64{
		"group": {0, 0},
		"total": {50, 50},
	})
	require.NoError(t, err)
	_, err = NewDissim(empty, "group", "total")
	assert.ErrorIs(t, err, core.ErrInsufficientData)
}

func TestEstimatorImmutability(t *testing.T) {
	f := evenFrame(t)
	d, err := NewDissim(f, "group", "total")
	require.NoError(t, err)

	before := d.Statistic()
	other := segregatedFrame(t)
	_, err = d.Recompute(other)
	require.NoError(t, err)

	if d.Statistic() != before {
		t.Error("Recompute mutated the fitted statistic")
	}
}

func TestNaNRowsContributeNothing(t *testing.T) {
	clean, err := frame.New(nil, map[string][]float64{
		"group": {30, 10},
		"total": {40, 60},
	})
	require.NoError(t, err)
	dirty, err := frame.New(nil, map[string][]float64{
		"group": {30, 10, math.NaN()},
		"total": {40, 60, math.NaN()},
	})
	require.NoError(t, err)

	a, err := NewDissim(clean, "group", "total")
	require.NoError(t, err)
	b, err := NewDissim(dirty, "group", "total")
	require.NoError(t, err)
	assert.Equal(t, a.Statistic(), b.Statistic())
}

func TestTheilReducesToBinaryEntropy(t *testing.T) {
	f, err := frame.New(nil, map[string][]float64{
		"x": {30, 10, 25, 5},
		"y": {20, 40, 25, 45},
		"t": {50, 50, 50, 50},
	})
	require.NoError(t, err)

	h2, err := NewEntropy(f, "x", "t")
	require.NoError(t, err)
	hk, err := NewMultiInformationTheory(f, []string{"x", "y"})
	require.NoError(t, err)
	assert.InDelta(t, h2.Statistic(), hk.Statistic(), 1e-12)
}

func TestMultiDissimReducesToBinaryDissim(t *testing.T) {
	f, err := frame.New(nil, map[string][]float64{
		"x": {30, 10, 25, 5},
		"y": {20, 40, 25, 45},
		"t": {50, 50, 50, 50},
	})
	require.NoError(t, err)

	d2, err := NewDissim(f, "x", "t")
	require.NoError(t, err)
	dk, err := NewMultiDissim(f, []string{"x", "y"})
	require.NoError(t, err)
	assert.InDelta(t, d2.Statistic(), dk.Statistic(), 1e-12)
}

func TestMultiDissimExtremes(t *testing.T) {
	seg, err := frame.New(nil, map[string][]float64{
		"x": {100, 100, 0, 0},
		"y": {0, 0, 100, 100},
	})
	require.NoError(t, err)
	m, err := NewMultiDissim(seg, []string{"x", "y"})
	require.NoError(t, err)
	assert.InDelta(t, 1, m.Statistic(), 1e-12)

	even, err := frame.New(nil, map[string][]float64{
		"x": {10, 20, 30, 40},
		"y": {40, 80, 120, 160},
	})
	require.NoError(t, err)
	m, err = NewMultiDissim(even, []string{"x", "y"})
	require.NoError(t, err)
	assert.InDelta(t, 0, m.Statistic(), 1e-12)
}

func TestMultiDiversityMatchesCompositionEntropy(t *testing.T) {
	f, err := frame.New(nil, map[string][]float64{
		"x": {30, 10, 25, 5},
		"y": {20, 40, 25, 45},
	})
	require.NoError(t, err)

	// X = 70, Y = 130, so P = 0.35.
	p := 0.35
	want := -(p*math.Log(p) + (1-p)*math.Log(1-p))
	m, err := NewMultiDiversity(f, []string{"x", "y"})
	require.NoError(t, err)
	assert.InDelta(t, want, m.Statistic(), 1e-12)

	thirds, err := frame.New(nil, map[string][]float64{
		"a": {10, 30},
		"b": {25, 15},
		"c": {5, 35},
	})
	require.NoError(t, err)
	m3, err := NewMultiDiversity(thirds, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.InDelta(t, math.Log(3), m3.Statistic(), 1e-12)
}
