package measures

import (
	"math/rand"

	"goseg/domain/core"
	"goseg/domain/frame"
	"goseg/internal/randx"
)

// DefaultCorrectionIterations is the default simulation count for the
// modified (Carrington-Troske) measures.
const DefaultCorrectionIterations = 500

// ModifiedDissim is the Carrington-Troske modified dissimilarity index: D
// rescaled against its expectation under random binomial allocation of the
// subgroup across units.
type ModifiedDissim struct {
	twoGroup
}

// NewModifiedDissim fits the modified D with the given simulation count and
// seed. The seed makes refits reproducible and keeps Recompute race-free
// under the parallel inference engine.
func NewModifiedDissim(f *frame.Frame, groupCol, totalCol string, iterations int, seed int64) (*ModifiedDissim, error) {
	if iterations <= 0 {
		return nil, core.ErrNoIterations
	}
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	cfg := Config{Group: groupCol, Total: totalCol, Iterations: iterations, Seed: seed}
	return &ModifiedDissim{twoGroup{base{
		name: "modified_dissim",
		stat: carringtonTroske(c, iterations, seed, dissimStat),
		core: coreData,
		cfg:  cfg,
	}}}, nil
}

// Recompute evaluates the modified D on another frame.
func (m *ModifiedDissim) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, m.cfg.Group, m.cfg.Total)
	if err != nil {
		return 0, err
	}
	return carringtonTroske(c, m.cfg.Iterations, m.cfg.Seed, dissimStat), nil
}

// ModifiedGiniSeg is the Carrington-Troske modified Gini segregation index.
type ModifiedGiniSeg struct {
	twoGroup
}

// NewModifiedGiniSeg fits the modified Gini with the given simulation count
// and seed.
func NewModifiedGiniSeg(f *frame.Frame, groupCol, totalCol string, iterations int, seed int64) (*ModifiedGiniSeg, error) {
	if iterations <= 0 {
		return nil, core.ErrNoIterations
	}
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	cfg := Config{Group: groupCol, Total: totalCol, Iterations: iterations, Seed: seed}
	return &ModifiedGiniSeg{twoGroup{base{
		name: "modified_gini_seg",
		stat: carringtonTroske(c, iterations, seed, giniStat),
		core: coreData,
		cfg:  cfg,
	}}}, nil
}

// Recompute evaluates the modified Gini on another frame.
func (m *ModifiedGiniSeg) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, m.cfg.Group, m.cfg.Total)
	if err != nil {
		return 0, err
	}
	return carringtonTroske(c, m.cfg.Iterations, m.cfg.Seed, giniStat), nil
}

// carringtonTroske rescales an observed statistic against its mean under
// random allocation: each simulation draws unit subgroup counts from
// Binomial(t_i, P) and re-evaluates the raw statistic.
func carringtonTroske(c *counts, iterations int, seed int64, stat func(*counts) float64) float64 {
	observed := stat(c)
	rng := rand.New(rand.NewSource(seed))

	var mean float64
	drawn := 0
	sim := &counts{
		x: make([]float64, c.n()),
		t: c.t,
		y: make([]float64, c.n()),
		T: c.T,
	}
	for iter := 0; iter < iterations; iter++ {
		var X float64
		for i := range c.t {
			k := float64(randx.Binomial(rng, int64(c.t[i]), c.P))
			sim.x[i] = k
			sim.y[i] = c.t[i] - k
			X += k
		}
		if X <= 0 || X >= c.T {
			// Degenerate draw; the raw statistic is undefined, skip it.
			continue
		}
		sim.X = X
		sim.Y = c.T - X
		sim.P = X / c.T
		mean += stat(sim)
		drawn++
	}
	if drawn == 0 {
		return observed
	}
	mean /= float64(drawn)

	if observed >= mean {
		return (observed - mean) / (1 - mean)
	}
	return (observed - mean) / mean
}
