package measures

import (
	"math/rand"

	"goseg/domain/core"
	"goseg/domain/frame"
	"goseg/internal/randx"
)

// BiasCorrectedDissim is the bootstrap bias-corrected dissimilarity index
// D_bc = 2D − mean(D*): B bootstrap replicates redraw the two groups'
// spatial distributions from multinomials fitted to the observed shares.
type BiasCorrectedDissim struct {
	twoGroup
}

// NewBiasCorrectedDissim fits the bias-corrected D with B bootstrap
// replicates and the given seed.
func NewBiasCorrectedDissim(f *frame.Frame, groupCol, totalCol string, b int, seed int64) (*BiasCorrectedDissim, error) {
	if b <= 0 {
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
	cfg := Config{Group: groupCol, Total: totalCol, Iterations: b, Seed: seed}
	return &BiasCorrectedDissim{twoGroup{base{
		name: "bias_corrected_dissim",
		stat: biasCorrectedStat(c, b, seed),
		core: coreData,
		cfg:  cfg,
	}}}, nil
}

// Recompute evaluates the bias-corrected D on another frame.
func (m *BiasCorrectedDissim) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, m.cfg.Group, m.cfg.Total)
	if err != nil {
		return 0, err
	}
	return biasCorrectedStat(c, m.cfg.Iterations, m.cfg.Seed), nil
}

func biasCorrectedStat(c *counts, b int, seed int64) float64 {
	observed := dissimStat(c)
	rng := rand.New(rand.NewSource(seed))

	xShare := make([]float64, c.n())
	yShare := make([]float64, c.n())
	for i := range xShare {
		xShare[i] = c.x[i] / c.X
		yShare[i] = c.y[i] / c.Y
	}

	var mean float64
	drawn := 0
	sim := &counts{
		x: make([]float64, c.n()),
		t: make([]float64, c.n()),
		y: make([]float64, c.n()),
	}
	for iter := 0; iter < b; iter++ {
		xs := randx.Multinomial(rng, int64(c.X), xShare)
		ys := randx.Multinomial(rng, int64(c.Y), yShare)
		var X, T float64
		for i := range xs {
			sim.x[i] = float64(xs[i])
			sim.y[i] = float64(ys[i])
			sim.t[i] = sim.x[i] + sim.y[i]
			X += sim.x[i]
			T += sim.t[i]
		}
		if X <= 0 || X >= T {
			continue
		}
		sim.X = X
		sim.T = T
		sim.Y = T - X
		sim.P = X / T
		mean += dissimStat(sim)
		drawn++
	}
	if drawn == 0 {
		return observed
	}
	return 2*observed - mean/float64(drawn)
}
