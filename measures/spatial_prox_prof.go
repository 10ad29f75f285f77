package measures

import (
	"goseg/domain/core"
	"goseg/domain/frame"
	"goseg/domain/spatial"
)

// SpatialProxProf is the spatial proximity profile: the concentration
// profile R computed over neighborhood composition, where each unit's
// composition is pooled with its neighbors' populations before thresholding.
// Clustered arrangements keep high neighborhood compositions and score
// higher than checkerboards with the same aspatial profile.
type SpatialProxProf struct {
	twoGroup
	w *spatial.Weights
}

// NewSpatialProxProf fits the profile with resolution m over the given
// contiguity weights.
func NewSpatialProxProf(f *frame.Frame, groupCol, totalCol string, w *spatial.Weights, m int) (*SpatialProxProf, error) {
	if w == nil || w.Len() != f.Len() {
		return nil, weightsErr(f, w)
	}
	if m < 2 {
		return nil, core.NewParameterError("m", "must be at least 2")
	}
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	stat, err := spatialProxProfStat(c, w, m)
	if err != nil {
		return nil, err
	}
	return &SpatialProxProf{
		twoGroup: twoGroup{base{
			name: "spatial_prox_prof",
			stat: stat,
			core: coreData,
			cfg:  Config{Group: groupCol, Total: totalCol, M: m},
		}},
		w: w,
	}, nil
}

// Recompute evaluates the profile on another frame against the fitted
// weights.
func (p *SpatialProxProf) Recompute(f *frame.Frame) (float64, error) {
	if f.Len() != p.w.Len() {
		return 0, core.NewWeightsError(f.Len(), p.w.Len())
	}
	c, err := extractCounts(f, p.cfg.Group, p.cfg.Total)
	if err != nil {
		return 0, err
	}
	return spatialProxProfStat(c, p.w, p.cfg.M)
}

func spatialProxProfStat(c *counts, w *spatial.Weights, m int) (float64, error) {
	lagX, err := w.Lag(c.x)
	if err != nil {
		return 0, err
	}
	lagT, err := w.Lag(c.t)
	if err != nil {
		return 0, err
	}

	// Neighborhood composition pools each unit with its neighbors.
	comp := make([]float64, c.n())
	for i := range comp {
		pooled := c.t[i] + lagT[i]
		if pooled > 0 {
			comp[i] = (c.x[i] + lagX[i]) / pooled
		}
	}

	var mean float64
	for k := 0; k < m; k++ {
		threshold := float64(k) / float64(m)
		var above float64
		for i := range comp {
			if comp[i] >= threshold {
				above += c.x[i]
			}
		}
		mean += above / c.X
	}
	mean /= float64(m)
	return (mean - c.P) / (1 - c.P), nil
}
