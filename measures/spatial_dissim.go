package measures

import (
	"math"

	"goseg/domain/core"
	"goseg/domain/frame"
	"goseg/domain/spatial"
)

// SpatialDissim is Morrill's spatially adjusted dissimilarity index: D minus
// the weighted mean composition difference across neighboring units, so that
// checkerboard-like arrangements score lower than clustered ones.
type SpatialDissim struct {
	twoGroup
	w *spatial.Weights
}

// NewSpatialDissim fits the adjusted D with contiguity weights. When
// standardize is set the weights rows are normalized to sum to one before
// the adjustment.
func NewSpatialDissim(f *frame.Frame, groupCol, totalCol string, w *spatial.Weights, standardize bool) (*SpatialDissim, error) {
	if w == nil || w.Len() != f.Len() {
		return nil, weightsErr(f, w)
	}
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	use := w
	if standardize {
		use = w.Standardize()
	}
	return &SpatialDissim{
		twoGroup: twoGroup{base{
			name: "spatial_dissim",
			stat: morrillStat(c, use, nil),
			core: coreData,
			cfg:  Config{Group: groupCol, Total: totalCol, Standardize: standardize},
		}},
		w: use,
	}, nil
}

// Recompute evaluates the adjusted D on another frame against the fitted
// weights; the frame must cover the same number of units.
func (s *SpatialDissim) Recompute(f *frame.Frame) (float64, error) {
	if f.Len() != s.w.Len() {
		return 0, core.NewWeightsError(f.Len(), s.w.Len())
	}
	c, err := extractCounts(f, s.cfg.Group, s.cfg.Total)
	if err != nil {
		return 0, err
	}
	return morrillStat(c, s.w, nil), nil
}

// BoundarySpatialDissim is Wong's boundary-adjusted dissimilarity index;
// the weights carry shared boundary lengths instead of binary contiguity.
type BoundarySpatialDissim struct {
	twoGroup
	w *spatial.Weights
}

// NewBoundarySpatialDissim fits the boundary-adjusted D. The weights values
// are shared boundary lengths between neighboring units.
func NewBoundarySpatialDissim(f *frame.Frame, groupCol, totalCol string, w *spatial.Weights, standardize bool) (*BoundarySpatialDissim, error) {
	if w == nil || w.Len() != f.Len() {
		return nil, weightsErr(f, w)
	}
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	use := w
	if standardize {
		use = w.Standardize()
	}
	return &BoundarySpatialDissim{
		twoGroup: twoGroup{base{
			name: "boundary_spatial_dissim",
			stat: morrillStat(c, use, nil),
			core: coreData,
			cfg:  Config{Group: groupCol, Total: totalCol, Standardize: standardize},
		}},
		w: use,
	}, nil
}

// Recompute evaluates the index on another frame against the fitted weights.
func (s *BoundarySpatialDissim) Recompute(f *frame.Frame) (float64, error) {
	if f.Len() != s.w.Len() {
		return 0, core.NewWeightsError(f.Len(), s.w.Len())
	}
	c, err := extractCounts(f, s.cfg.Group, s.cfg.Total)
	if err != nil {
		return 0, err
	}
	return morrillStat(c, s.w, nil), nil
}

// PerimeterAreaRatioSpatialDissim is Wong's second adjustment: neighbor
// composition differences are additionally weighted by the mean
// perimeter/area ratio of the pair, relative to the maximum ratio in the
// study area, so compact units contribute less.
type PerimeterAreaRatioSpatialDissim struct {
	twoGroup
	w   *spatial.Weights
	par []float64
}

// NewPerimeterAreaRatioSpatialDissim fits the PAR-adjusted D. The frame must
// carry area and perimeter geometry.
func NewPerimeterAreaRatioSpatialDissim(f *frame.Frame, groupCol, totalCol string, w *spatial.Weights, standardize bool) (*PerimeterAreaRatioSpatialDissim, error) {
	if w == nil || w.Len() != f.Len() {
		return nil, weightsErr(f, w)
	}
	g := f.Geometry()
	if g == nil || g.Areas == nil || g.Perimeters == nil {
		return nil, core.ErrMissingGeometry
	}
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	par := make([]float64, f.Len())
	for i := range par {
		if g.Areas[i] > 0 {
			par[i] = g.Perimeters[i] / g.Areas[i]
		}
	}
	use := w
	if standardize {
		use = w.Standardize()
	}
	return &PerimeterAreaRatioSpatialDissim{
		twoGroup: twoGroup{base{
			name: "par_spatial_dissim",
			stat: morrillStat(c, use, par),
			core: coreData,
			cfg:  Config{Group: groupCol, Total: totalCol, Standardize: standardize},
		}},
		w:   use,
		par: par,
	}, nil
}

// Recompute evaluates the index on another frame against the fitted weights
// and perimeter/area ratios.
func (s *PerimeterAreaRatioSpatialDissim) Recompute(f *frame.Frame) (float64, error) {
	if f.Len() != s.w.Len() {
		return 0, core.NewWeightsError(f.Len(), s.w.Len())
	}
	c, err := extractCounts(f, s.cfg.Group, s.cfg.Total)
	if err != nil {
		return 0, err
	}
	return morrillStat(c, s.w, s.par), nil
}

// morrillStat computes D minus the neighbor adjustment. A nil par slice
// gives the plain Morrill/Wong adjustment; otherwise each pair is scaled by
// its mean perimeter/area ratio relative to the maximum ratio.
func morrillStat(c *counts, w *spatial.Weights, par []float64) float64 {
	d := dissimStat(c)
	comp := c.composition()

	var maxPAR float64
	if par != nil {
		for _, v := range par {
			maxPAR = math.Max(maxPAR, v)
		}
	}

	var num, den float64
	for i := 0; i < w.Len(); i++ {
		nbrs, wts := w.Row(i)
		for k, j := range nbrs {
			cij := wts[k]
			if cij == 0 {
				continue
			}
			pairDiff := cij * math.Abs(comp[i]-comp[j])
			if par != nil && maxPAR > 0 {
				pairDiff *= (par[i] + par[j]) / (2 * maxPAR)
			}
			num += pairDiff
			den += cij
		}
	}
	if den == 0 {
		return d
	}
	return d - num/den
}

func weightsErr(f *frame.Frame, w *spatial.Weights) error {
	if w == nil {
		return core.NewWeightsError(f.Len(), 0)
	}
	return core.NewWeightsError(f.Len(), w.Len())
}
