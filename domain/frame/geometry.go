package frame

import (
	"fmt"

	"goseg/domain/core"
)

// Geometry carries the per-unit geometric attributes spatial measures
// consume: polygon area, perimeter, and centroid coordinates. The library
// does not read geometry files; callers precompute these with whatever
// engine produced their polygons.
type Geometry struct {
	Areas      []float64
	Perimeters []float64
	CentroidX  []float64
	CentroidY  []float64
}

func (g *Geometry) check(n int) error {
	fields := map[string][]float64{
		"areas":      g.Areas,
		"perimeters": g.Perimeters,
		"centroid x": g.CentroidX,
		"centroid y": g.CentroidY,
	}
	for name, vals := range fields {
		if vals != nil && len(vals) != n {
			return fmt.Errorf("%w: geometry %s has %d values, expected %d", core.ErrLengthMismatch, name, len(vals), n)
		}
	}
	return nil
}

func (g *Geometry) clone() *Geometry {
	return &Geometry{
		Areas:      append([]float64(nil), g.Areas...),
		Perimeters: append([]float64(nil), g.Perimeters...),
		CentroidX:  append([]float64(nil), g.CentroidX...),
		CentroidY:  append([]float64(nil), g.CentroidY...),
	}
}

func (g *Geometry) take(indices []int) *Geometry {
	takeField := func(vals []float64) []float64 {
		if vals == nil {
			return nil
		}
		out := make([]float64, len(indices))
		for i, idx := range indices {
			out[i] = vals[idx]
		}
		return out
	}
	return &Geometry{
		Areas:      takeField(g.Areas),
		Perimeters: takeField(g.Perimeters),
		CentroidX:  takeField(g.CentroidX),
		CentroidY:  takeField(g.CentroidY),
	}
}
