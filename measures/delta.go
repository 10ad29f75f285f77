package measures

import (
	"math"

	"goseg/domain/core"
	"goseg/domain/frame"
)

// Delta is the concentration index DEL: the share of the subgroup that would
// have to move for its density to be uniform over the units' land area.
// Bounded in [0, 1]. The frame must carry area geometry.
type Delta struct {
	twoGroup
}

// NewDelta fits DEL to a frame.
func NewDelta(f *frame.Frame, groupCol, totalCol string) (*Delta, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	areas, err := unitAreas(f)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &Delta{twoGroup{base{
		name: "delta",
		stat: deltaStat(c, areas),
		core: coreData,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates DEL on another frame.
func (d *Delta) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, d.cfg.Group, d.cfg.Total)
	if err != nil {
		return 0, err
	}
	areas, err := unitAreas(f)
	if err != nil {
		return 0, err
	}
	return deltaStat(c, areas), nil
}

func deltaStat(c *counts, areas []float64) float64 {
	var A float64
	for _, a := range areas {
		A += a
	}
	var sum float64
	for i := range c.x {
		sum += math.Abs(c.x[i]/c.X - areas[i]/A)
	}
	return 0.5 * sum
}

func unitAreas(f *frame.Frame) ([]float64, error) {
	g := f.Geometry()
	if g == nil || g.Areas == nil {
		return nil, core.ErrMissingGeometry
	}
	var total float64
	for _, a := range g.Areas {
		if a < 0 {
			return nil, core.NewParameterError("area", "must be non-negative")
		}
		total += a
	}
	if total <= 0 {
		return nil, core.NewParameterError("area", "must sum to a positive value")
	}
	return g.Areas, nil
}
