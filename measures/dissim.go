package measures

import (
	"math"

	"goseg/domain/frame"
)

// Dissim is the classic dissimilarity index D: the share of the subgroup
// population that would have to relocate for every unit to match the overall
// composition. Bounded in [0, 1].
type Dissim struct {
	twoGroup
}

// NewDissim fits the dissimilarity index to a frame.
func NewDissim(f *frame.Frame, groupCol, totalCol string) (*Dissim, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	core, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &Dissim{twoGroup{base{
		name: "dissim",
		stat: dissimStat(c),
		core: core,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates D on another frame with the fitted column bindings.
func (d *Dissim) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, d.cfg.Group, d.cfg.Total)
	if err != nil {
		return 0, err
	}
	return dissimStat(c), nil
}

func dissimStat(c *counts) float64 {
	var sum float64
	for i := range c.x {
		sum += math.Abs(c.x[i]/c.X - c.y[i]/c.Y)
	}
	return 0.5 * sum
}
