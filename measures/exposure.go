package measures

import (
	"goseg/domain/frame"
)

// Exposure is the classic exposure index xPy: the probability that a member
// of the subgroup shares a unit with a member of the complementary group.
// Bounded in [0, 1]; high values mean low segregation.
type Exposure struct {
	twoGroup
}

// NewExposure fits the exposure index to a frame.
func NewExposure(f *frame.Frame, groupCol, totalCol string) (*Exposure, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	core, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &Exposure{twoGroup{base{
		name: "exposure",
		stat: exposureStat(c),
		core: core,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates the index on another frame.
func (e *Exposure) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, e.cfg.Group, e.cfg.Total)
	if err != nil {
		return 0, err
	}
	return exposureStat(c), nil
}

// exposureStat sums (x_i/X)(y_i/t_i); zero-population units contribute
// nothing.
func exposureStat(c *counts) float64 {
	var sum float64
	for i := range c.x {
		if c.t[i] <= 0 {
			continue
		}
		sum += (c.x[i] / c.X) * (c.y[i] / c.t[i])
	}
	return sum
}
