package measures

import (
	"math"

	"goseg/domain/frame"
)

// MinMax is O'Sullivan & Wong's min-max index: one minus the ratio of the
// intersection to the union of the two groups' spatial distributions.
// Bounded in [0, 1].
type MinMax struct {
	twoGroup
}

// NewMinMax fits the min-max index to a frame.
func NewMinMax(f *frame.Frame, groupCol, totalCol string) (*MinMax, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	core, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &MinMax{twoGroup{base{
		name: "min_max",
		stat: minMaxStat(c),
		core: core,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates the index on another frame.
func (m *MinMax) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, m.cfg.Group, m.cfg.Total)
	if err != nil {
		return 0, err
	}
	return minMaxStat(c), nil
}

func minMaxStat(c *counts) float64 {
	var minSum, maxSum float64
	for i := range c.x {
		xs := c.x[i] / c.X
		ys := c.y[i] / c.Y
		minSum += math.Min(xs, ys)
		maxSum += math.Max(xs, ys)
	}
	return 1 - minSum/maxSum
}
