package measures

import (
	"math"

	"goseg/domain/frame"
)

// GiniSeg is the Gini segregation index: mean absolute difference in unit
// composition across all unit pairs, normalized by the maximum attainable
// under the overall composition. Bounded in [0, 1].
type GiniSeg struct {
	twoGroup
}

// NewGiniSeg fits the Gini segregation index to a frame.
func NewGiniSeg(f *frame.Frame, groupCol, totalCol string) (*GiniSeg, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	core, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &GiniSeg{twoGroup{base{
		name: "gini_seg",
		stat: giniStat(c),
		core: core,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates the index on another frame.
func (g *GiniSeg) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, g.cfg.Group, g.cfg.Total)
	if err != nil {
		return 0, err
	}
	return giniStat(c), nil
}

func giniStat(c *counts) float64 {
	p := c.composition()
	var sum float64
	for i := range p {
		for j := i + 1; j < len(p); j++ {
			sum += 2 * c.t[i] * c.t[j] * math.Abs(p[i]-p[j])
		}
	}
	return sum / (2 * c.T * c.T * c.P * (1 - c.P))
}
