package measures

import (
	"math"

	"goseg/domain/core"
	"goseg/domain/frame"
)

// DefaultAtkinsonShape is the conventional symmetric weighting.
const DefaultAtkinsonShape = 0.5

// Atkinson is the Atkinson segregation index with shape parameter b in
// (0, 1) governing how over- and under-represented units are weighted.
// Bounded in [0, 1].
type Atkinson struct {
	twoGroup
}

// NewAtkinson fits the Atkinson index with shape parameter b.
func NewAtkinson(f *frame.Frame, groupCol, totalCol string, b float64) (*Atkinson, error) {
	if b <= 0 || b >= 1 {
		return nil, core.NewParameterError("b", "must lie strictly between 0 and 1")
	}
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &Atkinson{twoGroup{base{
		name: "atkinson",
		stat: atkinsonStat(c, b),
		core: coreData,
		cfg:  Config{Group: groupCol, Total: totalCol, B: b},
	}}}, nil
}

// Recompute evaluates the index on another frame with the fitted shape.
func (a *Atkinson) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, a.cfg.Group, a.cfg.Total)
	if err != nil {
		return 0, err
	}
	return atkinsonStat(c, a.cfg.B), nil
}

func atkinsonStat(c *counts, b float64) float64 {
	var sum float64
	for i := range c.t {
		if c.t[i] <= 0 {
			continue
		}
		p := c.x[i] / c.t[i]
		sum += math.Pow(1-p, 1-b) * math.Pow(p, b) * c.t[i]
	}
	inner := sum / (c.P * c.T)
	return 1 - (c.P/(1-c.P))*math.Pow(math.Abs(inner), 1/(1-b))
}
