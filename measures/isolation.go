package measures

import (
	"goseg/domain/frame"
)

// Isolation is the isolation index xPx: the probability that a member of the
// subgroup shares a unit with another member of the same group. Bounded in
// [0, 1].
type Isolation struct {
	twoGroup
}

// NewIsolation fits the isolation index to a frame.
func NewIsolation(f *frame.Frame, groupCol, totalCol string) (*Isolation, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	core, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &Isolation{twoGroup{base{
		name: "isolation",
		stat: isolationStat(c),
		core: core,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates the index on another frame.
func (e *Isolation) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, e.cfg.Group, e.cfg.Total)
	if err != nil {
		return 0, err
	}
	return isolationStat(c), nil
}

func isolationStat(c *counts) float64 {
	var sum float64
	for i := range c.x {
		if c.t[i] <= 0 {
			continue
		}
		sum += (c.x[i] / c.X) * (c.x[i] / c.t[i])
	}
	return sum
}
