package measures

import (
	"goseg/domain/frame"
)

// CorrelationR is the correlation ratio V (eta squared): the isolation index
// adjusted for the overall composition, V = (xPx − P)/(1 − P). Bounded in
// [0, 1].
type CorrelationR struct {
	twoGroup
}

// NewCorrelationR fits the correlation ratio to a frame.
func NewCorrelationR(f *frame.Frame, groupCol, totalCol string) (*CorrelationR, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	core, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &CorrelationR{twoGroup{base{
		name: "correlation_r",
		stat: correlationStat(c),
		core: core,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates the ratio on another frame.
func (v *CorrelationR) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, v.cfg.Group, v.cfg.Total)
	if err != nil {
		return 0, err
	}
	return correlationStat(c), nil
}

func correlationStat(c *counts) float64 {
	return (isolationStat(c) - c.P) / (1 - c.P)
}
