package measures

import (
	"math"

	"goseg/domain/frame"
)

// Entropy is Theil's information-theory index H: one minus the
// population-weighted average of unit entropy relative to the entropy of the
// whole study area. Bounded in [0, 1].
type Entropy struct {
	twoGroup
}

// NewEntropy fits the information-theory index to a frame.
func NewEntropy(f *frame.Frame, groupCol, totalCol string) (*Entropy, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	core, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &Entropy{twoGroup{base{
		name: "entropy",
		stat: entropyStat(c),
		core: core,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates the index on another frame.
func (e *Entropy) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, e.cfg.Group, e.cfg.Total)
	if err != nil {
		return 0, err
	}
	return entropyStat(c), nil
}

func entropyStat(c *counts) float64 {
	areaEntropy := binaryEntropy(c.P)
	var sum float64
	for i := range c.t {
		if c.t[i] <= 0 {
			continue
		}
		sum += c.t[i] * (areaEntropy - binaryEntropy(c.x[i]/c.t[i]))
	}
	return sum / (areaEntropy * c.T)
}

// binaryEntropy is p·ln(1/p) + (1−p)·ln(1/(1−p)) with 0·ln(0) taken as 0.
func binaryEntropy(p float64) float64 {
	var e float64
	if p > 0 {
		e += p * math.Log(1/p)
	}
	if p < 1 {
		e += (1 - p) * math.Log(1/(1-p))
	}
	return e
}
