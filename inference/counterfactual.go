package inference

import (
	"math/rand"
	"sort"

	"goseg/domain/core"
	"goseg/domain/frame"
	"goseg/ports"
)

// counterfactualCounts holds one frame's observed counts next to the counts
// it would have under the other frame's distribution.
type counterfactualCounts struct {
	x, t   []float64
	cfX    []float64
	cfT    []float64
	tg     ports.TwoGroupConfigured
	source *frame.Frame
}

// buildCounterfactuals quantile-maps each frame's unit values through the
// other frame's empirical distribution. The composition variant maps x_i/t_i
// and rescales by unit totals; the share variant maps x_i/X and rescales by
// the group population.
func buildCounterfactuals(f1, f2 *frame.Frame, tg1, tg2 ports.TwoGroupConfigured, approach NullApproach) (*counterfactualCounts, *counterfactualCounts, error) {
	c1, err := newCounterfactual(f1, tg1)
	if err != nil {
		return nil, nil, err
	}
	c2, err := newCounterfactual(f2, tg2)
	if err != nil {
		return nil, nil, err
	}

	switch approach {
	case CounterfactualComposition:
		c1.mapCompositions(c2)
		c2.mapCompositions(c1)
	case CounterfactualShare:
		c1.mapShares(c2)
		c2.mapShares(c1)
	default:
		return nil, nil, core.ErrUnknownApproach
	}
	return c1, c2, nil
}

func newCounterfactual(f *frame.Frame, tg ports.TwoGroupConfigured) (*counterfactualCounts, error) {
	x, t, err := countColumns(f, tg)
	if err != nil {
		return nil, err
	}
	return &counterfactualCounts{x: x, t: t, tg: tg, source: f}, nil
}

func (c *counterfactualCounts) totals() (X, T float64) {
	for i := range c.x {
		X += c.x[i]
		T += c.t[i]
	}
	return X, T
}

// mapCompositions sets c's counterfactual counts from the other frame's
// composition distribution, holding unit totals fixed.
func (c *counterfactualCounts) mapCompositions(other *counterfactualCounts) {
	mapped := quantileMap(compositions(c.x, c.t), compositions(other.x, other.t))
	c.cfX = make([]float64, len(c.x))
	for i := range mapped {
		c.cfX[i] = mapped[i] * c.t[i]
	}
	c.cfT = c.t
}

// mapShares sets c's counterfactual counts from the other frame's group
// share distribution, holding the group population fixed.
func (c *counterfactualCounts) mapShares(other *counterfactualCounts) {
	X, _ := c.totals()
	otherX, _ := other.totals()

	shares := make([]float64, len(c.x))
	for i := range shares {
		if X > 0 {
			shares[i] = c.x[i] / X
		}
	}
	otherShares := make([]float64, len(other.x))
	for i := range otherShares {
		if otherX > 0 {
			otherShares[i] = other.x[i] / otherX
		}
	}

	mapped := quantileMap(shares, otherShares)
	c.cfX = make([]float64, len(c.x))
	c.cfT = make([]float64, len(c.t))
	for i := range mapped {
		c.cfX[i] = mapped[i] * X
		// Totals move with the group so complements stay non-negative.
		c.cfT[i] = c.t[i] - c.x[i] + c.cfX[i]
	}
}

// mix draws one simulated frame: each unit keeps its observed counts or
// takes its counterfactual ones on a fair coin flip.
func (c *counterfactualCounts) mix(rng *rand.Rand) (*frame.Frame, error) {
	x := make([]float64, len(c.x))
	t := make([]float64, len(c.t))
	for i := range x {
		if rng.Float64() < 0.5 {
			x[i] = c.cfX[i]
			t[i] = c.cfT[i]
		} else {
			x[i] = c.x[i]
			t[i] = c.t[i]
		}
	}
	return withCounts(c.source, c.tg, x, t)
}

func compositions(x, t []float64) []float64 {
	p := make([]float64, len(x))
	for i := range p {
		if t[i] > 0 {
			p[i] = x[i] / t[i]
		}
	}
	return p
}

// quantileMap carries each value from its own empirical distribution to the
// same quantile of the reference distribution, with linear interpolation
// between reference order statistics.
func quantileMap(values, reference []float64) []float64 {
	own := append([]float64(nil), values...)
	sort.Float64s(own)
	ref := append([]float64(nil), reference...)
	sort.Float64s(ref)

	out := make([]float64, len(values))
	for i, v := range values {
		// Upper-bound rank keeps ties on the same quantile.
		le := sort.Search(len(own), func(j int) bool { return own[j] > v })
		q := 0.5
		if len(own) > 1 {
			q = float64(le-1) / float64(len(own)-1)
		}
		out[i] = refQuantile(ref, q)
	}
	return out
}

func refQuantile(sortedRef []float64, q float64) float64 {
	if len(sortedRef) == 0 {
		return 0
	}
	if q <= 0 {
		return sortedRef[0]
	}
	if q >= 1 {
		return sortedRef[len(sortedRef)-1]
	}
	pos := q * float64(len(sortedRef)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= len(sortedRef) {
		return sortedRef[len(sortedRef)-1]
	}
	return sortedRef[lo]*(1-frac) + sortedRef[lo+1]*frac
}
