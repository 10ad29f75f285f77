// Package measures implements point estimators for segregation indices over
// a unit frame: aspatial evenness and exposure measures, their simulation-
// and bootstrap-corrected variants, spatial measures parameterized by
// neighbor weights or distance-decay kernels, and multigroup measures.
//
// Every estimator is fitted once at construction and immutable afterwards.
// Recompute evaluates the same configuration against a different frame; the
// inference package drives resampling through it.
package measures

import (
	"math"

	"goseg/domain/core"
	"goseg/domain/frame"
)

// Config records the configuration a measure was fitted with: the column
// bindings plus any measure-specific parameters.
type Config struct {
	Group  string   // subgroup count column
	Total  string   // total count column
	Groups []string // multigroup measures only

	B          float64 // Atkinson shape parameter
	M          int     // profile resolution
	Iterations int     // iterative corrections
	Seed       int64   // RNG seed for iterative corrections

	Alpha       float64 // distance-decay alpha
	Beta        float64 // distance-decay beta
	Standardize bool    // row-standardize neighbor weights
}

// base carries the fitted state common to all estimators.
type base struct {
	name string
	stat float64
	core *frame.Frame
	cfg  Config
}

func (b *base) Name() string       { return b.name }
func (b *base) Statistic() float64 { return b.stat }
func (b *base) Core() *frame.Frame { return b.core }
func (b *base) Config() Config     { return b.cfg }

// twoGroup is the fitted state of a single group/total column pair measure.
type twoGroup struct {
	base
}

func (t *twoGroup) GroupColumn() string { return t.cfg.Group }
func (t *twoGroup) TotalColumn() string { return t.cfg.Total }

// counts is the extracted numeric view of one group/total pair.
type counts struct {
	x []float64 // subgroup counts
	t []float64 // total counts
	y []float64 // complement counts t - x

	X float64 // sum of x
	T float64 // sum of t
	Y float64 // sum of y
	P float64 // overall composition X/T
}

func (c *counts) n() int { return len(c.x) }

// composition returns x_i/t_i with zero-population units mapped to 0.
func (c *counts) composition() []float64 {
	p := make([]float64, len(c.x))
	for i := range p {
		if c.t[i] > 0 {
			p[i] = c.x[i] / c.t[i]
		}
	}
	return p
}

// extractCounts validates the column pair and pulls the count vectors.
// NaN entries are treated as zero so that unit indices stay aligned with any
// spatial weights; callers that care can reject NaN frames up front with
// frame.HasNaN. A group that is empty or universal has no segregation to
// measure and is reported as insufficient data.
func extractCounts(f *frame.Frame, groupCol, totalCol string) (*counts, error) {
	if err := f.CheckCounts(groupCol, totalCol); err != nil {
		return nil, err
	}
	x, _ := f.Column(groupCol)
	t, _ := f.Column(totalCol)

	c := &counts{x: x, t: t, y: make([]float64, len(x))}
	for i := range x {
		if math.IsNaN(x[i]) {
			x[i] = 0
		}
		if math.IsNaN(t[i]) {
			t[i] = 0
		}
		if x[i] > t[i] {
			// NaN totals zeroed above can undercut their group count.
			x[i] = t[i]
		}
		c.y[i] = t[i] - x[i]
		c.X += x[i]
		c.T += t[i]
	}
	c.Y = c.T - c.X
	if c.T <= 0 || c.X <= 0 || c.Y <= 0 {
		return nil, core.ErrInsufficientData
	}
	c.P = c.X / c.T
	return c, nil
}

// fitCore restricts the frame to the columns the measure used, carrying
// geometry along for spatial estimators.
func fitCore(f *frame.Frame, cols ...string) (*frame.Frame, error) {
	return f.Select(cols...)
}
