package measures

import (
	"math"

	"goseg/domain/core"
	"goseg/domain/frame"
)

// multiGroup is the fitted state shared by the multigroup measures.
type multiGroup struct {
	base
}

// GroupColumns returns the fitted group count columns.
func (m *multiGroup) GroupColumns() []string {
	return append([]string(nil), m.cfg.Groups...)
}

// groupMatrix is the extracted numeric view of a multigroup fit.
type groupMatrix struct {
	counts [][]float64 // rows = units, cols = groups
	ti     []float64   // unit totals
	pk     []float64   // overall group shares
	T      float64
}

// shares returns per-unit group shares; zero-population units map to zero.
func (g *groupMatrix) shares() [][]float64 {
	out := make([][]float64, len(g.counts))
	for i, row := range g.counts {
		s := make([]float64, len(row))
		if g.ti[i] > 0 {
			for k, v := range row {
				s[k] = v / g.ti[i]
			}
		}
		out[i] = s
	}
	return out
}

func extractGroups(f *frame.Frame, groups []string) (*groupMatrix, error) {
	if len(groups) < 2 {
		return nil, core.NewParameterError("groups", "needs at least two columns")
	}
	cols := make([][]float64, len(groups))
	for k, name := range groups {
		vals, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		for i, v := range vals {
			if math.IsNaN(v) {
				vals[i] = 0
			} else if v < 0 {
				return nil, core.ErrNegativeCount
			}
		}
		cols[k] = vals
	}

	g := &groupMatrix{
		counts: make([][]float64, f.Len()),
		ti:     make([]float64, f.Len()),
		pk:     make([]float64, len(groups)),
	}
	for i := 0; i < f.Len(); i++ {
		row := make([]float64, len(groups))
		for k := range groups {
			row[k] = cols[k][i]
			g.ti[i] += row[k]
			g.pk[k] += row[k]
		}
		g.counts[i] = row
	}
	for _, v := range g.pk {
		g.T += v
	}
	if g.T <= 0 {
		return nil, core.ErrInsufficientData
	}
	for k := range g.pk {
		g.pk[k] /= g.T
	}
	return g, nil
}

// MultiGini is the Reardon-Firebaugh multigroup Gini segregation index:
// population-weighted mean absolute difference in group shares over all unit
// pairs, summed across groups and normalized by the interaction index.
// Bounded in [0, 1].
type MultiGini struct {
	multiGroup
}

// NewMultiGini fits the multigroup Gini over the named group count columns.
func NewMultiGini(f *frame.Frame, groups []string) (*MultiGini, error) {
	g, err := extractGroups(f, groups)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groups...)
	if err != nil {
		return nil, err
	}
	return &MultiGini{multiGroup{base{
		name: "multi_gini",
		stat: multiGiniStat(g),
		core: coreData,
		cfg:  Config{Groups: append([]string(nil), groups...)},
	}}}, nil
}

// Recompute evaluates the index on another frame.
func (m *MultiGini) Recompute(f *frame.Frame) (float64, error) {
	g, err := extractGroups(f, m.cfg.Groups)
	if err != nil {
		return 0, err
	}
	return multiGiniStat(g), nil
}

func multiGiniStat(g *groupMatrix) float64 {
	var is float64
	for _, p := range g.pk {
		is += p * (1 - p)
	}
	shares := g.shares()

	var sum float64
	for k := range g.pk {
		for i := range shares {
			for j := i + 1; j < len(shares); j++ {
				sum += 2 * g.ti[i] * g.ti[j] * math.Abs(shares[i][k]-shares[j][k])
			}
		}
	}
	return sum / (2 * g.T * g.T * is)
}

// MultiDissim is the multigroup dissimilarity index (Sakoda): mean deviation
// of unit group shares from the overall shares, normalized by the
// interaction index. Bounded in [0, 1].
type MultiDissim struct {
	multiGroup
}

// NewMultiDissim fits the multigroup D over the named group count columns.
func NewMultiDissim(f *frame.Frame, groups []string) (*MultiDissim, error) {
	g, err := extractGroups(f, groups)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groups...)
	if err != nil {
		return nil, err
	}
	return &MultiDissim{multiGroup{base{
		name: "multi_dissim",
		stat: multiDissimStat(g),
		core: coreData,
		cfg:  Config{Groups: append([]string(nil), groups...)},
	}}}, nil
}

// Recompute evaluates the index on another frame.
func (m *MultiDissim) Recompute(f *frame.Frame) (float64, error) {
	g, err := extractGroups(f, m.cfg.Groups)
	if err != nil {
		return 0, err
	}
	return multiDissimStat(g), nil
}

func multiDissimStat(g *groupMatrix) float64 {
	var is float64
	for _, p := range g.pk {
		is += p * (1 - p)
	}
	shares := g.shares()

	var sum float64
	for k, pk := range g.pk {
		for i := range shares {
			sum += g.ti[i] * math.Abs(shares[i][k]-pk)
		}
	}
	return sum / (2 * g.T * is)
}

// MultiDiversity is the entropy of the overall group composition (Theil's
// E). It is the ceiling of the information-theory index's numerator, not a
// segregation measure itself; bounded in [0, ln K].
type MultiDiversity struct {
	multiGroup
}

// NewMultiDiversity fits the diversity score over the named group columns.
func NewMultiDiversity(f *frame.Frame, groups []string) (*MultiDiversity, error) {
	g, err := extractGroups(f, groups)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groups...)
	if err != nil {
		return nil, err
	}
	return &MultiDiversity{multiGroup{base{
		name: "multi_diversity",
		stat: groupEntropy(g.pk),
		core: coreData,
		cfg:  Config{Groups: append([]string(nil), groups...)},
	}}}, nil
}

// Recompute evaluates the score on another frame.
func (m *MultiDiversity) Recompute(f *frame.Frame) (float64, error) {
	g, err := extractGroups(f, m.cfg.Groups)
	if err != nil {
		return 0, err
	}
	return groupEntropy(g.pk), nil
}

// MultiInformationTheory is Theil's multigroup H: one minus the
// population-weighted mean unit entropy relative to the overall entropy.
// Bounded in [0, 1].
type MultiInformationTheory struct {
	multiGroup
}

// NewMultiInformationTheory fits the multigroup H over the named group
// columns.
func NewMultiInformationTheory(f *frame.Frame, groups []string) (*MultiInformationTheory, error) {
	g, err := extractGroups(f, groups)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groups...)
	if err != nil {
		return nil, err
	}
	return &MultiInformationTheory{multiGroup{base{
		name: "multi_information_theory",
		stat: multiInfoStat(g),
		core: coreData,
		cfg:  Config{Groups: append([]string(nil), groups...)},
	}}}, nil
}

// Recompute evaluates the index on another frame.
func (m *MultiInformationTheory) Recompute(f *frame.Frame) (float64, error) {
	g, err := extractGroups(f, m.cfg.Groups)
	if err != nil {
		return 0, err
	}
	return multiInfoStat(g), nil
}

func multiInfoStat(g *groupMatrix) float64 {
	e := groupEntropy(g.pk)
	if e == 0 {
		return 0
	}
	shares := g.shares()
	var sum float64
	for i, row := range shares {
		if g.ti[i] <= 0 {
			continue
		}
		sum += g.ti[i] * (e - groupEntropy(row))
	}
	return sum / (g.T * e)
}

// groupEntropy is -sum p_k ln p_k with 0*ln(0) taken as 0.
func groupEntropy(p []float64) float64 {
	var e float64
	for _, v := range p {
		if v > 0 {
			e -= v * math.Log(v)
		}
	}
	return e
}
