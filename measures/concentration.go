package measures

import (
	"sort"

	"goseg/domain/frame"
)

// AbsoluteConcentration is Massey & Denton's ACO: how tightly the subgroup
// packs into the smallest units, rescaled between the most and least
// concentrated arrangements the unit areas allow. Bounded in [0, 1].
type AbsoluteConcentration struct {
	twoGroup
}

// NewAbsoluteConcentration fits ACO to a frame with area geometry.
func NewAbsoluteConcentration(f *frame.Frame, groupCol, totalCol string) (*AbsoluteConcentration, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	areas, err := unitAreas(f)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &AbsoluteConcentration{twoGroup{base{
		name: "absolute_concentration",
		stat: absoluteConcentrationStat(c, areas),
		core: coreData,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates ACO on another frame.
func (a *AbsoluteConcentration) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, a.cfg.Group, a.cfg.Total)
	if err != nil {
		return 0, err
	}
	areas, err := unitAreas(f)
	if err != nil {
		return 0, err
	}
	return absoluteConcentrationStat(c, areas), nil
}

// RelativeConcentration is RCO: the subgroup's concentration relative to the
// complement group's, against the bounds set by the area distribution.
type RelativeConcentration struct {
	twoGroup
}

// NewRelativeConcentration fits RCO to a frame with area geometry.
func NewRelativeConcentration(f *frame.Frame, groupCol, totalCol string) (*RelativeConcentration, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	areas, err := unitAreas(f)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &RelativeConcentration{twoGroup{base{
		name: "relative_concentration",
		stat: relativeConcentrationStat(c, areas),
		core: coreData,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates RCO on another frame.
func (r *RelativeConcentration) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, r.cfg.Group, r.cfg.Total)
	if err != nil {
		return 0, err
	}
	areas, err := unitAreas(f)
	if err != nil {
		return 0, err
	}
	return relativeConcentrationStat(c, areas), nil
}

// concentrationBounds ranks units by area and finds the extremes used by
// both concentration indices: n1/T1 cover the smallest units that could just
// house the subgroup, n2/T2 the largest.
type concentrationBounds struct {
	small float64 // sum over smallest units of t_i*a_i / T1
	large float64 // sum over largest units of t_i*a_i / T2
}

func concentrationRank(c *counts, areas []float64) concentrationBounds {
	order := make([]int, c.n())
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return areas[order[a]] < areas[order[b]] })

	var cum, t1, ta1 float64
	for _, idx := range order {
		cum += c.t[idx]
		t1 += c.t[idx]
		ta1 += c.t[idx] * areas[idx]
		if cum >= c.X {
			break
		}
	}

	cum = 0
	var t2, ta2 float64
	for k := len(order) - 1; k >= 0; k-- {
		idx := order[k]
		cum += c.t[idx]
		t2 += c.t[idx]
		ta2 += c.t[idx] * areas[idx]
		if cum >= c.X {
			break
		}
	}

	return concentrationBounds{small: ta1 / t1, large: ta2 / t2}
}

func absoluteConcentrationStat(c *counts, areas []float64) float64 {
	var xa float64
	for i := range c.x {
		xa += c.x[i] * areas[i]
	}
	b := concentrationRank(c, areas)
	return 1 - (xa/c.X-b.small)/(b.large-b.small)
}

func relativeConcentrationStat(c *counts, areas []float64) float64 {
	var xa, ya float64
	for i := range c.x {
		xa += c.x[i] * areas[i]
		ya += c.y[i] * areas[i]
	}
	b := concentrationRank(c, areas)
	return ((xa/c.X)/(ya/c.Y) - 1) / (b.small/b.large - 1)
}
