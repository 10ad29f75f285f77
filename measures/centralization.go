package measures

import (
	"sort"

	"goseg/domain/core"
	"goseg/domain/frame"
)

// AbsoluteCentralization is ACE: how close the subgroup lives to the center
// of the study area, measured by cross products of cumulative group and area
// shares with units ranked by distance from the mean center. Ranges over
// [-1, 1]; positive values mean the subgroup is more centralized than land
// area.
type AbsoluteCentralization struct {
	twoGroup
}

// NewAbsoluteCentralization fits ACE to a frame with centroid and area
// geometry. The center is the unweighted mean of unit centroids.
func NewAbsoluteCentralization(f *frame.Frame, groupCol, totalCol string) (*AbsoluteCentralization, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	stat, err := centralizationStat(f, c, true)
	if err != nil {
		return nil, err
	}
	return &AbsoluteCentralization{twoGroup{base{
		name: "absolute_centralization",
		stat: stat,
		core: coreData,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates ACE on another frame.
func (a *AbsoluteCentralization) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, a.cfg.Group, a.cfg.Total)
	if err != nil {
		return 0, err
	}
	return centralizationStat(f, c, true)
}

// RelativeCentralization is RCE: the subgroup's centralization relative to
// the complement group's, over the same distance ranking. Ranges over
// [-1, 1].
type RelativeCentralization struct {
	twoGroup
}

// NewRelativeCentralization fits RCE to a frame with centroid geometry.
func NewRelativeCentralization(f *frame.Frame, groupCol, totalCol string) (*RelativeCentralization, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	stat, err := centralizationStat(f, c, false)
	if err != nil {
		return nil, err
	}
	return &RelativeCentralization{twoGroup{base{
		name: "relative_centralization",
		stat: stat,
		core: coreData,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates RCE on another frame.
func (r *RelativeCentralization) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, r.cfg.Group, r.cfg.Total)
	if err != nil {
		return 0, err
	}
	return centralizationStat(f, c, false)
}

// centralizationStat ranks units by distance from the mean center and sums
// cross products of cumulative shares. With againstArea the reference
// distribution is land area (ACE); otherwise the complement group (RCE).
func centralizationStat(f *frame.Frame, c *counts, againstArea bool) (float64, error) {
	g := f.Geometry()
	if g == nil || g.CentroidX == nil || g.CentroidY == nil {
		return 0, core.ErrMissingGeometry
	}
	ref := c.y
	var refTotal float64 = c.Y
	if againstArea {
		areas, err := unitAreas(f)
		if err != nil {
			return 0, err
		}
		ref = areas
		refTotal = 0
		for _, a := range areas {
			refTotal += a
		}
	}

	n := c.n()
	var cx, cy float64
	for i := 0; i < n; i++ {
		cx += g.CentroidX[i]
		cy += g.CentroidY[i]
	}
	cx /= float64(n)
	cy /= float64(n)

	dist := make([]float64, n)
	order := make([]int, n)
	for i := 0; i < n; i++ {
		dx := g.CentroidX[i] - cx
		dy := g.CentroidY[i] - cy
		dist[i] = dx*dx + dy*dy
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return dist[order[a]] < dist[order[b]] })

	var stat, cumX, cumRef float64
	for _, idx := range order {
		nextX := cumX + c.x[idx]/c.X
		nextRef := cumRef + ref[idx]/refTotal
		stat += cumX*nextRef - nextX*cumRef
		cumX, cumRef = nextX, nextRef
	}
	return stat, nil
}
