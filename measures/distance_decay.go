package measures

import (
	"gonum.org/v1/gonum/mat"

	"goseg/domain/frame"
	"goseg/domain/spatial"
)

// DistanceDecayExposure is Morgan's distance-decay exposure DPxy: the
// probability that the next person a subgroup member interacts with, with
// interaction likelihood decaying over distance, belongs to the complement
// group. Bounded in [0, 1].
type DistanceDecayExposure struct {
	twoGroup
}

// NewDistanceDecayExposure fits DPxy with decay parameters alpha and beta.
func NewDistanceDecayExposure(f *frame.Frame, groupCol, totalCol string, alpha, beta float64) (*DistanceDecayExposure, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	kernel, err := spatial.DistanceKernel(f, alpha, beta)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &DistanceDecayExposure{twoGroup{base{
		name: "distance_decay_exposure",
		stat: distanceDecayStat(c, kernel, c.y),
		core: coreData,
		cfg:  Config{Group: groupCol, Total: totalCol, Alpha: alpha, Beta: beta},
	}}}, nil
}

// Recompute evaluates DPxy on another frame.
func (d *DistanceDecayExposure) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, d.cfg.Group, d.cfg.Total)
	if err != nil {
		return 0, err
	}
	kernel, err := spatial.DistanceKernel(f, d.cfg.Alpha, d.cfg.Beta)
	if err != nil {
		return 0, err
	}
	return distanceDecayStat(c, kernel, c.y), nil
}

// DistanceDecayIsolation is the distance-decay isolation DPxx: the same
// interaction model evaluated against members of the subgroup itself.
type DistanceDecayIsolation struct {
	twoGroup
}

// NewDistanceDecayIsolation fits DPxx with decay parameters alpha and beta.
func NewDistanceDecayIsolation(f *frame.Frame, groupCol, totalCol string, alpha, beta float64) (*DistanceDecayIsolation, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	kernel, err := spatial.DistanceKernel(f, alpha, beta)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &DistanceDecayIsolation{twoGroup{base{
		name: "distance_decay_isolation",
		stat: distanceDecayStat(c, kernel, c.x),
		core: coreData,
		cfg:  Config{Group: groupCol, Total: totalCol, Alpha: alpha, Beta: beta},
	}}}, nil
}

// Recompute evaluates DPxx on another frame.
func (d *DistanceDecayIsolation) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, d.cfg.Group, d.cfg.Total)
	if err != nil {
		return 0, err
	}
	kernel, err := spatial.DistanceKernel(f, d.cfg.Alpha, d.cfg.Beta)
	if err != nil {
		return 0, err
	}
	return distanceDecayStat(c, kernel, c.x), nil
}

// distanceDecayStat computes sum_i (x_i/X) sum_j K_ij (target_j/t_j), where
// K_ij normalizes kernel-weighted populations within each unit's
// interaction field.
func distanceDecayStat(c *counts, kernel *mat.Dense, target []float64) float64 {
	n := c.n()
	var sum float64
	for i := 0; i < n; i++ {
		var field float64
		for j := 0; j < n; j++ {
			field += kernel.At(i, j) * c.t[j]
		}
		if field <= 0 {
			continue
		}
		var inner float64
		for j := 0; j < n; j++ {
			if c.t[j] <= 0 {
				continue
			}
			k := kernel.At(i, j) * c.t[j] / field
			inner += k * (target[j] / c.t[j])
		}
		sum += (c.x[i] / c.X) * inner
	}
	return sum
}
