package measures

import (
	"gonum.org/v1/gonum/mat"

	"goseg/domain/frame"
	"goseg/domain/spatial"
)

// SpatialProximity is White's spatial proximity index SP: average proximity
// within each group relative to average proximity in the whole population,
// computed over the exp(-distance) kernel. Values above 1 indicate
// clustering.
type SpatialProximity struct {
	twoGroup
}

// NewSpatialProximity fits SP with decay parameters alpha and beta, which
// set the within-unit distance estimate (alpha * area)^beta. The frame must
// carry centroid and area geometry.
func NewSpatialProximity(f *frame.Frame, groupCol, totalCol string, alpha, beta float64) (*SpatialProximity, error) {
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
	pxx, pyy, ptt := proximityAggregates(c, kernel)
	return &SpatialProximity{twoGroup{base{
		name: "spatial_proximity",
		stat: (c.X*pxx + c.Y*pyy) / (c.T * ptt),
		core: coreData,
		cfg:  Config{Group: groupCol, Total: totalCol, Alpha: alpha, Beta: beta},
	}}}, nil
}

// Recompute evaluates SP on another frame; the kernel is rebuilt from that
// frame's geometry.
func (s *SpatialProximity) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, s.cfg.Group, s.cfg.Total)
	if err != nil {
		return 0, err
	}
	kernel, err := spatial.DistanceKernel(f, s.cfg.Alpha, s.cfg.Beta)
	if err != nil {
		return 0, err
	}
	pxx, pyy, ptt := proximityAggregates(c, kernel)
	return (c.X*pxx + c.Y*pyy) / (c.T * ptt), nil
}

// RelativeClustering is RCL = Pxx/Pyy − 1: proximity of the subgroup to
// itself against proximity of the complement to itself. Zero means both
// groups cluster equally.
type RelativeClustering struct {
	twoGroup
}

// NewRelativeClustering fits RCL with decay parameters alpha and beta.
func NewRelativeClustering(f *frame.Frame, groupCol, totalCol string, alpha, beta float64) (*RelativeClustering, error) {
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
	pxx, pyy, _ := proximityAggregates(c, kernel)
	return &RelativeClustering{twoGroup{base{
		name: "relative_clustering",
		stat: pxx/pyy - 1,
		core: coreData,
		cfg:  Config{Group: groupCol, Total: totalCol, Alpha: alpha, Beta: beta},
	}}}, nil
}

// Recompute evaluates RCL on another frame.
func (r *RelativeClustering) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, r.cfg.Group, r.cfg.Total)
	if err != nil {
		return 0, err
	}
	kernel, err := spatial.DistanceKernel(f, r.cfg.Alpha, r.cfg.Beta)
	if err != nil {
		return 0, err
	}
	pxx, pyy, _ := proximityAggregates(c, kernel)
	return pxx/pyy - 1, nil
}

// AbsoluteClustering is Massey & Denton's ACL: the subgroup's mean proximity
// to itself, rescaled between the value expected from a uniform spread and
// the proximity to the full population.
type AbsoluteClustering struct {
	twoGroup
}

// NewAbsoluteClustering fits ACL with decay parameters alpha and beta.
func NewAbsoluteClustering(f *frame.Frame, groupCol, totalCol string, alpha, beta float64) (*AbsoluteClustering, error) {
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
	return &AbsoluteClustering{twoGroup{base{
		name: "absolute_clustering",
		stat: absoluteClusteringStat(c, kernel),
		core: coreData,
		cfg:  Config{Group: groupCol, Total: totalCol, Alpha: alpha, Beta: beta},
	}}}, nil
}

// Recompute evaluates ACL on another frame.
func (a *AbsoluteClustering) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, a.cfg.Group, a.cfg.Total)
	if err != nil {
		return 0, err
	}
	kernel, err := spatial.DistanceKernel(f, a.cfg.Alpha, a.cfg.Beta)
	if err != nil {
		return 0, err
	}
	return absoluteClusteringStat(c, kernel), nil
}

func absoluteClusteringStat(c *counts, kernel *mat.Dense) float64 {
	n := c.n()
	nf := float64(n)

	var lagX, lagT, kernelSum float64
	var num, den float64
	for i := 0; i < n; i++ {
		lagX, lagT = 0, 0
		for j := 0; j < n; j++ {
			cij := kernel.At(i, j)
			lagX += cij * c.x[j]
			lagT += cij * c.t[j]
			kernelSum += cij
		}
		num += (c.x[i] / c.X) * lagX
		den += (c.x[i] / c.X) * lagT
	}
	uniform := c.X / (nf * nf) * kernelSum
	return (num - uniform) / (den - uniform)
}

// proximityAggregates computes the mean pairwise proximities Pxx, Pyy, Ptt
// over the kernel.
func proximityAggregates(c *counts, kernel *mat.Dense) (pxx, pyy, ptt float64) {
	n := c.n()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cij := kernel.At(i, j)
			pxx += c.x[i] * c.x[j] * cij
			pyy += c.y[i] * c.y[j] * cij
			ptt += c.t[i] * c.t[j] * cij
		}
	}
	pxx /= c.X * c.X
	pyy /= c.Y * c.Y
	ptt /= c.T * c.T
	return pxx, pyy, ptt
}
