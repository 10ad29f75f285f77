package spatial

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"goseg/domain/core"
	"goseg/domain/frame"
)

// Default decay parameters for the within-unit distance estimate
// d_ii = (alpha * area_i)^beta, after Massey & Denton.
const (
	DefaultAlpha = 0.6
	DefaultBeta  = 0.5
)

// DistanceKernel returns the n-by-n proximity matrix c_ij = exp(-d_ij) from
// unit centroids, with the diagonal filled by the within-unit estimate
// (alpha * area_i)^beta. This is the kernel the clustering, proximity and
// distance-decay measures share.
func DistanceKernel(f *frame.Frame, alpha, beta float64) (*mat.Dense, error) {
	g := f.Geometry()
	if g == nil || g.CentroidX == nil || g.CentroidY == nil || g.Areas == nil {
		return nil, core.ErrMissingGeometry
	}
	if alpha <= 0 {
		return nil, core.NewParameterError("alpha", "must be positive")
	}
	if beta <= 0 {
		return nil, core.NewParameterError("beta", "must be positive")
	}

	n := f.Len()
	c := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		c.Set(i, i, math.Exp(-math.Pow(alpha*g.Areas[i], beta)))
		for j := i + 1; j < n; j++ {
			dx := g.CentroidX[i] - g.CentroidX[j]
			dy := g.CentroidY[i] - g.CentroidY[j]
			v := math.Exp(-math.Hypot(dx, dy))
			c.Set(i, j, v)
			c.Set(j, i, v)
		}
	}
	return c, nil
}

// CentroidDistances returns the plain euclidean distance matrix between unit
// centroids, diagonal zero.
func CentroidDistances(f *frame.Frame) (*mat.Dense, error) {
	g := f.Geometry()
	if g == nil || g.CentroidX == nil || g.CentroidY == nil {
		return nil, core.ErrMissingGeometry
	}
	n := f.Len()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dx := g.CentroidX[i] - g.CentroidX[j]
			dy := g.CentroidY[i] - g.CentroidY[j]
			v := math.Hypot(dx, dy)
			d.Set(i, j, v)
			d.Set(j, i, v)
		}
	}
	return d, nil
}
