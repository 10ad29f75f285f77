package measures

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"goseg/domain/frame"
)

// densityTolerance matches the scalar-optimization tolerance of the
// published estimator.
const densityTolerance = 5e-5

// DensityCorrectedDissim is Allen et al.'s density-corrected dissimilarity
// index: each unit's share gap is treated as a noisy observation of a folded
// normal location parameter, which is recovered by per-unit maximum
// likelihood before summing.
type DensityCorrectedDissim struct {
	twoGroup
}

// NewDensityCorrectedDissim fits the density-corrected D to a frame.
func NewDensityCorrectedDissim(f *frame.Frame, groupCol, totalCol string) (*DensityCorrectedDissim, error) {
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	return &DensityCorrectedDissim{twoGroup{base{
		name: "density_corrected_dissim",
		stat: densityCorrectedStat(c),
		core: coreData,
		cfg:  Config{Group: groupCol, Total: totalCol},
	}}}, nil
}

// Recompute evaluates the index on another frame.
func (m *DensityCorrectedDissim) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, m.cfg.Group, m.cfg.Total)
	if err != nil {
		return 0, err
	}
	return densityCorrectedStat(c), nil
}

func densityCorrectedStat(c *counts) float64 {
	var sum float64
	for i := range c.x {
		g := c.x[i] / c.X
		h := c.y[i] / c.Y
		theta := math.Abs(g - h)
		sigma := math.Sqrt(g*(1-g)/c.X + h*(1-h)/c.Y)
		sum += foldedNormalLocation(theta, sigma)
	}
	return 0.5 * sum
}

// foldedNormalLocation finds the location parameter mu >= 0 maximizing the
// folded normal likelihood of one observation theta with known sigma, by
// golden-section search on [0, theta].
func foldedNormalLocation(theta, sigma float64) float64 {
	if sigma <= 0 || theta <= 0 {
		return theta
	}
	std := distuv.Normal{Mu: 0, Sigma: 1}
	negLogLik := func(mu float64) float64 {
		d := std.Prob((theta-mu)/sigma) + std.Prob((theta+mu)/sigma)
		if d <= 0 {
			return math.Inf(1)
		}
		return -math.Log(d / sigma)
	}

	const phi = 0.6180339887498949 // inverse golden ratio
	lo, hi := 0.0, theta
	a := hi - phi*(hi-lo)
	b := lo + phi*(hi-lo)
	fa, fb := negLogLik(a), negLogLik(b)
	for hi-lo > densityTolerance {
		if fa < fb {
			hi, b, fb = b, a, fa
			a = hi - phi*(hi-lo)
			fa = negLogLik(a)
		} else {
			lo, a, fa = a, b, fb
			b = lo + phi*(hi-lo)
			fb = negLogLik(b)
		}
	}
	return (lo + hi) / 2
}
