// Package testkit generates synthetic cities for tests: square grids of
// tract-like units with controllable population layouts, geometry and
// neighbor weights.
package testkit

import (
	"fmt"
	"math/rand"

	"goseg/domain/frame"
	"goseg/domain/spatial"
)

// CityConfig configures the synthetic city generator.
type CityConfig struct {
	Side      int     // grid side length; the city has Side*Side units
	UnitTotal float64 // base population per unit
	Share     float64 // citywide subgroup share
	Noise     float64 // relative jitter on unit totals
	Seed      int64
}

// DefaultCityConfig returns a small city that keeps simulation tests fast.
func DefaultCityConfig() CityConfig {
	return CityConfig{
		Side:      4,
		UnitTotal: 200,
		Share:     0.3,
		Noise:     0.1,
		Seed:      42,
	}
}

// Layout controls how the subgroup is spread across the grid.
type Layout int

const (
	// LayoutEven gives every unit the citywide share.
	LayoutEven Layout = iota
	// LayoutSegregated packs the subgroup into the fewest units possible.
	LayoutSegregated
	// LayoutClustered concentrates the subgroup in one corner of the grid
	// with a gradient toward the opposite corner.
	LayoutClustered
	// LayoutRandom draws each unit's count binomially at the citywide share.
	LayoutRandom
)

// City is a generated frame with its grid geometry and rook weights.
type City struct {
	Frame   *frame.Frame
	Weights *spatial.Weights

	GroupCol string
	TotalCol string
}

// GenerateCity builds a synthetic city under the given layout.
func GenerateCity(cfg CityConfig, layout Layout) (*City, error) {
	if cfg.Side < 2 {
		return nil, fmt.Errorf("grid side must be at least 2, got %d", cfg.Side)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	n := cfg.Side * cfg.Side

	totals := make([]float64, n)
	for i := range totals {
		jitter := 1 + cfg.Noise*(2*rng.Float64()-1)
		totals[i] = float64(int(cfg.UnitTotal*jitter + 0.5))
		if totals[i] < 1 {
			totals[i] = 1
		}
	}

	groups := make([]float64, n)
	switch layout {
	case LayoutEven:
		for i := range groups {
			groups[i] = float64(int(totals[i]*cfg.Share + 0.5))
		}
	case LayoutSegregated:
		remaining := 0.0
		for i := range totals {
			remaining += totals[i]
		}
		remaining *= cfg.Share
		for i := range groups {
			take := totals[i]
			if take > remaining {
				take = remaining
			}
			groups[i] = float64(int(take))
			remaining -= groups[i]
			if remaining <= 0 {
				break
			}
		}
	case LayoutClustered:
		// Composition falls off with grid distance from the (0,0) corner.
		maxDist := float64(2 * (cfg.Side - 1))
		for i := range groups {
			row, col := i/cfg.Side, i%cfg.Side
			weight := 1 - float64(row+col)/maxDist
			p := cfg.Share * 2 * weight
			if p > 0.95 {
				p = 0.95
			}
			groups[i] = float64(int(totals[i]*p + 0.5))
		}
	case LayoutRandom:
		for i := range groups {
			var count float64
			for j := 0.0; j < totals[i]; j++ {
				if rng.Float64() < cfg.Share {
					count++
				}
			}
			groups[i] = count
		}
	default:
		return nil, fmt.Errorf("unknown layout %d", layout)
	}

	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("tract-%03d", i)
	}
	f, err := frame.New(ids, map[string][]float64{
		"group": groups,
		"total": totals,
	})
	if err != nil {
		return nil, err
	}
	f, err = f.WithGeometry(GridGeometry(cfg.Side))
	if err != nil {
		return nil, err
	}

	w, err := RookWeights(cfg.Side)
	if err != nil {
		return nil, err
	}

	return &City{Frame: f, Weights: w, GroupCol: "group", TotalCol: "total"}, nil
}

// GridGeometry lays the units out as unit squares on a Side x Side grid.
func GridGeometry(side int) *frame.Geometry {
	n := side * side
	g := &frame.Geometry{
		Areas:      make([]float64, n),
		Perimeters: make([]float64, n),
		CentroidX:  make([]float64, n),
		CentroidY:  make([]float64, n),
	}
	for i := 0; i < n; i++ {
		g.Areas[i] = 1
		g.Perimeters[i] = 4
		g.CentroidX[i] = float64(i%side) + 0.5
		g.CentroidY[i] = float64(i/side) + 0.5
	}
	return g
}

// RookWeights builds rook-contiguity neighbor weights for a square grid.
func RookWeights(side int) (*spatial.Weights, error) {
	var pairs [][2]int
	for row := 0; row < side; row++ {
		for col := 0; col < side; col++ {
			i := row*side + col
			if col+1 < side {
				pairs = append(pairs, [2]int{i, i + 1})
			}
			if row+1 < side {
				pairs = append(pairs, [2]int{i, i + side})
			}
		}
	}
	return spatial.FromAdjacency(side*side, pairs)
}
