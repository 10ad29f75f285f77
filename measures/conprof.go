package measures

import (
	"goseg/domain/core"
	"goseg/domain/frame"
)

// DefaultProfileResolution is the default threshold grid size for
// concentration profiles.
const DefaultProfileResolution = 1000

// ConProf is the concentration profile index R: the profile evaluates, for
// each composition threshold on a grid of m points, the share of the
// subgroup living in units at or above that threshold; R rescales the
// profile's mean against the overall composition. Bounded in [0, 1].
type ConProf struct {
	twoGroup
	profile []float64
}

// NewConProf fits the concentration profile with resolution m thresholds.
func NewConProf(f *frame.Frame, groupCol, totalCol string, m int) (*ConProf, error) {
	if m < 2 {
		return nil, core.NewParameterError("m", "must be at least 2")
	}
	c, err := extractCounts(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	coreData, err := fitCore(f, groupCol, totalCol)
	if err != nil {
		return nil, err
	}
	stat, profile := conProfStat(c, m)
	return &ConProf{
		twoGroup: twoGroup{base{
			name: "con_prof",
			stat: stat,
			core: coreData,
			cfg:  Config{Group: groupCol, Total: totalCol, M: m},
		}},
		profile: profile,
	}, nil
}

// Profile returns the fitted curve: entry k is the subgroup share living in
// units whose composition is at least k/m.
func (p *ConProf) Profile() []float64 {
	return append([]float64(nil), p.profile...)
}

// Recompute evaluates R on another frame with the fitted resolution.
func (p *ConProf) Recompute(f *frame.Frame) (float64, error) {
	c, err := extractCounts(f, p.cfg.Group, p.cfg.Total)
	if err != nil {
		return 0, err
	}
	stat, _ := conProfStat(c, p.cfg.M)
	return stat, nil
}

func conProfStat(c *counts, m int) (float64, []float64) {
	comp := c.composition()
	curve := make([]float64, m)
	var mean float64
	for k := 0; k < m; k++ {
		threshold := float64(k) / float64(m)
		var above float64
		for i := range comp {
			if comp[i] >= threshold {
				above += c.x[i]
			}
		}
		curve[k] = above / c.X
		mean += curve[k]
	}
	mean /= float64(m)
	return (mean - c.P) / (1 - c.P), curve
}
