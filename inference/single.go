package inference

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"goseg/domain/core"
	"goseg/domain/frame"
	"goseg/internal/randx"
	"goseg/ports"
)

// SingleResult is the outcome of testing one fitted measure against a
// simulated null distribution.
type SingleResult struct {
	RunID       core.RunID
	Measure     string
	Approach    NullApproach
	Seed        int64
	Statistic   float64
	Estimates   []float64
	PValue      float64
	TwoTailed   bool
	Summary     DistributionSummary
	Fingerprint core.FrameFingerprint
	CompletedAt core.Timestamp
}

// SingleValueTest simulates the null distribution of one fitted measure and
// reports where the observed statistic falls in it.
func SingleValueTest(ctx context.Context, est ports.Estimator, opts Options) (*SingleResult, error) {
	opts = opts.normalize()

	f := est.Core()
	builder, err := nullBuilder(est, opts.Approach)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("single/%s/%s", est.Name(), opts.Approach)
	estimates, err := simulate(ctx, opts, name, func(rng *rand.Rand) (float64, error) {
		sim, err := builder(f, rng)
		if err != nil {
			return 0, err
		}
		return est.Recompute(sim)
	})
	if err != nil {
		return nil, err
	}

	obs := est.Statistic()
	return &SingleResult{
		RunID:       core.NewRunID(),
		Measure:     est.Name(),
		Approach:    opts.Approach,
		Seed:        opts.Seed,
		Statistic:   obs,
		Estimates:   estimates,
		PValue:      pValue(obs, estimates, opts.TwoTailed),
		TwoTailed:   opts.TwoTailed,
		Summary:     summarize(estimates),
		Fingerprint: f.Fingerprint(),
		CompletedAt: core.Now(),
	}, nil
}

// frameBuilder draws one null frame from the observed one.
type frameBuilder func(f *frame.Frame, rng *rand.Rand) (*frame.Frame, error)

// nullBuilder resolves the frame builder for a single-value approach. The
// count-rebuilding approaches need the estimator's group/total binding, so
// they reject estimators that do not expose one.
func nullBuilder(est ports.Estimator, approach NullApproach) (frameBuilder, error) {
	switch approach {
	case Bootstrap:
		return bootstrapFrame, nil
	case Permutation:
		return permutationFrame, nil
	case Systematic, Evenness, SystematicPermutation, EvenPermutation:
		tg, ok := est.(ports.TwoGroupConfigured)
		if !ok {
			return nil, core.NewParameterError("approach",
				fmt.Sprintf("%q requires a group/total configured measure", approach))
		}
		switch approach {
		case Systematic:
			return systematicFrame(tg), nil
		case Evenness:
			return evennessFrame(tg), nil
		case SystematicPermutation:
			return composeBuilders(systematicFrame(tg), permutationFrame), nil
		default:
			return composeBuilders(evennessFrame(tg), permutationFrame), nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownApproach, approach)
	}
}

func composeBuilders(first, second frameBuilder) frameBuilder {
	return func(f *frame.Frame, rng *rand.Rand) (*frame.Frame, error) {
		mid, err := first(f, rng)
		if err != nil {
			return nil, err
		}
		return second(mid, rng)
	}
}

// bootstrapFrame resamples units with replacement, geometry included.
func bootstrapFrame(f *frame.Frame, rng *rand.Rand) (*frame.Frame, error) {
	n := f.Len()
	indices := make([]int, n)
	for i := range indices {
		indices[i] = rng.Intn(n)
	}
	return f.Take(indices)
}

// permutationFrame shuffles every attribute column against the fixed unit
// order, leaving geometry and any external weights aligned as observed.
func permutationFrame(f *frame.Frame, rng *rand.Rand) (*frame.Frame, error) {
	perm := randx.Perm(rng, f.Len())
	out := f
	for _, name := range f.Columns() {
		vals, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		shuffled := make([]float64, len(vals))
		for i, j := range perm {
			shuffled[i] = vals[j]
		}
		out, err = out.WithColumn(name, shuffled)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// systematicFrame redraws both the subgroup and its complement from
// multinomials proportional to unit totals, so units keep their expected
// share of each population but segregation is destroyed.
func systematicFrame(tg ports.TwoGroupConfigured) frameBuilder {
	return func(f *frame.Frame, rng *rand.Rand) (*frame.Frame, error) {
		x, t, err := countColumns(f, tg)
		if err != nil {
			return nil, err
		}

		var X, T float64
		for i := range x {
			X += x[i]
			T += t[i]
		}
		probs := make([]float64, len(t))
		for i := range t {
			probs[i] = t[i] / T
		}

		simX := randx.Multinomial(rng, int64(X+0.5), probs)
		simY := randx.Multinomial(rng, int64(T-X+0.5), probs)

		newX := make([]float64, len(x))
		newT := make([]float64, len(x))
		for i := range newX {
			newX[i] = float64(simX[i])
			newT[i] = float64(simX[i] + simY[i])
		}
		return withCounts(f, tg, newX, newT)
	}
}

// evennessFrame redraws each unit's subgroup count as Binomial(t_i, P),
// holding unit totals fixed.
func evennessFrame(tg ports.TwoGroupConfigured) frameBuilder {
	return func(f *frame.Frame, rng *rand.Rand) (*frame.Frame, error) {
		x, t, err := countColumns(f, tg)
		if err != nil {
			return nil, err
		}

		var X, T float64
		for i := range x {
			X += x[i]
			T += t[i]
		}
		if T <= 0 {
			return nil, core.ErrInsufficientData
		}
		p := X / T

		newX := make([]float64, len(x))
		for i := range newX {
			newX[i] = float64(randx.Binomial(rng, int64(t[i]+0.5), p))
		}
		return withCounts(f, tg, newX, t)
	}
}

// countColumns pulls the group/total vectors a count-rebuilding approach
// draws from. NaN entries are zeroed the same way measure extraction zeroes
// them, so a frame that fits cleanly also resamples cleanly.
func countColumns(f *frame.Frame, tg ports.TwoGroupConfigured) (x, t []float64, err error) {
	x, err = f.Column(tg.GroupColumn())
	if err != nil {
		return nil, nil, err
	}
	t, err = f.Column(tg.TotalColumn())
	if err != nil {
		return nil, nil, err
	}
	for i := range x {
		if math.IsNaN(x[i]) {
			x[i] = 0
		}
		if math.IsNaN(t[i]) {
			t[i] = 0
		}
		if x[i] > t[i] {
			x[i] = t[i]
		}
	}
	return x, t, nil
}

func withCounts(f *frame.Frame, tg ports.TwoGroupConfigured, x, t []float64) (*frame.Frame, error) {
	out, err := f.WithColumn(tg.GroupColumn(), x)
	if err != nil {
		return nil, err
	}
	return out.WithColumn(tg.TotalColumn(), t)
}

// pValue locates the observed statistic in the simulated null distribution
// with the standard +1 smoothing, so p is never exactly zero. The two-tailed
// value doubles the smaller tail and is clamped to 1.
func pValue(obs float64, estimates []float64, twoTailed bool) float64 {
	var atLeast, atMost int
	for _, e := range estimates {
		if e >= obs {
			atLeast++
		}
		if e <= obs {
			atMost++
		}
	}
	n := float64(len(estimates) + 1)

	upper := float64(atLeast+1) / n
	if !twoTailed {
		return upper
	}
	lower := float64(atMost+1) / n
	p := 2 * upper
	if lower < upper {
		p = 2 * lower
	}
	if p > 1 {
		p = 1
	}
	return p
}
