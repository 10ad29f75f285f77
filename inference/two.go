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

// TwoResult is the outcome of comparing two fitted measures against the
// simulated sampling distribution of their difference.
type TwoResult struct {
	RunID        core.RunID
	Measure      string
	Approach     NullApproach
	Seed         int64
	Statistic1   float64
	Statistic2   float64
	Difference   float64
	Estimates    []float64 // simulated differences
	PValue       float64
	Summary      DistributionSummary
	Fingerprint1 core.FrameFingerprint
	Fingerprint2 core.FrameFingerprint
	CompletedAt  core.Timestamp
}

// pairBuilder draws one simulated frame pair under the comparative null.
type pairBuilder func(rng *rand.Rand) (*frame.Frame, *frame.Frame, error)

// TwoValueTest simulates the sampling distribution of the difference between
// two fitted measures under the selected comparative null. The p-value is
// two-sided around the simulated mean. Comparative approaches rebuild unit
// counts, so both estimators must expose a group/total binding; geometry does
// not survive pooling, so spatial measures are out of scope here.
func TwoValueTest(ctx context.Context, est1, est2 ports.Estimator, opts Options) (*TwoResult, error) {
	opts = opts.normalize()

	tg1, ok1 := est1.(ports.TwoGroupConfigured)
	tg2, ok2 := est2.(ports.TwoGroupConfigured)
	if !ok1 || !ok2 {
		return nil, core.NewParameterError("approach",
			fmt.Sprintf("%q requires group/total configured measures", opts.Approach))
	}

	builder, err := pairBuilderFor(est1.Core(), est2.Core(), tg1, tg2, opts.Approach)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("two/%s-%s/%s", est1.Name(), est2.Name(), opts.Approach)
	estimates, err := simulate(ctx, opts, name, func(rng *rand.Rand) (float64, error) {
		sim1, sim2, err := builder(rng)
		if err != nil {
			return 0, err
		}
		v1, err := est1.Recompute(sim1)
		if err != nil {
			return 0, err
		}
		v2, err := est2.Recompute(sim2)
		if err != nil {
			return 0, err
		}
		return v1 - v2, nil
	})
	if err != nil {
		return nil, err
	}

	diff := est1.Statistic() - est2.Statistic()
	return &TwoResult{
		RunID:        core.NewRunID(),
		Measure:      fmt.Sprintf("%s vs %s", est1.Name(), est2.Name()),
		Approach:     opts.Approach,
		Seed:         opts.Seed,
		Statistic1:   est1.Statistic(),
		Statistic2:   est2.Statistic(),
		Difference:   diff,
		Estimates:    estimates,
		PValue:       centeredPValue(diff, estimates),
		Summary:      summarize(estimates),
		Fingerprint1: est1.Core().Fingerprint(),
		Fingerprint2: est2.Core().Fingerprint(),
		CompletedAt:  core.Now(),
	}, nil
}

func pairBuilderFor(f1, f2 *frame.Frame, tg1, tg2 ports.TwoGroupConfigured, approach NullApproach) (pairBuilder, error) {
	switch approach {
	case RandomLabel:
		return randomLabelBuilder(f1, f2, tg1, tg2)
	case CounterfactualComposition, CounterfactualShare:
		c1, c2, err := buildCounterfactuals(f1, f2, tg1, tg2, approach)
		if err != nil {
			return nil, err
		}
		return func(rng *rand.Rand) (*frame.Frame, *frame.Frame, error) {
			sim1, err := c1.mix(rng)
			if err != nil {
				return nil, nil, err
			}
			sim2, err := c2.mix(rng)
			if err != nil {
				return nil, nil, err
			}
			return sim1, sim2, nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownApproach, approach)
	}
}

// randomLabelBuilder pools the units of both frames and reassigns each unit
// to a frame at random, preserving the observed frame sizes.
func randomLabelBuilder(f1, f2 *frame.Frame, tg1, tg2 ports.TwoGroupConfigured) (pairBuilder, error) {
	x1, t1, err := countColumns(f1, tg1)
	if err != nil {
		return nil, err
	}
	x2, t2, err := countColumns(f2, tg2)
	if err != nil {
		return nil, err
	}

	pooledX := append(append([]float64(nil), x1...), x2...)
	pooledT := append(append([]float64(nil), t1...), t2...)
	n1 := len(x1)

	return func(rng *rand.Rand) (*frame.Frame, *frame.Frame, error) {
		perm := randx.Perm(rng, len(pooledX))

		simX1 := make([]float64, n1)
		simT1 := make([]float64, n1)
		for i := 0; i < n1; i++ {
			simX1[i] = pooledX[perm[i]]
			simT1[i] = pooledT[perm[i]]
		}
		simX2 := make([]float64, len(pooledX)-n1)
		simT2 := make([]float64, len(pooledX)-n1)
		for i := n1; i < len(perm); i++ {
			simX2[i-n1] = pooledX[perm[i]]
			simT2[i-n1] = pooledT[perm[i]]
		}

		sim1, err := frame.New(nil, map[string][]float64{
			tg1.GroupColumn(): simX1,
			tg1.TotalColumn(): simT1,
		})
		if err != nil {
			return nil, nil, err
		}
		sim2, err := frame.New(nil, map[string][]float64{
			tg2.GroupColumn(): simX2,
			tg2.TotalColumn(): simT2,
		})
		if err != nil {
			return nil, nil, err
		}
		return sim1, sim2, nil
	}, nil
}

// centeredPValue reports how often a simulated difference lands at least as
// far from the simulated mean as the observed one, with +1 smoothing.
func centeredPValue(obs float64, estimates []float64) float64 {
	var mean float64
	for _, e := range estimates {
		mean += e
	}
	mean /= float64(len(estimates))

	dist := math.Abs(obs - mean)
	var count int
	for _, e := range estimates {
		if math.Abs(e-mean) >= dist {
			count++
		}
	}
	return float64(count+1) / float64(len(estimates)+1)
}
