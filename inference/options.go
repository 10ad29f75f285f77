// Package inference judges the significance of fitted segregation measures
// by simulation: SingleValueTest compares one estimator against a null
// distribution, TwoValueTest compares two fitted estimators against the
// sampling distribution of their difference.
package inference

import (
	"math/rand"
	"time"

	"goseg/adapters/rng"
	"goseg/internal/config"
	"goseg/ports"
)

// NullApproach selects how the reference distribution is constructed.
type NullApproach string

// Single-value null approaches.
const (
	// Systematic redraws unit subgroup counts from a multinomial that
	// spreads the group proportionally to unit totals.
	Systematic NullApproach = "systematic"
	// Bootstrap resamples units with replacement.
	Bootstrap NullApproach = "bootstrap"
	// Evenness redraws each unit's subgroup count from Binomial(t_i, P).
	Evenness NullApproach = "evenness"
	// Permutation shuffles unit attributes against fixed geometry and
	// weights; only informative for spatial measures.
	Permutation NullApproach = "permutation"
	// SystematicPermutation composes Systematic with Permutation.
	SystematicPermutation NullApproach = "systematic_permutation"
	// EvenPermutation composes Evenness with Permutation.
	EvenPermutation NullApproach = "even_permutation"
)

// Comparative null approaches.
const (
	// RandomLabel pools the units of both frames and shuffles which frame
	// each unit belongs to.
	RandomLabel NullApproach = "random_label"
	// CounterfactualComposition swaps unit group compositions between the
	// two frames by quantile mapping.
	CounterfactualComposition NullApproach = "counterfactual_composition"
	// CounterfactualShare applies the same mapping to group shares instead
	// of compositions.
	CounterfactualShare NullApproach = "counterfactual_share"
)

// Options configures an inference run.
type Options struct {
	Approach   NullApproach
	Iterations int
	TwoTailed  bool
	Seed       int64 // 0 draws a fresh seed; the one used is reported
	Workers    int
	RNG        ports.RNGPort // nil uses the deterministic default adapter
}

// DefaultOptions returns run options seeded from the environment defaults.
func DefaultOptions(approach NullApproach) Options {
	cfg := config.Load()
	return Options{
		Approach:   approach,
		Iterations: cfg.Iterations,
		TwoTailed:  true,
		Seed:       cfg.Seed,
		Workers:    cfg.Workers,
	}
}

// normalize fills unset fields and materializes the seed.
func (o Options) normalize() Options {
	if o.Iterations <= 0 {
		o.Iterations = config.Load().Iterations
	}
	if o.Workers <= 0 {
		o.Workers = 1
	}
	if o.Seed == 0 {
		o.Seed = rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
	}
	if o.RNG == nil {
		o.RNG = rng.New()
	}
	return o
}
