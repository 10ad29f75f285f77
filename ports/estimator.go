package ports

import (
	"goseg/domain/frame"
)

// Estimator is a fitted segregation measure: one scalar statistic computed
// from one frame. Instances are immutable after fitting; Recompute evaluates
// the same measure, with the same configuration, on a different frame and is
// what the inference layer drives resampling through.
type Estimator interface {
	// Name returns a stable identifier for the measure, e.g. "dissim".
	Name() string

	// Statistic returns the fitted scalar.
	Statistic() float64

	// Core returns the frame the estimator was fitted on, restricted to the
	// columns (and geometry) the measure actually used.
	Core() *frame.Frame

	// Recompute evaluates the measure on another frame without mutating the
	// estimator.
	Recompute(f *frame.Frame) (float64, error)
}

// TwoGroupConfigured is implemented by estimators bound to a single
// group/total column pair. Null approaches that rebuild unit populations
// (systematic, evenness, counterfactuals) need these column names.
type TwoGroupConfigured interface {
	GroupColumn() string
	TotalColumn() string
}
