package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic simulations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named operation
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// IterationStream creates a deterministic RNG stream for one simulation
	// iteration of a named operation. Streams derived from the same
	// (name, iteration, seed) triple are identical regardless of worker
	// scheduling, which keeps parallel runs reproducible.
	IterationStream(ctx context.Context, name string, iteration int, baseSeed int64) (*rand.Rand, error)
}
