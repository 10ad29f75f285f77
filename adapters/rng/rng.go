// Package rng provides the deterministic seeded-stream adapter behind
// ports.RNGPort. Stream seeds are derived by hashing the operation name,
// iteration index and base seed, so two runs with the same seed produce
// identical draws at any worker count.
package rng

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"

	"goseg/ports"
)

// Adapter implements ports.RNGPort.
type Adapter struct{}

// New creates the deterministic RNG adapter.
func New() *Adapter {
	return &Adapter{}
}

var _ ports.RNGPort = (*Adapter)(nil)

// SeededStream creates a deterministic RNG for a named operation.
func (a *Adapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rand.New(rand.NewSource(deriveSeed(name, 0, seed))), nil
}

// IterationStream creates the RNG stream for one simulation iteration.
func (a *Adapter) IterationStream(ctx context.Context, name string, iteration int, baseSeed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if iteration < 0 {
		return nil, fmt.Errorf("iteration index must be non-negative, got %d", iteration)
	}
	return rand.New(rand.NewSource(deriveSeed(name, iteration+1, baseSeed))), nil
}

// deriveSeed hashes the stream coordinates into a 63-bit seed.
func deriveSeed(name string, iteration int, baseSeed int64) int64 {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%d", name, iteration, baseSeed)
	sum := h.Sum(nil)
	derived := int64(binary.LittleEndian.Uint64(sum[:8]) &^ (1 << 63))
	if derived == 0 {
		derived = 1
	}
	return derived
}
