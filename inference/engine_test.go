package inference

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goseg/domain/core"
)

func TestSimulateLengthAndDeterminism(t *testing.T) {
	opts := testOptions(Bootstrap).normalize()
	draw := func(rng *rand.Rand) (float64, error) {
		return rng.Float64(), nil
	}

	first, err := simulate(context.Background(), opts, "engine-test", draw)
	require.NoError(t, err)
	assert.Len(t, first, opts.Iterations)

	opts.Workers = 1
	second, err := simulate(context.Background(), opts, "engine-test", draw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSimulateStreamsDiffer(t *testing.T) {
	opts := testOptions(Bootstrap).normalize()
	opts.Iterations = 50

	estimates, err := simulate(context.Background(), opts, "engine-test", func(rng *rand.Rand) (float64, error) {
		return rng.Float64(), nil
	})
	require.NoError(t, err)

	seen := make(map[float64]bool, len(estimates))
	for _, e := range estimates {
		seen[e] = true
	}
	assert.Greater(t, len(seen), 45, "iteration streams should be independent")
}

func TestSimulateGivesUpOnPersistentDegeneracy(t *testing.T) {
	opts := testOptions(Bootstrap).normalize()
	opts.Iterations = 5

	_, err := simulate(context.Background(), opts, "engine-test", func(rng *rand.Rand) (float64, error) {
		return 0, core.ErrInsufficientData
	})
	assert.ErrorIs(t, err, core.ErrDegenerate)
}

func TestSimulateAbortsOnHardError(t *testing.T) {
	opts := testOptions(Bootstrap).normalize()
	hard := errors.New("boom")

	_, err := simulate(context.Background(), opts, "engine-test", func(rng *rand.Rand) (float64, error) {
		return 0, hard
	})
	assert.ErrorIs(t, err, hard)
}
