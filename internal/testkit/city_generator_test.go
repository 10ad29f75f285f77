package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCityLayouts(t *testing.T) {
	cfg := DefaultCityConfig()

	for _, layout := range []Layout{LayoutEven, LayoutSegregated, LayoutClustered, LayoutRandom} {
		city, err := GenerateCity(cfg, layout)
		require.NoError(t, err)

		n := cfg.Side * cfg.Side
		assert.Equal(t, n, city.Frame.Len())
		assert.Equal(t, n, city.Weights.Len())
		require.NotNil(t, city.Frame.Geometry())

		group, err := city.Frame.Column(city.GroupCol)
		require.NoError(t, err)
		total, err := city.Frame.Column(city.TotalCol)
		require.NoError(t, err)
		for i := range group {
			assert.GreaterOrEqual(t, group[i], 0.0)
			assert.LessOrEqual(t, group[i], total[i])
		}
	}
}

func TestGenerateCityDeterministic(t *testing.T) {
	cfg := DefaultCityConfig()

	a, err := GenerateCity(cfg, LayoutRandom)
	require.NoError(t, err)
	b, err := GenerateCity(cfg, LayoutRandom)
	require.NoError(t, err)

	assert.Equal(t, a.Frame.Fingerprint(), b.Frame.Fingerprint())
}

func TestGenerateCityRejectsTinyGrid(t *testing.T) {
	cfg := DefaultCityConfig()
	cfg.Side = 1

	_, err := GenerateCity(cfg, LayoutEven)
	assert.Error(t, err)
}

func TestRookWeightsCornerDegrees(t *testing.T) {
	w, err := RookWeights(3)
	require.NoError(t, err)

	assert.Len(t, w.Neighbors(0), 2) // corner
	assert.Len(t, w.Neighbors(1), 3) // edge
	assert.Len(t, w.Neighbors(4), 4) // center
}
