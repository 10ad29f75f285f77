// Package randx provides the count-data samplers the corrected measures and
// null approaches draw from. Samplers take an explicit *rand.Rand so every
// simulation iteration can run on its own deterministic stream.
package randx

import (
	"math"
	"math/rand"
)

// exactCutoff bounds the cost of the Bernoulli-sum binomial sampler; above
// it the normal approximation error is far below resampling noise.
const exactCutoff = 1000

// Binomial draws from Binomial(n, p).
func Binomial(rng *rand.Rand, n int64, p float64) int64 {
	if n <= 0 || p <= 0 {
		return 0
	}
	if p >= 1 {
		return n
	}
	if n <= exactCutoff {
		var k int64
		for i := int64(0); i < n; i++ {
			if rng.Float64() < p {
				k++
			}
		}
		return k
	}
	mean := float64(n) * p
	sd := math.Sqrt(float64(n) * p * (1 - p))
	k := int64(math.Round(rng.NormFloat64()*sd + mean))
	if k < 0 {
		k = 0
	}
	if k > n {
		k = n
	}
	return k
}

// Multinomial draws counts for each category from Multinomial(n, probs)
// using the conditional binomial method. Probabilities need not sum to one;
// they are normalized.
func Multinomial(rng *rand.Rand, n int64, probs []float64) []int64 {
	out := make([]int64, len(probs))
	var rest float64
	for _, p := range probs {
		if p > 0 {
			rest += p
		}
	}
	remaining := n
	for i, p := range probs {
		if remaining <= 0 || rest <= 0 {
			break
		}
		if p <= 0 {
			continue
		}
		if p >= rest {
			out[i] = remaining
			remaining = 0
			break
		}
		k := Binomial(rng, remaining, p/rest)
		out[i] = k
		remaining -= k
		rest -= p
	}
	return out
}

// Perm returns a random permutation of [0, n).
func Perm(rng *rand.Rand, n int) []int {
	return rng.Perm(n)
}
