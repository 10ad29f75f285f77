// Package spatial provides the neighbor-weights structure and distance
// kernels spatial segregation measures are parameterized by. Weights are
// supplied by the caller (contiguity lists, shared-boundary lengths) or
// derived from centroid distances; this package never reads geometry files.
package spatial

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"goseg/domain/core"
)

// Weights is a sparse, row-oriented spatial weights structure: for each unit
// a list of neighbor indices and a parallel list of weights.
type Weights struct {
	neighbors    [][]int
	weights      [][]float64
	standardized bool
}

// NewWeights builds a weights object from neighbor index lists and parallel
// weight lists. A nil weights argument means binary weights of 1.
func NewWeights(neighbors [][]int, weights [][]float64) (*Weights, error) {
	n := len(neighbors)
	if n == 0 {
		return nil, fmt.Errorf("%w: no units", core.ErrWeightsMismatch)
	}
	if weights != nil && len(weights) != n {
		return nil, fmt.Errorf("%w: %d neighbor lists, %d weight lists", core.ErrWeightsMismatch, n, len(weights))
	}

	w := &Weights{
		neighbors: make([][]int, n),
		weights:   make([][]float64, n),
	}
	for i, nbrs := range neighbors {
		for _, j := range nbrs {
			if j < 0 || j >= n {
				return nil, fmt.Errorf("%w: unit %d lists neighbor %d", core.ErrWeightsMismatch, i, j)
			}
		}
		w.neighbors[i] = append([]int(nil), nbrs...)
		if weights == nil {
			row := make([]float64, len(nbrs))
			for k := range row {
				row[k] = 1
			}
			w.weights[i] = row
			continue
		}
		if len(weights[i]) != len(nbrs) {
			return nil, fmt.Errorf("%w: unit %d has %d neighbors but %d weights", core.ErrWeightsMismatch, i, len(nbrs), len(weights[i]))
		}
		w.weights[i] = append([]float64(nil), weights[i]...)
	}
	return w, nil
}

// FromAdjacency builds symmetric binary weights over n units from unordered
// neighbor pairs.
func FromAdjacency(n int, pairs [][2]int) (*Weights, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: no units", core.ErrWeightsMismatch)
	}
	neighbors := make([][]int, n)
	seen := make(map[[2]int]bool, len(pairs)*2)
	for _, p := range pairs {
		i, j := p[0], p[1]
		if i < 0 || i >= n || j < 0 || j >= n {
			return nil, fmt.Errorf("%w: pair (%d,%d) outside [0,%d)", core.ErrWeightsMismatch, i, j, n)
		}
		if i == j || seen[[2]int{i, j}] {
			continue
		}
		seen[[2]int{i, j}] = true
		seen[[2]int{j, i}] = true
		neighbors[i] = append(neighbors[i], j)
		neighbors[j] = append(neighbors[j], i)
	}
	return NewWeights(neighbors, nil)
}

// Len returns the number of units covered.
func (w *Weights) Len() int {
	return len(w.neighbors)
}

// Neighbors returns the neighbor indices of unit i.
func (w *Weights) Neighbors(i int) []int {
	return w.neighbors[i]
}

// Row returns the neighbor indices and weights of unit i.
func (w *Weights) Row(i int) ([]int, []float64) {
	return w.neighbors[i], w.weights[i]
}

// IsStandardized reports whether rows sum to one.
func (w *Weights) IsStandardized() bool {
	return w.standardized
}

// Standardize returns a row-stochastic copy. Islands (units without
// neighbors) keep an all-zero row.
func (w *Weights) Standardize() *Weights {
	out := &Weights{
		neighbors:    make([][]int, w.Len()),
		weights:      make([][]float64, w.Len()),
		standardized: true,
	}
	for i := range w.neighbors {
		out.neighbors[i] = append([]int(nil), w.neighbors[i]...)
		row := append([]float64(nil), w.weights[i]...)
		var sum float64
		for _, v := range row {
			sum += v
		}
		if sum > 0 {
			for k := range row {
				row[k] /= sum
			}
		}
		out.weights[i] = row
	}
	return out
}

// Sum returns the total of all weights.
func (w *Weights) Sum() float64 {
	var total float64
	for _, row := range w.weights {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Lag computes the spatial lag of x: for each unit the weighted sum of its
// neighbors' values.
func (w *Weights) Lag(x []float64) ([]float64, error) {
	if len(x) != w.Len() {
		return nil, core.NewWeightsError(len(x), w.Len())
	}
	out := make([]float64, len(x))
	for i, nbrs := range w.neighbors {
		var sum float64
		for k, j := range nbrs {
			sum += w.weights[i][k] * x[j]
		}
		out[i] = sum
	}
	return out, nil
}

// Dense materializes the weights as an n-by-n gonum matrix.
func (w *Weights) Dense() *mat.Dense {
	n := w.Len()
	d := mat.NewDense(n, n, nil)
	for i, nbrs := range w.neighbors {
		for k, j := range nbrs {
			d.Set(i, j, w.weights[i][k])
		}
	}
	return d
}
