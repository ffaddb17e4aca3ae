package gensvm

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Predict classifies every row of test by projecting it through model.V
// and returning the index (1-based) of the nearest simplex vertex in
// Euclidean distance.
func Predict(model *Model, test *Dataset) ([]int, error) {
	zv := ComputeZV(test.Live(), model.V)
	n, kMin := zv.Dims()

	labels := make([]int, n)
	row := make([]float64, kMin)
	vertex := make([]float64, kMin)

	for i := 0; i < n; i++ {
		mat.Row(row, i, zv)

		best := -1
		bestDist := math.Inf(1)
		for c := 0; c < model.K; c++ {
			for j := 0; j < kMin; j++ {
				vertex[j] = model.U[c][j]
			}
			var dist float64
			for j := 0; j < kMin; j++ {
				d := row[j] - vertex[j]
				dist += d * d
			}
			if dist < bestDist {
				bestDist = dist
				best = c
			}
		}
		labels[i] = best + 1
	}

	return labels, nil
}

// Accuracy returns the percentage of entries where predicted and actual
// agree.
func Accuracy(predicted, actual []int) float64 {
	if len(predicted) == 0 {
		return 0
	}
	correct := 0
	for i := range predicted {
		if predicted[i] == actual[i] {
			correct++
		}
	}
	return 100 * float64(correct) / float64(len(predicted))
}
