package gensvm

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestHuberValuePiecewise(t *testing.T) {
	kappa := 0.5
	cases := []struct {
		q    float64
		want float64
	}{
		{-1.0, 1 - (-1.0) - (kappa+1)/2}, // q <= -kappa branch
		{0.0, (1 - 0.0) * (1 - 0.0) / (2 * (kappa + 1))},
		{2.0, 0},
	}
	for _, c := range cases {
		got := HuberValue(c.q, kappa)
		if !almostEqual(got, c.want, 1e-12) {
			t.Errorf("HuberValue(%v, %v) = %v, want %v", c.q, kappa, got, c.want)
		}
	}
}

func TestHuberValueContinuousAtKink(t *testing.T) {
	kappa := 0.3
	left := HuberValue(-kappa-1e-9, kappa)
	right := HuberValue(-kappa+1e-9, kappa)
	if !almostEqual(left, right, 1e-6) {
		t.Errorf("Huber transform discontinuous at q=-kappa: left=%v right=%v", left, right)
	}
}

func TestComputeMarginsSkipsOwnClass(t *testing.T) {
	zv := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	u := BuildSimplex(3)
	y := []int{1, 2}
	uu := BuildSimplexDiff(u, y, 3)

	q := ComputeMargins(zv, uu, y, 3)
	if q.At(0, 0) != 0 {
		t.Errorf("Q[0][y_0-1] should stay zero, got %v", q.At(0, 0))
	}
	if q.At(1, 1) != 0 {
		t.Errorf("Q[1][y_1-1] should stay zero, got %v", q.At(1, 1))
	}
}

func TestComputeLossRegularizationExcludesBiasRow(t *testing.T) {
	h := mat.NewDense(1, 2, []float64{0, 0})
	y := []int{1}
	rho := []float64{1}
	v := mat.NewDense(2, 1, []float64{5, 3})

	loss := ComputeLoss(h, y, 2, 1.0, rho, v, 1.0)
	want := 0.0 + 1.0*(3.0*3.0) // bias row (index 0) excluded from the Frobenius term
	if !almostEqual(loss, want, 1e-12) {
		t.Errorf("ComputeLoss = %v, want %v", loss, want)
	}
}
