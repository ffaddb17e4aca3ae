package gensvm

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestAddRidgeSkipsInterceptRow(t *testing.T) {
	zaz := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
	addRidge(zaz, 0.5)
	if zaz.At(0, 0) != 1 {
		t.Errorf("intercept diagonal entry was modified: got %v, want 1", zaz.At(0, 0))
	}
	if zaz.At(1, 1) != 1.5 || zaz.At(2, 2) != 1.5 {
		t.Errorf("non-intercept diagonal entries not ridged: got %v, %v", zaz.At(1, 1), zaz.At(2, 2))
	}
}

func TestSolveSystemSPD(t *testing.T) {
	// A simple diagonal SPD system: A*x = b with A = diag(2, 4), b = (4, 8)
	// so x = (2, 2).
	a := mat.NewDense(2, 2, []float64{2, 0, 0, 4})
	b := mat.NewDense(2, 1, []float64{4, 8})

	x, err := solveSystem(a, b)
	if err != nil {
		t.Fatalf("solveSystem failed: %v", err)
	}
	if !almostEqual(x.At(0, 0), 2, 1e-9) || !almostEqual(x.At(1, 0), 2, 1e-9) {
		t.Errorf("got x = (%v, %v), want (2, 2)", x.At(0, 0), x.At(1, 0))
	}
}
