package gensvm

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestDenseWithBiasPrependsColumn(t *testing.T) {
	d := DenseWithBias([][]float64{{2, 3}, {4, 5}})
	n, cols := d.Dims()
	if n != 2 || cols != 3 {
		t.Fatalf("got shape %dx%d, want 2x3", n, cols)
	}
	if d.At(0, 0) != 1 || d.At(1, 0) != 1 {
		t.Error("bias column is not all ones")
	}
	if d.At(0, 1) != 2 || d.At(0, 2) != 3 {
		t.Error("feature columns shifted incorrectly")
	}
}

func TestDenseToCSRMatchesDense(t *testing.T) {
	rows := [][]float64{{0, 5}, {0, 0}, {7, 0}}
	dense := DenseWithBias(rows)
	sparse := DenseToCSR(rows)

	n, cols := dense.Dims()
	sn, scols := sparse.Dims()
	if n != sn || cols != scols {
		t.Fatalf("shape mismatch: dense %dx%d, sparse %dx%d", n, cols, sn, scols)
	}

	got := make([]float64, cols)
	want := make([]float64, cols)
	for i := 0; i < n; i++ {
		dense.Row(i, want)
		sparse.Row(i, got)
		for j := 0; j < cols; j++ {
			if got[j] != want[j] {
				t.Errorf("row %d col %d: got %v, want %v", i, j, got[j], want[j])
			}
		}
	}
}

func TestDenseAndSparseMulDenseAgree(t *testing.T) {
	rows := [][]float64{{1, 0}, {0, 2}, {3, 4}}
	dense := DenseWithBias(rows)
	sparse := DenseToCSR(rows)

	v := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})

	dOut := dense.MulDense(v)
	sOut := sparse.MulDense(v)

	r, c := dOut.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !almostEqual(dOut.At(i, j), sOut.At(i, j), 1e-12) {
				t.Errorf("MulDense mismatch at (%d,%d): dense=%v sparse=%v", i, j, dOut.At(i, j), sOut.At(i, j))
			}
		}
	}
}

func TestDensityZeroFraction(t *testing.T) {
	rows := [][]float64{{0, 0, 1}, {0, 2, 0}}
	frac := DensityZeroFraction(rows)
	want := 4.0 / 6.0
	if !almostEqual(frac, want, 1e-12) {
		t.Errorf("DensityZeroFraction = %v, want %v", frac, want)
	}
}
