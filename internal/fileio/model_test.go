package fileio

import (
	"bytes"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestModelRoundTrip(t *testing.T) {
	mf := &ModelFile{
		P: 1.5, Kappa: 0.1, Lambda: 1e-6, Epsilon: 1e-8,
		MaxIter: 500, Weighting: "group",
		KernelType: "rbf", Gamma: 2.0, Coef0: 1.0, Degree: 3,
		N: 10, M: 3, K: 4, DataFile: "train.data",
		ExcludeColumns: []int{1, 3},
		V: mat.NewDense(4, 3, []float64{
			0, 0, 0,
			1, 2, 3,
			4, 5, 6,
			7, 8, 9,
		}),
	}

	var buf bytes.Buffer
	if err := WriteModel(&buf, mf); err != nil {
		t.Fatalf("WriteModel failed: %v", err)
	}

	got, err := ReadModel(&buf)
	if err != nil {
		t.Fatalf("ReadModel failed: %v", err)
	}

	if got.P != mf.P || got.Kappa != mf.Kappa || got.Lambda != mf.Lambda || got.Epsilon != mf.Epsilon {
		t.Fatalf("hyperparameter mismatch: got %+v", got)
	}
	if got.MaxIter != mf.MaxIter || got.Weighting != mf.Weighting {
		t.Fatalf("got MaxIter=%d Weighting=%s", got.MaxIter, got.Weighting)
	}
	if got.KernelType != mf.KernelType || got.Gamma != mf.Gamma || got.Coef0 != mf.Coef0 || got.Degree != mf.Degree {
		t.Fatalf("kernel mismatch: got %+v", got)
	}
	if got.N != mf.N || got.M != mf.M || got.K != mf.K || got.DataFile != mf.DataFile {
		t.Fatalf("data section mismatch: got %+v", got)
	}
	if len(got.ExcludeColumns) != len(mf.ExcludeColumns) {
		t.Fatalf("exclude columns mismatch: got %v, want %v", got.ExcludeColumns, mf.ExcludeColumns)
	}
	for i := range mf.ExcludeColumns {
		if got.ExcludeColumns[i] != mf.ExcludeColumns[i] {
			t.Fatalf("exclude columns mismatch: got %v, want %v", got.ExcludeColumns, mf.ExcludeColumns)
		}
	}
	if !mat.Equal(got.V, mf.V) {
		t.Fatalf("V mismatch: got %v, want %v", got.V, mf.V)
	}
}

func TestModelFileToModel(t *testing.T) {
	mf := &ModelFile{P: 1, Kappa: 0, Lambda: 1e-8, Epsilon: 1e-6, MaxIter: 100, Weighting: "unit"}
	m, err := mf.ToModel()
	if err != nil {
		t.Fatalf("ToModel failed: %v", err)
	}
	if m.P != 1 || m.MaxIter != 100 {
		t.Fatalf("unexpected model: %+v", m)
	}
}
