package gensvm

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestInitializeWeightsUnit(t *testing.T) {
	model := &Model{K: 2, Weighting: WeightUnit}
	InitializeWeights([]int{1, 2, 1}, model)
	for i, rho := range model.Rho {
		if rho != 1 {
			t.Errorf("rho[%d] = %v, want 1", i, rho)
		}
	}
}

func TestInitializeWeightsGroup(t *testing.T) {
	model := &Model{K: 2, Weighting: WeightGroup}
	y := []int{1, 1, 1, 2}
	InitializeWeights(y, model)
	// class 1 has 3 instances, class 2 has 1; n=4, K=2
	wantClass1 := 4.0 / (3.0 * 2.0)
	wantClass2 := 4.0 / (1.0 * 2.0)
	for i, yi := range y {
		want := wantClass1
		if yi == 2 {
			want = wantClass2
		}
		if !almostEqual(model.Rho[i], want, 1e-12) {
			t.Errorf("rho[%d] = %v, want %v", i, model.Rho[i], want)
		}
	}
}

func TestSeedVWithProvidedSeed(t *testing.T) {
	x := [][]float64{{1, 2}, {3, 4}}
	y := []int{1, 2}
	d, err := BuildData(x, y, 2)
	if err != nil {
		t.Fatalf("BuildData failed: %v", err)
	}
	d.R = d.M
	model := &Model{K: 2}

	seed := mat.NewDense(2, 1, []float64{9, 9})
	SeedV(d, model, seed, nil)
	if model.V.At(0, 0) != 9 || model.V.At(1, 0) != 9 {
		t.Errorf("SeedV did not copy the provided seed: %v", model.V)
	}
}

func TestTrainConvergesOnSeparableData(t *testing.T) {
	x := [][]float64{
		{0, 0}, {0, 1}, {1, 0}, {0.2, 0.1},
		{5, 5}, {5, 6}, {6, 5}, {5.2, 5.1},
	}
	y := []int{1, 1, 1, 1, 2, 2, 2, 2}

	data, err := BuildData(x, y, 2)
	if err != nil {
		t.Fatalf("BuildData failed: %v", err)
	}

	model, err := NewModel(1.0, 0.0, 1e-6, 1e-6, 200, WeightUnit)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	if err := Train(model, data, nil, nil); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	if !model.Status.Converged {
		t.Errorf("expected convergence within %d iterations, used %d", model.MaxIter, model.Status.Iterations)
	}

	predicted, err := Predict(model, data)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if acc := Accuracy(predicted, y); acc != 100.0 {
		t.Errorf("training accuracy on separable data = %v%%, want 100%%", acc)
	}
}
