package gensvm

import "testing"

func TestIsSimple(t *testing.T) {
	// own = 0; at most one positive off-diagonal value.
	if !isSimple([]float64{0, 0.2, 0}, 0) {
		t.Error("expected simple majorization with a single positive entry")
	}
	if isSimple([]float64{0, 0.2, 0.3}, 0) {
		t.Error("expected non-simple majorization with two positive entries")
	}
	if !isSimple([]float64{0, 0, 0}, 0) {
		t.Error("expected simple majorization with zero positive entries")
	}
}

func TestAbSimpleBranches(t *testing.T) {
	kappa := 0.5

	// q <= -kappa
	a, bmaq := abSimple(-1.0, kappa)
	wantA := 0.25 / (0.5 - kappa/2.0 + 1.0)
	if !almostEqual(a, wantA, 1e-12) || !almostEqual(bmaq, 0.5, 1e-12) {
		t.Errorf("abSimple(-1, %v) = (%v, %v), want (%v, 0.5)", kappa, a, bmaq, wantA)
	}

	// -kappa < q <= 1
	a, bmaq = abSimple(0.0, kappa)
	wantA = 1.0 / (2.0*kappa + 2.0)
	if !almostEqual(a, wantA, 1e-12) || !almostEqual(bmaq, wantA, 1e-12) {
		t.Errorf("abSimple(0, %v) = (%v, %v), want (%v, %v)", kappa, a, bmaq, wantA, wantA)
	}

	// q > 1
	a, bmaq = abSimple(2.0, kappa)
	if bmaq != 0 {
		t.Errorf("abSimple(2, %v) b-aq = %v, want 0", kappa, bmaq)
	}
}

func TestOmegaSimpleCaseIsOne(t *testing.T) {
	// omega is defined to be 1 for the simple case by instanceAlphaBeta,
	// not by omega() itself; this test documents that split.
	h := []float64{0, 0.4, 0}
	if !isSimple(h, 0) {
		t.Fatal("fixture is not simple; test is wrong")
	}

	u := BuildSimplex(3)
	uu := BuildSimplexDiff(u, []int{1}, 3)
	q := []float64{0, 0.2, 1.5}
	beta := make([]float64, 2)
	alpha := instanceAlphaBeta(q, h, 0, 1.5, 0.5, 1.0, 1, uu, 0, beta)
	a1, _ := abSimple(q[1], 0.5)
	a2, _ := abSimple(q[2], 0.5)
	if !almostEqual(alpha, a1+a2, 1e-12) {
		t.Errorf("alpha = %v, want %v (omega = 1 in the simple case)", alpha, a1+a2)
	}
}

func TestInstanceAlphaBetaNonNegative(t *testing.T) {
	u := BuildSimplex(3)
	y := []int{1}
	uu := BuildSimplexDiff(u, y, 3)

	qRow := []float64{0, 0.5, -0.2}
	hRow := []float64{0, HuberValue(0.5, 0.1), HuberValue(-0.2, 0.1)}
	beta := make([]float64, 2)

	alpha := instanceAlphaBeta(qRow, hRow, 0, 1.0, 0.1, 1.0, 1, uu, 0, beta)
	if alpha <= 0 {
		t.Errorf("alpha should be strictly positive, got %v", alpha)
	}
}
