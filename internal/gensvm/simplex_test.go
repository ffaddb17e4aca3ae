package gensvm

import "testing"

func TestBuildSimplexK2(t *testing.T) {
	u := BuildSimplex(2)
	if len(u) != 2 || len(u[0]) != 1 {
		t.Fatalf("got shape %dx%d, want 2x1", len(u), len(u[0]))
	}
	if got, want := u[0][0], -0.5; !almostEqual(got, want, 1e-9) {
		t.Errorf("U[0][0] = %v, want %v", got, want)
	}
	if got, want := u[1][0], 0.5; !almostEqual(got, want, 1e-9) {
		t.Errorf("U[1][0] = %v, want %v", got, want)
	}
}

func TestBuildSimplexK4(t *testing.T) {
	u := BuildSimplex(4)
	if len(u) != 4 || len(u[0]) != 3 {
		t.Fatalf("got shape %dx%d, want 4x3", len(u), len(u[0]))
	}
	// Every vertex must be equidistant from every other vertex.
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			var d float64
			for c := 0; c < 3; c++ {
				diff := u[i][c] - u[j][c]
				d += diff * diff
			}
			if !almostEqual(d, 1.0, 1e-9) {
				t.Errorf("squared distance between vertices %d,%d = %v, want 1", i, j, d)
			}
		}
	}
}

func TestBuildSimplexDiff(t *testing.T) {
	u := BuildSimplex(3)
	y := []int{1, 2, 3}
	uu := BuildSimplexDiff(u, y, 3)

	for i, yi := range y {
		own := yi - 1
		for j := 0; j < 3; j++ {
			row := uu.Row(i, j)
			for c := range row {
				want := u[own][c] - u[j][c]
				if !almostEqual(row[c], want, 1e-12) {
					t.Errorf("instance %d vertex %d component %d: got %v, want %v", i, j, c, row[c], want)
				}
			}
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= tol
}
