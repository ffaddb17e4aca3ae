package gensvm

import "math"

// BuildSimplex constructs the K x (K-1) unit-edge simplex matrix U. Its
// rows are the K vertices of a regular (K-1)-simplex with pairwise
// Euclidean distance 1:
//
//	U[i][j] = -1 / sqrt(2*(j+1)*(j+2))   for i <= j
//	U[j+1][j] = sqrt((j+1) / (2*(j+2)))
//	U[i][j] = 0                          otherwise
func BuildSimplex(k int) [][]float64 {
	cols := k - 1
	u := make([][]float64, k)
	for i := range u {
		u[i] = make([]float64, cols)
	}
	for j := 0; j < cols; j++ {
		off := -1.0 / math.Sqrt(2*float64(j+1)*float64(j+2))
		for i := 0; i <= j; i++ {
			u[i][j] = off
		}
		u[j+1][j] = math.Sqrt(float64(j+1) / (2 * float64(j+2)))
	}
	return u
}

// SimplexDiff is the flattened n x K x (K-1) tensor UU: slice i holds,
// for every vertex j, the difference U[y_i-1] - U[j]. Row y_i-1 of slice i
// (the true-class row) is the zero vector and is never read by the
// optimizer.
type SimplexDiff struct {
	k    int
	kMin int // K-1
	data []float64
}

// BuildSimplexDiff builds UU for the given simplex U and label vector y
// (1-based, length n).
func BuildSimplexDiff(u [][]float64, y []int, k int) *SimplexDiff {
	kMin := k - 1
	n := len(y)
	data := make([]float64, n*k*kMin)
	for i, yi := range y {
		base := yi - 1
		for j := 0; j < k; j++ {
			off := (i*k + j) * kMin
			for c := 0; c < kMin; c++ {
				data[off+c] = u[base][c] - u[j][c]
			}
		}
	}
	return &SimplexDiff{k: k, kMin: kMin, data: data}
}

// Row returns the difference vector U[y_i-1] - U[j] for instance i and
// vertex j, as a view into the underlying flat storage.
func (uu *SimplexDiff) Row(i, j int) []float64 {
	off := (i*uu.k + j) * uu.kMin
	return uu.data[off : off+uu.kMin]
}

// Dot computes the inner product of a (K-1)-length vector with the
// simplex-difference row for (i, j), used by the margin computation
// Q[i][j] := <ZV[i,:], UU(i,j)>.
func (uu *SimplexDiff) Dot(i, j int, v []float64) float64 {
	row := uu.Row(i, j)
	var sum float64
	for c, x := range row {
		sum += x * v[c]
	}
	return sum
}
