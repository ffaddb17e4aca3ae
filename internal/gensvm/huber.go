package gensvm

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ComputeZV multiplies the live feature representation by the current
// weight matrix V, writing an n x (K-1) result.
func ComputeZV(z Matrix, v *mat.Dense) *mat.Dense {
	return z.MulDense(v)
}

// ComputeMargins fills Q[i][j] := <ZV[i,:], UU(i,j)> for every j != y_i-1.
// Q[i][y_i-1] is left at its zero value and is never read.
func ComputeMargins(zv *mat.Dense, uu *SimplexDiff, y []int, k int) *mat.Dense {
	n, kMin := zv.Dims()
	q := mat.NewDense(n, k, nil)
	zvRow := make([]float64, kMin)
	for i := 0; i < n; i++ {
		mat.Row(zvRow, i, zv)
		own := y[i] - 1
		for j := 0; j < k; j++ {
			if j == own {
				continue
			}
			q.Set(i, j, uu.Dot(i, j, zvRow))
		}
	}
	return q
}

// HuberValue applies the piecewise Huberized hinge to a scalar margin q:
//
//	q <= -kappa:        1 - q - (kappa+1)/2
//	-kappa < q <= 1:    (1-q)^2 / (2*(kappa+1))
//	q > 1:              0
func HuberValue(q, kappa float64) float64 {
	switch {
	case q <= -kappa:
		return 1 - q - (kappa+1)/2
	case q <= 1:
		d := 1 - q
		return d * d / (2 * (kappa + 1))
	default:
		return 0
	}
}

// ComputeHuber applies HuberValue elementwise to every off-diagonal entry
// of Q (the entries read by ComputeLoss and the majorization engine).
func ComputeHuber(q *mat.Dense, y []int, k int, kappa float64) *mat.Dense {
	n, _ := q.Dims()
	h := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		own := y[i] - 1
		for j := 0; j < k; j++ {
			if j == own {
				continue
			}
			h.Set(i, j, HuberValue(q.At(i, j), kappa))
		}
	}
	return h
}

// ComputeLoss evaluates the total GenSVM loss at the current H and V:
//
//	(1/n) * sum_i rho_i * (sum_{j != y_i-1} H[i][j]^p)^(1/p) + lambda * ||V_{1:,:}||_F^2
//
// the Frobenius norm excluding V's intercept row (row 0).
func ComputeLoss(h *mat.Dense, y []int, k int, p float64, rho []float64, v *mat.Dense, lambda float64) float64 {
	n, _ := h.Dims()
	var sum float64
	for i := 0; i < n; i++ {
		own := y[i] - 1
		var inner float64
		for j := 0; j < k; j++ {
			if j == own {
				continue
			}
			hv := h.At(i, j)
			if hv != 0 {
				inner += math.Pow(hv, p)
			}
		}
		sum += rho[i] * math.Pow(inner, 1/p)
	}
	loss := sum / float64(n)

	rows, cols := v.Dims()
	var frob float64
	for i := 1; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x := v.At(i, j)
			frob += x * x
		}
	}
	return loss + lambda*frob
}
