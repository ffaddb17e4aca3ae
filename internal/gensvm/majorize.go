package gensvm

import "math"

// isSimple reports whether instance i admits the simple majorization
// (epsilon_i = 1): strictly fewer than two of its off-diagonal Huber
// values are positive.
func isSimple(h []float64, own int) bool {
	positive := 0
	for j, v := range h {
		if j == own {
			continue
		}
		if v > 0 {
			positive++
			if positive > 1 {
				return false
			}
		}
	}
	return true
}

// omega computes the non-simple per-instance scale factor
//
//	omega_i = (1/p) * (sum_{j != y_i-1} H[i][j]^p)^(1/p - 1)
func omega(h []float64, own int, p float64) float64 {
	var sum float64
	for j, v := range h {
		if j == own {
			continue
		}
		sum += math.Pow(v, p)
	}
	return (1.0 / p) * math.Pow(sum, 1.0/p-1.0)
}

// abSimple computes the simple-case (epsilon_i = 1, see isSimple) majorization coefficients at
// margin q, per the closed-form case analysis on q vs. -kappa and 1.
func abSimple(q, kappa float64) (a, bMinusAQ float64) {
	switch {
	case q <= -kappa:
		a = 0.25 / (0.5 - kappa/2.0 - q)
		bMinusAQ = 0.5
	case q <= 1.0:
		a = 1.0 / (2.0*kappa + 2.0)
		bMinusAQ = (1.0 - q) * a
	default:
		a = -0.25 / (0.5 - kappa/2.0 - q)
		bMinusAQ = 0
	}
	return
}

// abNonSimple computes the non-simple majorization coefficients at margin
// q for general p in [1, 2]. For p within 1e-2 of 2 a closed-form Huber
// majorizer is used directly (avoiding the (p-2) division); otherwise the
// general p-power majorizer is used, switching at the boundary
// (p+kappa-1)/(p-2).
func abNonSimple(q, p, kappa float64) (a, bMinusAQ float64) {
	if 2.0-p < 1e-2 {
		switch {
		case q <= -kappa:
			bMinusAQ = 0.5 - kappa/2.0 - q
		case q <= 1.0:
			d := 1.0 - q
			bMinusAQ = d * d * d / (2.0 * (kappa + 1.0) * (kappa + 1.0))
		default:
			bMinusAQ = 0
		}
		a = 1.5
		return
	}

	boundary := (p + kappa - 1.0) / (p - 2.0)
	switch {
	case q <= boundary:
		a = 0.25 * p * p * math.Pow(0.5-kappa/2.0-q, p-2.0)
	case q <= 1.0:
		a = 0.25 * p * (2.0*p - 1.0) * math.Pow((kappa+1.0)/2.0, p-2.0)
	default:
		a = 0.25 * p * p * math.Pow((p/(p-2.0))*(0.5-kappa/2.0-q), p-2.0)
		bMinusAQ = a*(2.0*q+kappa-1.0)/(p-2.0) +
			0.5*p*math.Pow(p/(p-2.0)*(0.5-kappa/2.0-q), p-1.0)
	}

	switch {
	case q <= -kappa:
		bMinusAQ = 0.5 * p * math.Pow(0.5-kappa/2.0-q, p-1.0)
	case q <= 1.0:
		bMinusAQ = p * math.Pow(1.0-q, 2.0*p-1.0) / math.Pow(2*kappa+2.0, p)
	}
	return
}

// instanceAlphaBeta computes alpha_i and accumulates beta_i (length K-1)
// for instance i, given its row of Q and H (length K each), its true
// class own = y_i-1, and the model hyperparameters. beta must be zeroed
// by the caller (or freshly allocated) before the call.
func instanceAlphaBeta(qRow, hRow []float64, own int, p, kappa, rho float64, n int, uu *SimplexDiff, i int, beta []float64) float64 {
	simple := isSimple(hRow, own)
	var om float64
	if simple {
		om = 1.0
	} else {
		om = omega(hRow, own, p)
	}

	inv := 1.0 / float64(n)
	var alpha float64
	k := len(qRow)
	for j := 0; j < k; j++ {
		if j == own {
			continue
		}
		var a, bMinusAQ float64
		if simple {
			a, bMinusAQ = abSimple(qRow[j], kappa)
		} else {
			a, bMinusAQ = abNonSimple(qRow[j], p, kappa)
		}

		scale := bMinusAQ * rho * om * inv
		row := uu.Row(i, j)
		for c, x := range row {
			beta[c] += scale * x
		}

		alpha += a
	}
	alpha *= om * rho * inv
	return alpha
}
