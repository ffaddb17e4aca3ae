package gensvm

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"

	gensvmerr "github.com/bitjungle/gensvm/pkg/gensvm"
)

// csrBlockSize bounds how many CSR rows are folded into Z'AZ at once, to
// limit floating-point rounding drift on large datasets (see
// http://stackoverflow.com/q/40286989, cited by the original GenSVM CSR
// accumulator this function is ported from).
const csrBlockSize = 512

// accumulateDense forms LZ (row i scaled by sqrt(alpha_i)), Z'AZ via a
// symmetric rank-k update of LZ, and Z'B via a per-row rank-1 update,
// exactly as the dense GenSVM update does.
func accumulateDense(z *DenseMatrix, y []int, model *Model, ws *Workspace) error {
	n, r1 := z.Dims()
	kMin := model.K - 1
	beta := make([]float64, kMin)
	zRow := make([]float64, r1)
	for i := 0; i < n; i++ {
		own := y[i] - 1
		qRow := make([]float64, model.K)
		hRow := make([]float64, model.K)
		mat.Row(qRow, i, model.Q)
		mat.Row(hRow, i, model.H)

		for c := range beta {
			beta[c] = 0
		}
		alpha := instanceAlphaBeta(qRow, hRow, own, model.P, model.Kappa, model.Rho[i], n, model.UU, i, beta)
		ws.Alpha[i] = alpha

		sqAlpha := math.Sqrt(alpha)
		z.Row(i, zRow)
		ws.LZ.Set(i, 0, sqAlpha)
		for j := 1; j < r1; j++ {
			ws.LZ.Set(i, j, sqAlpha*zRow[j])
		}

		for j := 0; j < r1; j++ {
			zij := zRow[j]
			if zij == 0 {
				continue
			}
			for c := 0; c < kMin; c++ {
				ws.ZB.Set(j, c, ws.ZB.At(j, c)+zij*beta[c])
			}
		}
		ws.Beta.SetRow(i, beta)
	}

	// Z'AZ = LZ' * LZ, upper triangle only (via a full Mul; only the
	// upper triangle is read downstream, mirroring the BLAS dsyrk call
	// the original accumulator makes).
	ws.ZAZ.Mul(ws.LZ.T(), ws.LZ)
	return nil
}

// accumulateSparse forms Z'AZ and Z'B for a CSR matrix by processing rows
// in fixed-size blocks, folding each block's local accumulator into ZAZ
// once it is complete.
func accumulateSparse(z *SparseCSR, y []int, model *Model, ws *Workspace) error {
	n, cols := z.Dims()
	kMin := model.K - 1
	beta := make([]float64, kMin)

	type nz struct {
		col int
		val float64
	}

	blockStart := 0
	for blockStart < n {
		blockEnd := blockStart + csrBlockSize
		if blockEnd > n {
			blockEnd = n
		}

		tmp := ws.tmpZAZ
		for r := 0; r < cols; r++ {
			for c := 0; c < cols; c++ {
				tmp.Set(r, c, 0)
			}
		}

		for i := blockStart; i < blockEnd; i++ {
			own := y[i] - 1
			qRow := make([]float64, model.K)
			hRow := make([]float64, model.K)
			mat.Row(qRow, i, model.Q)
			mat.Row(hRow, i, model.H)

			for c := range beta {
				beta[c] = 0
			}
			alpha := instanceAlphaBeta(qRow, hRow, own, model.P, model.Kappa, model.Rho[i], n, model.UU, i, beta)
			ws.Alpha[i] = alpha
			ws.Beta.SetRow(i, beta)

			var row []nz
			z.ForEachNZ(i, func(col int, v float64) { row = append(row, nz{col, v}) })

			for _, e := range row {
				for c := 0; c < kMin; c++ {
					ws.ZB.Set(e.col, c, ws.ZB.At(e.col, c)+e.val*beta[c])
				}
				zij := alpha * e.val
				for _, e2 := range row {
					if e2.col < e.col {
						continue
					}
					tmp.Set(e.col, e2.col, tmp.At(e.col, e2.col)+zij*e2.val)
				}
			}
		}

		for r := 0; r < cols; r++ {
			for c := r; c < cols; c++ {
				ws.ZAZ.Set(r, c, ws.ZAZ.At(r, c)+tmp.At(r, c))
			}
		}

		blockStart = blockEnd
	}
	return nil
}

// addRidge adds lambda to every diagonal entry of ZAZ except (0,0), which
// corresponds to the unregularized intercept row of V.
func addRidge(zaz *mat.Dense, lambda float64) {
	r, _ := zaz.Dims()
	for i := 1; i < r; i++ {
		zaz.Set(i, i, zaz.At(i, i)+lambda)
	}
}

// toSymmetric copies the upper triangle of a square mat.Dense into a
// blas64.Symmetric view suitable for lapack64.
func toSymmetric(d *mat.Dense) blas64.Symmetric {
	n, _ := d.Dims()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			data[i*n+j] = d.At(i, j)
		}
	}
	return blas64.Symmetric{N: n, Data: data, Stride: n, Uplo: blas.Upper}
}

func toGeneral(d *mat.Dense) blas64.General {
	r, c := d.Dims()
	data := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			data[i*c+j] = d.At(i, j)
		}
	}
	return blas64.General{Rows: r, Cols: c, Data: data, Stride: c}
}

func fromGeneral(g blas64.General) *mat.Dense {
	d := mat.NewDense(g.Rows, g.Cols, nil)
	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			d.Set(i, j, g.Data[i*g.Stride+j])
		}
	}
	return d
}

// solveSystem solves (Z'AZ + lambda*J) V_new = Z'AZ*V + Z'B, first via the
// symmetric-positive-definite solver (POSV) and, if that fails, via the
// symmetric indefinite solver (SYSV) with the two-call workspace-size
// query pattern LAPACK requires.
func solveSystem(zaz, zb *mat.Dense) (*mat.Dense, error) {
	n, _ := zaz.Dims()

	sym := toSymmetric(zaz)
	rhs := toGeneral(zb)

	symCopy := blas64.Symmetric{N: sym.N, Stride: sym.Stride, Uplo: sym.Uplo, Data: append([]float64(nil), sym.Data...)}
	rhsCopy := blas64.General{Rows: rhs.Rows, Cols: rhs.Cols, Stride: rhs.Stride, Data: append([]float64(nil), rhs.Data...)}

	if ok := lapack64.Potrf(symCopy); ok {
		lapack64.Potrs(symCopy, rhsCopy)
		return fromGeneral(rhsCopy), nil
	}

	// POSV-equivalent failed (ZAZ is not SPD, typically rounding); fall
	// back to the indefinite solver with the standard query-then-solve
	// workspace pattern.
	symCopy = blas64.Symmetric{N: sym.N, Stride: sym.Stride, Uplo: sym.Uplo, Data: append([]float64(nil), sym.Data...)}
	rhsCopy = blas64.General{Rows: rhs.Rows, Cols: rhs.Cols, Stride: rhs.Stride, Data: append([]float64(nil), rhs.Data...)}
	ipiv := make([]int, n)

	work := make([]float64, 1)
	lapack64.Sytrf(symCopy, ipiv, work, -1)
	lwork := int(work[0])
	if lwork < 1 {
		lwork = n
	}
	work = make([]float64, lwork)

	if ok := lapack64.Sytrf(symCopy, ipiv, work, lwork); !ok {
		return nil, gensvmerr.NewNumericalError("linear system remained indefinite after SYSV fallback", nil)
	}
	lapack64.Sytrs(symCopy, rhsCopy, ipiv)
	return fromGeneral(rhsCopy), nil
}

// resetWork zeros the accumulators carried in ws between IM iterations.
// ws is allocated once per Train call and reused by every call to Update
// inside Optimize's loop, so ZB and ZAZ must be cleared before each
// accumulation or they silently pile up contributions from every prior
// iteration, exactly the bug gensvm_reset_work in the original
// gensvm_get_ZAZ_ZB guards against.
func resetWork(ws *Workspace) {
	ws.ZB.Zero()
	ws.ZAZ.Zero()
}

// Update performs one IM step: it forms Z'AZ and Z'B (dispatching on
// whether the live representation is dense or sparse), computes the
// right-hand side Z'AZ*V + Z'B at the current V, adds the ridge penalty, solves the
// resulting system, and writes the result back into model.V after moving
// the prior V into model.Vbar.
func Update(data *Dataset, model *Model, ws *Workspace) error {
	resetWork(ws)

	var err error
	if data.IsSparse() {
		err = accumulateSparse(data.ZSparse, data.Y, model, ws)
	} else {
		err = accumulateDense(data.Z, data.Y, model, ws)
	}
	if err != nil {
		return err
	}

	// Only the upper triangle of ZAZ is guaranteed (the CSR accumulator
	// fills nothing else), so mirror it before the symmetric product.
	r1, _ := ws.ZAZ.Dims()
	for i := 1; i < r1; i++ {
		for j := 0; j < i; j++ {
			ws.ZAZ.Set(i, j, ws.ZAZ.At(j, i))
		}
	}

	rhs := mat.NewDense(data.R+1, model.K-1, nil)
	rhs.Mul(ws.ZAZ, model.V)
	rhs.Add(rhs, ws.ZB)

	addRidge(ws.ZAZ, model.Lambda)

	solved, err := solveSystem(ws.ZAZ, rhs)
	if err != nil {
		return err
	}

	model.Vbar = mat.DenseCopyOf(model.V)
	model.V = solved
	return nil
}
