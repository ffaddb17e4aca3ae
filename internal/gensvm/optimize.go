package gensvm

import "gonum.org/v1/gonum/mat"

// stepDoublingBurnIn is the iteration count after which step doubling is
// applied, matching the "far from the basin of attraction" rationale in
// spec.md section 4.6.
const stepDoublingBurnIn = 50

// recomputeErrors refreshes ZV, Q and H at the model's current V, then
// returns the loss at that point. It is the Go counterpart of the
// original optimizer's gensvm_get_loss, which folds the ZV/Q/H refresh
// and the loss evaluation into one call so the optimizer never
// recomputes ZV twice per iteration.
func recomputeErrors(data *Dataset, model *Model, ws *Workspace) float64 {
	zv := ComputeZV(data.Live(), model.V)
	ws.ZV = zv
	model.Q = ComputeMargins(zv, model.UU, data.Y, model.K)
	model.H = ComputeHuber(model.Q, data.Y, model.K, model.Kappa)
	return ComputeLoss(model.H, data.Y, model.K, model.P, model.Rho, model.V, model.Lambda)
}

// stepDouble extrapolates V across the majorizer's minimum:
// V := 2*V - Vbar, applied elementwise over every row/column.
func stepDouble(model *Model) {
	r, c := model.V.Dims()
	v := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v.Set(i, j, 2*model.V.At(i, j)-model.Vbar.At(i, j))
		}
	}
	model.V = v
}

// Optimize runs the Iterative Majorization loop to convergence: it
// alternates one update step (Update) with a loss recomputation,
// applying step doubling after the burn-in period, until the relative
// change in loss falls below model.Epsilon or model.MaxIter is reached.
//
// Preconditions: model.V, model.U, model.UU and model.Rho are already
// populated (see Train). Optimize owns the Workspace for its duration;
// the caller must not retain ws past return.
func Optimize(data *Dataset, model *Model, ws *Workspace, logger Logger) error {
	if logger == nil {
		logger = NopLogger()
	}

	l := recomputeErrors(data, model, ws)
	lbar := l + 2*model.Epsilon*l

	it := 0
	for it < model.MaxIter && (lbar-l)/l > model.Epsilon {
		if err := Update(data, model, ws); err != nil {
			return err
		}
		if it > stepDoublingBurnIn {
			stepDouble(model)
		}

		lbar = l
		l = recomputeErrors(data, model, ws)

		if l > lbar {
			model.Status.Warnings = append(model.Status.Warnings,
				"loss increased during an IM iteration; indicates a majorization bug or floating-point pathology")
		}
		it++
	}

	if it >= model.MaxIter {
		model.Status.Warnings = append(model.Status.Warnings, "maximum iterations reached without satisfying tolerance")
	}

	model.Status.Iterations = it
	model.Status.Loss = l
	model.Status.Converged = it < model.MaxIter
	logger.Printf("gensvm: converged=%v iterations=%d loss=%.16f", model.Status.Converged, it, l)
	return nil
}
