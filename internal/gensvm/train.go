package gensvm

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// InitializeWeights populates model.Rho from the model's weighting
// policy: unit weights are all 1; group weights balance classes as
// n / (K * |{j : y_j == y_i}|).
func InitializeWeights(y []int, model *Model) {
	n := len(y)
	model.Rho = make([]float64, n)

	switch model.Weighting {
	case WeightGroup:
		counts := make([]int, model.K)
		for _, yi := range y {
			counts[yi-1]++
		}
		for i, yi := range y {
			model.Rho[i] = float64(n) / float64(counts[yi-1]*model.K)
		}
	default:
		for i := range model.Rho {
			model.Rho[i] = 1
		}
	}
}

// SeedV seeds model.V either by copying a caller-provided seed matrix of
// shape (r+1) x (K-1), or by drawing each row uniformly from
// [1/c_max, 1/c_min] where c_min/c_max are the column extrema of
// data.Z[:, row]; an extremum smaller in magnitude than 1e-10 is
// replaced by -1 (c_min) or 1 (c_max).
func SeedV(data *Dataset, model *Model, seed *mat.Dense, rng *rand.Rand) {
	r1 := data.R + 1
	kMin := model.K - 1

	if seed != nil {
		model.V = mat.DenseCopyOf(seed)
		return
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	v := mat.NewDense(r1, kMin, nil)
	for i := 0; i < r1; i++ {
		cmin, cmax := columnExtrema(data, i)
		if math.Abs(cmin) < 1e-10 {
			cmin = -1
		}
		if math.Abs(cmax) < 1e-10 {
			cmax = 1
		}
		for j := 0; j < kMin; j++ {
			val := 1/cmin + (1/cmax-1/cmin)*rng.Float64()
			v.Set(i, j, val)
		}
	}
	model.V = v
}

// columnExtrema returns the min and max of column col of the live
// feature representation.
func columnExtrema(data *Dataset, col int) (float64, float64) {
	cmin, cmax := math.Inf(1), math.Inf(-1)
	if data.Z != nil {
		n, _ := data.Z.Dims()
		for i := 0; i < n; i++ {
			v := data.Z.At(i, col)
			if v < cmin {
				cmin = v
			}
			if v > cmax {
				cmax = v
			}
		}
		return cmin, cmax
	}
	n, _ := data.ZSparse.Dims()
	row := make([]float64, data.R+1)
	for i := 0; i < n; i++ {
		data.ZSparse.Row(i, row)
		v := row[col]
		if v < cmin {
			cmin = v
		}
		if v > cmax {
			cmax = v
		}
	}
	return cmin, cmax
}

// Train fits model on data: it seeds V (from seedV if provided, else the
// column-range heuristic), preprocesses the kernel if one is configured,
// initializes instance weights and the simplex tensors, and runs the IM
// loop to convergence.
func Train(model *Model, data *Dataset, seedV *mat.Dense, logger Logger) error {
	model.N, model.M, model.K = data.N, data.M, data.K

	if err := Preprocess(model, data); err != nil {
		return err
	}

	model.U = BuildSimplex(model.K)
	model.UU = BuildSimplexDiff(model.U, data.Y, model.K)

	InitializeWeights(data.Y, model)
	SeedV(data, model, seedV, nil)
	model.Vbar = mat.DenseCopyOf(model.V)

	ws := newWorkspace(data.N, data.R, model.K-1)
	return Optimize(data, model, ws, logger)
}
