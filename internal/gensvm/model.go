package gensvm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	gensvmerr "github.com/bitjungle/gensvm/pkg/gensvm"
)

// WeightPolicy selects how per-instance loss weights rho are derived.
type WeightPolicy string

const (
	// WeightUnit gives every instance weight 1.
	WeightUnit WeightPolicy = "unit"
	// WeightGroup balances classes: rho_i = n / (K * |{j : y_j == y_i}|).
	WeightGroup WeightPolicy = "group"
)

// Status records the outcome of the most recent Train call.
type Status struct {
	Iterations int
	Loss       float64
	Converged  bool
	Warnings   []string
}

// Model holds GenSVM's hyperparameters and the state the optimizer owns
// across iterations: V and Vbar (current and previous weight iterate),
// the simplex tensors U/UU, the margin/Huber matrices Q/H, and the
// instance weights Rho.
type Model struct {
	P       float64
	Kappa   float64
	Lambda  float64
	Epsilon float64
	MaxIter int

	Weighting  WeightPolicy
	KernelType KernelType
	Gamma      float64
	Coef0      float64
	Degree     int

	N, M, K int

	V    *mat.Dense // (r+1) x (K-1)
	Vbar *mat.Dense

	U  [][]float64
	UU *SimplexDiff

	Q, H *mat.Dense // n x K
	Rho  []float64  // length n

	Status Status
}

// NewModel constructs a Model with the given hyperparameters after
// validating them per the input-error taxonomy in spec.md section 7.
func NewModel(p, kappa, lambda, epsilon float64, maxIter int, weighting WeightPolicy) (*Model, error) {
	if p < 1 || p > 2 {
		return nil, gensvmerr.NewValidationError(fmt.Sprintf("p must be in [1, 2], got %g", p), nil)
	}
	if kappa <= -1 {
		return nil, gensvmerr.NewValidationError(fmt.Sprintf("kappa must be > -1, got %g", kappa), nil)
	}
	if lambda <= 0 {
		return nil, gensvmerr.NewValidationError(fmt.Sprintf("lambda must be > 0, got %g", lambda), nil)
	}
	if epsilon <= 0 {
		return nil, gensvmerr.NewValidationError(fmt.Sprintf("epsilon must be > 0, got %g", epsilon), nil)
	}
	if maxIter <= 0 {
		maxIter = 1000
	}
	if weighting == "" {
		weighting = WeightUnit
	}
	return &Model{
		P: p, Kappa: kappa, Lambda: lambda, Epsilon: epsilon,
		MaxIter: maxIter, Weighting: weighting, KernelType: KernelLinear,
	}, nil
}

// Workspace is the scratch state owned by a single Train invocation: the
// buffers the update solver needs to form Z'AZ and Z'B. It is allocated
// at the top of the IM loop and released on every exit path by the
// caller discarding the value; none of its fields are retained by Model.
type Workspace struct {
	ZV  *mat.Dense // n x (K-1)
	LZ  *mat.Dense // n x (r+1), dense accumulation path only
	ZAZ *mat.Dense // (r+1) x (r+1)
	ZB  *mat.Dense // (r+1) x (K-1)

	Alpha []float64 // length n
	Beta  *mat.Dense // n x (K-1), row i is beta_i

	// tmpZAZ is the block-local accumulator for the CSR path, sized
	// (r+1) x (r+1) and folded into ZAZ after each block of rows.
	tmpZAZ *mat.Dense
}

func newWorkspace(n, r, kMin int) *Workspace {
	return &Workspace{
		ZV:     mat.NewDense(n, kMin, nil),
		LZ:     mat.NewDense(n, r+1, nil),
		ZAZ:    mat.NewDense(r+1, r+1, nil),
		ZB:     mat.NewDense(r+1, kMin, nil),
		Alpha:  make([]float64, n),
		Beta:   mat.NewDense(n, kMin, nil),
		tmpZAZ: mat.NewDense(r+1, r+1, nil),
	}
}
