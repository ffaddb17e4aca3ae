package gensvm

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	gensvmerr "github.com/bitjungle/gensvm/pkg/gensvm"
)

// KernelType names the kernel functions the kernel engine supports.
type KernelType string

const (
	KernelLinear  KernelType = "linear"
	KernelRBF     KernelType = "rbf"
	KernelPoly    KernelType = "poly"
	KernelSigmoid KernelType = "sigmoid"
)

// KernelParams travels with a Dataset once it has been kernel-preprocessed
// so that test data can be projected through the same reduced eigenbasis.
type KernelParams struct {
	Type   KernelType
	Gamma  float64
	Coef0  float64
	Degree int

	// Sigma is the retained singular values (sqrt eigenvalues) of length r.
	Sigma []float64
	// Eigvecs are the retained eigenvectors (n_train x r), column-scaled
	// by Sigma already baked into Dataset.Z; kept here unscaled for the
	// test-time projection in Postprocess.
	Eigvecs *mat.Dense
}

// Dataset holds one labeled (or unlabeled, for prediction) instance set
// and the augmented feature representation the optimizer consumes.
//
// Exactly one of Z and ZSparse is the live representation; the other is
// nil. RAW holds the pre-kernel dense features (bias column included)
// whenever a kernel is in play, so the tagged Kernel field - not a
// same-pointer convention - is what signals "no kernel is active".
type Dataset struct {
	N, M, R, K int
	Y          []int // 1-based labels, length N; nil for unlabeled test data

	Z       *DenseMatrix
	ZSparse *SparseCSR

	RAW    *DenseMatrix // pre-kernel dense features with bias column, nil if Kernel == nil
	Kernel *KernelParams
}

// IsSparse reports whether the live representation is the CSR form.
func (d *Dataset) IsSparse() bool { return d.ZSparse != nil }

// Live returns whichever representation is currently populated.
func (d *Dataset) Live() Matrix {
	if d.ZSparse != nil {
		return d.ZSparse
	}
	return d.Z
}

// sparseThreshold is the zero-fraction above which BuildData prefers CSR
// storage, per spec: "store sparse when ... >= ~50% of entries are zero".
const sparseThreshold = 0.5

// BuildData materializes the [1 | X] augmented representation from raw
// features and (optionally) labels, auto-detecting dense vs. sparse
// storage and verifying label contiguity in [1, K].
func BuildData(x [][]float64, y []int, k int) (*Dataset, error) {
	n := len(x)
	if n == 0 {
		return nil, gensvmerr.NewValidationError("empty feature matrix", nil)
	}
	m := len(x[0])
	for i, row := range x {
		if len(row) != m {
			return nil, gensvmerr.NewValidationError(
				fmt.Sprintf("row %d has %d columns, expected %d", i, len(row), m), nil)
		}
	}
	if y != nil {
		if len(y) != n {
			return nil, gensvmerr.NewDimensionError("label count does not match instance count", n, len(y))
		}
		if err := validateLabels(y, k); err != nil {
			return nil, err
		}
	}

	d := &Dataset{N: n, M: m, R: m, K: k, Y: y}

	if DensityZeroFraction(x) >= sparseThreshold {
		d.ZSparse = DenseToCSR(x)
	} else {
		d.Z = DenseWithBias(x)
	}
	return d, nil
}

// validateLabels checks that every entry of y lies in [1, k] and that
// every class in [1, k] is actually seen at least once, matching
// gensvm_check_outcome_contiguous in the original reference
// implementation: a label set like {1, 3} for k=3 is rejected because
// class 2 never appears, not just because no label falls outside range.
func validateLabels(y []int, k int) error {
	seen := make([]bool, k+1)
	for i, yi := range y {
		if yi < 1 || yi > k {
			return gensvmerr.NewValidationError(
				fmt.Sprintf("label at index %d (%d) is not in [1, %d]", i, yi, k), nil)
		}
		seen[yi] = true
	}
	for c := 1; c <= k; c++ {
		if !seen[c] {
			return gensvmerr.NewValidationError(
				fmt.Sprintf("labels are not contiguous: class %d in [1, %d] never appears", c, k), nil)
		}
	}
	return nil
}
