package gensvm

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	gensvmerr "github.com/bitjungle/gensvm/pkg/gensvm"
)

// KernelEigenCutoff is the default relative eigenvalue cutoff used to
// choose the retained rank r of the kernel's reduced eigenbasis: an
// eigenvalue lambda_i is kept while lambda_i / lambda_max > cutoff.
const KernelEigenCutoff = 5e-3

// computeKernelValue evaluates the selected kernel between two raw
// feature vectors (bias excluded).
func computeKernelValue(kind KernelType, gamma, coef0 float64, degree int, x, z []float64) float64 {
	switch kind {
	case KernelRBF:
		var sum float64
		for i := range x {
			d := x[i] - z[i]
			sum += d * d
		}
		return math.Exp(-gamma * sum)
	case KernelPoly:
		var dot float64
		for i := range x {
			dot += x[i] * z[i]
		}
		return math.Pow(gamma*dot+coef0, float64(degree))
	case KernelSigmoid:
		var dot float64
		for i := range x {
			dot += x[i] * z[i]
		}
		return math.Tanh(gamma*dot + coef0)
	default:
		var dot float64
		for i := range x {
			dot += x[i] * z[i]
		}
		return dot
	}
}

// gramMatrix builds the full dense Gram matrix over raw (unaugmented)
// rows, exploiting symmetry.
func gramMatrix(rows [][]float64, kind KernelType, gamma, coef0 float64, degree int) *mat.Dense {
	n := len(rows)
	g := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := computeKernelValue(kind, gamma, coef0, degree, rows[i], rows[j])
			g.Set(i, j, v)
			if i != j {
				g.Set(j, i, v)
			}
		}
	}
	return g
}

// rawRows strips the bias column from a dense augmented matrix, returning
// the raw n x m feature rows the kernel functions operate on.
func rawRows(d *DenseMatrix) [][]float64 {
	n, cols := d.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, cols-1)
		for j := 1; j < cols; j++ {
			row[j-1] = d.At(i, j)
		}
		rows[i] = row
	}
	return rows
}

// autoGamma picks a default RBF/poly/sigmoid gamma from the data itself,
// scaling by the average per-feature variance so differently-scaled
// feature sets don't need a hand-tuned gamma: gamma = 1 / (m * mean(var)).
func autoGamma(rows [][]float64) float64 {
	m := len(rows[0])
	col := make([]float64, len(rows))
	var sumVar float64
	for j := 0; j < m; j++ {
		for i, r := range rows {
			col[i] = r[j]
		}
		sumVar += stat.Variance(col, nil)
	}
	avgVar := sumVar / float64(m)
	if avgVar <= 0 {
		return 1.0
	}
	return 1.0 / (float64(m) * avgVar)
}

// eigenSymDescending runs a full symmetric eigendecomposition and returns
// eigenvalues sorted descending together with the correspondingly
// reordered eigenvectors. Eigenvector sign is whatever gonum returns;
// nothing downstream depends on it.
func eigenSymDescending(g *mat.Dense) ([]float64, *mat.Dense, error) {
	n, _ := g.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, g.At(i, j))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return nil, nil, gensvmerr.NewNumericalError("kernel eigendecomposition failed to converge", nil)
	}

	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return vals[idx[a]] > vals[idx[b]] })

	sortedVals := make([]float64, n)
	sortedVecs := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		sortedVals[i] = vals[idx[i]]
		for j := 0; j < n; j++ {
			sortedVecs.Set(j, i, vecs.At(j, idx[i]))
		}
	}
	return sortedVals, sortedVecs, nil
}

// Preprocess implements the kernel engine's training-time preprocessing:
// for a linear kernel it is a no-op (r := m); otherwise it builds the
// dense Gram matrix, reduces it to a rank-r eigenbasis by a relative
// cutoff on the eigenvalues, and replaces Z with [1 | P*diag(sigma)].
func Preprocess(model *Model, data *Dataset) error {
	if model.KernelType == "" || model.KernelType == KernelLinear {
		data.R = data.M
		return nil
	}
	if data.IsSparse() {
		// The Gram matrix reads every raw entry, so materialize the CSR
		// form densely and make it the live representation.
		n, cols := data.ZSparse.Dims()
		dense := NewDenseMatrixZeros(n, cols)
		row := make([]float64, cols)
		for i := 0; i < n; i++ {
			data.ZSparse.Row(i, row)
			dense.data.SetRow(i, row)
		}
		data.Z, data.ZSparse = dense, nil
	}

	raw := rawRows(data.Z)
	data.RAW = data.Z

	gamma := model.Gamma
	if gamma <= 0 {
		gamma = autoGamma(raw)
		model.Gamma = gamma
	}

	g := gramMatrix(raw, model.KernelType, gamma, model.Coef0, model.Degree)
	vals, vecs, err := eigenSymDescending(g)
	if err != nil {
		return err
	}

	maxVal := vals[0]
	r := 0
	for _, v := range vals {
		if maxVal <= 0 || v/maxVal <= KernelEigenCutoff {
			break
		}
		r++
	}
	if r == 0 {
		r = 1
	}

	sigma := make([]float64, r)
	for i := 0; i < r; i++ {
		sigma[i] = math.Sqrt(math.Max(vals[i], 0))
	}

	n, _ := g.Dims()
	z := mat.NewDense(n, r+1, nil)
	for i := 0; i < n; i++ {
		z.Set(i, 0, 1)
		for j := 0; j < r; j++ {
			z.Set(i, j+1, vecs.At(i, j)*sigma[j])
		}
	}

	data.Z = NewDenseMatrix(z)
	data.R = r
	data.Kernel = &KernelParams{
		Type: model.KernelType, Gamma: model.Gamma, Coef0: model.Coef0, Degree: model.Degree,
		Sigma:   sigma,
		Eigvecs: vecs.Slice(0, n, 0, r).(*mat.Dense),
	}
	return nil
}

// Postprocess projects test data into the training data's reduced
// eigenbasis: for a linear kernel it is a no-op (test.r := test.m);
// otherwise it forms the cross-kernel between test and training rows and
// maps it through the training projection, scaled by sigma^-2.
func Postprocess(model *Model, train, test *Dataset) error {
	if model.KernelType == "" || model.KernelType == KernelLinear {
		test.R = test.M
		return nil
	}
	if train.Kernel == nil {
		return gensvmerr.NewValidationError("training data was not kernel-preprocessed", nil)
	}
	if test.IsSparse() || test.Z == nil {
		return gensvmerr.NewValidationError("kernel postprocessing requires dense RAW test features", nil)
	}

	testRaw := rawRows(test.Z)
	trainRaw := rawRows(train.RAW)

	nTest := len(testRaw)
	nTrain := len(trainRaw)
	k2 := mat.NewDense(nTest, nTrain, nil)
	for i := 0; i < nTest; i++ {
		for j := 0; j < nTrain; j++ {
			k2.Set(i, j, computeKernelValue(model.KernelType, model.Gamma, model.Coef0, model.Degree, testRaw[i], trainRaw[j]))
		}
	}

	r := train.R
	// M is the training columns of P*diag(sigma), i.e. train.Z without
	// the bias column.
	m := mat.NewDense(nTrain, r, nil)
	for i := 0; i < nTrain; i++ {
		for j := 0; j < r; j++ {
			m.Set(i, j, train.Z.At(i, j+1))
		}
	}

	var n mat.Dense
	n.Mul(k2, m)
	sigma := train.Kernel.Sigma
	for i := 0; i < nTest; i++ {
		for j := 0; j < r; j++ {
			if sigma[j] != 0 {
				n.Set(i, j, n.At(i, j)/(sigma[j]*sigma[j]))
			}
		}
	}

	z := mat.NewDense(nTest, r+1, nil)
	for i := 0; i < nTest; i++ {
		z.Set(i, 0, 1)
		for j := 0; j < r; j++ {
			z.Set(i, j+1, n.At(i, j))
		}
	}
	test.Z = NewDenseMatrix(z)
	test.R = r
	return nil
}
