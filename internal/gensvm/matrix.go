package gensvm

import "gonum.org/v1/gonum/mat"

// Matrix is the augmented n x (r+1) feature representation the optimizer
// consumes. Column 0 is always the bias column and is identically 1.
// DenseMatrix and SparseCSR are the two implementations; callers that only
// need the three primitives below never need to branch on which one they
// hold.
type Matrix interface {
	Dims() (n, cols int)

	// ForEachNZ calls fn once per nonzero entry of row i, in ascending
	// column order. For DenseMatrix every entry is visited.
	ForEachNZ(i int, fn func(col int, v float64))

	// MulDense computes Z * v, writing an n x k dense result.
	MulDense(v *mat.Dense) *mat.Dense

	// Row copies row i into dst; implementations that are not
	// naturally row-addressable (sparse) materialize it into dst.
	Row(i int, dst []float64)
}

// DenseMatrix is a row-major dense n x cols matrix backed by gonum.
type DenseMatrix struct {
	data *mat.Dense
}

// NewDenseMatrix wraps an existing gonum Dense as a Matrix.
func NewDenseMatrix(d *mat.Dense) *DenseMatrix {
	return &DenseMatrix{data: d}
}

// NewDenseMatrixZeros allocates an n x cols zero matrix.
func NewDenseMatrixZeros(n, cols int) *DenseMatrix {
	return &DenseMatrix{data: mat.NewDense(n, cols, nil)}
}

func (d *DenseMatrix) Dims() (int, int) { return d.data.Dims() }

func (d *DenseMatrix) Raw() *mat.Dense { return d.data }

func (d *DenseMatrix) At(i, j int) float64 { return d.data.At(i, j) }

func (d *DenseMatrix) Set(i, j int, v float64) { d.data.Set(i, j, v) }

func (d *DenseMatrix) ForEachNZ(i int, fn func(col int, v float64)) {
	_, cols := d.data.Dims()
	for j := 0; j < cols; j++ {
		fn(j, d.data.At(i, j))
	}
}

func (d *DenseMatrix) MulDense(v *mat.Dense) *mat.Dense {
	n, _ := d.data.Dims()
	_, k := v.Dims()
	out := mat.NewDense(n, k, nil)
	out.Mul(d.data, v)
	return out
}

func (d *DenseMatrix) Row(i int, dst []float64) {
	mat.Row(dst, i, d.data)
}

// SparseCSR is a compressed-sparse-row matrix over the same logical
// n x cols augmented representation as DenseMatrix, with the bias column
// materialized as an explicit nonzero at column 0 of every row.
type SparseCSR struct {
	n, cols int
	values  []float64
	rowPtr  []int // length n+1
	colIdx  []int
}

// NewSparseCSR builds a CSR matrix from parallel value/row-pointer/column
// slices. The caller owns the invariant that rowPtr is non-decreasing,
// length n+1, and that colIdx entries within a row are ascending.
func NewSparseCSR(n, cols int, values []float64, rowPtr []int, colIdx []int) *SparseCSR {
	return &SparseCSR{n: n, cols: cols, values: values, rowPtr: rowPtr, colIdx: colIdx}
}

func (s *SparseCSR) Dims() (int, int) { return s.n, s.cols }

func (s *SparseCSR) ForEachNZ(i int, fn func(col int, v float64)) {
	for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
		fn(s.colIdx[k], s.values[k])
	}
}

func (s *SparseCSR) MulDense(v *mat.Dense) *mat.Dense {
	_, k := v.Dims()
	out := mat.NewDense(s.n, k, nil)
	for i := 0; i < s.n; i++ {
		row := make([]float64, k)
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			col := s.colIdx[p]
			z := s.values[p]
			for c := 0; c < k; c++ {
				row[c] += z * v.At(col, c)
			}
		}
		out.SetRow(i, row)
	}
	return out
}

func (s *SparseCSR) Row(i int, dst []float64) {
	for j := range dst {
		dst[j] = 0
	}
	for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
		dst[s.colIdx[p]] = s.values[p]
	}
}

// SparseCSC is a column-major mirror of a SparseCSR for column-wise
// traversal. The optimizer's Z'AZ/Z'B accumulation does not use it; it
// works row by row on the CSR form.
type SparseCSC struct {
	n, cols int
	values  []float64
	colPtr  []int // length cols+1
	rowIdx  []int
}

// BuildCSC derives the column-major mirror of a CSR matrix.
func BuildCSC(s *SparseCSR) *SparseCSC {
	counts := make([]int, s.cols+1)
	for _, c := range s.colIdx {
		counts[c+1]++
	}
	for c := 0; c < s.cols; c++ {
		counts[c+1] += counts[c]
	}
	colPtr := make([]int, s.cols+1)
	copy(colPtr, counts)
	values := make([]float64, len(s.values))
	rowIdx := make([]int, len(s.values))
	cursor := make([]int, s.cols)
	copy(cursor, counts[:s.cols])
	for i := 0; i < s.n; i++ {
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			c := s.colIdx[p]
			pos := cursor[c]
			values[pos] = s.values[p]
			rowIdx[pos] = i
			cursor[c]++
		}
	}
	return &SparseCSC{n: s.n, cols: s.cols, values: values, colPtr: colPtr, rowIdx: rowIdx}
}

func (s *SparseCSC) ForEachNZInCol(j int, fn func(row int, v float64)) {
	for p := s.colPtr[j]; p < s.colPtr[j+1]; p++ {
		fn(s.rowIdx[p], s.values[p])
	}
}

// DensityZeroFraction reports the fraction of zero entries in a dense
// row-major matrix, used by BuildData's sparse/dense auto-detection.
func DensityZeroFraction(rows [][]float64) float64 {
	var total, zeros int
	for _, row := range rows {
		for _, v := range row {
			total++
			if v == 0 {
				zeros++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(zeros) / float64(total)
}

// DenseToCSR converts a raw row-major slice (without a bias column) into
// a CSR matrix with an explicit bias column 0 == 1 prepended.
func DenseToCSR(rows [][]float64) *SparseCSR {
	n := len(rows)
	cols := 0
	if n > 0 {
		cols = len(rows[0]) + 1
	}
	var values []float64
	var colIdx []int
	rowPtr := make([]int, n+1)
	for i, row := range rows {
		values = append(values, 1)
		colIdx = append(colIdx, 0)
		for j, v := range row {
			if v != 0 {
				values = append(values, v)
				colIdx = append(colIdx, j+1)
			}
		}
		rowPtr[i+1] = len(values)
	}
	return NewSparseCSR(n, cols, values, rowPtr, colIdx)
}

// DenseWithBias builds a DenseMatrix with an explicit bias column 0 == 1
// prepended to a raw row-major slice.
func DenseWithBias(rows [][]float64) *DenseMatrix {
	n := len(rows)
	cols := 0
	if n > 0 {
		cols = len(rows[0]) + 1
	}
	d := mat.NewDense(n, cols, nil)
	for i, row := range rows {
		d.Set(i, 0, 1)
		for j, v := range row {
			d.Set(i, j+1, v)
		}
	}
	return &DenseMatrix{data: d}
}
