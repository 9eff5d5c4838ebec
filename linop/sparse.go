// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linop

import "fmt"

// Sparse is a sparse rectangular block built from coordinate triplets and
// compressed to CSR on Initialize. Duplicate coordinates sum.
type Sparse struct {
	geometry

	// triplet input, cleared after compression
	rows, cols []int
	vals       []float64

	// forward CSR
	rowPtr []int
	colIdx []int
	val    []float64

	// adjoint CSR (the transpose)
	colPtr []int
	rowIdx []int
	valT   []float64
}

// NewSparse creates a sparse block from coordinate triplets local to the
// block: entry k is (rows[k], cols[k], vals[k]) with rows[k] in [0, nrows)
// and cols[k] in [0, ncols).
func NewSparse(rowOff, colOff, nrows, ncols int, rows, cols []int, vals []float64) (*Sparse, error) {
	g := geometry{rowOff, colOff, nrows, ncols}
	if err := g.check(); err != nil {
		return nil, err
	}
	if len(rows) != len(vals) || len(cols) != len(vals) {
		return nil, fmt.Errorf("%w: triplet slices of lengths %d/%d/%d", ErrDimensionMismatch, len(rows), len(cols), len(vals))
	}
	for k := range vals {
		if rows[k] < 0 || rows[k] >= nrows || cols[k] < 0 || cols[k] >= ncols {
			return nil, fmt.Errorf("%w: triplet (%d,%d) outside %dx%d block", ErrInvalidParameter, rows[k], cols[k], nrows, ncols)
		}
	}
	return &Sparse{geometry: g, rows: rows, cols: cols, vals: vals}, nil
}

// Initialize compresses the triplets into row-major and column-major forms.
func (b *Sparse) Initialize() error {
	if b.rowPtr != nil {
		return nil
	}
	b.rowPtr, b.colIdx, b.val = compress(b.rows, b.cols, b.vals, b.nrows)
	b.colPtr, b.rowIdx, b.valT = compress(b.cols, b.rows, b.vals, b.ncols)
	b.rows, b.cols, b.vals = nil, nil, nil
	return nil
}

// compress builds a CSR layout keyed by major, a counting sort over the
// triplets.
func compress(major, minor []int, vals []float64, nmajor int) (ptr, idx []int, val []float64) {
	nnz := len(vals)
	ptr = make([]int, nmajor+1)
	idx = make([]int, nnz)
	val = make([]float64, nnz)

	for _, m := range major {
		ptr[m+1]++
	}
	for i := 0; i < nmajor; i++ {
		ptr[i+1] += ptr[i]
	}
	next := make([]int, nmajor)
	copy(next, ptr[:nmajor])
	for k := 0; k < nnz; k++ {
		p := next[major[k]]
		idx[p] = minor[k]
		val[p] = vals[k]
		next[major[k]]++
	}
	return ptr, idx, val
}

func (b *Sparse) Apply(dst, src []float64) {
	for i := 0; i < b.nrows; i++ {
		s := 0.0
		for p := b.rowPtr[i]; p < b.rowPtr[i+1]; p++ {
			s += b.val[p] * src[b.colIdx[p]]
		}
		dst[i] += s
	}
}

func (b *Sparse) ApplyAdjoint(dst, src []float64) {
	for j := 0; j < b.ncols; j++ {
		s := 0.0
		for p := b.colPtr[j]; p < b.colPtr[j+1]; p++ {
			s += b.valT[p] * src[b.rowIdx[p]]
		}
		dst[j] += s
	}
}

func (b *Sparse) RowSum(row int, power float64) float64 {
	sum := 0.0
	for p := b.rowPtr[row]; p < b.rowPtr[row+1]; p++ {
		sum += absPow(b.val[p], power)
	}
	return sum
}

func (b *Sparse) ColSum(col int, power float64) float64 {
	sum := 0.0
	for p := b.colPtr[col]; p < b.colPtr[col+1]; p++ {
		sum += absPow(b.valT[p], power)
	}
	return sum
}
