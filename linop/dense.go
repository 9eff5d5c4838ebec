// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linop

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
)

// Dense is a dense rectangular block with row-major entries.
type Dense struct {
	geometry
	a blas64.General
}

// NewDense creates a dense block from row-major data of length nrows·ncols.
func NewDense(rowOff, colOff, nrows, ncols int, data []float64) (*Dense, error) {
	g := geometry{rowOff, colOff, nrows, ncols}
	if err := g.check(); err != nil {
		return nil, err
	}
	if len(data) != nrows*ncols {
		return nil, fmt.Errorf("%w: dense block data length %d, want %d", ErrDimensionMismatch, len(data), nrows*ncols)
	}
	return &Dense{
		geometry: g,
		a: blas64.General{
			Rows:   nrows,
			Cols:   ncols,
			Stride: ncols,
			Data:   data,
		},
	}, nil
}

func (b *Dense) Initialize() error { return nil }

func (b *Dense) Apply(dst, src []float64) {
	blas64.Gemv(blas.NoTrans, 1, b.a,
		blas64.Vector{N: b.ncols, Data: src, Inc: 1}, 1,
		blas64.Vector{N: b.nrows, Data: dst, Inc: 1})
}

func (b *Dense) ApplyAdjoint(dst, src []float64) {
	blas64.Gemv(blas.Trans, 1, b.a,
		blas64.Vector{N: b.nrows, Data: src, Inc: 1}, 1,
		blas64.Vector{N: b.ncols, Data: dst, Inc: 1})
}

func (b *Dense) RowSum(row int, power float64) float64 {
	sum := 0.0
	for _, v := range b.a.Data[row*b.a.Stride : row*b.a.Stride+b.ncols] {
		sum += absPow(v, power)
	}
	return sum
}

func (b *Dense) ColSum(col int, power float64) float64 {
	sum := 0.0
	for i := 0; i < b.nrows; i++ {
		sum += absPow(b.a.Data[i*b.a.Stride+col], power)
	}
	return sum
}
