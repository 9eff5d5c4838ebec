// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linop_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doctorwk007/prost/linop"
)

// A sparse block must agree with the dense block holding the same matrix.
func TestSparseMatchesDense(t *testing.T) {
	const nr, nc = 5, 7
	rng := rand.New(rand.NewSource(3))

	data := make([]float64, nr*nc)
	var rows, cols []int
	var vals []float64
	for i := 0; i < nr; i++ {
		for j := 0; j < nc; j++ {
			if rng.Float64() < 0.4 {
				v := rng.NormFloat64()
				data[i*nc+j] = v
				rows = append(rows, i)
				cols = append(cols, j)
				vals = append(vals, v)
			}
		}
	}

	dense, err := linop.NewDense(0, 0, nr, nc, data)
	require.NoError(t, err)
	sparse, err := linop.NewSparse(0, 0, nr, nc, rows, cols, vals)
	require.NoError(t, err)

	dop := initOp(t, dense)
	sop := initOp(t, sparse)

	x := make([]float64, nc)
	for j := range x {
		x[j] = rng.NormFloat64()
	}
	dres, sres := make([]float64, nr), make([]float64, nr)
	require.NoError(t, dop.Eval(dres, x))
	require.NoError(t, sop.Eval(sres, x))
	for i := range dres {
		require.InDelta(t, dres[i], sres[i], 1e-13)
	}

	y := make([]float64, nr)
	for i := range y {
		y[i] = rng.NormFloat64()
	}
	dadj, sadj := make([]float64, nc), make([]float64, nc)
	require.NoError(t, dop.EvalAdjoint(dadj, y))
	require.NoError(t, sop.EvalAdjoint(sadj, y))
	for j := range dadj {
		require.InDelta(t, dadj[j], sadj[j], 1e-13)
	}

	for i := 0; i < nr; i++ {
		require.InDelta(t, dop.RowSum(i, 1), sop.RowSum(i, 1), 1e-13)
		require.InDelta(t, dop.RowSum(i, 2), sop.RowSum(i, 2), 1e-13)
	}
	for j := 0; j < nc; j++ {
		require.InDelta(t, dop.ColSum(j, 1), sop.ColSum(j, 1), 1e-13)
	}
}

func TestSparseDuplicatesSum(t *testing.T) {
	sparse, err := linop.NewSparse(0, 0, 2, 2,
		[]int{0, 0, 1}, []int{1, 1, 0}, []float64{2, 3, 4})
	require.NoError(t, err)
	op := initOp(t, sparse)

	res := make([]float64, 2)
	require.NoError(t, op.Eval(res, []float64{1, 1}))
	require.Equal(t, []float64{5, 4}, res)
}

func TestSparseValidation(t *testing.T) {
	_, err := linop.NewSparse(0, 0, 2, 2, []int{0}, []int{0, 1}, []float64{1, 2})
	require.ErrorIs(t, err, linop.ErrDimensionMismatch)
	_, err = linop.NewSparse(0, 0, 2, 2, []int{2}, []int{0}, []float64{1})
	require.ErrorIs(t, err, linop.ErrInvalidParameter)
	_, err = linop.NewSparse(0, 0, 2, 2, []int{0}, []int{-1}, []float64{1})
	require.ErrorIs(t, err, linop.ErrInvalidParameter)
}
