// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linop_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doctorwk007/prost/linop"
)

// Forward difference stencil [-1, +1] as a (n-1)xn banded block.
func TestDiagsForwardDifference(t *testing.T) {
	d, err := linop.NewDiags(0, 0, 3, 4, []int{0, 1}, []float64{-1, 1})
	require.NoError(t, err)
	op := initOp(t, d)

	res := make([]float64, 3)
	require.NoError(t, op.Eval(res, []float64{1, 3, 6, 10}))
	require.Equal(t, []float64{2, 3, 4}, res)

	// adjoint is the negative backward difference
	adj := make([]float64, 4)
	require.NoError(t, op.EvalAdjoint(adj, []float64{1, 1, 1}))
	require.Equal(t, []float64{-1, 0, 0, 1}, adj)

	// every row has both stencil entries, interior columns both as well
	require.Equal(t, 2.0, op.RowSum(0, 1))
	require.Equal(t, 1.0, op.ColSum(0, 1))
	require.Equal(t, 2.0, op.ColSum(1, 1))
	require.Equal(t, 1.0, op.ColSum(3, 1))
}

func TestDiagsSubdiagonal(t *testing.T) {
	d, err := linop.NewDiags(0, 0, 4, 4, []int{-1}, []float64{2})
	require.NoError(t, err)
	op := initOp(t, d)

	res := make([]float64, 4)
	require.NoError(t, op.Eval(res, []float64{1, 2, 3, 4}))
	require.Equal(t, []float64{0, 2, 4, 6}, res)

	require.Equal(t, 0.0, op.RowSum(0, 1))
	require.Equal(t, 2.0, op.RowSum(3, 1))
	require.Equal(t, 2.0, op.ColSum(0, 1))
	require.Equal(t, 0.0, op.ColSum(3, 1))
}

func TestDiagsValidation(t *testing.T) {
	_, err := linop.NewDiags(0, 0, 3, 3, []int{0, 1}, []float64{1})
	require.ErrorIs(t, err, linop.ErrDimensionMismatch)
	_, err = linop.NewDiags(0, 0, 3, 3, nil, nil)
	require.ErrorIs(t, err, linop.ErrDimensionMismatch)
	_, err = linop.NewDiags(0, 0, 3, 3, []int{3}, []float64{1})
	require.ErrorIs(t, err, linop.ErrInvalidParameter)
	_, err = linop.NewDiags(0, 0, 3, 3, []int{-3}, []float64{1})
	require.ErrorIs(t, err, linop.ErrInvalidParameter)
}
