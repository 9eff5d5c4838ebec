// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doctorwk007/prost/parallel"
	"github.com/doctorwk007/prost/prox"
)

func newElem(t *testing.T, k prox.Kernel, index, size int, diagsteps bool) *prox.ElemOperation {
	t.Helper()
	p, err := prox.NewElemOperation(k, index, size, diagsteps, 0, 0)
	require.NoError(t, err)
	require.NoError(t, p.Initialize(parallel.DefaultConfig()))
	return p
}

func TestElemOperationScalarStep(t *testing.T) {
	p := newElem(t, prox.KernelAbs, 0, 4, false)

	arg := []float64{3, -3, 0.5, -0.5}
	res := make([]float64, 4)
	require.NoError(t, p.Eval(res, arg, nil, 1, false))
	require.Equal(t, []float64{2, -2, 0, 0}, res)
}

func TestElemOperationLocality(t *testing.T) {
	p := newElem(t, prox.KernelIndEq0, 2, 3, false)

	arg := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	res := []float64{-1, -1, -1, -1, -1, -1, -1, -1}
	require.NoError(t, p.Eval(res, arg, nil, 1, false))
	// only [2,5) is written
	require.Equal(t, []float64{-1, -1, 0, 0, 0, -1, -1, -1}, res)
}

func TestElemOperationDiagSteps(t *testing.T) {
	p := newElem(t, prox.KernelAbs, 0, 2, true)

	arg := []float64{10, 10}
	diag := []float64{2, 0.5}
	res := make([]float64, 2)

	// effective steps tau*diag = {8, 2}
	require.NoError(t, p.Eval(res, arg, diag, 4, false))
	require.Equal(t, []float64{2, 8}, res)

	// inverted: tau/diag = {2, 8}
	require.NoError(t, p.Eval(res, arg, diag, 4, true))
	require.Equal(t, []float64{8, 2}, res)
}

func TestElemOperationErrors(t *testing.T) {
	_, err := prox.NewElemOperation(prox.Kernel(99), 0, 4, false, 0, 0)
	require.ErrorIs(t, err, prox.ErrInvalidParameter)
	_, err = prox.NewElemOperation(prox.KernelAbs, -1, 4, false, 0, 0)
	require.ErrorIs(t, err, prox.ErrInvalidParameter)
	_, err = prox.NewElemOperation(prox.KernelAbs, 0, 0, false, 0, 0)
	require.ErrorIs(t, err, prox.ErrInvalidParameter)

	p, err := prox.NewElemOperation(prox.KernelAbs, 0, 4, true, 0, 0)
	require.NoError(t, err)

	res, arg := make([]float64, 4), make([]float64, 4)
	require.ErrorIs(t, p.Eval(res, arg, arg, 1, false), prox.ErrNotInitialized)

	require.NoError(t, p.Initialize(parallel.DefaultConfig()))
	require.ErrorIs(t, p.Eval(res[:3], arg, arg, 1, false), prox.ErrDimensionMismatch)
	require.ErrorIs(t, p.Eval(res[:3], arg[:3], arg, 1, false), prox.ErrDimensionMismatch)
	require.ErrorIs(t, p.Eval(res, arg, arg[:2], 1, false), prox.ErrDimensionMismatch)
	require.ErrorIs(t, p.Eval(res, arg, arg, -1, false), prox.ErrInvalidParameter)

	p.Release()
	require.ErrorIs(t, p.Eval(res, arg, arg, 1, false), prox.ErrNotInitialized)
}

func TestEvaluateOneShot(t *testing.T) {
	p, err := prox.NewElemOperation(prox.KernelIndBox01, 0, 3, false, 0, 0)
	require.NoError(t, err)

	res, err := prox.Evaluate(p, []float64{-1, 0.5, 2}, nil, 1)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0.5, 1}, res)
}
