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

func TestPermuteIdentity(t *testing.T) {
	inner, err := prox.NewElemOperation(prox.KernelAbs, 0, 4, false, 0, 0)
	require.NoError(t, err)
	p, err := prox.NewPermute(inner, []int{0, 1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, p.Initialize(parallel.DefaultConfig()))
	defer p.Release()

	arg := []float64{3, -3, 0.5, -0.5}
	res := make([]float64, 4)
	require.NoError(t, p.Eval(res, arg, nil, 1, false))
	require.Equal(t, []float64{2, -2, 0, 0}, res)
}

// A separable elementwise inner operator commutes with any permutation, so a
// reversal must reproduce the plain result including per-coordinate steps.
func TestPermuteReversal(t *testing.T) {
	inner, err := prox.NewElemOperation(prox.KernelAbs, 0, 4, true, 0, 0)
	require.NoError(t, err)
	reversed, err := prox.NewPermute(inner, []int{3, 2, 1, 0})
	require.NoError(t, err)
	require.NoError(t, reversed.Initialize(parallel.DefaultConfig()))
	defer reversed.Release()

	plain, err := prox.NewElemOperation(prox.KernelAbs, 0, 4, true, 0, 0)
	require.NoError(t, err)
	require.NoError(t, plain.Initialize(parallel.DefaultConfig()))
	defer plain.Release()

	arg := []float64{10, -10, 2, -2}
	diag := []float64{1, 2, 3, 4}

	got := make([]float64, 4)
	want := make([]float64, 4)
	require.NoError(t, reversed.Eval(got, arg, diag, 1, false))
	require.NoError(t, plain.Eval(want, arg, diag, 1, false))
	require.Equal(t, want, got)
}

func TestPermuteValidation(t *testing.T) {
	inner, err := prox.NewElemOperation(prox.KernelAbs, 0, 3, false, 0, 0)
	require.NoError(t, err)

	_, err = prox.NewPermute(inner, []int{0, 1})
	require.ErrorIs(t, err, prox.ErrDimensionMismatch)
	_, err = prox.NewPermute(inner, []int{0, 1, 1})
	require.ErrorIs(t, err, prox.ErrInvalidParameter)
	_, err = prox.NewPermute(inner, []int{0, 1, 3})
	require.ErrorIs(t, err, prox.ErrInvalidParameter)
	_, err = prox.NewPermute(nil, []int{0})
	require.ErrorIs(t, err, prox.ErrInvalidParameter)
}
