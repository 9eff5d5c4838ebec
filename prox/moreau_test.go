// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/doctorwk007/prost/parallel"
	"github.com/doctorwk007/prost/prox"
)

// The conjugate of |x| is the indicator of [-1,1]; its prox is the clamp to
// [-1,1] for every step size.
func TestMoreauConjugateOfAbs(t *testing.T) {
	inner, err := prox.NewElemOperation(prox.KernelAbs, 0, 5, false, 0, 0)
	require.NoError(t, err)
	m, err := prox.NewMoreau(inner)
	require.NoError(t, err)
	require.NoError(t, m.Initialize(parallel.DefaultConfig()))
	defer m.Release()

	arg := []float64{-3, -0.5, 0, 0.7, 4}
	want := []float64{-1, -0.5, 0, 0.7, 1}
	res := make([]float64, 5)
	for _, tau := range []float64{0.1, 1, 7.5} {
		require.NoError(t, m.Eval(res, arg, nil, tau, false))
		for i := range want {
			require.InDelta(t, want[i], res[i], 1e-14, "tau=%v i=%d", tau, i)
		}
	}
}

// Moreau decomposition: prox_{tau·f}(x) + tau·prox_{f*/tau}(x/tau) == x.
func TestMoreauDecomposition(t *testing.T) {
	const n = 32
	rng := rand.New(rand.NewSource(1))

	for _, kernel := range []prox.Kernel{prox.KernelAbs, prox.KernelSquare, prox.KernelMaxPos0} {
		inner, err := prox.NewElemOperation(kernel, 0, n, false, 0, 0)
		require.NoError(t, err)
		require.NoError(t, inner.Initialize(parallel.DefaultConfig()))

		conj, err := prox.NewMoreau(inner)
		require.NoError(t, err)
		require.NoError(t, conj.Initialize(parallel.DefaultConfig()))

		for _, tau := range []float64{0.25, 1, 3} {
			x := make([]float64, n)
			scaled := make([]float64, n)
			for i := range x {
				x[i] = rng.NormFloat64() * 5
				scaled[i] = x[i] / tau
			}

			direct := make([]float64, n)
			require.NoError(t, inner.Eval(direct, x, nil, tau, false))

			viaConj := make([]float64, n)
			require.NoError(t, conj.Eval(viaConj, scaled, nil, 1/tau, false))

			for i := range x {
				require.InDelta(t, x[i], direct[i]+tau*viaConj[i], 1e-12,
					"kernel %v tau=%v i=%d", kernel, tau, i)
			}
		}
		conj.Release()
	}
}

func TestMoreauDiagSteps(t *testing.T) {
	inner, err := prox.NewElemOperation(prox.KernelAbs, 0, 3, true, 0, 0)
	require.NoError(t, err)
	m, err := prox.NewMoreau(inner)
	require.NoError(t, err)
	require.True(t, m.DiagSteps())
	require.NoError(t, m.Initialize(parallel.DefaultConfig()))
	defer m.Release()

	// clamp to [-1,1] must hold for per-coordinate steps too
	arg := []float64{-4, 0.3, 2}
	diag := []float64{0.5, 2, 4}
	res := make([]float64, 3)
	require.NoError(t, m.Eval(res, arg, diag, 1.5, false))
	require.InDelta(t, -1, res[0], 1e-14)
	require.InDelta(t, 0.3, res[1], 1e-14)
	require.InDelta(t, 1, res[2], 1e-14)
}

func TestMoreauZeroStep(t *testing.T) {
	inner, err := prox.NewElemOperation(prox.KernelAbs, 0, 2, false, 0, 0)
	require.NoError(t, err)
	m, err := prox.NewMoreau(inner)
	require.NoError(t, err)
	require.NoError(t, m.Initialize(parallel.DefaultConfig()))
	defer m.Release()

	res := make([]float64, 2)
	require.ErrorIs(t, m.Eval(res, []float64{1, 2}, nil, 0, false), prox.ErrInvalidParameter)
}
