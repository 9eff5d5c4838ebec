// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import "github.com/doctorwk007/prost/parallel"

// Evaluate runs a single proximal evaluation outside any solver, bracketing
// it with Initialize and Release. Intended for debugging and testing.
//
// arg must cover the operator's range; tauDiag may be nil when the operator
// does not take diagonal steps.
func Evaluate(op Operator, arg, tauDiag []float64, tau float64) ([]float64, error) {
	if err := op.Initialize(parallel.DefaultConfig()); err != nil {
		return nil, err
	}
	defer op.Release()

	result := make([]float64, len(arg))
	copy(result, arg)
	if err := op.Eval(result, arg, tauDiag, tau, false); err != nil {
		return nil, err
	}
	return result, nil
}
