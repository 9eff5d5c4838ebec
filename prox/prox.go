// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prox implements proximal operators over contiguous coordinate ranges
// of a shared vector, built from closed-form scalar kernels and composable
// decorators (Moreau conjugation, permutation, affine transform).
package prox

import (
	"fmt"
	"math"

	"github.com/doctorwk007/prost/parallel"
)

// Operator evaluates a proximal map over the coordinate range
// [Index, Index+Size) of a shared vector. Coordinates outside the range are
// never read or written, so disjoint operators compose safely in parallel.
//
// Initialize must be called once before Eval; after that the operator is
// read-only and safe for concurrent Eval calls.
type Operator interface {
	// Index is the start offset of the operator's range.
	Index() int
	// Size is the extent of the operator's range.
	Size() int
	// DiagSteps reports whether the operator accepts per-coordinate step sizes.
	DiagSteps() bool

	// Initialize prepares the operator for repeated Eval calls using the
	// given execution context.
	Initialize(exec parallel.Config) error
	// Release frees any setup state. Safe to call multiple times.
	Release()

	// Eval writes the proximal map of arg into result.
	//
	// result, arg and (when DiagSteps) tauDiag must share one length of at
	// least Index+Size. The effective step for coordinate i is tau when
	// DiagSteps is false, tau·tauDiag[i] when true, and tau/tauDiag[i] when
	// additionally invertTau is set.
	Eval(result, arg, tauDiag []float64, tau float64, invertTau bool) error
}

// ElemOperation applies a scalar kernel independently to every coordinate of
// its range. Kernel parameters alpha and beta are fixed at construction.
type ElemOperation struct {
	index, size int
	diagsteps   bool
	kernel      Kernel
	alpha, beta float64

	exec        parallel.Config
	initialized bool
}

// NewElemOperation creates an elementwise proximal operator for the given
// kernel over [index, index+size).
func NewElemOperation(kernel Kernel, index, size int, diagsteps bool, alpha, beta float64) (*ElemOperation, error) {
	switch {
	case !kernel.Valid():
		return nil, fmt.Errorf("%w: unknown kernel %d", ErrInvalidParameter, kernel)
	case index < 0:
		return nil, fmt.Errorf("%w: negative index %d", ErrInvalidParameter, index)
	case size <= 0:
		return nil, fmt.Errorf("%w: size %d must be positive", ErrInvalidParameter, size)
	}
	return &ElemOperation{
		index: index, size: size,
		diagsteps: diagsteps,
		kernel:    kernel,
		alpha:     alpha, beta: beta,
	}, nil
}

func (p *ElemOperation) Index() int      { return p.index }
func (p *ElemOperation) Size() int       { return p.size }
func (p *ElemOperation) DiagSteps() bool { return p.diagsteps }

// Initialize records the execution context. Repeated calls are allowed.
func (p *ElemOperation) Initialize(exec parallel.Config) error {
	if !exec.Valid() {
		return fmt.Errorf("%w: execution context", ErrInvalidParameter)
	}
	p.exec = exec
	p.initialized = true
	return nil
}

// Release clears the setup state.
func (p *ElemOperation) Release() { p.initialized = false }

// Eval applies the kernel to every coordinate of the range.
func (p *ElemOperation) Eval(result, arg, tauDiag []float64, tau float64, invertTau bool) error {
	if err := checkEval(p, result, arg, tauDiag, tau); err != nil {
		return err
	}

	k, a, b := p.kernel, p.alpha, p.beta
	lo := p.index
	if p.diagsteps {
		parallel.For(p.size, p.exec, func(i int) {
			t := tau * tauDiag[lo+i]
			if invertTau {
				t = tau / tauDiag[lo+i]
			}
			result[lo+i] = k.Apply(arg[lo+i], t, a, b)
		})
	} else {
		parallel.For(p.size, p.exec, func(i int) {
			result[lo+i] = k.Apply(arg[lo+i], tau, a, b)
		})
	}
	return nil
}

type initialized interface {
	ready() bool
}

func (p *ElemOperation) ready() bool { return p.initialized }

// checkEval validates the common Eval contract for op.
func checkEval(op Operator, result, arg, tauDiag []float64, tau float64) error {
	if in, ok := op.(initialized); ok && !in.ready() {
		return ErrNotInitialized
	}
	end := op.Index() + op.Size()
	switch {
	case len(result) != len(arg):
		return fmt.Errorf("%w: result length %d, arg length %d", ErrDimensionMismatch, len(result), len(arg))
	case len(arg) < end:
		return fmt.Errorf("%w: arg length %d does not cover range end %d", ErrDimensionMismatch, len(arg), end)
	case op.DiagSteps() && len(tauDiag) < end:
		return fmt.Errorf("%w: tauDiag length %d does not cover range end %d", ErrDimensionMismatch, len(tauDiag), end)
	case tau < 0 || math.IsNaN(tau):
		return fmt.Errorf("%w: step size %v", ErrInvalidParameter, tau)
	}
	return nil
}
