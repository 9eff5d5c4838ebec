// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"fmt"

	"github.com/doctorwk007/prost/parallel"
)

// Transform computes the proximal map of h(a·x + b) from the proximal map
// of h via
//
//	𝚙𝚛𝚘𝚡_{𝛕·h(a·+b)}(x₀) = (𝚙𝚛𝚘𝚡_{𝛕a²·h}(a·x₀ + b) - b) / a.
//
// The scale a may carry either sign but must be nonzero.
type Transform struct {
	inner Operator
	a, b  float64

	scratch     []float64
	scratchRes  []float64
	exec        parallel.Config
	initialized bool
}

// NewTransform wraps inner with the affine pre-composition x ↦ a·x + b.
func NewTransform(inner Operator, a, b float64) (*Transform, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: nil inner operator", ErrInvalidParameter)
	}
	if a == 0 {
		return nil, fmt.Errorf("%w: zero scale in affine transform", ErrInvalidParameter)
	}
	return &Transform{inner: inner, a: a, b: b}, nil
}

func (p *Transform) Index() int      { return p.inner.Index() }
func (p *Transform) Size() int       { return p.inner.Size() }
func (p *Transform) DiagSteps() bool { return p.inner.DiagSteps() }

// Initialize allocates scratch space and initializes the inner operator.
func (p *Transform) Initialize(exec parallel.Config) error {
	if err := p.inner.Initialize(exec); err != nil {
		return err
	}
	end := p.inner.Index() + p.inner.Size()
	p.scratch = make([]float64, end)
	p.scratchRes = make([]float64, end)
	p.exec = exec
	p.initialized = true
	return nil
}

// Release frees the scratch space and releases the inner operator.
func (p *Transform) Release() {
	p.scratch, p.scratchRes = nil, nil
	p.initialized = false
	p.inner.Release()
}

func (p *Transform) ready() bool { return p.initialized }

// Eval shifts and scales the argument, evaluates the inner operator with the
// step rescaled by a², and inverts the transform on the result.
func (p *Transform) Eval(result, arg, tauDiag []float64, tau float64, invertTau bool) error {
	if err := checkEval(p, result, arg, tauDiag, tau); err != nil {
		return err
	}

	lo, n := p.inner.Index(), p.inner.Size()
	a, b := p.a, p.b

	parallel.For(n, p.exec, func(i int) {
		p.scratch[lo+i] = a*arg[lo+i] + b
	})

	// Scaling the scalar part of the step by a² leaves the diagonal part and
	// its inversion untouched.
	if err := p.inner.Eval(p.scratchRes, p.scratch, tauDiag, tau*a*a, invertTau); err != nil {
		return err
	}

	parallel.For(n, p.exec, func(i int) {
		result[lo+i] = (p.scratchRes[lo+i] - b) / a
	})
	return nil
}
