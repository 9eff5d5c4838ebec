// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"fmt"

	"github.com/doctorwk007/prost/parallel"
)

// Moreau computes the proximal map of the Fenchel conjugate f* from the
// proximal map of f via the Moreau decomposition
//
//	𝚙𝚛𝚘𝚡_{𝛕f*}(x) = x - 𝛕·𝚙𝚛𝚘𝚡_{f/𝛕}(x/𝛕).
//
// The decorator owns its scratch buffers and talks to the inner operator only
// through its public Eval contract.
type Moreau struct {
	inner Operator

	scratch     []float64
	scratchRes  []float64
	exec        parallel.Config
	initialized bool
}

// NewMoreau wraps inner with its Moreau conjugate.
func NewMoreau(inner Operator) (*Moreau, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: nil inner operator", ErrInvalidParameter)
	}
	return &Moreau{inner: inner}, nil
}

func (p *Moreau) Index() int      { return p.inner.Index() }
func (p *Moreau) Size() int       { return p.inner.Size() }
func (p *Moreau) DiagSteps() bool { return p.inner.DiagSteps() }

// Initialize allocates scratch space and initializes the inner operator.
func (p *Moreau) Initialize(exec parallel.Config) error {
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
func (p *Moreau) Release() {
	p.scratch, p.scratchRes = nil, nil
	p.initialized = false
	p.inner.Release()
}

func (p *Moreau) ready() bool { return p.initialized }

// Eval applies the conjugate proximal map. The step size must be positive
// since the decomposition divides by it.
func (p *Moreau) Eval(result, arg, tauDiag []float64, tau float64, invertTau bool) error {
	if err := checkEval(p, result, arg, tauDiag, tau); err != nil {
		return err
	}
	if tau == 0 {
		return fmt.Errorf("%w: conjugate prox requires a positive step", ErrInvalidParameter)
	}

	lo, n := p.inner.Index(), p.inner.Size()
	diag := p.DiagSteps()

	// scratch = arg scaled by the inverse effective step
	parallel.For(n, p.exec, func(i int) {
		t := tau
		if diag {
			if invertTau {
				t = tau / tauDiag[lo+i]
			} else {
				t = tau * tauDiag[lo+i]
			}
		}
		p.scratch[lo+i] = arg[lo+i] / t
	})

	// The inner step must be the reciprocal of the effective step, which the
	// scalar inverse combined with the flipped diagonal flag yields exactly.
	if err := p.inner.Eval(p.scratchRes, p.scratch, tauDiag, 1/tau, !invertTau); err != nil {
		return err
	}

	parallel.For(n, p.exec, func(i int) {
		t := tau
		if diag {
			if invertTau {
				t = tau / tauDiag[lo+i]
			} else {
				t = tau * tauDiag[lo+i]
			}
		}
		result[lo+i] = arg[lo+i] - t*p.scratchRes[lo+i]
	})
	return nil
}
