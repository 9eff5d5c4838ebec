// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import (
	"fmt"
	"slices"

	"github.com/doctorwk007/prost/parallel"
)

// Permute applies the inner operator to a coordinate-permuted view of the
// input and un-permutes the result. The permutation is a fixed bijection over
// [0, Size) supplied at construction.
type Permute struct {
	inner Operator
	perm  []int

	scratchArg  []float64
	scratchTau  []float64
	scratchRes  []float64
	exec        parallel.Config
	initialized bool
}

// NewPermute wraps inner with the permutation perm.
func NewPermute(inner Operator, perm []int) (*Permute, error) {
	if inner == nil {
		return nil, fmt.Errorf("%w: nil inner operator", ErrInvalidParameter)
	}
	if len(perm) != inner.Size() {
		return nil, fmt.Errorf("%w: permutation length %d, operator size %d", ErrDimensionMismatch, len(perm), inner.Size())
	}
	seen := make([]bool, len(perm))
	for _, j := range perm {
		if j < 0 || j >= len(perm) || seen[j] {
			return nil, fmt.Errorf("%w: permutation is not a bijection over [0,%d)", ErrInvalidParameter, len(perm))
		}
		seen[j] = true
	}
	return &Permute{inner: inner, perm: slices.Clone(perm)}, nil
}

func (p *Permute) Index() int      { return p.inner.Index() }
func (p *Permute) Size() int       { return p.inner.Size() }
func (p *Permute) DiagSteps() bool { return p.inner.DiagSteps() }

// Initialize allocates scratch space and initializes the inner operator.
func (p *Permute) Initialize(exec parallel.Config) error {
	if err := p.inner.Initialize(exec); err != nil {
		return err
	}
	end := p.inner.Index() + p.inner.Size()
	p.scratchArg = make([]float64, end)
	p.scratchRes = make([]float64, end)
	if p.DiagSteps() {
		p.scratchTau = make([]float64, end)
	}
	p.exec = exec
	p.initialized = true
	return nil
}

// Release frees the scratch space and releases the inner operator.
func (p *Permute) Release() {
	p.scratchArg, p.scratchTau, p.scratchRes = nil, nil, nil
	p.initialized = false
	p.inner.Release()
}

func (p *Permute) ready() bool { return p.initialized }

// Eval evaluates the inner operator on the permuted argument and step sizes,
// then scatters the result back through the inverse permutation.
func (p *Permute) Eval(result, arg, tauDiag []float64, tau float64, invertTau bool) error {
	if err := checkEval(p, result, arg, tauDiag, tau); err != nil {
		return err
	}

	lo, n := p.inner.Index(), p.inner.Size()
	diag := p.DiagSteps()

	parallel.For(n, p.exec, func(i int) {
		p.scratchArg[lo+i] = arg[lo+p.perm[i]]
		if diag {
			p.scratchTau[lo+i] = tauDiag[lo+p.perm[i]]
		}
	})

	if err := p.inner.Eval(p.scratchRes, p.scratchArg, p.scratchTau, tau, invertTau); err != nil {
		return err
	}

	parallel.For(n, p.exec, func(i int) {
		result[lo+p.perm[i]] = p.scratchRes[lo+i]
	})
	return nil
}
