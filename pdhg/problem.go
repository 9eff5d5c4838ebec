// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pdhg solves min f(Kx) + g(x) with the primal-dual hybrid gradient
// method. A Problem aggregates the linear operator K, a separable proximal
// partition for g over the primal coordinates and one for the conjugate f*
// over the dual coordinates; a Solver created from it owns the iterates and
// runs the preconditioned iteration.
package pdhg

import (
	"fmt"
	"slices"

	"github.com/doctorwk007/prost/linop"
	"github.com/doctorwk007/prost/prox"
)

// Problem aggregates the operator and the two proximal partitions. The primal
// partition must cover [0, ncols) and the dual partition [0, nrows), each
// with disjoint contiguous ranges.
type Problem struct {
	op     *linop.Operator
	primal []prox.Operator
	dual   []prox.Operator
}

// NewProblem assembles a problem. The partition invariants are checked
// against the operator dimensions when a solver is initialized, since the
// operator fixes its dimensions only then.
func NewProblem(op *linop.Operator, primal, dual []prox.Operator) (*Problem, error) {
	switch {
	case op == nil:
		return nil, errInvalid("nil linear operator")
	case len(primal) == 0:
		return nil, errInvalid("empty primal prox partition")
	case len(dual) == 0:
		return nil, errInvalid("empty dual prox partition")
	}
	for _, p := range primal {
		if p == nil {
			return nil, errInvalid("nil primal prox operator")
		}
	}
	for _, p := range dual {
		if p == nil {
			return nil, errInvalid("nil dual prox operator")
		}
	}
	return &Problem{
		op:     op,
		primal: sortByIndex(primal),
		dual:   sortByIndex(dual),
	}, nil
}

func sortByIndex(ops []prox.Operator) []prox.Operator {
	s := slices.Clone(ops)
	slices.SortFunc(s, func(a, b prox.Operator) int { return a.Index() - b.Index() })
	return s
}

// checkPartition verifies that ops partition [0, n) into disjoint contiguous
// ranges. ops must be sorted by index.
func checkPartition(ops []prox.Operator, n int, kind string) error {
	next := 0
	for _, p := range ops {
		switch {
		case p.Index() > next:
			return fmt.Errorf("%w: %s coordinates [%d,%d) are unowned", ErrDimensionMismatch, kind, next, p.Index())
		case p.Index() < next:
			return fmt.Errorf("%w: %s coordinate %d is owned twice", ErrDimensionMismatch, kind, p.Index())
		}
		next += p.Size()
	}
	if next != n {
		return fmt.Errorf("%w: %s partition covers [0,%d), operator wants [0,%d)", ErrDimensionMismatch, kind, next, n)
	}
	return nil
}
