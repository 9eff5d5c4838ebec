// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdhg

import (
	"math"

	"github.com/doctorwk007/prost/parallel"
)

// Callback receives intermediate iterates. The slices are snapshots owned by
// the callee.
type Callback func(iter int, x, y []float64)

// StoppingCallback is polled once per iteration boundary; returning true
// stops the solve after the iteration that just completed.
type StoppingCallback func() bool

// Options configures the primal-dual iteration. The zero value of every field
// is honored as given; DefaultOptions supplies the usual starting point.
type Options struct {
	// MaxIterations is the iteration limit. Required.
	MaxIterations int
	// Tolerance is the residual threshold for convergence. Zero disables
	// convergence and runs to MaxIterations.
	Tolerance float64
	// ResidualInterval is the number of iterations between residual checks.
	ResidualInterval int
	// Theta is the extrapolation weight of the over-relaxed primal iterate
	// used in the dual update. Theta = 1 is the standard scheme.
	Theta float64
	// AlphaSplit is the preconditioning power split in [0, 2]: primal steps
	// use column sums with exponent AlphaSplit, dual steps row sums with
	// exponent 2 - AlphaSplit.
	AlphaSplit float64
	// ScalarSteps disables diagonal preconditioning; steps derive from a
	// power-iteration estimate of the operator norm instead.
	ScalarSteps bool
	// Verbose selects a per-check logger when no logger is supplied.
	Verbose bool

	// CallbackInterval is the number of iterations between Callback
	// invocations; zero disables them.
	CallbackInterval int
	// Callback receives intermediate iterates.
	Callback Callback
	// Stopping is polled at every iteration boundary.
	Stopping StoppingCallback

	// Exec is the execution context threaded through all operators.
	// The zero value selects parallel.DefaultConfig.
	Exec parallel.Config
}

// DefaultOptions returns the usual solver configuration.
func DefaultOptions() Options {
	return Options{
		MaxIterations:    1000,
		Tolerance:        1e-6,
		ResidualInterval: 10,
		Theta:            1,
		AlphaSplit:       1,
		Exec:             parallel.DefaultConfig(),
	}
}

func (o *Options) validate() error {
	var zero parallel.Config
	if o.Exec == zero {
		o.Exec = parallel.DefaultConfig()
	}
	if o.ResidualInterval == 0 {
		o.ResidualInterval = 1
	}

	switch {
	case o.MaxIterations <= 0:
		return errInvalid("max iterations must greater than 0")
	case o.Tolerance < 0 || math.IsNaN(o.Tolerance):
		return errInvalid("tolerance must not less than 0")
	case o.ResidualInterval < 0:
		return errInvalid("residual interval must not less than 0")
	case o.Theta < 0 || o.Theta > 1:
		return errInvalid("extrapolation weight must lie in [0,1]")
	case o.AlphaSplit < 0 || o.AlphaSplit > 2:
		return errInvalid("preconditioning power split must lie in [0,2]")
	case o.CallbackInterval < 0:
		return errInvalid("callback interval must not less than 0")
	case !o.Exec.Valid():
		return errUnavailable("invalid worker configuration")
	}
	return nil
}
