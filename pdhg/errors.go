// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdhg

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch reports prox partitions or vectors that disagree
	// with the operator dimensions.
	ErrDimensionMismatch = errors.New("pdhg: dimension mismatch")

	// ErrInvalidParameter reports malformed options or problem structure.
	ErrInvalidParameter = errors.New("pdhg: invalid parameter")

	// ErrNotInitialized reports Solve on a solver that is not ready.
	ErrNotInitialized = errors.New("pdhg: solver not initialized")

	// ErrUnavailable reports an execution context whose worker pool cannot
	// be used.
	ErrUnavailable = errors.New("pdhg: execution context unavailable")
)

func errInvalid(msg string) error { return fmt.Errorf("%w: %s", ErrInvalidParameter, msg) }

func errUnavailable(msg string) error { return fmt.Errorf("%w: %s", ErrUnavailable, msg) }
