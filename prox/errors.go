// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import "errors"

var (
	// ErrDimensionMismatch reports vector lengths that disagree with the
	// operator's coordinate range.
	ErrDimensionMismatch = errors.New("prox: dimension mismatch")

	// ErrInvalidParameter reports a malformed construction or step-size argument.
	ErrInvalidParameter = errors.New("prox: invalid parameter")

	// ErrNotInitialized reports an Eval before Initialize.
	ErrNotInitialized = errors.New("prox: operator not initialized")
)
