// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linop

import "errors"

var (
	// ErrDimensionMismatch reports a vector length that disagrees with the
	// operator geometry.
	ErrDimensionMismatch = errors.New("linop: dimension mismatch")

	// ErrInvalidParameter reports malformed block geometry or data.
	ErrInvalidParameter = errors.New("linop: invalid parameter")

	// ErrNotInitialized reports an evaluation before Initialize.
	ErrNotInitialized = errors.New("linop: operator not initialized")
)
