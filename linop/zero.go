// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linop

// Zero is an all-zero block. It contributes nothing but extends the operator
// geometry, padding rows or columns no other block covers.
type Zero struct {
	geometry
}

// NewZero creates a zero block of the given placement and extent.
func NewZero(rowOff, colOff, nrows, ncols int) *Zero {
	return &Zero{geometry{rowOff, colOff, nrows, ncols}}
}

func (z *Zero) Initialize() error { return z.check() }

func (z *Zero) Apply(dst, src []float64)        {}
func (z *Zero) ApplyAdjoint(dst, src []float64) {}

func (z *Zero) RowSum(row int, power float64) float64 { return 0 }
func (z *Zero) ColSum(col int, power float64) float64 { return 0 }
