// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linop

import "fmt"

// Diags is a banded block with constant diagonals: diagonal k places
// factors[k] at every entry (r, r+offsets[k]) inside the block. Finite
// difference stencils and shift operators are the common cases.
type Diags struct {
	geometry
	offsets []int
	factors []float64
}

// NewDiags creates a banded block. offsets[k] is the column shift of
// diagonal k relative to the main diagonal; negative shifts lie below it.
func NewDiags(rowOff, colOff, nrows, ncols int, offsets []int, factors []float64) (*Diags, error) {
	g := geometry{rowOff, colOff, nrows, ncols}
	if err := g.check(); err != nil {
		return nil, err
	}
	if len(offsets) != len(factors) || len(offsets) == 0 {
		return nil, fmt.Errorf("%w: %d offsets for %d factors", ErrDimensionMismatch, len(offsets), len(factors))
	}
	for _, d := range offsets {
		if d <= -nrows || d >= ncols {
			return nil, fmt.Errorf("%w: diagonal offset %d outside %dx%d block", ErrInvalidParameter, d, nrows, ncols)
		}
	}
	return &Diags{geometry: g, offsets: offsets, factors: factors}, nil
}

func (b *Diags) Initialize() error { return nil }

// span returns the row range [lo, hi) on which diagonal d has entries.
func (b *Diags) span(d int) (lo, hi int) {
	return max(0, -d), min(b.nrows, b.ncols-d)
}

func (b *Diags) Apply(dst, src []float64) {
	for k, d := range b.offsets {
		f := b.factors[k]
		lo, hi := b.span(d)
		for r := lo; r < hi; r++ {
			dst[r] += f * src[r+d]
		}
	}
}

func (b *Diags) ApplyAdjoint(dst, src []float64) {
	for k, d := range b.offsets {
		f := b.factors[k]
		lo, hi := b.span(d)
		for r := lo; r < hi; r++ {
			dst[r+d] += f * src[r]
		}
	}
}

func (b *Diags) RowSum(row int, power float64) float64 {
	sum := 0.0
	for k, d := range b.offsets {
		if c := row + d; c >= 0 && c < b.ncols {
			sum += absPow(b.factors[k], power)
		}
	}
	return sum
}

func (b *Diags) ColSum(col int, power float64) float64 {
	sum := 0.0
	for k, d := range b.offsets {
		if r := col - d; r >= 0 && r < b.nrows {
			sum += absPow(b.factors[k], power)
		}
	}
	return sum
}
