// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linop

// Identity is a square block c·I mapping coordinate i of its column range to
// coordinate i of its row range.
type Identity struct {
	geometry
	factor float64
}

// NewIdentity creates a scaled identity block of the given size.
func NewIdentity(rowOff, colOff, size int, factor float64) *Identity {
	return &Identity{geometry{rowOff, colOff, size, size}, factor}
}

func (b *Identity) Initialize() error { return b.check() }

func (b *Identity) Apply(dst, src []float64) {
	c := b.factor
	for i := range dst {
		dst[i] += c * src[i]
	}
}

func (b *Identity) ApplyAdjoint(dst, src []float64) {
	c := b.factor
	for i := range dst {
		dst[i] += c * src[i]
	}
}

func (b *Identity) RowSum(row int, power float64) float64 { return absPow(b.factor, power) }
func (b *Identity) ColSum(col int, power float64) float64 { return absPow(b.factor, power) }
