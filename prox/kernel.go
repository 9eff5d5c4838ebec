// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prox

import "math"

// Kernel identifies a 1-D function h whose proximal map
//
//	𝚙𝚛𝚘𝚡(x₀) = 𝚊𝚛𝚐𝚖𝚒𝚗ₓ h(x) + (1/2𝛕)·(x - x₀)²
//
// has a closed form. The set of kernels is fixed; alpha and beta parameterize
// the shape of h for the kernels that use them.
type Kernel int

const (
	// KernelZero h(x) = 0
	KernelZero Kernel = iota
	// KernelAbs h(x) = |x|
	KernelAbs
	// KernelSquare h(x) = ½x²
	KernelSquare
	// KernelIndLeq0 h(x) = 𝟙{x ≤ 0}
	KernelIndLeq0
	// KernelIndGeq0 h(x) = 𝟙{x ≥ 0}
	KernelIndGeq0
	// KernelIndEq0 h(x) = 𝟙{x = 0}
	KernelIndEq0
	// KernelIndBox01 h(x) = 𝟙{0 ≤ x ≤ 1}
	KernelIndBox01
	// KernelMaxPos0 h(x) = 𝚖𝚊𝚡(x, 0)
	KernelMaxPos0
	// KernelL0 h(x) = 𝛂·𝟙{x ≠ 0}
	KernelL0
	// KernelHuber h(x) = x²/(2𝛂) for |x| ≤ 𝛂, |x| - 𝛂/2 otherwise
	KernelHuber

	numKernels
)

// Valid reports whether k names a known kernel.
func (k Kernel) Valid() bool { return k >= KernelZero && k < numKernels }

func (k Kernel) String() string {
	switch k {
	case KernelZero:
		return "zero"
	case KernelAbs:
		return "abs"
	case KernelSquare:
		return "square"
	case KernelIndLeq0:
		return "ind_leq0"
	case KernelIndGeq0:
		return "ind_geq0"
	case KernelIndEq0:
		return "ind_eq0"
	case KernelIndBox01:
		return "ind_box01"
	case KernelMaxPos0:
		return "max_pos0"
	case KernelL0:
		return "l0"
	case KernelHuber:
		return "huber"
	}
	return "unknown"
}

// Apply evaluates the closed-form minimizer for step size tau.
// The boundary comparisons (≥, ≤ versus strict) are part of the contract.
func (k Kernel) Apply(x0, tau, alpha, beta float64) float64 {
	switch k {
	case KernelZero:
		return x0

	case KernelAbs:
		if x0 >= tau {
			return x0 - tau
		} else if x0 <= -tau {
			return x0 + tau
		}
		return 0

	case KernelSquare:
		return x0 / (1 + tau)

	case KernelIndLeq0:
		if x0 > 0 {
			return 0
		}
		return x0

	case KernelIndGeq0:
		if x0 < 0 {
			return 0
		}
		return x0

	case KernelIndEq0:
		return 0

	case KernelIndBox01:
		if x0 > 1 {
			return 1
		} else if x0 < 0 {
			return 0
		}
		return x0

	case KernelMaxPos0:
		if x0 > tau {
			return x0 - tau
		} else if x0 < 0 {
			return x0
		}
		return 0

	case KernelL0:
		if x0*x0 > 2*tau {
			return x0
		}
		return 0

	case KernelHuber:
		// (x₀/𝛕)/(1 + 𝛂/𝛕) rewritten as x₀/(𝛕 + 𝛂) so the 𝛕 = 0 limit stays finite.
		s := tau + alpha
		if s == 0 {
			return x0
		}
		r := x0 / s
		r /= math.Max(1, math.Abs(r))
		return x0 - tau*r
	}
	return math.NaN()
}
