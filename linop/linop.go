// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linop implements a block-structured linear operator. An operator is
// an ordered collection of rectangular blocks, each mapping a column range to
// a row range; forward and adjoint application accumulate the contributions of
// all blocks, and per-row/per-column norm queries back diagonal
// preconditioning.
package linop

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/doctorwk007/prost/parallel"
)

// Block is a rectangular sub-map contributing additively into the composite
// operator. Apply and ApplyAdjoint work on the block-local windows: dst and
// src are exactly the block's row-range and column-range subvectors.
type Block interface {
	// RowOffset is the first row covered by the block.
	RowOffset() int
	// ColOffset is the first column covered by the block.
	ColOffset() int
	// NRows is the block's row extent.
	NRows() int
	// NCols is the block's column extent.
	NCols() int

	// Initialize performs block-specific precomputation.
	Initialize() error

	// Apply accumulates dst += B·src with len(dst) = NRows, len(src) = NCols.
	Apply(dst, src []float64)
	// ApplyAdjoint accumulates dst += Bᵗ·src with len(dst) = NCols, len(src) = NRows.
	ApplyAdjoint(dst, src []float64)

	// RowSum returns Σⱼ |Bᵢⱼ|^power for the block-local row i.
	RowSum(row int, power float64) float64
	// ColSum returns Σᵢ |Bᵢⱼ|^power for the block-local column j.
	ColSum(col int, power float64) float64
}

// geometry carries the placement shared by every block kind.
type geometry struct {
	rowOff, colOff int
	nrows, ncols   int
}

func (g geometry) RowOffset() int { return g.rowOff }
func (g geometry) ColOffset() int { return g.colOff }
func (g geometry) NRows() int     { return g.nrows }
func (g geometry) NCols() int     { return g.ncols }

func (g geometry) check() error {
	if g.rowOff < 0 || g.colOff < 0 || g.nrows <= 0 || g.ncols <= 0 {
		return fmt.Errorf("%w: block geometry (%d,%d)+(%dx%d)", ErrInvalidParameter,
			g.rowOff, g.colOff, g.nrows, g.ncols)
	}
	return nil
}

// Operator is an ordered collection of blocks. Blocks are added before
// Initialize; afterwards the operator is read-only and safe for concurrent
// evaluation.
type Operator struct {
	blocks       []Block
	nrows, ncols int
	exec         parallel.Config
	initialized  bool
}

// New creates an empty operator. Its dimensions are the union extents of the
// added blocks, fixed by Initialize.
func New() *Operator { return &Operator{} }

// AddBlock appends a block. Returns an error after Initialize or for
// malformed geometry.
func (op *Operator) AddBlock(b Block) error {
	if op.initialized {
		return fmt.Errorf("%w: operator is already initialized", ErrInvalidParameter)
	}
	if b == nil {
		return fmt.Errorf("%w: nil block", ErrInvalidParameter)
	}
	g := geometry{b.RowOffset(), b.ColOffset(), b.NRows(), b.NCols()}
	if err := g.check(); err != nil {
		return err
	}
	op.blocks = append(op.blocks, b)
	return nil
}

// Initialize fixes the operator dimensions, runs per-block precomputation and
// records the execution context. Repeated calls are no-ops.
func (op *Operator) Initialize(exec parallel.Config) error {
	if op.initialized {
		return nil
	}
	if !exec.Valid() {
		return fmt.Errorf("%w: execution context", ErrInvalidParameter)
	}
	if len(op.blocks) == 0 {
		return fmt.Errorf("%w: operator has no blocks", ErrInvalidParameter)
	}
	for _, b := range op.blocks {
		if err := b.Initialize(); err != nil {
			return err
		}
		op.nrows = max(op.nrows, b.RowOffset()+b.NRows())
		op.ncols = max(op.ncols, b.ColOffset()+b.NCols())
	}
	op.exec = exec
	op.initialized = true
	return nil
}

// NRows is the number of rows of the composite operator.
func (op *Operator) NRows() int { return op.nrows }

// NCols is the number of columns of the composite operator.
func (op *Operator) NCols() int { return op.ncols }

// Eval computes result = K·arg.
func (op *Operator) Eval(result, arg []float64) error {
	return op.eval(result, arg, false)
}

// EvalAdjoint computes result = Kᵗ·arg.
func (op *Operator) EvalAdjoint(result, arg []float64) error {
	return op.eval(result, arg, true)
}

func (op *Operator) eval(result, arg []float64, adjoint bool) error {
	if !op.initialized {
		return ErrNotInitialized
	}
	nin, nout := op.ncols, op.nrows
	if adjoint {
		nin, nout = op.nrows, op.ncols
	}
	if len(arg) != nin {
		return fmt.Errorf("%w: arg length %d, want %d", ErrDimensionMismatch, len(arg), nin)
	}
	if len(result) != nout {
		return fmt.Errorf("%w: result length %d, want %d", ErrDimensionMismatch, len(result), nout)
	}

	clear(result)

	// Every block writes its contribution into a private window; the windows
	// are summed after the group completes. The reduction keeps the
	// accumulation associative without per-element locking.
	partial := make([][]float64, len(op.blocks))
	var g errgroup.Group
	if op.exec.Enabled {
		g.SetLimit(op.exec.NumWorkers)
	} else {
		g.SetLimit(1)
	}
	for i, b := range op.blocks {
		i, b := i, b
		g.Go(func() error {
			if adjoint {
				dst := make([]float64, b.NCols())
				b.ApplyAdjoint(dst, arg[b.RowOffset():b.RowOffset()+b.NRows()])
				partial[i] = dst
			} else {
				dst := make([]float64, b.NRows())
				b.Apply(dst, arg[b.ColOffset():b.ColOffset()+b.NCols()])
				partial[i] = dst
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, b := range op.blocks {
		off := b.RowOffset()
		if adjoint {
			off = b.ColOffset()
		}
		floats.Add(result[off:off+len(partial[i])], partial[i])
	}
	return nil
}

// RowSum returns Σⱼ |Kᵢⱼ|^power for row i, combining block contributions the
// same way forward application does.
func (op *Operator) RowSum(row int, power float64) float64 {
	sum := 0.0
	for _, b := range op.blocks {
		if r := row - b.RowOffset(); r >= 0 && r < b.NRows() {
			sum += b.RowSum(r, power)
		}
	}
	return sum
}

// ColSum returns Σᵢ |Kᵢⱼ|^power for column j.
func (op *Operator) ColSum(col int, power float64) float64 {
	sum := 0.0
	for _, b := range op.blocks {
		if c := col - b.ColOffset(); c >= 0 && c < b.NCols() {
			sum += b.ColSum(c, power)
		}
	}
	return sum
}

// NormEst estimates ‖K‖₂ by power iteration on KᵗK.
func (op *Operator) NormEst(iters int) (float64, error) {
	if !op.initialized {
		return 0, ErrNotInitialized
	}
	v := make([]float64, op.ncols)
	w := make([]float64, op.nrows)
	u := make([]float64, op.ncols)
	for i := range v {
		v[i] = 1
	}
	floats.Scale(1/math.Sqrt(float64(op.ncols)), v)

	s := 0.0
	for it := 0; it < iters; it++ {
		if err := op.Eval(w, v); err != nil {
			return 0, err
		}
		if err := op.EvalAdjoint(u, w); err != nil {
			return 0, err
		}
		s = floats.Norm(u, 2)
		if s == 0 {
			return 0, nil
		}
		copy(v, u)
		floats.Scale(1/s, v)
	}
	return math.Sqrt(s), nil
}

// Evaluate applies op (or its adjoint) to rhs once, returning the image along
// with per-row and per-column absolute sums. Intended for debugging and
// testing outside the solver; the operator is initialized on demand with the
// default execution context.
func Evaluate(op *Operator, rhs []float64, adjoint bool) (res, rowSum, colSum []float64, err error) {
	if err = op.Initialize(parallel.DefaultConfig()); err != nil {
		return nil, nil, nil, err
	}

	if adjoint {
		res = make([]float64, op.NCols())
		err = op.EvalAdjoint(res, rhs)
	} else {
		res = make([]float64, op.NRows())
		err = op.Eval(res, rhs)
	}
	if err != nil {
		return nil, nil, nil, err
	}

	rowSum = make([]float64, op.NRows())
	for i := range rowSum {
		rowSum[i] = op.RowSum(i, 1)
	}
	colSum = make([]float64, op.NCols())
	for j := range colSum {
		colSum[j] = op.ColSum(j, 1)
	}
	return res, rowSum, colSum, nil
}

// absPow computes |v|^power, the summand of the norm queries.
func absPow(v, power float64) float64 {
	switch power {
	case 1:
		return math.Abs(v)
	case 2:
		return v * v
	}
	return math.Pow(math.Abs(v), power)
}
