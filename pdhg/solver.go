// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdhg

import (
	"context"
	"fmt"
	"math"
	"os"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/doctorwk007/prost/parallel"
	"github.com/doctorwk007/prost/prox"
)

// State is the solver lifecycle state.
type State int

const (
	Uninitialized State = iota
	Ready
	Running
	Converged
	StoppedMaxIters
	StoppedUser
	Released
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Ready:
		return "ready"
	case Running:
		return "running"
	case Converged:
		return "converged"
	case StoppedMaxIters:
		return "stopped: reached maximum iterations"
	case StoppedUser:
		return "stopped: by user"
	case Released:
		return "released"
	}
	return "unknown"
}

// Summary contains a summary of the solve.
type Summary struct {
	NumIter        int           // Number of completed iterations.
	PrimalResidual float64       // Last primal residual computed.
	DualResidual   float64       // Last dual residual computed.
	RunTime        time.Duration // Wall time spent in Solve.
}

// Result contains the final iterates of the solve.
type Result struct {
	X      []float64 // Primal solution, length ncols.
	Y      []float64 // Dual solution, length nrows.
	KX     []float64 // Primal constraint image K·x, length nrows.
	KTY    []float64 // Dual constraint image Kᵗ·y, length ncols.
	Status State     // Terminal state.
	Summary
}

// iterations of power iteration behind scalar step sizes
const normEstIters = 50

// Solver owns the iterate state of one primal-dual solve. Iterate buffers are
// never aliased outside the solver; the problem's operators are used
// read-only once initialized.
type Solver struct {
	prb    *Problem
	opts   Options
	logger Logger
	state  State

	nrows, ncols int

	x, xPrev, xBar []float64 // primal iterates
	y, yPrev       []float64 // dual iterates
	tmpN, tmpM     []float64 // prox arguments, length ncols / nrows
	tau, sigma     []float64 // diagonal step sizes

	iter               int
	resPrimal, resDual float64
}

// New creates a solver for the problem. A nil logger selects a quiet one, or
// a per-check logger when opts.Verbose is set.
func (p *Problem) New(opts Options, logger *Logger) (*Solver, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = &Logger{Level: LogNoop}
		if opts.Verbose {
			logger.Level = LogIter
		}
	}
	if logger.Msg == nil {
		logger.Msg = os.Stdout
	}
	return &Solver{prb: p, opts: opts, logger: *logger, state: Uninitialized}, nil
}

// State returns the current lifecycle state.
func (s *Solver) State() State { return s.state }

// Initialize fixes the operator dimensions, validates the prox partitions,
// allocates the iterate buffers and computes the step-size preconditioners.
// Transitions Uninitialized → Ready; calling it on a Ready solver is a no-op.
func (s *Solver) Initialize() error {
	switch s.state {
	case Ready:
		return nil
	case Uninitialized:
	default:
		return fmt.Errorf("%w: initialize in state %q", ErrNotInitialized, s.state)
	}

	op := s.prb.op
	if err := op.Initialize(s.opts.Exec); err != nil {
		return err
	}
	s.nrows, s.ncols = op.NRows(), op.NCols()

	if err := checkPartition(s.prb.primal, s.ncols, "primal"); err != nil {
		return err
	}
	if err := checkPartition(s.prb.dual, s.nrows, "dual"); err != nil {
		return err
	}
	for _, p := range s.prb.primal {
		if err := p.Initialize(s.opts.Exec); err != nil {
			return err
		}
	}
	for _, p := range s.prb.dual {
		if err := p.Initialize(s.opts.Exec); err != nil {
			return err
		}
	}

	n, m := s.ncols, s.nrows
	s.x, s.xPrev, s.xBar = make([]float64, n), make([]float64, n), make([]float64, n)
	s.y, s.yPrev = make([]float64, m), make([]float64, m)
	s.tmpN, s.tmpM = make([]float64, n), make([]float64, m)

	if err := s.precondition(); err != nil {
		return err
	}

	s.state = Ready
	return nil
}

// precondition fills the diagonal step sizes. In diagonal mode
//
//	𝛕ⱼ = 1 / Σᵢ |Kᵢⱼ|^𝛂     𝛔ᵢ = 1 / Σⱼ |Kᵢⱼ|^(2-𝛂)
//
// with empty rows or columns falling back to step 1. Operators that take only
// a scalar step get the mean of the diagonal over their range, applied to the
// gradient step as well so the prox and its argument agree.
func (s *Solver) precondition() error {
	op := s.prb.op
	s.tau = make([]float64, s.ncols)
	s.sigma = make([]float64, s.nrows)

	if s.opts.ScalarSteps {
		est, err := op.NormEst(normEstIters)
		if err != nil {
			return err
		}
		step := 1.0
		if est > 0 {
			step = 1 / est
		}
		for j := range s.tau {
			s.tau[j] = step
		}
		for i := range s.sigma {
			s.sigma[i] = step
		}
		return nil
	}

	alpha := s.opts.AlphaSplit
	for j := range s.tau {
		s.tau[j] = 1
		if c := op.ColSum(j, alpha); c > 0 {
			s.tau[j] = 1 / c
		}
	}
	for i := range s.sigma {
		s.sigma[i] = 1
		if r := op.RowSum(i, 2-alpha); r > 0 {
			s.sigma[i] = 1 / r
		}
	}
	flattenScalarRanges(s.prb.primal, s.tau)
	flattenScalarRanges(s.prb.dual, s.sigma)
	return nil
}

// flattenScalarRanges averages diag over the range of every operator that
// cannot take per-coordinate steps.
func flattenScalarRanges(ops []prox.Operator, diag []float64) {
	for _, p := range ops {
		if p.DiagSteps() {
			continue
		}
		lo, hi := p.Index(), p.Index()+p.Size()
		mean := floats.Sum(diag[lo:hi]) / float64(hi-lo)
		for j := lo; j < hi; j++ {
			diag[j] = mean
		}
	}
}

// Solve runs the primal-dual iteration until convergence, the iteration
// limit, context cancellation or the stopping callback. Cancellation is
// checked only at iteration boundaries; the in-flight iteration always
// completes and its iterate is the one reported.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	if s.state != Ready {
		return nil, fmt.Errorf("%w: solve in state %q", ErrNotInitialized, s.state)
	}
	s.state = Running

	op, o := s.prb.op, &s.opts
	exec := o.Exec
	n, m := s.ncols, s.nrows
	log := s.logger

	if log.enable(LogIter) {
		mode := "diagonal"
		if o.ScalarSteps {
			mode = "scalar"
		}
		log.log("PDHG: %d rows, %d cols, %s steps, tol %.1e, max %d iterations\n",
			m, n, mode, o.Tolerance, o.MaxIterations)
	}

	start := time.Now()
	status := StoppedMaxIters
	for it := 1; it <= o.MaxIterations; it++ {
		s.iter = it

		// x = 𝚙𝚛𝚘𝚡_{𝛕g}(x - 𝛕·Kᵗy)
		if err := op.EvalAdjoint(s.tmpN, s.yPrev); err != nil {
			return nil, s.fail(err)
		}
		parallel.For(n, exec, func(j int) {
			s.tmpN[j] = s.xPrev[j] - s.tau[j]*s.tmpN[j]
		})
		if err := applyProx(s.prb.primal, s.x, s.tmpN, s.tau); err != nil {
			return nil, s.fail(err)
		}

		// x̄ = x + 𝛉·(x - x₋)
		theta := o.Theta
		parallel.For(n, exec, func(j int) {
			s.xBar[j] = s.x[j] + theta*(s.x[j]-s.xPrev[j])
		})

		// y = 𝚙𝚛𝚘𝚡_{𝛔f*}(y + 𝛔·K·x̄)
		if err := op.Eval(s.tmpM, s.xBar); err != nil {
			return nil, s.fail(err)
		}
		parallel.For(m, exec, func(i int) {
			s.tmpM[i] = s.yPrev[i] + s.sigma[i]*s.tmpM[i]
		})
		if err := applyProx(s.prb.dual, s.y, s.tmpM, s.sigma); err != nil {
			return nil, s.fail(err)
		}

		converged := false
		if it%o.ResidualInterval == 0 {
			s.resPrimal = residual(s.x, s.xPrev)
			s.resDual = residual(s.y, s.yPrev)
			if log.enable(LogIter) {
				log.log("At iterate %6d    primal res %.6e    dual res %.6e\n", it, s.resPrimal, s.resDual)
			}
			converged = o.Tolerance > 0 && math.Max(s.resPrimal, s.resDual) <= o.Tolerance
		}

		if o.CallbackInterval > 0 && o.Callback != nil && it%o.CallbackInterval == 0 {
			o.Callback(it, slices.Clone(s.x), slices.Clone(s.y))
		}

		s.x, s.xPrev = s.xPrev, s.x
		s.y, s.yPrev = s.yPrev, s.y

		if converged {
			status = Converged
			break
		}
		if ctx.Err() != nil || (o.Stopping != nil && o.Stopping()) {
			status = StoppedUser
			break
		}
	}
	elapsed := time.Since(start)

	// final iterate lives in xPrev/yPrev after the swap
	kx := make([]float64, m)
	kty := make([]float64, n)
	if err := op.Eval(kx, s.xPrev); err != nil {
		return nil, s.fail(err)
	}
	if err := op.EvalAdjoint(kty, s.yPrev); err != nil {
		return nil, s.fail(err)
	}

	s.state = status
	if log.enable(LogLast) {
		log.log("PDHG %s after %d iterations (primal res %.3e, dual res %.3e) in %s\n",
			status, s.iter, s.resPrimal, s.resDual, elapsed)
	}

	return &Result{
		X:      slices.Clone(s.xPrev),
		Y:      slices.Clone(s.yPrev),
		KX:     kx,
		KTY:    kty,
		Status: status,
		Summary: Summary{
			NumIter:        s.iter,
			PrimalResidual: s.resPrimal,
			DualResidual:   s.resDual,
			RunTime:        elapsed,
		},
	}, nil
}

// fail reports a mid-solve contract violation. No partial result is returned;
// the solver goes back to Ready so the caller may release or retry it.
func (s *Solver) fail(err error) error {
	s.state = Ready
	return err
}

// Release frees the iterate buffers and releases the proximal operators.
// Safe to call from any state and idempotent.
func (s *Solver) Release() {
	if s.state == Released {
		return
	}
	if s.state != Uninitialized {
		for _, p := range s.prb.primal {
			p.Release()
		}
		for _, p := range s.prb.dual {
			p.Release()
		}
	}
	s.x, s.xPrev, s.xBar = nil, nil, nil
	s.y, s.yPrev = nil, nil
	s.tmpN, s.tmpM = nil, nil
	s.tau, s.sigma = nil, nil
	s.state = Released
}

// applyProx evaluates a prox partition. Diagonal-capable operators take the
// step diagonal directly; the others take the (range-constant) scalar step.
func applyProx(ops []prox.Operator, result, arg, diag []float64) error {
	for _, p := range ops {
		var err error
		if p.DiagSteps() {
			err = p.Eval(result, arg, diag, 1, false)
		} else {
			err = p.Eval(result, arg, nil, diag[p.Index()], false)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// residual is the normalized change ‖a - b‖₂ / 𝚖𝚊𝚡(1, ‖a‖₂).
func residual(a, b []float64) float64 {
	return floats.Distance(a, b, 2) / math.Max(1, floats.Norm(a, 2))
}
