// Copyright ©2026 doctorwk007. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prost solves large-scale structured convex optimization problems of the form
//
//	minimize  f(Kx) + g(x)
//
// where g and f are separable nonsmooth convex functions given through their proximal
// operators and K is a block-structured linear operator.
//
// The module is split into three packages:
//
//   - prox: closed-form scalar prox kernels, the elementwise proximal operator and
//     the Moreau/permutation/affine decorators composing them.
//   - linop: the block linear operator with forward/adjoint evaluation and the
//     row/column norm queries used for preconditioning.
//   - pdhg: the primal-dual hybrid gradient solver tying both together.
//
// A minimal solve assembles a Problem from an operator and two prox partitions and
// runs the solver:
//
//	op := linop.New()
//	_ = op.AddBlock(linop.NewIdentity(0, 0, n, 1))
//
//	g, _ := prox.NewElemOperation(prox.KernelAbs, 0, n, true, 0, 0)
//	fc, _ := prox.NewElemOperation(prox.KernelIndEq0, 0, n, true, 0, 0)
//	prb, _ := pdhg.NewProblem(op, []prox.Operator{g}, []prox.Operator{fc})
//
//	s, _ := prb.New(pdhg.DefaultOptions(), nil)
//	if err := s.Initialize(); err != nil {
//		...
//	}
//	defer s.Release()
//	res, err := s.Solve(context.Background())
package prost
