// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package problem defines the capability record alpaqa solvers consume:
// a value carrying dimension metadata, the two boxes C and D, and a set
// of function handles for the derivative contract the solvers need. A
// solver queries what a Problem advertises through Capabilities()
// rather than calling a method and catching a failure.
package problem

import (
	"github.com/pkg/errors"

	"github.com/alpaqa-go/alpaqa/box"
	"github.com/alpaqa-go/alpaqa/vecops"
)

// Evaluation is the scalar objective f: ℝⁿ → ℝ.
type Evaluation func(x []float64) float64

// GradEvaluation writes a vector into out: the n-vector ∇f(x), or the
// m-vector g(x). out never aliases x.
type GradEvaluation func(x []float64, out []float64)

// VecJacProd writes ∇g(x)ᵀy into out, an n-vector. out never aliases
// x or y.
type VecJacProd func(x, y, out []float64)

// RowEvaluation writes the gradient of the i-th constraint, ∇gᵢ(x),
// into out.
type RowEvaluation func(x []float64, i int, out []float64)

// HessVecProd writes ∇²ₓₓL(x,y)·v into out.
type HessVecProd func(x, y, v, out []float64)

// HessEvaluation writes the dense n×n Hessian of the Lagrangian,
// row-major, into out.
type HessEvaluation func(x, y []float64, out []float64)

// Problem is the capability record a caller builds and solvers read
// from. The only write is Validate (which panoc.New calls) filling an
// empty C or D with the unbounded box. It is safe to share a single Problem value
// across concurrent solves as long as the function fields are
// reentrant — a guarantee the caller, not this package, asserts.
type Problem struct {
	N, M int // dimension of x and of g(x)
	C    box.Box
	D    box.Box

	EvalF         Evaluation
	EvalGradF     GradEvaluation
	EvalG         GradEvaluation // trivial (never called) when M == 0
	EvalGradGProd VecJacProd     // trivial (never called) when M == 0

	// Optional capabilities. A nil field means "not implemented"; the
	// solver must check Capabilities() before calling.
	EvalGradGi    RowEvaluation
	EvalHessLProd HessVecProd
	EvalHessL     HessEvaluation
}

// Capability advertises which optional evaluations a Problem supplies.
type Capability uint8

const (
	CapGradGi Capability = 1 << iota
	CapHessLProd
	CapHessL
)

// Capabilities reports the optional capabilities this Problem
// supplies. The minimum required set (f, ∇f, g, ∇g·y) is not part of
// this bitmask: it is mandatory and checked by Validate.
func (p *Problem) Capabilities() Capability {
	var c Capability
	if p.EvalGradGi != nil {
		c |= CapGradGi
	}
	if p.EvalHessLProd != nil {
		c |= CapHessLProd
	}
	if p.EvalHessL != nil {
		c |= CapHessL
	}
	return c
}

// Has reports whether the problem advertises every capability in want.
func (p *Problem) Has(want Capability) bool {
	return p.Capabilities()&want == want
}

// Validate checks the minimum required capability set and the
// dimensional consistency of C, D, N and M, first replacing an empty
// C (and, when M > 0, an empty D) with the unbounded box. It is a setup-time,
// programmer-facing error surfaced immediately, before any iteration
// occurs.
func (p *Problem) Validate() error {
	switch {
	case p.N <= 0:
		return errors.New("problem: N must be positive")
	case p.M < 0:
		return errors.New("problem: M must be non-negative")
	case p.EvalF == nil:
		return errors.New("problem: EvalF is required")
	case p.EvalGradF == nil:
		return errors.New("problem: EvalGradF is required")
	case p.M > 0 && p.EvalG == nil:
		return errors.New("problem: EvalG is required when M > 0")
	case p.M > 0 && p.EvalGradGProd == nil:
		return errors.New("problem: EvalGradGProd is required when M > 0")
	}
	if p.C.Dim() == 0 {
		p.C = box.NewUnbounded(p.N)
	}
	if p.D.Dim() == 0 && p.M > 0 {
		p.D = box.NewUnbounded(p.M)
	}
	if p.C.Dim() != p.N {
		return errors.Errorf("problem: C has dimension %d, want %d", p.C.Dim(), p.N)
	}
	if p.D.Dim() != p.M {
		return errors.Errorf("problem: D has dimension %d, want %d", p.D.Dim(), p.M)
	}
	if err := p.C.Validate(); err != nil {
		return errors.Wrap(err, "problem: invalid C")
	}
	if err := p.D.Validate(); err != nil {
		return errors.Wrap(err, "problem: invalid D")
	}
	return nil
}

// NotImplemented builds the setup-time error a solver reports when a
// Problem lacks a capability it needs.
func NotImplemented(capability string) error {
	return errors.Errorf("problem: capability %q is not implemented by this problem", capability)
}

// F evaluates f(x).
func (p *Problem) F(x []float64) float64 {
	return p.EvalF(x)
}

// GradF writes ∇f(x) into out.
func (p *Problem) GradF(x []float64, out []float64) {
	p.EvalGradF(x, out)
}

// G writes g(x) into out. A no-op when M == 0.
func (p *Problem) G(x []float64, out []float64) {
	if p.M == 0 {
		return
	}
	p.EvalG(x, out)
}

// GradGProd writes ∇g(x)ᵀy into out. out is zeroed when M == 0.
func (p *Problem) GradGProd(x, y, out []float64) {
	if p.M == 0 {
		vecops.Zero(out)
		return
	}
	p.EvalGradGProd(x, y, out)
}
