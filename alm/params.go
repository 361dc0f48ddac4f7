// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package alm implements the Augmented Lagrangian Method outer driver:
// it repeatedly solves a Σ-parameterised sub-problem with the panoc
// inner solver, then updates the multipliers y and penalty weights Σ
// and shrinks the inner tolerance, until the constraint-violation
// vector falls below the outer tolerance or the outer iteration budget
// is spent.
package alm

import (
	"time"

	"github.com/pkg/errors"
)

// Params is the ALM outer-driver parameter contract.
type Params struct {
	// Delta is Δ, the penalty growth factor; must be > 1.
	Delta float64
	// Theta is θ, the violation-decrease threshold that gates a
	// penalty increase; must be in (0, 1).
	Theta float64
	// SigmaZero is σ₀, the scale used by the initial-penalty heuristic
	// when the caller doesn't supply Σ₀ directly.
	SigmaZero float64
	// SigmaMin, SigmaMax clamp every penalty weight; 0 < SigmaMin ≤ SigmaMax.
	SigmaMin, SigmaMax float64
	// Rho is ρ, the inner-tolerance shrink factor; must be in (0, 1).
	Rho float64
	// EpsilonInitial is ε₀, the inner tolerance for the first outer
	// iteration; must be > 0.
	EpsilonInitial float64
	// EpsilonFinal is the floor the shrinking inner tolerance never
	// drops below; must be in (0, EpsilonInitial].
	EpsilonFinal float64
	// OuterTolerance is δ, the outer convergence threshold on ‖e‖∞;
	// must be > 0.
	OuterTolerance float64
	// MaxOuterIter is K_max, the outer iteration cap; must be ≥ 1.
	MaxOuterIter int
	// MaxTime is the wall-clock budget shared across every inner solve;
	// zero means no limit.
	MaxTime time.Duration
	// SinglePenaltyFactor selects the uniform penalty-update mode
	// (every component scaled by the same factor) over the default
	// per-constraint mode.
	SinglePenaltyFactor bool
	// MultiplierBound is M, the half-width of the multiplier
	// safeguard region Y(M); must be > 0.
	MultiplierBound float64
	// TauCFactor is τ_c, mixed into each inner solve's combined
	// stopping residual; zero disables the multiplier-change term.
	TauCFactor float64
}

// DefaultParams returns the suggested ALM defaults.
func DefaultParams() Params {
	return Params{
		Delta:               10,
		Theta:               0.25,
		SigmaZero:           2,
		SigmaMin:            1e-8,
		SigmaMax:            1e9,
		Rho:                 0.1,
		EpsilonInitial:      1e-4,
		EpsilonFinal:        1e-8,
		OuterTolerance:      1e-6,
		MaxOuterIter:        20,
		SinglePenaltyFactor: false,
		MultiplierBound:     1e9,
		TauCFactor:          0,
	}
}

// WithDefaults fills every zero-valued field of p with the
// corresponding DefaultParams field and returns the result; it never
// mutates p.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if p.Delta == 0 {
		p.Delta = d.Delta
	}
	if p.Theta == 0 {
		p.Theta = d.Theta
	}
	if p.SigmaZero == 0 {
		p.SigmaZero = d.SigmaZero
	}
	if p.SigmaMin == 0 {
		p.SigmaMin = d.SigmaMin
	}
	if p.SigmaMax == 0 {
		p.SigmaMax = d.SigmaMax
	}
	if p.Rho == 0 {
		p.Rho = d.Rho
	}
	if p.EpsilonInitial == 0 {
		p.EpsilonInitial = d.EpsilonInitial
	}
	if p.EpsilonFinal == 0 {
		p.EpsilonFinal = d.EpsilonFinal
	}
	if p.OuterTolerance == 0 {
		p.OuterTolerance = d.OuterTolerance
	}
	if p.MaxOuterIter == 0 {
		p.MaxOuterIter = d.MaxOuterIter
	}
	if p.MultiplierBound == 0 {
		p.MultiplierBound = d.MultiplierBound
	}
	return p
}

// Validate checks the parameter contract, naming the offending field
// in the returned error.
func (p Params) Validate() error {
	switch {
	case p.Delta <= 1:
		return errors.New("alm: Delta must be > 1")
	case !(p.Theta > 0 && p.Theta < 1):
		return errors.New("alm: Theta must be in (0, 1)")
	case p.SigmaZero <= 0:
		return errors.New("alm: SigmaZero must be > 0")
	case !(p.SigmaMin > 0 && p.SigmaMin <= p.SigmaMax):
		return errors.New("alm: require 0 < SigmaMin <= SigmaMax")
	case !(p.Rho > 0 && p.Rho < 1):
		return errors.New("alm: Rho must be in (0, 1)")
	case p.EpsilonInitial <= 0:
		return errors.New("alm: EpsilonInitial must be > 0")
	case !(p.EpsilonFinal > 0 && p.EpsilonFinal <= p.EpsilonInitial):
		return errors.New("alm: EpsilonFinal must be in (0, EpsilonInitial]")
	case p.OuterTolerance <= 0:
		return errors.New("alm: OuterTolerance must be > 0")
	case p.MaxOuterIter < 1:
		return errors.New("alm: MaxOuterIter must be >= 1")
	case p.MaxTime < 0:
		return errors.New("alm: MaxTime must be > 0 or unset")
	case p.MultiplierBound <= 0:
		return errors.New("alm: MultiplierBound must be > 0")
	case p.TauCFactor < 0:
		return errors.New("alm: TauCFactor must be >= 0")
	}
	return nil
}
