// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package panoc implements the PANOC inner solver of alpaqa's two-level solver stack: a
// forward-backward proximal-gradient step with an adaptive Lipschitz
// estimate, a limited-memory quasi-Newton direction reconciled with
// the proximal-gradient step through a line search on the
// forward-backward envelope. The Params/New/Solve shape and the
// workspace-owns-every-buffer discipline are adapted from the
// validated-parameter-record pattern curioloop's solver packages use.
package panoc

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// Params is the PANOC parameter contract. The zero value is
// not directly usable; call Params{}.WithDefaults() or rely on New to
// fill unset fields, mirroring how curioloop's solver constructors fill
// unset Termination/Bound fields before validating.
type Params struct {
	// MaxIter is the hard iteration cap. Must be ≥ 1.
	MaxIter int
	// MaxTime is the wall-clock budget. Zero means no limit.
	MaxTime time.Duration
	// TauMin is the smallest line-search parameter τ, in (0,1).
	TauMin float64
	// LMin, LMax clamp the adaptive Lipschitz estimate; 0 < LMin ≤ LMax.
	LMin, LMax float64
	// LipschitzLgammaFactor is α in γ = α/L; α ∈ (0,1).
	LipschitzLgammaFactor float64
	// QuadraticUpperBoundToleranceFactor is the relative slack τ_rtol
	// in the Lipschitz-estimate doubling test; must be ≥ 0.
	QuadraticUpperBoundToleranceFactor float64
	// LBFGSMemory is the L-BFGS history length M; must be ≥ 1.
	LBFGSMemory int
	// LBFGSCurvatureEpsilon is the curvature-rejection threshold ε of
	// the curvature test. Zero defaults to lbfgs.DefaultCurvatureEpsilon.
	LBFGSCurvatureEpsilon float64
	// SufficientDecreaseFactor is σ in the FBE line-search acceptance
	// test of the inner loop step 4; must be in (0, 0.5).
	SufficientDecreaseFactor float64
	// MaxLipschitzDoublings is N_LS, the doubling budget before the
	// Lipschitz test gives up with interior-step-failed.
	MaxLipschitzDoublings int
	// LBFGSRestartAfterFailures is K: consecutive τ=0 proximal-gradient
	// steps after which the L-BFGS history is reset. Zero is replaced
	// by the default in WithDefaults; a negative value disables
	// restarting.
	LBFGSRestartAfterFailures int
}

// DefaultParams returns the suggested defaults for every field.
func DefaultParams() Params {
	return Params{
		MaxIter:                            500,
		MaxTime:                            0,
		TauMin:                             1.0 / 256,
		LMin:                               1e-10,
		LMax:                               1e20,
		LipschitzLgammaFactor:              0.95,
		QuadraticUpperBoundToleranceFactor: 1e-14,
		LBFGSMemory:                        10,
		LBFGSCurvatureEpsilon:              1e-10,
		SufficientDecreaseFactor:           0.1,
		MaxLipschitzDoublings:              50,
		LBFGSRestartAfterFailures:          8,
	}
}

// WithDefaults fills every zero-valued field of p with the
// corresponding DefaultParams field and returns the result; it never
// mutates p.
func (p Params) WithDefaults() Params {
	d := DefaultParams()
	if p.MaxIter == 0 {
		p.MaxIter = d.MaxIter
	}
	if p.TauMin == 0 {
		p.TauMin = d.TauMin
	}
	if p.LMin == 0 {
		p.LMin = d.LMin
	}
	if p.LMax == 0 {
		p.LMax = d.LMax
	}
	if p.LipschitzLgammaFactor == 0 {
		p.LipschitzLgammaFactor = d.LipschitzLgammaFactor
	}
	if p.QuadraticUpperBoundToleranceFactor == 0 {
		p.QuadraticUpperBoundToleranceFactor = d.QuadraticUpperBoundToleranceFactor
	}
	if p.LBFGSMemory == 0 {
		p.LBFGSMemory = d.LBFGSMemory
	}
	if p.LBFGSCurvatureEpsilon == 0 {
		p.LBFGSCurvatureEpsilon = d.LBFGSCurvatureEpsilon
	}
	if p.SufficientDecreaseFactor == 0 {
		p.SufficientDecreaseFactor = d.SufficientDecreaseFactor
	}
	if p.MaxLipschitzDoublings == 0 {
		p.MaxLipschitzDoublings = d.MaxLipschitzDoublings
	}
	if p.LBFGSRestartAfterFailures == 0 {
		p.LBFGSRestartAfterFailures = d.LBFGSRestartAfterFailures
	}
	return p
}

// Validate checks the parameter contract, naming the
// offending field in the returned error.
func (p Params) Validate() error {
	switch {
	case p.MaxIter < 1:
		return errors.New("panoc: MaxIter must be >= 1")
	case p.MaxTime < 0:
		return errors.New("panoc: MaxTime must be > 0 or unset")
	case !(p.TauMin > 0 && p.TauMin < 1):
		return errors.New("panoc: TauMin must be in (0, 1)")
	case !(p.LMin > 0 && p.LMin <= p.LMax):
		return errors.New("panoc: require 0 < LMin <= LMax")
	case !(p.LipschitzLgammaFactor > 0 && p.LipschitzLgammaFactor < 1):
		return errors.New("panoc: LipschitzLgammaFactor must be in (0, 1)")
	case p.QuadraticUpperBoundToleranceFactor < 0:
		return errors.New("panoc: QuadraticUpperBoundToleranceFactor must be >= 0")
	case p.LBFGSMemory < 1:
		return errors.New("panoc: LBFGSMemory must be >= 1")
	case !(p.SufficientDecreaseFactor > 0 && p.SufficientDecreaseFactor < 0.5):
		return errors.New("panoc: SufficientDecreaseFactor must be in (0, 0.5)")
	case p.MaxLipschitzDoublings < 1:
		return errors.New("panoc: MaxLipschitzDoublings must be >= 1")
	case math.IsNaN(p.LBFGSCurvatureEpsilon) || p.LBFGSCurvatureEpsilon < 0:
		return errors.New("panoc: LBFGSCurvatureEpsilon must be >= 0")
	}
	return nil
}
