// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alm

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/alpaqa-go/alpaqa/panoc"
	"github.com/alpaqa-go/alpaqa/problem"
	"github.com/alpaqa-go/alpaqa/vecops"
)

// Solver is a configured ALM outer driver bound to a single problem.
// It owns one panoc.Solver, constructed once and reused across every
// outer iteration of every Solve call.
type Solver struct {
	problem  *problem.Problem
	counters *problem.Counters
	params   Params
	inner    *panoc.Solver
	logger   *zap.Logger
}

// New validates params and builds the inner PANOC solver bound to a
// counters-wrapped copy of p, so every Result carries the evaluation
// counts without the caller having to wrap the problem itself. A nil
// logger defaults to zap.NewNop().
func New(p *problem.Problem, params Params, panocParams panoc.Params, logger *zap.Logger) (*Solver, error) {
	params = params.WithDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	wrapped, counters := problem.WithCounters(p)
	inner, err := panoc.New(wrapped, panocParams, logger)
	if err != nil {
		return nil, err
	}
	return &Solver{problem: wrapped, counters: counters, params: params, inner: inner, logger: logger}, nil
}

// Solve runs the ALM outer loop starting from x0, with optional
// initial multipliers y0 and penalty weights sigma0 (either may be
// nil, in which case y0 defaults to zero and sigma0 is computed from
// the initial-penalty heuristic). When Params.MaxTime is set, deadline
// is moved forward to start+MaxTime if that is earlier. interrupt and
// deadline are forwarded to every inner PANOC solve.
func (s *Solver) Solve(x0, y0, sigma0 []float64, interrupt *panoc.AtomicFlag, deadline time.Time) (*Result, error) {
	start := time.Now()
	if s.params.MaxTime > 0 {
		if d := start.Add(s.params.MaxTime); deadline.IsZero() || d.Before(deadline) {
			deadline = d
		}
	}
	n, m := s.problem.N, s.problem.M

	x := make([]float64, n)
	copy(x, x0)

	y := make([]float64, m)
	if y0 != nil {
		copy(y, y0)
	}

	sigma := make([]float64, m)
	if sigma0 != nil {
		copy(sigma, sigma0)
	} else {
		s.initialPenalty(x, sigma)
	}

	e := make([]float64, m)
	eOld := make([]float64, m)

	eps := s.params.EpsilonInitial
	if m == 0 {
		// No multipliers or penalties to update: the single inner solve
		// runs directly at the final tolerance.
		eps = s.params.EpsilonFinal
	}
	var stats InnerStats
	var lastYHat []float64

	for outer := 0; outer < s.params.MaxOuterIter; outer++ {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return s.result(MaxTime, x, y, sigma, 0, 0, outer, stats, start), nil
		}

		res, err := s.inner.Solve(panoc.SubProblem{
			X0:         x,
			Y:          y,
			Sigma:      sigma,
			Tolerance:  eps,
			TauCFactor: s.params.TauCFactor,
			Interrupt:  interrupt,
			Deadline:   deadline,
		})
		if err != nil {
			return nil, err
		}

		stats.TotalIterations += res.Iterations
		stats.TotalLineSearchBacktracks += res.LineSearchBacktracks
		stats.TotalLBFGSRejections += res.LBFGSRejections

		switch res.Status {
		case panoc.NotFinite:
			return s.result(NotFinite, res.X, y, sigma, res.Psi, res.GradPsiInfNorm, outer+1, stats, start), nil
		case panoc.Interrupted:
			return s.result(Interrupted, res.X, y, sigma, res.Psi, res.GradPsiInfNorm, outer+1, stats, start), nil
		case panoc.InteriorStepFailed:
			return s.result(InteriorStepFailed, res.X, y, sigma, res.Psi, res.GradPsiInfNorm, outer+1, stats, start), nil
		}

		copy(x, res.X)
		lastYHat = res.YHat

		for i := 0; i < m; i++ {
			e[i] = (lastYHat[i] - y[i]) / sigma[i]
		}
		eNormInf := vecops.NormInf(e)

		s.logger.Debug("alm outer iteration",
			zap.Int("outer", outer),
			zap.Float64("violation_inf_norm", eNormInf),
			zap.Float64("epsilon", eps),
		)

		if eNormInf <= s.params.OuterTolerance {
			result := s.result(Converged, x, nil, sigma, res.Psi, res.GradPsiInfNorm, outer+1, stats, start)
			result.Y = append([]float64(nil), lastYHat...)
			result.ViolationInfNorm = eNormInf
			result.RGammaInfNorm = res.RInfNorm
			return result, nil
		}

		first := outer == 0
		if s.params.SinglePenaltyFactor {
			eOldNormInf := vecops.NormInf(eOld)
			updatePenaltyUniform(sigma, eNormInf, eOldNormInf, first, s.params)
		} else {
			updatePenaltyPerConstraint(sigma, e, eOld, eNormInf, first, s.params)
		}
		for i := range sigma {
			sigma[i] = math.Min(s.params.SigmaMax, math.Max(s.params.SigmaMin, sigma[i]))
		}

		projectMultipliers(y, lastYHat, s.problem.D, s.params.MultiplierBound)
		copy(eOld, e)

		eps = math.Max(s.params.EpsilonFinal, s.params.Rho*eps)
	}

	result := s.result(MaxOuterIter, x, y, sigma, 0, 0, s.params.MaxOuterIter, stats, start)
	if m > 0 {
		result.ViolationInfNorm = vecops.NormInf(e)
	}
	return result, nil
}

// initialPenalty implements the initial-penalty heuristic: a single scalar σ derived from
// the relative scale of f and ½‖g‖² at x0, clamped into
// [SigmaMin, SigmaMax] and broadcast to every component. These f/g
// evaluations are not charged against any inner iteration budget.
func (s *Solver) initialPenalty(x0, sigma []float64) {
	m := len(sigma)
	if m == 0 {
		return
	}
	g := make([]float64, m)
	s.problem.G(x0, g)
	f0 := s.problem.F(x0)

	gNormSq := vecops.Dot(g, g)
	sigmaVal := s.params.SigmaZero * math.Max(1, math.Abs(f0)) / math.Max(1, 0.5*gNormSq)
	sigmaVal = math.Min(s.params.SigmaMax, math.Max(s.params.SigmaMin, sigmaVal))
	for i := range sigma {
		sigma[i] = sigmaVal
	}
}

func (s *Solver) result(status Status, x, y, sigma []float64, psi, gradPsiInfNorm float64, outerIter int, stats InnerStats, start time.Time) *Result {
	xCopy := make([]float64, len(x))
	copy(xCopy, x)
	var yCopy []float64
	if y != nil {
		yCopy = make([]float64, len(y))
		copy(yCopy, y)
	}
	sigmaCopy := make([]float64, len(sigma))
	copy(sigmaCopy, sigma)

	return &Result{
		Status:          status,
		X:               xCopy,
		Y:               yCopy,
		Sigma:           sigmaCopy,
		F:               s.problem.F(xCopy),
		Psi:             psi,
		GradPsiInfNorm:  gradPsiInfNorm,
		OuterIterations: outerIter,
		Inner:           stats,
		Evaluations:     s.counters.Snapshot(),
		Elapsed:         time.Since(start),
	}
}
