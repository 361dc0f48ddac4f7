// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panoc

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/alpaqa-go/alpaqa/box"
	"github.com/alpaqa-go/alpaqa/problem"
	"github.com/alpaqa-go/alpaqa/stopcrit"
	"github.com/alpaqa-go/alpaqa/vecops"
)

// Solver is a configured PANOC inner solver bound to a single
// problem.Problem. It holds no per-solve state; Solve allocates a
// fresh workspace so a Solver may be reused (though not concurrently)
// across independent solves.
type Solver struct {
	problem *problem.Problem
	params  Params
	logger  *zap.Logger
}

// New validates params and the problem, and returns a ready-to-use
// Solver. A nil logger defaults to zap.NewNop().
func New(p *problem.Problem, params Params, logger *zap.Logger) (*Solver, error) {
	params = params.WithDefaults()
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{problem: p, params: params, logger: logger}, nil
}

// Solve runs PANOC on the sub-problem ψ(x) + I_C(x) defined by
// sub.Y and sub.Sigma, starting from sub.X0, down to sub.Tolerance.
// It never mutates the caller's sub.X0 slice.
func (s *Solver) Solve(sub SubProblem) (*Result, error) {
	start := time.Now()
	deadline := sub.Deadline
	if s.params.MaxTime > 0 {
		if d := start.Add(s.params.MaxTime); deadline.IsZero() || d.Before(deadline) {
			deadline = d
		}
	}
	n, m := s.problem.N, s.problem.M
	w := newWorkspace(n, m, s.params.LBFGSMemory, s.params.LBFGSCurvatureEpsilon)

	copy(w.x, sub.X0)
	box.Project(w.x, w.x, s.problem.C)

	psi := s.problem.PsiGradPsi(w.x, sub.Y, sub.Sigma, w.yHat, w.gradPsi, w.scratchN)
	if !isFinitePsi(psi) || !vecops.AllFinite(w.gradPsi) {
		return s.result(w, NotFinite, psi, 0, 0, 0, start), nil
	}

	L := initialLipschitz(s.problem, s.params, w, sub)
	gamma := s.params.LipschitzLgammaFactor / L

	backtracksTotal := 0
	consecutiveFailures := 0
	var rGammaNormInf float64

	for iter := 0; ; iter++ {
		if sub.Interrupt != nil && sub.Interrupt.Load() {
			return s.result(w, Interrupted, psi, rGammaNormInf, backtracksTotal, iter, start), nil
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return s.result(w, MaxTime, psi, rGammaNormInf, backtracksTotal, iter, start), nil
		}
		if iter >= s.params.MaxIter {
			return s.result(w, MaxIter, psi, rGammaNormInf, backtracksTotal, iter, start), nil
		}

		// Steps 1-2: forward step plus adaptive Lipschitz doubling test.
		doublings, fbStatus := s.forwardBackwardStep(w, sub, &L, &gamma, psi)
		if fbStatus != Running {
			return s.result(w, fbStatus, psi, rGammaNormInf, backtracksTotal, iter, start), nil
		}

		rGammaNormInf = stopcrit.FixedPointResidual(w.rGamma, w.x, w.xHat, gamma)
		rGammaNormSq := vecops.Dot(w.rGamma, w.rGamma)

		// Step 3: quasi-Newton direction, dₖ = Hₖ pₖ (identity when the
		// L-BFGS history is empty).
		w.history.Apply(w.p, w.d)

		// Step 4: geometric backtracking line search on the FBE.
		backtracks, tookProxGrad, trialPsi, trialRNormInf := s.lineSearch(w, sub, psi, gamma, rGammaNormSq)
		backtracksTotal += backtracks

		s.logger.Debug("panoc iteration",
			zap.Int("iter", iter),
			zap.Int("doublings", doublings),
			zap.Int("backtracks", backtracks),
			zap.Bool("prox_grad_fallback", tookProxGrad),
			zap.Float64("gamma", gamma),
		)

		var nextPsi, rGammaNextNormInf float64
		if tookProxGrad {
			// No τ passed the sufficient-decrease test; fall back to the
			// plain proximal-gradient point x̂ₖ, which the Lipschitz loop
			// only ever evaluated ψ at, so backfill ∇ψ/ŷ now.
			copy(w.xTrial, w.xHat)
			nextPsi = s.problem.PsiGradPsi(w.xTrial, sub.Y, sub.Sigma, w.yHatTrial, w.gradPsiTrial, w.scratchN)
			if isFinitePsi(nextPsi) && vecops.AllFinite(w.gradPsiTrial) {
				computeForwardPoint(s.problem.C, w.xTrial, w.gradPsiTrial, gamma, w.xHatTrial)
				rGammaNextNormInf = stopcrit.FixedPointResidual(w.rGammaTrial, w.xTrial, w.xHatTrial, gamma)
			}
			consecutiveFailures++
		} else {
			nextPsi = trialPsi
			rGammaNextNormInf = trialRNormInf
			consecutiveFailures = 0
		}

		if !isFinitePsi(nextPsi) || !vecops.AllFinite(w.xTrial) {
			// w.x still holds the last iterate known to have a finite
			// objective; report that instead of the failing candidate.
			return s.result(w, NotFinite, psi, rGammaNormInf, backtracksTotal, iter+1, start), nil
		}

		// Step 5: L-BFGS update with sₖ = xₖ₊₁−xₖ, yₖ = Rγ(xₖ₊₁)−Rγ(xₖ).
		vecops.Sub(w.sPair, w.xTrial, w.x)
		vecops.Sub(w.yPair, w.rGammaTrial, w.rGamma)
		w.history.Update(w.sPair, w.yPair)

		if s.params.LBFGSRestartAfterFailures > 0 && consecutiveFailures >= s.params.LBFGSRestartAfterFailures {
			w.history.Reset()
			consecutiveFailures = 0
		}

		// Step 6: combined stopping residual.
		residual := stopcrit.Combined(rGammaNextNormInf, w.yHatTrial, sub.Y, sub.TauCFactor)

		copy(w.x, w.xTrial)
		copy(w.gradPsi, w.gradPsiTrial)
		copy(w.yHat, w.yHatTrial)
		psi = nextPsi
		rGammaNormInf = rGammaNextNormInf

		if residual <= sub.Tolerance {
			return s.result(w, Converged, psi, rGammaNormInf, backtracksTotal, iter+1, start), nil
		}
	}
}

func isFinitePsi(psi float64) bool {
	return !math.IsNaN(psi) && !math.IsInf(psi, 0)
}

func (s *Solver) result(w *workspace, status Status, psi, rInf float64, backtracks, iterations int, start time.Time) *Result {
	x := make([]float64, w.n)
	copy(x, w.x)
	yHat := make([]float64, w.m)
	copy(yHat, w.yHat)
	return &Result{
		Status:               status,
		X:                    x,
		YHat:                 yHat,
		F:                    s.problem.F(x),
		Psi:                  psi,
		GradPsiInfNorm:       vecops.NormInf(w.gradPsi),
		RInfNorm:             rInf,
		Iterations:           iterations,
		LineSearchBacktracks: backtracks,
		LBFGSRejections:      w.history.Rejections(),
		Elapsed:              time.Since(start),
	}
}
