// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panoc

import (
	"math"

	"github.com/alpaqa-go/alpaqa/box"
	"github.com/alpaqa-go/alpaqa/problem"
	"github.com/alpaqa-go/alpaqa/stopcrit"
	"github.com/alpaqa-go/alpaqa/vecops"
)

// lineSearchTauDecay is the geometric backtracking ratio applied to τ
// between line-search trials. It is fixed rather than configurable;
// Params.TauMin bounds how many trials that implies.
const lineSearchTauDecay = 0.5

// computeForwardPoint writes Π_C(x - γ∇ψ(x)) into out. out may alias x.
func computeForwardPoint(c box.Box, x, gradPsi []float64, gamma float64, out []float64) {
	for i := range out {
		out[i] = x[i] - gamma*gradPsi[i]
	}
	box.Project(out, out, c)
}

// fbe evaluates the forward-backward envelope
//
//	φ_γ(x) = ψ(x) - (γ/2)‖∇ψ(x)‖² + (γ/2)‖Rγ(x)‖²
//
// from already-computed ψ, ∇ψ and the fixed-point residual at x.
func fbe(psi, gamma, gradPsiNormSq, rGammaNormSq float64) float64 {
	return psi - 0.5*gamma*gradPsiNormSq + 0.5*gamma*rGammaNormSq
}

// initialLipschitz produces the starting Lipschitz estimate L₀ via a
// forward finite difference of ∇ψ along a small perturbation of the
// initial iterate, clipped to [Params.LMin, Params.LMax].
func initialLipschitz(p *problem.Problem, params Params, w *workspace, sub SubProblem) float64 {
	const relStep = 1e-6
	for i := range w.xTrial {
		step := relStep * math.Max(1, math.Abs(w.x[i]))
		w.xTrial[i] = w.x[i] + step
	}
	box.Project(w.xTrial, w.xTrial, p.C)
	p.PsiGradPsi(w.xTrial, sub.Y, sub.Sigma, w.yHatTrial, w.gradPsiTrial, w.scratchN)

	diffNorm := vecops.Distance(w.gradPsiTrial, w.gradPsi)
	stepNorm := vecops.Distance(w.xTrial, w.x)

	L := params.LMin
	if stepNorm > 0 {
		candidate := diffNorm / stepNorm
		if !math.IsNaN(candidate) && !math.IsInf(candidate, 0) && candidate > params.LMin {
			L = candidate
		}
	}
	if L > params.LMax {
		L = params.LMax
	}
	return L
}

// forwardBackwardStep performs the forward step x̂ₖ = Π_C(xₖ - γₖ∇ψₖ)
// and the adaptive Lipschitz doubling test, growing
// the Lipschitz estimate (and shrinking γ) until the quadratic upper
// bound on ψ holds at x̂ₖ or the doubling budget is exhausted. Results
// land in w.xHat and w.p; it reports how many doublings it took.
func (s *Solver) forwardBackwardStep(w *workspace, sub SubProblem, L, gamma *float64, psi float64) (int, Status) {
	for doublings := 0; ; doublings++ {
		computeForwardPoint(s.problem.C, w.x, w.gradPsi, *gamma, w.xHat)
		if !vecops.AllFinite(w.xHat) {
			return doublings, NotFinite
		}
		vecops.Sub(w.p, w.xHat, w.x)
		normPSq := vecops.Dot(w.p, w.p)

		psiHat := s.problem.PsiYHat(w.xHat, sub.Y, sub.Sigma, w.scratchM)
		if !isFinitePsi(psiHat) {
			return doublings, NotFinite
		}

		linear := vecops.Dot(w.gradPsi, w.p)
		tol := s.params.QuadraticUpperBoundToleranceFactor * math.Max(1, math.Abs(psi))
		upperBound := psi + linear + normPSq/(2**gamma) + tol

		if psiHat <= upperBound {
			return doublings, Running
		}
		if doublings >= s.params.MaxLipschitzDoublings {
			return doublings, InteriorStepFailed
		}
		*L *= 2
		if *L > s.params.LMax {
			return doublings, InteriorStepFailed
		}
		*gamma = s.params.LipschitzLgammaFactor / *L
	}
}

// lineSearch performs the geometric backtracking search
// step 4 over candidates x(τ) = xₖ + (1-τ)pₖ + τdₖ, accepting the
// first τ for which the FBE shows sufficient decrease relative to the
// proximal-gradient step size. It reports the number of rejected
// trials, whether it fell back to the pure proximal-gradient step
// (τ found none acceptable), and, when it didn't fall back, the ψ and
// ‖Rγ‖∞ already computed at the accepted trial (left in w.xTrial,
// w.gradPsiTrial, w.yHatTrial, w.xHatTrial, w.rGammaTrial).
func (s *Solver) lineSearch(w *workspace, sub SubProblem, psi, gamma, rGammaNormSq float64) (backtracks int, fellBack bool, trialPsi, trialRNormInf float64) {
	gradPsiNormSq := vecops.Dot(w.gradPsi, w.gradPsi)
	fbeCurrent := fbe(psi, gamma, gradPsiNormSq, rGammaNormSq)

	normPSq := vecops.Dot(w.p, w.p)
	threshold := s.params.SufficientDecreaseFactor * normPSq / gamma

	for tau := 1.0; tau >= s.params.TauMin; tau *= lineSearchTauDecay {
		vecops.Combine(w.xTrial, w.x, w.p, w.d, tau)

		psiTrial := s.problem.PsiGradPsi(w.xTrial, sub.Y, sub.Sigma, w.yHatTrial, w.gradPsiTrial, w.scratchN)
		if isFinitePsi(psiTrial) && vecops.AllFinite(w.gradPsiTrial) {
			computeForwardPoint(s.problem.C, w.xTrial, w.gradPsiTrial, gamma, w.xHatTrial)
			rInf := stopcrit.FixedPointResidual(w.rGammaTrial, w.xTrial, w.xHatTrial, gamma)
			trialGradNormSq := vecops.Dot(w.gradPsiTrial, w.gradPsiTrial)
			trialRNormSq := vecops.Dot(w.rGammaTrial, w.rGammaTrial)
			fbeTrial := fbe(psiTrial, gamma, trialGradNormSq, trialRNormSq)

			if fbeTrial <= fbeCurrent-threshold {
				return backtracks, false, psiTrial, rInf
			}
		}
		backtracks++
	}
	return backtracks, true, 0, 0
}
