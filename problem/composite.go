// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import "github.com/alpaqa-go/alpaqa/box"

// PsiYHat evaluates
//
//	ψ(x) = f(x) + ½·distₛ²(g(x) + Σ⁻¹y, D)
//
// and writes into yHatOut the vector ŷ = Σ·(ζ − Π_D(ζ)) with
// ζ = g(x) + Σ⁻¹y, the by-product the outer ALM driver needs as its
// next multiplier candidate. yHatOut must have length M; it may not
// alias x, y or sigma. When M == 0 the function collapses to f(x) and
// yHatOut is untouched.
//
// The computation needs no scratch buffer: ζ and the distance vector
// are folded into yHatOut in place before it is overwritten a second
// time with the Σ-weighted residual.
func (p *Problem) PsiYHat(x, y, sigma, yHatOut []float64) float64 {
	f := p.EvalF(x)
	if p.M == 0 {
		return f
	}

	p.EvalG(x, yHatOut)

	half := 0.0
	for i := range yHatOut {
		zeta := yHatOut[i] + y[i]/sigma[i]
		d := zeta - clampTo(zeta, p.D, i)
		half += sigma[i] * d * d
		yHatOut[i] = sigma[i] * d
	}
	return f + 0.5*half
}

// GradPsiFromYHat writes ∇ψ(x) = ∇f(x) + ∇g(x)·ŷ into gradOut, given
// an already-computed ŷ (e.g. from PsiYHat). scratchN is a
// solver-owned length-N scratch buffer; it is not part of the public
// solve API — callers of Solve never see it.
func (p *Problem) GradPsiFromYHat(x, yHat, gradOut, scratchN []float64) {
	p.EvalGradF(x, gradOut)
	if p.M == 0 {
		return
	}
	p.EvalGradGProd(x, yHat, scratchN)
	for i := range gradOut {
		gradOut[i] += scratchN[i]
	}
}

// PsiGradPsi fuses PsiYHat and GradPsiFromYHat: it writes both ŷ and
// ∇ψ(x) while touching g(x) and ∇f(x) only once each. Solvers should
// prefer this over two separate calls whenever both ψ and ∇ψ are
// needed at the same iterate; the returned ψ and populated
// yHatOut/gradOut are bit-identical to calling PsiYHat then
// GradPsiFromYHat.
func (p *Problem) PsiGradPsi(x, y, sigma, yHatOut, gradOut, scratchN []float64) (psi float64) {
	psi = p.PsiYHat(x, y, sigma, yHatOut)
	p.GradPsiFromYHat(x, yHatOut, gradOut, scratchN)
	return psi
}

func clampTo(v float64, b box.Box, i int) float64 {
	lo, hi := b.Lower[i], b.Upper[i]
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
