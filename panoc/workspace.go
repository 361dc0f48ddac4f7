// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panoc

import "github.com/alpaqa-go/alpaqa/lbfgs"

// workspace owns every dense buffer PANOC touches during one Solve
// call. It is allocated once per solve and never grows; nothing on
// the hot path allocates.
type workspace struct {
	n, m int

	x       []float64 // current iterate xₖ
	gradPsi []float64 // ∇ψ(xₖ)
	yHat    []float64 // ŷ at xₖ, the accepted multiplier candidate

	xHat   []float64 // x̂ₖ = Π_C(xₖ − γₖ∇ψₖ)
	p      []float64 // pₖ = x̂ₖ − xₖ
	rGamma []float64 // Rγ(xₖ) = (xₖ − x̂ₖ)/γₖ = −pₖ/γₖ
	d      []float64 // quasi-Newton direction

	xTrial       []float64 // candidate xₖ₊₁(τ)
	gradPsiTrial []float64
	yHatTrial    []float64
	xHatTrial    []float64
	rGammaTrial  []float64

	scratchN []float64 // grad_g_prod scratch for GradPsiFromYHat
	scratchM []float64 // throwaway ŷ during the Lipschitz-doubling loop

	sPair, yPair []float64 // L-BFGS correction pair buffers

	history *lbfgs.History
}

func newWorkspace(n, m, memory int, curvatureEps float64) *workspace {
	w := &workspace{n: n, m: m}
	w.x = make([]float64, n)
	w.gradPsi = make([]float64, n)
	w.yHat = make([]float64, m)
	w.xHat = make([]float64, n)
	w.p = make([]float64, n)
	w.rGamma = make([]float64, n)
	w.d = make([]float64, n)
	w.xTrial = make([]float64, n)
	w.gradPsiTrial = make([]float64, n)
	w.yHatTrial = make([]float64, m)
	w.xHatTrial = make([]float64, n)
	w.rGammaTrial = make([]float64, n)
	w.scratchN = make([]float64, n)
	w.scratchM = make([]float64, m)
	w.sPair = make([]float64, n)
	w.yPair = make([]float64, n)
	w.history = lbfgs.New(n, memory, curvatureEps)
	return w
}
