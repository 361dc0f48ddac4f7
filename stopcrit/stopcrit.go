// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package stopcrit factors out the fixed-point-residual stopping
// criterion shared by the PANOC inner solver and, through its mixed
// form, the ALM outer driver — so the two never compute it with
// subtly different rounding. Only the fixed-point-residual variant the
// PANOC/ALM solvers need is implemented here.
package stopcrit

import "github.com/alpaqa-go/alpaqa/vecops"

// FixedPointResidual writes Rγ(x) = (x − x̂)/γ into dst and returns
// ‖Rγ(x)‖∞, the canonical stationarity measure. dst
// may alias neither x nor xHat.
func FixedPointResidual(dst, x, xHat []float64, gamma float64) float64 {
	inv := 1 / gamma
	for i := range dst {
		dst[i] = (x[i] - xHat[i]) * inv
	}
	return vecops.NormInf(dst)
}

// Combined computes the mixed PANOC stopping residual of the inner loop step
// 6:
//
//	r = max(‖Rγ(x)‖∞, τ_c·‖ŷ − y‖∞)
//
// The second term is only meaningful when M > 0; callers pass tauC ==
// 0 (or an empty yHat/y pair) to disable it, which folds the max down
// to the first term.
func Combined(rNormInf float64, yHat, y []float64, tauC float64) float64 {
	if tauC <= 0 || len(yHat) == 0 {
		return rNormInf
	}
	mixed := tauC * vecops.Distance(yHat, y)
	if mixed > rNormInf {
		return mixed
	}
	return rNormInf
}
