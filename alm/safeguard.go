// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alm

import (
	"math"

	"github.com/alpaqa-go/alpaqa/box"
)

// projectMultipliers writes the safeguarded multiplier update into
// dst: each component of yHat is substituted with 0 if non-finite,
// then clamped into Y(M)ᵢ = [ŷ_lbᵢ, ŷ_ubᵢ] with
//
//	ŷ_lbᵢ = 0 if d.Lowerᵢ = −∞ else −bound
//	ŷ_ubᵢ = 0 if d.Upperᵢ = +∞ else +bound
//
// This resolves the NaN-handling gap the original project_y left as a
// TODO: substitute 0 for non-finite components before projecting,
// recorded as a decision in DESIGN.md.
func projectMultipliers(dst, yHat []float64, d box.Box, bound float64) {
	for i, yi := range yHat {
		if math.IsNaN(yi) || math.IsInf(yi, 0) {
			yi = 0
		}
		lb, ub := 0.0, 0.0
		if !math.IsInf(d.Lower[i], -1) {
			lb = -bound
		}
		if !math.IsInf(d.Upper[i], 1) {
			ub = bound
		}
		dst[i] = clampMultiplier(yi, lb, ub)
	}
}

func clampMultiplier(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
