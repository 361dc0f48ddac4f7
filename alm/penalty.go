// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alm

import "math"

// updatePenaltyUniform applies the uniform (single_penalty_factor)
// penalty update: every component is scaled by Delta together, or
// left alone, based on the scalar violation norm alone.
func updatePenaltyUniform(sigma []float64, eNormInf, eOldNormInf float64, first bool, p Params) {
	grow := first || eNormInf > p.Theta*eOldNormInf
	if !grow {
		return
	}
	for i := range sigma {
		sigma[i] = math.Min(p.SigmaMax, p.Delta*sigma[i])
	}
}

// updatePenaltyPerConstraint applies the default per-constraint
// penalty update: each component independently decides whether to
// grow, and by how much, based on its own share of the violation.
func updatePenaltyPerConstraint(sigma, e, eOld []float64, eNormInf float64, first bool, p Params) {
	if eNormInf <= 0 {
		return
	}
	for i := range sigma {
		grow := first || math.Abs(e[i]) > p.Theta*math.Abs(eOld[i])
		if !grow {
			continue
		}
		factor := math.Max(p.Delta*math.Abs(e[i])/eNormInf, 1)
		sigma[i] = math.Min(p.SigmaMax, factor*sigma[i])
	}
}
