// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package box implements the axis-aligned box C = [lower, upper] ⊆
// (ℝ∪{±∞})ᵈ used both for the decision-variable constraint set C and
// the general-constraint set D, and the Euclidean
// projection onto it.
package box

import (
	"math"

	"github.com/pkg/errors"
)

// Box is an axis-aligned box (lower, upper) ∈ (ℝ∪{±∞})ᵈ × (ℝ∪{±∞})ᵈ.
// ±∞ entries express one-sided bounds, or the absence of a bound
// entirely when both sides are infinite.
type Box struct {
	Lower, Upper []float64
}

// NewUnbounded returns the box [-∞, +∞]ᵖ, the identity under Project.
func NewUnbounded(dim int) Box {
	b := Box{Lower: make([]float64, dim), Upper: make([]float64, dim)}
	for i := range b.Lower {
		b.Lower[i] = math.Inf(-1)
		b.Upper[i] = math.Inf(1)
	}
	return b
}

// Dim returns the dimension of the box.
func (b Box) Dim() int {
	return len(b.Lower)
}

// Validate checks the invariant lowerᵢ ≤ upperᵢ componentwise and that
// Lower and Upper have equal length.
func (b Box) Validate() error {
	if len(b.Lower) != len(b.Upper) {
		return errors.Errorf("box: lower has length %d, upper has length %d", len(b.Lower), len(b.Upper))
	}
	for i, lo := range b.Lower {
		if hi := b.Upper[i]; lo > hi {
			return errors.Errorf("box: lower[%d]=%v exceeds upper[%d]=%v", i, lo, i, hi)
		}
	}
	return nil
}

// Project writes wᵢ = min(max(vᵢ, lowerᵢ), upperᵢ) into dst. dst may
// alias v for an in-place projection. NaN components of v propagate as
// NaN.
func Project(dst, v []float64, b Box) {
	for i, vi := range v {
		dst[i] = clamp(vi, b.Lower[i], b.Upper[i])
	}
}

// ProjectingDifference writes v − project(v, B) into dst. dst may not
// alias v.
func ProjectingDifference(dst, v []float64, b Box) {
	for i, vi := range v {
		dst[i] = vi - clamp(vi, b.Lower[i], b.Upper[i])
	}
}

// Contains reports whether v lies in B up to tol in each component.
func Contains(v []float64, b Box, tol float64) bool {
	for i, vi := range v {
		if vi < b.Lower[i]-tol || vi > b.Upper[i]+tol {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
