// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lbfgs implements the limited-memory BFGS accelerator: a
// bounded FIFO history of (s, y) correction pairs and
// Nocedal's two-loop recursion to apply the implicit inverse-Hessian
// operator to a vector. It is deliberately the "bare" two-loop
// recursion, not the full Byrd-Lu-Nocedal-Zhu subspace-minimization
// machinery used for box-constrained L-BFGS-B — PANOC only ever needs
// H applied to a single vector per iteration.
package lbfgs

import (
	"github.com/alpaqa-go/alpaqa/vecops"
)

// DefaultCurvatureEpsilon is the relative curvature threshold used by
// Update when none is supplied.
const DefaultCurvatureEpsilon = 1e-10

// History is a bounded ring of L-BFGS correction pairs. The zero value
// is not usable; construct with New.
type History struct {
	s, y    [][]float64 // ring of length m, each an n-vector
	rho     []float64   // ρᵢ = 1/(yᵢᵀsᵢ)
	n, m    int
	head    int // index of the oldest pair
	count   int // number of pairs currently stored, 0 ≤ count ≤ m
	gamma   float64
	epsilon float64

	alpha []float64 // length-m scratch for Apply's two-loop recursion

	rejections int64 // total curvature-rejected updates, for diagnostics
}

// New allocates a History for n-vectors with memory m (the number of
// retained correction pairs) and curvature threshold epsilon. epsilon
// <= 0 defaults to DefaultCurvatureEpsilon.
func New(n, m int, epsilon float64) *History {
	if epsilon <= 0 {
		epsilon = DefaultCurvatureEpsilon
	}
	h := &History{
		s: make([][]float64, m), y: make([][]float64, m),
		rho:   make([]float64, m),
		alpha: make([]float64, m),
		n:     n, m: m,
		gamma:   1,
		epsilon: epsilon,
	}
	for i := range h.s {
		h.s[i] = make([]float64, n)
		h.y[i] = make([]float64, n)
	}
	return h
}

// Len reports the number of correction pairs currently stored.
func (h *History) Len() int { return h.count }

// Rejections reports how many Update calls were rejected by the
// curvature test since construction; Reset does not clear this count.
func (h *History) Rejections() int64 { return h.rejections }

// Reset empties the history. The initial-Hessian scaling γ̂ reverts to
// 1, so the next Apply call on an empty history is the identity.
func (h *History) Reset() {
	h.count = 0
	h.head = 0
	h.gamma = 1
}

// Update inserts the correction pair (s, y) if it passes the curvature
// test yᵀs > epsilon·‖s‖·‖y‖, evicting the oldest pair first if the
// history is already at capacity m. It reports whether the pair was
// accepted; a rejected pair is dropped silently  — this
// return value exists for diagnostics and tests, not for control flow
// the caller is required to act on.
func (h *History) Update(s, y []float64) bool {
	sy := vecops.Dot(s, y)
	normS := vecops.Norm2(s)
	normY := vecops.Norm2(y)
	if sy <= h.epsilon*normS*normY {
		h.rejections++
		return false
	}

	var slot int
	if h.count < h.m {
		slot = (h.head + h.count) % h.m
		h.count++
	} else {
		slot = h.head
		h.head = (h.head + 1) % h.m
	}

	copy(h.s[slot], s)
	copy(h.y[slot], y)
	h.rho[slot] = 1 / sy

	yy := vecops.Dot(y, y)
	if yy > 0 {
		h.gamma = sy / yy
	}
	return true
}

// Apply computes out ← H·grad using the two-loop recursion over the
// pairs currently stored, traversed most-recent-first. When the
// history is empty, out ← γ̂·grad with γ̂ = 1 (the identity), per
// the curvature test. out may not alias grad. Apply does not allocate;
// it reuses the alpha scratch buffer sized once in New.
func (h *History) Apply(grad, out []float64) {
	copy(out, grad)

	if h.count == 0 {
		return
	}

	alpha := h.alpha[:h.count]
	for k := h.count - 1; k >= 0; k-- {
		slot := (h.head + k) % h.m
		a := h.rho[slot] * vecops.Dot(h.s[slot], out)
		alpha[k] = a
		vecops.Axpy(-a, h.y[slot], out)
	}

	vecops.Scal(h.gamma, out)

	for k := 0; k < h.count; k++ {
		slot := (h.head + k) % h.m
		b := h.rho[slot] * vecops.Dot(h.y[slot], out)
		vecops.Axpy(alpha[k]-b, h.s[slot], out)
	}
}
