// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vecops provides the dense-vector level-1 kernel shared by
// problem, lbfgs, stopcrit, panoc and alm. The Dot/Axpy/Scal (unrolled)
// and Copy/Zero routines are adapted from the BLAS level-1 subset curioloop's SLSQP package hand-wrote
// for its SQP least-squares sub-problems; the norm and distance helpers
// delegate to gonum/floats, which every dense-vector file in the example
// pack reaches for instead of reimplementing a stable reduction.
package vecops

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Dot computes the dot product xᵀy. x and y must have equal length.
func Dot(x, y []float64) (dot float64) {
	n := len(x)
	if n == 0 {
		return 0
	}
	m := n % 5
	for i := 0; i < m; i++ {
		dot += x[i] * y[i]
	}
	for i := m; i < n; i += 5 {
		xi := x[i : i+5 : i+5]
		yi := y[i : i+5 : i+5]
		dot += xi[0]*yi[0] + xi[1]*yi[1] + xi[2]*yi[2] + xi[3]*yi[3] + xi[4]*yi[4]
	}
	return dot
}

// Axpy performs y ← alpha·x + y in place.
func Axpy(alpha float64, x, y []float64) {
	n := len(x)
	if n == 0 || alpha == 0 {
		return
	}
	m := n % 4
	for i := 0; i < m; i++ {
		y[i] += alpha * x[i]
	}
	for i := m; i < n; i += 4 {
		xi := x[i : i+4 : i+4]
		yi := y[i : i+4 : i+4]
		yi[0] += alpha * xi[0]
		yi[1] += alpha * xi[1]
		yi[2] += alpha * xi[2]
		yi[3] += alpha * xi[3]
	}
}

// Scal scales x in place by alpha.
func Scal(alpha float64, x []float64) {
	n := len(x)
	if n == 0 {
		return
	}
	m := n % 5
	for i := 0; i < m; i++ {
		x[i] *= alpha
	}
	for i := m; i < n; i += 5 {
		xi := x[i : i+5 : i+5]
		xi[0] *= alpha
		xi[1] *= alpha
		xi[2] *= alpha
		xi[3] *= alpha
		xi[4] *= alpha
	}
}

// Copy copies src into dst. dst and src must have equal length.
func Copy(dst, src []float64) {
	copy(dst, src)
}

// Zero fills x with zero.
func Zero(x []float64) {
	for i := range x {
		x[i] = 0
	}
}

// Sub computes dst ← a − b elementwise. dst may not alias a or b.
func Sub(dst, a, b []float64) {
	for i := range dst {
		dst[i] = a[i] - b[i]
	}
}

// Combine computes dst ← (1-tau)·p + tau·d + x elementwise, the PANOC
// line-search candidate xₖ + (1−τ)pₖ + τdₖ. dst may not alias p, d or x.
func Combine(dst []float64, x, p, d []float64, tau float64) {
	for i := range dst {
		dst[i] = x[i] + (1-tau)*p[i] + tau*d[i]
	}
}

// Norm2 computes the Euclidean norm of x using a scaled sum of squares to
// avoid premature overflow/underflow, the way the BLAS dnrm2 routine does.
func Norm2(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return math.Abs(x[0])
	}
	scale, ssq := 0.0, 1.0
	for _, xi := range x {
		if a := math.Abs(xi); a > 0 {
			if scale < a {
				r := scale / a
				ssq = 1 + ssq*r*r
				scale = a
			} else {
				r := a / scale
				ssq += r * r
			}
		}
	}
	return scale * math.Sqrt(ssq)
}

// NormInf computes ‖x‖∞, the canonical stationarity measure used by both
// the PANOC fixed-point residual and the ALM constraint-violation vector.
func NormInf(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, math.Inf(1))
}

// Distance computes ‖a-b‖∞, used for the "change in iterate" diagnostics.
func Distance(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	return floats.Distance(a, b, math.Inf(1))
}

// AllFinite reports whether every component of x is a finite float64.
func AllFinite(x []float64) bool {
	for _, xi := range x {
		if math.IsNaN(xi) || math.IsInf(xi, 0) {
			return false
		}
	}
	return true
}
