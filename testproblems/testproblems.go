// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testproblems collects the literal end-to-end scenarios for
// the panoc and alm solvers: small, hand-differentiated
// problem.Problem fixtures whose optimum is known in closed form.
package testproblems

import (
	"github.com/alpaqa-go/alpaqa/box"
	"github.com/alpaqa-go/alpaqa/problem"
)

// Quadratic1D builds minimize ½x² over C, n=1, m=0. The unconstrained
// optimum is x*=0.
func Quadratic1D(c box.Box) *problem.Problem {
	return &problem.Problem{
		N: 1,
		C: c,
		EvalF: func(x []float64) float64 {
			return 0.5 * x[0] * x[0]
		},
		EvalGradF: func(x []float64, out []float64) {
			out[0] = x[0]
		},
	}
}

// Himmelblau builds the Himmelblau function
//
//	f(x) = (x₁²+x₂−11)² + (x₁+x₂²−7)²
//
// box-constrained to C, m=0. Its unconstrained minimizer (3, 2) lies
// outside C = [-1,4]×[-1,1.8]; the minimizer reached from (0, 0) over
// that box is x* ≈ (3.0522, 1.8), on the upper x₂ bound.
func Himmelblau(c box.Box) *problem.Problem {
	return &problem.Problem{
		N: 2,
		C: c,
		EvalF: func(x []float64) float64 {
			a := x[0]*x[0] + x[1] - 11
			b := x[0] + x[1]*x[1] - 7
			return a*a + b*b
		},
		EvalGradF: func(x []float64, out []float64) {
			a := x[0]*x[0] + x[1] - 11
			b := x[0] + x[1]*x[1] - 7
			out[0] = 4*a*x[0] + 2*b
			out[1] = 2*a + 4*b*x[1]
		},
	}
}

// BoxOnlyQP builds minimize ½‖x-center‖² over the box c, m=0.
func BoxOnlyQP(c box.Box, center []float64) *problem.Problem {
	centerCopy := append([]float64(nil), center...)
	return &problem.Problem{
		N: len(centerCopy),
		C: c,
		EvalF: func(x []float64) float64 {
			sum := 0.0
			for i, xi := range x {
				d := xi - centerCopy[i]
				sum += d * d
			}
			return 0.5 * sum
		},
		EvalGradF: func(x []float64, out []float64) {
			for i, xi := range x {
				out[i] = xi - centerCopy[i]
			}
		},
	}
}

// LinearEquality builds minimize ½‖x‖² s.t. sum(x) = target, the
// n-dimensional generalisation of the 2-D linear-equality scenario used in the solver tests.
func LinearEquality(n int, target float64) *problem.Problem {
	return &problem.Problem{
		N: n, M: 1,
		C: box.NewUnbounded(n),
		D: box.Box{Lower: []float64{target}, Upper: []float64{target}},
		EvalF: func(x []float64) float64 {
			sum := 0.0
			for _, xi := range x {
				sum += xi * xi
			}
			return 0.5 * sum
		},
		EvalGradF: func(x []float64, out []float64) {
			copy(out, x)
		},
		EvalG: func(x []float64, out []float64) {
			sum := 0.0
			for _, xi := range x {
				sum += xi
			}
			out[0] = sum
		},
		EvalGradGProd: func(x, y, out []float64) {
			for i := range out {
				out[i] = y[0]
			}
		},
	}
}
