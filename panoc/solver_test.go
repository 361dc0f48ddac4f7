// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alpaqa-go/alpaqa/box"
	"github.com/alpaqa-go/alpaqa/problem"
	"github.com/alpaqa-go/alpaqa/testproblems"
)

// quadratic1D builds minimize (x-3)^2 over x in C, unconstrained in g.
func quadratic1D(c box.Box) *problem.Problem {
	return &problem.Problem{
		N: 1,
		C: c,
		EvalF: func(x []float64) float64 {
			d := x[0] - 3
			return d * d
		},
		EvalGradF: func(x []float64, out []float64) {
			out[0] = 2 * (x[0] - 3)
		},
	}
}

func TestSolveUnconstrainedQuadraticConverges(t *testing.T) {
	p := quadratic1D(box.NewUnbounded(1))
	s, err := New(p, DefaultParams(), zap.NewNop())
	require.NoError(t, err)

	res, err := s.Solve(SubProblem{
		X0:        []float64{0},
		Tolerance: 1e-8,
	})
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.InDelta(t, 3.0, res.X[0], 1e-4)
}

func TestSolveBoxConstrainedQuadraticClampsAtBound(t *testing.T) {
	c := box.Box{Lower: []float64{-1}, Upper: []float64{1}}
	p := quadratic1D(c)
	s, err := New(p, DefaultParams(), zap.NewNop())
	require.NoError(t, err)

	res, err := s.Solve(SubProblem{
		X0:        []float64{0},
		Tolerance: 1e-8,
	})
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.InDelta(t, 1.0, res.X[0], 1e-4)
}

func TestSolveRespectsMaxIter(t *testing.T) {
	p := quadratic1D(box.NewUnbounded(1))
	params := DefaultParams()
	params.MaxIter = 1
	s, err := New(p, params, zap.NewNop())
	require.NoError(t, err)

	res, err := s.Solve(SubProblem{
		X0:        []float64{100},
		Tolerance: 1e-14,
	})
	require.NoError(t, err)
	assert.Equal(t, MaxIter, res.Status)
}

func TestSolveDetectsInterrupt(t *testing.T) {
	p := quadratic1D(box.NewUnbounded(1))
	s, err := New(p, DefaultParams(), zap.NewNop())
	require.NoError(t, err)

	flag := &AtomicFlag{}
	flag.Store(true)

	res, err := s.Solve(SubProblem{
		X0:        []float64{100},
		Tolerance: 1e-14,
		Interrupt: flag,
	})
	require.NoError(t, err)
	assert.Equal(t, Interrupted, res.Status)
}

func TestSolveQuadraticWithGeneralConstraint(t *testing.T) {
	// minimize x^2 + y^2 s.t. x+y in [2, +inf). With multiplier 0 and
	// Σ = 10 the inner sub-problem is x² + y² + 5·(x+y−2)² for x+y < 2,
	// whose minimizer is x = y = 10/11, not the constrained optimum (1, 1).
	p := &problem.Problem{
		N: 2, M: 1,
		C: box.NewUnbounded(2),
		D: box.Box{Lower: []float64{2}, Upper: []float64{1e20}},
		EvalF: func(x []float64) float64 {
			return x[0]*x[0] + x[1]*x[1]
		},
		EvalGradF: func(x []float64, out []float64) {
			out[0] = 2 * x[0]
			out[1] = 2 * x[1]
		},
		EvalG: func(x []float64, out []float64) {
			out[0] = x[0] + x[1]
		},
		EvalGradGProd: func(x, y, out []float64) {
			out[0] = y[0]
			out[1] = y[0]
		},
	}
	s, err := New(p, DefaultParams(), zap.NewNop())
	require.NoError(t, err)

	res, err := s.Solve(SubProblem{
		X0:        []float64{0, 0},
		Y:         []float64{0},
		Sigma:     []float64{10},
		Tolerance: 1e-6,
	})
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.InDelta(t, 10.0/11, res.X[0], 1e-2)
	assert.InDelta(t, 10.0/11, res.X[1], 1e-2)
}

func TestSolveHimmelblauBoxConstrained(t *testing.T) {
	c := box.Box{Lower: []float64{-1, -1}, Upper: []float64{4, 1.8}}
	p := testproblems.Himmelblau(c)
	s, err := New(p, DefaultParams(), zap.NewNop())
	require.NoError(t, err)

	res, err := s.Solve(SubProblem{
		X0:        []float64{0, 0},
		Tolerance: 1e-6,
	})
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	// On the active bound x₂ = 1.8, ∂f/∂x₁ = 0 at x₁ ≈ 3.0522.
	assert.InDelta(t, 3.0522, res.X[0], 1e-2)
	assert.InDelta(t, 1.8, res.X[1], 1e-2)
	assert.LessOrEqual(t, res.RInfNorm, 1e-6)
}

func TestSolveBoxOnlyQPReachesCorner(t *testing.T) {
	c := box.Box{Lower: []float64{0, -1}, Upper: []float64{1, 1}}
	p := testproblems.BoxOnlyQP(c, []float64{2, -3})
	s, err := New(p, DefaultParams(), zap.NewNop())
	require.NoError(t, err)

	res, err := s.Solve(SubProblem{
		X0:        []float64{0, 0},
		Tolerance: 1e-10,
	})
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.LessOrEqual(t, res.Iterations, 5)
	assert.InDelta(t, 1.0, res.X[0], 1e-4)
	assert.InDelta(t, -1.0, res.X[1], 1e-4)
}
