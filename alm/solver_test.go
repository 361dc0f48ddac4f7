// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alpaqa-go/alpaqa/box"
	"github.com/alpaqa-go/alpaqa/panoc"
	"github.com/alpaqa-go/alpaqa/problem"
)

// linearEqualityProblem builds minimize ½‖x‖² s.t. x1+x2 = 1.
func linearEqualityProblem() *problem.Problem {
	return &problem.Problem{
		N: 2, M: 1,
		C: box.NewUnbounded(2),
		D: box.Box{Lower: []float64{1}, Upper: []float64{1}},
		EvalF: func(x []float64) float64 {
			return 0.5 * (x[0]*x[0] + x[1]*x[1])
		},
		EvalGradF: func(x []float64, out []float64) {
			out[0], out[1] = x[0], x[1]
		},
		EvalG: func(x []float64, out []float64) {
			out[0] = x[0] + x[1]
		},
		EvalGradGProd: func(x, y, out []float64) {
			out[0] = y[0]
			out[1] = y[0]
		},
	}
}

func TestSolveLinearEqualityConstrained(t *testing.T) {
	p := linearEqualityProblem()
	s, err := New(p, DefaultParams(), panoc.DefaultParams(), zap.NewNop())
	require.NoError(t, err)

	res, err := s.Solve([]float64{0, 0}, []float64{0}, []float64{1}, nil, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.LessOrEqual(t, res.OuterIterations, 5)
	assert.InDelta(t, 0.5, res.X[0], 1e-3)
	assert.InDelta(t, 0.5, res.X[1], 1e-3)
	assert.InDelta(t, -0.5, res.Y[0], 1e-2)
}

func TestSolveInfeasibleStartStillConverges(t *testing.T) {
	p := linearEqualityProblem()
	params := DefaultParams()
	params.MaxOuterIter = 10
	s, err := New(p, params, panoc.DefaultParams(), zap.NewNop())
	require.NoError(t, err)

	res, err := s.Solve([]float64{10, 10}, nil, nil, nil, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.LessOrEqual(t, res.ViolationInfNorm, params.OuterTolerance)
}

func TestSolveUnconstrainedDelegatesToInner(t *testing.T) {
	p := &problem.Problem{
		N: 1,
		C: box.NewUnbounded(1),
		EvalF: func(x []float64) float64 {
			return 0.5 * x[0] * x[0]
		},
		EvalGradF: func(x []float64, out []float64) {
			out[0] = x[0]
		},
	}
	s, err := New(p, DefaultParams(), panoc.DefaultParams(), zap.NewNop())
	require.NoError(t, err)

	res, err := s.Solve([]float64{3}, nil, nil, nil, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, Converged, res.Status)
	assert.InDelta(t, 0, res.X[0], 1e-6)
	assert.Equal(t, 1, res.OuterIterations)
}

func TestSolveInterruptPropagatesImmediately(t *testing.T) {
	p := linearEqualityProblem()
	s, err := New(p, DefaultParams(), panoc.DefaultParams(), zap.NewNop())
	require.NoError(t, err)

	flag := &panoc.AtomicFlag{}
	flag.Store(true)

	res, err := s.Solve([]float64{0, 0}, []float64{0}, []float64{1}, flag, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, Interrupted, res.Status)
}

func TestSolveTracksEvaluationCounters(t *testing.T) {
	p := linearEqualityProblem()
	s, err := New(p, DefaultParams(), panoc.DefaultParams(), zap.NewNop())
	require.NoError(t, err)

	res, err := s.Solve([]float64{0, 0}, []float64{0}, []float64{1}, nil, time.Time{})
	require.NoError(t, err)
	assert.Greater(t, res.Evaluations.FEvals, int64(0))
	assert.Greater(t, res.Evaluations.GEvals, int64(0))
}
