// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package problem

import (
	"sync/atomic"
	"time"
)

// Counters accumulates the number of evaluations and the wall time
// spent per basic function, per the "with-counters" decorator pattern.
// It must be part of the solver Result, not hidden global state: the
// caller of WithCounters owns the returned *Counters and decides what
// to do with it (embed it in a Result, log it, discard it).
//
// All fields are updated with atomic operations so a Problem wrapped
// by WithCounters remains safe to share across concurrently-running
// solves, consistent with the reentrancy guarantee a caller asserts
// for a shared Problem.
type Counters struct {
	FEvals, GradFEvals         int64
	GEvals, GradGProdEvals     int64
	GradGiEvals                int64
	HessLProdEvals, HessLEvals int64

	FNanos, GradFNanos     int64
	GNanos, GradGProdNanos int64
}

// Snapshot is a point-in-time, non-atomic copy of Counters suitable
// for embedding in a Result value.
type Snapshot struct {
	FEvals, GradFEvals         int64
	GEvals, GradGProdEvals     int64
	GradGiEvals                int64
	HessLProdEvals, HessLEvals int64

	FTime, GradFTime, GTime, GradGProdTime time.Duration
}

// Snapshot copies the current counter values.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		FEvals:         atomic.LoadInt64(&c.FEvals),
		GradFEvals:     atomic.LoadInt64(&c.GradFEvals),
		GEvals:         atomic.LoadInt64(&c.GEvals),
		GradGProdEvals: atomic.LoadInt64(&c.GradGProdEvals),
		GradGiEvals:    atomic.LoadInt64(&c.GradGiEvals),
		HessLProdEvals: atomic.LoadInt64(&c.HessLProdEvals),
		HessLEvals:     atomic.LoadInt64(&c.HessLEvals),
		FTime:          time.Duration(atomic.LoadInt64(&c.FNanos)),
		GradFTime:      time.Duration(atomic.LoadInt64(&c.GradFNanos)),
		GTime:          time.Duration(atomic.LoadInt64(&c.GNanos)),
		GradGProdTime:  time.Duration(atomic.LoadInt64(&c.GradGProdNanos)),
	}
}

// WithCounters returns a shallow copy of p whose basic evaluations are
// wrapped to atomically increment a fresh *Counters and accumulate
// monotonic durations, plus the Counters value itself. Optional
// capabilities (∇gᵢ, Hessian products) are counted but not timed,
// since PANOC never calls them on its hot path.
func WithCounters(p *Problem) (*Problem, *Counters) {
	c := &Counters{}
	wrapped := *p

	f, gradF, g, gradGProd := p.EvalF, p.EvalGradF, p.EvalG, p.EvalGradGProd

	wrapped.EvalF = func(x []float64) float64 {
		start := time.Now()
		defer accumulate(&c.FNanos, start)
		atomic.AddInt64(&c.FEvals, 1)
		return f(x)
	}
	wrapped.EvalGradF = func(x, out []float64) {
		start := time.Now()
		defer accumulate(&c.GradFNanos, start)
		atomic.AddInt64(&c.GradFEvals, 1)
		gradF(x, out)
	}
	if g != nil {
		wrapped.EvalG = func(x, out []float64) {
			start := time.Now()
			defer accumulate(&c.GNanos, start)
			atomic.AddInt64(&c.GEvals, 1)
			g(x, out)
		}
	}
	if gradGProd != nil {
		wrapped.EvalGradGProd = func(x, y, out []float64) {
			start := time.Now()
			defer accumulate(&c.GradGProdNanos, start)
			atomic.AddInt64(&c.GradGProdEvals, 1)
			gradGProd(x, y, out)
		}
	}
	if gi := p.EvalGradGi; gi != nil {
		wrapped.EvalGradGi = func(x []float64, i int, out []float64) {
			atomic.AddInt64(&c.GradGiEvals, 1)
			gi(x, i, out)
		}
	}
	if hvp := p.EvalHessLProd; hvp != nil {
		wrapped.EvalHessLProd = func(x, y, v, out []float64) {
			atomic.AddInt64(&c.HessLProdEvals, 1)
			hvp(x, y, v, out)
		}
	}
	if hl := p.EvalHessL; hl != nil {
		wrapped.EvalHessL = func(x, y, out []float64) {
			atomic.AddInt64(&c.HessLEvals, 1)
			hl(x, y, out)
		}
	}

	return &wrapped, c
}

func accumulate(dst *int64, start time.Time) {
	atomic.AddInt64(dst, int64(time.Since(start)))
}
