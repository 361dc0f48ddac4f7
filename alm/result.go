// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package alm

import (
	"time"

	"github.com/alpaqa-go/alpaqa/problem"
)

// InnerStats accumulates bookkeeping across every inner PANOC solve an
// ALM run performs, the outer-driver analogue of the per-call
// panoc.Result fields.
type InnerStats struct {
	TotalIterations          int
	TotalLineSearchBacktracks int
	TotalLBFGSRejections      int64
}

// Result is the outcome of one ALM solve.
type Result struct {
	Status Status

	X, Y, Sigma []float64

	F, Psi, GradPsiInfNorm, RGammaInfNorm, ViolationInfNorm float64

	OuterIterations int
	Inner           InnerStats
	Evaluations     problem.Snapshot

	Elapsed time.Duration
}
