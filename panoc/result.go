// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panoc

import "time"

// SubProblem is one call's worth of arguments to Solve: the fixed
// multipliers and penalty weights of the outer ALM sub-problem, the
// inner tolerance to reach, and the mixing factor for the combined
// stopping residual, which is configurable per sub-problem rather
// than owned by PANOC's own Params.
type SubProblem struct {
	// X0 is the initial iterate; Solve never mutates the caller's
	// slice and never aliases it with Result.X.
	X0 []float64
	// Y, Sigma are the fixed multiplier and penalty vectors of length
	// M. Both are nil/empty when M == 0.
	Y, Sigma []float64
	// Tolerance is ε_k, the inner stopping tolerance to reach.
	Tolerance float64
	// TauCFactor mixes the multiplier-change term into the combined
	// stopping residual. Zero disables the term.
	TauCFactor float64
	// Interrupt, when non-nil, is sampled once per inner iteration;
	// when it reports true the solve returns with status Interrupted.
	Interrupt *AtomicFlag
	// Deadline, when non-zero, is the wall-clock instant past which
	// the solve returns with status MaxTime.
	Deadline time.Time
}

// Result is the outcome of one PANOC solve.
type Result struct {
	Status Status

	X    []float64 // the returned iterate, owned by the caller
	YHat []float64 // ŷ, the by-product of the final ψ/ŷ evaluation

	F             float64
	Psi           float64
	GradPsiInfNorm float64
	RInfNorm      float64

	Iterations          int
	LineSearchBacktracks int
	LBFGSRejections      int64
	Elapsed              time.Duration
}
