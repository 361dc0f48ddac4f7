// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package panoc

import "sync/atomic"

// AtomicFlag is the caller-provided, read-only (from the solver's
// point of view) interrupt flag: sampled once per inner
// iteration, never written by the solver.
type AtomicFlag = atomic.Bool
