// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stopcrit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedPointResidual(t *testing.T) {
	x := []float64{1, 2}
	xHat := []float64{0.5, 1.5}
	dst := make([]float64, 2)
	r := FixedPointResidual(dst, x, xHat, 0.5)

	assert.InDelta(t, 1.0, dst[0], 1e-12)
	assert.InDelta(t, 1.0, dst[1], 1e-12)
	assert.InDelta(t, 1.0, r, 1e-12)
}

func TestCombinedIgnoresMultiplierTermWhenDisabled(t *testing.T) {
	r := Combined(0.3, []float64{10}, []float64{0}, 0)
	assert.Equal(t, 0.3, r)
}

func TestCombinedTakesMax(t *testing.T) {
	r := Combined(0.1, []float64{10}, []float64{0}, 1.0)
	assert.Equal(t, 10.0, r)
}
