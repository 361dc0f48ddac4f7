// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package testproblems

import (
	"testing"

	"github.com/alpaqa-go/alpaqa/box"
	"github.com/alpaqa-go/alpaqa/numdiff"
	"github.com/alpaqa-go/alpaqa/problem"
)

func TestFixtureGradientsMatchFiniteDifferences(t *testing.T) {
	cases := []struct {
		name string
		p    *problem.Problem
		x    []float64
	}{
		{"quadratic1d", Quadratic1D(box.NewUnbounded(1)), []float64{1.7}},
		{"himmelblau", Himmelblau(box.NewUnbounded(2)), []float64{0.3, -1.1}},
		{"box_only_qp", BoxOnlyQP(box.NewUnbounded(2), []float64{2, -3}), []float64{0.5, 0.5}},
		{"linear_equality", LinearEquality(2, 1), []float64{0.1, 0.2}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := numdiff.CheckGradF(tc.p, tc.x, 1e-4); err != nil {
				t.Errorf("grad_f mismatch: %v", err)
			}
			if err := numdiff.CheckGradG(tc.p, tc.x, 1e-4); err != nil {
				t.Errorf("grad_g mismatch: %v", err)
			}
		})
	}
}
