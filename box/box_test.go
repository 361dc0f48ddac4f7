// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package box

import (
	"math"
	"testing"
)

func TestProjectIdempotent(t *testing.T) {
	b := Box{Lower: []float64{-1, 0}, Upper: []float64{1, 4}}
	v := []float64{-5, 10}

	w := make([]float64, 2)
	Project(w, v, b)
	w2 := make([]float64, 2)
	Project(w2, w, b)

	for i := range w {
		if w[i] != w2[i] {
			t.Fatalf("project not idempotent at %d: %v vs %v", i, w[i], w2[i])
		}
	}
	if !Contains(w, b, 0) {
		t.Fatalf("projected point %v not in box", w)
	}
}

func TestProjectUnboundedIsIdentity(t *testing.T) {
	b := NewUnbounded(3)
	v := []float64{-1e10, 0, 1e10}
	w := make([]float64, 3)
	Project(w, v, b)
	for i := range v {
		if w[i] != v[i] {
			t.Fatalf("unbounded projection changed component %d: %v -> %v", i, v[i], w[i])
		}
	}
}

func TestProjectingDifference(t *testing.T) {
	b := Box{Lower: []float64{0}, Upper: []float64{1}}
	v := []float64{5}
	d := make([]float64, 1)
	ProjectingDifference(d, v, b)
	if d[0] != 4 {
		t.Fatalf("ProjectingDifference() = %v, want 4", d[0])
	}
}

func TestValidate(t *testing.T) {
	ok := Box{Lower: []float64{0, 0}, Upper: []float64{1, 1}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := Box{Lower: []float64{2}, Upper: []float64{1}}
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for lower > upper")
	}
}

func TestProjectNaNPropagates(t *testing.T) {
	b := Box{Lower: []float64{0}, Upper: []float64{1}}
	v := []float64{math.NaN()}
	w := make([]float64, 1)
	Project(w, v, b)
	if !math.IsNaN(w[0]) {
		t.Fatalf("expected NaN to propagate, got %v", w[0])
	}
}
