package numdiff

import (
	"testing"

	"github.com/alpaqa-go/alpaqa/box"
	"github.com/alpaqa-go/alpaqa/problem"
)

func TestCheckGradFDetectsMatch(t *testing.T) {
	p := &problem.Problem{
		N: 2,
		C: box.NewUnbounded(2),
		EvalF: func(x []float64) float64 {
			return x[0]*x[0] + 3*x[1]*x[1]*x[1]
		},
		EvalGradF: func(x []float64, out []float64) {
			out[0] = 2 * x[0]
			out[1] = 9 * x[1] * x[1]
		},
	}
	if err := CheckGradF(p, []float64{1.3, -0.7}, 1e-5); err != nil {
		t.Fatalf("expected gradient to match: %v", err)
	}
}

func TestCheckGradFDetectsMismatch(t *testing.T) {
	p := &problem.Problem{
		N: 1,
		C: box.NewUnbounded(1),
		EvalF: func(x []float64) float64 {
			return x[0] * x[0]
		},
		EvalGradF: func(x []float64, out []float64) {
			out[0] = 3 * x[0] // wrong on purpose
		},
	}
	if err := CheckGradF(p, []float64{2}, 1e-5); err == nil {
		t.Fatal("expected mismatch to be detected")
	}
}

func TestCheckGradGDetectsMatch(t *testing.T) {
	p := &problem.Problem{
		N: 2, M: 2,
		C: box.NewUnbounded(2),
		D: box.NewUnbounded(2),
		EvalF: func(x []float64) float64 { return 0 },
		EvalGradF: func(x []float64, out []float64) {
			out[0], out[1] = 0, 0
		},
		EvalG: func(x []float64, out []float64) {
			out[0] = x[0]*x[1]
			out[1] = x[0] - x[1]*x[1]
		},
		EvalGradGProd: func(x, y, out []float64) {
			// Jᵀy with J = [[x1, x0], [1, -2x1]]
			out[0] = y[0]*x[1] + y[1]
			out[1] = y[0]*x[0] - y[1]*2*x[1]
		},
	}
	if err := CheckGradG(p, []float64{1.5, -2.0}, 1e-5); err != nil {
		t.Fatalf("expected jacobian to match: %v", err)
	}
}
