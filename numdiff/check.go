package numdiff

import (
	"fmt"
	"math"

	"github.com/alpaqa-go/alpaqa/problem"
)

// CheckGradF compares p.EvalGradF at x against a central-difference
// approximation of f, returning an error describing the first
// component whose relative mismatch exceeds tol.
func CheckGradF(p *problem.Problem, x []float64, tol float64) error {
	n := p.N
	approx := make([]float64, n)
	spec := ApproxSpec{
		N: n, M: 1,
		Object: func(xi, fi []float64) {
			fi[0] = p.EvalF(xi)
		},
	}
	x0 := append([]float64(nil), x...)
	if err := spec.Diff(x0, approx); err != nil {
		return err
	}

	exact := make([]float64, n)
	p.EvalGradF(x, exact)

	return compare("grad_f", exact, approx, tol)
}

// CheckGradG compares p.EvalG's Jacobian-vector product, sampled one
// basis vector at a time, against a central-difference Jacobian of g.
// Only meaningful when p.M > 0.
func CheckGradG(p *problem.Problem, x []float64, tol float64) error {
	n, m := p.N, p.M
	if m == 0 {
		return nil
	}
	jac := make([]float64, n*m)
	spec := ApproxSpec{
		N: n, M: m,
		Object: func(xi, gi []float64) {
			p.EvalG(xi, gi)
		},
	}
	x0 := append([]float64(nil), x...)
	if err := spec.Diff(x0, jac); err != nil {
		return err
	}

	y := make([]float64, m)
	exact := make([]float64, n)
	approxProd := make([]float64, n)
	for row := 0; row < m; row++ {
		for i := range y {
			y[i] = 0
		}
		y[row] = 1
		p.EvalGradGProd(x, y, exact)

		jacRow := jac[row*n : (row+1)*n]
		copy(approxProd, jacRow)

		if err := compare(fmt.Sprintf("grad_g_prod[row=%d]", row), exact, approxProd, tol); err != nil {
			return err
		}
	}
	return nil
}

func compare(name string, exact, approx []float64, tol float64) error {
	for i := range exact {
		diff := math.Abs(exact[i] - approx[i])
		scale := math.Max(1, math.Abs(exact[i]))
		if diff/scale > tol {
			return fmt.Errorf("numdiff: %s[%d] mismatch: exact=%v approx=%v (relative diff %v > tol %v)",
				name, i, exact[i], approx[i], diff/scale, tol)
		}
	}
	return nil
}
