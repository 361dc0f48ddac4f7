package numdiff

import (
	"errors"
	"math"
)

var cubeEps = math.Pow(math.Nextafter(1, 2)-1, float64(1)/3)

// ApproxSpec estimates the Jacobian of Object via central differences.
//
// # Reference:
//
//   - https://en.wikipedia.org/wiki/Finite_difference
//   - https://github.com/scipy/scipy/blob/main/scipy/optimize/_numdiff.py
//
// # License
//
//   - https://github.com/scipy/scipy/blob/main/LICENSE.txt
type ApproxSpec struct {
	N, M int
	// Function of which to estimate the derivatives.
	// The argument x passed to this function is an n-vector.
	// The result is store in an m-vector y.
	Object func(x, y []float64)
	// Relative step size used to compute absolute step size.
	// The default absolute step size is computed as h = RelStep * sign(x0) * max(1, abs(x0)) with RelStep being selected automatically.
	// Otherwise, absolute step size is computed as h = RelStep * sign(x0) * abs(x0) when RelStep is provided.
	RelStep float64
	// Absolute step size to use. The RelStep is used when AbsStep is not provided.
	AbsStep float64
	approxCtx
}

type approxCtx struct {
	f0, f1, f2 []float64
	absStep    []float64
}

// Check the parameters and initialize approxCtx.
func (as *ApproxSpec) Check(x0, diff []float64) (err error) {

	switch {
	case as.N <= 0 || as.M <= 0:
		err = errors.New("negative dimensions")
	case as.Object == nil:
		err = errors.New("object function is required")
	case as.N != len(x0):
		return errors.New("invalid x0 dimensions")
	case as.N*as.M != len(diff):
		return errors.New("invalid diff dimensions")
	}

	if len(as.f0) != as.M {
		as.f0 = make([]float64, as.M)
		as.f1 = make([]float64, as.M)
		as.f2 = make([]float64, as.M)
	}
	if len(as.absStep) != as.N {
		as.absStep = make([]float64, as.N)
	}
	return
}

// Diff calculates the central-difference approximation of the Jacobian.
func (as *ApproxSpec) Diff(x0, diff []float64) error {

	if err := as.Check(x0, diff); err != nil {
		return err
	}

	as.absoluteStep(x0)
	as.approxCentral(x0, diff)

	return nil
}

func (as *ApproxSpec) absoluteStep(x0 []float64) {
	h := as.absStep
	if len(h) != len(x0) {
		panic("bound check error")
	}

	abs := as.AbsStep
	rel := as.RelStep
	if abs == 0 && rel == 0 {
		for i, v := range x0 {
			h[i] = math.Copysign(cubeEps, v) * math.Max(1.0, math.Abs(v))
		}
	} else {
		for i, v := range x0 {
			s := abs
			if s == 0 {
				s = math.Copysign(rel, v) * math.Abs(v)
			}
			d := (v + s) - v
			if d == 0 {
				s = math.Copysign(cubeEps, v) * math.Max(1.0, math.Abs(v))
			}
			h[i] = s
		}
	}
}

func (as *ApproxSpec) approxCentral(x0, df []float64) {

	f0, f1, f2, h, n := as.f0, as.f1, as.f2, as.absStep, as.N
	fun := as.Object
	fun(x0, f0)

	for i, s := range h {
		x := x0[i]
		d := 1.0 / (2 * s)

		x0[i] = x - s
		fun(x0, f1)
		x0[i] = x + s
		fun(x0, f2)

		for j := range f0 {
			df[i+j*n] = (f2[j] - f1[j]) * d
		}
		x0[i] = x
	}
}
