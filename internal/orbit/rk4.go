// Package orbit integrates equatorial geodesics of spherically symmetric
// black holes with a fixed-step classical Runge-Kutta scheme in the angular
// variable phi.
//
// Two formulations share one stepping skeleton: the classical metric is
// traced through u(phi) = 1/r, the regularized metric through r(phi)
// directly. Mid-flight singularities are not errors; they terminate the run
// early and leave a NaN sentinel tail that [Build] trims off.
package orbit

import "math"

// State is the integration state vector at a given phi.
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// System is an ODE system dX/dphi = Derive(X, phi). Derive may be evaluated
// at intermediate stage points; a system that hits a non-continuable
// configuration during any evaluation reports it through Halted and the
// stepper stops there.
type System interface {
	Derive(x State, phi float64) State
	Halted() bool
}

type rk4 struct {
	k1, k2, k3, k4 State
	scratch        State
}

func (r *rk4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(State, n)
		r.k2 = make(State, n)
		r.k3 = make(State, n)
		r.k4 = make(State, n)
		r.scratch = make(State, n)
	}
}

func (r *rk4) step(sys System, x State, phi, h float64) State {
	n := len(x)
	r.ensureScratch(n)

	copy(r.k1, sys.Derive(x, phi))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*0.5*r.k1[i]
	}
	copy(r.k2, sys.Derive(r.scratch, phi+h*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*0.5*r.k2[i]
	}
	copy(r.k3, sys.Derive(r.scratch, phi+h*0.5))

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + h*r.k3[i]
	}
	copy(r.k4, sys.Derive(r.scratch, phi+h))

	result := make(State, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + h6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}

func fillNaN(s []float64) {
	for i := range s {
		s[i] = math.NaN()
	}
}
