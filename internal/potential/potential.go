// Package potential evaluates the two effective-potential forms of the
// radial geodesic equation.
//
// Veff^2 is the form compatible with the conserved-energy-squared equation
// (dr/dlambda)^2 + Veff^2(r) = E^2; Ueff is the energy-linear form in
// u = 1/r, defined for the classical metric only.
package potential

import (
	"bhsim/internal/metric"
	"bhsim/internal/spacetime"
)

// Veff2 returns the squared effective potential at radius r:
//
//	massive: f(r) * (1 + L^2/r^2)
//	photon:  f(r) * (L^2/r^2)
//
// It works with any Geometry. The impact parameter of a photon is b = L/E.
func Veff2(g metric.Geometry, p spacetime.Particle, L, r float64) (float64, error) {
	f := g.F(r)
	lr := L * L / (r * r)
	switch p {
	case spacetime.Massive:
		return f * (1.0 + lr), nil
	case spacetime.Photon:
		return f * lr, nil
	default:
		return 0, spacetime.ErrParticleKind
	}
}

// Veff2Series evaluates Veff2 over a radius grid.
func Veff2Series(g metric.Geometry, p spacetime.Particle, L float64, r []float64) ([]float64, error) {
	if !p.Valid() {
		return nil, spacetime.ErrParticleKind
	}
	out := make([]float64, len(r))
	for i, ri := range r {
		out[i], _ = Veff2(g, p, L, ri)
	}
	return out, nil
}

// Ueff returns the energy-form effective potential of the classical metric,
// written as a cubic in u = 1/r:
//
//	massive: -M*u + (L^2/2)*u^2 - M*L^2*u^3
//	photon:  u^2 - 2M*u^3
func Ueff(M, L float64, p spacetime.Particle, r float64) (float64, error) {
	u := 1.0 / r
	switch p {
	case spacetime.Massive:
		return -M*u + 0.5*L*L*u*u - M*L*L*u*u*u, nil
	case spacetime.Photon:
		return u*u - 2.0*M*u*u*u, nil
	default:
		return 0, spacetime.ErrParticleKind
	}
}

// UeffSeries evaluates Ueff over a radius grid.
func UeffSeries(M, L float64, p spacetime.Particle, r []float64) ([]float64, error) {
	if !p.Valid() {
		return nil, spacetime.ErrParticleKind
	}
	out := make([]float64, len(r))
	for i, ri := range r {
		out[i], _ = Ueff(M, L, p, ri)
	}
	return out, nil
}

// Linspace returns n evenly spaced values over [lo, hi], endpoints included.
func Linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}

