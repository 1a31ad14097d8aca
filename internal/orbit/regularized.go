package orbit

import (
	"math"

	"bhsim/internal/metric"
	"bhsim/internal/potential"
	"bhsim/internal/spacetime"
)

// radicandTol absorbs floating-point noise around a turning point before a
// negative radicand is treated as the end of the orbit.
const radicandTol = -1e-12

// ncSystem integrates r(phi) directly on the regularized metric, since its
// inverse-radius equation has no closed algebraic form:
//
//	dr/dphi = sign * (r^2/L) * sqrt(E^2 - f(r)*(1 + L^2/r^2))
//
// (the bracket loses the 1 for photons). Any stage evaluation at a
// non-finite or non-positive radius, or past a turning point, halts the run.
type ncSystem struct {
	geom   metric.NCSchwarzschild
	l      float64
	e2     float64
	photon bool
	sign   float64
	halted bool
}

func (s *ncSystem) Derive(x State, _ float64) State {
	r := x[0]
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		s.halted = true
		return State{0}
	}

	bracket := s.l * s.l / (r * r)
	if !s.photon {
		bracket += 1.0
	}

	rad := s.e2 - s.geom.F(r)*bracket
	if rad < radicandTol {
		s.halted = true
		return State{0}
	}
	if rad < 0 {
		rad = 0
	}

	return State{s.sign * (r * r / s.l) * math.Sqrt(rad)}
}

func (s *ncSystem) Halted() bool { return s.halted }

// IntegrateNC traces r(phi) on the regularized metric. The initial-condition
// gate still runs first: parameters whose radicand is negative at R0 are
// rejected before any stepping.
func IntegrateNC(m metric.NCSchwarzschild, p Params) (phi, r []float64, err error) {
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}
	if err := p.validate(); err != nil {
		return nil, nil, err
	}

	if _, err := RadialRate(m, p.Particle, p.E, p.L, p.R0, p.Sign); err != nil {
		return nil, nil, err
	}

	phi = potential.Linspace(0, p.PhiMax, p.N)
	r = make([]float64, p.N)
	h := phi[1] - phi[0]

	sys := &ncSystem{
		geom:   m,
		l:      p.L,
		e2:     p.E * p.E,
		photon: p.Particle == spacetime.Photon,
		sign:   p.Sign.Factor(),
	}

	x := State{p.R0}
	r[0] = p.R0

	var step rk4
	for i := 0; i < p.N-1; i++ {
		next := step.step(sys, x, phi[i], h)
		if sys.Halted() {
			fillNaN(r[i+1:])
			break
		}
		x = next
		r[i+1] = x[0]
	}

	return phi, r, nil
}
