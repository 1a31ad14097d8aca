package orbit

import (
	"bhsim/internal/metric"
	"bhsim/internal/potential"
	"bhsim/internal/spacetime"
)

// MinSamples is the smallest accepted sample count for one integration.
const MinSamples = 10

// Params describes one orbit integration over phi in [0, PhiMax] with N
// samples, starting at R0 with the initial radial motion given by Sign.
type Params struct {
	Particle spacetime.Particle
	E        float64
	L        float64
	R0       float64
	Sign     spacetime.RadialSign
	PhiMax   float64
	N        int
}

func (p Params) validate() error {
	if !p.Particle.Valid() {
		return spacetime.ErrParticleKind
	}
	if !p.Sign.Valid() {
		return spacetime.NewParamError("radial_sign", 0, spacetime.ErrParameterBounds)
	}
	if p.E <= 0 {
		return spacetime.NewParamError("E", p.E, spacetime.ErrParameterBounds)
	}
	if p.L <= 0 {
		return spacetime.NewParamError("L", p.L, spacetime.ErrParameterBounds)
	}
	if p.R0 <= 0 {
		return spacetime.NewParamError("r0", p.R0, spacetime.ErrParameterBounds)
	}
	if p.PhiMax <= 0 {
		return spacetime.NewParamError("phi_max", p.PhiMax, spacetime.ErrParameterBounds)
	}
	if p.N < MinSamples {
		return spacetime.NewParamError("n", float64(p.N), spacetime.ErrParameterBounds)
	}
	return nil
}

// classicalSystem is the inverse-radius orbit equation of the Schwarzschild
// metric as a first-order pair (u, u'):
//
//	massive: u'' + u = M/L^2 + 3Mu^2
//	photon:  u'' + u = 3Mu^2
type classicalSystem struct {
	m      float64
	l2     float64
	photon bool
}

func (s *classicalSystem) Derive(x State, _ float64) State {
	u, up := x[0], x[1]
	rhs := 3.0 * s.m * u * u
	if !s.photon {
		rhs += s.m / s.l2
	}
	return State{up, rhs - u}
}

func (s *classicalSystem) Halted() bool { return false }

// IntegrateClassical traces r(phi) on the classical metric through
// u(phi) = 1/r. When u drops to zero or below the orbit is not continuable
// as formulated; the sample and everything after it become NaN and stepping
// stops. That is a normal termination mode, not an error.
func IntegrateClassical(m metric.Schwarzschild, p Params) (phi, r []float64, err error) {
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}
	if err := p.validate(); err != nil {
		return nil, nil, err
	}

	drdphi0, err := RadialRate(m, p.Particle, p.E, p.L, p.R0, p.Sign)
	if err != nil {
		return nil, nil, err
	}

	phi = potential.Linspace(0, p.PhiMax, p.N)
	r = make([]float64, p.N)
	h := phi[1] - phi[0]

	sys := &classicalSystem{
		m:      m.M,
		l2:     p.L * p.L,
		photon: p.Particle == spacetime.Photon,
	}

	x := State{1.0 / p.R0, -(1.0 / (p.R0 * p.R0)) * drdphi0}
	r[0] = p.R0

	var step rk4
	for i := 0; i < p.N-1; i++ {
		x = step.step(sys, x, phi[i], h)
		if x[0] <= 0 || !x.IsValid() {
			fillNaN(r[i+1:])
			break
		}
		r[i+1] = 1.0 / x[0]
	}

	return phi, r, nil
}
