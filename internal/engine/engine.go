// Package engine exposes the four stateless operations of the geodesic lab:
// potential profiles and orbit integrations over the classical and the
// regularized Schwarzschild metrics. Parameters in, immutable result or a
// typed failure out; no cross-call state.
package engine

import (
	"bhsim/internal/metric"
	"bhsim/internal/orbit"
	"bhsim/internal/potential"
	"bhsim/internal/spacetime"
)

const (
	MetricSchwarzschild   = "schwarzschild"
	MetricNCSchwarzschild = "nc-schwarzschild"
)

// Meta carries the derived quantities of a computation alongside its inputs.
type Meta struct {
	Metric       string
	Particle     spacetime.Particle
	M            float64
	Theta        float64
	E            float64
	E2           float64
	L            float64
	B            float64
	Horizon      float64
	PhotonSphere float64
	N            int

	// Orbit-only inputs; zero-valued on potential profiles.
	R0     float64
	Sign   spacetime.RadialSign
	PhiMax float64
}

// PotentialRequest samples the effective potential of the classical metric
// over [RMin, RMax].
type PotentialRequest struct {
	Particle spacetime.Particle
	M        float64
	E        float64
	L        float64
	RMin     float64
	RMax     float64
	N        int
}

func (r PotentialRequest) validate() error {
	return validateProfile(r.Particle, r.E, r.L, r.RMin, r.RMax, r.N)
}

// validateProfile checks the sampling bounds shared by both potential
// requests. L = 0 is legal here: a radial profile still has a potential.
func validateProfile(p spacetime.Particle, e, l, rMin, rMax float64, n int) error {
	if !p.Valid() {
		return spacetime.ErrParticleKind
	}
	if e <= 0 {
		return spacetime.NewParamError("E", e, spacetime.ErrParameterBounds)
	}
	if l < 0 {
		return spacetime.NewParamError("L", l, spacetime.ErrParameterBounds)
	}
	if rMin <= 0 {
		return spacetime.NewParamError("r_min", rMin, spacetime.ErrParameterBounds)
	}
	if rMax <= rMin {
		return spacetime.NewParamError("r_max", rMax, spacetime.ErrParameterBounds)
	}
	if n < orbit.MinSamples {
		return spacetime.NewParamError("n", float64(n), spacetime.ErrParameterBounds)
	}
	return nil
}

// PotentialProfile holds (r, Veff^2, Ueff) triples over an ascending radius
// grid. Ueff only exists for the classical metric.
type PotentialProfile struct {
	R     []float64
	Veff2 []float64
	Ueff  []float64
	Meta  Meta
}

// ComputePotentialProfile evaluates both potential forms of the classical
// metric. The grid must start outside the horizon.
func ComputePotentialProfile(req PotentialRequest) (*PotentialProfile, error) {
	m := metric.NewSchwarzschild(req.M)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}
	if req.RMin <= m.Horizon() {
		return nil, spacetime.NewParamError("r_min", req.RMin, spacetime.ErrSubHorizonStart)
	}

	r := potential.Linspace(req.RMin, req.RMax, req.N)
	v2, err := potential.Veff2Series(m, req.Particle, req.L, r)
	if err != nil {
		return nil, err
	}
	u, err := potential.UeffSeries(req.M, req.L, req.Particle, r)
	if err != nil {
		return nil, err
	}

	return &PotentialProfile{
		R:     r,
		Veff2: v2,
		Ueff:  u,
		Meta:  classicalMeta(m, req.Particle, req.E, req.L, req.N),
	}, nil
}

// NCPotentialRequest samples the regularized metric's potential. No horizon
// precondition: the profile may have no root at all.
type NCPotentialRequest struct {
	Particle spacetime.Particle
	M        float64
	Theta    float64
	E        float64
	L        float64
	RMin     float64
	RMax     float64
	N        int
}

func (r NCPotentialRequest) validate() error {
	return validateProfile(r.Particle, r.E, r.L, r.RMin, r.RMax, r.N)
}

// NCPotentialProfile holds (r, Veff^2) pairs; no Ueff form is defined for
// the regularized metric.
type NCPotentialProfile struct {
	R     []float64
	Veff2 []float64
	Meta  Meta
}

// ComputeNCPotentialProfile evaluates Veff^2 over the regularized metric.
func ComputeNCPotentialProfile(req NCPotentialRequest) (*NCPotentialProfile, error) {
	m := metric.NewNCSchwarzschild(req.M, req.Theta)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := req.validate(); err != nil {
		return nil, err
	}

	r := potential.Linspace(req.RMin, req.RMax, req.N)
	v2, err := potential.Veff2Series(m, req.Particle, req.L, r)
	if err != nil {
		return nil, err
	}

	meta := Meta{
		Metric:   MetricNCSchwarzschild,
		Particle: req.Particle,
		M:        req.M,
		Theta:    req.Theta,
		E:        req.E,
		E2:       req.E * req.E,
		L:        req.L,
		B:        req.L / req.E,
		N:        req.N,
	}

	return &NCPotentialProfile{R: r, Veff2: v2, Meta: meta}, nil
}

// OrbitRequest integrates one orbit over phi in [0, PhiMax].
type OrbitRequest struct {
	Particle spacetime.Particle
	M        float64
	E        float64
	L        float64
	R0       float64
	Sign     spacetime.RadialSign
	PhiMax   float64
	N        int
}

// OrbitResult is a truncated-to-valid trajectory plus its meta.
type OrbitResult struct {
	orbit.Trajectory
	Meta Meta
}

// ComputeOrbit integrates on the classical metric; the start radius must be
// outside the horizon. The result carries the capture flag.
func ComputeOrbit(req OrbitRequest) (*OrbitResult, error) {
	m := metric.NewSchwarzschild(req.M)
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if req.R0 > 0 && req.R0 <= m.Horizon() {
		return nil, spacetime.NewParamError("r0", req.R0, spacetime.ErrSubHorizonStart)
	}

	phi, r, err := orbit.IntegrateClassical(m, orbitParams(req))
	if err != nil {
		return nil, err
	}

	meta := classicalMeta(m, req.Particle, req.E, req.L, req.N)
	meta.R0 = req.R0
	meta.Sign = req.Sign
	meta.PhiMax = req.PhiMax

	return &OrbitResult{
		Trajectory: orbit.Build(phi, r, m.Horizon()),
		Meta:       meta,
	}, nil
}

// NCOrbitRequest integrates one orbit on the regularized metric.
type NCOrbitRequest struct {
	Particle spacetime.Particle
	M        float64
	Theta    float64
	E        float64
	L        float64
	R0       float64
	Sign     spacetime.RadialSign
	PhiMax   float64
	N        int
}

// ComputeNCOrbit integrates on the regularized metric. No horizon
// precondition and no capture flag: the regularized metric has no assumed
// horizon closed form.
func ComputeNCOrbit(req NCOrbitRequest) (*OrbitResult, error) {
	m := metric.NewNCSchwarzschild(req.M, req.Theta)
	if err := m.Validate(); err != nil {
		return nil, err
	}

	p := orbit.Params{
		Particle: req.Particle,
		E:        req.E,
		L:        req.L,
		R0:       req.R0,
		Sign:     req.Sign,
		PhiMax:   req.PhiMax,
		N:        req.N,
	}
	phi, r, err := orbit.IntegrateNC(m, p)
	if err != nil {
		return nil, err
	}

	meta := Meta{
		Metric:   MetricNCSchwarzschild,
		Particle: req.Particle,
		M:        req.M,
		Theta:    req.Theta,
		E:        req.E,
		E2:       req.E * req.E,
		L:        req.L,
		B:        req.L / req.E,
		N:        req.N,
		R0:       req.R0,
		Sign:     req.Sign,
		PhiMax:   req.PhiMax,
	}

	return &OrbitResult{Trajectory: orbit.Build(phi, r, 0), Meta: meta}, nil
}

func orbitParams(req OrbitRequest) orbit.Params {
	return orbit.Params{
		Particle: req.Particle,
		E:        req.E,
		L:        req.L,
		R0:       req.R0,
		Sign:     req.Sign,
		PhiMax:   req.PhiMax,
		N:        req.N,
	}
}

func classicalMeta(m metric.Schwarzschild, p spacetime.Particle, e, l float64, n int) Meta {
	var b float64
	if e != 0 {
		b = l / e
	}
	return Meta{
		Metric:       MetricSchwarzschild,
		Particle:     p,
		M:            m.M,
		E:            e,
		E2:           e * e,
		L:            l,
		B:            b,
		Horizon:      m.Horizon(),
		PhotonSphere: m.PhotonSphere(),
		N:            n,
	}
}
