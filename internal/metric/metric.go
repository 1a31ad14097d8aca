package metric

import (
	"math"

	"bhsim/internal/spacetime"
)

// Geometry evaluates the radial metric coefficient f(r) of a static,
// spherically symmetric spacetime in Schwarzschild-like coordinates.
type Geometry interface {
	F(r float64) float64
}

// Schwarzschild is the classical point-mass metric, G=c=1.
type Schwarzschild struct {
	M float64
}

func NewSchwarzschild(m float64) Schwarzschild {
	return Schwarzschild{M: m}
}

// F returns 1 - 2M/r. Defined for r > 0; r = 0 is the curvature singularity
// and callers keep r away from 2M unless probing the horizon.
func (s Schwarzschild) F(r float64) float64 {
	return 1.0 - 2.0*s.M/r
}

// Horizon returns the Schwarzschild radius 2M.
func (s Schwarzschild) Horizon() float64 {
	return 2.0 * s.M
}

// PhotonSphere returns the circular photon orbit radius 3M.
func (s Schwarzschild) PhotonSphere() float64 {
	return 3.0 * s.M
}

func (s Schwarzschild) Validate() error {
	if s.M <= 0 {
		return spacetime.NewParamError("M", s.M, spacetime.ErrParameterBounds)
	}
	return nil
}

// NCSchwarzschild is the noncommutative-geometry regularization of the
// Schwarzschild metric: the point mass is replaced by a Gaussian-smeared
// distribution of width sqrt(Theta), which removes the r=0 singularity.
// The metric may have zero, one, or two horizons depending on M/sqrt(Theta);
// no closed form is assumed for any of them.
type NCSchwarzschild struct {
	M     float64
	Theta float64
}

func NewNCSchwarzschild(m, theta float64) NCSchwarzschild {
	return NCSchwarzschild{M: m, Theta: theta}
}

// SmearedMass returns the mass enclosed within radius r,
//
//	m(r) = (2M/sqrt(pi)) * gamma(3/2, r^2/(4*Theta))
//
// with the lower incomplete gamma function evaluated through its erf closed
// form: gamma(3/2, x) = (sqrt(pi)/2)*erf(sqrt(x)) - sqrt(x)*exp(-x).
func (s NCSchwarzschild) SmearedMass(r float64) float64 {
	x := r * r / (4.0 * s.Theta)
	sx := math.Sqrt(x)
	gamma := 0.5*math.SqrtPi*math.Erf(sx) - sx*math.Exp(-x)
	return 2.0 * s.M / math.SqrtPi * gamma
}

// F returns 1 - 2m(r)/r. As Theta -> 0 the smeared mass saturates at M and
// this converges to the classical coefficient at fixed r >> sqrt(Theta).
func (s NCSchwarzschild) F(r float64) float64 {
	return 1.0 - 2.0*s.SmearedMass(r)/r
}

func (s NCSchwarzschild) Validate() error {
	if s.M <= 0 {
		return spacetime.NewParamError("M", s.M, spacetime.ErrParameterBounds)
	}
	if s.Theta <= 0 {
		return spacetime.NewParamError("theta", s.Theta, spacetime.ErrParameterBounds)
	}
	return nil
}
