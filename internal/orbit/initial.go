package orbit

import (
	"math"

	"bhsim/internal/metric"
	"bhsim/internal/potential"
	"bhsim/internal/spacetime"
)

// RadialRate computes the signed dr/dphi at r0 consistent with the conserved
// energy E and angular momentum L:
//
//	(dr/dphi)^2 = (r0^4/L^2) * (E^2 - Veff^2(r0))
//
// A negative radicand means no real motion exists at r0 with those conserved
// quantities; this is the physical-consistency gate that runs before any
// stepping begins. The boundary E^2 = Veff^2(r0) is a turning point and
// yields zero.
func RadialRate(g metric.Geometry, p spacetime.Particle, E, L, r0 float64, sign spacetime.RadialSign) (float64, error) {
	v2, err := potential.Veff2(g, p, L, r0)
	if err != nil {
		return 0, err
	}

	e2 := E * E
	inside := (r0 * r0 * r0 * r0 / (L * L)) * (e2 - v2)
	if inside < 0 {
		return 0, &spacetime.ForbiddenError{R0: r0, E2: e2, Veff2: v2}
	}

	return sign.Factor() * math.Sqrt(inside), nil
}
