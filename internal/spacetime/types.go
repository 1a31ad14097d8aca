package spacetime

// Particle selects which geodesic family is integrated: timelike orbits for
// massive test particles, null orbits for photons.
type Particle string

const (
	Massive Particle = "massive"
	Photon  Particle = "photon"
)

func (p Particle) Valid() bool {
	return p == Massive || p == Photon
}

// RadialSign is the direction of the initial radial motion: "in" means r
// decreasing, "out" means r increasing.
type RadialSign string

const (
	Inward  RadialSign = "in"
	Outward RadialSign = "out"
)

func (s RadialSign) Valid() bool {
	return s == Inward || s == Outward
}

// Factor is the sign applied to the magnitude of dr/dphi at the start.
func (s RadialSign) Factor() float64 {
	if s == Inward {
		return -1.0
	}
	return 1.0
}
