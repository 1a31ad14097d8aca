package orbit

import "math"

// CaptureTolerance is the multiplicative slack on the horizon radius used by
// capture detection. A tunable constant, not a physical law.
const CaptureTolerance = 1.0005

// Trajectory is one discretized orbit in polar and Cartesian form. It is
// immutable once produced and owned by the caller.
type Trajectory struct {
	Phi []float64
	R   []float64
	X   []float64
	Y   []float64

	// Captured reports that the orbit dipped to the horizon. Only computed
	// when a horizon radius is known (the classical metric).
	Captured bool

	// Points is the number of valid samples kept; it may be smaller than
	// the requested count when integration terminated early.
	Points int
}

// Build converts the raw polar sequence to Cartesian coordinates, truncates
// everything from the first non-finite sample on, and flags capture when the
// remaining orbit reaches CaptureTolerance times the horizon. Passing a
// horizon of zero disables capture detection.
func Build(phi, r []float64, horizon float64) Trajectory {
	n := len(r)
	x := make([]float64, n)
	y := make([]float64, n)

	cut := n
	for i := 0; i < n; i++ {
		x[i] = r[i] * math.Cos(phi[i])
		y[i] = r[i] * math.Sin(phi[i])
		if !finite(r[i]) || !finite(x[i]) || !finite(y[i]) {
			cut = i
			break
		}
	}

	t := Trajectory{
		Phi:    phi[:cut],
		R:      r[:cut],
		X:      x[:cut],
		Y:      y[:cut],
		Points: cut,
	}

	if horizon > 0 && cut > 0 {
		minR := t.R[0]
		for _, v := range t.R[1:] {
			if v < minR {
				minR = v
			}
		}
		t.Captured = minR <= CaptureTolerance*horizon
	}

	return t
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
