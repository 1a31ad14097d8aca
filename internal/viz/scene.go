package viz

import (
	"math"

	"bhsim/internal/orbit"
)

// Scene frames one trajectory on a braille canvas together with the horizon
// and photon-sphere rings when the metric provides them. Bounds are fixed at
// construction so partial renders of the same run do not jitter.
type Scene struct {
	traj    orbit.Trajectory
	horizon float64
	photon  float64

	canvas       *Canvas
	minX, minY   float64
	spanX, spanY float64
	pxW, pxH     int
}

// NewScene sizes the view to hold the whole trajectory plus any rings, with
// a 10% margin. Zero horizon/photonSphere radii draw nothing.
func NewScene(t orbit.Trajectory, horizon, photonSphere float64, w, h int) *Scene {
	s := &Scene{
		traj:    t,
		horizon: horizon,
		photon:  photonSphere,
		canvas:  NewCanvas(w, h),
		pxW:     w * 2,
		pxH:     h * 4,
	}

	bound := math.Max(horizon, photonSphere)
	for i := 0; i < t.Points; i++ {
		bound = math.Max(bound, math.Max(math.Abs(t.X[i]), math.Abs(t.Y[i])))
	}
	if bound == 0 {
		bound = 1
	}
	bound *= 1.1

	s.minX, s.minY = -bound, -bound
	s.spanX, s.spanY = 2*bound, 2*bound
	return s
}

func (s *Scene) project(x, y float64) (int, int) {
	// y grows upward in physical space, downward on the canvas
	px := int((x - s.minX) / s.spanX * float64(s.pxW-1))
	py := int((1 - (y-s.minY)/s.spanY) * float64(s.pxH-1))
	return px, py
}

// Render draws the first upTo samples (everything when upTo is out of
// range) and returns the canvas as text.
func (s *Scene) Render(upTo int) string {
	if upTo <= 0 || upTo > s.traj.Points {
		upTo = s.traj.Points
	}

	s.canvas.Clear()

	cx, cy := s.project(0, 0)
	if s.horizon > 0 {
		s.drawRing(cx, cy, s.horizon)
	}
	if s.photon > 0 {
		s.drawRing(cx, cy, s.photon)
	}

	for i := 1; i < upTo; i++ {
		x0, y0 := s.project(s.traj.X[i-1], s.traj.Y[i-1])
		x1, y1 := s.project(s.traj.X[i], s.traj.Y[i])
		s.canvas.DrawLine(x0, y0, x1, y1)
	}
	if upTo == 1 {
		px, py := s.project(s.traj.X[0], s.traj.Y[0])
		s.canvas.Set(px, py)
	}

	return s.canvas.String()
}

func (s *Scene) drawRing(cx, cy int, radius float64) {
	rx := radius / s.spanX * float64(s.pxW-1)
	ry := radius / s.spanY * float64(s.pxH-1)
	s.canvas.DrawCircle(cx, cy, rx, ry)
}
