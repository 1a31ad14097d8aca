package export

import (
	"fmt"
	"strings"

	"bhsim/internal/orbit"
)

// TrajectoryToSVG renders an orbit as an SVG polyline centered on the black
// hole, with filled horizon and dashed photon-sphere rings when their radii
// are non-zero.
func TrajectoryToSVG(t orbit.Trajectory, horizon, photonSphere float64, size int, strokeColor string) string {
	if t.Points < 2 {
		return ""
	}

	bound := horizon
	if photonSphere > bound {
		bound = photonSphere
	}
	for i := 0; i < t.Points; i++ {
		if v := abs(t.X[i]); v > bound {
			bound = v
		}
		if v := abs(t.Y[i]); v > bound {
			bound = v
		}
	}
	if bound == 0 {
		bound = 1
	}
	bound *= 1.1

	scale := float64(size) / (2 * bound)
	cx := float64(size) / 2
	cy := float64(size) / 2

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, size, size, size, size))

	if horizon > 0 {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="#1a1a1a" stroke="#444"/>
`, cx, cy, horizon*scale))
	}
	if photonSphere > 0 {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="#555" stroke-dasharray="4 4"/>
`, cx, cy, photonSphere*scale))
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, strokeColor))

	for i := 0; i < t.Points; i++ {
		x := cx + t.X[i]*scale
		y := cy - t.Y[i]*scale

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
