package orbit

import (
	"math"
	"testing"
)

func TestBuildCartesian(t *testing.T) {
	phi := []float64{0, math.Pi / 2, math.Pi}
	r := []float64{10, 10, 10}

	traj := Build(phi, r, 2.0)

	if traj.Points != 3 {
		t.Fatalf("expected 3 points, got %d", traj.Points)
	}
	if math.Abs(traj.X[0]-10) > 1e-12 || math.Abs(traj.Y[0]) > 1e-12 {
		t.Errorf("sample 0 = (%g, %g), want (10, 0)", traj.X[0], traj.Y[0])
	}
	if math.Abs(traj.X[1]) > 1e-12 || math.Abs(traj.Y[1]-10) > 1e-12 {
		t.Errorf("sample 1 = (%g, %g), want (0, 10)", traj.X[1], traj.Y[1])
	}
	if traj.Captured {
		t.Error("r=10 everywhere should not be captured with horizon 2")
	}
}

func TestBuildTruncatesAtFirstNonFinite(t *testing.T) {
	phi := []float64{0, 1, 2, 3, 4}
	r := []float64{10, 8, math.NaN(), 6, math.NaN()}

	traj := Build(phi, r, 2.0)

	if traj.Points != 2 {
		t.Fatalf("expected 2 points, got %d", traj.Points)
	}
	for i := 0; i < traj.Points; i++ {
		if math.IsNaN(traj.R[i]) || math.IsNaN(traj.X[i]) || math.IsNaN(traj.Y[i]) {
			t.Fatalf("non-finite sample %d survived", i)
		}
	}
	if len(traj.Phi) != 2 || len(traj.X) != 2 || len(traj.Y) != 2 {
		t.Error("all sequences must be truncated to the same length")
	}
}

func TestBuildEmptyWhenFirstSampleInvalid(t *testing.T) {
	traj := Build([]float64{0, 1}, []float64{math.Inf(1), 5}, 2.0)

	if traj.Points != 0 {
		t.Fatalf("expected empty trajectory, got %d points", traj.Points)
	}
	if traj.Captured {
		t.Error("empty trajectory cannot be captured")
	}
}

func TestBuildCaptureTolerance(t *testing.T) {
	phi := []float64{0, 1}

	// horizon 2.0: threshold is 2.001
	inside := Build(phi, []float64{5, 2.0005}, 2.0)
	if !inside.Captured {
		t.Error("min r below 1.0005*horizon should be captured")
	}

	outside := Build(phi, []float64{5, 2.01}, 2.0)
	if outside.Captured {
		t.Error("min r above 1.0005*horizon should not be captured")
	}
}

func TestBuildNoHorizonNoCapture(t *testing.T) {
	traj := Build([]float64{0, 1}, []float64{5, 0.1}, 0)

	if traj.Captured {
		t.Error("capture detection must be disabled without a horizon")
	}
}
