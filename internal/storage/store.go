// Package storage persists orbit runs under a base directory, one directory
// per run holding metadata.json and samples.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"bhsim/internal/engine"
	"bhsim/internal/orbit"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string    `json:"id"`
	Metric         string    `json:"metric"`
	Particle       string    `json:"particle"`
	Timestamp      time.Time `json:"timestamp"`
	M              float64   `json:"M"`
	Theta          float64   `json:"theta,omitempty"`
	E              float64   `json:"E"`
	E2             float64   `json:"E2"`
	L              float64   `json:"L"`
	B              float64   `json:"b"`
	R0             float64   `json:"r0"`
	RadialSign     string    `json:"radial_sign"`
	PhiMax         float64   `json:"phi_max"`
	Samples        int       `json:"n"`
	Horizon        float64   `json:"r_horizon,omitempty"`
	PhotonSphere   float64   `json:"photon_sphere,omitempty"`
	Captured       bool      `json:"captured"`
	PointsReturned int       `json:"points_returned"`
}

func (s *Store) Save(res *engine.OrbitResult) (string, error) {
	runID := fmt.Sprintf("%s_%s_%d", res.Meta.Metric, res.Meta.Particle, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Metric:         res.Meta.Metric,
		Particle:       string(res.Meta.Particle),
		Timestamp:      time.Now(),
		M:              res.Meta.M,
		Theta:          res.Meta.Theta,
		E:              res.Meta.E,
		E2:             res.Meta.E2,
		L:              res.Meta.L,
		B:              res.Meta.B,
		R0:             res.Meta.R0,
		RadialSign:     string(res.Meta.Sign),
		PhiMax:         res.Meta.PhiMax,
		Samples:        res.Meta.N,
		Horizon:        res.Meta.Horizon,
		PhotonSphere:   res.Meta.PhotonSphere,
		Captured:       res.Captured,
		PointsReturned: res.Points,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "samples.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"phi", "r", "x", "y"}); err != nil {
		return "", err
	}

	for i := 0; i < res.Points; i++ {
		row := []string{
			strconv.FormatFloat(res.Phi[i], 'g', 17, 64),
			strconv.FormatFloat(res.R[i], 'g', 17, 64),
			strconv.FormatFloat(res.X[i], 'g', 17, 64),
			strconv.FormatFloat(res.Y[i], 'g', 17, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory rebuilds the stored sample sequence of a run.
func (s *Store) LoadTrajectory(runID string) (orbit.Trajectory, error) {
	var t orbit.Trajectory

	csvPath := filepath.Join(s.baseDir, runID, "samples.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return t, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return t, err
	}

	if len(records) < 2 {
		return t, nil
	}

	n := len(records) - 1
	t.Phi = make([]float64, 0, n)
	t.R = make([]float64, 0, n)
	t.X = make([]float64, 0, n)
	t.Y = make([]float64, 0, n)

	for _, record := range records[1:] {
		if len(record) < 4 {
			continue
		}
		vals := make([]float64, 4)
		ok := true
		for j := 0; j < 4; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		t.Phi = append(t.Phi, vals[0])
		t.R = append(t.R, vals[1])
		t.X = append(t.X, vals[2])
		t.Y = append(t.Y, vals[3])
	}

	t.Points = len(t.R)
	return t, nil
}

// SamplesPath returns the on-disk CSV path of a run.
func (s *Store) SamplesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, "samples.csv")
}
