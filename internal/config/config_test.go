package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Metric != "schwarzschild" || cfg.Particle != "massive" {
		t.Errorf("defaults = %s/%s", cfg.Metric, cfg.Particle)
	}
	if cfg.M != DefaultMass || cfg.E != DefaultEnergy || cfg.L != DefaultAngMom {
		t.Errorf("physics defaults = %g/%g/%g", cfg.M, cfg.E, cfg.L)
	}
	if cfg.Orbit.PhiMax != DefaultPhiMax || cfg.Orbit.Samples != DefaultSamples {
		t.Errorf("orbit defaults = %g/%d", cfg.Orbit.PhiMax, cfg.Orbit.Samples)
	}
	if cfg.Potential.RMin != DefaultRMin || cfg.Potential.RMax != DefaultRMax {
		t.Errorf("potential range = [%g, %g]", cfg.Potential.RMin, cfg.Potential.RMax)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metric = "nc-schwarzschild"
	cfg.Theta = 0.5
	cfg.E = 0.97
	cfg.Orbit.R0 = 12.0
	cfg.Orbit.RadialSign = "out"
	cfg.Potential.Samples = 500

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	partial := "energy: 0.95\norbit:\n  r0: 12\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.E != 0.95 || loaded.Orbit.R0 != 12.0 {
		t.Errorf("overrides lost: E %g, r0 %g", loaded.E, loaded.Orbit.R0)
	}
	if loaded.M != DefaultMass || loaded.Orbit.Samples != DefaultSamples {
		t.Errorf("unset fields must keep defaults: M %g, samples %d", loaded.M, loaded.Orbit.Samples)
	}
}

func TestGetPresetCopies(t *testing.T) {
	a := GetPreset("schwarzschild", "capture")
	if a == nil {
		t.Fatal("capture preset missing")
	}
	if a.E != 0.95 || a.L != 3.0 || a.Orbit.R0 != 10.0 {
		t.Errorf("capture preset = E %g, L %g, r0 %g", a.E, a.L, a.Orbit.R0)
	}

	a.E = 0.1
	b := GetPreset("schwarzschild", "capture")
	if b.E != 0.95 {
		t.Error("mutating a returned preset must not change the catalog")
	}
}

func TestGetPresetNotFound(t *testing.T) {
	if GetPreset("schwarzschild", "nope") != nil {
		t.Error("unknown preset should return nil")
	}
	if GetPreset("kerr", "isco") != nil {
		t.Error("unknown metric should return nil")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets("schwarzschild")
	sort.Strings(names)
	want := []string{"capture", "isco", "photon-ring", "precession"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}

	if ListPresets("kerr") != nil {
		t.Error("unknown metric should list nil")
	}
}
