package config

// Presets are ready-made parameter sets per metric. The isco preset places a
// massive particle on the innermost stable circular orbit (r=6M, L=sqrt(12)M,
// E=sqrt(8/9)); capture spirals a massive particle into the horizon;
// photon-ring sends a photon just outside the critical impact parameter
// b = 3*sqrt(3)*M.
var Presets = map[string]map[string]*Config{
	"schwarzschild": {
		"isco": {
			Metric: "schwarzschild", Particle: "massive",
			M: 1.0, E: 0.9428090415820634, L: 3.4641016151377544,
			Orbit: OrbitConfig{R0: 6.0, RadialSign: "in", PhiMax: 40.0, Samples: 4000},
			Potential: PotentialConfig{RMin: 2.05, RMax: 30.0, Samples: 2000},
		},
		"capture": {
			Metric: "schwarzschild", Particle: "massive",
			M: 1.0, E: 0.95, L: 3.0,
			Orbit: OrbitConfig{R0: 10.0, RadialSign: "in", PhiMax: 40.0, Samples: 2000},
			Potential: PotentialConfig{RMin: 2.05, RMax: 30.0, Samples: 2000},
		},
		"precession": {
			Metric: "schwarzschild", Particle: "massive",
			M: 1.0, E: 0.97, L: 4.0,
			Orbit: OrbitConfig{R0: 20.0, RadialSign: "in", PhiMax: 80.0, Samples: 8000},
			Potential: PotentialConfig{RMin: 2.05, RMax: 50.0, Samples: 2000},
		},
		"photon-ring": {
			Metric: "schwarzschild", Particle: "photon",
			M: 1.0, E: 1.0, L: 5.3,
			Orbit: OrbitConfig{R0: 15.0, RadialSign: "in", PhiMax: 20.0, Samples: 4000},
			Potential: PotentialConfig{RMin: 2.05, RMax: 20.0, Samples: 2000},
		},
	},
	"nc-schwarzschild": {
		"smooth-core": {
			Metric: "nc-schwarzschild", Particle: "massive",
			M: 1.0, Theta: 1.0, E: 0.97, L: 4.0,
			Orbit: OrbitConfig{R0: 15.0, RadialSign: "in", PhiMax: 40.0, Samples: 4000},
			Potential: PotentialConfig{RMin: 0.5, RMax: 30.0, Samples: 2000},
		},
		"near-classical": {
			Metric: "nc-schwarzschild", Particle: "massive",
			M: 1.0, Theta: 0.01, E: 0.97, L: 4.0,
			Orbit: OrbitConfig{R0: 20.0, RadialSign: "in", PhiMax: 40.0, Samples: 4000},
			Potential: PotentialConfig{RMin: 0.5, RMax: 50.0, Samples: 2000},
		},
	},
}

func GetPreset(metricName, preset string) *Config {
	metricPresets, ok := Presets[metricName]
	if !ok {
		return nil
	}
	cfg, ok := metricPresets[preset]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(metricName string) []string {
	metricPresets, ok := Presets[metricName]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(metricPresets))
	for name := range metricPresets {
		names = append(names, name)
	}
	return names
}
