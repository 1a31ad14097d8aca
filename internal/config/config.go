package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMass    = 1.0
	DefaultEnergy  = 1.0
	DefaultAngMom  = 4.0
	DefaultTheta   = 1.0
	DefaultRMin    = 2.05
	DefaultRMax    = 50.0
	DefaultPhiMax  = 80.0
	DefaultSamples = 4000

	// MaxSamples caps per-request cost at the CLI boundary; the core itself
	// has no upper bound.
	MaxSamples = 200000
)

type Config struct {
	Metric    string          `yaml:"metric"`
	Particle  string          `yaml:"particle"`
	M         float64         `yaml:"mass"`
	Theta     float64         `yaml:"theta"`
	E         float64         `yaml:"energy"`
	L         float64         `yaml:"angular_momentum"`
	Orbit     OrbitConfig     `yaml:"orbit"`
	Potential PotentialConfig `yaml:"potential"`
}

type OrbitConfig struct {
	R0         float64 `yaml:"r0"`
	RadialSign string  `yaml:"radial_sign"`
	PhiMax     float64 `yaml:"phi_max"`
	Samples    int     `yaml:"samples"`
}

type PotentialConfig struct {
	RMin    float64 `yaml:"r_min"`
	RMax    float64 `yaml:"r_max"`
	Samples int     `yaml:"samples"`
}

func DefaultConfig() *Config {
	return &Config{
		Metric:   "schwarzschild",
		Particle: "massive",
		M:        DefaultMass,
		Theta:    DefaultTheta,
		E:        DefaultEnergy,
		L:        DefaultAngMom,
		Orbit: OrbitConfig{
			R0:         20.0,
			RadialSign: "in",
			PhiMax:     DefaultPhiMax,
			Samples:    DefaultSamples,
		},
		Potential: PotentialConfig{
			RMin:    DefaultRMin,
			RMax:    DefaultRMax,
			Samples: 2000,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
