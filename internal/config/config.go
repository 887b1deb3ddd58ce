package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/predprey/internal/ecology"
)

const (
	DefaultDt       = 0.01
	DefaultDuration = 20.0
	DefaultAlpha    = 1.5
	DefaultBeta     = 1.0
	DefaultGamma    = 3.0
	DefaultDelta    = 1.0
	DefaultRabbits  = 10.0
	DefaultFoxes    = 4.0
)

type Config struct {
	Scenario   string          `yaml:"scenario"`
	Integrator string          `yaml:"integrator"`
	Dt         float64         `yaml:"dt"`
	Duration   float64         `yaml:"duration"`
	Params     ParamsConfig    `yaml:"params"`
	InitState  InitStateConfig `yaml:"init_state"`
}

type ParamsConfig struct {
	Alpha float64 `yaml:"alpha"`
	Beta  float64 `yaml:"beta"`
	Gamma float64 `yaml:"gamma"`
	Delta float64 `yaml:"delta"`
}

type InitStateConfig struct {
	Rabbits float64 `yaml:"rabbits"`
	Foxes   float64 `yaml:"foxes"`
}

func DefaultConfig() *Config {
	return &Config{
		Scenario:   "classic",
		Integrator: "rk4",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Params: ParamsConfig{
			Alpha: DefaultAlpha,
			Beta:  DefaultBeta,
			Gamma: DefaultGamma,
			Delta: DefaultDelta,
		},
		InitState: InitStateConfig{
			Rabbits: DefaultRabbits,
			Foxes:   DefaultFoxes,
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

// ModelParams converts the YAML view into the immutable model value.
func (c *Config) ModelParams() ecology.Params {
	return ecology.Params{
		Alpha: c.Params.Alpha,
		Beta:  c.Params.Beta,
		Gamma: c.Params.Gamma,
		Delta: c.Params.Delta,
	}
}

func (c *Config) GetInitState() []float64 {
	return []float64{c.InitState.Rabbits, c.InitState.Foxes}
}
