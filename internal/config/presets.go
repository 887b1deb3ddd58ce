package config

import "sort"

// Presets are named ecosystem scenarios. The classic scenario uses the
// textbook rates; the rest are slower forest ecosystems whose cycles play
// out over decades rather than single time units.
var Presets = map[string]*Config{
	"classic": {
		Scenario: "classic", Integrator: "rk4", Dt: 0.01, Duration: 20.0,
		Params:    ParamsConfig{Alpha: 1.5, Beta: 1.0, Gamma: 3.0, Delta: 1.0},
		InitState: InitStateConfig{Rabbits: 10, Foxes: 4},
	},
	"balanced-forest": {
		Scenario: "balanced-forest", Integrator: "rk4", Dt: 0.05, Duration: 200.0,
		Params:    ParamsConfig{Alpha: 0.1, Beta: 0.02, Gamma: 0.1, Delta: 0.01},
		InitState: InitStateConfig{Rabbits: 40, Foxes: 9},
	},
	"rabbit-paradise": {
		Scenario: "rabbit-paradise", Integrator: "rk4", Dt: 0.05, Duration: 200.0,
		Params:    ParamsConfig{Alpha: 0.15, Beta: 0.01, Gamma: 0.1, Delta: 0.005},
		InitState: InitStateConfig{Rabbits: 100, Foxes: 5},
	},
	"fox-dominance": {
		Scenario: "fox-dominance", Integrator: "rk4", Dt: 0.05, Duration: 200.0,
		Params:    ParamsConfig{Alpha: 0.08, Beta: 0.03, Gamma: 0.08, Delta: 0.02},
		InitState: InitStateConfig{Rabbits: 20, Foxes: 20},
	},
	"fragile-balance": {
		Scenario: "fragile-balance", Integrator: "rk4", Dt: 0.05, Duration: 200.0,
		Params:    ParamsConfig{Alpha: 0.12, Beta: 0.025, Gamma: 0.12, Delta: 0.015},
		InitState: InitStateConfig{Rabbits: 30, Foxes: 12},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
