package config

import "sort"

// Presets are named landfill scenarios. Each starts from Default and
// overrides only what characterizes the scenario.
var Presets = map[string]func() *Config{
	"baseline": Default,
	"wet-season": func() *Config {
		cfg := Default()
		cfg.Rainfall = 60.0
		cfg.Infiltration = 0.8
		cfg.Velocity = 0.1
		return cfg
	},
	"arid": func() *Config {
		cfg := Default()
		cfg.Rainfall = 1.0
		cfg.Infiltration = 0.2
		cfg.Velocity = 0.01
		cfg.Dispersion = 0.005
		return cfg
	},
	"clay-liner": func() *Config {
		cfg := Default()
		cfg.LinerThickness = 2.0
		cfg.LinerPermeability = 1e-10
		cfg.SorptionKd = 3.0
		return cfg
	},
	"bioreactor": func() *Config {
		cfg := Default()
		cfg.MuMax = 0.4
		cfg.Ks = 20.0
		cfg.InitBiomass = 200.0
		cfg.BiogasYield = 0.8
		cfg.Days = 365.0
		return cfg
	},
}

func Preset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
