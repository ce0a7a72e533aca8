package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/leachsim/internal/leach"
)

const (
	DefaultDepth        = 30.0
	DefaultDays         = 100.0
	DefaultDx           = 1.0
	DefaultDt           = 1.0
	DefaultVelocity     = 0.05
	DefaultDispersion   = 0.01
	DefaultRainfall     = 10.0
	DefaultInfiltration = 0.5
	DefaultMuMax        = 0.1
	DefaultKs           = 50.0
)

type Config struct {
	Depth             float64 `yaml:"depth"`              // m
	Days              float64 `yaml:"days"`               // simulated days
	Dx                float64 `yaml:"dx"`                 // m
	Dt                float64 `yaml:"dt"`                 // days
	Velocity          float64 `yaml:"velocity"`           // m/day
	Dispersion        float64 `yaml:"dispersion"`         // m2/day
	Rainfall          float64 `yaml:"rainfall"`           // mm/day
	Infiltration      float64 `yaml:"infiltration"`       // 0-1
	LinerThickness    float64 `yaml:"liner_thickness"`    // m
	LinerPermeability float64 `yaml:"liner_permeability"` // m/s
	SorptionKd        float64 `yaml:"sorption_kd"`        // L/kg
	MuMax             float64 `yaml:"mu_max"`             // 1/day
	Ks                float64 `yaml:"ks"`                 // mg/L
	BiogasYield       float64 `yaml:"biogas_yield"`       // L/g COD
	InitConcentration float64 `yaml:"init_concentration"` // mg/L
	InitBiomass       float64 `yaml:"init_biomass"`       // mg/L
}

func Default() *Config {
	return &Config{
		Depth:             DefaultDepth,
		Days:              DefaultDays,
		Dx:                DefaultDx,
		Dt:                DefaultDt,
		Velocity:          DefaultVelocity,
		Dispersion:        DefaultDispersion,
		Rainfall:          DefaultRainfall,
		Infiltration:      DefaultInfiltration,
		LinerThickness:    1.0,
		LinerPermeability: 1e-9,
		SorptionKd:        1.0,
		MuMax:             DefaultMuMax,
		Ks:                DefaultKs,
		BiogasYield:       0.5,
		InitConcentration: 100.0,
		InitBiomass:       50.0,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
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

func (c *Config) Grid() (leach.Grid, error) {
	return leach.NewGrid(c.Depth, c.Days, c.Dx, c.Dt)
}

func (c *Config) Params() leach.Params {
	return leach.Params{
		Velocity:       c.Velocity,
		Dispersion:     c.Dispersion,
		Rainfall:       c.Rainfall,
		Infiltration:   c.Infiltration,
		LinerThickness: c.LinerThickness,
		LinerPerm:      c.LinerPermeability,
		SorptionKd:     c.SorptionKd,
		MuMax:          c.MuMax,
		Ks:             c.Ks,
		BiogasYield:    c.BiogasYield,
	}
}
