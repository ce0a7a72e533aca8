package leach

import (
	"fmt"
	"math"
)

// Profile is one depth row of a simulated field, surface node first.
type Profile []float64

func (p Profile) Clone() Profile {
	c := make(Profile, len(p))
	copy(c, p)
	return c
}

// IsFinite reports whether every node holds a finite value.
func (p Profile) IsFinite() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Grid is the discretized depth and time axes of one column run.
// Immutable once the driver starts stepping.
type Grid struct {
	Length   float64 // landfill depth, m
	Duration float64 // simulated time, days
	Dx       float64 // spatial step, m
	Dt       float64 // time step, days
	Nx       int     // nodes along depth
	Steps    int     // time rows, including the initial condition
}

func NewGrid(length, duration, dx, dt float64) (Grid, error) {
	g := Grid{Length: length, Duration: duration, Dx: dx, Dt: dt}
	if dx <= 0 {
		return g, fmt.Errorf("%w: dx must be positive, got %g", ErrGrid, dx)
	}
	if dt <= 0 {
		return g, fmt.Errorf("%w: dt must be positive, got %g", ErrGrid, dt)
	}
	g.Nx = int(length / dx)
	g.Steps = int(duration / dt)
	if g.Nx < 2 {
		return g, fmt.Errorf("%w: need at least 2 depth nodes, got %d (length %g, dx %g)", ErrGrid, g.Nx, length, dx)
	}
	if g.Steps < 1 {
		return g, fmt.Errorf("%w: need at least 1 time step, got %d (duration %g, dt %g)", ErrGrid, g.Steps, duration, dt)
	}
	return g, nil
}

// Depths returns the node coordinates, 0 at the surface to Length at the base.
func (g Grid) Depths() []float64 { return linspace(g.Length, g.Nx) }

// Times returns the row coordinates, 0 to Duration.
func (g Grid) Times() []float64 { return linspace(g.Duration, g.Steps) }

func linspace(stop float64, n int) []float64 {
	xs := make([]float64, n)
	if n < 2 {
		return xs
	}
	step := stop / float64(n-1)
	for i := range xs {
		xs[i] = float64(i) * step
	}
	return xs
}

// Params bundles the physical and chemical coefficients of one run.
// Read-only for the life of a simulation.
type Params struct {
	Velocity       float64 // leachate velocity, m/day
	Dispersion     float64 // dispersion coefficient, m2/day
	Rainfall       float64 // daily rainfall, mm/day
	Infiltration   float64 // infiltration coefficient, 0-1
	LinerThickness float64 // m
	LinerPerm      float64 // liner permeability, m/s
	SorptionKd     float64 // linear-isotherm coefficient, L/kg
	MuMax          float64 // maximum degradation rate, 1/day
	Ks             float64 // half-saturation constant, mg/L
	BiogasYield    float64 // L gas per unit degraded mass
}

func (p Params) Validate() error {
	checks := []struct {
		ok   bool
		what string
		got  float64
	}{
		{p.Velocity >= 0, "velocity must be >= 0", p.Velocity},
		{p.Dispersion >= 0, "dispersion must be >= 0", p.Dispersion},
		{p.Rainfall >= 0, "rainfall must be >= 0", p.Rainfall},
		{p.Infiltration >= 0 && p.Infiltration <= 1, "infiltration coefficient must be in [0,1]", p.Infiltration},
		{p.LinerThickness > 0, "liner thickness must be > 0", p.LinerThickness},
		{p.LinerPerm >= 0, "liner permeability must be >= 0", p.LinerPerm},
		{p.SorptionKd >= 0, "sorption kd must be >= 0", p.SorptionKd},
		{p.MuMax >= 0, "mu_max must be >= 0", p.MuMax},
		{p.Ks > 0, "ks must be > 0", p.Ks},
		{p.BiogasYield > 0, "biogas yield must be > 0", p.BiogasYield},
	}
	for _, c := range checks {
		if !c.ok {
			return fmt.Errorf("%w: %s, got %g", ErrParam, c.what, c.got)
		}
	}
	return nil
}

// Metric accumulates a scalar over the completed rows of a run.
type Metric interface {
	Name() string
	Observe(conc, biomass Profile, gas, t float64)
	Value() float64
	Reset()
}

// Observer is called once per completed row, the initial condition included.
type Observer interface {
	OnStep(step int, conc, biomass Profile, gas, t float64)
}

// Result is the full time history of one run.
type Result struct {
	Conc    []Profile // Steps x Nx, mg/L
	Biomass []Profile // Steps x Nx, mg/L
	Gas     []float64 // cumulative biogas per row, L
	Depths  []float64
	Times   []float64
	Metrics map[string]float64
	// StepsTaken counts completed update steps; Steps-1 on a clean run.
	StepsTaken int
}
