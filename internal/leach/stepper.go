package leach

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stepper advances the concentration and biomass fields one explicit
// forward-Euler step: central-difference transport, surface infiltration,
// basal liner leakage, linear sorption retardation and Monod degradation
// are all evaluated against the pre-step row, combined in one update and
// clamped to non-negative.
type Stepper struct {
	grid Grid
	p    Params

	rain float64 // surface input, mg/L per day
	leak float64 // Darcy leakage coefficient, per step

	ddx    []float64
	d2dx   []float64
	growth []float64
	yield  []float64
}

func NewStepper(grid Grid, p Params) *Stepper {
	rainInput := p.Rainfall / 1000.0 * p.Infiltration // m/day
	return &Stepper{
		grid: grid,
		p:    p,
		// Empirical scaling back to mg/L per day, kept as-is from the
		// original column model.
		rain: rainInput * 1000.0,
		// Darcy estimate; dt is in days, permeability in m/s.
		leak:   p.LinerPerm / p.LinerThickness * grid.Dt * 86400.0,
		ddx:    make([]float64, grid.Nx),
		d2dx:   make([]float64, grid.Nx),
		growth: make([]float64, grid.Nx),
		yield:  make([]float64, grid.Nx),
	}
}

// SurfaceInput returns the infiltration source applied at node 0, mg/L per day.
func (s *Stepper) SurfaceInput() float64 { return s.rain }

// LinerLeakage returns the per-step basal leakage coefficient.
func (s *Stepper) LinerLeakage() float64 { return s.leak }

// Step fills row (c, b) for step n from the previous row (cPrev, bPrev) and
// returns the biogas volume produced during the step. A non-finite candidate
// value aborts the step with a StepError before the non-negativity clamp, so
// instability is never silently clamped away.
func (s *Stepper) Step(n int, cPrev, bPrev, c, b Profile) (float64, error) {
	nx := s.grid.Nx
	dt := s.grid.Dt

	// Stage 1: spatial derivatives of the pre-step concentration row.
	gradient(cPrev, s.grid.Dx, s.ddx)
	gradient(s.ddx, s.grid.Dx, s.d2dx)

	// Stage 2: retardation + kinetics. Only the mobile fraction reacts.
	retard := 1.0 + s.p.SorptionKd
	for i := 0; i < nx; i++ {
		s.growth[i] = Monod(cPrev[i]/retard, bPrev[i], s.p.MuMax, s.p.Ks)
	}

	// Stage 3: transport, reaction, boundary source and sink in one
	// explicit update. Infiltration enters at the surface node only,
	// leakage leaves at the base node only.
	for i := 0; i < nx; i++ {
		v := cPrev[i] - s.p.Velocity*s.ddx[i]*dt + s.p.Dispersion*s.d2dx[i]*dt - s.growth[i]*dt
		if i == 0 {
			v += s.rain * dt
		}
		if i == nx-1 {
			v -= s.leak * cPrev[i]
		}
		c[i] = v
		b[i] = bPrev[i] + s.growth[i]*dt
	}

	// Stage 4: instability check before the clamp.
	for i := 0; i < nx; i++ {
		if math.IsNaN(c[i]) || math.IsInf(c[i], 0) || math.IsNaN(b[i]) || math.IsInf(b[i], 0) {
			return 0, &StepError{Step: n, Time: float64(n) * dt, Node: i, Wrapped: ErrUnstable}
		}
	}

	// Stage 5: concentration is physically non-negative.
	for i := 0; i < nx; i++ {
		if c[i] < 0 {
			c[i] = 0
		}
	}

	for i := 0; i < nx; i++ {
		s.yield[i] = s.growth[i] * dt * s.p.BiogasYield
	}
	return floats.Sum(s.yield), nil
}

// gradient writes the finite-difference first derivative of f into out:
// central differences in the interior, one-sided at the two boundaries.
func gradient(f []float64, dx float64, out []float64) {
	n := len(f)
	out[0] = (f[1] - f[0]) / dx
	for i := 1; i < n-1; i++ {
		out[i] = (f[i+1] - f[i-1]) / (2 * dx)
	}
	out[n-1] = (f[n-1] - f[n-2]) / dx
}
