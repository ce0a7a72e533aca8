package leach

import (
	"errors"
	"math"
	"testing"
)

func mustGrid(t *testing.T, length, duration, dx, dt float64) Grid {
	t.Helper()
	g, err := NewGrid(length, duration, dx, dt)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

// inertParams disables every process so only the term under test acts.
func inertParams() Params {
	return Params{
		LinerThickness: 1.0,
		Ks:             50.0,
		BiogasYield:    0.5,
	}
}

func TestGradientLinearProfile(t *testing.T) {
	f := []float64{0, 2, 4, 6, 8}
	out := make([]float64, len(f))
	gradient(f, 1.0, out)
	for i, v := range out {
		if math.Abs(v-2) > 1e-12 {
			t.Errorf("node %d: expected slope 2, got %g", i, v)
		}
	}
}

func TestGradientQuadraticInterior(t *testing.T) {
	// f = x^2 so the second derivative is 2 at interior nodes.
	f := []float64{0, 1, 4, 9, 16, 25}
	d1 := make([]float64, len(f))
	d2 := make([]float64, len(f))
	gradient(f, 1.0, d1)
	gradient(d1, 1.0, d2)
	for i := 2; i < len(f)-2; i++ {
		if math.Abs(d2[i]-2) > 1e-12 {
			t.Errorf("node %d: expected d2 = 2, got %g", i, d2[i])
		}
	}
}

func TestStepUniformFieldUnchanged(t *testing.T) {
	grid := mustGrid(t, 10, 5, 1, 1)
	p := inertParams()
	p.Velocity = 0.05
	p.Dispersion = 0.01

	s := NewStepper(grid, p)
	cPrev := uniform(grid.Nx, 100)
	bPrev := uniform(grid.Nx, 50)
	c := make(Profile, grid.Nx)
	b := make(Profile, grid.Nx)

	delta, err := s.Step(1, cPrev, bPrev, c, b)
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if delta != 0 {
		t.Errorf("expected zero gas from zero kinetics, got %g", delta)
	}
	for i := 0; i < grid.Nx; i++ {
		if c[i] != 100 {
			t.Errorf("node %d: uniform field should stay 100, got %g", i, c[i])
		}
		if b[i] != 50 {
			t.Errorf("node %d: biomass should stay 50, got %g", i, b[i])
		}
	}
}

func TestStepDispersionSpreadsSpike(t *testing.T) {
	grid := mustGrid(t, 7, 2, 1, 1)
	p := inertParams()
	p.Dispersion = 0.01

	s := NewStepper(grid, p)
	cPrev := make(Profile, grid.Nx)
	cPrev[3] = 100
	bPrev := make(Profile, grid.Nx)
	c := make(Profile, grid.Nx)
	b := make(Profile, grid.Nx)

	if _, err := s.Step(1, cPrev, bPrev, c, b); err != nil {
		t.Fatalf("step: %v", err)
	}
	if c[3] >= 100 {
		t.Errorf("spike should shrink, got %g", c[3])
	}
	if c[1] <= 0 || c[5] <= 0 {
		t.Errorf("mass should spread outward, got c[1]=%g c[5]=%g", c[1], c[5])
	}
	total := 0.0
	for _, v := range c {
		total += v
	}
	if math.Abs(total-100) > 1e-9 {
		t.Errorf("interior mass should be conserved, got total %g", total)
	}
}

func TestStepInfiltrationSurfaceOnly(t *testing.T) {
	grid := mustGrid(t, 5, 2, 1, 1)
	p := inertParams()
	p.Rainfall = 10.0
	p.Infiltration = 0.5

	s := NewStepper(grid, p)
	if got := s.SurfaceInput(); math.Abs(got-5) > 1e-12 {
		t.Fatalf("expected surface input 5 mg/L per day, got %g", got)
	}

	cPrev := make(Profile, grid.Nx)
	bPrev := make(Profile, grid.Nx)
	c := make(Profile, grid.Nx)
	b := make(Profile, grid.Nx)
	if _, err := s.Step(1, cPrev, bPrev, c, b); err != nil {
		t.Fatalf("step: %v", err)
	}
	if math.Abs(c[0]-5) > 1e-12 {
		t.Errorf("surface node should receive 5, got %g", c[0])
	}
	for i := 1; i < grid.Nx; i++ {
		if c[i] != 0 {
			t.Errorf("node %d: infiltration must only enter node 0, got %g", i, c[i])
		}
	}
}

func TestStepLinerLeakageBaseOnly(t *testing.T) {
	grid := mustGrid(t, 5, 2, 1, 1)
	p := inertParams()
	p.LinerPerm = 1e-6

	s := NewStepper(grid, p)
	leak := 1e-6 / 1.0 * 1.0 * 86400.0
	if math.Abs(s.LinerLeakage()-leak) > 1e-15 {
		t.Fatalf("expected leakage coefficient %g, got %g", leak, s.LinerLeakage())
	}

	cPrev := uniform(grid.Nx, 100)
	bPrev := make(Profile, grid.Nx)
	c := make(Profile, grid.Nx)
	b := make(Profile, grid.Nx)
	if _, err := s.Step(1, cPrev, bPrev, c, b); err != nil {
		t.Fatalf("step: %v", err)
	}
	want := 100 - leak*100
	last := grid.Nx - 1
	if math.Abs(c[last]-want) > 1e-9 {
		t.Errorf("base node: expected %g, got %g", want, c[last])
	}
	for i := 0; i < last; i++ {
		if c[i] != 100 {
			t.Errorf("node %d: leakage must only leave the base node, got %g", i, c[i])
		}
	}
}

func TestStepClampsNegativeConcentration(t *testing.T) {
	grid := mustGrid(t, 5, 2, 1, 1)
	p := inertParams()
	p.LinerPerm = 1e-4 // leakage coefficient 8.64 drives the base negative

	s := NewStepper(grid, p)
	cPrev := uniform(grid.Nx, 100)
	bPrev := make(Profile, grid.Nx)
	c := make(Profile, grid.Nx)
	b := make(Profile, grid.Nx)
	if _, err := s.Step(1, cPrev, bPrev, c, b); err != nil {
		t.Fatalf("step: %v", err)
	}
	if c[grid.Nx-1] != 0 {
		t.Errorf("expected base node clamped to 0, got %g", c[grid.Nx-1])
	}
}

func TestStepSorptionRetardsKinetics(t *testing.T) {
	grid := mustGrid(t, 5, 2, 1, 1)
	p := inertParams()
	p.SorptionKd = 1.0
	p.MuMax = 0.1

	s := NewStepper(grid, p)
	cPrev := uniform(grid.Nx, 100)
	bPrev := uniform(grid.Nx, 50)
	c := make(Profile, grid.Nx)
	b := make(Profile, grid.Nx)
	delta, err := s.Step(1, cPrev, bPrev, c, b)
	if err != nil {
		t.Fatalf("step: %v", err)
	}

	// mobile = 100/2 = 50, growth = 0.1*50/(50+50)*50 = 2.5 per node
	growth := 2.5
	for i := 0; i < grid.Nx; i++ {
		if math.Abs(c[i]-(100-growth)) > 1e-12 {
			t.Errorf("node %d: expected %g, got %g", i, 100-growth, c[i])
		}
		if math.Abs(b[i]-(50+growth)) > 1e-12 {
			t.Errorf("node %d: expected biomass %g, got %g", i, 50+growth, b[i])
		}
	}
	wantGas := growth * 1.0 * p.BiogasYield * float64(grid.Nx)
	if math.Abs(delta-wantGas) > 1e-12 {
		t.Errorf("expected gas increment %g, got %g", wantGas, delta)
	}
}

func TestStepReportsNonFinite(t *testing.T) {
	grid := mustGrid(t, 5, 2, 1, 1)
	s := NewStepper(grid, inertParams())

	cPrev := uniform(grid.Nx, 100)
	cPrev[2] = math.NaN()
	bPrev := make(Profile, grid.Nx)
	c := make(Profile, grid.Nx)
	b := make(Profile, grid.Nx)

	_, err := s.Step(3, cPrev, bPrev, c, b)
	if !errors.Is(err, ErrUnstable) {
		t.Fatalf("expected ErrUnstable, got %v", err)
	}
	var se *StepError
	if !errors.As(err, &se) {
		t.Fatalf("expected StepError, got %T", err)
	}
	if se.Step != 3 {
		t.Errorf("expected step 3, got %d", se.Step)
	}
}

func uniform(n int, v float64) Profile {
	p := make(Profile, n)
	for i := range p {
		p[i] = v
	}
	return p
}
