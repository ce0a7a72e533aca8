package leach

import (
	"context"
	"fmt"
)

// Driver owns the state arrays of one run and advances them row by row.
// Row n depends only on row n-1, so the loop is strictly sequential.
type Driver struct {
	grid      Grid
	p         Params
	metrics   []Metric
	observers []Observer
}

func NewDriver(grid Grid, p Params) (*Driver, error) {
	if grid.Dx <= 0 || grid.Dt <= 0 || grid.Nx < 2 || grid.Steps < 1 {
		return nil, fmt.Errorf("%w: grid not built with NewGrid", ErrGrid)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Driver{grid: grid, p: p}, nil
}

func (d *Driver) AddMetric(m Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

// Run simulates the full time history from uniform initial concentration and
// biomass. The returned result is bit-for-bit reproducible for identical
// inputs. On a step error the rows completed so far are returned alongside
// the error; cancellation is honored between completed steps only.
func (d *Driver) Run(ctx context.Context, initConc, initBiomass float64) (*Result, error) {
	if initConc < 0 {
		return nil, fmt.Errorf("%w: initial concentration must be >= 0, got %g", ErrParam, initConc)
	}
	if initBiomass < 0 {
		return nil, fmt.Errorf("%w: initial biomass must be >= 0, got %g", ErrParam, initBiomass)
	}

	res := &Result{
		Conc:    make([]Profile, d.grid.Steps),
		Biomass: make([]Profile, d.grid.Steps),
		Gas:     make([]float64, d.grid.Steps),
		Depths:  d.grid.Depths(),
		Times:   d.grid.Times(),
		Metrics: make(map[string]float64),
	}
	for n := range res.Conc {
		res.Conc[n] = make(Profile, d.grid.Nx)
		res.Biomass[n] = make(Profile, d.grid.Nx)
	}
	for i := 0; i < d.grid.Nx; i++ {
		res.Conc[0][i] = initConc
		res.Biomass[0][i] = initBiomass
	}

	for _, m := range d.metrics {
		m.Reset()
	}
	d.notify(0, res)

	stepper := NewStepper(d.grid, d.p)
	for n := 1; n < d.grid.Steps; n++ {
		select {
		case <-ctx.Done():
			d.collect(res)
			return res, ctx.Err()
		default:
		}

		delta, err := stepper.Step(n, res.Conc[n-1], res.Biomass[n-1], res.Conc[n], res.Biomass[n])
		if err != nil {
			d.collect(res)
			return res, err
		}
		res.Gas[n] = res.Gas[n-1] + delta
		res.StepsTaken++
		d.notify(n, res)
	}

	d.collect(res)
	return res, nil
}

func (d *Driver) notify(n int, res *Result) {
	t := float64(n) * d.grid.Dt
	for _, m := range d.metrics {
		m.Observe(res.Conc[n], res.Biomass[n], res.Gas[n], t)
	}
	for _, o := range d.observers {
		o.OnStep(n, res.Conc[n], res.Biomass[n], res.Gas[n], t)
	}
}

func (d *Driver) collect(res *Result) {
	for _, m := range d.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
}
