// Package metrics provides run-level summary metrics observed once per
// completed time row, consumed by the sweep scorer and the CLI report.
package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/leachsim/internal/leach"
)

// PeakConcentration tracks the maximum concentration seen anywhere in the
// column over the whole run.
type PeakConcentration struct {
	peak float64
}

func NewPeakConcentration() *PeakConcentration { return &PeakConcentration{} }

func (m *PeakConcentration) Name() string { return "peak_concentration" }

func (m *PeakConcentration) Observe(conc, biomass leach.Profile, gas, t float64) {
	if len(conc) == 0 {
		return
	}
	if v := floats.Max(conc); v > m.peak {
		m.peak = v
	}
}

func (m *PeakConcentration) Value() float64 { return m.peak }
func (m *PeakConcentration) Reset()         { m.peak = 0 }

// DegradedMass integrates biomass growth over the column. In the growth-only
// model every unit of biomass gained is a unit of mobile contaminant degraded.
type DegradedMass struct {
	samples int
	initial float64
	current float64
}

func NewDegradedMass() *DegradedMass { return &DegradedMass{} }

func (m *DegradedMass) Name() string { return "degraded_mass" }

func (m *DegradedMass) Observe(conc, biomass leach.Profile, gas, t float64) {
	total := floats.Sum(biomass)
	if m.samples == 0 {
		m.initial = total
	}
	m.current = total
	m.samples++
}

func (m *DegradedMass) Value() float64 {
	return m.current - m.initial
}

func (m *DegradedMass) Reset() {
	m.samples = 0
	m.initial = 0
	m.current = 0
}

// BasalLeakage accumulates the contaminant lost through the liner. The loss
// at row n is taken from row n-1, matching the stepper.
type BasalLeakage struct {
	leak    float64
	samples int
	prev    float64
	total   float64
}

func NewBasalLeakage(grid leach.Grid, p leach.Params) *BasalLeakage {
	return &BasalLeakage{leak: leach.NewStepper(grid, p).LinerLeakage()}
}

func (m *BasalLeakage) Name() string { return "basal_leakage" }

func (m *BasalLeakage) Observe(conc, biomass leach.Profile, gas, t float64) {
	if len(conc) == 0 {
		return
	}
	if m.samples > 0 {
		m.total += m.leak * m.prev
	}
	m.prev = conc[len(conc)-1]
	m.samples++
}

func (m *BasalLeakage) Value() float64 { return m.total }

func (m *BasalLeakage) Reset() {
	m.samples = 0
	m.prev = 0
	m.total = 0
}

// MeanConcentration averages the column mean over all observed rows.
type MeanConcentration struct {
	samples int
	sum     float64
}

func NewMeanConcentration() *MeanConcentration { return &MeanConcentration{} }

func (m *MeanConcentration) Name() string { return "mean_concentration" }

func (m *MeanConcentration) Observe(conc, biomass leach.Profile, gas, t float64) {
	if len(conc) == 0 {
		return
	}
	m.sum += floats.Sum(conc) / float64(len(conc))
	m.samples++
}

func (m *MeanConcentration) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanConcentration) Reset() {
	m.samples = 0
	m.sum = 0
}

// CumulativeGas reports the final cumulative biogas volume.
type CumulativeGas struct {
	last float64
}

func NewCumulativeGas() *CumulativeGas { return &CumulativeGas{} }

func (m *CumulativeGas) Name() string { return "cumulative_gas" }

func (m *CumulativeGas) Observe(conc, biomass leach.Profile, gas, t float64) {
	m.last = gas
}

func (m *CumulativeGas) Value() float64 { return m.last }
func (m *CumulativeGas) Reset()         { m.last = 0 }

// Defaults returns the standard metric set for a run.
func Defaults(grid leach.Grid, p leach.Params) []leach.Metric {
	return []leach.Metric{
		NewPeakConcentration(),
		NewDegradedMass(),
		NewBasalLeakage(grid, p),
		NewMeanConcentration(),
		NewCumulativeGas(),
	}
}
