// Package analysis provides a-priori stability diagnostics for the
// explicit transport scheme.
package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/leachsim/internal/leach"
)

// Explicit-scheme stability thresholds.
const (
	MaxCourant   = 1.0
	MaxDiffusion = 0.5
	MaxPeclet    = 2.0
)

// Report carries the dimensionless numbers governing the explicit scheme.
type Report struct {
	Courant   float64 // v*dt/dx
	Diffusion float64 // D*dt/dx^2
	Peclet    float64 // v*dx/D, +Inf for zero dispersion
}

func Analyze(g leach.Grid, p leach.Params) Report {
	r := Report{
		Courant:   p.Velocity * g.Dt / g.Dx,
		Diffusion: p.Dispersion * g.Dt / (g.Dx * g.Dx),
	}
	if p.Dispersion == 0 {
		if p.Velocity == 0 {
			r.Peclet = 0
		} else {
			r.Peclet = math.Inf(1)
		}
	} else {
		r.Peclet = p.Velocity * g.Dx / p.Dispersion
	}
	return r
}

// Stable reports whether the hard explicit-scheme limits hold. A violation
// does not guarantee blow-up, but blow-up is reported at runtime as
// leach.ErrUnstable either way.
func (r Report) Stable() bool {
	return r.Courant <= MaxCourant && r.Diffusion <= MaxDiffusion
}

func (r Report) Warnings() []string {
	var warns []string
	if r.Courant > MaxCourant {
		warns = append(warns, fmt.Sprintf("Courant number %.3f exceeds %.1f: reduce dt or velocity", r.Courant, MaxCourant))
	}
	if r.Diffusion > MaxDiffusion {
		warns = append(warns, fmt.Sprintf("diffusion number %.3f exceeds %.1f: reduce dt or dispersion", r.Diffusion, MaxDiffusion))
	}
	if !math.IsInf(r.Peclet, 1) && r.Peclet > MaxPeclet {
		warns = append(warns, fmt.Sprintf("grid Peclet number %.3f exceeds %.1f: expect oscillations near sharp fronts", r.Peclet, MaxPeclet))
	}
	return warns
}
