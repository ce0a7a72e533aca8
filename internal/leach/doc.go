// Package leach is the numerical core: one-dimensional contaminant
// transport and biodegradation through a vertical landfill column.
//
// The explicit finite-difference scheme couples advection, dispersion,
// linear sorption retardation, Monod-kinetics degradation, rainfall
// infiltration at the surface node and Darcy-type liner leakage at the
// base node into one forward-Euler update per time step:
//
//   - [Grid]: discretized depth and time axes
//   - [Params]: immutable physical/chemical coefficients
//   - [Monod]: pointwise degradation rate law
//   - [Stepper]: one explicit update of concentration and biomass
//   - [Driver]: allocates the fields and runs the sequential step loop
//
// # Example
//
//	grid, _ := leach.NewGrid(30, 100, 1, 1)
//	drv, _ := leach.NewDriver(grid, params)
//	res, _ := drv.Run(ctx, 100, 50)
//
// Driver instances are not safe for concurrent use; a run is a single
// ownership chain mutating its own state arrays in place.
package leach
