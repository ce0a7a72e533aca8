package leach

// Monod returns the Monod-limited biodegradation rate in mg/(L·day):
// saturating in the mobile concentration c, linear in the biomass b.
// Safe at c = 0 since ks > 0 by construction.
func Monod(c, b, muMax, ks float64) float64 {
	return muMax * c / (ks + c) * b
}
