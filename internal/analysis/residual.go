// Package analysis provides accuracy diagnostics for solver output:
// back-substitution residuals, monotonicity checks, and convergence
// studies over the quadrature order.
package analysis

import (
	"math"

	"github.com/san-kum/kepsolve/internal/kepler"
)

// Residual is the back-substitution defect e·sinh(z) − z − m. Zero means
// z solves the equation exactly for m.
func Residual(ecc, z, m float64) float64 {
	return ecc*math.Sinh(z) - z - m
}

// Residuals returns |Residual| per element, aligned with the input.
// Failed elements (NaN roots) yield NaN residuals.
func Residuals(ms []float64, res *kepler.Result, ecc float64) []float64 {
	out := make([]float64, len(ms))
	for i, m := range ms {
		out[i] = math.Abs(Residual(ecc, res.Roots[i], m))
	}
	return out
}

// MaxResidual returns the worst finite residual, ignoring failed elements.
func MaxResidual(ms []float64, res *kepler.Result, ecc float64) float64 {
	max := 0.0
	for i, m := range ms {
		r := math.Abs(Residual(ecc, res.Roots[i], m))
		if !math.IsNaN(r) && r > max {
			max = r
		}
	}
	return max
}

// Monotone reports whether the roots are non-decreasing. For a sorted
// ascending input this must hold: d/dz (e·sinh z − z) = e·cosh z − 1 ≥ 0
// for e ≥ 1.
func Monotone(roots []float64) bool {
	for i := 1; i < len(roots); i++ {
		if roots[i] < roots[i-1] {
			return false
		}
	}
	return true
}
