// Package kepler solves the hyperbolic Kepler equation
//
//	e·sinh(z) − z = M,  e > 1
//
// for arrays of mean anomalies M without Newton iteration. The root is
// extracted from a Cauchy contour integral (Delves–Lyness form) evaluated
// with the composite trapezoidal rule over a Jordan contour built, per
// element, from an analytic lower bound and an asymptotic upper bound:
//
//   - [Bracket]: per-element root bracket from the regime partition
//   - [Contour]: ellipse in the complex plane enclosing exactly one root
//   - [Solve]: batch solution, one root per input mean anomaly
//
// # Thread Safety
//
// All functions are pure: no shared mutable state, no I/O. Elements are
// independent; see the batch package for chunked parallel evaluation.
package kepler
