package kepler

import (
	"math"
	"math/cmplx"
)

// Nodes returns n angles uniformly spaced over [0, pi]. The node set is
// shared by every element of a solve.
func Nodes(n int) []float64 {
	step := math.Pi / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * step
	}
	out[n-1] = math.Pi
	return out
}

// integrate accumulates the numerator and denominator contour integrals
// for one element with the composite trapezoidal rule: endpoints once,
// interior nodes twice. The common scale pi/(n−1)/2 is dropped because it
// cancels in the final ratio.
func integrate(m float64, c Contour, nodes []float64, ecc float64) (numer, denom complex128) {
	rho := complex(c.Radius, 0)
	mm := complex(m, 0)
	e := complex(ecc, 0)

	for k, x := range nodes {
		z := c.Point(x)
		g := 1 / (e*cmplx.Sinh(z) - z - mm)
		d := c.Tangent(x) * g * rho
		n := z * d
		if k == 0 || k == len(nodes)-1 {
			numer += n
			denom += d
		} else {
			numer += 2 * n
			denom += 2 * d
		}
	}
	return numer, denom
}

// solveOne extracts the root for one non-negative mean anomaly. The pole
// of g inside the contour is simple, so the ratio of the two integrals is
// the root itself; only the imaginary parts survive on a contour that is
// symmetric about the real axis.
func solveOne(m float64, c Contour, nodes []float64, ecc float64) (float64, error) {
	if c.Degenerate() {
		return math.NaN(), ErrDegenerateContour
	}

	numer, denom := integrate(m, c, nodes, ecc)

	di := imag(denom)
	if di == 0 || math.IsNaN(di) || math.IsInf(di, 0) {
		return math.NaN(), ErrZeroDenominator
	}
	return imag(numer) / di, nil
}

// Solve returns one hyperbolic anomaly per input mean anomaly, in input
// order. Option validation fails before any element is touched; element
// failures are reported per index in Result.Errors and never as NaN alone.
//
// Negative inputs solve through the odd symmetry z(−M) = −z(M). Inputs
// beyond the validated asymptotic range still produce a root but carry an
// ErrOutOfRange marker.
func Solve(ms []float64, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	ecc := opts.Eccentricity
	thresholds := NewThresholds(ecc)
	brackets := Brackets(ms, ecc)
	nodes := Nodes(opts.Order)

	res := &Result{
		Roots:  make([]float64, len(ms)),
		Errors: make([]error, len(ms)),
	}

	for i, m := range ms {
		if m == 0 {
			// rho = 0 collapses the contour; the root is exact anyway.
			continue
		}

		sign := 1.0
		if m < 0 {
			sign = -1
			m = -m
		}

		root, err := solveOne(m, NewContour(brackets[i], opts.Shape), nodes, ecc)
		if err == nil && m > thresholds.Max {
			err = ErrOutOfRange
		}
		if err != nil {
			res.Errors[i] = &SolveError{Index: i, MeanAnomaly: ms[i], Err: err}
		}
		res.Roots[i] = sign * root
	}
	return res, nil
}

// SolveOne solves a single mean anomaly.
func SolveOne(m float64, opts Options) (float64, error) {
	res, err := Solve([]float64{m}, opts)
	if err != nil {
		return math.NaN(), err
	}
	if res.Errors[0] != nil && !IsOutOfRange(res.Errors[0]) {
		return math.NaN(), res.Errors[0]
	}
	return res.Roots[0], res.Errors[0]
}
