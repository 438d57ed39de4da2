package kepler

import "math"

// Bracket bounds the root of e·sinh(z) − z = M on the real axis.
// Lower is the exact bound asinh(M/e); Upper is the asymptotic regime
// estimate, exact only in the limit of its regime.
type Bracket struct {
	Lower float64
	Upper float64
}

// Width returns the half-width of the bracket, the radius of the
// integration contour. Negative width means the regime estimate
// undershot the root.
func (b Bracket) Width() float64 {
	return (b.Upper - b.Lower) / 2
}

// Center returns the midpoint of the bracket, the contour center.
func (b Bracket) Center() float64 {
	return (b.Lower + b.Upper) / 2
}

// Thresholds holds the regime boundaries for a given eccentricity.
// Below T1 the equation is near-linear in z, between T1 and T2 the
// cubic term of sinh dominates, above T2 the quintic term.
type Thresholds struct {
	T1  float64
	T2  float64
	Max float64 // validated ceiling of the quintic formula
}

func NewThresholds(ecc float64) Thresholds {
	return Thresholds{
		T1:  math.Sqrt(6) * math.Pow(ecc-1, 1.5) / math.Sqrt(math.E),
		T2:  14.907 * ecc,
		Max: rangeFactor * ecc,
	}
}

// upperBound returns the asymptotic estimate of the root for m >= 0.
func (t Thresholds) upperBound(m, ecc float64) float64 {
	switch {
	case m <= t.T1:
		return m / (ecc - 1)
	case m <= t.T2:
		return math.Cbrt(6 * m / ecc)
	default:
		return math.Pow(120*m/ecc, 0.2)
	}
}

// NewBracket builds the root bracket for a single non-negative mean
// anomaly. The lower bound asinh(m/e) holds for every m; the upper bound
// follows the regime of m.
func NewBracket(m, ecc float64, t Thresholds) Bracket {
	return Bracket{
		Lower: math.Asinh(m / ecc),
		Upper: t.upperBound(m, ecc),
	}
}

// Brackets computes one bracket per input element, written back at the
// element's original index. Regime selection happens per element so the
// output stays aligned with unsorted input.
func Brackets(ms []float64, ecc float64) []Bracket {
	t := NewThresholds(ecc)
	out := make([]Bracket, len(ms))
	for i, m := range ms {
		out[i] = NewBracket(math.Abs(m), ecc, t)
	}
	return out
}
