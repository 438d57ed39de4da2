package kepler

import (
	"errors"
	"math"
	"testing"
)

func residual(ecc, z, m float64) float64 {
	return math.Abs(ecc*math.Sinh(z) - z - m)
}

func linspace(from, to float64, n int) []float64 {
	out := make([]float64, n)
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + float64(i)*step
	}
	return out
}

func TestSolveRoundTrip(t *testing.T) {
	// Reference scenario: e=2, N=32, ten anomalies spanning all three
	// regimes. Substituting each root back must reproduce M.
	ms := linspace(0.1, 20.0, 10)
	opts := Options{Order: 32, Eccentricity: 2.0, Shape: 1.0}

	res, err := Solve(ms, opts)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if len(res.Roots) != len(ms) {
		t.Fatalf("got %d roots for %d inputs", len(res.Roots), len(ms))
	}

	for i, m := range ms {
		if res.Errors[i] != nil {
			t.Errorf("M=%g: unexpected element error: %v", m, res.Errors[i])
			continue
		}
		if r := residual(opts.Eccentricity, res.Roots[i], m); r > 1e-6 {
			t.Errorf("M=%g: root %g has residual %g", m, res.Roots[i], r)
		}
	}
}

func TestSolveInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"order one", Options{Order: 1, Eccentricity: 2.0, Shape: 1}, ErrOrder},
		{"order zero", Options{Order: 0, Eccentricity: 2.0, Shape: 1}, ErrOrder},
		{"parabolic", Options{Order: 32, Eccentricity: 1.0, Shape: 1}, ErrEccentricity},
		{"elliptic", Options{Order: 32, Eccentricity: 0.5, Shape: 1}, ErrEccentricity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Solve([]float64{1.0}, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSolveZeroAnomaly(t *testing.T) {
	res, err := Solve([]float64{0}, DefaultOptions())
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if res.Roots[0] != 0 {
		t.Errorf("M=0 should give z=0 exactly, got %g", res.Roots[0])
	}
	if res.Errors[0] != nil {
		t.Errorf("M=0 should solve cleanly, got %v", res.Errors[0])
	}
}

func TestSolveUnsortedInput(t *testing.T) {
	// Elements from different regimes deliberately interleaved; each
	// output index must answer for its own input.
	ms := []float64{12.7, 0.1, 40.0, 2.2, 0.5}
	opts := Options{Order: 32, Eccentricity: 2.0, Shape: 1.0}

	res, err := Solve(ms, opts)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	for i, m := range ms {
		if r := residual(opts.Eccentricity, res.Roots[i], m); r > 1e-6 {
			t.Errorf("index %d (M=%g): residual %g", i, m, r)
		}
	}
}

func TestSolveMonotone(t *testing.T) {
	// e·cosh(z) − 1 > 0, so M → z is strictly increasing.
	ms := linspace(0.1, 25.0, 40)
	opts := Options{Order: 32, Eccentricity: 1.5, Shape: 1.0}

	res, err := Solve(ms, opts)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	for i := 1; i < len(res.Roots); i++ {
		if res.Roots[i] <= res.Roots[i-1] {
			t.Errorf("roots not increasing at %d: %g then %g", i, res.Roots[i-1], res.Roots[i])
		}
	}
}

func TestSolveNegativeAnomaly(t *testing.T) {
	opts := Options{Order: 32, Eccentricity: 2.0, Shape: 1.0}

	pos, err := SolveOne(3.7, opts)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	neg, err := SolveOne(-3.7, opts)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if math.Abs(pos+neg) > 1e-9 {
		t.Errorf("odd symmetry broken: z(3.7)=%g, z(-3.7)=%g", pos, neg)
	}
}

func TestSolveConvergence(t *testing.T) {
	// Residuals must shrink (or already sit at rounding level) as the
	// quadrature order grows.
	ms := linspace(0.5, 15.0, 8)
	coarse := Options{Order: 4, Eccentricity: 2.0, Shape: 1.0}
	fine := Options{Order: 48, Eccentricity: 2.0, Shape: 1.0}

	worst := func(opts Options) float64 {
		res, err := Solve(ms, opts)
		if err != nil {
			t.Fatalf("solve failed: %v", err)
		}
		max := 0.0
		for i, m := range ms {
			if r := residual(opts.Eccentricity, res.Roots[i], m); r > max {
				max = r
			}
		}
		return max
	}

	rc := worst(coarse)
	rf := worst(fine)
	if rf > 1e-8 {
		t.Errorf("order 48 residual %g too large", rf)
	}
	if rc > 1e-10 && rf >= rc {
		t.Errorf("residual did not shrink with order: %g -> %g", rc, rf)
	}
}

func TestSolveOutOfRange(t *testing.T) {
	ecc := 1.5
	opts := Options{Order: 32, Eccentricity: ecc, Shape: 1.0}
	ms := []float64{1.0, 200.0 * ecc}

	res, err := Solve(ms, opts)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if res.Errors[0] != nil {
		t.Errorf("in-range element flagged: %v", res.Errors[0])
	}
	if !IsOutOfRange(res.Errors[1]) {
		t.Errorf("expected out-of-range marker, got %v", res.Errors[1])
	}

	var se *SolveError
	if !errors.As(res.Errors[1], &se) {
		t.Fatal("element error should be a *SolveError")
	}
	if se.Index != 1 {
		t.Errorf("SolveError.Index = %d, want 1", se.Index)
	}
}

func TestSolveEllipticalContour(t *testing.T) {
	// A flattened contour (shape < 1) must land on the same roots.
	ms := linspace(0.5, 10.0, 6)
	circle := Options{Order: 32, Eccentricity: 2.0, Shape: 1.0}
	ellipse := Options{Order: 32, Eccentricity: 2.0, Shape: 0.5}

	rc, err := Solve(ms, circle)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	re, err := Solve(ms, ellipse)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	for i := range ms {
		if math.Abs(rc.Roots[i]-re.Roots[i]) > 1e-6 {
			t.Errorf("M=%g: circle %g vs ellipse %g", ms[i], rc.Roots[i], re.Roots[i])
		}
	}
}

func TestNodes(t *testing.T) {
	nodes := Nodes(5)
	if nodes[0] != 0 {
		t.Errorf("first node = %g, want 0", nodes[0])
	}
	if nodes[4] != math.Pi {
		t.Errorf("last node = %g, want pi", nodes[4])
	}
	for i := 1; i < len(nodes); i++ {
		if math.Abs((nodes[i]-nodes[i-1])-math.Pi/4) > 1e-12 {
			t.Errorf("nodes not uniform at %d", i)
		}
	}
}
