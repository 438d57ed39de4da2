package batch

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/kepsolve/internal/kepler"
)

func grid(n int) []float64 {
	ms := make([]float64, n)
	for i := range ms {
		ms[i] = 0.1 + 30.0*float64(i)/float64(n-1)
	}
	return ms
}

func TestParallelMatchesSerial(t *testing.T) {
	ms := grid(500)
	opts := kepler.Options{Order: 32, Eccentricity: 1.7, Shape: 1.0}

	serial, err := kepler.Solve(ms, opts)
	if err != nil {
		t.Fatalf("serial solve failed: %v", err)
	}

	parallel, err := NewWithWorkers(4).Solve(ms, opts)
	if err != nil {
		t.Fatalf("parallel solve failed: %v", err)
	}

	for i := range ms {
		if serial.Roots[i] != parallel.Roots[i] {
			t.Errorf("index %d: serial %g != parallel %g", i, serial.Roots[i], parallel.Roots[i])
		}
	}
}

func TestParallelReindexesErrors(t *testing.T) {
	ecc := 1.5
	ms := grid(300)
	bad := 250
	ms[bad] = 500 * ecc // beyond the validated range

	res, err := New().Solve(ms, kepler.Options{Order: 32, Eccentricity: ecc, Shape: 1.0})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if res.Errors[bad] == nil {
		t.Fatal("expected an out-of-range marker")
	}
	var se *kepler.SolveError
	if !errors.As(res.Errors[bad], &se) {
		t.Fatal("element error should be a *SolveError")
	}
	if se.Index != bad {
		t.Errorf("SolveError.Index = %d, want %d", se.Index, bad)
	}
	for i, e := range res.Errors {
		if i != bad && e != nil {
			t.Errorf("unexpected error at %d: %v", i, e)
		}
	}
}

func TestSmallInputStaysSerial(t *testing.T) {
	ms := []float64{0.5, 2.0, 7.0}
	opts := kepler.Options{Order: 32, Eccentricity: 2.0, Shape: 1.0}

	res, err := New().Solve(ms, opts)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	for i, m := range ms {
		if r := math.Abs(opts.Eccentricity*math.Sinh(res.Roots[i]) - res.Roots[i] - m); r > 1e-6 {
			t.Errorf("M=%g: residual %g", m, r)
		}
	}
}

func TestInvalidOptionsFailFast(t *testing.T) {
	_, err := New().Solve(grid(200), kepler.Options{Order: 0, Eccentricity: 2.0})
	if !errors.Is(err, kepler.ErrOrder) {
		t.Errorf("got %v, want ErrOrder", err)
	}
}
