package storage

import (
	"testing"

	"github.com/san-kum/kepsolve/internal/analysis"
	"github.com/san-kum/kepsolve/internal/kepler"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	ms := []float64{0.5, 3.0, 9.0}
	opts := kepler.Options{Order: 32, Eccentricity: 2.0, Shape: 1.0}
	res, err := kepler.Solve(ms, opts)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	residuals := analysis.Residuals(ms, res, opts.Eccentricity)

	runID, err := st.Save(opts, ms, res, residuals)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Count != 3 || meta.Order != 32 || meta.Eccentricity != 2.0 {
		t.Errorf("metadata mismatch: %+v", meta)
	}
	if meta.Failed != 0 {
		t.Errorf("expected no failed elements, got %d", meta.Failed)
	}

	sols, err := st.LoadSolutions(runID)
	if err != nil {
		t.Fatalf("load solutions failed: %v", err)
	}
	if len(sols) != 3 {
		t.Fatalf("expected 3 solutions, got %d", len(sols))
	}
	for i, sol := range sols {
		if sol.MeanAnomaly != ms[i] {
			t.Errorf("row %d: m = %g, want %g", i, sol.MeanAnomaly, ms[i])
		}
		if sol.Status != "ok" {
			t.Errorf("row %d: status %q, want ok", i, sol.Status)
		}
	}
}

func TestListEmpty(t *testing.T) {
	st := New(t.TempDir() + "/missing")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestLoadMissingRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
}
