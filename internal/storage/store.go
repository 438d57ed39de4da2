// Package storage persists solver runs as a metadata.json plus a
// solutions.csv per run directory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/kepsolve/internal/kepler"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Eccentricity float64   `json:"eccentricity"`
	Order        int       `json:"order"`
	Shape        float64   `json:"shape"`
	Count        int       `json:"count"`
	MaxResidual  float64   `json:"max_residual"`
	Failed       int       `json:"failed"`
}

// Solution is one row of a stored run.
type Solution struct {
	MeanAnomaly float64
	Root        float64
	Residual    float64
	Status      string // "ok", "out-of-range", or the failure message
}

func (s *Store) Save(opts kepler.Options, ms []float64, res *kepler.Result, residuals []float64) (string, error) {
	runID := fmt.Sprintf("solve_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	maxRes := 0.0
	failed := 0
	for i := range ms {
		if res.Errors[i] != nil && !kepler.IsOutOfRange(res.Errors[i]) {
			failed++
			continue
		}
		if residuals[i] > maxRes {
			maxRes = residuals[i]
		}
	}

	meta := RunMetadata{
		ID:           runID,
		Timestamp:    time.Now(),
		Eccentricity: opts.Eccentricity,
		Order:        opts.Order,
		Shape:        opts.Shape,
		Count:        len(ms),
		MaxResidual:  maxRes,
		Failed:       failed,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "solutions.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"m", "z", "residual", "status"}); err != nil {
		return "", err
	}
	for i := range ms {
		status := "ok"
		if err := res.Errors[i]; err != nil {
			if kepler.IsOutOfRange(err) {
				status = "out-of-range"
			} else {
				status = err.Error()
			}
		}
		row := []string{
			strconv.FormatFloat(ms[i], 'g', -1, 64),
			strconv.FormatFloat(res.Roots[i], 'g', -1, 64),
			strconv.FormatFloat(residuals[i], 'g', -1, 64),
			status,
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, fmt.Errorf("run %s not found: %w", runID, err)
	}
	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSolutions(runID string) ([]Solution, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "solutions.csv"))
	if err != nil {
		return nil, fmt.Errorf("run %s has no solutions: %w", runID, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return []Solution{}, nil
	}

	out := make([]Solution, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != 4 {
			continue
		}
		m, err1 := strconv.ParseFloat(row[0], 64)
		z, err2 := strconv.ParseFloat(row[1], 64)
		r, err3 := strconv.ParseFloat(row[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			continue
		}
		out = append(out, Solution{MeanAnomaly: m, Root: z, Residual: r, Status: row[3]})
	}
	return out, nil
}
