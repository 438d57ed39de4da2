// Package batch evaluates large mean-anomaly arrays across CPU workers.
// Elements are independent, so the input is split into contiguous chunks
// with no synchronization beyond the final join.
package batch

import (
	"errors"
	"runtime"
	"sync"

	"github.com/san-kum/kepsolve/internal/kepler"
)

// serialThreshold is the input size below which goroutine setup costs
// more than it saves.
const serialThreshold = 64

type Solver struct {
	workers int
}

func New() *Solver {
	return &Solver{workers: runtime.NumCPU()}
}

func NewWithWorkers(n int) *Solver {
	if n < 1 {
		n = 1
	}
	return &Solver{workers: n}
}

// Solve produces the same result as kepler.Solve, in input order.
func (s *Solver) Solve(ms []float64, opts kepler.Options) (*kepler.Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(ms) < serialThreshold || s.workers == 1 {
		return kepler.Solve(ms, opts)
	}
	return s.solveParallel(ms, opts)
}

func (s *Solver) solveParallel(ms []float64, opts kepler.Options) (*kepler.Result, error) {
	n := len(ms)
	out := &kepler.Result{
		Roots:  make([]float64, n),
		Errors: make([]error, n),
	}

	var wg sync.WaitGroup
	chunkSize := (n + s.workers - 1) / s.workers

	for w := 0; w < s.workers; w++ {
		start := w * chunkSize
		if start >= n {
			break
		}
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			// Options were validated up front, so a chunk cannot fail
			// as a whole; only per-element errors come back.
			res, _ := kepler.Solve(ms[start:end], opts)
			copy(out.Roots[start:end], res.Roots)
			for j, err := range res.Errors {
				if err == nil {
					continue
				}
				var se *kepler.SolveError
				if errors.As(err, &se) {
					se.Index += start
				}
				out.Errors[start+j] = err
			}
		}(start, end)
	}

	wg.Wait()
	return out, nil
}
