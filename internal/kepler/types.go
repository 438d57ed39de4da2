package kepler

import (
	"errors"
	"fmt"
)

const (
	DefaultOrder        = 32
	DefaultEccentricity = 1.1
	DefaultShape        = 1.0

	// The asymptotic upper-bound formulas are validated up to
	// M = rangeFactor * e. Larger inputs still solve but are flagged.
	rangeFactor = 95.2669
)

// Domain errors for solver operations.
var (
	// ErrOrder indicates a quadrature order below the two-node minimum.
	ErrOrder = errors.New("kepler: quadrature order must be greater than 1")

	// ErrEccentricity indicates a non-hyperbolic eccentricity.
	ErrEccentricity = errors.New("kepler: eccentricity must be greater than 1")

	// ErrDegenerateContour indicates the asymptotic upper bound fell below
	// the analytic lower bound, so no enclosing contour exists.
	ErrDegenerateContour = errors.New("kepler: degenerate contour (upper bound below lower bound)")

	// ErrZeroDenominator indicates the denominator integral vanished,
	// meaning the contour failed to enclose the root.
	ErrZeroDenominator = errors.New("kepler: denominator integral is numerically zero")

	// ErrOutOfRange indicates a mean anomaly beyond the validated range of
	// the regime formulas; the returned root has reduced confidence.
	ErrOutOfRange = errors.New("kepler: mean anomaly exceeds validated asymptotic range")
)

// Options configures a solve. The zero value is not valid; use
// DefaultOptions and override fields as needed.
type Options struct {
	Order        int     // number of quadrature nodes on [0, pi]
	Eccentricity float64 // hyperbolic eccentricity, > 1
	Shape        float64 // ellipse aspect of the contour, 1 = circle
}

func DefaultOptions() Options {
	return Options{
		Order:        DefaultOrder,
		Eccentricity: DefaultEccentricity,
		Shape:        DefaultShape,
	}
}

func (o Options) Validate() error {
	if o.Order <= 1 {
		return fmt.Errorf("%w (got %d)", ErrOrder, o.Order)
	}
	if o.Eccentricity <= 1 {
		return fmt.Errorf("%w (got %g)", ErrEccentricity, o.Eccentricity)
	}
	return nil
}

// Result holds one root per input mean anomaly, positionally aligned with
// the input. Errors is aligned with Roots; a nil entry means the element
// solved cleanly. An ErrOutOfRange entry still carries a computed root.
type Result struct {
	Roots  []float64
	Errors []error
}

// Failed reports whether any element carries an error.
func (r *Result) Failed() bool {
	for _, err := range r.Errors {
		if err != nil {
			return true
		}
	}
	return false
}

// IsOutOfRange reports whether err marks a reduced-confidence root
// rather than a failed element.
func IsOutOfRange(err error) bool {
	return errors.Is(err, ErrOutOfRange)
}

// SolveError wraps a per-element failure with its position and input.
type SolveError struct {
	Index       int
	MeanAnomaly float64
	Err         error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("element %d (M=%.6g): %v", e.Index, e.MeanAnomaly, e.Err)
}

func (e *SolveError) Unwrap() error {
	return e.Err
}
