package analysis

import "github.com/san-kum/kepsolve/internal/kepler"

// ConvergencePoint records the worst residual at one quadrature order.
type ConvergencePoint struct {
	Order       int
	MaxResidual float64
}

// ConvergenceStudy solves the same input at each order and reports the
// worst residual per order. Orders are evaluated as given.
func ConvergenceStudy(ms []float64, opts kepler.Options, orders []int) ([]ConvergencePoint, error) {
	out := make([]ConvergencePoint, 0, len(orders))
	for _, order := range orders {
		o := opts
		o.Order = order
		res, err := kepler.Solve(ms, o)
		if err != nil {
			return nil, err
		}
		out = append(out, ConvergencePoint{
			Order:       order,
			MaxResidual: MaxResidual(ms, res, o.Eccentricity),
		})
	}
	return out, nil
}
