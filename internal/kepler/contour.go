package kepler

import "math"

// Contour is the Jordan curve z(x) = mu + rho·(cos x + i·shape·sin x),
// x in [0, pi], enclosing exactly one root of e·sinh(z) − z = M when the
// bracket it was built from contains the root.
type Contour struct {
	Center float64 // mu
	Radius float64 // rho
	Shape  float64 // ellipse aspect, 1 = circle
}

func NewContour(b Bracket, shape float64) Contour {
	return Contour{
		Center: b.Center(),
		Radius: b.Width(),
		Shape:  shape,
	}
}

// Degenerate reports whether the contour cannot enclose a root. A
// negative radius means the asymptotic upper bound undershot the exact
// lower bound.
func (c Contour) Degenerate() bool {
	return c.Radius < 0 || math.IsNaN(c.Radius) || math.IsInf(c.Radius, 0)
}

// Point evaluates the contour at angle x.
func (c Contour) Point(x float64) complex128 {
	si, co := math.Sincos(x)
	return complex(c.Center+c.Radius*co, c.Radius*c.Shape*si)
}

// Tangent evaluates dz/dx at angle x with the radius factored out, i.e.
// (i·shape·cos x − sin x); the quadrature reattaches rho once per node.
func (c Contour) Tangent(x float64) complex128 {
	si, co := math.Sincos(x)
	return complex(-si, c.Shape*co)
}
