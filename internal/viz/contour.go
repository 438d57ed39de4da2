// Package viz renders integration contours in the complex plane as
// braille-canvas terminal graphics.
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/kepsolve/internal/kepler"
)

// RenderContour draws the closed integration ellipse for one element,
// the real-axis bracket it was built from, and the extracted root.
func RenderContour(b kepler.Bracket, c kepler.Contour, root float64, width, height int) string {
	if c.Radius <= 0 {
		return "degenerate contour: nothing to draw\n"
	}

	cv := NewCanvas(width, height)
	subW := width * 2
	subH := height * 4

	// Plot window: the ellipse plus a margin.
	margin := 1.25
	xMin := c.Center - c.Radius*margin
	xMax := c.Center + c.Radius*margin
	yHalf := c.Radius * math.Abs(c.Shape) * margin
	if yHalf == 0 {
		yHalf = c.Radius * margin
	}

	toSub := func(re, im float64) (int, int) {
		x := (re - xMin) / (xMax - xMin) * float64(subW-1)
		y := (1 - (im+yHalf)/(2*yHalf)) * float64(subH-1)
		return int(x), int(y)
	}

	// Real axis.
	_, axisY := toSub(0, 0)
	cv.Line(0, axisY, subW-1, axisY)

	// Closed contour: the solver walks [0, pi]; mirror for the lower half.
	const samples = 256
	px, py := toSub(real(c.Point(0)), imag(c.Point(0)))
	for k := 1; k <= samples; k++ {
		x := 2 * math.Pi * float64(k) / samples
		p := c.Point(x)
		nx, ny := toSub(real(p), imag(p))
		cv.Line(px, py, nx, ny)
		px, py = nx, ny
	}

	// Bracket endpoints as ticks, root as a cross.
	for _, bound := range []float64{b.Lower, b.Upper} {
		tx, ty := toSub(bound, 0)
		cv.Line(tx, ty-3, tx, ty+3)
	}
	rx, ry := toSub(root, 0)
	cv.Line(rx-2, ry-2, rx+2, ry+2)
	cv.Line(rx-2, ry+2, rx+2, ry-2)

	var out strings.Builder
	out.WriteString(cv.String())
	fmt.Fprintf(&out, "bracket [%.4f, %.4f]  center %.4f  radius %.4f  root %.6f\n",
		b.Lower, b.Upper, c.Center, c.Radius, root)
	return out.String()
}
