// Package curve smooths polylines into piecewise cubic Bézier curves.
package curve

import "gioui.org/f32"

// Tension scales the Hermite tangents into Bézier control arm lengths.
const Tension = 1.0 / 3.0

// Control holds the two control points of the cubic segment ending at a
// point. C1 leaves the previous point and C2 enters the current one.
type Control struct {
	C1, C2 f32.Point
}

// Hermite returns the control points which turn points into a smooth curve
// passing through every point. Control i describes the segment from
// points[i] to points[i+1], so drawing
//
//	MoveTo(points[0])
//	CubeTo(c[i].C1, c[i].C2, points[i+1]) for each i
//
// renders the curve. Fewer than two points yield no controls.
func Hermite(points []f32.Point) []Control {
	return AppendHermite(nil, points)
}

// AppendHermite is like Hermite, but appends to dst.
func AppendHermite(dst []Control, points []f32.Point) []Control {
	if len(points) < 2 {
		return dst
	}
	for i := 0; i < len(points)-1; i++ {
		dst = append(dst, Control{
			C1: points[i].Add(tangent(points, i).Mul(Tension)),
			C2: points[i+1].Sub(tangent(points, i+1).Mul(Tension)),
		})
	}
	return dst
}

// tangent is the average of the vectors to the neighbours of points[i].
// Endpoints only have one neighbour, whose vector is halved.
func tangent(points []f32.Point, i int) f32.Point {
	last := len(points) - 1
	switch i {
	case 0:
		return points[1].Sub(points[0]).Mul(.5)
	case last:
		return points[last].Sub(points[last-1]).Mul(.5)
	}
	return points[i+1].Sub(points[i]).Mul(.5).Add(points[i].Sub(points[i-1]).Mul(.5))
}
