// Package geom holds the small amount of 2D geometry shared by the
// renderer: points used as positions and as vectors, axis-aligned
// rectangles and triangles.
package geom

import "math"

// Point is a position or a displacement in canvas coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p multiplied by k.
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

// Mag returns the length of p taken as a vector.
func (p Point) Mag() float64 {
	return math.Hypot(p.X, p.Y)
}

// Heading returns the angle of p in radians.
func (p Point) Heading() float64 {
	return math.Atan2(p.Y, p.X)
}

// SetMag returns p rescaled to length m. A zero vector stays zero.
func (p Point) SetMag(m float64) Point {
	l := p.Mag()
	if l == 0 {
		return p
	}
	return p.Scale(m / l)
}

// Limit returns p clamped to a maximum length of max.
func (p Point) Limit(max float64) Point {
	if l := p.Mag(); l > max && l > 0 {
		return p.Scale(max / l)
	}
	return p
}

// Dist returns the distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Finite reports whether both coordinates are finite.
func (p Point) Finite() bool {
	return Finite(p.X, p.Y)
}

// FromAngle returns the unit vector for angle a (radians).
func FromAngle(a float64) Point {
	return Point{math.Cos(a), math.Sin(a)}
}

// Midpoint returns the point halfway between p and q.
func Midpoint(p, q Point) Point {
	return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2}
}

// LerpPoint interpolates between p and q.
func LerpPoint(p, q Point, t float64) Point {
	return Point{Lerp(p.X, q.X, t), Lerp(p.Y, q.Y, t)}
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Map re-maps v from the range [a0,a1] onto [b0,b1]. A zero-width source
// range maps everything to b0.
func Map(v, a0, a1, b0, b1 float64) float64 {
	if a1 == a0 {
		return b0
	}
	return b0 + (v-a0)*(b1-b0)/(a1-a0)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Finite reports whether every value is neither NaN nor infinite.
func Finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Reflect mirrors p across the line through a and b. ok is false when a and
// b coincide and no line is defined.
func Reflect(p, a, b Point) (Point, bool) {
	d := b.Sub(a)
	l2 := d.X*d.X + d.Y*d.Y
	if l2 == 0 || !Finite(l2) {
		return p, false
	}
	ap := p.Sub(a)
	t := (ap.X*d.X + ap.Y*d.Y) / l2
	foot := a.Add(d.Scale(t))
	return foot.Scale(2).Sub(p), true
}
