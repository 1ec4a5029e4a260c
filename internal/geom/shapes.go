package geom

import "math"

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Square returns the square with top-left corner (x, y) and side size.
func Square(x, y, size float64) Rect {
	return Rect{x, y, size, size}
}

// MaxX returns the right edge.
func (r Rect) MaxX() float64 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float64 { return r.Y + r.H }

// Center returns the centre of r.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// Empty reports whether r has no area or is not finite.
func (r Rect) Empty() bool {
	return !Finite(r.X, r.Y, r.W, r.H) || r.W <= 0 || r.H <= 0
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// ContainsRect reports whether s lies entirely within r, allowing eps of
// floating point slack on each edge.
func (r Rect) ContainsRect(s Rect, eps float64) bool {
	return s.X >= r.X-eps && s.Y >= r.Y-eps &&
		s.MaxX() <= r.MaxX()+eps && s.MaxY() <= r.MaxY()+eps
}

// Intersect returns the overlap of r and s; the result is Empty when they
// do not overlap.
func (r Rect) Intersect(s Rect) Rect {
	x0 := math.Max(r.X, s.X)
	y0 := math.Max(r.Y, s.Y)
	x1 := math.Min(r.MaxX(), s.MaxX())
	y1 := math.Min(r.MaxY(), s.MaxY())
	if x1 <= x0 || y1 <= y0 {
		return Rect{x0, y0, 0, 0}
	}
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Triangle is three vertices in drawing order.
type Triangle struct {
	A, B, C Point
}

// Area returns the unsigned area of t.
func (t Triangle) Area() float64 {
	return math.Abs((t.B.X-t.A.X)*(t.C.Y-t.A.Y)-(t.C.X-t.A.X)*(t.B.Y-t.A.Y)) / 2
}

// Points returns the vertices as a slice.
func (t Triangle) Points() []Point {
	return []Point{t.A, t.B, t.C}
}

// Equilateral returns the upward-pointing equilateral triangle with the
// given centre and side length.
func Equilateral(center Point, side float64) Triangle {
	h := math.Sqrt(3) / 2 * side
	return Triangle{
		A: Point{center.X, center.Y - h/2},
		B: Point{center.X - side/2, center.Y + h/2},
		C: Point{center.X + side/2, center.Y + h/2},
	}
}
