package grid

import "github.com/olivierh59500/sketchbook/internal/geom"

// minArea is the smallest triangle worth subdividing further.
const minArea = 1e-6

// Triangles splits tri at its edge midpoints depth times, keeping the three
// corner triangles at each step, and calls fn for every leaf with its
// level. When jitter is not nil each vertex is displaced by
// (jitter(), jitter()) before its midpoints are taken, while the corners
// handed to the children stay put. Degenerate triangles are dropped.
// Triangles returns the number of leaves delivered, at most 3^depth.
func Triangles(tri geom.Triangle, depth int, jitter func() float64, fn func(t geom.Triangle, level int)) int {
	return triangles(tri, depth, 0, jitter, fn)
}

func triangles(tri geom.Triangle, depth, level int, jitter func() float64, fn func(geom.Triangle, int)) int {
	if !tri.A.Finite() || !tri.B.Finite() || !tri.C.Finite() || tri.Area() < minArea {
		return 0
	}
	if depth <= 0 {
		fn(tri, level)
		return 1
	}
	a, b, c := tri.A, tri.B, tri.C
	if jitter != nil {
		a = a.Add(geom.Pt(jitter(), jitter()))
		b = b.Add(geom.Pt(jitter(), jitter()))
		c = c.Add(geom.Pt(jitter(), jitter()))
	}
	ab := geom.Midpoint(a, b)
	bc := geom.Midpoint(b, c)
	ca := geom.Midpoint(c, a)

	n := triangles(geom.Triangle{A: tri.A, B: ab, C: ca}, depth-1, level+1, jitter, fn)
	n += triangles(geom.Triangle{A: ab, B: tri.B, C: bc}, depth-1, level+1, jitter, fn)
	n += triangles(geom.Triangle{A: ca, B: bc, C: tri.C}, depth-1, level+1, jitter, fn)
	return n
}

// Nest produces a chain of squares, each shrink times the size of the one
// before and centred on it, plus the displacement returned by displace for
// its size and level. fn receives every square including the outermost.
// The chain stops after depth+1 squares, or earlier once a square would be
// empty. shrink must lie in (0,1); otherwise only the first square is
// produced.
func Nest(x, y, size float64, depth int, shrink float64, displace func(size float64, level int) geom.Point, fn func(r geom.Rect, level int)) int {
	n := 0
	for level := 0; level <= depth; level++ {
		if size <= 0 || !geom.Finite(x, y, size) {
			break
		}
		var d geom.Point
		if displace != nil && level > 0 {
			d = displace(size, level)
		}
		x, y = x+d.X, y+d.Y
		fn(geom.Square(x, y, size), level)
		n++
		if shrink <= 0 || shrink >= 1 {
			break
		}
		next := size * shrink
		off := (size - next) / 2
		x, y, size = x+off, y+off, next
	}
	return n
}
