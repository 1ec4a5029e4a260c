package shape

import (
	"time"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
)

// DeCasteljau evaluates the Bézier curve with the given control points at
// t, which is clamped to [0,1]. It reports false when there are no points.
func DeCasteljau(points []geom.Point, t float64) (geom.Point, bool) {
	if len(points) == 0 {
		return geom.Point{}, false
	}
	layer := append([]geom.Point(nil), points...)
	t = clampT(t)
	for n := len(layer); n > 1; n-- {
		for i := 0; i < n-1; i++ {
			layer[i] = geom.LerpPoint(layer[i], layer[i+1], t)
		}
	}
	return layer[0], true
}

// DeCasteljauLayers returns every intermediate layer of the evaluation at
// t, starting with the control points and ending with the single curve
// point. These are the construction lines drawn while a curve is revealed.
func DeCasteljauLayers(points []geom.Point, t float64) [][]geom.Point {
	if len(points) == 0 {
		return nil
	}
	t = clampT(t)
	layers := [][]geom.Point{append([]geom.Point(nil), points...)}
	for cur := layers[0]; len(cur) > 1; {
		next := make([]geom.Point, len(cur)-1)
		for i := range next {
			next[i] = geom.LerpPoint(cur[i], cur[i+1], t)
		}
		layers = append(layers, next)
		cur = next
	}
	return layers
}

func clampT(t float64) float64 {
	if !geom.Finite(t) {
		return 0
	}
	return geom.Clamp(t, 0, 1)
}

// SampleCurve returns samples+1 evenly spaced points along the curve.
func SampleCurve(points []geom.Point, samples int) []geom.Point {
	if len(points) == 0 || samples <= 0 {
		return nil
	}
	out := make([]geom.Point, 0, samples+1)
	for i := 0; i <= samples; i++ {
		p, _ := DeCasteljau(points, float64(i)/float64(samples))
		out = append(out, p)
	}
	return out
}

// DrawCurve strokes the Bézier curve through control points as a polyline
// of samples segments. Fewer than one sample defaults to 64.
func DrawCurve(p canvas.Painter, points []geom.Point, samples int, st canvas.Style) {
	if samples < 1 {
		samples = 64
	}
	p.Polyline(SampleCurve(points, samples), st)
}

// Spline returns a uniform Catmull-Rom spline through pts with steps
// segments per span. The first and last points are repeated so the spline
// reaches both ends.
func Spline(pts []geom.Point, steps int) []geom.Point {
	if len(pts) < 3 || steps < 1 {
		return append([]geom.Point(nil), pts...)
	}
	ext := make([]geom.Point, 0, len(pts)+2)
	ext = append(ext, pts[0])
	ext = append(ext, pts...)
	ext = append(ext, pts[len(pts)-1])

	out := make([]geom.Point, 0, (len(pts)-1)*steps+1)
	for i := 1; i < len(ext)-2; i++ {
		p0, p1, p2, p3 := ext[i-1], ext[i], ext[i+1], ext[i+2]
		for s := 0; s < steps; s++ {
			out = append(out, catmullRom(p0, p1, p2, p3, float64(s)/float64(steps)))
		}
	}
	return append(out, pts[len(pts)-1])
}

func catmullRom(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	t2, t3 := t*t, t*t*t
	f := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b + (c-a)*t + (2*a-5*b+4*c-d)*t2 + (3*b-a-3*c+d)*t3)
	}
	return geom.Pt(f(p0.X, p1.X, p2.X, p3.X), f(p0.Y, p1.Y, p2.Y, p3.Y))
}

// Reveal animates the construction of a Bézier curve. Each Advance
// evaluates the curve at the elapsed fraction of Duration and appends the
// result to an accumulating polyline kept apart from the scaffolding.
type Reveal struct {
	Control  []geom.Point
	Duration time.Duration

	points []geom.Point
	done   bool
}

// NewReveal returns a Reveal over a copy of control.
func NewReveal(control []geom.Point, d time.Duration) *Reveal {
	return &Reveal{Control: append([]geom.Point(nil), control...), Duration: d}
}

// Advance moves the reveal to elapsed time since its start and returns the
// construction layers for that instant. Once t reaches 1 the reveal is done
// and further calls return nil.
func (r *Reveal) Advance(elapsed time.Duration) [][]geom.Point {
	if r.done || len(r.Control) == 0 {
		return nil
	}
	t := 1.0
	if r.Duration > 0 {
		t = float64(elapsed) / float64(r.Duration)
	}
	t = clampT(t)
	layers := DeCasteljauLayers(r.Control, t)
	last := layers[len(layers)-1]
	r.points = append(r.points, last[0])
	if t >= 1 {
		r.done = true
	}
	return layers
}

// Points returns the curve points accumulated so far.
func (r *Reveal) Points() []geom.Point { return r.points }

// Done reports whether the curve has been fully revealed.
func (r *Reveal) Done() bool { return r.done }

// Restart clears the accumulated curve.
func (r *Reveal) Restart() {
	r.points = r.points[:0]
	r.done = false
}

// Draw strokes the accumulated curve.
func (r *Reveal) Draw(p canvas.Painter, st canvas.Style) {
	p.Polyline(r.points, st)
}
