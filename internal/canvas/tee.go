package canvas

import (
	"image/color"

	"github.com/olivierh59500/sketchbook/internal/geom"
)

type tee struct {
	a, b Painter
}

// Tee returns a Painter that forwards every call to a and then b. Size
// reports a's dimensions.
func Tee(a, b Painter) Painter {
	return tee{a: a, b: b}
}

func (t tee) Size() (int, int) { return t.a.Size() }

func (t tee) Background(c color.Color) { t.a.Background(c); t.b.Background(c) }

func (t tee) Line(x1, y1, x2, y2 float64, st Style) {
	t.a.Line(x1, y1, x2, y2, st)
	t.b.Line(x1, y1, x2, y2, st)
}

func (t tee) Circle(cx, cy, r float64, st Style) {
	t.a.Circle(cx, cy, r, st)
	t.b.Circle(cx, cy, r, st)
}

func (t tee) Arc(cx, cy, r, start, end float64, st Style) {
	t.a.Arc(cx, cy, r, start, end, st)
	t.b.Arc(cx, cy, r, start, end, st)
}

func (t tee) Rect(x, y, w, h float64, st Style) {
	t.a.Rect(x, y, w, h, st)
	t.b.Rect(x, y, w, h, st)
}

func (t tee) Polygon(pts []geom.Point, st Style) { t.a.Polygon(pts, st); t.b.Polygon(pts, st) }

func (t tee) Polyline(pts []geom.Point, st Style) { t.a.Polyline(pts, st); t.b.Polyline(pts, st) }

func (t tee) Point(x, y float64, st Style) { t.a.Point(x, y, st); t.b.Point(x, y, st) }

func (t tee) Push() { t.a.Push(); t.b.Push() }

func (t tee) Pop() { t.a.Pop(); t.b.Pop() }

func (t tee) ClipRect(r geom.Rect) { t.a.ClipRect(r); t.b.ClipRect(r) }
