package shape

import (
	"math"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
)

// GapAngle returns the angle subtended by a chord of length gap on a circle
// of radius r. A gap of zero or less gives 0; a gap reaching the diameter
// gives π. ok is false when r is not a positive finite number.
func GapAngle(r, gap float64) (float64, bool) {
	if !geom.Finite(r, gap) || r <= 0 {
		return 0, false
	}
	if gap <= 0 {
		return 0, true
	}
	return 2 * math.Asin(math.Min(gap/(2*r), 1)), true
}

// DrawGapRing strokes a ring of radius r around c, broken by an opening of
// chord length gap centred on angle position (radians). It reports whether
// anything was drawn.
func DrawGapRing(p canvas.Painter, c geom.Point, r, position, gap float64, st canvas.Style) bool {
	a, ok := GapAngle(r, gap)
	if !ok || !geom.Finite(position) {
		return false
	}
	if a == 0 {
		p.Circle(c.X, c.Y, r, canvas.Style{Stroke: st.Stroke, Weight: st.Weight, Cap: st.Cap})
		return true
	}
	p.Arc(c.X, c.Y, r, position+a/2, position-a/2+2*math.Pi, st)
	return true
}
