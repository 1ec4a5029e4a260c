package sketch

import (
	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
)

var (
	black = canvas.Gray(0)
	white = canvas.Gray(255)
)

// inner is the region framed sketches draw into.
var inner = geom.R(80, 80, 240, 240)

// drawFrame paints the shared mount: a white ground, a heavy square with a
// soft shadow on its left and bottom edges, and a thin square around inner.
// A thin weight of zero leaves the inner square out.
func drawFrame(p canvas.Painter, thin float64) {
	p.Background(white)
	canvas.ShadowLine(p, 50, 50, 50, 350, 5, -5, 0, 10)
	canvas.ShadowLine(p, 50, 350, 350, 350, 5, 0, 5, 10)
	p.Rect(50, 50, 300, 300, canvas.Stroked(black, 10))
	if thin > 0 {
		p.Rect(inner.X, inner.Y, inner.W, inner.H, canvas.Stroked(black, thin))
	}
}
