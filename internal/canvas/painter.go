// Package canvas provides the drawing surfaces sketches render into.
//
// Sketches draw through the Painter interface. Surface rasterizes onto an
// in-memory RGBA buffer with fogleman/gg; Recorder keeps the same calls as a
// command list that can be replayed or written out as SVG. Tee fans one
// sequence of calls out to two painters.
package canvas

import (
	"image/color"

	"github.com/olivierh59500/sketchbook/internal/geom"
)

// Cap is the shape drawn at the ends of stroked lines.
type Cap int

const (
	CapRound Cap = iota
	CapSquare
	CapButt
)

// Style describes how a primitive is stroked and filled. A nil colour
// disables that part; a stroke with zero weight is not drawn. Transparency
// is carried by the colours themselves.
type Style struct {
	Stroke color.Color
	Fill   color.Color
	Weight float64
	Cap    Cap
}

// Stroked returns an outline-only style.
func Stroked(c color.Color, weight float64) Style {
	return Style{Stroke: c, Weight: weight}
}

// Filled returns a fill-only style.
func Filled(c color.Color) Style {
	return Style{Fill: c}
}

// Fade returns a copy of st with both colours' alpha multiplied by a, which
// is clamped to [0,1].
func (st Style) Fade(a float64) Style {
	st.Stroke = fade(st.Stroke, a)
	st.Fill = fade(st.Fill, a)
	return st
}

func fade(c color.Color, a float64) color.Color {
	if c == nil {
		return nil
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = uint8(float64(n.A)*geom.Clamp(a, 0, 1) + 0.5)
	return n
}

func (st Style) strokes() bool {
	return st.Stroke != nil && st.Weight > 0
}

// Painter is the drawing API shared by raster and vector targets.
type Painter interface {
	Size() (w, h int)
	Background(c color.Color)
	Line(x1, y1, x2, y2 float64, st Style)
	Circle(cx, cy, r float64, st Style)
	// Arc strokes the open circular arc from angle start to end, in radians
	// measured clockwise on screen from the positive x axis. Fill is ignored.
	Arc(cx, cy, r, start, end float64, st Style)
	Rect(x, y, w, h float64, st Style)
	Polygon(pts []geom.Point, st Style)
	Polyline(pts []geom.Point, st Style)
	Point(x, y float64, st Style)
	// Push saves the clip state; Pop restores the last saved state.
	Push()
	Pop()
	// ClipRect intersects the current clip with r until the matching Pop.
	ClipRect(r geom.Rect)
}

// ShadowLine strokes a black line of the given weight with a soft shadow
// displaced by (dx, dy). The shadow is a stack of translucent strokes that
// widen by up to blur.
func ShadowLine(p Painter, x1, y1, x2, y2, weight, dx, dy, blur float64) {
	const passes = 6
	for i := passes; i >= 1; i-- {
		spread := blur * float64(i) / passes
		p.Line(x1+dx, y1+dy, x2+dx, y2+dy, Style{
			Stroke: GrayA(0, uint8(128/passes)),
			Weight: weight + spread,
			Cap:    CapButt,
		})
	}
	p.Line(x1, y1, x2, y2, Style{Stroke: Gray(0), Weight: weight, Cap: CapSquare})
}

// Gray returns an opaque grey.
func Gray(v uint8) color.NRGBA {
	return color.NRGBA{v, v, v, 255}
}

// GrayA returns a grey with alpha.
func GrayA(v, a uint8) color.NRGBA {
	return color.NRGBA{v, v, v, a}
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) color.NRGBA {
	return color.NRGBA{r, g, b, 255}
}

// RGBA returns a non-premultiplied colour.
func RGBA(r, g, b, a uint8) color.NRGBA {
	return color.NRGBA{r, g, b, a}
}

// RGBf builds an opaque colour from channel values in 0..255 that may be
// out of range or fractional, as produced by noise arithmetic.
func RGBf(r, g, b float64) color.NRGBA {
	return color.NRGBA{channel(r), channel(g), channel(b), 255}
}

func channel(v float64) uint8 {
	if !geom.Finite(v) {
		return 0
	}
	return uint8(geom.Clamp(v, 0, 255) + 0.5)
}
