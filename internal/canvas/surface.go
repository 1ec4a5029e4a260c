package canvas

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/olivierh59500/sketchbook/internal/geom"
)

// Surface is a fixed-size raster drawing surface. It owns its pixel buffer;
// hosts read it back with Image.
type Surface struct {
	img *image.RGBA
	dc  *gg.Context
}

// NewSurface returns a transparent w×h surface.
func NewSurface(w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return &Surface{img: img, dc: gg.NewContextForRGBA(img)}, nil
}

// NewLayer returns a transparent surface with the same size as s.
func (s *Surface) NewLayer() *Surface {
	w, h := s.Size()
	l, _ := NewSurface(w, h)
	return l
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Image returns the backing pixel buffer. Drawing into it directly is
// allowed and is how composited results are written back.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// Context exposes the underlying gg context for drawing that the Painter
// interface does not cover.
func (s *Surface) Context() *gg.Context {
	return s.dc
}

// Clear resets every pixel to transparent.
func (s *Surface) Clear() {
	s.Background(color.Transparent)
}

// Background replaces every pixel with c.
func (s *Surface) Background(c color.Color) {
	s.dc.Push()
	s.dc.ResetClip()
	s.dc.SetColor(c)
	s.dc.Clear()
	s.dc.Pop()
}

// Line strokes a segment.
func (s *Surface) Line(x1, y1, x2, y2 float64, st Style) {
	if !geom.Finite(x1, y1, x2, y2) || !st.strokes() {
		return
	}
	s.dc.DrawLine(x1, y1, x2, y2)
	s.paint(Style{Stroke: st.Stroke, Weight: st.Weight, Cap: st.Cap})
}

// Circle draws a circle of radius r centred on (cx, cy).
func (s *Surface) Circle(cx, cy, r float64, st Style) {
	if !geom.Finite(cx, cy, r) || r <= 0 {
		return
	}
	s.dc.DrawCircle(cx, cy, r)
	s.paint(st)
}

// Arc strokes an open arc. Empty or reversed spans draw nothing.
func (s *Surface) Arc(cx, cy, r, start, end float64, st Style) {
	if !geom.Finite(cx, cy, r, start, end) || r <= 0 || end <= start || !st.strokes() {
		return
	}
	s.dc.NewSubPath()
	s.dc.DrawArc(cx, cy, r, start, end)
	s.paint(Style{Stroke: st.Stroke, Weight: st.Weight, Cap: st.Cap})
}

// Rect draws an axis-aligned rectangle.
func (s *Surface) Rect(x, y, w, h float64, st Style) {
	if geom.R(x, y, w, h).Empty() {
		return
	}
	s.dc.DrawRectangle(x, y, w, h)
	s.paint(st)
}

// Polygon draws a closed shape through pts.
func (s *Surface) Polygon(pts []geom.Point, st Style) {
	if !s.trace(pts, 3) {
		return
	}
	s.dc.ClosePath()
	s.paint(st)
}

// Polyline strokes an open path through pts.
func (s *Surface) Polyline(pts []geom.Point, st Style) {
	if !s.trace(pts, 2) {
		return
	}
	s.paint(Style{Stroke: st.Stroke, Weight: st.Weight, Cap: st.Cap})
}

// Point draws a dot the size of the stroke weight in the stroke colour.
func (s *Surface) Point(x, y float64, st Style) {
	if st.Stroke == nil || !geom.Finite(x, y) {
		return
	}
	r := math.Max(st.Weight/2, 0.5)
	s.dc.DrawCircle(x, y, r)
	s.paint(Style{Fill: st.Stroke})
}

// Push saves the drawing state, clip included.
func (s *Surface) Push() { s.dc.Push() }

// Pop restores the state saved by the matching Push.
func (s *Surface) Pop() { s.dc.Pop() }

// ClipRect restricts drawing to r until the matching Pop.
func (s *Surface) ClipRect(r geom.Rect) {
	s.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	s.dc.Clip()
}

// DrawImage copies img onto the surface with its top-left corner at (x, y).
func (s *Surface) DrawImage(img image.Image, x, y int) {
	s.dc.DrawImage(img, x, y)
}

// Placeholder fills the surface with a neutral panel and centres msg on it.
// Sketches use it when an asset they depend on could not be loaded.
func (s *Surface) Placeholder(msg string) {
	w, h := s.Size()
	s.Background(Gray(235))
	s.Rect(8, 8, float64(w)-16, float64(h)-16, Stroked(Gray(160), 1))
	s.dc.SetColor(Gray(60))
	s.dc.DrawStringWrapped(msg, float64(w)/2, float64(h)/2, 0.5, 0.5, float64(w)-48, 1.4, gg.AlignCenter)
}

func (s *Surface) trace(pts []geom.Point, min int) bool {
	if len(pts) < min {
		return false
	}
	for _, p := range pts {
		if !p.Finite() {
			return false
		}
	}
	s.dc.NewSubPath()
	s.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.dc.LineTo(p.X, p.Y)
	}
	return true
}

func (s *Surface) paint(st Style) {
	defer s.dc.ClearPath()
	if st.Fill != nil {
		s.dc.SetColor(st.Fill)
		s.dc.FillPreserve()
	}
	if st.strokes() {
		s.dc.SetColor(st.Stroke)
		s.dc.SetLineWidth(st.Weight)
		s.dc.SetLineCap(ggCap(st.Cap))
		s.dc.StrokePreserve()
	}
}

func ggCap(c Cap) gg.LineCap {
	switch c {
	case CapSquare:
		return gg.LineCapSquare
	case CapButt:
		return gg.LineCapButt
	default:
		return gg.LineCapRound
	}
}
