package canvas

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/olivierh59500/sketchbook/internal/geom"
)

// Op identifies a recorded drawing call.
type Op int

const (
	OpBackground Op = iota
	OpLine
	OpCircle
	OpArc
	OpRect
	OpPolygon
	OpPolyline
	OpPoint
	OpPush
	OpPop
	OpClip
)

// Command is one recorded Painter call.
type Command struct {
	Op     Op
	Points []geom.Point
	Radius float64
	Angles [2]float64 // start and end of an arc
	Rect   geom.Rect
	Style  Style
	Color  color.Color
}

// Recorder is a Painter that keeps every call as a Command.
type Recorder struct {
	w, h     int
	commands []Command
	depth    int // open Push calls
}

// NewRecorder returns an empty recorder for a w×h canvas.
func NewRecorder(w, h int) (*Recorder, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	return &Recorder{w: w, h: h}, nil
}

// Commands returns the recorded calls in order.
func (r *Recorder) Commands() []Command { return r.commands }

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
	r.depth = 0
}

func (r *Recorder) Size() (int, int) { return r.w, r.h }

// Background records a fill of the whole canvas. An opaque fill outside
// any Push hides everything drawn so far, so the earlier commands are
// dropped.
func (r *Recorder) Background(c color.Color) {
	if _, _, _, a := c.RGBA(); a == 0xffff && r.depth == 0 {
		r.Reset()
	}
	r.add(Command{Op: OpBackground, Color: c})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, st Style) {
	r.add(Command{Op: OpLine, Points: []geom.Point{{X: x1, Y: y1}, {X: x2, Y: y2}}, Style: st})
}

func (r *Recorder) Circle(cx, cy, rad float64, st Style) {
	r.add(Command{Op: OpCircle, Points: []geom.Point{{X: cx, Y: cy}}, Radius: rad, Style: st})
}

func (r *Recorder) Arc(cx, cy, rad, start, end float64, st Style) {
	r.add(Command{Op: OpArc, Points: []geom.Point{{X: cx, Y: cy}}, Radius: rad, Angles: [2]float64{start, end}, Style: st})
}

func (r *Recorder) Rect(x, y, w, h float64, st Style) {
	r.add(Command{Op: OpRect, Rect: geom.R(x, y, w, h), Style: st})
}

func (r *Recorder) Polygon(pts []geom.Point, st Style) {
	r.add(Command{Op: OpPolygon, Points: append([]geom.Point(nil), pts...), Style: st})
}

func (r *Recorder) Polyline(pts []geom.Point, st Style) {
	r.add(Command{Op: OpPolyline, Points: append([]geom.Point(nil), pts...), Style: st})
}

func (r *Recorder) Point(x, y float64, st Style) {
	r.add(Command{Op: OpPoint, Points: []geom.Point{{X: x, Y: y}}, Style: st})
}

func (r *Recorder) Push() {
	r.depth++
	r.add(Command{Op: OpPush})
}

func (r *Recorder) Pop() {
	if r.depth > 0 {
		r.depth--
	}
	r.add(Command{Op: OpPop})
}

func (r *Recorder) ClipRect(rect geom.Rect) { r.add(Command{Op: OpClip, Rect: rect}) }

func (r *Recorder) add(c Command) {
	r.commands = append(r.commands, c)
}

// Replay issues every recorded call against p.
func (r *Recorder) Replay(p Painter) {
	for _, c := range r.commands {
		switch c.Op {
		case OpBackground:
			p.Background(c.Color)
		case OpLine:
			p.Line(c.Points[0].X, c.Points[0].Y, c.Points[1].X, c.Points[1].Y, c.Style)
		case OpCircle:
			p.Circle(c.Points[0].X, c.Points[0].Y, c.Radius, c.Style)
		case OpArc:
			p.Arc(c.Points[0].X, c.Points[0].Y, c.Radius, c.Angles[0], c.Angles[1], c.Style)
		case OpRect:
			p.Rect(c.Rect.X, c.Rect.Y, c.Rect.W, c.Rect.H, c.Style)
		case OpPolygon:
			p.Polygon(c.Points, c.Style)
		case OpPolyline:
			p.Polyline(c.Points, c.Style)
		case OpPoint:
			p.Point(c.Points[0].X, c.Points[0].Y, c.Style)
		case OpPush:
			p.Push()
		case OpPop:
			p.Pop()
		case OpClip:
			p.ClipRect(c.Rect)
		}
	}
}

// svgScale is the fixed-point factor applied to coordinates, since svgo
// works in integers. The viewBox undoes it.
const svgScale = 10

// WriteSVG writes the recorded drawing as an SVG document.
func (r *Recorder) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	doc := svg.New(ew)
	doc.Startview(r.w, r.h, 0, 0, r.w*svgScale, r.h*svgScale)

	// groups[i] counts the clip groups opened since the i-th Push.
	groups := []int{0}
	clips := 0
	for _, c := range r.commands {
		switch c.Op {
		case OpBackground:
			doc.Rect(0, 0, r.w*svgScale, r.h*svgScale, "fill:"+svgColor(c.Color)+";fill-opacity:"+svgOpacity(c.Color))
		case OpLine:
			if c.Style.strokes() {
				doc.Line(fx(c.Points[0].X), fx(c.Points[0].Y), fx(c.Points[1].X), fx(c.Points[1].Y), svgStyle(Style{Stroke: c.Style.Stroke, Weight: c.Style.Weight, Cap: c.Style.Cap}))
			}
		case OpCircle:
			if c.Radius > 0 {
				doc.Circle(fx(c.Points[0].X), fx(c.Points[0].Y), fx(c.Radius), svgStyle(c.Style))
			}
		case OpArc:
			writeArc(doc, c)
		case OpRect:
			if !c.Rect.Empty() {
				doc.Rect(fx(c.Rect.X), fx(c.Rect.Y), fx(c.Rect.W), fx(c.Rect.H), svgStyle(c.Style))
			}
		case OpPolygon:
			if len(c.Points) >= 3 {
				xs, ys := fxs(c.Points)
				doc.Polygon(xs, ys, svgStyle(c.Style))
			}
		case OpPolyline:
			if len(c.Points) >= 2 {
				xs, ys := fxs(c.Points)
				doc.Polyline(xs, ys, svgStyle(Style{Stroke: c.Style.Stroke, Weight: c.Style.Weight, Cap: c.Style.Cap}))
			}
		case OpPoint:
			if c.Style.Stroke != nil {
				doc.Circle(fx(c.Points[0].X), fx(c.Points[0].Y), fx(math.Max(c.Style.Weight/2, 0.5)), svgStyle(Style{Fill: c.Style.Stroke}))
			}
		case OpPush:
			groups = append(groups, 0)
		case OpPop:
			if len(groups) > 1 {
				for i := 0; i < groups[len(groups)-1]; i++ {
					doc.Gend()
				}
				groups = groups[:len(groups)-1]
			}
		case OpClip:
			clips++
			id := fmt.Sprintf("clip%d", clips)
			doc.Def()
			doc.ClipPath(`id="` + id + `"`)
			doc.Rect(fx(c.Rect.X), fx(c.Rect.Y), fx(c.Rect.W), fx(c.Rect.H))
			doc.ClipEnd()
			doc.DefEnd()
			doc.Group(`clip-path="url(#` + id + `)"`)
			groups[len(groups)-1]++
		}
	}
	for _, n := range groups {
		for i := 0; i < n; i++ {
			doc.Gend()
		}
	}
	doc.End()
	return ew.err
}

// writeArc emits an arc as a path; spans of a full turn or more become a
// circle since an SVG arc cannot close on itself.
func writeArc(doc *svg.SVG, c Command) {
	cx, cy := c.Points[0].X, c.Points[0].Y
	start, end := c.Angles[0], c.Angles[1]
	if !geom.Finite(cx, cy, c.Radius, start, end) || c.Radius <= 0 || end <= start || !c.Style.strokes() {
		return
	}
	st := svgStyle(Style{Stroke: c.Style.Stroke, Weight: c.Style.Weight, Cap: c.Style.Cap})
	if end-start >= 2*math.Pi {
		doc.Circle(fx(cx), fx(cy), fx(c.Radius), st)
		return
	}
	rad := fx(c.Radius)
	doc.Arc(fx(cx+c.Radius*math.Cos(start)), fx(cy+c.Radius*math.Sin(start)), rad, rad, 0,
		end-start > math.Pi, true,
		fx(cx+c.Radius*math.Cos(end)), fx(cy+c.Radius*math.Sin(end)), st)
}

func fx(v float64) int {
	return int(math.Round(v * svgScale))
}

func fxs(pts []geom.Point) ([]int, []int) {
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = fx(p.X), fx(p.Y)
	}
	return xs, ys
}

func svgStyle(st Style) string {
	var b strings.Builder
	if st.Fill != nil {
		fmt.Fprintf(&b, "fill:%s;fill-opacity:%s", svgColor(st.Fill), svgOpacity(st.Fill))
	} else {
		b.WriteString("fill:none")
	}
	if st.strokes() {
		lc := "round"
		switch st.Cap {
		case CapSquare:
			lc = "square"
		case CapButt:
			lc = "butt"
		}
		fmt.Fprintf(&b, ";stroke:%s;stroke-opacity:%s;stroke-width:%g;stroke-linecap:%s",
			svgColor(st.Stroke), svgOpacity(st.Stroke), st.Weight*svgScale, lc)
	}
	return b.String()
}

func svgColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("rgb(%d,%d,%d)", n.R, n.G, n.B)
}

func svgOpacity(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("%.3g", float64(n.A)/255)
}

// errWriter remembers the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
