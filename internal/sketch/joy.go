package sketch

import (
	"math"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
	"github.com/olivierh59500/sketchbook/internal/shape"
)

// splineSteps is the number of segments drawn between two ridge samples.
const splineSteps = 8

// joyDivision stacks noisy ridges over a black square, each one hiding
// the ridges behind it.
type joyDivision struct{}

func (joyDivision) Info() Info {
	return Info{ID: 12, Name: "joy-division", Title: "Displacement", Width: 400, Height: 400}
}

func (joyDivision) Setup(*Context) error { return nil }

func (joyDivision) Draw(c *Context) (bool, error) {
	cfg := c.Config.Joy
	p := c.Painter
	drawFrame(p, 0)
	p.Rect(inner.X, inner.Y, inner.W, inner.H, canvas.Filled(black))

	spacing := inner.H / float64(cfg.Lines+1)
	samples := int(math.Floor(inner.W/cfg.XStep + 1e-9))
	bottom := []geom.Point{geom.Pt(inner.MaxX(), inner.MaxY()), geom.Pt(inner.X, inner.MaxY())}

	p.Push()
	p.ClipRect(inner)
	for i := cfg.Skip + 1; i <= cfg.Lines; i++ {
		y := inner.Y + spacing*float64(i)
		ridge := make([]geom.Point, 0, samples+1)
		for k := 0; k <= samples; k++ {
			x := inner.X + float64(k)*cfg.XStep
			ridge = append(ridge, geom.Pt(x, ridgeY(c, cfg.Amplitude, cfg.NoiseScale, cfg.Exponent, x, y, i)))
		}
		curve := shape.Spline(ridge, splineSteps)
		p.Polygon(append(append([]geom.Point(nil), curve...), bottom...), canvas.Filled(black))
		p.Polyline(curve, canvas.Stroked(white, 1))
	}
	p.Pop()
	return false, nil
}

// ridgeY displaces row y of line i upwards only. An envelope of
// sin(πt)^exponent keeps the edges of the square flat.
func ridgeY(c *Context, amplitude, scale, exponent, x, y float64, i int) float64 {
	t := (x - inner.X) / inner.W
	envelope := math.Pow(math.Max(0, math.Sin(math.Pi*t)), exponent)
	n := c.Field.NoiseOffset(x*scale, y*scale, i)
	offset := math.Min(geom.Map(n, 0, 1, -1, 1)*amplitude*envelope, 0)
	return math.Max(y+offset, inner.Y)
}
