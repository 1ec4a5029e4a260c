package particle

import (
	"image/color"
	"math"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/field"
	"github.com/olivierh59500/sketchbook/internal/geom"
)

// Field is the noise and randomness a system draws on. *field.Sampler
// satisfies it.
type Field interface {
	Sample(x, y, z float64) field.SampleResult
	Noise3(x, y, z float64) float64
	Random(min, max float64) float64
	Float() float64
}

// FlowField is a grid of force vectors and colours re-sampled every frame
// from coherent noise. The three offsets move through noise space so the
// field drifts between frames.
type FlowField struct {
	Cols, Rows int
	Scale      float64
	Vectors    []geom.Point
	Magnitudes []float64
	Colors     []color.NRGBA

	XYOffset        float64
	ZOffset         float64
	MagnitudeOffset float64

	cfg Config
}

// NewFlowField returns an empty field covering a w×h canvas.
func NewFlowField(w, h float64, cfg Config) *FlowField {
	cols := int(math.Floor(w / cfg.GridScale))
	rows := int(math.Floor(h / cfg.GridScale))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &FlowField{
		Cols:       cols,
		Rows:       rows,
		Scale:      cfg.GridScale,
		Vectors:    make([]geom.Point, cols*rows),
		Magnitudes: make([]float64, cols*rows),
		Colors:     make([]color.NRGBA, cols*rows),
		cfg:        cfg,
	}
}

// Update samples every cell at the current offsets, then advances them.
func (f *FlowField) Update(src Field) {
	yn := f.XYOffset
	for y := 0; y < f.Rows; y++ {
		xn := f.XYOffset
		for x := 0; x < f.Cols; x++ {
			i := x + y*f.Cols
			r := src.Sample(xn, yn, f.ZOffset)
			f.Colors[i] = canvas.RGBf(
				r.Color[0]*f.cfg.Red,
				r.Color[1]*f.cfg.Green,
				r.Color[2]*f.cfg.Blue,
			)
			// Noise only reaches the bottom eighth of the source range, so
			// forces are weak and point against the sampled angle.
			mag := geom.Map(src.Noise3(xn, yn, f.MagnitudeOffset), 0, 8, -5, 5)
			f.Magnitudes[i] = mag
			f.Vectors[i] = geom.FromAngle(r.Vector.Angle).SetMag(mag)
			xn += f.cfg.NoiseStep
		}
		yn += f.cfg.NoiseStep
	}
	f.MagnitudeOffset += f.cfg.MagnitudeStep
	f.ZOffset += f.cfg.ZStep
	f.XYOffset -= f.cfg.MagnitudeStep
}

// Index returns the cell containing pos. Positions on or past the far edge
// map to the last cell.
func (f *FlowField) Index(pos geom.Point) int {
	x := clampIndex(int(math.Floor(pos.X/f.Scale)), f.Cols)
	y := clampIndex(int(math.Floor(pos.Y/f.Scale)), f.Rows)
	return x + y*f.Cols
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// At returns the force and colour of the cell containing pos.
func (f *FlowField) At(pos geom.Point) (geom.Point, color.NRGBA) {
	if !pos.Finite() {
		return geom.Point{}, color.NRGBA{}
	}
	i := f.Index(pos)
	return f.Vectors[i], f.Colors[i]
}

// Draw renders the field itself: one line per cell along its vector, with
// a red tip for reversed forces and a green one otherwise.
func (f *FlowField) Draw(p canvas.Painter) {
	for y := 0; y < f.Rows; y++ {
		for x := 0; x < f.Cols; x++ {
			i := x + y*f.Cols
			v := f.Vectors[i]
			o := geom.Pt(float64(x)*f.Scale, float64(y)*f.Scale)
			dir := geom.FromAngle(v.Heading())
			length := v.Mag() * f.Scale
			end := o.Add(dir.Scale(length))
			p.Line(o.X, o.Y, end.X, end.Y, canvas.Stroked(canvas.Gray(0), 1))

			tip := canvas.RGB(0, 160, 0)
			if f.Magnitudes[i] < 0 {
				tip = canvas.RGB(220, 0, 0)
			}
			start := o.Add(dir.Scale(math.Max(length-6, 0)))
			p.Line(start.X, start.Y, end.X, end.Y, canvas.Stroked(tip, 1))
		}
	}
}
