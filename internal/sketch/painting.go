package sketch

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/composite"
	"github.com/olivierh59500/sketchbook/internal/config"
	"github.com/olivierh59500/sketchbook/internal/geom"
	"github.com/olivierh59500/sketchbook/internal/grid"
)

const (
	// paintingSeed makes the painting the same on every run unless the
	// configuration names a seed.
	paintingSeed  = 7
	paintingPad   = 30
	paintingRatio = 2092.0 / 2667.0
	// verticalLevel is the grey whose cells are brushed vertically.
	verticalLevel = 40
)

// blackPainting reproduces a near-black cruciform painting: a grid of dark
// greys, brushed and mottled, on a photographed sheet of paper. Texture is
// built in separate layers that are blended with multiply and soft-light.
type blackPainting struct{}

func (blackPainting) Info() Info {
	return Info{ID: 44, Name: "black-painting", Title: "Abstract painting (black)", Width: 600, Height: 600, RasterOnly: true}
}

func (blackPainting) Setup(c *Context) error {
	if c.Config.Seed == 0 {
		c.Field.NoiseSeed(paintingSeed)
		c.Field.RandomSeed(paintingSeed)
	}
	return nil
}

func (blackPainting) Draw(c *Context) (bool, error) {
	cfg := c.Config.Painting
	s := c.Surface
	w, h := s.Size()
	ph := float64(h) - 2*paintingPad
	pw := ph * paintingRatio
	area := geom.R((float64(w)-pw)/2, paintingPad, pw, ph)

	pp := &brush{c: c, cfg: cfg, area: area}
	if err := pp.paper(s); err != nil {
		return false, err
	}

	base := s.NewLayer()
	grid.Divide(area, cfg.Cols, cfg.Rows, func(cell grid.Cell) {
		pp.cell(base, cell)
	})

	mult, soft := s.NewLayer(), s.NewLayer()
	passes := []struct {
		dst    *canvas.Surface
		radius int
		fn     func(*canvas.Surface)
	}{
		{mult, 1, pp.seamShadow},
		{mult, 2, pp.edgeSmear},
		{mult, 1, pp.scanBands},
		{mult, 0, pp.vignette},
		{mult, 1, pp.scratches},
		{soft, 1, pp.seamRidge},
	}
	for _, ps := range passes {
		if err := pp.blurred(ps.dst, ps.radius, ps.fn); err != nil {
			return false, err
		}
	}
	if err := pp.texture(soft); err != nil {
		return false, err
	}

	out, err := composite.Composite(base.Image(),
		composite.Layer{Image: mult.Image(), Mode: composite.Multiply, Opacity: cfg.MultiplyOpacity},
		composite.Layer{Image: soft.Image(), Mode: composite.SoftLight, Opacity: cfg.SoftOpacity},
	)
	if err != nil {
		return false, err
	}
	if err := composite.Apply(s.Image(), composite.Layer{Image: out, Mode: composite.Normal, Opacity: 1}); err != nil {
		return false, err
	}
	return false, nil
}

// brush holds what every texture pass of one painting needs.
type brush struct {
	c    *Context
	cfg  config.PaintingConfig
	area geom.Rect
}

func (pp *brush) level(col, row int) int {
	return pp.cfg.Palette[(row*pp.cfg.Cols+col)%len(pp.cfg.Palette)]
}

func (pp *brush) noise(x, y, z float64) float64 { return pp.c.Field.Noise3(x, y, z) }

func (pp *brush) random(lo, hi float64) float64 { return pp.c.Field.Random(lo, hi) }

// blurred draws fn onto a fresh layer, blurs it by radius and lays it over
// dst. Every effect gets its own layer so one blur does not soften the
// others.
func (pp *brush) blurred(dst *canvas.Surface, radius int, fn func(*canvas.Surface)) error {
	layer := dst.NewLayer()
	fn(layer)
	img := layer.Image()
	if radius > 0 {
		img = composite.Blur(img, radius)
	}
	return composite.Apply(dst.Image(), composite.Layer{Image: img, Mode: composite.Normal, Opacity: 1})
}

// paper lays warm paper grain, the painting's drop shadow and a faint
// vignette onto s.
func (pp *brush) paper(s *canvas.Surface) error {
	w, h := s.Size()
	s.Background(canvas.Gray(252))
	img := s.Image()
	grid.Iterate(geom.R(0, 0, float64(w), float64(h)), 2, 2, grid.EdgeClip, func(cell grid.Cell) {
		x, y := cell.X, cell.Y
		n := pp.noise(x*0.03, y*0.03, 41.7)
		v := geom.Clamp(246+(n-0.5)*22, 235, 255)
		blendPixel(img, int(x), int(y), uint8(v), 16)
		if pp.noise(x*0.12, y*0.12, 99.3) > 0.988 {
			blendPixel(img, int(x), int(y), 0, 55)
		}
	})

	err := pp.blurred(s, 9, func(l *canvas.Surface) {
		a := pp.area
		l.Rect(a.X, a.Y+2, a.W, a.H, canvas.Filled(canvas.GrayA(0, 71)))
	})
	if err != nil {
		return err
	}
	s.Rect(pp.area.X, pp.area.Y, pp.area.W, pp.area.H, canvas.Filled(white))

	side := math.Min(float64(w), float64(h))
	radial(s, geom.R(0, 0, float64(w), float64(h)), side*0.25, side*0.95, 26)

	soft := composite.Blur(img, 1)
	copy(img.Pix, soft.Pix)
	return nil
}

// cell paints one block of the grid: a flat grey with a slight drift, dry
// brush streaks along its long axis and cloudy speckles.
func (pp *brush) cell(l *canvas.Surface, cell grid.Cell) {
	level := pp.level(cell.Column, cell.Row)
	id := cell.Row*pp.cfg.Cols + cell.Column
	drift := geom.Map(pp.noise(float64(level)*0.07, 0, 0), 0, 1, -8, 8)
	v := geom.Clamp(float64(level)+drift, 0, 255)

	r := cell.Rect()
	if cell.Column < pp.cfg.Cols-1 {
		r.W += 0.5
	}
	if cell.Row < pp.cfg.Rows-1 {
		r.H += 0.5
	}
	l.Rect(r.X, r.Y, r.W, r.H, canvas.Filled(canvas.Gray(uint8(v))))

	l.Push()
	l.ClipRect(r)
	vertical := level == verticalLevel
	for i := 0; i < pp.cfg.Streaks; i++ {
		a := pp.random(5, 14)
		tone := v + pp.random(4, 10)
		if pp.c.Field.Chance(0.65) {
			tone = v - pp.random(10, 22)
		}
		st := canvas.Style{
			Stroke: canvas.GrayA(uint8(geom.Clamp(tone, 0, 255)), uint8(a)),
			Weight: pp.random(0.5, 1.4),
			Cap:    canvas.CapSquare,
		}
		if vertical {
			x := r.X + pp.random(0, r.W)
			l.Line(x, r.Y-5, x+pp.random(-2, 2), r.MaxY()+5, st)
		} else {
			y := r.Y + pp.random(0, r.H)
			l.Line(r.X-5, y, r.MaxX()+5, y+pp.random(-2, 2), st)
		}
	}
	for i := 0; i < pp.cfg.Speckles; i++ {
		x := r.X + pp.random(0, r.W)
		y := r.Y + pp.random(0, r.H)
		n := pp.noise(x*0.008, y*0.008, 13.7+float64(id)*0.07)
		tone := geom.Clamp(v+geom.Map(n, 0, 1, -18, 18), 0, 255)
		l.Point(x, y, canvas.Stroked(canvas.GrayA(uint8(tone), uint8(geom.Map(n, 0, 1, 2, 10))), 1))
	}
	l.Pop()
}

// seam is one edge between two cells of different grey.
type seam struct {
	vertical bool
	at       float64 // x of a vertical seam, y of a horizontal one
	from, to float64
	col, row int
	diff     float64
	dir      float64 // +1 when the lighter cell is right or below
}

func (pp *brush) seams() []seam {
	a := pp.area
	cols, rows := pp.cfg.Cols, pp.cfg.Rows
	cw, ch := a.W/float64(cols), a.H/float64(rows)
	var out []seam
	add := func(s seam, la, lb int) {
		if la == lb {
			return
		}
		s.diff = math.Abs(float64(la - lb))
		s.dir = -1
		if lb > la {
			s.dir = 1
		}
		out = append(out, s)
	}
	for c := 1; c < cols; c++ {
		for r := 0; r < rows; r++ {
			y := a.Y + float64(r)*ch
			add(seam{vertical: true, at: a.X + float64(c)*cw, from: y, to: y + ch, col: c, row: r},
				pp.level(c-1, r), pp.level(c, r))
		}
	}
	for r := 1; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := a.X + float64(c)*cw
			add(seam{at: a.Y + float64(r)*ch, from: x, to: x + cw, col: c, row: r},
				pp.level(c, r-1), pp.level(c, r))
		}
	}
	return out
}

// line draws a segment across a seam: u runs along it and v across.
func (s seam) line(l *canvas.Surface, u1, v1, u2, v2 float64, st canvas.Style) {
	if s.vertical {
		l.Line(v1, u1, v2, u2, st)
		return
	}
	l.Line(u1, v1, u2, v2, st)
}

// seamShadow darkens the seams with short doubled strokes.
func (pp *brush) seamShadow(l *canvas.Surface) {
	const step = 6
	for _, s := range pp.seams() {
		base := geom.Map(s.diff, 0, 70, 8, 30)
		col, row := float64(s.col), float64(s.row)
		for u := s.from; u < s.to; u += step {
			var j float64
			if s.vertical {
				j = geom.Map(pp.noise(col*0.9, row*0.7, u*0.02), 0, 1, -0.9, 0.9)
			} else {
				j = geom.Map(pp.noise(col*0.6, row*0.8, u*0.02), 0, 1, -0.9, 0.9)
			}
			st := canvas.Style{Stroke: canvas.GrayA(0, uint8(base*pp.random(0.7, 1.1))), Weight: pp.random(0.7, 1.3), Cap: canvas.CapSquare}
			s.line(l, u, s.at+j-0.6, u+step, s.at+j-0.6, st)
			if pp.c.Field.Chance(0.55) {
				s.line(l, u, s.at+j+0.6, u+step, s.at+j+0.6, st)
			}
		}
	}
}

// edgeSmear bleeds paint from each seam into its lighter side.
func (pp *brush) edgeSmear(l *canvas.Surface) {
	const step = 6
	for _, s := range pp.seams() {
		base := geom.Map(s.diff, 0, 70, 8, 22)
		col, row := float64(s.col), float64(s.row)
		for u := s.from; u < s.to; u += step {
			j := geom.Map(pp.noise(col*0.7, row*0.9, u*0.03), 0, 1, -1.3, 1.3)
			st := canvas.Style{Stroke: canvas.GrayA(0, uint8(base*pp.random(0.6, 1.1))), Weight: pp.random(0.8, 1.8), Cap: canvas.CapSquare}
			bleed := pp.random(2, 10) * s.dir
			s.line(l, u, s.at+j, u+pp.random(-0.8, 0.8), s.at+j+bleed, st)
			if pp.c.Field.Chance(0.55) {
				cross := pp.random(2, 8)
				if pp.c.Field.Chance(0.5) {
					cross = -cross
				}
				st = canvas.Style{Stroke: canvas.GrayA(0, uint8(base*pp.random(0.5, 1))), Weight: pp.random(0.7, 1.6), Cap: canvas.CapSquare}
				s.line(l, u, s.at+j, u+pp.random(-0.8, 0.8), s.at+j+cross, st)
			}
		}
	}
}

// scanBands adds uneven horizontal banding and a few vertical scratches.
func (pp *brush) scanBands(l *canvas.Surface) {
	const (
		bandH = 3
		freq  = 0.014
	)
	a := pp.area
	for y := a.Y; y < a.MaxY(); y += bandH {
		alpha := geom.Map(pp.noise(y*freq, 12.3, 0), 0, 1, 0, 14) * pp.random(0.6, 1.2)
		l.Rect(a.X, y+pp.random(-0.6, 0.6), a.W, bandH+0.6, canvas.Filled(canvas.GrayA(0, uint8(alpha))))
	}
	for i := 0; i < 10; i++ {
		x := a.X + pp.random(0, a.W)
		l.Line(x, a.Y, x+pp.random(-2, 2), a.MaxY(), canvas.Stroked(canvas.GrayA(0, 18), pp.random(0.6, 1.1)))
	}
}

// vignette darkens the painting towards its corners.
func (pp *brush) vignette(l *canvas.Surface) {
	side := math.Min(pp.area.W, pp.area.H)
	radial(l, pp.area, side*0.25, side*0.85, 89)
}

// scratches adds dust and hairline scratches inside the painting.
func (pp *brush) scratches(l *canvas.Surface) {
	a := pp.area
	l.Push()
	l.ClipRect(a)
	dust := int(math.Floor(a.W * a.H * 0.0009))
	for i := 0; i < dust; i++ {
		l.Point(a.X+pp.random(0, a.W), a.Y+pp.random(0, a.H), canvas.Stroked(canvas.GrayA(0, uint8(pp.random(12, 55))), 1))
	}
	for i := 0; i < 18; i++ {
		vertical := pp.c.Field.Chance(0.7)
		st := canvas.Style{Stroke: canvas.GrayA(0, uint8(pp.random(6, 18))), Weight: pp.random(0.6, 1.2), Cap: canvas.CapSquare}
		if vertical {
			x := a.X + pp.random(0, a.W)
			y0 := a.Y + pp.random(-0.1*a.H, 0.2*a.H)
			y1 := a.MaxY() + pp.random(-0.2*a.H, 0.1*a.H)
			l.Line(x, y0, x+pp.random(-2, 2), y1, st)
		} else {
			y := a.Y + pp.random(0, a.H)
			x0 := a.X + pp.random(-0.1*a.W, 0.2*a.W)
			x1 := a.MaxX() + pp.random(-0.2*a.W, 0.1*a.W)
			l.Line(x0, y, x1, y+pp.random(-2, 2), st)
		}
	}
	l.Pop()
}

// seamRidge raises a dark and a light ridge on either side of the seams.
func (pp *brush) seamRidge(l *canvas.Surface) {
	const (
		step   = 10
		maxLen = 26
	)
	for _, s := range pp.seams() {
		if s.diff < 4 {
			continue
		}
		dark := uint8(geom.Map(s.diff, 0, 65, 6, 22))
		light := uint8(geom.Map(s.diff, 0, 65, 2, 12))
		for u := s.from; u < s.to; u += step {
			if pp.c.Field.Chance(0.35) {
				continue
			}
			end := math.Min(s.to, u+pp.random(10, maxLen))
			jit := pp.random(-1.2, 1.2)
			s.line(l, u+jit, s.at+s.dir*1.2, end+jit, s.at+s.dir*1.2,
				canvas.Style{Stroke: canvas.GrayA(0, dark), Weight: pp.random(1, 2.2), Cap: canvas.CapSquare})
			s.line(l, u+jit, s.at-s.dir*0.9, end+jit, s.at-s.dir*0.9,
				canvas.Style{Stroke: canvas.GrayA(255, light), Weight: pp.random(0.8, 1.8), Cap: canvas.CapSquare})
		}
	}
}

// texture lays two-scale mottling over the painting, then mixes Gaussian
// grain and dust into it pixel by pixel.
func (pp *brush) texture(soft *canvas.Surface) error {
	const (
		step = 2
		f1   = 0.0022
		f2   = 0.01
	)
	a := pp.area
	err := pp.blurred(soft, 2, func(l *canvas.Surface) {
		grid.Iterate(a, step, step, grid.EdgeClip, func(cell grid.Cell) {
			nx, ny := cell.X-a.X, cell.Y-a.Y
			n1 := pp.noise(nx*f1, ny*f1, 3.1)
			n := 0.75*n1 + 0.25*pp.noise(nx*f2, ny*f2, 7.7)
			v := uint8(geom.Map(n, 0, 1, 55, 210))
			alpha := uint8(geom.Map(n1, 0, 1, 10, 34))
			l.Rect(cell.X+pp.random(-0.6, 0.6), cell.Y+pp.random(-0.6, 0.6), step, step, canvas.Filled(canvas.GrayA(v, alpha)))
		})
	})
	if err != nil {
		return err
	}
	pp.grain(soft.Image())
	return nil
}

func (pp *brush) grain(img *image.RGBA) {
	const (
		sigma      = 18
		mix        = 0.35
		alphaBoost = 18
	)
	a := pp.area
	x0, y0 := int(math.Floor(a.X)), int(math.Floor(a.Y))
	x1, y1 := int(math.Floor(a.MaxX())), int(math.Floor(a.MaxY()))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			px := color.NRGBAModel.Convert(img.RGBAAt(x, y)).(color.NRGBA)
			g := geom.Clamp(128+pp.c.Field.Gaussian(0, sigma), 0, 255)
			px.R = uint8(geom.Lerp(float64(px.R), g, mix))
			px.G = uint8(geom.Lerp(float64(px.G), g, mix))
			px.B = uint8(geom.Lerp(float64(px.B), g, mix))
			px.A = uint8(min(255, int(px.A)+alphaBoost))
			img.Set(x, y, px)
		}
	}

	dust := int(math.Floor(a.W * a.H * 0.002))
	for i := 0; i < dust; i++ {
		x := int(math.Floor(a.X + pp.random(0, a.W)))
		y := int(math.Floor(a.Y + pp.random(0, a.H)))
		px := color.NRGBAModel.Convert(img.RGBAAt(x, y)).(color.NRGBA)
		v, boost := uint8(255), 45
		if pp.c.Field.Chance(0.75) {
			v, boost = 0, 70
		}
		img.Set(x, y, color.NRGBA{v, v, v, uint8(min(255, int(px.A)+boost))})
	}
}

// radial fills r with black fading from transparent inside radius r0 to
// alpha at radius r1, both around the centre of r.
func radial(s *canvas.Surface, r geom.Rect, r0, r1 float64, alpha uint8) {
	c := r.Center()
	grad := gg.NewRadialGradient(c.X, c.Y, r0, c.X, c.Y, r1)
	grad.AddColorStop(0, color.NRGBA{0, 0, 0, 0})
	grad.AddColorStop(1, color.NRGBA{0, 0, 0, alpha})
	dc := s.Context()
	dc.Push()
	dc.SetFillStyle(grad)
	dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	dc.Fill()
	dc.Pop()
}

// blendPixel mixes grey v at alpha a over the pixel at (x, y).
func blendPixel(img *image.RGBA, x, y int, v, a uint8) {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return
	}
	i := img.PixOffset(x, y)
	k := float64(a) / 255
	for c := 0; c < 3; c++ {
		img.Pix[i+c] = uint8(geom.Lerp(float64(img.Pix[i+c]), float64(v), k) + 0.5)
	}
}
