package halftone

import (
	"image"
	"image/color"
	"math"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/config"
	"github.com/olivierh59500/sketchbook/internal/geom"
	"github.com/olivierh59500/sketchbook/internal/grid"
)

// Noise supplies the coherent noise used to lift flames.
type Noise interface {
	Noise(x, y float64) float64
}

const (
	// reflectionStart is the fraction of the height below which the image
	// is treated as a reflection: no flames, heavier dots.
	reflectionStart = 0.8
	// shapeThreshold is the normalised gradient above which edge cells get
	// crosses or triangles instead of round marks.
	shapeThreshold = 0.3
	flameAlpha     = 180
)

// Default fire bands, as fractions, used when no pixel clears the white
// threshold.
var defaultBands = Bands{White: 0.8, YellowWhite: 0.6, Yellow: 0.4, Red: 0.2}

var (
	darkRed     = color.NRGBA{200, 20, 0, flameAlpha}
	yellow      = color.NRGBA{255, 200, 0, flameAlpha}
	yellowWhite = color.NRGBA{255, 255, 200, flameAlpha}
	white       = color.NRGBA{255, 255, 255, flameAlpha}
)

// Bands are the brightness levels separating flame colours.
type Bands struct {
	White, YellowWhite, Yellow, Red float64
}

// Color returns the flame colour for brightness b.
func (bd Bands) Color(b float64) color.NRGBA {
	switch {
	case b > bd.White:
		return white
	case b > bd.YellowWhite:
		return yellowWhite
	case b > bd.Yellow:
		return yellow
	}
	return darkRed
}

// Thresholds are the image-adapted levels a render uses.
type Thresholds struct {
	White float64 // cells brighter than this become flames
	Bands Bands
	// Clip ranges for dot sizing above and inside the reflection.
	Low, High         float64
	ReflLow, ReflHigh float64
}

// Analyze samples img on the analysis grid and derives its thresholds.
func Analyze(img *image.RGBA, cfg config.HalftoneConfig) Thresholds {
	spacing := cfg.CoarseSpacing
	if cfg.MultiPass {
		spacing = cfg.FineSpacing
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	reflY := float64(h) * reflectionStart

	var all, upper, refl []float64
	grid.Iterate(geom.R(0, 0, float64(w), float64(h)), spacing, spacing, grid.EdgeClip, func(c grid.Cell) {
		b := Brightness(img, int(c.X), int(c.Y), cellSize(spacing))
		all = append(all, b)
		if c.Y >= reflY {
			refl = append(refl, b)
		} else {
			upper = append(upper, b)
		}
	})

	t := Thresholds{Low: 0, High: 255, ReflLow: 0, ReflHigh: 255}
	if len(upper) > 0 {
		t.Low, t.High = Percentile(upper, 0.10), Percentile(upper, 0.90)
	}
	if len(refl) > 0 {
		t.ReflLow, t.ReflHigh = Percentile(refl, 0.10), Percentile(refl, 0.90)
	}
	if cfg.Threshold == "otsu" {
		t.White = Otsu(all)
	} else {
		t.White = Percentile(all, cfg.Percentile)
	}

	var bright []float64
	for _, b := range all {
		if b > t.White {
			bright = append(bright, b)
		}
	}
	if len(bright) == 0 {
		t.Bands = defaultBands
	} else {
		t.Bands = Bands{
			White:       Percentile(bright, defaultBands.White),
			YellowWhite: Percentile(bright, defaultBands.YellowWhite),
			Yellow:      Percentile(bright, defaultBands.Yellow),
			Red:         Percentile(bright, defaultBands.Red),
		}
	}
	return t
}

// Render draws the dot version of img onto p, which must be at least as
// large as img, and returns the number of marks drawn. Each pass lays dark
// dots first and flames on top; multi-pass mode adds a fine pass over a
// coarse one.
func Render(p canvas.Painter, img *image.RGBA, cfg config.HalftoneConfig, n Noise) int {
	t := Analyze(img, cfg)
	if !cfg.MultiPass {
		return renderPass(p, img, cfg, n, t, cfg.CoarseSpacing, 1)
	}
	marks := renderPass(p, img, cfg, n, t, cfg.CoarseSpacing, 1.2)
	return marks + renderPass(p, img, cfg, n, t, cfg.FineSpacing, 0.8)
}

func renderPass(p canvas.Painter, img *image.RGBA, cfg config.HalftoneConfig, n Noise, t Thresholds, spacing, scale float64) int {
	w, h := float64(img.Bounds().Dx()), float64(img.Bounds().Dy())
	bounds := geom.R(0, 0, w, h)
	reflY := h * reflectionStart
	maxBlack, maxFlame := cfg.MaxBlackRadius*scale, cfg.MaxRadius*scale
	size := cellSize(spacing)
	marks := 0

	grid.Iterate(bounds, spacing, spacing, grid.EdgeClip, func(c grid.Cell) {
		inRefl := c.Y >= reflY
		floor, lo, hi := 0.35, t.Low, t.High
		if inRefl {
			floor, lo, hi = 0.45, t.ReflLow, t.ReflHigh
		}
		b := geom.Clamp(Brightness(img, int(c.X), int(c.Y), size), lo, hi)
		r := geom.Clamp(geom.Map(b, lo, hi, maxBlack, 0), floor, maxBlack)
		if r > 0.1 {
			p.Circle(c.X+spacing/2, c.Y+spacing/2, r, canvas.Filled(canvas.Gray(0)))
			marks++
		}
	})

	grid.Iterate(bounds, spacing, spacing, grid.EdgeClip, func(c grid.Cell) {
		if c.Y >= reflY {
			return
		}
		x, y := int(c.X), int(c.Y)
		b := Brightness(img, x, y, size)
		if b <= t.White {
			return
		}
		r := geom.Clamp(geom.Map(b, t.White, 255, 0, maxFlame), 0, maxFlame)
		if r <= cfg.MinRadius {
			return
		}
		g := Sobel(img, x, y, size)
		drawFlame(p, flame{
			center:   flameCenter(c, spacing, b, t.White, cfg.Lift, n),
			radius:   r,
			bright:   b,
			fill:     t.Bands.Color(b),
			angle:    flameAngle(c, h, cfg.Rotation, g),
			strength: geom.Clamp(g.Magnitude/300, 0, 1),
			edge:     EdgeKind(img, x, y, size, t.White),
		})
		marks++
	})
	return marks
}

func cellSize(spacing float64) int {
	return max(1, int(math.Ceil(spacing)))
}

type flame struct {
	center   geom.Point
	radius   float64
	bright   float64
	fill     color.NRGBA
	angle    float64 // radians
	strength float64 // normalised gradient magnitude
	edge     Edge
}

// flameAngle blends a base orientation, which drifts across the image and
// tilts further towards the bottom, with the direction across the local
// gradient. Strong gradients dominate.
func flameAngle(c grid.Cell, h, rotation float64, g Gradient) float64 {
	across := geom.Degrees(g.Angle + math.Pi/2)
	strength := geom.Clamp(g.Magnitude/300, 0, 1)
	base := rotation + (c.X+c.Y)*0.1 + geom.Map(c.Y, 0, h, 0, 30)
	return geom.Radians(geom.Lerp(base, across, strength*0.7))
}

// flameCenter lifts brighter flames up and sideways by noise.
func flameCenter(c grid.Cell, spacing, b, threshold, lift float64, n Noise) geom.Point {
	intensity := geom.Clamp(geom.Map(b, threshold, 255, 0, 1), 0, 1)
	seed := c.X*0.1 + c.Y*0.2
	return geom.Pt(
		c.X+spacing/2+(n.Noise(seed, 0)-0.5)*2*lift*intensity,
		c.Y+spacing/2-n.Noise(seed+100, 0)*lift*intensity,
	)
}

func drawFlame(p canvas.Painter, f flame) {
	st := canvas.Filled(f.fill)
	switch {
	case f.edge == Outer && f.strength > shapeThreshold:
		size := f.radius * (2.5 + f.strength*1.5)
		bar := f.radius * 0.9
		p.Polygon(rotated(f.center, f.angle, -bar/2, -size/2, bar, size), st)
		p.Polygon(rotated(f.center, f.angle, -size/2, -bar/2, size, bar), st)
	case f.edge == Inner && f.strength > shapeThreshold:
		size := f.radius * (2 + f.strength*1.5)
		th := size * math.Sqrt(3) / 2
		p.Polygon(transform(f.center, f.angle, []geom.Point{
			geom.Pt(0, -th/2), geom.Pt(-size/2, th/2), geom.Pt(size/2, th/2),
		}), st)
	default:
		p.Circle(f.center.X, f.center.Y, f.radius*1.25, st)
	}
	if f.bright/255 > 0.9 {
		p.Circle(f.center.X, f.center.Y, f.radius*0.15, canvas.Filled(canvas.Gray(255)))
	}
}

// rotated returns the corners of the rectangle (x, y, w, h) given in a frame
// centred on c and turned by angle.
func rotated(c geom.Point, angle, x, y, w, h float64) []geom.Point {
	return transform(c, angle, []geom.Point{
		geom.Pt(x, y), geom.Pt(x+w, y), geom.Pt(x+w, y+h), geom.Pt(x, y+h),
	})
}

func transform(c geom.Point, angle float64, pts []geom.Point) []geom.Point {
	sin, cos := math.Sincos(angle)
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		out[i] = geom.Pt(c.X+p.X*cos-p.Y*sin, c.Y+p.X*sin+p.Y*cos)
	}
	return out
}
