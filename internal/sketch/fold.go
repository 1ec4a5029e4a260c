package sketch

import (
	"math"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
)

var paperTone = canvas.RGB(252, 250, 248)

// Noise offsets that keep the families of graphite lines apart. Mirrored
// lines sit flapNoise further along than the lines they come from.
const (
	verticalNoise   = 0
	horizontalNoise = 100
	flapNoise       = 200
)

// foldingGrid draws square grids in graphite, each with its top-left corner
// folded over along a straight crease.
type foldingGrid struct{}

func (foldingGrid) Info() Info {
	return Info{ID: 38, Name: "folding-grid", Title: "Six grids, five folds", Width: 900, Height: 900}
}

func (foldingGrid) Setup(*Context) error { return nil }

func (foldingGrid) Draw(c *Context) (bool, error) {
	cfg := c.Config.Fold
	p := c.Painter
	p.Background(paperTone)

	w, h := p.Size()
	cellW := float64(w) / float64(cfg.Cols)
	top := (float64(h) - cellW*float64(cfg.Rows)) / 2
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Cols; col++ {
			k := row*cfg.Cols + col
			b := geom.R(float64(col)*cellW+cfg.Margin, top+float64(row)*cellW+cfg.Margin, cellW-2*cfg.Margin, cellW-2*cfg.Margin)
			var fold [2]float64
			if k < len(cfg.Folds) {
				fold = cfg.Folds[k]
			}
			plain, flap := foldSegments(b, cfg.GridSize, fold)
			for _, s := range append(plain, flap...) {
				graphite(c, s, k)
			}
		}
	}
	return false, nil
}

type segment struct {
	a, b  geom.Point
	index int     // line number within its family
	noise float64 // family offset into the noise field
}

// foldSegments lays out the n×n grid inside b. The crease runs from column
// fold[0] on the top edge to row fold[1] on the left edge; lines are cut at
// the crease and the part above it is mirrored onto the flap. A fold with a
// component of zero or less is no fold, and components past n are clamped.
// An empty b has no lines at all.
func foldSegments(b geom.Rect, n int, fold [2]float64) (plain, flap []segment) {
	if n < 1 || b.Empty() {
		return nil, nil
	}
	cw, ch := b.W/float64(n), b.H/float64(n)
	fc := geom.Clamp(fold[0], 0, float64(n))
	fr := geom.Clamp(fold[1], 0, float64(n))
	folded := geom.Finite(fc, fr) && fc > 0 && fr > 0

	crestTop := geom.Pt(b.X+fc*cw, b.Y)
	crestLeft := geom.Pt(b.X, b.Y+fr*ch)
	mirror := func(s segment) {
		if s.a == s.b {
			return
		}
		a, _ := geom.Reflect(s.a, crestTop, crestLeft)
		e, _ := geom.Reflect(s.b, crestTop, crestLeft)
		flap = append(flap, segment{a: a, b: e, index: s.index, noise: s.noise + flapNoise})
	}

	for i := 0; i <= n; i++ {
		x := b.X + float64(i)*cw
		y0 := b.Y
		if folded && float64(i) <= fc {
			y0 = b.Y + fr*(1-float64(i)/fc)*ch
			mirror(segment{a: geom.Pt(x, b.Y), b: geom.Pt(x, y0), index: i, noise: verticalNoise})
		}
		if y0 < b.MaxY() {
			plain = append(plain, segment{a: geom.Pt(x, y0), b: geom.Pt(x, b.MaxY()), index: i, noise: verticalNoise})
		}
	}
	for j := 0; j <= n; j++ {
		y := b.Y + float64(j)*ch
		x0 := b.X
		if folded && float64(j) <= fr {
			x0 = b.X + fc*(1-float64(j)/fr)*cw
			mirror(segment{a: geom.Pt(b.X, y), b: geom.Pt(x0, y), index: j, noise: horizontalNoise})
		}
		if x0 < b.MaxX() {
			plain = append(plain, segment{a: geom.Pt(x0, y), b: geom.Pt(b.MaxX(), y), index: j, noise: horizontalNoise})
		}
	}
	return plain, flap
}

// graphite draws s as short marks whose darkness follows the noise field,
// dropping some of them like a pencil that skips.
func graphite(c *Context, s segment, k int) {
	cfg := c.Config.Fold
	length := s.a.Dist(s.b)
	steps := int(math.Floor(length / cfg.Mark))
	if steps < 1 || !geom.Finite(length) {
		return
	}
	gk := float64(k)
	for pass := 0; pass < cfg.Passes; pass++ {
		for i := 0; i < steps; i++ {
			t0, t1 := float64(i)/float64(steps), float64(i+1)/float64(steps)
			n := c.Field.Noise3(float64(s.index)*0.4+s.noise+gk*50, t0*2.5, float64(pass)*5+gk*10)
			if c.Field.Chance(cfg.Skip) {
				continue
			}
			alpha := geom.Clamp(geom.Map(n, 0.2, 0.8, 20, 160), 20, 160)
			from, to := geom.LerpPoint(s.a, s.b, t0), geom.LerpPoint(s.a, s.b, t1)
			c.Painter.Line(from.X, from.Y, to.X, to.Y, canvas.Style{
				Stroke: canvas.RGBA(35, 32, 28, uint8(alpha)),
				Weight: cfg.Weight,
				Cap:    canvas.CapButt,
			})
		}
	}
}
