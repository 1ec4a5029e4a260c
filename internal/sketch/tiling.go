package sketch

import (
	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
	"github.com/olivierh59500/sketchbook/internal/grid"
	"github.com/olivierh59500/sketchbook/internal/shape"
)

// diagonalTiling fills each cell with one of its two diagonals.
type diagonalTiling struct{}

func (diagonalTiling) Info() Info {
	return Info{ID: 4, Name: "diagonal-tiling", Title: "Tiling lines", Width: 400, Height: 400}
}

func (diagonalTiling) Setup(*Context) error { return nil }

func (diagonalTiling) Draw(c *Context) (bool, error) {
	cfg := c.Config.Diagonal
	p := c.Painter
	drawFrame(p, 0.02)

	st := canvas.Stroked(black, 0.5)
	p.Push()
	p.ClipRect(inner)
	grid.Iterate(inner, cfg.Step, cfg.Step, cfg.Policy(), func(cell grid.Cell) {
		x0, y0 := cell.X, cell.Y
		x1, y1 := x0+cfg.Step, y0+cfg.Step
		if c.Field.Chance(0.5) {
			p.Line(x0, y0, x1, y1, st)
		} else {
			p.Line(x1, y0, x0, y1, st)
		}
	})
	p.Pop()
	return false, nil
}

// shapeTiling puts a circle, a diagonal pair of squares or a corner
// triangle in each cell.
type shapeTiling struct{}

func (shapeTiling) Info() Info {
	return Info{ID: 15, Name: "shape-tiling", Title: "Shapes tiling", Width: 400, Height: 400}
}

func (shapeTiling) Setup(*Context) error { return nil }

func (shapeTiling) Draw(c *Context) (bool, error) {
	cfg := c.Config.Shapes
	p := c.Painter
	drawFrame(p, 0.02)

	step := cfg.Step
	var err error
	p.Push()
	p.ClipRect(inner)
	grid.Iterate(inner, step, step, cfg.Policy(), func(cell grid.Cell) {
		if err != nil {
			return
		}
		// Clipped cells keep the full tile so shapes are cut, not squeezed.
		spec := shape.Spec{Center: geom.Pt(cell.X+step/2, cell.Y+step/2), Size: step}
		switch c.Field.Intn(3) {
		case 0:
			spec.Kind = shape.Circle
			spec.Size = step * 0.7
			spec.Style = canvas.Style{Stroke: black, Fill: black, Weight: 0.5}
		case 1:
			spec.Kind = shape.Square
			spec.Variant = c.Field.Intn(2)
			spec.Style = canvas.Filled(black)
		default:
			corners := []int{0, 1, 2, 3}
			c.Field.Shuffle(len(corners), func(i, j int) { corners[i], corners[j] = corners[j], corners[i] })
			spec.Kind = shape.Triangle
			spec.Variant = corners[3]
			spec.Style = canvas.Filled(black)
		}
		err = shape.Draw(p, spec)
	})
	p.Pop()
	return false, err
}
