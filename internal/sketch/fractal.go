package sketch

import (
	"math"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
	"github.com/olivierh59500/sketchbook/internal/grid"
)

// recursiveSquares nests shrinking squares in every cell, each nudged
// further along a direction chosen per cell.
type recursiveSquares struct{}

func (recursiveSquares) Info() Info {
	return Info{ID: 18, Name: "recursive-squares", Title: "Recursion tiling", Width: 400, Height: 400}
}

func (recursiveSquares) Setup(*Context) error { return nil }

func (recursiveSquares) Draw(c *Context) (bool, error) {
	cfg := c.Config.Squares
	p := c.Painter
	drawFrame(p, cfg.Weight)

	st := canvas.Style{Stroke: black, Fill: white, Weight: cfg.Weight}
	grid.Iterate(inner, cfg.Step, cfg.Step, grid.EdgeSkip, func(cell grid.Cell) {
		depth := cfg.MinDepth + c.Field.Intn(cfg.MaxDepth-cfg.MinDepth)
		dir := geom.FromAngle(c.Field.Random(0, 2*math.Pi))
		var displace func(float64, int) geom.Point
		if cfg.Displacement > 0 {
			displace = func(size float64, _ int) geom.Point {
				room := (size - size*cfg.SizeReduction) / 2
				return dir.Scale(c.Field.Random(1, math.Min(cfg.Displacement, room)))
			}
		}
		grid.Nest(cell.X, cell.Y, cfg.Step, depth, cfg.SizeReduction, displace, func(r geom.Rect, _ int) {
			p.Rect(r.X, r.Y, r.W, r.H, st)
		})
	})
	return false, nil
}

// recursiveTriangles draws a Sierpinski-style subdivision of one large
// triangle with jittered midpoints.
type recursiveTriangles struct{}

func (recursiveTriangles) Info() Info {
	return Info{ID: 19, Name: "recursive-triangles", Title: "Recursive triangles", Width: 400, Height: 400}
}

func (recursiveTriangles) Setup(*Context) error { return nil }

func (recursiveTriangles) Draw(c *Context) (bool, error) {
	cfg := c.Config.Triangles
	p := c.Painter
	drawFrame(p, 0.25)

	w, _ := p.Size()
	h := math.Sqrt(3) / 2 * cfg.Side
	tri := geom.Equilateral(geom.Pt(float64(w)/2, h/2+100), cfg.Side)

	var jitter func() float64
	if d := cfg.Displacement; d > 0 {
		jitter = func() float64 { return c.Field.Random(-d, d) }
	}
	st := canvas.Stroked(black, cfg.Weight)
	grid.Triangles(tri, cfg.Depth, jitter, func(t geom.Triangle, _ int) {
		p.Polygon(t.Points(), st)
	})
	return false, nil
}
