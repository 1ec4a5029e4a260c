package sketch

import (
	"math"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
	"github.com/olivierh59500/sketchbook/internal/shape"
)

// eyeOfSauron grows a ring of branching trees around a black core.
type eyeOfSauron struct{}

func (eyeOfSauron) Info() Info {
	return Info{ID: 20, Name: "eye-of-sauron", Title: "Eye of Sauron", Width: 400, Height: 400}
}

func (eyeOfSauron) Setup(*Context) error { return nil }

func (eyeOfSauron) Draw(c *Context) (bool, error) {
	cfg := c.Config.Sauron
	p := c.Painter
	drawFrame(p, 0.1)

	w, h := p.Size()
	center := geom.Pt(float64(w)/2, float64(h)/2)
	tree := shape.BranchConfig{
		AngleMin:     cfg.AngleMin,
		AngleMax:     cfg.AngleMax,
		LengthReduce: cfg.LengthReduce,
		MaxDepth:     cfg.MaxDepth,
		MinLength:    cfg.MinLength,
		Weights:      cfg.Weights,
		Prune:        cfg.Prune,
		Style:        canvas.Style{Stroke: black},
	}

	p.Push()
	p.ClipRect(inner)
	p.Circle(center.X, center.Y, cfg.Core/2, canvas.Filled(black))
	for i := 0; i < cfg.Trees; i++ {
		slot := float64(i) + c.Field.Random(-cfg.Jitter, cfg.Jitter)
		angle := geom.Map(slot, 0, float64(cfg.Trees), 0, 2*math.Pi)
		base := center.Add(geom.FromAngle(angle).Scale(cfg.TreeRadius))
		shape.DrawBranch(p, base, angle-math.Pi/2, cfg.InitialLength, tree, c.Field)
	}
	p.Pop()
	return false, nil
}
