package sketch

import (
	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/particle"
)

// trailFade is the alpha of the black wash laid over every frame, which
// lets old trails fade out.
const trailFade = 5

// flowField moves particles through an evolving noise field and leaves
// their trails on the canvas.
type flowField struct {
	system *particle.System
}

func (*flowField) Info() Info {
	return Info{ID: 26, Name: "flow-field", Title: "Perlin noise flow field", Width: 400, Height: 400, Animated: true, RasterOnly: true}
}

func (f *flowField) Setup(c *Context) error {
	w, h := c.Painter.Size()
	sys, err := particle.NewSystem(float64(w), float64(h), c.Config.Flow, c.Field)
	if err != nil {
		return err
	}
	f.system = sys
	c.Painter.Background(black)
	return nil
}

func (f *flowField) Draw(c *Context) (bool, error) {
	p := c.Painter
	w, h := p.Size()
	showField := f.system.Config().ShowField
	if showField {
		p.Background(white)
	} else {
		p.Rect(0, 0, float64(w), float64(h), canvas.Filled(canvas.RGBA(0, 0, 0, trailFade)))
	}

	trails := f.system.Step(c.Field)
	if showField {
		f.system.Field.Draw(p)
	} else {
		particle.DrawTrails(p, trails)
	}
	return true, nil
}
