package sketch

import (
	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
	"github.com/olivierh59500/sketchbook/internal/shape"
)

var calicoGreen = canvas.RGB(0x2a, 0x9f, 0x4a)

// calico draws concentric rings, each broken by an opening of constant
// chord length.
type calico struct{}

func (calico) Info() Info {
	return Info{ID: 35, Name: "calico", Title: "Calico logo", Width: 450, Height: 450}
}

func (calico) Setup(*Context) error { return nil }

func (calico) Draw(c *Context) (bool, error) {
	cfg := c.Config.Calico
	p := c.Painter
	p.Background(white)

	w, h := p.Size()
	center := geom.Pt(float64(w)/2, float64(h)/2)
	st := canvas.Style{Stroke: calicoGreen, Weight: cfg.Weight, Cap: canvas.CapButt}
	for _, r := range cfg.Rings {
		// Zero-radius rings have no circumference to break.
		shape.DrawGapRing(p, center, r.Radius, geom.Radians(r.Position), r.Gap, st)
	}
	return false, nil
}
