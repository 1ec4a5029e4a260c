package sketch

import (
	"time"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
	"github.com/olivierh59500/sketchbook/internal/shape"
)

const (
	dotRadius  = 2
	ringRadius = 4
)

var red = canvas.RGB(255, 0, 0)

// bezierReveal animates De Casteljau's construction of a Bézier curve:
// every frame shows the interpolation layers at the current t and extends
// the curve traced so far.
type bezierReveal struct {
	reveal *shape.Reveal
}

func (*bezierReveal) Info() Info {
	return Info{ID: 9, Name: "bezier-reveal", Title: "Bézier curve", Width: 400, Height: 400, Animated: true}
}

func (b *bezierReveal) Setup(c *Context) error {
	cfg := c.Config.Bezier
	control := make([]geom.Point, len(cfg.Points))
	for i, pt := range cfg.Points {
		control[i] = geom.Pt(pt[0], pt[1])
	}
	b.reveal = shape.NewReveal(control, time.Duration(cfg.DurationMS)*time.Millisecond)
	return nil
}

func (b *bezierReveal) Draw(c *Context) (bool, error) {
	p := c.Painter
	drawFrame(p, 0.02)

	ctl := canvas.Stroked(black, 1)
	p.Polyline(b.reveal.Control, ctl)
	for _, pt := range b.reveal.Control {
		p.Circle(pt.X, pt.Y, ringRadius, ctl)
		p.Circle(pt.X, pt.Y, dotRadius, canvas.Filled(black))
	}

	layers := b.reveal.Advance(c.Elapsed)
	for i, layer := range layers {
		g := canvas.Gray(uint8(max(150-20*i, 0)))
		if len(layer) > 1 {
			p.Polyline(layer, canvas.Stroked(g, 1))
		}
		for _, pt := range layer {
			p.Circle(pt.X, pt.Y, dotRadius+1, canvas.Filled(g))
		}
	}
	if n := len(layers); n > 0 {
		tip := layers[n-1][0]
		p.Circle(tip.X, tip.Y, dotRadius+1, canvas.Filled(black))
	}

	if len(b.reveal.Points()) > 1 {
		b.reveal.Draw(p, canvas.Stroked(red, 1))
	}
	return !b.reveal.Done(), nil
}
