// Package particle implements the flow-field particle system: a noise-driven
// vector grid, particles that follow it, and a population that grows and
// shrinks from frame to frame within hard bounds.
//
// A System is advanced one frame at a time with Step, which returns the trail
// segments drawn that frame. Nothing here draws unless asked; hosts decide
// how trails reach a canvas.
package particle

import (
	"image/color"

	"github.com/olivierh59500/sketchbook/internal/geom"
)

// Particle is one point moving through the field.
type Particle struct {
	Position     geom.Point
	Velocity     geom.Point
	Acceleration geom.Point
	Previous     geom.Point // trail start for the current frame
	Color        color.NRGBA
}

// NewParticle returns a particle at rest at pos.
func NewParticle(pos geom.Point) *Particle {
	return &Particle{Position: pos, Previous: pos}
}

// ApplyForce accumulates f until the next Update.
func (p *Particle) ApplyForce(f geom.Point) {
	p.Acceleration = p.Acceleration.Add(f)
}

// Update integrates one frame: the accumulated force is added to the
// velocity, the speed is clamped to maxSpeed, the position moves and the
// acceleration is cleared.
func (p *Particle) Update(maxSpeed float64) {
	p.Velocity = p.Velocity.Add(p.Acceleration).Limit(maxSpeed)
	p.Position = p.Position.Add(p.Velocity)
	p.Acceleration = geom.Point{}
}

// Wrap teleports the particle to the opposite edge when it leaves the
// [0,w]×[0,h] box and reports whether it did. A wrapped particle's trail
// restarts at its new position.
func (p *Particle) Wrap(w, h float64) bool {
	wrapped := false
	if p.Position.X < 0 {
		p.Position.X, wrapped = w, true
	} else if p.Position.X > w {
		p.Position.X, wrapped = 0, true
	}
	if p.Position.Y < 0 {
		p.Position.Y, wrapped = h, true
	} else if p.Position.Y > h {
		p.Position.Y, wrapped = 0, true
	}
	if wrapped {
		p.Previous = p.Position
	}
	return wrapped
}
