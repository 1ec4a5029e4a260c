package particle

import (
	"fmt"
	"image/color"
	"math"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
)

// Trail is the segment a particle covered in one frame.
type Trail struct {
	From, To geom.Point
	Color    color.NRGBA
}

// System is a population of particles following a FlowField.
type System struct {
	Width, Height float64
	Particles     []*Particle
	Field         *FlowField

	cfg Config
}

// NewSystem seeds cfg.Initial particles at random positions on a w×h canvas.
func NewSystem(w, h float64, cfg Config, src Field) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !(w > 0) || !(h > 0) {
		return nil, fmt.Errorf("%w: canvas %vx%v", ErrInvalidConfig, w, h)
	}
	s := &System{
		Width:     w,
		Height:    h,
		Particles: make([]*Particle, 0, cfg.Initial),
		Field:     NewFlowField(w, h, cfg),
		cfg:       cfg,
	}
	s.spawn(src, cfg.Initial)
	return s, nil
}

// Config returns the settings the system was built with.
func (s *System) Config() Config { return s.cfg }

// Len returns the current population.
func (s *System) Len() int { return len(s.Particles) }

// Step advances the simulation by one frame and returns the trails drawn.
// The field is re-sampled first; every particle then follows its cell,
// integrates, wraps and leaves a trail. Population control runs last.
func (s *System) Step(src Field) []Trail {
	s.Field.Update(src)

	trails := make([]Trail, 0, len(s.Particles))
	for _, p := range s.Particles {
		force, col := s.Field.At(p.Position)
		p.ApplyForce(force)
		p.Color = col
		p.Update(s.cfg.MaxSpeed)
		p.Wrap(s.Width, s.Height)
		trails = append(trails, Trail{From: p.Previous, To: p.Position, Color: p.Color})
		p.Previous = p.Position
	}

	s.regulate(src)
	return trails
}

// regulate grows or shrinks the population, then clamps it to [Min, Max].
func (s *System) regulate(src Field) {
	n := len(s.Particles)
	if src.Float() < s.cfg.GrowChance && n < s.cfg.Max {
		s.spawn(src, int(math.Floor(src.Noise3(s.Field.ZOffset, 0, 0)*s.cfg.SpawnScale)))
	} else if n > s.cfg.ShrinkAbove {
		s.cull(int(math.Floor(src.Random(0, s.cfg.ShrinkBatch))))
	}

	if over := len(s.Particles) - s.cfg.Max; over > 0 {
		s.cull(over)
	}
	if under := s.cfg.Min - len(s.Particles); under > 0 {
		s.spawn(src, under)
	}
}

func (s *System) spawn(src Field, n int) {
	for i := 0; i < n; i++ {
		s.Particles = append(s.Particles, NewParticle(geom.Pt(src.Random(0, s.Width), src.Random(0, s.Height))))
	}
}

// cull removes the n oldest particles.
func (s *System) cull(n int) {
	if n <= 0 {
		return
	}
	if n > len(s.Particles) {
		n = len(s.Particles)
	}
	for i := 0; i < n; i++ {
		s.Particles[i] = nil
	}
	s.Particles = s.Particles[n:]
}

// DrawTrails strokes each trail one pixel wide in its cell colour.
func DrawTrails(p canvas.Painter, trails []Trail) {
	for _, t := range trails {
		if t.From == t.To {
			p.Point(t.To.X, t.To.Y, canvas.Stroked(t.Color, 1))
			continue
		}
		p.Line(t.From.X, t.From.Y, t.To.X, t.To.Y, canvas.Stroked(t.Color, 1))
	}
}
