package particle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/field"
	"github.com/olivierh59500/sketchbook/internal/geom"
)

// fixed is a Field with constant answers.
type fixed struct {
	noise, float float64
}

func (f fixed) Noise3(x, y, z float64) float64  { return f.noise }
func (f fixed) Sample(x, y, z float64) field.SampleResult {
	n := f.noise
	return field.SampleResult{
		Scalar:    n,
		Vector:    field.Vector{Angle: n * 2 * math.Pi, Magnitude: n},
		HasVector: true,
		Color:     [3]float64{n, n, n},
		HasColor:  true,
	}
}
func (f fixed) Random(min, max float64) float64 { return min + f.float*(max-min) }
func (f fixed) Float() float64                  { return f.float }

func TestUpdateClampsSpeed(t *testing.T) {
	p := NewParticle(geom.Pt(10, 10))
	p.ApplyForce(geom.Pt(30, 40))
	p.Update(2)
	assert.InDelta(t, 2, p.Velocity.Mag(), 1e-12)
	assert.InDelta(t, 11.2, p.Position.X, 1e-12)
	assert.InDelta(t, 11.6, p.Position.Y, 1e-12)
	assert.Equal(t, geom.Point{}, p.Acceleration, "acceleration cleared")

	for i := 0; i < 100; i++ {
		p.ApplyForce(geom.Pt(1, -1))
		p.Update(2)
		require.LessOrEqual(t, p.Velocity.Mag(), 2+1e-12)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		pos  geom.Point
		want geom.Point
		wrap bool
	}{
		{"inside", geom.Pt(5, 5), geom.Pt(5, 5), false},
		{"left", geom.Pt(-0.5, 5), geom.Pt(100, 5), true},
		{"right", geom.Pt(100.5, 5), geom.Pt(0, 5), true},
		{"top", geom.Pt(5, -1), geom.Pt(5, 50), true},
		{"bottom corner", geom.Pt(101, 51), geom.Pt(0, 0), true},
		{"on edge", geom.Pt(100, 50), geom.Pt(100, 50), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParticle(geom.Pt(50, 25))
			p.Position = tt.pos
			assert.Equal(t, tt.wrap, p.Wrap(100, 50))
			assert.Equal(t, tt.want, p.Position)
			if tt.wrap {
				assert.Equal(t, p.Position, p.Previous, "no streak across the canvas")
			}
		})
	}
}

func TestFlowFieldIndexAtFarEdge(t *testing.T) {
	f := NewFlowField(400, 400, DefaultConfig())
	require.Equal(t, 40, f.Cols)
	require.Equal(t, 40, f.Rows)
	assert.Equal(t, 40*40-1, f.Index(geom.Pt(400, 400)))
	assert.Equal(t, 0, f.Index(geom.Pt(-3, -3)))
	assert.Equal(t, 1+2*40, f.Index(geom.Pt(15, 25)))
}

func TestFlowFieldUpdate(t *testing.T) {
	cfg := DefaultConfig()
	f := NewFlowField(40, 20, cfg)
	f.Update(fixed{noise: 0.5})

	for i, v := range f.Vectors {
		// angle pi, magnitude map(0.5, 0, 8, -5, 5) = -4.375
		assert.InDelta(t, 4.375, v.X, 1e-9, "cell %d", i)
		assert.InDelta(t, 0, v.Y, 1e-9)
		assert.InDelta(t, -4.375, f.Magnitudes[i], 1e-12)
		assert.Equal(t, uint8(15), f.Colors[i].R)
		assert.Equal(t, uint8(75), f.Colors[i].G)
		assert.Equal(t, uint8(128), f.Colors[i].B)
	}
	assert.InDelta(t, cfg.ZStep, f.ZOffset, 1e-12)
	assert.InDelta(t, cfg.MagnitudeStep, f.MagnitudeOffset, 1e-12)
	assert.InDelta(t, -cfg.MagnitudeStep, f.XYOffset, 1e-12)
}

// channels answers Sample with distinct colour channels and a fixed angle.
type channels struct{ fixed }

func (channels) Sample(x, y, z float64) field.SampleResult {
	return field.SampleResult{
		Scalar: 0.25,
		Vector: field.Vector{Angle: math.Pi / 2},
		Color:  [3]float64{0.1, 0.2, 0.4},
	}
}

func TestFlowFieldUpdateReadsSample(t *testing.T) {
	cfg := DefaultConfig()
	f := NewFlowField(20, 20, cfg)
	f.Update(channels{fixed{noise: 0.5}})

	for i, v := range f.Vectors {
		assert.InDelta(t, 0, v.X, 1e-9, "cell %d", i)
		assert.InDelta(t, -4.375, v.Y, 1e-9, "reversed force along the sampled angle")
		assert.Equal(t, uint8(3), f.Colors[i].R)
		assert.Equal(t, uint8(30), f.Colors[i].G)
		assert.Equal(t, uint8(102), f.Colors[i].B)
	}
}

func TestUpdateMatchesSampler(t *testing.T) {
	src := field.New(field.WithSeed(3))
	cfg := DefaultConfig()
	f := NewFlowField(30, 30, cfg)
	f.Update(src)

	r := src.Sample(cfg.NoiseStep, 0, 0)
	assert.Equal(t, canvas.RGBf(r.Color[0]*cfg.Red, r.Color[1]*cfg.Green, r.Color[2]*cfg.Blue), f.Colors[1])
	assert.InDelta(t, r.Vector.Angle, math.Mod(f.Vectors[1].Heading()+3*math.Pi, 2*math.Pi), 1e-9)
}

func TestPopulationStaysWithinBounds(t *testing.T) {
	cfg := DefaultConfig()
	src := field.New(field.WithSeed(26))
	s, err := NewSystem(200, 200, cfg, src)
	require.NoError(t, err)
	require.Equal(t, cfg.Initial, s.Len())

	for frame := 0; frame < 1000; frame++ {
		trails := s.Step(src)
		require.LessOrEqual(t, s.Len(), cfg.Max, "frame %d", frame)
		require.GreaterOrEqual(t, s.Len(), cfg.Min, "frame %d", frame)
		require.NotEmpty(t, trails)
	}
}

func TestPopulationHardCeiling(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Initial, cfg.Min, cfg.ShrinkAbove, cfg.Max = 10, 5, 15, 20
	cfg.SpawnScale = 1000

	// Always grows, never shrinks.
	grow := fixed{noise: 0.9, float: 0}
	s, err := NewSystem(100, 100, cfg, grow)
	require.NoError(t, err)
	for i := 0; i < 50; i++ {
		s.Step(grow)
		require.LessOrEqual(t, s.Len(), cfg.Max)
	}
	assert.Equal(t, cfg.Max, s.Len())
}

func TestPopulationFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Initial, cfg.Min, cfg.ShrinkAbove, cfg.Max = 12, 10, 10, 20
	cfg.GrowChance = 0
	cfg.ShrinkBatch = 100

	shrink := fixed{noise: 0.5, float: 0.99}
	s, err := NewSystem(100, 100, cfg, shrink)
	require.NoError(t, err)
	s.Step(shrink)
	assert.Equal(t, cfg.Min, s.Len())
}

func TestShrinkRemovesOldest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Initial, cfg.Min, cfg.ShrinkAbove, cfg.Max = 12, 10, 10, 20
	cfg.GrowChance = 0
	cfg.ShrinkBatch = 2

	shrink := fixed{noise: 0.5, float: 0.99}
	s, err := NewSystem(100, 100, cfg, shrink)
	require.NoError(t, err)
	oldest, newest := s.Particles[0], s.Particles[len(s.Particles)-1]
	s.Step(shrink)
	assert.Equal(t, 11, s.Len())
	assert.NotContains(t, s.Particles, oldest)
	assert.Contains(t, s.Particles, newest)
}

func TestStepTrails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Initial, cfg.Min = 1, 1
	src := fixed{noise: 0.25, float: 0.5}
	s, err := NewSystem(100, 100, cfg, src)
	require.NoError(t, err)

	p := s.Particles[0]
	start := p.Position
	trails := s.Step(src)
	require.Len(t, trails, 1)
	assert.Equal(t, start, trails[0].From)
	assert.Equal(t, p.Position, trails[0].To)
	assert.Equal(t, p.Position, p.Previous)
	assert.False(t, math.IsNaN(p.Position.X))
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
	tests := map[string]func(*Config){
		"zero grid":        func(c *Config) { c.GridScale = 0 },
		"min above max":    func(c *Config) { c.Min = 4000 },
		"initial too high": func(c *Config) { c.Initial = 4000 },
		"shrink below min": func(c *Config) { c.ShrinkAbove = 100 },
		"chance":           func(c *Config) { c.GrowChance = 1.5 },
		"negative speed":   func(c *Config) { c.MaxSpeed = -1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := DefaultConfig()
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
	_, err := NewSystem(0, 100, DefaultConfig(), fixed{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDrawing(t *testing.T) {
	rec, err := canvas.NewRecorder(40, 20)
	require.NoError(t, err)

	DrawTrails(rec, []Trail{
		{From: geom.Pt(1, 1), To: geom.Pt(2, 2)},
		{From: geom.Pt(5, 5), To: geom.Pt(5, 5)},
	})
	cmds := rec.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, canvas.OpLine, cmds[0].Op)
	assert.Equal(t, canvas.OpPoint, cmds[1].Op)

	rec.Reset()
	f := NewFlowField(40, 20, DefaultConfig())
	f.Update(fixed{noise: 0.5})
	f.Draw(rec)
	assert.Len(t, rec.Commands(), 2*f.Cols*f.Rows)
	assert.Equal(t, canvas.RGB(220, 0, 0), rec.Commands()[1].Style.Stroke, "reversed force tip")
}
