package sketch

import (
	"fmt"
	"image"
	"time"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/config"
	"github.com/olivierh59500/sketchbook/internal/field"
)

// Options configure a Session.
type Options struct {
	Config config.Config
	// Record keeps every Painter call so the result can be written as SVG.
	Record   bool
	AssetDir string
}

// Session is one sketch being rendered frame by frame. Hosts that drive
// their own loop, like the gallery window, step it directly; Run steps it
// to completion.
type Session struct {
	sketch Sketch
	info   Info
	ctx    *Context
	rec    *canvas.Recorder
	done   bool
}

// NewSession prepares a surface and a sampler for s and runs its Setup.
func NewSession(s Sketch, opts Options) (*Session, error) {
	info := s.Info()
	surf, err := canvas.NewSurface(info.Width, info.Height)
	if err != nil {
		return nil, fmt.Errorf("sketch %d: %w", info.ID, err)
	}
	ctx := &Context{
		Surface:  surf,
		Painter:  surf,
		Field:    field.New(field.WithSeed(opts.Config.Seed), field.WithBackend(opts.Config.Backend())),
		Config:   opts.Config,
		AssetDir: opts.AssetDir,
	}
	sess := &Session{sketch: s, info: info, ctx: ctx}
	if opts.Record {
		if info.RasterOnly {
			ctx.Warn(fmt.Errorf("%w: %s", ErrRasterOnly, info.Name))
		} else {
			sess.rec, _ = canvas.NewRecorder(info.Width, info.Height)
			ctx.Painter = canvas.Tee(surf, sess.rec)
		}
	}
	if err := s.Setup(ctx); err != nil {
		return nil, fmt.Errorf("sketch %d %s: setup: %w", info.ID, info.Name, err)
	}
	return sess, nil
}

// Step draws one frame and advances the animation clock by dt. It does
// nothing once the sketch has finished.
func (s *Session) Step(dt time.Duration) error {
	if s.done {
		return nil
	}
	more, err := s.sketch.Draw(s.ctx)
	if err != nil {
		return fmt.Errorf("sketch %d %s: frame %d: %w", s.info.ID, s.info.Name, s.ctx.Frame, err)
	}
	s.ctx.Frame++
	s.ctx.Elapsed += dt
	s.done = !more
	return nil
}

// Info describes the sketch being rendered.
func (s *Session) Info() Info { return s.info }

// Done reports whether the sketch has drawn its last frame.
func (s *Session) Done() bool { return s.done }

// Frames returns the number of frames drawn.
func (s *Session) Frames() int { return s.ctx.Frame }

// Image returns the live raster. It changes with every Step.
func (s *Session) Image() *image.RGBA { return s.ctx.Surface.Image() }

// Recorder returns the recorded calls, or nil when not recording.
func (s *Session) Recorder() *canvas.Recorder { return s.rec }

// Seeds returns the noise and random seeds in effect, so a run with fresh
// seeds can be reproduced.
func (s *Session) Seeds() (noise, random int64) { return s.ctx.Field.Seeds() }

// Warnings returns the problems the sketch reported.
func (s *Session) Warnings() []error { return s.ctx.Warnings() }
