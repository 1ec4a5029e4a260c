// Package sketch defines the gallery's sketches and the loop that renders
// them.
//
// A Sketch draws through the Painter of the Context it is handed. Setup runs
// once; Draw runs once per frame until it reports that there is nothing more
// to draw. Static sketches draw everything in their first frame.
package sketch

import (
	"errors"
	"time"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/config"
	"github.com/olivierh59500/sketchbook/internal/field"
)

var (
	// ErrUnknownSketch indicates a lookup that matched no registered sketch.
	ErrUnknownSketch = errors.New("sketch: unknown sketch")
	// ErrDuplicateSketch indicates two registrations under the same ID or name.
	ErrDuplicateSketch = errors.New("sketch: duplicate sketch")
	// ErrAssetUnavailable indicates an input file a sketch depends on could
	// not be loaded. It is reported as a warning; the sketch still renders.
	ErrAssetUnavailable = errors.New("sketch: asset unavailable")
	// ErrRasterOnly indicates vector recording was requested for a sketch
	// that paints pixels directly.
	ErrRasterOnly = errors.New("sketch: sketch cannot be recorded as vectors")
)

// Info describes a sketch.
type Info struct {
	ID       int
	Name     string
	Title    string
	Width    int
	Height   int
	Animated bool
	// RasterOnly sketches write pixels the Painter never sees, so a
	// recording of their calls would not match the raster.
	RasterOnly bool
}

// Sketch is one piece of the gallery.
type Sketch interface {
	Info() Info
	Setup(c *Context) error
	// Draw renders the next frame and reports whether more frames follow.
	Draw(c *Context) (more bool, err error)
}

// Context is everything a sketch draws with.
type Context struct {
	// Surface is the raster target. Painter draws onto it too, and also
	// onto a recorder when one is attached.
	Surface *canvas.Surface
	Painter canvas.Painter
	Field   *field.Sampler
	Config  config.Config
	// AssetDir is where sketches look for input files.
	AssetDir string

	// Frame counts the frames drawn before the current one.
	Frame int
	// Elapsed is the animation time at the current frame.
	Elapsed time.Duration

	warnings []error
}

// Warn records a problem that did not stop the sketch.
func (c *Context) Warn(err error) {
	if err != nil {
		c.warnings = append(c.warnings, err)
	}
}

// Warnings returns the problems recorded so far.
func (c *Context) Warnings() []error {
	return c.warnings
}
