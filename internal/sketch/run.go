package sketch

import (
	"context"
	"image"
	"time"

	"github.com/olivierh59500/sketchbook/internal/canvas"
)

// DefaultFrames bounds animated sketches that never finish on their own.
const DefaultFrames = 300

// DefaultFrameInterval is the animation time between frames.
const DefaultFrameInterval = time.Second / 60

// RunOptions configure Run.
type RunOptions struct {
	Options
	// MaxFrames caps the frames drawn. Zero means one frame for static
	// sketches and DefaultFrames for animated ones.
	MaxFrames int
	// CaptureEvery keeps a copy of every n-th frame, starting with the
	// first, plus the last. Zero captures nothing.
	CaptureEvery  int
	FrameInterval time.Duration
	// Progress, when set, is called after every frame.
	Progress func(frame int)
}

// Result is the outcome of a Run.
type Result struct {
	Info     Info
	Image    *image.RGBA
	Frames   []image.Image
	Recorder *canvas.Recorder
	// NoiseSeed and RandomSeed reproduce the run.
	NoiseSeed, RandomSeed int64
	Warnings              []error
	FrameCount            int
}

// Run renders s until it finishes or the frame cap is reached. It checks
// ctx between frames and returns its error once it is done.
func Run(ctx context.Context, s Sketch, opts RunOptions) (*Result, error) {
	sess, err := NewSession(s, opts.Options)
	if err != nil {
		return nil, err
	}
	limit := opts.MaxFrames
	if limit <= 0 {
		limit = 1
		if sess.Info().Animated {
			limit = DefaultFrames
		}
	}
	dt := opts.FrameInterval
	if dt <= 0 {
		dt = DefaultFrameInterval
	}

	res := &Result{Info: sess.Info()}
	captured := -1
	for !sess.Done() && sess.Frames() < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := sess.Step(dt); err != nil {
			return nil, err
		}
		n := sess.Frames()
		if opts.CaptureEvery > 0 && (n-1)%opts.CaptureEvery == 0 {
			res.Frames = append(res.Frames, snapshot(sess.Image()))
			captured = n
		}
		if opts.Progress != nil {
			opts.Progress(n)
		}
	}
	if opts.CaptureEvery > 0 && captured != sess.Frames() {
		res.Frames = append(res.Frames, snapshot(sess.Image()))
	}

	res.Image = snapshot(sess.Image())
	res.Recorder = sess.Recorder()
	res.NoiseSeed, res.RandomSeed = sess.Seeds()
	res.Warnings = sess.Warnings()
	res.FrameCount = sess.Frames()
	return res, nil
}

func snapshot(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}
