package sketch

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/config"
	"github.com/olivierh59500/sketchbook/internal/geom"
	"github.com/olivierh59500/sketchbook/internal/particle"
)

// testConfig keeps the heavy sketches small.
func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 42
	cfg.Painting.Streaks = 5
	cfg.Painting.Speckles = 40
	cfg.Flow.Initial, cfg.Flow.Min, cfg.Flow.ShrinkAbove, cfg.Flow.Max = 50, 50, 100, 150
	return cfg
}

func run(t *testing.T, key string, opts RunOptions) *Result {
	t.Helper()
	s, err := Default().Lookup(key)
	require.NoError(t, err)
	res, err := Run(context.Background(), s, opts)
	require.NoError(t, err)
	return res
}

func TestRegistry(t *testing.T) {
	r := Default()
	assert.Equal(t, []int{4, 9, 12, 15, 18, 19, 20, 26, 35, 36, 38, 44}, r.IDs())

	for _, key := range []string{"12", "joy-division", " JOY-DIVISION "} {
		s, err := r.Lookup(key)
		require.NoError(t, err, key)
		assert.Equal(t, 12, s.Info().ID)
	}

	_, err := r.Lookup("34")
	assert.ErrorIs(t, err, ErrUnknownSketch)
	_, err = r.Lookup("no-such-sketch")
	assert.ErrorIs(t, err, ErrUnknownSketch)

	err = r.Register(func() Sketch { return diagonalTiling{} })
	assert.ErrorIs(t, err, ErrDuplicateSketch)

	a, _ := r.New(26)
	b, _ := r.New(26)
	assert.NotSame(t, a, b, "each call builds a fresh instance")
}

func TestFramedSketchesRender(t *testing.T) {
	for _, key := range []string{"diagonal-tiling", "joy-division", "shape-tiling", "recursive-squares", "recursive-triangles", "eye-of-sauron"} {
		t.Run(key, func(t *testing.T) {
			res := run(t, key, RunOptions{Options: Options{Config: testConfig()}})
			assert.Equal(t, 1, res.FrameCount)
			assert.Empty(t, res.Warnings)

			img := res.Image
			assert.Equal(t, uint8(255), img.RGBAAt(10, 10).R, "ground")
			assert.Less(t, img.RGBAAt(50, 200).R, uint8(60), "heavy frame")
			assert.Less(t, img.RGBAAt(40, 200).R, uint8(255), "frame shadow")

			inked := 0
			for y := 82; y < 318; y++ {
				for x := 82; x < 318; x++ {
					if img.RGBAAt(x, y).R < 128 {
						inked++
					}
				}
			}
			assert.Positive(t, inked, "something drawn inside the frame")
		})
	}
}

func TestDeterministicUnderSeed(t *testing.T) {
	opts := RunOptions{Options: Options{Config: testConfig()}}
	for _, key := range []string{"diagonal-tiling", "joy-division", "eye-of-sauron"} {
		a := run(t, key, opts)
		b := run(t, key, opts)
		assert.Equal(t, a.Image.Pix, b.Image.Pix, key)
		assert.Equal(t, int64(42), a.NoiseSeed)
		assert.Equal(t, int64(42), a.RandomSeed)
	}

	other := opts
	other.Config.Seed = 43
	assert.NotEqual(t, run(t, "diagonal-tiling", opts).Image.Pix, run(t, "diagonal-tiling", other).Image.Pix)
}

func TestFreshSeedsReported(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 0
	res := run(t, "shape-tiling", RunOptions{Options: Options{Config: cfg}})
	assert.NotZero(t, res.NoiseSeed)
	assert.NotZero(t, res.RandomSeed)
}

func TestBezierRevealFinishes(t *testing.T) {
	res := run(t, "bezier-reveal", RunOptions{
		Options:       Options{Config: testConfig()},
		MaxFrames:     1000,
		FrameInterval: 100 * time.Millisecond,
		CaptureEvery:  5,
	})
	// t reaches 1 on the frame drawn at 2s.
	assert.Equal(t, 21, res.FrameCount)
	assert.Len(t, res.Frames, 5)

	end := res.Image.RGBAAt(250, 280)
	assert.Equal(t, uint8(0), end.R, "end point dot")
}

func TestRecordingMatchesRaster(t *testing.T) {
	res := run(t, "recursive-triangles", RunOptions{Options: Options{Config: testConfig(), Record: true}})
	require.NotNil(t, res.Recorder)
	assert.Equal(t, canvas.OpBackground, res.Recorder.Commands()[0].Op)

	replayed, err := canvas.NewSurface(400, 400)
	require.NoError(t, err)
	res.Recorder.Replay(replayed)
	assert.Equal(t, res.Image.Pix, replayed.Image().Pix)
}

func TestRecordingAnimationKeepsLastFrame(t *testing.T) {
	res := run(t, "bezier-reveal", RunOptions{Options: Options{Config: testConfig(), Record: true}, MaxFrames: 10})
	require.NotNil(t, res.Recorder)
	cmds := res.Recorder.Commands()
	backgrounds := 0
	for _, c := range cmds {
		if c.Op == canvas.OpBackground {
			backgrounds++
		}
	}
	assert.Equal(t, 1, backgrounds)
}

func TestFlowFieldRunsToCap(t *testing.T) {
	res := run(t, "flow-field", RunOptions{Options: Options{Config: testConfig(), Record: true}, MaxFrames: 12})
	assert.Equal(t, 12, res.FrameCount)
	assert.Nil(t, res.Recorder)
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], ErrRasterOnly)

	lit := 0
	for i := 0; i < len(res.Image.Pix); i += 4 {
		if res.Image.Pix[i+2] > 0 {
			lit++
		}
	}
	assert.Positive(t, lit, "trails drawn over black")
}

func TestFlowFieldShowField(t *testing.T) {
	cfg := testConfig()
	cfg.Flow.ShowField = true
	res := run(t, "flow-field", RunOptions{Options: Options{Config: cfg}, MaxFrames: 2})
	assert.Greater(t, meanRed(res.Image), 60.0, "vectors on a white ground")

	cfg.Flow.ShowField = false
	res = run(t, "flow-field", RunOptions{Options: Options{Config: cfg}, MaxFrames: 2})
	assert.Less(t, meanRed(res.Image), 30.0, "trails on a black ground")
}

func meanRed(img *image.RGBA) float64 {
	var sum float64
	for i := 0; i < len(img.Pix); i += 4 {
		sum += float64(img.Pix[i])
	}
	return sum / float64(len(img.Pix)/4)
}

func TestSetupErrorsSurface(t *testing.T) {
	cfg := testConfig()
	cfg.Flow.Min = cfg.Flow.Max + 1
	s, err := Default().New(26)
	require.NoError(t, err)
	_, err = NewSession(s, Options{Config: cfg})
	assert.ErrorIs(t, err, particle.ErrInvalidConfig)
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	frames := 0
	s, err := Default().New(26)
	require.NoError(t, err)
	_, err = Run(ctx, s, RunOptions{
		Options:   Options{Config: testConfig()},
		MaxFrames: 100,
		Progress: func(n int) {
			frames = n
			if n == 3 {
				cancel()
			}
		},
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, frames)
}

func TestSessionStopsWhenDone(t *testing.T) {
	s, err := Default().New(4)
	require.NoError(t, err)
	sess, err := NewSession(s, Options{Config: testConfig()})
	require.NoError(t, err)
	require.NoError(t, sess.Step(DefaultFrameInterval))
	require.True(t, sess.Done())
	require.NoError(t, sess.Step(DefaultFrameInterval))
	assert.Equal(t, 1, sess.Frames())
}

func TestHalftoneMissingAsset(t *testing.T) {
	res := run(t, "halftone", RunOptions{Options: Options{Config: testConfig(), AssetDir: t.TempDir()}})
	require.Len(t, res.Warnings, 1)
	assert.ErrorIs(t, res.Warnings[0], ErrAssetUnavailable)
	assert.Equal(t, color.RGBA{235, 235, 235, 255}, res.Image.RGBAAt(2, 2), "placeholder panel")
}

func TestHalftoneRendersAsset(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 100, 80))
	for y := 0; y < 80; y++ {
		for x := 0; x < 100; x++ {
			v := uint8(x * 255 / 99)
			src.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "photo.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	cfg := testConfig()
	cfg.Halftone.Image = "photo.png"
	cfg.Halftone.MultiPass = false
	res := run(t, "halftone", RunOptions{Options: Options{Config: cfg, AssetDir: dir}})
	assert.Empty(t, res.Warnings)
	assert.Equal(t, color.RGBA{220, 220, 220, 255}, res.Image.RGBAAt(5, 5))
	// The photo fills the left half: 400x320 placed 120px down.
	assert.Less(t, res.Image.RGBAAt(2, 280).R, uint8(20), "dark edge of the photo")
	assert.Greater(t, res.Image.RGBAAt(397, 280).R, uint8(235), "bright edge of the photo")
}

func TestBlackPainting(t *testing.T) {
	cfg := testConfig()
	cfg.Seed = 0
	a := run(t, "black-painting", RunOptions{Options: Options{Config: cfg}})
	assert.Equal(t, int64(paintingSeed), a.NoiseSeed)
	assert.Equal(t, int64(paintingSeed), a.RandomSeed)

	img := a.Image
	assert.Less(t, img.RGBAAt(300, 300).R, uint8(140), "dark painting")
	assert.Greater(t, img.RGBAAt(10, 300).R, uint8(200), "light paper")
	assert.Equal(t, uint8(255), img.RGBAAt(300, 300).A)

	b := run(t, "black-painting", RunOptions{Options: Options{Config: cfg}})
	assert.Equal(t, img.Pix, b.Image.Pix, "fixed seed unless configured")
}

func TestRecursiveSquaresWithoutDisplacementAreConcentric(t *testing.T) {
	cfg := testConfig()
	cfg.Squares.Displacement = 0
	res := run(t, "recursive-squares", RunOptions{Options: Options{Config: cfg, Record: true}})
	require.NotNil(t, res.Recorder)

	step := cfg.Squares.Step
	squares := 0
	for _, cmd := range res.Recorder.Commands() {
		if cmd.Op != canvas.OpRect || cmd.Style.Fill == nil {
			continue
		}
		squares++
		c := cmd.Rect.Center()
		offX := math.Mod(c.X-inner.X-step/2, step)
		offY := math.Mod(c.Y-inner.Y-step/2, step)
		require.InDelta(t, 0, offX, 1e-9, "square %v off its cell centre", cmd.Rect)
		require.InDelta(t, 0, offY, 1e-9, "square %v off its cell centre", cmd.Rect)
	}
	assert.Greater(t, squares, 64)
}

func TestBrushBlurredLaysSoftenedLayer(t *testing.T) {
	surf, err := canvas.NewSurface(40, 40)
	require.NoError(t, err)
	pp := &brush{c: &Context{Surface: surf}}

	dst := surf.NewLayer()
	err = pp.blurred(dst, 2, func(l *canvas.Surface) {
		l.Rect(10, 10, 20, 20, canvas.Filled(black))
	})
	require.NoError(t, err)

	img := dst.Image()
	assert.GreaterOrEqual(t, img.RGBAAt(20, 20).A, uint8(254), "solid middle")
	edge := img.RGBAAt(10, 20).A
	assert.Greater(t, edge, uint8(0), "edge is softened")
	assert.Less(t, edge, uint8(255), "edge is softened")
	assert.Equal(t, uint8(0), img.RGBAAt(2, 2).A, "far corner untouched")
}

func TestCalico(t *testing.T) {
	res := run(t, "calico", RunOptions{Options: Options{Config: testConfig(), Record: true}})
	img := res.Image
	assert.Equal(t, uint8(255), img.RGBAAt(225, 225).R, "hollow centre")

	south := img.RGBAAt(225, 325)
	assert.Less(t, south.R, uint8(100), "second ring")
	assert.Greater(t, south.G, uint8(120), "second ring")
	assert.Equal(t, uint8(255), img.RGBAAt(275, 225).G, "opening of the first ring faces east")
	assert.Equal(t, uint8(255), img.RGBAAt(275, 312).G, "opening of the second ring")

	arcs := 0
	for _, c := range res.Recorder.Commands() {
		if c.Op == canvas.OpArc {
			arcs++
		}
	}
	assert.Equal(t, 4, arcs)
}

func TestCalicoDegenerateRings(t *testing.T) {
	cfg := testConfig()
	cfg.Calico.Rings = []config.RingConfig{
		{Radius: 0, Position: 90, Gap: 30},
		{Radius: 1e-9, Position: 0, Gap: 30},
		{Radius: 4, Position: 0, Gap: 500},
		{Radius: 60, Position: 0, Gap: 0},
	}
	res := run(t, "calico", RunOptions{Options: Options{Config: cfg, Record: true}})

	var ops []canvas.Op
	for _, c := range res.Recorder.Commands() {
		require.False(t, math.IsNaN(c.Angles[0]) || math.IsNaN(c.Angles[1]), "arc angles must be numbers")
		ops = append(ops, c.Op)
	}
	assert.Equal(t, []canvas.Op{canvas.OpBackground, canvas.OpArc, canvas.OpArc, canvas.OpCircle}, ops,
		"gaps past the diameter open half the ring; a zero gap closes it")
	assert.Less(t, res.Image.RGBAAt(225, 165).R, uint8(100), "closed ring is drawn")
}

func TestFoldSegments(t *testing.T) {
	b := geom.R(0, 0, 260, 260)
	for _, fold := range [][2]float64{{0, 0}, {0, 9}, {9, 0}, {-3, 7}} {
		plain, flap := foldSegments(b, 26, fold)
		assert.Len(t, plain, 54, "fold %v leaves the grid flat", fold)
		assert.Empty(t, flap, "fold %v", fold)
	}

	plain, flap := foldSegments(b, 26, [2]float64{3, 7})
	assert.Len(t, plain, 54)
	require.Len(t, flap, 10, "lines ending on the crease have nothing to mirror")
	for _, s := range flap {
		for _, p := range []geom.Point{s.a, s.b} {
			// Folding back must land inside the corner that was lifted.
			q, ok := geom.Reflect(p, geom.Pt(30, 0), geom.Pt(0, 70))
			require.True(t, ok)
			assert.GreaterOrEqual(t, q.X, -1e-9)
			assert.GreaterOrEqual(t, q.Y, -1e-9)
			assert.LessOrEqual(t, q.X/30+q.Y/70, 1+1e-9)
		}
		assert.GreaterOrEqual(t, s.noise, float64(flapNoise))
	}

	plain, flap = foldSegments(b, 26, [2]float64{40, 40})
	assert.Len(t, plain, 52, "a diagonal crease swallows the top and left edges")
	assert.Len(t, flap, 52)

	for _, empty := range []geom.Rect{geom.R(0, 0, 0, 260), geom.R(0, 0, 260, -4)} {
		plain, flap = foldSegments(empty, 26, [2]float64{3, 7})
		assert.Empty(t, plain)
		assert.Empty(t, flap)
	}
	plain, _ = foldSegments(b, 0, [2]float64{3, 7})
	assert.Empty(t, plain)
}

func TestFoldingGrid(t *testing.T) {
	cfg := testConfig()
	cfg.Fold.Passes = 1
	cfg.Fold.Mark = 8
	res := run(t, "folding-grid", RunOptions{Options: Options{Config: cfg}})
	img := res.Image
	assert.Equal(t, color.RGBA{252, 250, 248, 255}, img.RGBAAt(3, 3), "paper")

	marked := 0
	for y := 0; y < 900; y += 3 {
		for x := 0; x < 900; x += 3 {
			if img.RGBAAt(x, y).R < 240 {
				marked++
			}
		}
	}
	assert.Greater(t, marked, 500)
}

func TestFoldingGridCollapsedCells(t *testing.T) {
	cfg := testConfig()
	cfg.Fold.Passes = 1
	cfg.Fold.Margin = 160
	res := run(t, "folding-grid", RunOptions{Options: Options{Config: cfg, Record: true}})
	for _, c := range res.Recorder.Commands() {
		assert.Equal(t, canvas.OpBackground, c.Op, "margins wider than the cell leave nothing to draw")
	}
}
