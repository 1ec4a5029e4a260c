package halftone

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/config"
)

type flat float64

func (f flat) Noise(x, y float64) float64 { return float64(f) }

func fill(img *image.RGBA, r image.Rectangle, v uint8) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
}

// spotlight is a dark image with a bright square in the upper half.
func spotlight() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	fill(img, img.Bounds(), 20)
	fill(img, image.Rect(15, 10, 45, 35), 250)
	return img
}

func TestBrightness(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill(img, image.Rect(0, 0, 2, 4), 100)
	assert.InDelta(t, 100, Brightness(img, 0, 0, 2), 1e-9)
	assert.InDelta(t, 50, Brightness(img, 0, 0, 4), 1e-9)
	assert.InDelta(t, 0, Brightness(img, 3, 3, 4), 1e-9, "only the inside pixel counts")
	assert.Equal(t, 0.0, Brightness(img, 10, 10, 2))

	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	assert.InDelta(t, 0.299*255, Brightness(img, 0, 0, 1), 1e-9)
}

func TestPercentile(t *testing.T) {
	vals := []float64{5, 1, 4, 2, 3}
	assert.Equal(t, 1.0, Percentile(vals, 0))
	assert.Equal(t, 4.0, Percentile(vals, 0.75))
	assert.Equal(t, 5.0, Percentile(vals, 1))
	assert.Equal(t, 0.0, Percentile(nil, 0.5))
	assert.Equal(t, []float64{5, 1, 4, 2, 3}, vals, "input left unsorted")
}

func TestOtsuSeparatesClusters(t *testing.T) {
	var vals []float64
	for i := 0; i < 50; i++ {
		vals = append(vals, 30, 200)
	}
	th := Otsu(vals)
	assert.GreaterOrEqual(t, th, 30.0)
	assert.Less(t, th, 200.0)
}

func TestSobel(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 9, 9))
	fill(img, image.Rect(0, 0, 9, 9), 0)
	fill(img, image.Rect(6, 0, 9, 9), 255)
	g := Sobel(img, 3, 3, 3)
	assert.InDelta(t, 4*255, g.X, 1e-9)
	assert.InDelta(t, 0, g.Y, 1e-9)
	assert.InDelta(t, 0, g.Angle, 1e-9)
}

func TestEdgeKind(t *testing.T) {
	img := spotlight()
	assert.Equal(t, Interior, EdgeKind(img, 25, 20, 5, 128))
	assert.Equal(t, Inner, EdgeKind(img, 15, 20, 5, 128))
	assert.Equal(t, Outer, EdgeKind(img, 40, 30, 5, 128))
}

func TestAnalyze(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	fill(img, img.Bounds(), 100)
	cfg := config.DefaultHalftone()
	th := Analyze(img, cfg)
	assert.InDelta(t, 100, th.White, 1e-9)
	assert.Equal(t, defaultBands, th.Bands, "nothing brighter than the white threshold")
	assert.InDelta(t, 100, th.Low, 1e-9)
	assert.InDelta(t, 100, th.High, 1e-9)

	// Left half bright, right half dark.
	fill(img, image.Rect(0, 0, 30, 60), 250)
	fill(img, image.Rect(30, 0, 60, 60), 20)
	th = Analyze(img, cfg)
	assert.InDelta(t, 250, th.White, 1e-9)
	assert.InDelta(t, 20, th.Low, 1e-9)
	assert.InDelta(t, 250, th.High, 1e-9)

	cfg.Percentile = 0.25
	th = Analyze(img, cfg)
	assert.InDelta(t, 20, th.White, 1e-9)
	assert.InDelta(t, 250, th.Bands.White, 1e-9)
	assert.InDelta(t, 250, th.Bands.Red, 1e-9)

	cfg.Threshold = "otsu"
	assert.InDelta(t, 20, Analyze(img, cfg).White, 1e-9)
}

func TestRender(t *testing.T) {
	rec, err := canvas.NewRecorder(60, 60)
	require.NoError(t, err)
	cfg := config.DefaultHalftone()
	cfg.Percentile = 0.5

	marks := Render(rec, spotlight(), cfg, flat(0.5))
	require.Positive(t, marks)

	var dark, colored int
	for _, c := range rec.Commands() {
		if c.Style.Fill == nil {
			continue
		}
		if n := color.NRGBAModel.Convert(c.Style.Fill).(color.NRGBA); n.A == flameAlpha {
			colored++
		} else if n == (color.NRGBA{0, 0, 0, 255}) {
			dark++
		}
	}
	assert.Positive(t, dark)
	assert.Positive(t, colored, "the bright square produces flames")

	rec.Reset()
	cfg.MultiPass = false
	single := Render(rec, spotlight(), cfg, flat(0.5))
	assert.Less(t, single, marks)
}

func TestBandsColor(t *testing.T) {
	b := Bands{White: 240, YellowWhite: 220, Yellow: 200, Red: 180}
	assert.Equal(t, white, b.Color(250))
	assert.Equal(t, yellowWhite, b.Color(230))
	assert.Equal(t, yellow, b.Color(210))
	assert.Equal(t, darkRed, b.Color(190))
}
