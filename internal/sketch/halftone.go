package sketch

import (
	"fmt"
	"image"
	_ "image/jpeg" // decoder for photo assets
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/halftone"
)

// labelMargin is the strip under the images that holds their captions.
const labelMargin = 40

// halftoneSketch shows a photo next to its dot rendering.
type halftoneSketch struct {
	src *image.RGBA // the photo, resized to its display size
}

func (*halftoneSketch) Info() Info {
	return Info{ID: 36, Name: "halftone", Title: "Photo to dots with fire", Width: 800, Height: 600, RasterOnly: true}
}

func (h *halftoneSketch) Setup(c *Context) error {
	path := filepath.Join(c.AssetDir, c.Config.Halftone.Image)
	img, err := loadImage(path)
	if err != nil {
		c.Warn(fmt.Errorf("%w: %v", ErrAssetUnavailable, err))
		return nil
	}
	w, ht := c.Surface.Size()
	h.src = fit(img, w/2, ht-labelMargin)
	return nil
}

func (h *halftoneSketch) Draw(c *Context) (bool, error) {
	s := c.Surface
	if h.src == nil {
		s.Placeholder("Image not loaded")
		return false, nil
	}
	w, ht := s.Size()
	s.Background(canvas.Gray(220))

	iw, ih := h.src.Bounds().Dx(), h.src.Bounds().Dy()
	dots, err := canvas.NewSurface(iw, ih)
	if err != nil {
		return false, err
	}
	dots.Background(white)
	halftone.Render(dots, h.src, c.Config.Halftone, c.Field)

	y := (ht - labelMargin - ih) / 2
	s.DrawImage(h.src, (w/2-iw)/2, y)
	s.DrawImage(dots.Image(), w/2+(w/2-iw)/2, y)

	dc := s.Context()
	dc.SetColor(black)
	dc.DrawStringAnchored("Original", float64(w)/4, float64(ht)-15, 0.5, 0)
	dc.DrawStringAnchored("Dots", 3*float64(w)/4, float64(ht)-15, 0.5, 0)
	return false, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// fit scales img to the largest size within maxW×maxH that keeps its
// aspect ratio.
func fit(img image.Image, maxW, maxH int) *image.RGBA {
	b := img.Bounds()
	scale := math.Min(float64(maxW)/float64(b.Dx()), float64(maxH)/float64(b.Dy()))
	w := max(1, int(float64(b.Dx())*scale))
	h := max(1, int(float64(b.Dy())*scale))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
