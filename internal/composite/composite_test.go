package composite

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x * 255 / w), uint8(y * 255 / h), 128, 255})
		}
	}
	return img
}

func TestTransparentOverlayIsIdentity(t *testing.T) {
	base := gradient(32, 16)
	for _, mode := range []BlendMode{Normal, Multiply, SoftLight} {
		t.Run(mode.String(), func(t *testing.T) {
			out, err := Composite(base, Layer{Image: solid(32, 16, color.RGBA{}), Mode: mode, Opacity: 1})
			require.NoError(t, err)
			assert.Equal(t, base.Pix, out.Pix)

			out, err = Composite(base, Layer{Image: solid(32, 16, color.RGBA{200, 10, 10, 255}), Mode: mode, Opacity: 0})
			require.NoError(t, err)
			assert.Equal(t, base.Pix, out.Pix, "zero opacity")
		})
	}
}

func TestCompositeDoesNotModifyBase(t *testing.T) {
	base := gradient(8, 8)
	orig := append([]uint8(nil), base.Pix...)
	_, err := Composite(base, Layer{Image: solid(8, 8, color.RGBA{0, 0, 0, 255}), Mode: Normal, Opacity: 1})
	require.NoError(t, err)
	assert.Equal(t, orig, base.Pix)
}

func TestModes(t *testing.T) {
	base := gradient(16, 16)
	tests := []struct {
		name    string
		overlay color.RGBA
		mode    BlendMode
		want    func(b color.RGBA) color.RGBA
	}{
		{"multiply white", color.RGBA{255, 255, 255, 255}, Multiply, func(b color.RGBA) color.RGBA { return b }},
		{"multiply black", color.RGBA{0, 0, 0, 255}, Multiply, func(color.RGBA) color.RGBA { return color.RGBA{0, 0, 0, 255} }},
		{"normal opaque", color.RGBA{10, 20, 30, 255}, Normal, func(color.RGBA) color.RGBA { return color.RGBA{10, 20, 30, 255} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Composite(base, Layer{Image: solid(16, 16, tt.overlay), Mode: tt.mode, Opacity: 1})
			require.NoError(t, err)
			for y := 0; y < 16; y += 5 {
				for x := 0; x < 16; x += 5 {
					assert.Equal(t, tt.want(base.RGBAAt(x, y)), out.RGBAAt(x, y), "pixel %d,%d", x, y)
				}
			}
		})
	}
}

func TestSoftLightNeutralGray(t *testing.T) {
	// Cs = 0.5 leaves the backdrop unchanged.
	assert.InDelta(t, 0.3, BlendChannel(SoftLight, 0.3, 0.5), 1e-12)
	assert.InDelta(t, 0.5, BlendChannel(SoftLight, 0.25, 1), 1e-12)
	assert.InDelta(t, 0.0625, BlendChannel(SoftLight, 0.25, 0), 1e-12)
	assert.InDelta(t, 0.6+0.5*(0.7745966692414834-0.6), BlendChannel(SoftLight, 0.6, 0.75), 1e-9)
}

func TestHalfOpacityNormal(t *testing.T) {
	base := solid(4, 4, color.RGBA{0, 0, 0, 255})
	out, err := Composite(base, Layer{Image: solid(4, 4, color.RGBA{255, 255, 255, 255}), Mode: Normal, Opacity: 0.5})
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{128, 128, 128, 255}, out.RGBAAt(1, 1))
}

func TestOverTransparentBase(t *testing.T) {
	base := solid(4, 4, color.RGBA{})
	src := solid(4, 4, color.RGBA{100, 50, 25, 255})
	out, err := Composite(base, Layer{Image: src, Mode: Multiply, Opacity: 1})
	require.NoError(t, err)
	assert.Equal(t, src.Pix, out.Pix, "blend result is ignored where the backdrop is empty")
}

func TestSizeMismatch(t *testing.T) {
	base := gradient(8, 8)
	_, err := Composite(base, Layer{Image: solid(8, 8, color.RGBA{}), Opacity: 1}, Layer{Image: solid(4, 8, color.RGBA{}), Opacity: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSizeMismatch))

	_, err = Composite(base, Layer{Opacity: 1})
	assert.ErrorIs(t, err, ErrSizeMismatch)

	_, err = Composite(base, Layer{Image: solid(8, 8, color.RGBA{}), Mode: BlendMode(9)})
	assert.ErrorIs(t, err, ErrUnknownBlendMode)
}

func TestParseBlendMode(t *testing.T) {
	for in, want := range map[string]BlendMode{"": Normal, "Multiply": Multiply, "soft-light": SoftLight, "softlight": SoftLight} {
		got, err := ParseBlendMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseBlendMode("screen")
	assert.ErrorIs(t, err, ErrUnknownBlendMode)
	assert.Equal(t, "BlendMode(7)", BlendMode(7).String())
}

func TestBlur(t *testing.T) {
	img := solid(9, 9, color.RGBA{})
	img.SetRGBA(4, 4, color.RGBA{255, 255, 255, 255})

	same := Blur(img, 0)
	assert.Equal(t, img.Pix, same.Pix)

	out := Blur(img, 1)
	assert.InDelta(t, 28, out.RGBAAt(4, 4).A, 1)
	assert.Equal(t, out.RGBAAt(3, 3), out.RGBAAt(5, 5))
	assert.Equal(t, uint8(0), out.RGBAAt(0, 0).A)

	flat := solid(5, 5, color.RGBA{40, 40, 40, 255})
	for i, v := range Blur(flat, 2).Pix {
		require.InDelta(t, flat.Pix[i], v, 1, "flat input stays flat at byte %d", i)
	}
	assert.Equal(t, flat.Bounds(), Blur(flat, 2).Bounds())
}
