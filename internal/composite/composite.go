// Package composite layers offscreen images onto a base image using the
// separable blend modes of the W3C Compositing and Blending specification,
// followed by source-over alpha compositing.
//
// All layers of a composite share the base's dimensions; a mismatch is a
// programming error and is reported before any pixel is touched.
package composite

import (
	"fmt"
	"image"
	"math"
	"strings"
)

// BlendMode is a per-channel colour mixing rule.
type BlendMode int

const (
	Normal BlendMode = iota
	Multiply
	SoftLight
)

func (m BlendMode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Multiply:
		return "multiply"
	case SoftLight:
		return "soft-light"
	}
	return fmt.Sprintf("BlendMode(%d)", int(m))
}

// ParseBlendMode accepts the CSS names of the supported modes.
func ParseBlendMode(name string) (BlendMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "normal", "blend":
		return Normal, nil
	case "multiply":
		return Multiply, nil
	case "soft-light", "soft_light", "softlight":
		return SoftLight, nil
	}
	return Normal, fmt.Errorf("%w: %q", ErrUnknownBlendMode, name)
}

// Layer is an overlay image with its blend mode and opacity in [0,1].
type Layer struct {
	Image   *image.RGBA
	Mode    BlendMode
	Opacity float64
}

// Composite returns a new image holding base with every layer applied in
// order. base is not modified.
func Composite(base *image.RGBA, layers ...Layer) (*image.RGBA, error) {
	out := cloneRows(base)
	if err := Apply(out, layers...); err != nil {
		return nil, err
	}
	return out, nil
}

// Apply composites layers onto dst in place.
func Apply(dst *image.RGBA, layers ...Layer) error {
	size := dst.Bounds().Size()
	for i, l := range layers {
		if l.Image == nil || l.Image.Bounds().Size() != size {
			var got image.Point
			if l.Image != nil {
				got = l.Image.Bounds().Size()
			}
			return fmt.Errorf("%w: layer %d is %v, base is %v", ErrSizeMismatch, i, got, size)
		}
		if l.Mode < Normal || l.Mode > SoftLight {
			return fmt.Errorf("%w: layer %d has %v", ErrUnknownBlendMode, i, l.Mode)
		}
	}
	for _, l := range layers {
		apply(dst, l)
	}
	return nil
}

func apply(dst *image.RGBA, l Layer) {
	op := l.Opacity
	if math.IsNaN(op) || op <= 0 {
		return
	}
	if op > 1 {
		op = 1
	}
	db := dst.Bounds()
	for y := 0; y < db.Dy(); y++ {
		drow := dst.Pix[y*dst.Stride:]
		srow := l.Image.Pix[y*l.Image.Stride:]
		for x := 0; x < db.Dx(); x++ {
			s := srow[x*4 : x*4+4]
			as := float64(s[3]) / 255 * op
			if as == 0 {
				continue
			}
			d := drow[x*4 : x*4+4]
			ab := float64(d[3]) / 255
			for c := 0; c < 3; c++ {
				cs := float64(s[c]) / float64(s[3])
				cb := 0.0
				if d[3] > 0 {
					cb = float64(d[c]) / float64(d[3])
				}
				mixed := (1-ab)*cs + ab*BlendChannel(l.Mode, cb, cs)
				co := as*mixed + (1-as)*ab*cb
				d[c] = to8(co)
			}
			d[3] = to8(as + ab*(1-as))
		}
	}
}

// BlendChannel applies mode to one normalised channel, cb from the
// backdrop and cs from the source.
func BlendChannel(mode BlendMode, cb, cs float64) float64 {
	switch mode {
	case Multiply:
		return cb * cs
	case SoftLight:
		if cs <= 0.5 {
			return cb - (1-2*cs)*cb*(1-cb)
		}
		var d float64
		if cb <= 0.25 {
			d = ((16*cb-12)*cb + 4) * cb
		} else {
			d = math.Sqrt(cb)
		}
		return cb + (2*cs-1)*(d-cb)
	default:
		return cs
	}
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func cloneRows(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(b)
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()*4], src.Pix[y*src.Stride:y*src.Stride+b.Dx()*4])
	}
	return out
}
