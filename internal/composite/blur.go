package composite

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
)

// Blur returns a box-blurred copy of img over its premultiplied channels;
// samples past the border repeat the edge pixel.
func Blur(img *image.RGBA, radius int) *image.RGBA {
	if radius <= 0 {
		return cloneRows(img)
	}
	return blur.Box(img, float64(radius))
}
