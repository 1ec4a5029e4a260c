// Package halftone turns a raster into dots: dark dots whose size follows
// the local darkness, and flame-coloured marks over the brightest areas.
//
// Analysis works on average luma per square cell. Thresholds adapt to the
// image through percentiles (or Otsu's method) so the same settings suit
// bright and dim sources.
package halftone

import (
	"image"
	"math"
	"sort"
)

// Brightness returns the mean luma (0..255) of the size×size cell whose
// top-left corner is (x, y). Pixels outside img are ignored; a cell with
// none inside yields 0.
func Brightness(img *image.RGBA, x, y, size int) float64 {
	b := img.Bounds()
	x0, y0 := max(x, b.Min.X), max(y, b.Min.Y)
	x1, y1 := min(x+size, b.Max.X), min(y+size, b.Max.Y)
	if x0 >= x1 || y0 >= y1 {
		return 0
	}
	var sum float64
	for py := y0; py < y1; py++ {
		row := img.Pix[img.PixOffset(x0, py):]
		for px := 0; px < x1-x0; px++ {
			p := row[px*4 : px*4+3]
			sum += 0.299*float64(p[0]) + 0.587*float64(p[1]) + 0.114*float64(p[2])
		}
	}
	return sum / float64((x1-x0)*(y1-y0))
}

// Percentile returns the value at fraction p of the sorted samples. It
// returns 0 for no samples.
func Percentile(vals []float64, p float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := append([]float64(nil), vals...)
	sort.Float64s(sorted)
	i := int(math.Floor(p * float64(len(sorted))))
	if i < 0 {
		i = 0
	}
	if i >= len(sorted) {
		i = len(sorted) - 1
	}
	return sorted[i]
}

// Otsu returns the threshold that maximises the between-class variance of
// the samples' 256-bin histogram.
func Otsu(vals []float64) float64 {
	var hist [256]int
	for _, v := range vals {
		hist[int(math.Floor(math.Max(0, math.Min(255, v))))]++
	}
	total := len(vals)
	var sumAll float64
	for i, n := range hist {
		sumAll += float64(i * n)
	}

	var sumBack float64
	weightBack := 0
	best, threshold := 0.0, 0
	for t, n := range hist {
		weightBack += n
		if weightBack == 0 {
			continue
		}
		weightFore := total - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(t * n)
		meanBack := sumBack / float64(weightBack)
		meanFore := (sumAll - sumBack) / float64(weightFore)
		v := float64(weightBack) * float64(weightFore) * (meanBack - meanFore) * (meanBack - meanFore)
		if v > best {
			best, threshold = v, t
		}
	}
	return float64(threshold)
}

// Gradient is the Sobel response of a cell against its eight neighbours.
type Gradient struct {
	X, Y      float64
	Magnitude float64
	Angle     float64 // radians
}

// Sobel estimates the brightness gradient at the cell (x, y), using
// neighbouring cells of the same size as the 3×3 kernel taps.
func Sobel(img *image.RGBA, x, y, size int) Gradient {
	at := func(dx, dy int) float64 {
		return Brightness(img, x+dx*size, y+dy*size, size)
	}
	tl, tc, tr := at(-1, -1), at(0, -1), at(1, -1)
	ml, mr := at(-1, 0), at(1, 0)
	bl, bc, br := at(-1, 1), at(0, 1), at(1, 1)

	gx := (tr + 2*mr + br) - (tl + 2*ml + bl)
	gy := (bl + 2*bc + br) - (tl + 2*tc + tr)
	return Gradient{X: gx, Y: gy, Magnitude: math.Hypot(gx, gy), Angle: math.Atan2(gy, gx)}
}

// Edge classifies a bright cell by its dark surroundings.
type Edge int

const (
	Interior Edge = iota // no dark neighbour
	Inner                // a dark neighbour, mostly bright surroundings
	Outer                // on the rim of a bright region
)

// outerDarkCount is the number of dark cells in the 5×5 ring that marks a
// cell as Outer.
const outerDarkCount = 12

// EdgeKind classifies the cell at (x, y) against threshold.
func EdgeKind(img *image.RGBA, x, y, size int, threshold float64) Edge {
	edge := false
	for dy := -1; dy <= 1 && !edge; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if (dx != 0 || dy != 0) && Brightness(img, x+dx*size, y+dy*size, size) < threshold {
				edge = true
				break
			}
		}
	}
	if !edge {
		return Interior
	}
	dark := 0
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if (dx != 0 || dy != 0) && Brightness(img, x+dx*size, y+dy*size, size) < threshold {
				dark++
			}
		}
	}
	if dark > outerDarkCount {
		return Outer
	}
	return Inner
}
