package grid

import (
	"math"

	"github.com/olivierh59500/sketchbook/internal/geom"
)

// EdgePolicy decides how Iterate treats partial cells.
type EdgePolicy int

const (
	// EdgeSkip drops cells that would cross the region boundary.
	EdgeSkip EdgePolicy = iota
	// EdgeClip keeps them, trimmed to the boundary.
	EdgeClip
)

func (p EdgePolicy) String() string {
	if p == EdgeClip {
		return "clip"
	}
	return "skip"
}

// ParseEdgePolicy maps a configuration name onto an EdgePolicy.
func ParseEdgePolicy(name string) (EdgePolicy, bool) {
	switch name {
	case "", "skip":
		return EdgeSkip, true
	case "clip":
		return EdgeClip, true
	}
	return EdgeSkip, false
}

// Cell is one grid unit.
type Cell struct {
	Column, Row         int
	X, Y, Width, Height float64
}

// Rect returns the cell bounds.
func (c Cell) Rect() geom.Rect {
	return geom.R(c.X, c.Y, c.Width, c.Height)
}

// Center returns the cell centre.
func (c Cell) Center() geom.Point {
	return geom.Pt(c.X+c.Width/2, c.Y+c.Height/2)
}

// eps absorbs floating point error when deciding whether a region is an
// exact multiple of the step, e.g. 240/80 or 0.3/0.1.
const eps = 1e-9

// Iterate calls fn for each cell of size stepX×stepY covering bounds and
// returns the number of cells visited. Empty bounds and non-positive or
// non-finite steps visit nothing. A step larger than the region yields no
// cell under EdgeSkip and one clipped cell under EdgeClip.
func Iterate(bounds geom.Rect, stepX, stepY float64, policy EdgePolicy, fn func(Cell)) int {
	if bounds.Empty() || !geom.Finite(stepX, stepY) || stepX <= 0 || stepY <= 0 {
		return 0
	}
	cols := span(bounds.W, stepX, policy)
	rows := span(bounds.H, stepY, policy)

	n := 0
	for r := 0; r < rows; r++ {
		y := bounds.Y + float64(r)*stepY
		h := math.Min(stepY, bounds.MaxY()-y)
		for c := 0; c < cols; c++ {
			x := bounds.X + float64(c)*stepX
			w := math.Min(stepX, bounds.MaxX()-x)
			fn(Cell{Column: c, Row: r, X: x, Y: y, Width: w, Height: h})
			n++
		}
	}
	return n
}

func span(length, step float64, policy EdgePolicy) int {
	q := length / step
	if policy == EdgeClip {
		return int(math.Ceil(q - eps))
	}
	return int(math.Floor(q + eps))
}

// Count returns how many cells Iterate would visit.
func Count(bounds geom.Rect, stepX, stepY float64, policy EdgePolicy) int {
	return Iterate(bounds, stepX, stepY, policy, func(Cell) {})
}

// Divide splits bounds into cols×rows cells and calls fn for each in
// row-major order. The last column and row absorb any floating point
// remainder so the cells tile bounds exactly.
func Divide(bounds geom.Rect, cols, rows int, fn func(Cell)) int {
	if bounds.Empty() || cols <= 0 || rows <= 0 {
		return 0
	}
	cw := bounds.W / float64(cols)
	ch := bounds.H / float64(rows)
	for r := 0; r < rows; r++ {
		y := bounds.Y + float64(r)*ch
		h := ch
		if r == rows-1 {
			h = bounds.MaxY() - y
		}
		for c := 0; c < cols; c++ {
			x := bounds.X + float64(c)*cw
			w := cw
			if c == cols-1 {
				w = bounds.MaxX() - x
			}
			fn(Cell{Column: c, Row: r, X: x, Y: y, Width: w, Height: h})
		}
	}
	return cols * rows
}
