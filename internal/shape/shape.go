// Package shape draws the primitive shapes sketches are built from.
//
// A Spec fully describes one shape; Draw renders it with exactly one
// shape's worth of Painter calls and touches no other state. Branch and
// Curve are composite shapes built from repeated primitives behind a single
// entry point.
package shape

import (
	"errors"
	"fmt"
	"math"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
)

var (
	// ErrNegativeSize indicates a Spec with a negative or non-finite size.
	ErrNegativeSize = errors.New("shape: size must be a finite non-negative number")
	// ErrUnknownKind indicates a Spec whose Kind has no drawer.
	ErrUnknownKind = errors.New("shape: unknown kind")
)

// Kind enumerates the drawable shapes.
type Kind int

const (
	Circle Kind = iota
	Square
	Triangle
	Line
	Branch
	Curve
)

var kindNames = [...]string{"circle", "square", "triangle", "line", "branch", "curve"}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Rand supplies the jitter composite shapes use. *field.Sampler satisfies it.
type Rand interface {
	Random(min, max float64) float64
	Float() float64
}

// Spec describes one shape. Center and Size place it in a Size×Size tile;
// Rotation is in radians.
//
// Kind-specific fields:
//   - Square: Variant 0 fills the top-left and bottom-right quarters of the
//     tile, 1 the other diagonal.
//   - Triangle: Variant is the tile corner left out (0 top-left, then
//     clockwise).
//   - Line: a segment of length Size through Center at Rotation.
//   - Branch: Center is the root, Rotation the heading (0 is up) and Size
//     the trunk length; Tree holds the growth parameters and Rand the
//     jitter (nil draws the unperturbed tree).
//   - Curve: Points are the Bézier control points, sampled Samples times.
type Spec struct {
	Kind     Kind
	Center   geom.Point
	Size     float64
	Rotation float64
	Style    canvas.Style

	Variant int
	Points  []geom.Point
	Samples int
	Tree    BranchConfig
	Rand    Rand
}

// Draw renders s onto p.
func Draw(p canvas.Painter, s Spec) error {
	if !geom.Finite(s.Size, s.Rotation) || s.Size < 0 || !s.Center.Finite() {
		return fmt.Errorf("%w: %s size %v", ErrNegativeSize, s.Kind, s.Size)
	}
	switch s.Kind {
	case Circle:
		p.Circle(s.Center.X, s.Center.Y, s.Size/2, s.Style)
	case Square:
		for _, q := range DiagonalPair(s.Center, s.Size, s.Variant) {
			p.Polygon(rotate(q, s.Center, s.Rotation), s.Style)
		}
	case Triangle:
		p.Polygon(rotate(TileTriangle(s.Center, s.Size, s.Variant), s.Center, s.Rotation), s.Style)
	case Line:
		d := geom.FromAngle(s.Rotation).Scale(s.Size / 2)
		a, b := s.Center.Sub(d), s.Center.Add(d)
		p.Line(a.X, a.Y, b.X, b.Y, s.Style)
	case Branch:
		cfg := s.Tree
		if cfg.Style.Stroke == nil {
			cfg.Style = s.Style
		}
		DrawBranch(p, s.Center, s.Rotation, s.Size, cfg, s.Rand)
	case Curve:
		DrawCurve(p, s.Points, s.Samples, s.Style)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(s.Kind))
	}
	return nil
}

// TileCorners returns the corners of the size×size tile centred on c,
// starting top-left and going clockwise.
func TileCorners(c geom.Point, size float64) [4]geom.Point {
	h := size / 2
	return [4]geom.Point{
		{X: c.X - h, Y: c.Y - h},
		{X: c.X + h, Y: c.Y - h},
		{X: c.X + h, Y: c.Y + h},
		{X: c.X - h, Y: c.Y + h},
	}
}

// TileTriangle returns the triangle made of the tile's corners with corner
// omit (mod 4) left out.
func TileTriangle(c geom.Point, size float64, omit int) []geom.Point {
	corners := TileCorners(c, size)
	omit = ((omit % 4) + 4) % 4
	tri := make([]geom.Point, 0, 3)
	for i, p := range corners {
		if i != omit {
			tri = append(tri, p)
		}
	}
	return tri
}

// DiagonalPair returns the two quarter squares on one diagonal of the tile.
func DiagonalPair(c geom.Point, size float64, variant int) [2][]geom.Point {
	h := size / 2
	quarter := func(x, y float64) []geom.Point {
		return []geom.Point{{X: x, Y: y}, {X: x + h, Y: y}, {X: x + h, Y: y + h}, {X: x, Y: y + h}}
	}
	left, top := c.X-h, c.Y-h
	if variant%2 == 0 {
		return [2][]geom.Point{quarter(left, top), quarter(c.X, c.Y)}
	}
	return [2][]geom.Point{quarter(c.X, top), quarter(left, c.Y)}
}

func rotate(pts []geom.Point, c geom.Point, a float64) []geom.Point {
	if a == 0 {
		return pts
	}
	sin, cos := math.Sincos(a)
	out := make([]geom.Point, len(pts))
	for i, p := range pts {
		d := p.Sub(c)
		out[i] = geom.Pt(c.X+d.X*cos-d.Y*sin, c.Y+d.X*sin+d.Y*cos)
	}
	return out
}
