package shape

import (
	"math"

	"github.com/olivierh59500/sketchbook/internal/canvas"
	"github.com/olivierh59500/sketchbook/internal/geom"
)

// Spread floors keep deep branches from collapsing onto their parent.
const (
	minSpreadFloor = 5.0
	maxSpreadFloor = 10.0
	// pruneFreeDepth is the number of levels that always grow both children.
	pruneFreeDepth = 3
)

// BranchConfig parameterises recursive branch growth. Angles are in degrees.
type BranchConfig struct {
	AngleMin, AngleMax float64
	// LengthReduce scales each child's length; it must be below 1.
	LengthReduce float64
	// MaxDepth is the number of levels drawn; the trunk is level 0.
	MaxDepth int
	// MinLength stops growth once a branch gets shorter than it.
	MinLength float64
	// Weights holds the stroke weight per level. Levels past the end of the
	// table reuse its last entry.
	Weights []float64
	// Prune is the chance that a child past the first levels is not grown.
	Prune float64
	Style canvas.Style
}

// DrawBranch grows a tree from origin along heading (radians, 0 pointing
// up) and returns the number of segments drawn. Growth stops when a branch
// reaches MaxDepth or its length falls below MinLength, so the count never
// exceeds 2^MaxDepth - 1. A nil r draws the unperturbed tree.
func DrawBranch(p canvas.Painter, origin geom.Point, heading, length float64, cfg BranchConfig, r Rand) int {
	if r == nil {
		r = midpoint{}
	}
	return branch(p, origin, heading, length, 0, cfg, r)
}

func branch(p canvas.Painter, origin geom.Point, heading, length float64, depth int, cfg BranchConfig, r Rand) int {
	if depth >= cfg.MaxDepth || length < cfg.MinLength || length <= 0 || !geom.Finite(heading, length) || !origin.Finite() {
		return 0
	}

	dir := geom.Pt(math.Sin(heading), -math.Cos(heading))
	drawn := origin.Add(dir.Scale(length * r.Random(0.95, 1.05)))
	st := cfg.Style
	st.Weight = weightAt(cfg.Weights, depth, st.Weight) * r.Random(0.9, 1.1)
	p.Line(origin.X, origin.Y, drawn.X, drawn.Y, st)
	n := 1

	tip := origin.Add(dir.Scale(length))
	reduction := float64(depth) * r.Random(1.5, 2.5)
	lo := math.Max(cfg.AngleMin-reduction, minSpreadFloor)
	hi := math.Max(cfg.AngleMax-reduction, maxSpreadFloor)

	left := -r.Random(lo, hi) * r.Random(0.8, 1.2)
	right := r.Random(lo, hi) * r.Random(0.8, 1.2)
	leftLen := length * cfg.LengthReduce * r.Random(0.8, 1.2)
	rightLen := length * cfg.LengthReduce * r.Random(0.8, 1.2)

	if depth < pruneFreeDepth || r.Float() >= cfg.Prune {
		n += branch(p, tip, heading+geom.Radians(left), leftLen, depth+1, cfg, r)
	}
	if depth < pruneFreeDepth || r.Float() >= cfg.Prune {
		n += branch(p, tip, heading+geom.Radians(right), rightLen, depth+1, cfg, r)
	}
	return n
}

func weightAt(table []float64, depth int, fallback float64) float64 {
	if len(table) == 0 {
		return fallback
	}
	if depth >= len(table) {
		return table[len(table)-1]
	}
	return table[depth]
}

// midpoint is the jitter-free Rand: every range yields its centre and no
// branch is pruned.
type midpoint struct{}

func (midpoint) Random(min, max float64) float64 { return (min + max) / 2 }
func (midpoint) Float() float64                  { return 1 }
