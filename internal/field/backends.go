package field

import (
	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Perlin parameters: alpha is the weight falloff between octaves, beta the
// frequency step and octaves the number of summed layers.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 4
)

// Gradient noise is exactly zero on the integer lattice. Shifting each axis
// by an irrational amount keeps integer inputs, and their multiples by beta
// in later octaves, off it.
const (
	latticeShiftX = 0.6180339887498949 // φ - 1
	latticeShiftY = 0.4142135623730951 // √2 - 1
	latticeShiftZ = 0.7320508075688772 // √3 - 1
)

type perlinSource struct {
	p *perlin.Perlin
}

func newPerlin(seed int64) perlinSource {
	return perlinSource{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
}

// go-perlin answers in roughly [-1,1]; fold it onto [0,1].
func (s perlinSource) eval(x, y, z float64) float64 {
	return (s.p.Noise3D(x+latticeShiftX, y+latticeShiftY, z+latticeShiftZ) + 1) / 2
}

type simplexSource struct {
	n opensimplex.Noise
}

func newSimplex(seed int64) simplexSource {
	return simplexSource{n: opensimplex.NewNormalized(seed)}
}

func (s simplexSource) eval(x, y, z float64) float64 {
	return s.n.Eval3(x, y, z)
}
