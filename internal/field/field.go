// Package field samples the coordinate-driven values sketches use to choose
// shapes, displacements, colours and directions.
//
// A Sampler combines a coherent noise source, where nearby coordinates give
// nearby values, with an independent uniform random stream. Each half is
// seeded on its own so a sketch can, for example, keep its noise field fixed
// while re-rolling jitter. A seed of zero selects a fresh time-based seed;
// Seeds reports the values actually used.
package field

import (
	"math"
	"math/rand"
	"time"
)

// Backend selects the coherent noise implementation.
type Backend int

const (
	Perlin Backend = iota
	Simplex
)

func (b Backend) String() string {
	switch b {
	case Perlin:
		return "perlin"
	case Simplex:
		return "simplex"
	default:
		return "unknown"
	}
}

// ParseBackend maps a configuration name onto a Backend. The empty string
// selects Perlin.
func ParseBackend(name string) (Backend, bool) {
	switch name {
	case "", "perlin":
		return Perlin, true
	case "simplex", "opensimplex":
		return Simplex, true
	}
	return Perlin, false
}

// source is a 3D coherent noise function with output in [0,1].
type source interface {
	eval(x, y, z float64) float64
}

// Vector is a direction and strength derived from the field.
type Vector struct {
	Angle     float64
	Magnitude float64
}

// SampleResult is everything the field yields for one coordinate.
type SampleResult struct {
	Scalar    float64
	Vector    Vector
	HasVector bool
	Color     [3]float64
	HasColor  bool
}

// Decorrelation offsets for the secondary lookups in Sample.
const (
	magnitudeOffset = 1000
	greenOffset     = 100
	blueOffset      = 200
)

// Sampler is a seeded noise and random source. It is not safe for
// concurrent use; each render loop owns its own.
type Sampler struct {
	backend    Backend
	noise      source
	rng        *rand.Rand
	noiseSeed  int64
	randomSeed int64
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithSeed fixes both the noise and the random seed.
func WithSeed(seed int64) Option {
	return func(s *Sampler) {
		s.noiseSeed = seed
		s.randomSeed = seed
	}
}

// WithNoiseSeed fixes only the noise seed.
func WithNoiseSeed(seed int64) Option {
	return func(s *Sampler) { s.noiseSeed = seed }
}

// WithRandomSeed fixes only the random seed.
func WithRandomSeed(seed int64) Option {
	return func(s *Sampler) { s.randomSeed = seed }
}

// WithBackend selects the noise implementation.
func WithBackend(b Backend) Option {
	return func(s *Sampler) { s.backend = b }
}

// New returns a Sampler. Without seed options every run differs.
func New(opts ...Option) *Sampler {
	s := &Sampler{}
	for _, o := range opts {
		o(s)
	}
	s.NoiseSeed(s.noiseSeed)
	s.RandomSeed(s.randomSeed)
	return s
}

// Seeds returns the noise and random seeds in effect.
func (s *Sampler) Seeds() (noise, random int64) {
	return s.noiseSeed, s.randomSeed
}

// Backend returns the noise implementation in use.
func (s *Sampler) Backend() Backend {
	return s.backend
}

// NoiseSeed reseeds the noise source. Zero picks a fresh seed.
func (s *Sampler) NoiseSeed(seed int64) {
	if seed == 0 {
		seed = freshSeed() ^ 0x5eed
	}
	s.noiseSeed = seed
	switch s.backend {
	case Simplex:
		s.noise = newSimplex(seed)
	default:
		s.noise = newPerlin(seed)
	}
}

// RandomSeed reseeds the uniform random stream. Zero picks a fresh seed.
func (s *Sampler) RandomSeed(seed int64) {
	if seed == 0 {
		seed = freshSeed()
	}
	s.randomSeed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

func freshSeed() int64 {
	for {
		if v := time.Now().UnixNano(); v != 0 {
			return v
		}
	}
}

// Noise returns coherent noise at (x, y) in [0,1].
func (s *Sampler) Noise(x, y float64) float64 {
	return s.Noise3(x, y, 0)
}

// Noise3 returns coherent noise at (x, y, z) in [0,1]. Non-finite input
// yields 0.5 so it cannot leak into drawing calls.
func (s *Sampler) Noise3(x, y, z float64) float64 {
	if math.IsNaN(x+y+z) || math.IsInf(x+y+z, 0) {
		return 0.5
	}
	v := s.noise.eval(x, y, z)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// NoiseOffset returns Noise(x, y+offset). Sketches pass a row or tile index
// as offset to decorrelate neighbouring rows that share a y coordinate scale.
func (s *Sampler) NoiseOffset(x, y float64, offset int) float64 {
	return s.Noise3(x, y+float64(offset), 0)
}

// Sample evaluates the field at (x, y, z). The scalar doubles as the vector
// angle over a full turn; magnitude and colour come from decorrelated
// lookups of the same field.
func (s *Sampler) Sample(x, y, z float64) SampleResult {
	v := s.Noise3(x, y, z)
	return SampleResult{
		Scalar: v,
		Vector: Vector{
			Angle:     v * 2 * math.Pi,
			Magnitude: s.Noise3(x+magnitudeOffset, y+magnitudeOffset, z),
		},
		HasVector: true,
		Color: [3]float64{
			v,
			s.Noise3(x+greenOffset, y+greenOffset, z),
			s.Noise3(x+blueOffset, y+blueOffset, z),
		},
		HasColor: true,
	}
}

// Random returns a uniform value in [min, max).
func (s *Sampler) Random(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// Float returns a uniform value in [0, 1).
func (s *Sampler) Float() float64 {
	return s.rng.Float64()
}

// Intn returns a uniform int in [0, n). n <= 0 yields 0.
func (s *Sampler) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rng.Intn(n)
}

// Chance reports true with probability p.
func (s *Sampler) Chance(p float64) bool {
	return s.rng.Float64() < p
}

// Gaussian returns a normally distributed value.
func (s *Sampler) Gaussian(mean, sd float64) float64 {
	return mean + s.rng.NormFloat64()*sd
}

// Shuffle permutes n elements uniformly with a Fisher-Yates pass; swap
// exchanges elements i and j.
func (s *Sampler) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		swap(i, j)
	}
}
