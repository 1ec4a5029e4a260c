package particle

import "fmt"

// Config holds the tunables of a flow-field particle system.
type Config struct {
	GridScale     float64 `json:"gridScale" yaml:"gridScale"`         // cell size in pixels
	NoiseStep     float64 `json:"noiseStep" yaml:"noiseStep"`         // noise distance between neighbouring cells
	ZStep         float64 `json:"zStep" yaml:"zStep"`                 // per-frame evolution of the field
	MagnitudeStep float64 `json:"magnitudeStep" yaml:"magnitudeStep"` // per-frame drift of force strength and of the xy offset
	MaxSpeed      float64 `json:"maxSpeed" yaml:"maxSpeed"`

	Initial     int `json:"initial" yaml:"initial"`
	Min         int `json:"min" yaml:"min"`
	ShrinkAbove int `json:"shrinkAbove" yaml:"shrinkAbove"`
	Max         int `json:"max" yaml:"max"`

	GrowChance  float64 `json:"growChance" yaml:"growChance"`
	SpawnScale  float64 `json:"spawnScale" yaml:"spawnScale"`   // noise multiplier for the number spawned
	ShrinkBatch float64 `json:"shrinkBatch" yaml:"shrinkBatch"` // upper bound of the number removed

	// Colour channel ceilings; each channel is noise times its ceiling.
	Red   float64 `json:"red" yaml:"red"`
	Green float64 `json:"green" yaml:"green"`
	Blue  float64 `json:"blue" yaml:"blue"`

	// ShowField draws the vectors on a white background instead of trails.
	ShowField bool `json:"showField" yaml:"showField"`
}

// DefaultConfig returns the settings of the flow-field sketch.
func DefaultConfig() Config {
	return Config{
		GridScale:     10,
		NoiseStep:     0.1,
		ZStep:         0.005,
		MagnitudeStep: 0.0005,
		MaxSpeed:      2,
		Initial:       500,
		Min:           500,
		ShrinkAbove:   3000,
		Max:           3500,
		GrowChance:    0.5,
		SpawnScale:    30,
		ShrinkBatch:   20,
		Red:           30,
		Green:         150,
		Blue:          255,
	}
}

// Validate reports the first field that makes the population bounds or the
// grid impossible.
func (c Config) Validate() error {
	switch {
	case !(c.GridScale > 0):
		return fmt.Errorf("%w: gridScale %v must be positive", ErrInvalidConfig, c.GridScale)
	case c.MaxSpeed < 0:
		return fmt.Errorf("%w: maxSpeed %v is negative", ErrInvalidConfig, c.MaxSpeed)
	case c.Min < 0:
		return fmt.Errorf("%w: min %d is negative", ErrInvalidConfig, c.Min)
	case c.Min > c.Max:
		return fmt.Errorf("%w: min %d exceeds max %d", ErrInvalidConfig, c.Min, c.Max)
	case c.Initial < c.Min || c.Initial > c.Max:
		return fmt.Errorf("%w: initial %d outside [%d, %d]", ErrInvalidConfig, c.Initial, c.Min, c.Max)
	case c.ShrinkAbove < c.Min || c.ShrinkAbove > c.Max:
		return fmt.Errorf("%w: shrinkAbove %d outside [%d, %d]", ErrInvalidConfig, c.ShrinkAbove, c.Min, c.Max)
	case c.GrowChance < 0 || c.GrowChance > 1:
		return fmt.Errorf("%w: growChance %v outside [0, 1]", ErrInvalidConfig, c.GrowChance)
	case c.SpawnScale < 0 || c.ShrinkBatch < 0:
		return fmt.Errorf("%w: spawnScale and shrinkBatch must not be negative", ErrInvalidConfig)
	}
	return nil
}
