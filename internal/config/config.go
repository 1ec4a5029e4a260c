// Package config defines the typed settings of every sketch and loads them
// from JSON or YAML files.
//
// Each sketch category has its own struct with a Default constructor and a
// Validate method. A file only needs to name the values it changes: it is
// decoded on top of Default, so absent keys keep their defaults.
package config

import (
	"fmt"
	"math"

	"github.com/olivierh59500/sketchbook/internal/field"
	"github.com/olivierh59500/sketchbook/internal/grid"
	"github.com/olivierh59500/sketchbook/internal/particle"
)

// Config is the full settings file.
type Config struct {
	// Seed seeds both noise and randomness; 0 picks a fresh seed per run.
	Seed  int64  `json:"seed" yaml:"seed"`
	Noise string `json:"noise" yaml:"noise"`

	Diagonal  GridConfig      `json:"diagonal-tiling" yaml:"diagonal-tiling"`
	Joy       WaveConfig      `json:"joy-division" yaml:"joy-division"`
	Shapes    GridConfig      `json:"shape-tiling" yaml:"shape-tiling"`
	Squares   FractalConfig   `json:"recursive-squares" yaml:"recursive-squares"`
	Triangles FractalConfig   `json:"recursive-triangles" yaml:"recursive-triangles"`
	Sauron    BranchConfig    `json:"eye-of-sauron" yaml:"eye-of-sauron"`
	Bezier    CurveConfig     `json:"bezier-reveal" yaml:"bezier-reveal"`
	Flow      particle.Config `json:"flow-field" yaml:"flow-field"`
	Halftone  HalftoneConfig  `json:"halftone" yaml:"halftone"`
	Painting  PaintingConfig  `json:"black-painting" yaml:"black-painting"`
	Calico    CalicoConfig    `json:"calico" yaml:"calico"`
	Fold      FoldConfig      `json:"folding-grid" yaml:"folding-grid"`

	Gallery GalleryConfig `json:"gallery" yaml:"gallery"`
}

// Default returns the settings every sketch was designed with.
func Default() Config {
	return Config{
		Noise:     field.Perlin.String(),
		Diagonal:  GridConfig{Step: 10, Edge: grid.EdgeSkip.String()},
		Joy:       DefaultWave(),
		Shapes:    GridConfig{Step: 20, Edge: grid.EdgeSkip.String()},
		Squares:   DefaultSquares(),
		Triangles: DefaultTriangles(),
		Sauron:    DefaultBranch(),
		Bezier:    DefaultCurve(),
		Flow:      particle.DefaultConfig(),
		Halftone:  DefaultHalftone(),
		Painting:  DefaultPainting(),
		Calico:    DefaultCalico(),
		Fold:      DefaultFold(),
		Gallery:   DefaultGallery(),
	}
}

// Validate checks every section and reports the first problem found.
func (c Config) Validate() error {
	if _, ok := field.ParseBackend(c.Noise); !ok {
		return fmt.Errorf("%w: noise %q", ErrInvalidConfig, c.Noise)
	}
	checks := []struct {
		name string
		err  error
	}{
		{"diagonal-tiling", c.Diagonal.Validate()},
		{"joy-division", c.Joy.Validate()},
		{"shape-tiling", c.Shapes.Validate()},
		{"recursive-squares", c.Squares.Validate()},
		{"recursive-triangles", c.Triangles.Validate()},
		{"eye-of-sauron", c.Sauron.Validate()},
		{"bezier-reveal", c.Bezier.Validate()},
		{"flow-field", wrapParticle(c.Flow.Validate())},
		{"halftone", c.Halftone.Validate()},
		{"black-painting", c.Painting.Validate()},
		{"calico", c.Calico.Validate()},
		{"folding-grid", c.Fold.Validate()},
		{"gallery", c.Gallery.Validate()},
	}
	for _, ch := range checks {
		if ch.err != nil {
			return fmt.Errorf("%s: %w", ch.name, ch.err)
		}
	}
	return nil
}

// Backend returns the parsed noise backend.
func (c Config) Backend() field.Backend {
	b, _ := field.ParseBackend(c.Noise)
	return b
}

func wrapParticle(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
}

// GridConfig drives sketches that tile a region with uniform cells.
type GridConfig struct {
	Step float64 `json:"step" yaml:"step"`
	Edge string  `json:"edge" yaml:"edge"`
}

// Policy returns the parsed edge policy.
func (g GridConfig) Policy() grid.EdgePolicy {
	p, _ := grid.ParseEdgePolicy(g.Edge)
	return p
}

func (g GridConfig) Validate() error {
	if !positive(g.Step) {
		return fmt.Errorf("%w: step %v must be positive", ErrInvalidConfig, g.Step)
	}
	if _, ok := grid.ParseEdgePolicy(g.Edge); !ok {
		return fmt.Errorf("%w: edge %q", ErrInvalidConfig, g.Edge)
	}
	return nil
}

// WaveConfig drives stacked noise ridges.
type WaveConfig struct {
	Lines      int     `json:"lines" yaml:"lines"`
	Skip       int     `json:"skip" yaml:"skip"` // leading lines left out as a top margin
	Amplitude  float64 `json:"amplitude" yaml:"amplitude"`
	NoiseScale float64 `json:"noiseScale" yaml:"noiseScale"`
	XStep      float64 `json:"xStep" yaml:"xStep"`
	// Exponent narrows the envelope that confines displacement to the middle.
	Exponent float64 `json:"exponent" yaml:"exponent"`
}

func DefaultWave() WaveConfig {
	return WaveConfig{Lines: 19, Skip: 2, Amplitude: 50, NoiseScale: 0.1, XStep: 10, Exponent: 2.5}
}

func (w WaveConfig) Validate() error {
	switch {
	case w.Lines < 1:
		return fmt.Errorf("%w: lines %d", ErrInvalidConfig, w.Lines)
	case w.Skip < 0 || w.Skip >= w.Lines:
		return fmt.Errorf("%w: skip %d outside [0, %d)", ErrInvalidConfig, w.Skip, w.Lines)
	case !positive(w.XStep):
		return fmt.Errorf("%w: xStep %v must be positive", ErrInvalidConfig, w.XStep)
	case w.Amplitude < 0 || w.Exponent < 0 || !finite(w.NoiseScale):
		return fmt.Errorf("%w: amplitude, exponent and noiseScale must be finite and not negative", ErrInvalidConfig)
	}
	return nil
}

// FractalConfig drives recursive subdivision sketches.
type FractalConfig struct {
	Step          float64 `json:"step" yaml:"step"`
	Depth         int     `json:"depth" yaml:"depth"`
	MinDepth      int     `json:"minDepth" yaml:"minDepth"`
	MaxDepth      int     `json:"maxDepth" yaml:"maxDepth"`
	SizeReduction float64 `json:"sizeReduction" yaml:"sizeReduction"`
	Displacement  float64 `json:"displacement" yaml:"displacement"`
	Side          float64 `json:"side" yaml:"side"`
	Weight        float64 `json:"weight" yaml:"weight"`
}

func DefaultSquares() FractalConfig {
	return FractalConfig{Step: 30, MinDepth: 3, MaxDepth: 5, SizeReduction: 0.7, Displacement: 4, Weight: 0.5}
}

func DefaultTriangles() FractalConfig {
	return FractalConfig{Depth: 3, Displacement: 8, Side: 200, Weight: 0.5}
}

// MaxFractalDepth bounds recursion; triangles grow as 3^depth.
const MaxFractalDepth = 10

func (f FractalConfig) Validate() error {
	switch {
	case f.Step < 0 || f.Side < 0 || !finite(f.Step) || !finite(f.Side):
		return fmt.Errorf("%w: step and side must not be negative", ErrInvalidConfig)
	case f.Depth < 0 || f.MinDepth < 0 || f.MaxDepth < f.MinDepth:
		return fmt.Errorf("%w: depth range [%d, %d]", ErrInvalidConfig, f.MinDepth, f.MaxDepth)
	case f.Depth > MaxFractalDepth || f.MaxDepth > MaxFractalDepth:
		return fmt.Errorf("%w: depth %d and maxDepth %d must not exceed %d", ErrInvalidConfig, f.Depth, f.MaxDepth, MaxFractalDepth)
	case f.SizeReduction < 0 || f.SizeReduction >= 1:
		return fmt.Errorf("%w: sizeReduction %v outside [0, 1)", ErrInvalidConfig, f.SizeReduction)
	case f.Displacement < 0 || f.Weight < 0:
		return fmt.Errorf("%w: displacement and weight must not be negative", ErrInvalidConfig)
	}
	return nil
}

// BranchConfig drives the branch ring. Angles are in degrees.
type BranchConfig struct {
	InitialLength float64   `json:"initialLength" yaml:"initialLength"`
	AngleMin      float64   `json:"angleMin" yaml:"angleMin"`
	AngleMax      float64   `json:"angleMax" yaml:"angleMax"`
	LengthReduce  float64   `json:"lengthReduce" yaml:"lengthReduce"`
	MaxDepth      int       `json:"maxDepth" yaml:"maxDepth"`
	MinLength     float64   `json:"minLength" yaml:"minLength"`
	Prune         float64   `json:"prune" yaml:"prune"`
	Weights       []float64 `json:"weights" yaml:"weights"`

	Trees      int     `json:"trees" yaml:"trees"`
	TreeRadius float64 `json:"treeRadius" yaml:"treeRadius"`
	Jitter     float64 `json:"jitter" yaml:"jitter"`
	Core       float64 `json:"core" yaml:"core"` // diameter of the central disc
}

func DefaultBranch() BranchConfig {
	return BranchConfig{
		InitialLength: 20,
		AngleMin:      10,
		AngleMax:      20,
		LengthReduce:  0.9,
		MaxDepth:      8,
		MinLength:     2,
		Prune:         0.1,
		Weights:       []float64{1.5, 1.3, 1.1, 0.9, 0.7, 0.5, 0.3, 0.1},
		Trees:         30,
		TreeRadius:    10,
		Jitter:        0.3,
		Core:          30,
	}
}

func (b BranchConfig) Validate() error {
	switch {
	case !positive(b.InitialLength):
		return fmt.Errorf("%w: initialLength %v must be positive", ErrInvalidConfig, b.InitialLength)
	case b.AngleMin < 0 || b.AngleMax < b.AngleMin:
		return fmt.Errorf("%w: angle range [%v, %v]", ErrInvalidConfig, b.AngleMin, b.AngleMax)
	case !(b.LengthReduce > 0 && b.LengthReduce < 1):
		return fmt.Errorf("%w: lengthReduce %v outside (0, 1)", ErrInvalidConfig, b.LengthReduce)
	case b.MaxDepth < 1 || b.MaxDepth > 24:
		return fmt.Errorf("%w: maxDepth %d outside [1, 24]", ErrInvalidConfig, b.MaxDepth)
	case !positive(b.MinLength):
		return fmt.Errorf("%w: minLength %v must be positive", ErrInvalidConfig, b.MinLength)
	case b.Prune < 0 || b.Prune > 1:
		return fmt.Errorf("%w: prune %v outside [0, 1]", ErrInvalidConfig, b.Prune)
	case len(b.Weights) == 0:
		return fmt.Errorf("%w: empty weight table", ErrInvalidConfig)
	case b.Trees < 0 || b.TreeRadius < 0 || b.Jitter < 0 || b.Core < 0:
		return fmt.Errorf("%w: ring values must not be negative", ErrInvalidConfig)
	}
	return nil
}

// CurveConfig drives the Bézier reveal.
type CurveConfig struct {
	Points     [][2]float64 `json:"points" yaml:"points"`
	DurationMS int          `json:"durationMs" yaml:"durationMs"`
}

func DefaultCurve() CurveConfig {
	return CurveConfig{
		Points:     [][2]float64{{120, 120}, {120, 200}, {250, 200}, {250, 280}},
		DurationMS: 2000,
	}
}

func (c CurveConfig) Validate() error {
	if len(c.Points) < 2 {
		return fmt.Errorf("%w: a curve needs at least 2 control points, got %d", ErrInvalidConfig, len(c.Points))
	}
	if c.DurationMS <= 0 {
		return fmt.Errorf("%w: durationMs %d must be positive", ErrInvalidConfig, c.DurationMS)
	}
	return nil
}

// HalftoneConfig drives the image-to-dots sketch.
type HalftoneConfig struct {
	Image          string  `json:"image" yaml:"image"`
	MultiPass      bool    `json:"multiPass" yaml:"multiPass"`
	CoarseSpacing  float64 `json:"coarseSpacing" yaml:"coarseSpacing"`
	FineSpacing    float64 `json:"fineSpacing" yaml:"fineSpacing"`
	MaxRadius      float64 `json:"maxRadius" yaml:"maxRadius"`
	MaxBlackRadius float64 `json:"maxBlackRadius" yaml:"maxBlackRadius"`
	MinRadius      float64 `json:"minRadius" yaml:"minRadius"`
	Rotation       float64 `json:"rotation" yaml:"rotation"` // degrees
	// Threshold is "percentile" or "otsu".
	Threshold  string  `json:"threshold" yaml:"threshold"`
	Percentile float64 `json:"percentile" yaml:"percentile"`
	Lift       float64 `json:"lift" yaml:"lift"` // maximum flame displacement in pixels
}

func DefaultHalftone() HalftoneConfig {
	return HalftoneConfig{
		Image:          "golden_pavilion.jpg",
		MultiPass:      true,
		CoarseSpacing:  5,
		FineSpacing:    3,
		MaxRadius:      3,
		MaxBlackRadius: 3,
		MinRadius:      0.5,
		Rotation:       45,
		Threshold:      "percentile",
		Percentile:     0.75,
		Lift:           3,
	}
}

func (h HalftoneConfig) Validate() error {
	switch {
	case !positive(h.CoarseSpacing) || !positive(h.FineSpacing):
		return fmt.Errorf("%w: spacings must be positive", ErrInvalidConfig)
	case h.MaxRadius < 0 || h.MaxBlackRadius < 0 || h.MinRadius < 0 || h.Lift < 0:
		return fmt.Errorf("%w: radii must not be negative", ErrInvalidConfig)
	case h.Threshold != "percentile" && h.Threshold != "otsu":
		return fmt.Errorf("%w: threshold %q", ErrInvalidConfig, h.Threshold)
	case h.Percentile < 0 || h.Percentile > 1:
		return fmt.Errorf("%w: percentile %v outside [0, 1]", ErrInvalidConfig, h.Percentile)
	}
	return nil
}

// PaintingConfig drives the layered painting.
type PaintingConfig struct {
	Cols int `json:"cols" yaml:"cols"`
	Rows int `json:"rows" yaml:"rows"`
	// Palette holds one grey level per cell in row-major order; missing
	// cells reuse the palette cyclically.
	Palette         []int   `json:"palette" yaml:"palette"`
	Streaks         int     `json:"streaks" yaml:"streaks"`
	Speckles        int     `json:"speckles" yaml:"speckles"`
	MultiplyOpacity float64 `json:"multiplyOpacity" yaml:"multiplyOpacity"`
	SoftOpacity     float64 `json:"softOpacity" yaml:"softOpacity"`
}

func DefaultPainting() PaintingConfig {
	return PaintingConfig{
		Cols: 6,
		Rows: 6,
		Palette: []int{
			21, 75, 75, 75, 75, 21,
			21, 21, 40, 40, 21, 21,
			86, 86, 40, 40, 86, 86,
			86, 86, 40, 40, 86, 86,
			21, 21, 40, 40, 21, 21,
			21, 75, 75, 75, 75, 21,
		},
		Streaks:         70,
		Speckles:        2200,
		MultiplyOpacity: 150.0 / 255,
		SoftOpacity:     1,
	}
}

func (p PaintingConfig) Validate() error {
	switch {
	case p.Cols < 1 || p.Rows < 1:
		return fmt.Errorf("%w: grid %dx%d", ErrInvalidConfig, p.Cols, p.Rows)
	case len(p.Palette) == 0:
		return fmt.Errorf("%w: empty palette", ErrInvalidConfig)
	case !levels(p.Palette):
		return fmt.Errorf("%w: palette levels must lie in [0, 255]", ErrInvalidConfig)
	case p.Streaks < 0 || p.Speckles < 0:
		return fmt.Errorf("%w: streaks and speckles must not be negative", ErrInvalidConfig)
	case p.MultiplyOpacity < 0 || p.MultiplyOpacity > 1 || p.SoftOpacity < 0 || p.SoftOpacity > 1:
		return fmt.Errorf("%w: opacities must lie in [0, 1]", ErrInvalidConfig)
	}
	return nil
}

// RingConfig is one broken ring of the calico logo.
type RingConfig struct {
	Radius   float64 `json:"radius" yaml:"radius"`
	Position float64 `json:"position" yaml:"position"` // degrees, clockwise from east
	Gap      float64 `json:"gap" yaml:"gap"`           // chord length of the opening
}

// CalicoConfig drives the concentric broken rings.
type CalicoConfig struct {
	Rings  []RingConfig `json:"rings" yaml:"rings"`
	Weight float64      `json:"weight" yaml:"weight"`
}

func DefaultCalico() CalicoConfig {
	return CalicoConfig{
		Rings: []RingConfig{
			{Radius: 50, Position: 0, Gap: math.Pi * 50 / 2.25},
			{Radius: 100, Position: 60, Gap: 30},
			{Radius: 150, Position: 330, Gap: 45},
			{Radius: 200, Position: 240, Gap: 60},
		},
		Weight: 25,
	}
}

func (c CalicoConfig) Validate() error {
	if !positive(c.Weight) {
		return fmt.Errorf("%w: weight %v must be positive", ErrInvalidConfig, c.Weight)
	}
	for i, r := range c.Rings {
		if !finite(r.Radius) || !finite(r.Position) || !finite(r.Gap) {
			return fmt.Errorf("%w: ring %d is not finite", ErrInvalidConfig, i)
		}
		if r.Radius < 0 {
			return fmt.Errorf("%w: ring %d radius %v is negative", ErrInvalidConfig, i, r.Radius)
		}
	}
	return nil
}

// FoldConfig drives the folding grids.
type FoldConfig struct {
	Cols     int     `json:"cols" yaml:"cols"`
	Rows     int     `json:"rows" yaml:"rows"`
	GridSize int     `json:"gridSize" yaml:"gridSize"` // cells per side
	Margin   float64 `json:"margin" yaml:"margin"`
	// Folds holds one [column, row] pair per grid, in cells from the top-left
	// corner. A pair with a component of zero or less leaves that grid flat,
	// as do grids past the end of the list.
	Folds [][2]float64 `json:"folds" yaml:"folds"`
	// Mark is the length of one graphite mark in pixels.
	Mark   float64 `json:"mark" yaml:"mark"`
	Passes int     `json:"passes" yaml:"passes"`
	Skip   float64 `json:"skip" yaml:"skip"` // chance a mark is dropped
	Weight float64 `json:"weight" yaml:"weight"`
}

func DefaultFold() FoldConfig {
	return FoldConfig{
		Cols:     3,
		Rows:     2,
		GridSize: 26,
		Margin:   20,
		Folds:    [][2]float64{{0, 0}, {3, 7}, {12, 8}, {14, 20}, {24, 18}, {26, 26}},
		Mark:     3,
		Passes:   4,
		Skip:     0.15,
		Weight:   0.85,
	}
}

func (f FoldConfig) Validate() error {
	switch {
	case f.Cols < 1 || f.Rows < 1:
		return fmt.Errorf("%w: layout %dx%d", ErrInvalidConfig, f.Cols, f.Rows)
	case f.GridSize < 1:
		return fmt.Errorf("%w: gridSize %d must be positive", ErrInvalidConfig, f.GridSize)
	case !finite(f.Margin) || f.Margin < 0:
		return fmt.Errorf("%w: margin %v", ErrInvalidConfig, f.Margin)
	case !positive(f.Mark) || !positive(f.Weight):
		return fmt.Errorf("%w: mark and weight must be positive", ErrInvalidConfig)
	case f.Passes < 0:
		return fmt.Errorf("%w: passes %d must not be negative", ErrInvalidConfig, f.Passes)
	case f.Skip < 0 || f.Skip > 1:
		return fmt.Errorf("%w: skip %v outside [0, 1]", ErrInvalidConfig, f.Skip)
	}
	for i, fold := range f.Folds {
		if !finite(fold[0]) || !finite(fold[1]) {
			return fmt.Errorf("%w: fold %d is not finite", ErrInvalidConfig, i)
		}
	}
	return nil
}

// GalleryConfig holds viewer settings.
type GalleryConfig struct {
	Blocked []int   `json:"blocked" yaml:"blocked"`
	OutDir  string  `json:"outDir" yaml:"outDir"`
	Scale   float64 `json:"scale" yaml:"scale"`
	TPS     int     `json:"tps" yaml:"tps"`
}

func DefaultGallery() GalleryConfig {
	return GalleryConfig{Blocked: []int{34}, OutDir: ".", Scale: 1.5, TPS: 60}
}

func (g GalleryConfig) Validate() error {
	if !positive(g.Scale) {
		return fmt.Errorf("%w: scale %v must be positive", ErrInvalidConfig, g.Scale)
	}
	if g.TPS < 1 {
		return fmt.Errorf("%w: tps %d must be positive", ErrInvalidConfig, g.TPS)
	}
	return nil
}

func levels(vs []int) bool {
	for _, v := range vs {
		if v < 0 || v > 255 {
			return false
		}
	}
	return true
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
