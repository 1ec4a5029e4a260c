package config

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/sketchbook/internal/field"
	"github.com/olivierh59500/sketchbook/internal/grid"
	"github.com/olivierh59500/sketchbook/internal/particle"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
	assert.Equal(t, field.Perlin, Default().Backend())
	assert.Equal(t, grid.EdgeSkip, Default().Diagonal.Policy())
	assert.Len(t, DefaultPainting().Palette, 36)
	assert.Len(t, DefaultBranch().Weights, DefaultBranch().MaxDepth)
}

func TestLoadYAMLOverlaysDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "flow.yaml"))
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, field.Simplex, cfg.Backend())
	assert.Equal(t, 800, cfg.Flow.Initial)
	assert.Equal(t, 2000, cfg.Flow.Max)
	assert.Equal(t, 2.0, cfg.Flow.MaxSpeed, "untouched keys keep defaults")
	assert.Equal(t, 20.0, cfg.Diagonal.Step)
	assert.Equal(t, grid.EdgeClip, cfg.Diagonal.Policy())
	assert.Equal(t, []int{34, 9}, cfg.Gallery.Blocked)
	assert.Equal(t, DefaultBranch(), cfg.Sauron)
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "painting.json"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Painting.Cols)
	assert.Equal(t, []int{21, 40, 86}, cfg.Painting.Palette)
	assert.Equal(t, 0.5, cfg.Painting.MultiplyOpacity)
	assert.Equal(t, 1.0, cfg.Painting.SoftOpacity)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		path string
		want error
	}{
		{"bad.yaml", ErrInvalidConfig},
		{"typo.yaml", ErrInvalidConfig},
		{"flow.toml", ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := Load(filepath.Join("testdata", tt.path))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := Load(filepath.Join("testdata", "missing.json"))
	require.Error(t, err)
}

func TestDecodeEmptyDocument(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""), YAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	want := Default()
	want.Seed = 99
	want.Joy.Lines = 12
	for _, name := range []string{"out.json", "out.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, Save(path, want))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
	assert.ErrorIs(t, Save(filepath.Join(dir, "out.txt"), want), ErrUnsupportedFormat)
}

func TestValidateSections(t *testing.T) {
	tests := map[string]func(*Config){
		"noise":         func(c *Config) { c.Noise = "worley" },
		"grid step":     func(c *Config) { c.Shapes.Step = 0 },
		"edge":          func(c *Config) { c.Diagonal.Edge = "wrap" },
		"wave skip":     func(c *Config) { c.Joy.Skip = 19 },
		"reduction":     func(c *Config) { c.Squares.SizeReduction = 1 },
		"depth range":   func(c *Config) { c.Squares.MinDepth = 9 },
		"square depth":  func(c *Config) { c.Squares.MaxDepth = MaxFractalDepth + 1 },
		"tri depth":     func(c *Config) { c.Triangles.Depth = 40 },
		"branch depth":  func(c *Config) { c.Sauron.MaxDepth = 0 },
		"curve":         func(c *Config) { c.Bezier.Points = c.Bezier.Points[:1] },
		"population":    func(c *Config) { c.Flow.Min = c.Flow.Max + 1 },
		"threshold":     func(c *Config) { c.Halftone.Threshold = "mean" },
		"opacity":       func(c *Config) { c.Painting.SoftOpacity = 2 },
		"ring radius":   func(c *Config) { c.Calico.Rings[1].Radius = -5 },
		"ring gap":      func(c *Config) { c.Calico.Rings[0].Gap = math.NaN() },
		"fold layout":   func(c *Config) { c.Fold.Cols = 0 },
		"fold cells":    func(c *Config) { c.Fold.GridSize = 0 },
		"fold pair":     func(c *Config) { c.Fold.Folds[2][0] = math.Inf(1) },
		"gallery scale": func(c *Config) { c.Gallery.Scale = 0 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDecodeRejectsDeepRecursion(t *testing.T) {
	_, err := Decode(strings.NewReader("recursive-triangles: {depth: 40}"), YAML)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg, err := Decode(strings.NewReader("recursive-triangles: {depth: 10}"), YAML)
	require.NoError(t, err)
	assert.Equal(t, MaxFractalDepth, cfg.Triangles.Depth)
}

func TestParticleErrorsKeepTheirCause(t *testing.T) {
	c := Default()
	c.Flow.Min = c.Flow.Max + 1
	err := c.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, err, particle.ErrInvalidConfig)
}

func TestDecodeDegenerateGeometry(t *testing.T) {
	src := `
calico:
  rings: [{radius: 0, position: 90, gap: 30}, {radius: 4, position: 0, gap: 500}]
folding-grid:
  folds: [[0, 9], [-2, -2]]
`
	cfg, err := Decode(strings.NewReader(src), YAML)
	require.NoError(t, err, "empty rings and zero folds are drawable, not invalid")
	assert.Len(t, cfg.Calico.Rings, 2)
	assert.Equal(t, [2]float64{0, 9}, cfg.Fold.Folds[0])
	assert.Equal(t, 26, cfg.Fold.GridSize, "absent keys keep their defaults")
}
