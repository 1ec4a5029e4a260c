package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olivierh59500/sketchbook/internal/config"
	"github.com/olivierh59500/sketchbook/internal/sketch"
)

func TestRunStdoutNeedsOneSketch(t *testing.T) {
	cfg := config.Default()
	err := run(context.Background(), sketch.Default(), cfg, options{out: "-"})
	assert.Error(t, err)
	err = run(context.Background(), sketch.Default(), cfg, options{out: "-", sketch: "4", svg: true})
	assert.Error(t, err)
}

func TestRunWritesFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Seed = 5
	o := options{out: dir, sketch: "diagonal-tiling", svg: true}
	require.NoError(t, run(context.Background(), sketch.Default(), cfg, o))

	for _, name := range []string{"diagonal-tiling.png", "diagonal-tiling.svg"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size())
	}
}
