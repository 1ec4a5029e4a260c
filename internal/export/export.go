// Package export writes rendered sketches to disk: single frames as PNG,
// animations as APNG and recorded drawings as SVG.
package export

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/setanarut/apng"

	"github.com/olivierh59500/sketchbook/internal/canvas"
)

// ErrNoFrames indicates an animation export with nothing to write.
var ErrNoFrames = errors.New("export: no frames")

// FrameDelay is the APNG delay between frames, in hundredths of a second.
const FrameDelay = 4

// PNG encodes img to w.
func PNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	return nil
}

// WritePNG saves img at path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	return nil
}

// APNG saves frames as an animated PNG at path.
func APNG(path string, frames []image.Image) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	// apng.Save reports nothing, so the file must be new to count as written.
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("export: replace %s: %w", path, err)
	}
	apng.Save(path, frames, FrameDelay)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("export: write %s: empty file", path)
	}
	return nil
}

// WriteSVG saves the recorded drawing at path.
func WriteSVG(path string, rec *canvas.Recorder) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := rec.WriteSVG(f); err != nil {
		f.Close()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}

// FileName joins dir, name and ext into an output path.
func FileName(dir, name, ext string) string {
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, name+ext)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("export: create %s: %w", dir, err)
	}
	return nil
}
