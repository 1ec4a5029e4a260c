// Command sketchrender renders sketches without a window and writes them as
// PNG, SVG or animated PNG files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/olivierh59500/sketchbook/internal/config"
	"github.com/olivierh59500/sketchbook/internal/export"
	"github.com/olivierh59500/sketchbook/internal/sketch"
)

type options struct {
	list       bool
	sketch     string
	out        string
	svg        bool
	apng       bool
	frames     int
	capture    int
	seed       int64
	configPath string
	assetDir   string
	verbose    bool
}

func main() {
	log.SetPrefix("sketchrender: ")
	log.SetFlags(0)

	var o options
	flag.BoolVar(&o.list, "list", false, "list the available sketches and exit")
	flag.StringVar(&o.sketch, "sketch", "", "sketch id or name; empty renders every sketch")
	flag.StringVar(&o.out, "out", ".", "output directory; - streams one PNG to stdout")
	flag.BoolVar(&o.svg, "svg", false, "also write an SVG of the final frame")
	flag.BoolVar(&o.apng, "apng", false, "write animated sketches as APNG")
	flag.IntVar(&o.frames, "frames", 0, "frame cap; 0 uses the sketch default")
	flag.IntVar(&o.capture, "capture", 5, "keep every nth frame in the APNG")
	flag.Int64Var(&o.seed, "seed", 0, "seed for noise and randomness; 0 picks a fresh one")
	flag.StringVar(&o.configPath, "config", "", "settings file (.yaml or .json)")
	flag.StringVar(&o.assetDir, "assets", "assets", "directory holding sketch images")
	flag.BoolVar(&o.verbose, "v", false, "log progress")
	flag.Parse()

	reg := sketch.Default()
	if o.list {
		for _, info := range reg.Infos() {
			fmt.Printf("%3d  %-20s %dx%d  %s\n", info.ID, info.Name, info.Width, info.Height, info.Title)
		}
		return
	}

	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			log.Fatal(err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Seed = o.seed
		}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, reg, cfg, o); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, reg *sketch.Registry, cfg config.Config, o options) error {
	if o.out == "-" && (strings.TrimSpace(o.sketch) == "" || o.svg || o.apng) {
		return errors.New("-out - needs -sketch and writes a single PNG")
	}
	var targets []sketch.Sketch
	if strings.TrimSpace(o.sketch) != "" {
		s, err := reg.Lookup(o.sketch)
		if err != nil {
			return err
		}
		targets = append(targets, s)
	} else {
		for _, id := range reg.IDs() {
			s, err := reg.New(id)
			if err != nil {
				return err
			}
			targets = append(targets, s)
		}
	}

	var failed []error
	for _, s := range targets {
		if err := render(ctx, s, cfg, o); err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			info := s.Info()
			log.Printf("%d %s: %v", info.ID, info.Name, err)
			failed = append(failed, err)
		}
	}
	return errors.Join(failed...)
}

func render(ctx context.Context, s sketch.Sketch, cfg config.Config, o options) error {
	info := s.Info()
	opts := sketch.RunOptions{
		Options: sketch.Options{
			Config:   cfg,
			Record:   o.svg,
			AssetDir: o.assetDir,
		},
		MaxFrames: o.frames,
	}
	if o.apng && info.Animated {
		opts.CaptureEvery = max(o.capture, 1)
	}
	if o.verbose {
		opts.Progress = func(n int) {
			if n%50 == 0 {
				log.Printf("%s: frame %d", info.Name, n)
			}
		}
	}

	res, err := sketch.Run(ctx, s, opts)
	if err != nil {
		return err
	}
	for _, w := range res.Warnings {
		log.Printf("%s: warning: %v", info.Name, w)
	}

	if o.out == "-" {
		if err := export.PNG(os.Stdout, res.Image); err != nil {
			return err
		}
		log.Printf("%d %s: %d frames, noise seed %d, random seed %d", info.ID, info.Name, res.FrameCount, res.NoiseSeed, res.RandomSeed)
		return nil
	}

	base := filepath.Join(o.out, info.Name)
	var written []string
	path := base + ".png"
	if err := export.WritePNG(path, res.Image); err != nil {
		return err
	}
	written = append(written, path)

	if res.Recorder != nil {
		path := base + ".svg"
		if err := export.WriteSVG(path, res.Recorder); err != nil {
			return err
		}
		written = append(written, path)
	}
	if len(res.Frames) > 0 {
		path := base + ".apng"
		if err := export.APNG(path, res.Frames); err != nil {
			return err
		}
		written = append(written, path)
	}

	fmt.Printf("%d %s: %d frames, noise seed %d, random seed %d -> %s\n",
		info.ID, info.Name, res.FrameCount, res.NoiseSeed, res.RandomSeed, strings.Join(written, ", "))
	return nil
}
