package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/olivierh59500/sketchbook/internal/config"
	"github.com/olivierh59500/sketchbook/internal/sketch"
)

func main() {
	configPath := flag.String("config", "", "settings file (.yaml or .json)")
	assetDir := flag.String("assets", "assets", "directory holding sketch images")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}

	g, err := NewGallery(sketch.Default(), cfg, *configPath, *assetDir)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetTPS(cfg.Gallery.TPS)

	// Run the game loop
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
