package main

import (
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/sketchbook/internal/config"
	"github.com/olivierh59500/sketchbook/internal/export"
	"github.com/olivierh59500/sketchbook/internal/gallery"
	"github.com/olivierh59500/sketchbook/internal/sketch"
)

// Gallery keys
var digitKeys = [10]ebiten.Key{
	ebiten.KeyDigit0, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4,
	ebiten.KeyDigit5, ebiten.KeyDigit6, ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

var pausedColor = color.RGBA{200, 30, 30, 255}

// Gallery shows one sketch at a time and steps it once per tick.
type Gallery struct {
	Registry   *sketch.Registry
	Nav        *gallery.Navigator
	Config     config.Config
	ConfigPath string
	AssetDir   string
	Paused     bool

	session *sketch.Session
	screen  *ebiten.Image // sketch-sized backing image
	last    time.Time
}

// NewGallery opens the sketch with the highest id.
func NewGallery(reg *sketch.Registry, cfg config.Config, configPath, assetDir string) (*Gallery, error) {
	nav, err := gallery.NewNavigator(reg.IDs(), cfg.Gallery.Blocked)
	if err != nil {
		return nil, err
	}
	g := &Gallery{
		Registry:   reg,
		Nav:        nav,
		Config:     cfg,
		ConfigPath: configPath,
		AssetDir:   assetDir,
	}
	if err := g.open(nav.Current()); err != nil {
		return nil, err
	}
	return g, nil
}

// open replaces the current session with a fresh one for id.
func (g *Gallery) open(id int) error {
	s, err := g.Registry.New(id)
	if err != nil {
		return err
	}
	session, err := sketch.NewSession(s, sketch.Options{Config: g.Config, AssetDir: g.AssetDir})
	if err != nil {
		return err
	}
	for _, w := range session.Warnings() {
		log.Printf("sketch %d: %v", id, w)
	}

	info := session.Info()
	if g.screen == nil || g.screen.Bounds().Dx() != info.Width || g.screen.Bounds().Dy() != info.Height {
		g.screen = ebiten.NewImage(info.Width, info.Height)
	}
	g.session = session
	g.last = time.Time{}

	scale := g.Config.Gallery.Scale
	ebiten.SetWindowSize(int(float64(info.Width)*scale), int(float64(info.Height)*scale))
	ebiten.SetWindowTitle(info.Title)

	noise, random := session.Seeds()
	log.Printf("showing %d %s (noise seed %d, random seed %d)", info.ID, info.Name, noise, random)
	return nil
}

// Update is called each tick by Ebitengine
func (g *Gallery) Update() error {
	g.handleInput()

	if g.Paused || g.session.Done() {
		g.last = time.Time{}
		return nil
	}

	now := time.Now()
	dt := time.Second / time.Duration(ebiten.TPS())
	if !g.last.IsZero() {
		dt = now.Sub(g.last)
	}
	g.last = now

	if err := g.session.Step(dt); err != nil {
		info := g.session.Info()
		log.Printf("sketch %d %s: %v", info.ID, info.Name, err)
	}
	return nil
}

// Draw is called each frame by Ebitengine
func (g *Gallery) Draw(screen *ebiten.Image) {
	g.screen.WritePixels(g.session.Image().Pix)
	screen.DrawImage(g.screen, nil)

	if g.Paused {
		vector.DrawFilledRect(screen, 6, 6, 4, 12, pausedColor, false)
		vector.DrawFilledRect(screen, 13, 6, 4, 12, pausedColor, false)
	}
}

// Layout returns the size of the current sketch; the window scales it.
func (g *Gallery) Layout(outsideWidth, outsideHeight int) (int, int) {
	info := g.session.Info()
	return info.Width, info.Height
}

// handleInput processes keyboard input
func (g *Gallery) handleInput() {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.show(g.Nav.Next())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.show(g.Nav.Prev())
	}
	for d, key := range digitKeys {
		if inpututil.IsKeyJustPressed(key) && g.Nav.Jump(d) {
			g.show(d)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.Paused = !g.Paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reseed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.saveConfig()
	}
}

func (g *Gallery) show(id int) {
	if err := g.open(id); err != nil {
		log.Printf("open sketch %d: %v", id, err)
	}
}

// save writes the current canvas as <name>.png
func (g *Gallery) save() {
	info := g.session.Info()
	path := export.FileName(g.Config.Gallery.OutDir, info.Name, ".png")
	if err := export.WritePNG(path, g.session.Image()); err != nil {
		log.Printf("save: %v", err)
		return
	}
	log.Printf("saved %s", path)
}

// reseed restarts the current sketch with fresh seeds
func (g *Gallery) reseed() {
	seed := g.Config.Seed
	g.Config.Seed = 0
	g.show(g.Nav.Current())
	g.Config.Seed = seed
}

// reload rereads the settings file and restarts the current sketch
func (g *Gallery) reload() {
	if g.ConfigPath == "" {
		return
	}
	cfg, err := config.Load(g.ConfigPath)
	if err != nil {
		log.Printf("reload: %v", err)
		return
	}
	g.Config = cfg
	g.show(g.Nav.Current())
}

// saveConfig writes the settings in use back to the settings file
func (g *Gallery) saveConfig() {
	path := g.ConfigPath
	if path == "" {
		path = "sketchbook.yaml"
	}
	if err := config.Save(path, g.Config); err != nil {
		log.Printf("save config: %v", err)
		return
	}
	log.Printf("saved %s", path)
}
