package main

import (
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/spacehole-rogue/nebula_nexus/internal/config"
	"github.com/spacehole-rogue/nebula_nexus/internal/content"
	"github.com/spacehole-rogue/nebula_nexus/internal/game"
	"github.com/spacehole-rogue/nebula_nexus/internal/logger"
	"github.com/spacehole-rogue/nebula_nexus/internal/render"
	"github.com/spacehole-rogue/nebula_nexus/internal/world"
)

const (
	screenWidth  = 1280
	screenHeight = 720
	title        = "Nebula Nexus"

	cellWidth  = 16
	cellHeight = 16
	gridCols   = screenWidth / cellWidth   // 80
	gridRows   = screenHeight / cellHeight // 45

	// Arena origin in pixels; the 600x400 field sits centred below the HUD.
	arenaX = (screenWidth - 600) / 2
	arenaY = 150

	shakeAmplitude = 6.0
)

// Game is the Ebitengine game struct. It owns rendering and input.
// All gameplay state lives in orch.
type Game struct {
	atlas    *render.FontAtlas
	renderer *render.GridRenderer
	buffer   *render.CellBuffer
	arena    *render.ArenaPainter
	controls *controls
	orch     *game.Orchestrator
	frame    uint64
}

func NewGame(orch *game.Orchestrator) *Game {
	atlas := render.NewFontAtlas()
	renderer := render.NewGridRenderer(atlas, cellWidth, cellHeight)
	g := &Game{
		atlas:    atlas,
		renderer: renderer,
		buffer:   render.NewCellBuffer(gridCols, gridRows),
		arena:    &render.ArenaPainter{Grid: renderer, X: arenaX, Y: arenaY},
		controls: newControls(),
		orch:     orch,
	}
	g.drawScreen()
	return g
}

func (g *Game) Update() error {
	if g.orch.Phase() == game.PhaseMenu && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	g.orch.Update(g.controls.poll())
	g.frame++
	g.drawScreen()
	return nil
}

// shakeOffset jitters the frame while a shake pulse runs.
func (g *Game) shakeOffset() (float64, float64) {
	if !g.orch.Shake().Active() {
		return 0, 0
	}
	dx := float64(int(g.frame%3)-1) * shakeAmplitude
	dy := float64(int((g.frame/2)%3)-1) * shakeAmplitude
	return dx, dy
}

func (g *Game) Draw(screen *ebiten.Image) {
	ox, oy := g.shakeOffset()
	if v, ok := g.orch.MinigameView(); ok && !v.Briefing {
		g.arena.Draw(screen, v, ox, oy)
	}
	g.renderer.DrawAt(screen, g.buffer, ox, oy)
	if g.controls.touchSeen {
		drawTouchLayout(screen, g.controls.tracker.Layout)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// newNarrator picks the content source the config asks for.
func newNarrator(cfg config.Config, seed uint64, log logrus.FieldLogger) (game.Narrator, error) {
	switch cfg.Source() {
	case config.SourceGemini:
		g, err := content.NewGemini(content.GeminiConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiURL,
		})
		if err != nil {
			return nil, err
		}
		return content.WithFallback(g, log), nil
	case config.SourceOffline:
		off, err := content.NewOffline(seed)
		if err != nil {
			return nil, err
		}
		return content.WithFallback(off, log), nil
	default:
		return game.Disconnected{}, nil
	}
}

func seedOr(seed uint64) uint64 {
	if seed != 0 {
		return seed
	}
	return uint64(time.Now().UnixNano())
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	// One seed feeds both the offline narrator and the orchestrator so a
	// logged seed replays the whole run.
	seed := seedOr(cfg.Seed)
	narrator, err := newNarrator(cfg, seed, log)
	if err != nil {
		log.WithError(err).Fatal("content source")
	}
	catalog, err := world.DefaultCatalog()
	if err != nil {
		log.WithError(err).Fatal("load ship catalog")
	}
	log.WithFields(logrus.Fields{"content": cfg.Source(), "seed": seed}).Info("starting")

	orch := game.New(game.Options{
		Narrator: narrator,
		Catalog:  catalog,
		Logger:   log,
		Rng:      rand.New(rand.NewPCG(seed, seed>>1|1)),
		Timeout:  cfg.ContentTimeout,
		Briefing: cfg.Briefing,
	})

	ebiten.SetWindowSize(int(screenWidth*cfg.WindowScale), int(screenHeight*cfg.WindowScale))
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(NewGame(orch)); err != nil {
		log.WithError(err).Fatal("run game")
	}
}
