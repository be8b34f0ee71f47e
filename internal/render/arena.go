package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spacehole-rogue/nebula_nexus/internal/minigame"
)

var (
	arenaBG     = color.RGBA{R: 6, G: 10, B: 24, A: 255}
	arenaBorder = color.RGBA{R: 60, G: 90, B: 140, A: 255}
	lockWindow  = color.RGBA{R: 40, G: 160, B: 70, A: 160}
)

// ArenaPainter draws a minigame snapshot in pixel space. The arena's logical
// coordinates map 1:1 onto screen pixels starting at (X, Y).
type ArenaPainter struct {
	Grid *GridRenderer
	X, Y float64
}

// Draw paints v, shifted by (ox, oy) for the screen shake.
func (p *ArenaPainter) Draw(screen *ebiten.Image, v minigame.View, ox, oy float64) {
	x0 := float32(p.X + ox)
	y0 := float32(p.Y + oy)
	vector.DrawFilledRect(screen, x0, y0, minigame.ArenaWidth, minigame.ArenaHeight, arenaBG, false)
	vector.StrokeRect(screen, x0, y0, minigame.ArenaWidth, minigame.ArenaHeight, 2, arenaBorder, false)

	if v.Kind == minigame.KindHacking {
		p.drawHack(screen, v.Hack, x0, y0)
		return
	}

	hostile := RGBA(ColorLightRed)
	if v.Kind == minigame.KindDodge {
		hostile = RGBA(ColorDarkGray)
	}
	for _, h := range v.Hostiles {
		vector.DrawFilledCircle(screen, x0+float32(h.X), y0+float32(h.Y), float32(h.Radius), hostile, true)
	}
	for _, s := range v.Projectiles {
		vector.DrawFilledCircle(screen, x0+float32(s.X), y0+float32(s.Y), float32(s.Radius), RGBA(ColorYellow), true)
	}

	pl := v.Player
	vector.StrokeCircle(screen, x0+float32(pl.X), y0+float32(pl.Y), float32(pl.Radius), 1, RGBA(ColorLightCyan), true)
	if p.Grid != nil {
		p.Grid.DrawFloating(screen, GlyphShip, ColorWhite, float64(x0)+pl.X, float64(y0)+pl.Y)
	}
}

// drawHack paints the vertical frequency track centred in the arena.
func (p *ArenaPainter) drawHack(screen *ebiten.Image, h minigame.HackState, x0, y0 float32) {
	const trackW = 60
	tx := x0 + (minigame.ArenaWidth-trackW)/2
	ty := y0 + (minigame.ArenaHeight-minigame.HackTrack)/2

	vector.StrokeRect(screen, tx, ty, trackW, minigame.HackTrack, 1, arenaBorder, false)
	top := float32(h.Target - h.Height/2)
	vector.DrawFilledRect(screen, tx+1, ty+top, trackW-2, float32(h.Height), lockWindow, false)
	vector.DrawFilledRect(screen, tx-8, ty+float32(h.Bar)-2, trackW+16, 4, RGBA(ColorWhite), false)

	for i := 0; i < minigame.HackLocksToWin; i++ {
		clr := RGBA(ColorDarkGray)
		if i < h.Locks {
			clr = RGBA(ColorLightGreen)
		}
		vector.DrawFilledCircle(screen, tx+trackW+40, ty+60+float32(i)*40, 10, clr, true)
	}
}
