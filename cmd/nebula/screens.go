package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/spacehole-rogue/nebula_nexus/internal/game"
	"github.com/spacehole-rogue/nebula_nexus/internal/input"
	"github.com/spacehole-rogue/nebula_nexus/internal/minigame"
	"github.com/spacehole-rogue/nebula_nexus/internal/render"
)

const (
	// Fixed UI positions
	hudRow    = 2  // resources block
	cargoX    = 52 // cargo list beside the resources
	titleRow  = 9  // event title
	bodyRow   = 11 // event description
	bodyX     = 10
	bodyWidth = 60
	choiceRow = 24 // first choice row, lines up with the touch regions
	choiceX   = 20
	logRow    = 37 // ship's log
	logMax    = 6
)

func (g *Game) drawScreen() {
	buf := g.buffer
	buf.Clear()

	buf.WriteString(2, 0, title, render.ColorWhite, render.ColorBlack)
	buf.WriteString(gridCols-len(g.orch.Phase().String())-2, 0, g.orch.Phase().String(), render.ColorDarkGray, render.ColorBlack)

	switch g.orch.Phase() {
	case game.PhaseMenu:
		g.drawMenu()
	case game.PhaseShipSelect:
		g.drawShipSelect()
	case game.PhaseLoadingEvent:
		g.drawRunHeader()
		g.drawLoading()
	case game.PhasePlayingEvent:
		g.drawRunHeader()
		g.drawEvent()
	case game.PhaseCinematic:
		g.drawCinematic()
	case game.PhaseMinigame:
		g.drawMinigame()
	case game.PhaseResolving:
		g.drawRunHeader()
		g.drawResolution()
	case game.PhaseGameOver:
		g.drawEnding("CONTACT LOST", render.ColorLightRed)
	case game.PhaseVictory:
		g.drawEnding("MISSION ACCOMPLISHED", render.ColorLightGreen)
	}

	buf.WriteString(2, gridRows-1, hint(g.orch.Phase()), render.ColorDarkGray, render.ColorBlack)
}

func hint(p game.Phase) string {
	switch p {
	case game.PhaseMenu:
		return "1-2: Select mode  ESC: Quit"
	case game.PhaseShipSelect:
		return "1-4: Choose ship  BACKSPACE: Back"
	case game.PhaseLoadingEvent:
		return "SPACE: Calibrate  ESC: Abandon run"
	case game.PhasePlayingEvent:
		return "1-4: Choose  ESC: Abandon run"
	case game.PhaseMinigame:
		return "WASD: Move  SPACE: Fire/Lock  ESC: Abandon run"
	case game.PhaseResolving:
		return "ENTER: Continue  ESC: Abandon run"
	case game.PhaseGameOver, game.PhaseVictory:
		return "ENTER: Main menu  1: New ship"
	}
	return ""
}

func (g *Game) drawChoiceRow(i int, label string, fg uint8) {
	g.buffer.WriteString(choiceX, choiceRow+3*i, fmt.Sprintf("[%d] %s", i+1, label), fg, render.ColorBlack)
}

func (g *Game) drawMenu() {
	buf := g.buffer
	for i := 0; i < 12; i++ {
		buf.Set(8+i*6, 6+i%3, render.GlyphStar, render.ColorDarkGray, render.ColorBlack)
	}
	buf.WriteCentered(gridCols/2, 12, "N E B U L A   N E X U S", render.ColorLightCyan, render.ColorBlack)
	buf.WriteCentered(gridCols/2, 14, "An episodic voyage through uncharted space", render.ColorLightGray, render.ColorBlack)
	g.drawChoiceRow(0, "Solo Mission", render.ColorWhite)
	g.drawChoiceRow(1, "Co-op (hot seat)", render.ColorWhite)
}

func (g *Game) drawShipSelect() {
	buf := g.buffer
	buf.WriteCentered(gridCols/2, 4, "SELECT YOUR VESSEL", render.ColorLightCyan, render.ColorBlack)
	buf.WriteCentered(gridCols/2, 6, g.orch.Mode().String()+" mode", render.ColorDarkGray, render.ColorBlack)
	cat := g.orch.Catalog()
	for i := 0; i < min(cat.Len(), len(input.Options)); i++ {
		s := cat.At(i)
		g.drawChoiceRow(i, s.Name+"  "+s.Bonus, render.ColorWhite)
		l := s.InitialResources
		stats := fmt.Sprintf("Hull %d  Energy %d  Crew %d  %s", l.Hull, l.Energy, l.Crew, render.Credits(l.Credits))
		buf.WriteString(choiceX+4, choiceRow+3*i+1, stats, render.ColorDarkGray, render.ColorBlack)
	}
}

// drawRunHeader shows the ship status, cargo and log shared by the
// between-challenge screens.
func (g *Game) drawRunHeader() {
	p := g.orch.State()
	if p.Ship != nil {
		g.buffer.WriteString(20, 0, "[ "+p.Ship.Name+" ]", render.ColorLightCyan, render.ColorBlack)
	}
	render.DrawResources(g.buffer, 2, hudRow, p)
	render.DrawInventory(g.buffer, cargoX, hudRow, 4, p.Inventory)
	render.DrawLog(g.buffer, 2, logRow, logMax, gridCols-4, g.orch.Log())
}

func (g *Game) drawLoading() {
	buf := g.buffer
	if g.orch.Event() == nil {
		buf.WriteCentered(gridCols/2, titleRow, "Receiving transmission...", render.ColorLightCyan, render.ColorBlack)
	} else {
		buf.WriteCentered(gridCols/2, titleRow, "Transmission received", render.ColorLightGreen, render.ColorBlack)
	}
	c := g.orch.Calibration()
	if c == nil {
		return
	}
	buf.WriteCentered(gridCols/2, 16, "SENSOR CALIBRATION", render.ColorWhite, render.ColorBlack)
	render.DrawGauge(buf, 15, 18, 50, c.Bar, c.ZoneStart, c.ZoneWidth)
	switch {
	case c.Calibrated && c.Bonus > 0:
		buf.WriteCentered(gridCols/2, 20, fmt.Sprintf("Calibrated: +%d Energy", c.Bonus), render.ColorLightGreen, render.ColorBlack)
	case c.Calibrated:
		buf.WriteCentered(gridCols/2, 20, "Calibration abandoned", render.ColorYellow, render.ColorBlack)
	default:
		buf.WriteCentered(gridCols/2, 20, fmt.Sprintf("Hit the green zone  (misses %d)", c.Attempts), render.ColorDarkGray, render.ColorBlack)
	}
	if c.Calibrated && g.orch.Event() != nil {
		buf.WriteCentered(gridCols/2, 22, "Press SPACE to proceed", render.ColorWhite, render.ColorBlack)
	}
}

func (g *Game) drawEvent() {
	buf := g.buffer
	ev := g.orch.Event()
	if ev == nil {
		return
	}
	buf.WriteCentered(gridCols/2, titleRow, strings.ToUpper(ev.Title), render.ColorYellow, render.ColorBlack)
	for j, line := range game.WrapText(ev.Description, bodyWidth) {
		if bodyRow+j >= choiceRow-1 {
			break
		}
		buf.WriteString(bodyX, bodyRow+j, line, render.ColorLightGray, render.ColorBlack)
	}
	for i, c := range ev.Choices {
		if i >= len(input.Options) {
			break
		}
		g.drawChoiceRow(i, c.Text, render.ColorWhite)
		tag := fmt.Sprintf("%s / %s risk", c.Type, c.Risk)
		buf.WriteString(choiceX+4, choiceRow+3*i+1, tag, render.RiskColor(c.Risk), render.ColorBlack)
	}
}

func (g *Game) drawCinematic() {
	buf := g.buffer
	c := g.orch.Cinematic()
	if c == nil {
		return
	}
	d := c.Details
	buf.Box(10, 4, 60, 14, render.ColorLightRed)
	buf.WriteString(12, 5, "TARGET ACQUISITION", render.ColorLightRed, render.ColorBlack)
	if c.Stage >= game.StageScan {
		buf.WriteString(12, 7, "Contact: "+d.EnemyName, render.ColorWhite, render.ColorBlack)
		buf.WriteString(12, 8, "Class:   "+d.EnemyClass, render.ColorLightGray, render.ColorBlack)
	}
	if c.Stage >= game.StageAnalyze {
		buf.WriteString(12, 10, "Threat:  "+string(d.ThreatLevel), render.ThreatColor(d.ThreatLevel), render.ColorBlack)
		for j, line := range game.WrapText(d.Description, 54) {
			if j >= 3 {
				break
			}
			buf.WriteString(12, 12+j, line, render.ColorLightGray, render.ColorBlack)
		}
	}
	if c.Stage >= game.StageLocked {
		buf.WriteString(12, 16, "Weakness: "+d.Weakness, render.ColorLightGreen, render.ColorBlack)
	}
	for i, line := range c.Lines {
		clr := uint8(render.ColorGreen)
		if i == 0 {
			clr = render.ColorLightGreen
		}
		buf.WriteString(12, 20+i, line, clr, render.ColorBlack)
	}
}

var briefings = [minigame.KindCount][]string{
	minigame.KindCombat:  {"COMBAT", "Destroy hostiles. Avoid collisions.", "WASD to move, SPACE to fire."},
	minigame.KindDodge:   {"EVASION", "Survive the debris field until the timer ends.", "WASD to move."},
	minigame.KindHacking: {"INTRUSION", "Lock the signal inside the window three times.", "SPACE to lock. A miss costs 15 hull."},
}

func (g *Game) drawMinigame() {
	buf := g.buffer
	v, ok := g.orch.MinigameView()
	if !ok {
		return
	}
	render.DrawResources(buf, 2, hudRow, g.orch.State())
	status := fmt.Sprintf("%s  DIFF %d  TIME %2d  SCORE %d  DMG %d",
		strings.ToUpper(v.Kind.String()), v.Difficulty, v.Remaining, v.Score, v.Damage)
	buf.WriteString(arenaX/cellWidth, arenaY/cellHeight-1, status, render.ColorLightCyan, render.ColorBlack)

	if v.Briefing {
		lines := briefings[v.Kind]
		buf.Box(20, 14, 40, 11, render.ColorLightCyan)
		buf.WriteCentered(gridCols/2, 16, lines[0], render.ColorYellow, render.ColorBlack)
		buf.WriteCentered(gridCols/2, 18, lines[1], render.ColorWhite, render.ColorBlack)
		buf.WriteCentered(gridCols/2, 19, lines[2], render.ColorLightGray, render.ColorBlack)
		secs := int(v.BriefingLeft.Seconds()) + 1
		buf.WriteCentered(gridCols/2, 22, fmt.Sprintf("Starting in %d", secs), render.ColorLightCyan, render.ColorBlack)
	}
}

func (g *Game) drawResolution() {
	buf := g.buffer
	res := g.orch.Resolution()
	if res == nil {
		buf.WriteCentered(gridCols/2, titleRow, "Awaiting mission report...", render.ColorLightCyan, render.ColorBlack)
		return
	}
	head, clr := "FAILURE", uint8(render.ColorLightRed)
	if res.Success {
		head, clr = "SUCCESS", render.ColorLightGreen
	}
	buf.WriteCentered(gridCols/2, titleRow, head, clr, render.ColorBlack)
	row := bodyRow
	for _, line := range game.WrapText(res.OutcomeText, bodyWidth) {
		if row >= choiceRow {
			break
		}
		buf.WriteString(bodyX, row, line, render.ColorLightGray, render.ColorBlack)
		row++
	}
	d := res.ResourceChanges
	row = choiceRow
	if d.IsZero() {
		buf.WriteString(choiceX, row, "No change to ship systems", render.ColorDarkGray, render.ColorBlack)
		row++
	}
	for _, c := range []struct {
		name string
		n    int
	}{{"Hull", d.Hull}, {"Energy", d.Energy}, {"Crew", d.Crew}, {"Credits", d.Credits}} {
		if c.n == 0 {
			continue
		}
		fg := uint8(render.ColorLightGreen)
		if c.n < 0 {
			fg = render.ColorLightRed
		}
		buf.WriteString(choiceX, row, fmt.Sprintf("%-8s %+d", c.name, c.n), fg, render.ColorBlack)
		row++
	}
	if res.ItemReward != nil {
		buf.Set(choiceX, row, render.GlyphItem, render.ColorLightMagenta, render.ColorBlack)
		buf.WriteString(choiceX+2, row, "Acquired "+res.ItemReward.Name, render.ColorLightMagenta, render.ColorBlack)
	}
}

func (g *Game) drawEnding(head string, clr uint8) {
	buf := g.buffer
	p := g.orch.State()
	buf.WriteCentered(gridCols/2, 10, head, clr, render.ColorBlack)
	shipName := "unknown vessel"
	if p.Ship != nil {
		shipName = p.Ship.Name
	}
	buf.WriteCentered(gridCols/2, 13, fmt.Sprintf("%s survived %d turns", shipName, p.Turn), render.ColorLightGray, render.ColorBlack)
	buf.WriteCentered(gridCols/2, 14, render.Credits(p.Resources.Credits)+" banked", render.ColorYellow, render.ColorBlack)
	buf.WriteCentered(gridCols/2, 15, fmt.Sprintf("%d artifacts recovered", p.Inventory.Len()), render.ColorLightMagenta, render.ColorBlack)
	render.DrawLog(buf, 2, logRow, logMax, gridCols-4, g.orch.Log())
}

var touchTint = color.RGBA{R: 120, G: 160, B: 220, A: 90}

// drawTouchLayout outlines the on-screen controls once a touch has been
// seen. Choice rows are left to the text screens.
func drawTouchLayout(screen *ebiten.Image, l input.TouchLayout) {
	for _, r := range l {
		if r.Label == "" {
			continue
		}
		vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 2, touchTint, false)
	}
}
