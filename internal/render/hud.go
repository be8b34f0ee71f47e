package render

import (
	"fmt"

	"github.com/spacehole-rogue/nebula_nexus/internal/game"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const barWidth = 20

var printer = message.NewPrinter(language.English)

// Credits formats a credit balance with digit grouping.
func Credits(n int) string {
	return printer.Sprintf("%d CR", n)
}

// DrawBar shows a single-value bar with its label colored by fill level.
func DrawBar(buf *CellBuffer, x, y int, label string, val, maxVal int, clr uint8) {
	if maxVal <= 0 {
		maxVal = 1
	}
	filled := barWidth * min(max(val, 0), maxVal) / maxVal
	labelClr := levelColor(val * 100 / maxVal)
	buf.WriteString(x, y, label, labelClr, ColorBlack)

	for i := 0; i < barWidth; i++ {
		if i < filled {
			buf.Set(x+8+i, y, GlyphFull, clr, ColorBlack)
		} else {
			buf.Set(x+8+i, y, GlyphShade, ColorDarkGray, ColorBlack)
		}
	}
	buf.WriteString(x+29, y, fmt.Sprintf("%3d/%d", val, maxVal), labelClr, ColorBlack)
}

// DrawResources renders the ship status block: hull and energy bars with
// their status words, then crew, credits and turn. It takes five rows and
// about 48 columns.
func DrawResources(buf *CellBuffer, x, y int, p game.PlayerState) {
	r := p.Resources
	DrawBar(buf, x, y, "Hull   ", r.Hull, game.ResourceCap, ColorLightGray)
	DrawBar(buf, x, y+1, "Energy ", r.Energy, game.ResourceCap, ColorYellow)
	for i, v := range []int{r.Hull, r.Energy} {
		buf.WriteString(x+37, y+i, game.StatusLevel(v), levelColor(v*100/game.ResourceCap), ColorBlack)
	}

	crewClr := uint8(ColorLightGray)
	if r.Crew <= 2 {
		crewClr = ColorLightRed
	}
	buf.WriteString(x, y+2, fmt.Sprintf("Crew    %d", r.Crew), crewClr, ColorBlack)
	buf.WriteString(x, y+3, "Credits "+Credits(r.Credits), ColorYellow, ColorBlack)

	turn := fmt.Sprintf("Turn %d", p.Turn)
	if p.Mode == game.ModeCoop {
		turn += fmt.Sprintf("  Player %d", p.CurrentPlayer)
	}
	buf.WriteString(x, y+4, turn, ColorLightCyan, ColorBlack)
}

// DrawInventory lists cargo items below a header, at most rows lines.
func DrawInventory(buf *CellBuffer, x, y, rows int, inv game.Inventory) {
	buf.WriteString(x, y, "--- Cargo ---", ColorLightCyan, ColorBlack)
	if inv.Len() == 0 {
		buf.WriteString(x, y+1, "(empty)", ColorDarkGray, ColorBlack)
		return
	}
	for i, it := range inv.Items {
		if i >= rows {
			buf.WriteString(x, y+1+i, fmt.Sprintf("+%d more", inv.Len()-rows), ColorDarkGray, ColorBlack)
			return
		}
		buf.Set(x, y+1+i, GlyphItem, ColorLightMagenta, ColorBlack)
		buf.WriteString(x+2, y+1+i, it.Name, ColorWhite, ColorBlack)
	}
}

// DrawLog renders the tail of the ship's log wrapped at width.
func DrawLog(buf *CellBuffer, x, y, rows, width int, log *game.MessageLog) {
	buf.WriteString(x, y, "--- Ship's Log ---", ColorLightCyan, ColorBlack)
	if log == nil {
		return
	}
	for i, l := range log.RecentLines(rows, width) {
		buf.WriteString(x, y+1+i, l.Text, LogColor(l.Kind), ColorBlack)
	}
}

// DrawGauge draws a 0..100 gauge with a highlighted zone and a marker,
// used by the calibration bar.
func DrawGauge(buf *CellBuffer, x, y, width int, marker, zoneStart, zoneWidth float64) {
	at := func(v float64) int { return int(v * float64(width-1) / 100) }
	z0, z1 := at(zoneStart), at(min(zoneStart+zoneWidth, 100))
	for i := 0; i < width; i++ {
		bg := uint8(ColorBlack)
		if i >= z0 && i <= z1 {
			bg = ColorGreen
		}
		buf.Set(x+i, y, GlyphShade, ColorDarkGray, bg)
	}
	m := at(marker)
	buf.Set(x+m, y, GlyphFull, ColorWhite, ColorBlack)
}
