package render

import (
	"image/color"

	"github.com/spacehole-rogue/nebula_nexus/internal/game"
)

// CGA 16-color palette indices.
const (
	ColorBlack        = 0
	ColorBlue         = 1
	ColorGreen        = 2
	ColorCyan         = 3
	ColorRed          = 4
	ColorMagenta      = 5
	ColorBrown        = 6
	ColorLightGray    = 7
	ColorDarkGray     = 8
	ColorLightBlue    = 9
	ColorLightGreen   = 10
	ColorLightCyan    = 11
	ColorLightRed     = 12
	ColorLightMagenta = 13
	ColorYellow       = 14
	ColorWhite        = 15
)

// Palette contains the classic CGA 16-color palette.
var Palette = [16]color.RGBA{
	{0, 0, 0, 255},       // 0: Black
	{0, 0, 170, 255},     // 1: Blue
	{0, 170, 0, 255},     // 2: Green
	{0, 170, 170, 255},   // 3: Cyan
	{170, 0, 0, 255},     // 4: Red
	{170, 0, 170, 255},   // 5: Magenta
	{170, 85, 0, 255},    // 6: Brown
	{170, 170, 170, 255}, // 7: Light Gray
	{85, 85, 85, 255},    // 8: Dark Gray
	{85, 85, 255, 255},   // 9: Light Blue
	{85, 255, 85, 255},   // 10: Light Green
	{85, 255, 255, 255},  // 11: Light Cyan
	{255, 85, 85, 255},   // 12: Light Red
	{255, 85, 255, 255},  // 13: Light Magenta
	{255, 255, 85, 255},  // 14: Yellow
	{255, 255, 255, 255}, // 15: White
}

// RGBA returns the palette color for idx.
func RGBA(idx uint8) color.RGBA {
	return Palette[idx&15]
}

// LogColor is the foreground used for a ship's log entry.
func LogColor(k game.LogKind) uint8 {
	switch k {
	case game.LogDanger:
		return ColorLightRed
	case game.LogSuccess:
		return ColorLightGreen
	case game.LogWarning:
		return ColorYellow
	case game.LogItem:
		return ColorLightMagenta
	default:
		return ColorCyan
	}
}

// ThreatColor grades a scanner threat readout.
func ThreatColor(t game.ThreatLevel) uint8 {
	switch t {
	case game.ThreatLow:
		return ColorLightGreen
	case game.ThreatModerate:
		return ColorYellow
	case game.ThreatCritical:
		return ColorLightRed
	default:
		return ColorLightMagenta
	}
}

// RiskColor grades a choice's risk tag.
func RiskColor(r game.Risk) uint8 {
	switch r {
	case game.RiskLow:
		return ColorLightGreen
	case game.RiskMedium:
		return ColorYellow
	case game.RiskHigh:
		return ColorLightRed
	default:
		return ColorLightMagenta
	}
}

// levelColor picks a label color for a pool at pct percent.
func levelColor(pct int) uint8 {
	switch {
	case pct <= 15:
		return ColorLightRed
	case pct <= 30:
		return ColorYellow
	}
	return ColorLightGray
}
