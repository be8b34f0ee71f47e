package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Cell is one character cell: a CP437 glyph and two palette indices.
type Cell struct {
	Glyph byte
	FG    uint8
	BG    uint8
}

var blank = Cell{Glyph: ' ', FG: ColorWhite, BG: ColorBlack}

// CellBuffer is the screen as a grid of cells, row-major.
type CellBuffer struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewCellBuffer creates a blank buffer.
func NewCellBuffer(cols, rows int) *CellBuffer {
	b := &CellBuffer{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
	b.Clear()
	return b
}

func (b *CellBuffer) index(x, y int) (int, bool) {
	if x < 0 || x >= b.Cols || y < 0 || y >= b.Rows {
		return 0, false
	}
	return y*b.Cols + x, true
}

// Set writes one cell. Writes off the grid are dropped.
func (b *CellBuffer) Set(x, y int, glyph byte, fg, bg uint8) {
	if i, ok := b.index(x, y); ok {
		b.Cells[i] = Cell{Glyph: glyph, FG: fg, BG: bg}
	}
}

// Get reads one cell; off the grid it is the zero Cell.
func (b *CellBuffer) Get(x, y int) Cell {
	if i, ok := b.index(x, y); ok {
		return b.Cells[i]
	}
	return Cell{}
}

// Clear blanks the whole buffer.
func (b *CellBuffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = blank
	}
}

// unicodeToCP437 inverts CP437ToUnicode for the non-ASCII glyphs.
var unicodeToCP437 = func() map[rune]byte {
	m := make(map[rune]byte, 160)
	for code, r := range CP437ToUnicode {
		if r > 126 {
			m[r] = byte(code)
		}
	}
	return m
}()

// CP437 maps a rune onto its glyph code, or '?' when the code page lacks it.
func CP437(r rune) byte {
	if r >= 32 && r <= 126 {
		return byte(r)
	}
	if c, ok := unicodeToCP437[r]; ok {
		return c
	}
	return '?'
}

// WriteString writes s from (x, y), one rune per cell.
func (b *CellBuffer) WriteString(x, y int, s string, fg, bg uint8) {
	i := 0
	for _, r := range s {
		b.Set(x+i, y, CP437(r), fg, bg)
		i++
	}
}

// Box draws a single-line frame with its corners at (x, y) and
// (x+w-1, y+h-1).
func (b *CellBuffer) Box(x, y, w, h int, fg uint8) {
	if w < 2 || h < 2 {
		return
	}
	for i := 1; i < w-1; i++ {
		b.Set(x+i, y, 196, fg, ColorBlack)
		b.Set(x+i, y+h-1, 196, fg, ColorBlack)
	}
	for j := 1; j < h-1; j++ {
		b.Set(x, y+j, 179, fg, ColorBlack)
		b.Set(x+w-1, y+j, 179, fg, ColorBlack)
	}
	b.Set(x, y, 218, fg, ColorBlack)
	b.Set(x+w-1, y, 191, fg, ColorBlack)
	b.Set(x, y+h-1, 192, fg, ColorBlack)
	b.Set(x+w-1, y+h-1, 217, fg, ColorBlack)
}

// WriteCentered writes s centred on column cx.
func (b *CellBuffer) WriteCentered(cx, y int, s string, fg, bg uint8) {
	b.WriteString(cx-len(s)/2, y, s, fg, bg)
}

// GridRenderer draws a CellBuffer to an Ebitengine screen.
type GridRenderer struct {
	Atlas   *FontAtlas
	CellW   int
	CellH   int
	bgPixel *ebiten.Image // 1x1 white pixel for drawing backgrounds
}

// NewGridRenderer creates a renderer with the given atlas and cell dimensions.
func NewGridRenderer(atlas *FontAtlas, cellW, cellH int) *GridRenderer {
	bgPixel := ebiten.NewImage(1, 1)
	bgPixel.Fill(color.White)
	return &GridRenderer{
		Atlas:   atlas,
		CellW:   cellW,
		CellH:   cellH,
		bgPixel: bgPixel,
	}
}

// Draw renders the entire CellBuffer to the screen.
func (r *GridRenderer) Draw(screen *ebiten.Image, buf *CellBuffer) {
	r.DrawAt(screen, buf, 0, 0)
}

// DrawAt renders the buffer shifted by (ox, oy) pixels. The screen shake
// uses it to jolt the whole frame.
func (r *GridRenderer) DrawAt(screen *ebiten.Image, buf *CellBuffer, ox, oy float64) {
	scaleX := float64(r.CellW) / float64(GlyphWidth)
	scaleY := float64(r.CellH) / float64(GlyphHeight)

	var op ebiten.DrawImageOptions

	for y := 0; y < buf.Rows; y++ {
		for x := 0; x < buf.Cols; x++ {
			cell := buf.Cells[y*buf.Cols+x]
			px := float64(x*r.CellW) + ox
			py := float64(y*r.CellH) + oy

			if cell.BG != ColorBlack {
				op = ebiten.DrawImageOptions{}
				op.GeoM.Scale(float64(r.CellW), float64(r.CellH))
				op.GeoM.Translate(px, py)
				op.ColorScale.ScaleWithColor(Palette[cell.BG])
				screen.DrawImage(r.bgPixel, &op)
			}

			if cell.Glyph != ' ' && cell.Glyph != 0 {
				glyph := r.Atlas.Glyph(cell.Glyph)
				op = ebiten.DrawImageOptions{}
				op.GeoM.Scale(scaleX, scaleY)
				op.GeoM.Translate(px, py)
				op.ColorScale.ScaleWithColor(Palette[cell.FG])
				screen.DrawImage(glyph, &op)
			}
		}
	}
}

// DrawFloating renders a single glyph centred on sub-pixel screen
// coordinates. The minigame arena uses it for the player ship.
func (r *GridRenderer) DrawFloating(screen *ebiten.Image, glyph byte, fg uint8, px, py float64) {
	if glyph == ' ' || glyph == 0 {
		return
	}
	g := r.Atlas.Glyph(glyph)
	scaleX := float64(r.CellW) / float64(GlyphWidth)
	scaleY := float64(r.CellH) / float64(GlyphHeight)
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(scaleX, scaleY)
	op.GeoM.Translate(px-float64(r.CellW)/2, py-float64(r.CellH)/2)
	op.ColorScale.ScaleWithColor(Palette[fg])
	screen.DrawImage(g, &op)
}
