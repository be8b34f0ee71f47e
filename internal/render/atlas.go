package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	GlyphWidth  = 16
	GlyphHeight = 16
	AtlasCols   = 16
	AtlasRows   = 16
)

// FontAtlas holds the CP437 glyph atlas and cached sub-images.
type FontAtlas struct {
	image  *ebiten.Image
	glyphs [256]*ebiten.Image
}

// NewFontAtlas uploads the rasterized CP437 sheet and slices it into glyphs.
func NewFontAtlas() *FontAtlas {
	eimg := ebiten.NewImageFromImage(RasterizeCP437())
	a := &FontAtlas{image: eimg}
	for code := 0; code < 256; code++ {
		a.glyphs[code] = eimg.SubImage(glyphRect(byte(code))).(*ebiten.Image)
	}
	return a
}

// Glyph returns the cached sub-image for a CP437 character code.
func (a *FontAtlas) Glyph(code byte) *ebiten.Image {
	return a.glyphs[code]
}

func glyphRect(code byte) image.Rectangle {
	x := int(code) % AtlasCols * GlyphWidth
	y := int(code) / AtlasCols * GlyphHeight
	return image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)
}

// RasterizeCP437 draws the whole 16x16 glyph sheet in white on transparent.
// Printable ASCII comes from basicfont.Face7x13; line, block and HUD glyphs
// are masks evaluated per pixel. Codes with neither stay blank.
func RasterizeCP437() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, AtlasCols*GlyphWidth, AtlasRows*GlyphHeight))
	d := &font.Drawer{Dst: img, Src: image.NewUniform(color.White), Face: basicfont.Face7x13}

	for code := 0; code < 256; code++ {
		cell := glyphRect(byte(code))
		if r := CP437ToUnicode[code]; r >= 32 && r <= 126 {
			// 7x13 face, nudged to the middle of the cell, baseline at 13.
			d.Dot = fixed.P(cell.Min.X+4, cell.Min.Y+13)
			d.DrawString(string(r))
			continue
		}
		if m := maskFor(byte(code)); m != nil {
			paint(img, cell.Min, m)
		}
	}
	return img
}

// mask reports whether pixel (x, y) of a 16x16 cell is lit.
type mask func(x, y int) bool

func paint(img *image.NRGBA, at image.Point, m mask) {
	w := color.NRGBA{255, 255, 255, 255}
	for y := 0; y < GlyphHeight; y++ {
		for x := 0; x < GlyphWidth; x++ {
			if m(x, y) {
				img.SetNRGBA(at.X+x, at.Y+y, w)
			}
		}
	}
}

// Box arms, in order left, right, up, down.
const (
	armL = 1 << iota
	armR
	armU
	armD
)

var boxArms = map[byte]uint8{
	179: armU | armD,               // │
	180: armL | armU | armD,        // ┤
	191: armL | armD,               // ┐
	192: armR | armU,               // └
	193: armL | armR | armU,        // ┴
	194: armL | armR | armD,        // ┬
	195: armR | armU | armD,        // ├
	196: armL | armR,               // ─
	197: armL | armR | armU | armD, // ┼
	217: armL | armU,               // ┘
	218: armR | armD,               // ┌
}

// boxMask draws 2px wide strokes from the cell centre out to each arm.
func boxMask(arms uint8) mask {
	const c = 7
	return func(x, y int) bool {
		onRow := y == c || y == c+1
		onCol := x == c || x == c+1
		switch {
		case arms&armL != 0 && onRow && x <= c+1:
			return true
		case arms&armR != 0 && onRow && x >= c:
			return true
		case arms&armU != 0 && onCol && y <= c+1:
			return true
		case arms&armD != 0 && onCol && y >= c:
			return true
		}
		return false
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var shapeMasks = map[byte]mask{
	176: func(x, y int) bool { return (x+y)%4 == 0 },       // ░
	177: func(x, y int) bool { return (x+y)%2 == 0 },       // ▒
	178: func(x, y int) bool { return (x+y)%4 != 0 },       // ▓
	219: func(x, y int) bool { return true },               // █
	220: func(x, y int) bool { return y >= GlyphHeight/2 }, // ▄
	221: func(x, y int) bool { return x < GlyphWidth/2 },   // ▌
	222: func(x, y int) bool { return x >= GlyphWidth/2 },  // ▐
	223: func(x, y int) bool { return y < GlyphHeight/2 },  // ▀

	254: func(x, y int) bool { return x >= 4 && x < 12 && y >= 4 && y < 12 }, // ■

	// HUD glyphs
	GlyphShip: func(x, y int) bool {
		return y >= 2 && y < 14 && x >= 7-(y-2)/2 && x <= 8+(y-2)/2
	},
	GlyphItem: func(x, y int) bool {
		return abs(x*2-15)+abs(y*2-15) <= 12
	},
	GlyphArrow: func(x, y int) bool {
		d := (12 - x) / 2
		return x >= 4 && x < 12 && y >= 7-d && y <= 8+d
	},
	GlyphStar: func(x, y int) bool {
		if x < 2 || x > 13 || y < 2 || y > 13 {
			return false
		}
		return x == 7 || y == 7 || x == y || x+y == 15
	},
}

func maskFor(code byte) mask {
	if arms, ok := boxArms[code]; ok {
		return boxMask(arms)
	}
	return shapeMasks[code]
}
