package render

import (
	"image/color"

	"github.com/cchutis/halloween-wedding/game"
)

// Align positions text horizontally relative to its anchor
type Align int

const (
	AlignLeft   Align = 0
	AlignCenter Align = 1
	AlignRight  Align = 2
)

// Canvas is a drawing surface addressed in logical playfield units
// (800x600). Text is anchored at its baseline.
type Canvas interface {
	Fill(c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h, width float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	StrokeCircle(cx, cy, r, width float64, c color.Color)
	FillPolygon(pts []game.Point, c color.Color)
	Line(x1, y1, x2, y2, width float64, c color.Color)
	FillMask(x, y float64, m *Mask, c color.Color)
	Text(s string, x, y, size float64, align Align, c color.Color)
}

var (
	colorBackground = color.RGBA{0x00, 0x00, 0x00, 0xff}
	colorWhite      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorBeam       = color.RGBA{0xff, 0x00, 0x00, 0xff}
	colorSpread     = color.RGBA{0x00, 0xff, 0x00, 0xff}
	colorShield     = color.RGBA{0x00, 0x88, 0xff, 0xff}
	colorGhost      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorPumpkin    = color.RGBA{0xff, 0x6b, 0x00, 0xff}
	colorBat        = color.RGBA{0x4a, 0x4a, 0x4a, 0xff}
	colorBarricade  = color.RGBA{0xb8, 0x86, 0x0b, 0xff}
	colorTitle      = color.RGBA{0xff, 0xcc, 0x00, 0xff}
	colorTitleShade = color.RGBA{0xff, 0x66, 0x00, 0xff}
	colorGold       = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	colorOrange     = color.RGBA{0xff, 0x77, 0x00, 0xff}
	colorKey        = color.RGBA{0xaa, 0xaa, 0xaa, 0xff}
	colorPanel      = color.RGBA{0x00, 0x00, 0x00, 0xb3}
	colorButtonDark = color.RGBA{0x4a, 0x4a, 0x4a, 0xff}
	colorMuted      = color.RGBA{0x88, 0x88, 0x88, 0xff}
	colorBlast      = color.RGBA{0xff, 0x8c, 0x00, 0xff}
	colorEmber      = color.RGBA{0xff, 0x55, 0x00, 0xff}
	colorSpark      = color.RGBA{0xff, 0xdd, 0x00, 0xff}
)

// alpha returns c with its alpha scaled by a in [0, 1]
func alpha(c color.RGBA, a float64) color.RGBA {
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	// premultiplied, as image/color expects
	return color.RGBA{
		R: uint8(float64(c.R) * a),
		G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a),
		A: uint8(float64(c.A) * a),
	}
}

func powerColor(k game.PowerKind) color.RGBA {
	switch k {
	case game.PowerBeam:
		return colorBeam
	case game.PowerSpread:
		return colorSpread
	default:
		return colorShield
	}
}

func enemyColor(k game.EnemyKind) color.RGBA {
	switch k {
	case game.KindPumpkin:
		return colorPumpkin
	case game.KindBat:
		return colorBat
	default:
		return colorGhost
	}
}
