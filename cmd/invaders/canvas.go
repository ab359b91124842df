package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/bitmapfont/v3"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/cchutis/halloween-wedding/game"
	"github.com/cchutis/halloween-wedding/render"
)

// faceSize is the pixel height bitmapfont draws at unscaled
const faceSize = 12.0

var (
	fontFace = text.NewGoXFace(bitmapfont.Face)
	whiteSub = func() *ebiten.Image {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}()
)

// canvas draws render output onto an ebiten image
type canvas struct {
	dst *ebiten.Image

	path  vector.Path
	vs    []ebiten.Vertex
	is    []uint16
	masks []*ebiten.Image
	used  int
	pix   []byte
}

// begin points the canvas at this frame's screen
func (c *canvas) begin(dst *ebiten.Image) {
	c.dst = dst
	c.used = 0
}

func (c *canvas) Fill(col color.Color) {
	c.dst.Fill(col)
}

func (c *canvas) FillRect(x, y, w, h float64, col color.Color) {
	vector.DrawFilledRect(c.dst, float32(x), float32(y), float32(w), float32(h), col, true)
}

func (c *canvas) StrokeRect(x, y, w, h, width float64, col color.Color) {
	vector.StrokeRect(c.dst, float32(x), float32(y), float32(w), float32(h), float32(width), col, true)
}

func (c *canvas) FillCircle(cx, cy, r float64, col color.Color) {
	vector.DrawFilledCircle(c.dst, float32(cx), float32(cy), float32(r), col, true)
}

func (c *canvas) StrokeCircle(cx, cy, r, width float64, col color.Color) {
	vector.StrokeCircle(c.dst, float32(cx), float32(cy), float32(r), float32(width), col, true)
}

func (c *canvas) Line(x1, y1, x2, y2, width float64, col color.Color) {
	vector.StrokeLine(c.dst, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), col, true)
}

func (c *canvas) FillPolygon(pts []game.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	c.path = vector.Path{}
	c.path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		c.path.LineTo(float32(p.X), float32(p.Y))
	}
	c.path.Close()

	c.vs, c.is = c.path.AppendVerticesAndIndicesForFilling(c.vs[:0], c.is[:0])
	r, g, b, a := col.RGBA()
	for i := range c.vs {
		c.vs[i].SrcX = 1
		c.vs[i].SrcY = 1
		c.vs[i].ColorR = float32(r) / 0xffff
		c.vs[i].ColorG = float32(g) / 0xffff
		c.vs[i].ColorB = float32(b) / 0xffff
		c.vs[i].ColorA = float32(a) / 0xffff
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	c.dst.DrawTriangles(c.vs, c.is, whiteSub, op)
}

// FillMask uploads the mask into a scratch image reused across frames
func (c *canvas) FillMask(x, y float64, m *render.Mask, col color.Color) {
	img := c.scratch(m.W, m.H)
	r, g, b, a := col.RGBA()
	if n := 4 * m.W * m.H; cap(c.pix) < n {
		c.pix = make([]byte, n)
	} else {
		c.pix = c.pix[:n]
	}
	for i, on := range m.Pix {
		p := c.pix[4*i : 4*i+4]
		if on {
			p[0], p[1], p[2], p[3] = byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8)
		} else {
			p[0], p[1], p[2], p[3] = 0, 0, 0, 0
		}
	}
	img.WritePixels(c.pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, y)
	c.dst.DrawImage(img, op)
}

func (c *canvas) scratch(w, h int) *ebiten.Image {
	if c.used < len(c.masks) {
		img := c.masks[c.used]
		if b := img.Bounds(); b.Dx() == w && b.Dy() == h {
			c.used++
			return img
		}
		img.Deallocate()
		c.masks[c.used] = ebiten.NewImage(w, h)
		c.used++
		return c.masks[c.used-1]
	}
	img := ebiten.NewImage(w, h)
	c.masks = append(c.masks, img)
	c.used++
	return img
}

// Text draws s with its baseline at y, scaling the bitmap face to size
func (c *canvas) Text(s string, x, y, size float64, align render.Align, col color.Color) {
	scale := size / faceSize
	ascent := fontFace.Metrics().HAscent

	op := &text.DrawOptions{}
	switch align {
	case render.AlignCenter:
		op.LayoutOptions.PrimaryAlign = text.AlignCenter
	case render.AlignRight:
		op.LayoutOptions.PrimaryAlign = text.AlignEnd
	}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y-ascent*scale)
	op.ColorScale.ScaleWithColor(col)
	text.Draw(c.dst, s, fontFace, op)
}
