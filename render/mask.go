package render

import "github.com/cchutis/halloween-wedding/game"

// Mask is a coverage bitmap, one cell per logical unit
type Mask struct {
	W, H int
	Pix  []bool
}

// NewMask returns an empty mask
func NewMask(w, h int) *Mask {
	return &Mask{W: w, H: h, Pix: make([]bool, w*h)}
}

// At reports whether the cell at (x, y) is covered
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return false
	}
	return m.Pix[y*m.W+x]
}

// Covered returns the number of covered cells
func (m *Mask) Covered() int {
	n := 0
	for _, p := range m.Pix {
		if p {
			n++
		}
	}
	return n
}

// BarricadeMask draws the barricade's arch and erases every damage point
// from it. The arch is a rectangle whose top third bows up along a
// quadratic curve peaking at the middle of the top edge.
func BarricadeMask(b *game.Barricade) *Mask {
	w, h := int(b.W), int(b.H)
	m := NewMask(w, h)
	shoulder := b.H / 3
	for y := 0; y < h; y++ {
		py := float64(y) + 0.5
		for x := 0; x < w; x++ {
			px := float64(x) + 0.5
			t := px / b.W
			// quadratic Bezier from (0,shoulder) via (w/2,0) to (w,shoulder);
			// x is linear in t so the curve is a function of x
			top := shoulder * ((1-t)*(1-t) + t*t)
			m.Pix[y*w+x] = py >= top
		}
	}
	for _, d := range b.Damage {
		erase(m, d)
	}
	return m
}

func erase(m *Mask, d game.DamagePoint) {
	r2 := d.Radius * d.Radius
	minX, maxX := int(d.X-d.Radius)-1, int(d.X+d.Radius)+1
	minY, maxY := int(d.Y-d.Radius)-1, int(d.Y+d.Radius)+1
	for y := minY; y <= maxY; y++ {
		if y < 0 || y >= m.H {
			continue
		}
		for x := minX; x <= maxX; x++ {
			if x < 0 || x >= m.W {
				continue
			}
			dx := float64(x) + 0.5 - d.X
			dy := float64(y) + 0.5 - d.Y
			if dx*dx+dy*dy <= r2 {
				m.Pix[y*m.W+x] = false
			}
		}
	}
}
