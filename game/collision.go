package game

import "math"

const (
	Width  = 800.0
	Height = 600.0

	// BulletHitPadding widens plain bullets horizontally on each side when
	// they are tested against a target.
	BulletHitPadding = 4.0
)

// Rect is an axis-aligned rectangle anchored at its top-left corner
type Rect struct {
	X, Y float64
	W, H float64
}

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// CenterX returns the horizontal center
func (r Rect) CenterX() float64 { return r.X + r.W/2 }

// CenterY returns the vertical center
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

// Contains reports whether the point lies inside r, edges included
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.Right() && py >= r.Y && py <= r.Bottom()
}

// Intersects reports whether a and b overlap on both axes.
// Bounds are rounded to whole units first and touching edges do not count.
func Intersects(a, b Rect) bool {
	return intersectsPadded(a, 0, b)
}

// BulletHits tests a bullet against a target, applying the horizontal
// padding to plain bullets only.
func BulletHits(b *Bullet, target Rect) bool {
	pad := 0.0
	if b.Plain() {
		pad = BulletHitPadding
	}
	return intersectsPadded(b.Rect, pad, target)
}

func intersectsPadded(a Rect, pad float64, b Rect) bool {
	aLeft := math.Round(a.X) - pad
	aRight := math.Round(a.Right()) + pad
	aTop := math.Round(a.Y)
	aBottom := math.Round(a.Bottom())

	bLeft := math.Round(b.X)
	bRight := math.Round(b.Right())
	bTop := math.Round(b.Y)
	bBottom := math.Round(b.Bottom())

	return aLeft < bRight && aRight > bLeft && aTop < bBottom && aBottom > bTop
}
