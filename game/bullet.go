package game

const (
	BulletWidth      = 8.0
	BulletHeight     = 15.0
	BulletSpeed      = 10.0
	EnemyBulletSpeed = 3.0

	BeamWidth  = 40.0
	BeamHeight = 50.0
	BeamSpeed  = 15.0

	SpreadWidth  = 30.0
	SpreadHeight = 20.0
	SpreadSpeed  = 10.0
)

// Bullet is a projectile. Enemy is fixed at creation and decides both the
// direction of travel and what the bullet can hit.
type Bullet struct {
	Rect
	Speed  float64
	Alive  bool
	Enemy  bool
	Beam   bool
	Spread bool
}

// Plain reports whether the bullet is neither a beam nor a spread shot
func (b *Bullet) Plain() bool {
	return !b.Beam && !b.Spread
}

// NewPlayerBullet fires a plain shot from the player's nose
func NewPlayerBullet(p *Player) Bullet {
	return Bullet{
		Rect:  Rect{X: p.CenterX() - BulletWidth/2, Y: p.Y, W: BulletWidth, H: BulletHeight},
		Speed: BulletSpeed,
		Alive: true,
	}
}

// NewBeam fires a beam that grows upward from the player
func NewBeam(p *Player) Bullet {
	return Bullet{
		Rect:  Rect{X: p.CenterX() - BeamWidth/2, Y: p.Y, W: BeamWidth, H: BeamHeight},
		Speed: BeamSpeed,
		Alive: true,
		Beam:  true,
	}
}

// NewSpread fires a wide shot that takes out neighbours on contact
func NewSpread(p *Player) Bullet {
	return Bullet{
		Rect:   Rect{X: p.CenterX() - SpreadWidth/2, Y: p.Y, W: SpreadWidth, H: SpreadHeight},
		Speed:  SpreadSpeed,
		Alive:  true,
		Spread: true,
	}
}

// NewEnemyBullet drops a shot from the bottom edge of the shooter
func NewEnemyBullet(e *Enemy) Bullet {
	return Bullet{
		Rect:  Rect{X: e.CenterX() - BulletWidth/2, Y: e.Bottom(), W: BulletWidth, H: BulletHeight},
		Speed: EnemyBulletSpeed,
		Alive: true,
		Enemy: true,
	}
}

// Advance translates a plain or spread bullet one tick and returns its new y
func (b *Bullet) Advance() float64 {
	if b.Enemy {
		b.Y += b.Speed
	} else {
		b.Y -= b.Speed
	}
	return b.Y
}

// Grow extends a beam upward one tick. The bottom edge stays put until the
// top reaches the ceiling, after which the beam only gets taller.
// It returns the span before the beam is committed, the caller tests hits
// against it.
func (b *Bullet) Grow() (top, height float64) {
	height = b.H + b.Speed
	top = b.Y - b.Speed
	if top < 0 {
		top = 0
	}
	return top, height
}

// BeamDone reports whether a beam with the given span covers the playfield
func BeamDone(top, height float64) bool {
	return top <= 0 && height >= Height
}

// OffField reports whether the bullet has left the playfield vertically
func (b *Bullet) OffField() bool {
	return b.Y <= 0 || b.Y >= Height
}
