package game

const (
	PowerUpSize  = 15.0
	PowerUpSpeed = 2.0
)

// PowerUp falls from a destroyed UFO until it is collected, hits an enemy
// or drops off the bottom
type PowerUp struct {
	Rect
	Speed  float64
	Active bool
	Kind   PowerKind
}

// NewPowerUp drops the UFO's carried power from its underside
func NewPowerUp(u *UFO) *PowerUp {
	return &PowerUp{
		Rect:   Rect{X: u.CenterX(), Y: u.Bottom(), W: PowerUpSize, H: PowerUpSize},
		Speed:  PowerUpSpeed,
		Active: true,
		Kind:   u.Carries,
	}
}

// Update moves the power-up down one tick
func (p *PowerUp) Update() {
	if !p.Active {
		return
	}
	p.Y += p.Speed
	if p.Y > Height {
		p.Active = false
	}
}
