package game

import "time"

const (
	PlayerWidth        = 50.0
	PlayerHeight       = 50.0
	PlayerSpeed        = 5.0
	PlayerLives        = 1
	PlayerBottomMargin = 10.0

	PlayerFireRate = 500 * time.Millisecond  // minimum gap between player shots
	PowerDuration  = 5 * time.Second         // lifetime of a collected power-up
	DeathAnimation = time.Second             // length of the death burst
	DeathDelay     = 1500 * time.Millisecond // hit to game over
)

// Player is the cannon at the bottom of the playfield
type Player struct {
	Rect
	Speed    float64
	Lives    int
	Score    int
	Powered  bool
	Power    PowerKind
	Shielded bool
	Dying    bool

	PowerUntil time.Time // zero when no power or shield is running
	DiedAt     time.Time
	lastShot   time.Time
}

// NewPlayer creates a player centered at the bottom with full stats
func NewPlayer() Player {
	return Player{
		Rect: Rect{
			X: Width/2 - PlayerWidth/2,
			Y: Height - PlayerHeight - PlayerBottomMargin,
			W: PlayerWidth,
			H: PlayerHeight,
		},
		Speed: PlayerSpeed,
		Lives: PlayerLives,
	}
}

// Move translates the player horizontally and clamps it to the playfield
func (p *Player) Move(in Input) {
	if p.Dying {
		return
	}
	x := p.X + in.Direction()*p.Speed
	if x < 0 {
		x = 0
	}
	if x > Width-p.W {
		x = Width - p.W
	}
	p.X = x
}

// CanFire reports whether the fire-rate limiter allows a shot at now
func (p *Player) CanFire(now time.Time) bool {
	if p.Dying {
		return false
	}
	return p.lastShot.IsZero() || now.Sub(p.lastShot) >= PlayerFireRate
}

// Collect applies a power-up. Shield guards the player, beam and spread
// arm the next shot. Either way the power timer restarts.
func (p *Player) Collect(kind PowerKind, now time.Time) {
	switch kind {
	case PowerShield:
		p.Shielded = true
	case PowerBeam, PowerSpread:
		p.Powered = true
		p.Power = kind
	default:
		return
	}
	p.PowerUntil = now.Add(PowerDuration)
}

// ClearPower drops any armed shot and shield
func (p *Player) ClearPower() {
	p.Powered = false
	p.Power = PowerNone
	p.Shielded = false
	p.PowerUntil = time.Time{}
}

// disarm drops an armed beam or spread shot. A running shield keeps its timer.
func (p *Player) disarm() {
	p.Powered = false
	p.Power = PowerNone
	if !p.Shielded {
		p.PowerUntil = time.Time{}
	}
}

// ExpirePower clears the power once its timer has run out
func (p *Player) ExpirePower(now time.Time) {
	if !p.PowerUntil.IsZero() && !now.Before(p.PowerUntil) {
		p.ClearPower()
	}
}

// Kill starts the death sequence and returns false if it already started
func (p *Player) Kill(now time.Time) bool {
	if p.Dying {
		return false
	}
	p.Lives = 0
	p.Dying = true
	p.DiedAt = now
	p.Powered = false
	p.Power = PowerNone
	p.Penalize(DeathPenalty)
	return true
}

// DeathProgress returns how far the death animation has run, in [0, 1]
func (p *Player) DeathProgress(now time.Time) float64 {
	if !p.Dying {
		return 0
	}
	f := float64(now.Sub(p.DiedAt)) / float64(DeathAnimation)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (p *Player) shift(d time.Duration) {
	if !p.PowerUntil.IsZero() {
		p.PowerUntil = p.PowerUntil.Add(d)
	}
	if !p.DiedAt.IsZero() {
		p.DiedAt = p.DiedAt.Add(d)
	}
	if !p.lastShot.IsZero() {
		p.lastShot = p.lastShot.Add(d)
	}
}
