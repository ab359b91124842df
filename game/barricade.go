package game

const (
	BarricadeCount  = 4
	BarricadeWidth  = 60.0
	BarricadeHeight = 40.0
	BarricadeHealth = 100

	// barricadeLift is the gap between the barricade row and the player row
	barricadeLift = 100.0

	DamageRadius       = 3.0
	SplashRadius       = DamageRadius * 0.7
	SplashJitter       = 2.0
	DamagePerPoint     = 3
	splashPointsPerHit = 2
)

// DamagePoint is an eroded spot, in coordinates local to its barricade
type DamagePoint struct {
	X, Y   float64
	Radius float64
}

// Barricade is a stationary shield that erodes where bullets strike it
type Barricade struct {
	Rect
	Speed  float64
	Health int
	Damage []DamagePoint
}

// NewBarricades builds the row of evenly spaced barricades at full health
func NewBarricades() []Barricade {
	spacing := (Width - BarricadeCount*BarricadeWidth) / (BarricadeCount + 1)
	y := Height - PlayerHeight - barricadeLift
	bs := make([]Barricade, BarricadeCount)
	for i := range bs {
		bs[i] = Barricade{
			Rect: Rect{
				X: spacing + float64(i)*(BarricadeWidth+spacing),
				Y: y,
				W: BarricadeWidth,
				H: BarricadeHeight,
			},
			Health: BarricadeHealth,
		}
	}
	return bs
}

// Hit erodes the barricade where the bullet struck: one point at the impact
// and two smaller jittered splash points around it. Enemy bullets strike
// with their bottom edge, player bullets with their top edge.
func (b *Barricade) Hit(bullet *Bullet, rng Rand) {
	hitX := bullet.CenterX() - b.X
	hitY := bullet.Y - b.Y
	if bullet.Enemy {
		hitY = bullet.Bottom() - b.Y
	}

	b.Damage = append(b.Damage, DamagePoint{X: hitX, Y: hitY, Radius: DamageRadius})
	for i := 0; i < splashPointsPerHit; i++ {
		b.Damage = append(b.Damage, DamagePoint{
			X:      hitX + (rng.Float64()-0.5)*2*SplashJitter,
			Y:      hitY + (rng.Float64()-0.5)*2*SplashJitter,
			Radius: SplashRadius,
		})
	}

	b.Health = BarricadeHealth - DamagePerPoint*len(b.Damage)
	if b.Health < 0 {
		b.Health = 0
	}
}
