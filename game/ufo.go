package game

import "time"

const (
	UFOWidth         = 40.0
	UFOHeight        = 30.0
	UFOY             = 20.0
	UFOSpeed         = 2.0
	UFOSpawnInterval = 7 * time.Second
	UFOSpawnChance   = 0.7
	UFOBasePoints    = 100
	UFOPointStep     = 50
	UFOPointBands    = 4
)

// UFO crosses the top of the playfield carrying a power-up
type UFO struct {
	Rect
	Speed     float64
	Active    bool
	Direction float64 // +1 travels left from the right edge, -1 travels right from the left edge
	Points    int
	Carries   PowerKind
}

// NewUFO spawns a UFO just outside a random side edge heading inward
func NewUFO(rng Rand) *UFO {
	dir := -1.0
	if rng.Float64() < 0.5 {
		dir = 1
	}
	x := -UFOWidth
	if dir == 1 {
		x = Width
	}
	return &UFO{
		Rect:      Rect{X: x, Y: UFOY, W: UFOWidth, H: UFOHeight},
		Speed:     UFOSpeed,
		Active:    true,
		Direction: dir,
		Points:    UFOBasePoints + rng.Intn(UFOPointBands)*UFOPointStep,
		Carries:   randomPower(rng),
	}
}

// Update moves the UFO one tick and deactivates it once it has fully left
// the far side of the playfield
func (u *UFO) Update() {
	if !u.Active {
		return
	}
	u.X -= u.Speed * u.Direction
	if (u.Direction == 1 && u.X < -u.W) || (u.Direction == -1 && u.X > Width) {
		u.Active = false
	}
}
