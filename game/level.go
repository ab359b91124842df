package game

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	MinEnemyRows       = 3
	MaxEnemyRows       = 5
	LevelCompleteDelay = 2 * time.Second
)

// RowsForLevel returns the grid height for level n
func RowsForLevel(n int) int {
	rows := MinEnemyRows + n/2
	if rows > MaxEnemyRows {
		return MaxEnemyRows
	}
	return rows
}

// EnemySpeedForLevel returns the per-enemy speed for level n
func EnemySpeedForLevel(n int) float64 {
	return EnemyBaseSpeed + float64(n)*EnemySpeedPerLevel
}

// StartLevel sets up level n: a fresh grid and barricades, no projectiles,
// UFO, power-up or armed shot, and every spawn timer restarted at now.
func (g *Game) StartLevel(n int, now time.Time) {
	g.Level = n
	g.Formation = NewFormation(RowsForLevel(n), EnemySpeedForLevel(n), now)
	g.Barricades = NewBarricades()
	g.Bullets = g.Bullets[:0]
	g.Explosions = g.Explosions[:0]
	g.PowerUp = nil
	g.clearUFO()
	g.Player.disarm()

	g.lastUFOCheck = now
	g.lastEnemyShot = now

	g.log.WithFields(logrus.Fields{
		"level":   n,
		"enemies": g.Formation.Initial(),
	}).Debug("level started")
}

func (g *Game) completeLevel(now time.Time) {
	g.setState(StateLevelComplete)
	g.LevelCompleteAt = now
}

// advanceLevel leaves levelComplete once the delay has passed
func (g *Game) advanceLevel(now time.Time) {
	if now.Sub(g.LevelCompleteAt) < LevelCompleteDelay {
		return
	}
	g.StartLevel(g.Level+1, now)
	g.setState(StatePlaying)
}
