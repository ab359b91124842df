package game

const (
	KillPointsPerLevel = 100
	DeathPenalty       = 50
)

// KillPoints returns the score for destroying one enemy on the given level
func KillPoints(level int) int {
	return KillPointsPerLevel * level
}

// AddScore credits points to the player
func (p *Player) AddScore(points int) {
	if points > 0 {
		p.Score += points
	}
}

// Penalize deducts points, never taking the score below zero
func (p *Player) Penalize(points int) {
	p.Score -= points
	if p.Score < 0 {
		p.Score = 0
	}
}
