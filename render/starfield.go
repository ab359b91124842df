package render

import (
	"time"

	"github.com/cchutis/halloween-wedding/game"
)

const (
	StarCount    = 50
	StarInterval = 50 * time.Millisecond // the field drifts at most this often
)

type star struct {
	x, y    float64
	size    float64
	opacity float64
}

// Starfield is the slowly drifting background
type Starfield struct {
	stars   []star
	lastRun time.Time
}

// NewStarfield scatters the stars across the playfield
func NewStarfield(rng game.Rand) *Starfield {
	s := &Starfield{stars: make([]star, StarCount)}
	for i := range s.stars {
		s.stars[i] = star{
			x:       rng.Float64() * game.Width,
			y:       rng.Float64() * game.Height,
			size:    rng.Float64()*2 + 1,
			opacity: rng.Float64()*0.7 + 0.3,
		}
	}
	return s
}

// Advance moves every star down one unit, wrapping at the bottom, if at
// least StarInterval has passed since the last move
func (s *Starfield) Advance(now time.Time) {
	if !s.lastRun.IsZero() && now.Sub(s.lastRun) < StarInterval {
		return
	}
	s.lastRun = now
	for i := range s.stars {
		st := &s.stars[i]
		st.y++
		if st.y >= game.Height {
			st.y -= game.Height
		}
	}
}

// Draw paints the stars
func (s *Starfield) Draw(c Canvas) {
	for _, st := range s.stars {
		c.FillCircle(st.x, st.y, st.size, alpha(colorWhite, st.opacity))
	}
}
