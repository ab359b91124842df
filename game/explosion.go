package game

import "time"

const (
	ExplosionSize     = 50.0
	ExplosionDuration = 500 * time.Millisecond
	SpreadBlastScale  = 3.0
)

// Explosion is a purely visual burst
type Explosion struct {
	Rect
	Active   bool
	Duration time.Duration
	Start    time.Time
}

// NewExplosion creates a burst of size w by h centered on (cx, cy)
func NewExplosion(cx, cy, w, h float64, now time.Time) Explosion {
	return Explosion{
		Rect:     Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h},
		Active:   true,
		Duration: ExplosionDuration,
		Start:    now,
	}
}

// Progress returns the elapsed fraction of the burst, in [0, 1]
func (e *Explosion) Progress(now time.Time) float64 {
	if e.Duration <= 0 {
		return 1
	}
	f := float64(now.Sub(e.Start)) / float64(e.Duration)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Expired reports whether the burst has run its course
func (e *Explosion) Expired(now time.Time) bool {
	return !e.Active || now.Sub(e.Start) >= e.Duration
}
