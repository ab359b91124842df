package render

import (
	"fmt"
	"math"
	"time"

	"github.com/cchutis/halloween-wedding/game"
	"github.com/cchutis/halloween-wedding/leaderboard"
)

const (
	deathParticles = 12
	deathRadius    = 40.0
	shieldRadius   = 40.0
	hudSize        = 20.0
)

// Prompt is the name-entry panel shown on the game over screen
type Prompt struct {
	Name      string
	HighScore bool
	Status    string
	Caret     bool
}

// Frame is everything one Draw call reads
type Frame struct {
	Game    *game.Game
	Now     time.Time
	Scores  []leaderboard.Entry
	Offline bool // Scores are the fallback set
	Prompt  *Prompt
	Muted   bool
}

// Renderer draws frames. It owns the starfield and records the bounds of
// the buttons it draws into the game's hit regions; it never touches
// gameplay state.
type Renderer struct {
	stars *Starfield
	rng   game.Rand
	poly  []game.Point
}

// New creates a renderer whose starfield and particle jitter draw from rng
func New(rng game.Rand) *Renderer {
	return &Renderer{
		stars: NewStarfield(rng),
		rng:   rng,
	}
}

// Draw paints one frame
func (r *Renderer) Draw(c Canvas, f Frame) {
	g := f.Game
	c.Fill(colorBackground)
	r.stars.Advance(f.Now)
	r.stars.Draw(c)

	switch g.State {
	case game.StateTitle:
		r.drawTitle(c, f)
	case game.StatePlaying, game.StatePaused, game.StateLevelComplete:
		r.drawPlayfield(c, f)
		switch g.State {
		case game.StateLevelComplete:
			c.Text("LEVEL COMPLETE", game.Width/2, game.Height/2, 40, AlignCenter, colorTitle)
			c.Text(fmt.Sprintf("Get ready for level %d", g.Level+1), game.Width/2, game.Height/2+40, 20, AlignCenter, colorWhite)
		case game.StatePaused:
			c.FillRect(0, 0, game.Width, game.Height, alpha(colorBackground, 0.5))
			c.Text("PAUSED", game.Width/2, game.Height/2, 40, AlignCenter, colorWhite)
			c.Text("Press P to resume", game.Width/2, game.Height/2+40, 20, AlignCenter, colorWhite)
		}
	case game.StateGameOver:
		r.drawPlayfield(c, f)
		r.drawGameOver(c, f)
	}

	if f.Muted {
		c.Text("MUTED", game.Width-20, 30, 16, AlignRight, colorMuted)
	}
}

func (r *Renderer) drawPlayfield(c Canvas, f Frame) {
	g := f.Game
	if g.UFO != nil && g.UFO.Active {
		r.drawUFO(c, g.UFO)
	}
	for i := range g.Barricades {
		b := &g.Barricades[i]
		c.FillMask(b.X, b.Y, BarricadeMask(b), colorBarricade)
	}
	for i := range g.Bullets {
		b := &g.Bullets[i]
		if b.Alive {
			drawBullet(c, b)
		}
	}

	p := &g.Player
	if p.Dying {
		r.drawDeath(c, p, f.Now)
	} else {
		r.drawPlayer(c, p)
		if p.Shielded {
			c.StrokeCircle(p.CenterX(), p.CenterY(), shieldRadius, 2, colorShield)
		}
	}

	if g.PowerUp != nil && g.PowerUp.Active {
		pu := g.PowerUp
		c.FillCircle(pu.CenterX(), pu.CenterY(), pu.W/2, powerColor(pu.Kind))
	}
	for i := range g.Formation.Enemies {
		e := &g.Formation.Enemies[i]
		if e.Alive {
			r.drawEnemy(c, e)
		}
	}
	for i := range g.Explosions {
		e := &g.Explosions[i]
		if e.Expired(f.Now) {
			continue
		}
		prog := e.Progress(f.Now)
		c.FillCircle(e.CenterX(), e.CenterY(), e.W/2*(1-0.5*prog), alpha(colorBlast, 1-prog))
	}

	shield := "No Shield"
	if p.Shielded {
		shield = "Shield Active"
	}
	c.Text(fmt.Sprintf("Score: %d", p.Score), 20, 30, hudSize, AlignLeft, colorWhite)
	c.Text(shield, 20, 60, hudSize, AlignLeft, colorWhite)
	c.Text(fmt.Sprintf("Level: %d", g.Level), 20, 90, hudSize, AlignLeft, colorWhite)
}

func drawBullet(c Canvas, b *game.Bullet) {
	switch {
	case b.Beam:
		c.FillRect(b.X, b.Y, b.W, b.H, colorBeam)
		core := b.W * 0.4
		c.FillRect(b.CenterX()-core/2, b.Y, core, b.H, colorWhite)
	case b.Spread:
		c.FillRect(b.X, b.Y, b.W, b.H, colorSpread)
	case b.Enemy:
		c.FillRect(b.X, b.Y, b.W, b.H, colorOrange)
	default:
		c.FillRect(b.X, b.Y, b.W, b.H, colorWhite)
	}
}

func (r *Renderer) drawPlayer(c Canvas, p *game.Player) {
	col := colorWhite
	if p.Powered {
		col = powerColor(p.Power)
	}
	c.FillPolygon(r.points(
		p.CenterX(), p.Y,
		p.X, p.Bottom(),
		p.Right(), p.Bottom(),
	), col)
}

// drawDeath fades a particle burst and a shrinking ship over the death
// animation
func (r *Renderer) drawDeath(c Canvas, p *game.Player, now time.Time) {
	prog := p.DeathProgress(now)
	fade := 1 - prog
	if fade <= 0.1 {
		return
	}
	cx, cy := p.CenterX(), p.CenterY()
	radius := deathRadius * math.Min(1, prog*2) * fade

	for i := 0; i < deathParticles; i++ {
		angle := float64(i) / deathParticles * 2 * math.Pi
		dist := radius * (0.5 + r.rng.Float64()*0.5)
		size := 3 + r.rng.Float64()*3
		col := colorEmber
		if i%2 == 1 {
			col = colorSpark
		}
		c.FillCircle(cx+math.Cos(angle)*dist, cy+math.Sin(angle)*dist, size, alpha(col, fade))
	}
	c.FillCircle(cx, cy, radius/3, alpha(colorBlast, fade))

	w := p.W * fade
	h := p.H * fade
	c.FillPolygon(r.points(
		cx, cy-h/2,
		cx-w/2, cy+h/2,
		cx+w/2, cy+h/2,
	), alpha(colorWhite, fade))
}

// drawUFO draws a witch's hat riding a broomstick, tinted by the power it
// carries
func (r *Renderer) drawUFO(c Canvas, u *game.UFO) {
	col := powerColor(u.Carries)
	c.FillPolygon(r.points(
		u.X+u.W/2, u.Y,
		u.X+u.W*0.7, u.Y+u.H*0.4,
		u.X+u.W*0.3, u.Y+u.H*0.4,
	), col)
	c.FillRect(u.X+u.W*0.2, u.Y+u.H*0.4, u.W*0.6, 3, col)
	c.FillRect(u.X, u.Y+u.H*0.6, u.W, 6, colorBarricade)
}

func (r *Renderer) drawEnemy(c Canvas, e *game.Enemy) {
	col := enemyColor(e.Kind)
	cx, cy := e.CenterX(), e.CenterY()
	switch e.Kind {
	case game.KindGhost:
		// dome on top of a skirt reaching the bottom edge
		dome := r.arc(cx, cy-5, e.W/2, math.Pi, 2*math.Pi, 12)
		dome = append(dome, game.Point{X: e.Right(), Y: e.Bottom()}, game.Point{X: e.X, Y: e.Bottom()})
		c.FillPolygon(dome, col)
		c.FillRect(e.X+10, e.Y+12, 5, 5, colorBackground)
		c.FillRect(e.X+25, e.Y+12, 5, 5, colorBackground)
	case game.KindPumpkin:
		c.FillCircle(cx, cy, e.W/2, col)
		c.FillRect(e.X+10, e.Y+15, 5, 5, colorBackground)
		c.FillRect(e.X+25, e.Y+15, 5, 5, colorBackground)
		c.FillRect(e.X+15, e.Y+25, 10, 5, colorBackground)
	case game.KindBat:
		wing := e.W / 3
		c.FillCircle(cx, cy, e.W/4, col)
		c.FillRect(e.X, e.Y+10, wing, e.H/2, col)
		c.FillRect(e.Right()-wing, e.Y+10, wing, e.H/2, col)
	}
}

// points reuses the renderer's scratch slice for a polygon
func (r *Renderer) points(xy ...float64) []game.Point {
	r.poly = r.poly[:0]
	for i := 0; i+1 < len(xy); i += 2 {
		r.poly = append(r.poly, game.Point{X: xy[i], Y: xy[i+1]})
	}
	return r.poly
}

// arc returns n+1 points along a circle from angle a0 to a1
func (r *Renderer) arc(cx, cy, radius, a0, a1 float64, n int) []game.Point {
	r.poly = r.poly[:0]
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		r.poly = append(r.poly, game.Point{X: cx + math.Cos(a)*radius, Y: cy + math.Sin(a)*radius})
	}
	return r.poly
}
