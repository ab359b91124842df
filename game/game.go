package game

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	TickRate     = 60 // simulation ticks per second
	TickDuration = time.Second / TickRate
)

// ScoreSink receives the final score of every finished game
type ScoreSink interface {
	GameOver(score int)
}

// Game holds the complete state of one game and drives its lifecycle.
// It is not safe for concurrent use; the host calls Update from a single
// loop.
type Game struct {
	State      State
	Level      int
	Player     Player
	Formation  *Formation
	Bullets    []Bullet
	Barricades []Barricade
	UFO        *UFO
	PowerUp    *PowerUp
	Explosions []Explosion
	Buttons    HitRegions

	LevelCompleteAt time.Time
	PausedAt        time.Time

	lastUFOCheck  time.Time
	lastEnemyShot time.Time
	shieldGrace   bool // shield absorbed a hit during the current tick
	reported      bool

	rng     Rand
	sounds  Sounds
	scores  ScoreSink
	grid    SpatialGrid
	scratch []int
	log     *logrus.Entry
}

// Option configures a Game
type Option func(*Game)

// WithRand sets the random source
func WithRand(r Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithSounds sets the audio collaborator
func WithSounds(s Sounds) Option {
	return func(g *Game) { g.sounds = s }
}

// WithScoreSink sets where final scores are reported
func WithScoreSink(s ScoreSink) Option {
	return func(g *Game) { g.scores = s }
}

// New creates a game on the title screen
func New(opts ...Option) *Game {
	g := &Game{
		State:     StateTitle,
		Player:    NewPlayer(),
		Formation: &Formation{Direction: 1, Boost: 1},
		sounds:    NopSounds{},
		log:       logrus.WithField("component", "game"),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewRand(0)
	}
	g.sounds.Play(MusicTitle)
	return g
}

// Start resets the player and begins level 1
func (g *Game) Start(now time.Time) {
	g.Player = NewPlayer()
	g.reported = false
	g.StartLevel(1, now)
	g.setState(StatePlaying)
	g.sounds.Play(MusicGameLoop)
}

// Update advances the game by one tick. now is the host's wall-clock time
// for the tick and drives every timer.
func (g *Game) Update(now time.Time, in Input) {
	switch g.State {
	case StateTitle:
		if in.Clicked && g.Buttons.startHit(in.Click) {
			g.Start(now)
		}
	case StatePlaying:
		if in.Pause {
			g.pause(now)
			return
		}
		g.step(now, in)
	case StatePaused:
		if in.Pause {
			g.resume(now)
		}
	case StateLevelComplete:
		g.advanceLevel(now)
	case StateGameOver:
		if in.Clicked && g.Buttons.playAgainHit(in.Click) {
			g.Start(now)
		}
	}
}

// Score returns the player's current score
func (g *Game) Score() int { return g.Player.Score }

func (g *Game) setState(s State) {
	if g.State == s {
		return
	}
	g.log.WithFields(logrus.Fields{
		"from":  g.State.String(),
		"to":    s.String(),
		"level": g.Level,
		"score": g.Player.Score,
	}).Debug("state change")
	g.State = s
}

func (g *Game) pause(now time.Time) {
	g.PausedAt = now
	g.setState(StatePaused)
}

// resume moves every running timer forward by the time spent paused so
// nothing fires early
func (g *Game) resume(now time.Time) {
	d := now.Sub(g.PausedAt)
	if d > 0 {
		g.lastUFOCheck = g.lastUFOCheck.Add(d)
		g.lastEnemyShot = g.lastEnemyShot.Add(d)
		g.Formation.LastMove = g.Formation.LastMove.Add(d)
		g.Player.shift(d)
		for i := range g.Explosions {
			g.Explosions[i].Start = g.Explosions[i].Start.Add(d)
		}
	}
	g.PausedAt = time.Time{}
	g.setState(StatePlaying)
}

func (g *Game) gameOver() {
	if g.State == StateGameOver {
		return
	}
	g.clearUFO()
	g.setState(StateGameOver)
	g.sounds.Play(MusicGameOver)
	if g.reported {
		return
	}
	g.reported = true
	g.log.WithFields(logrus.Fields{"score": g.Player.Score, "level": g.Level}).Info("game over")
	if g.scores != nil {
		g.scores.GameOver(g.Player.Score)
	}
}

func (g *Game) clearUFO() {
	if g.UFO != nil {
		g.UFO = nil
		g.sounds.Stop(SoundUFO)
	}
}
