// Command invaders runs the Wedding Invaders client
package main

import (
	"context"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/cchutis/halloween-wedding/audio"
	"github.com/cchutis/halloween-wedding/config"
	"github.com/cchutis/halloween-wedding/game"
	"github.com/cchutis/halloween-wedding/leaderboard"
	"github.com/cchutis/halloween-wedding/render"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		logrus.WithError(err).Warn("ignoring .env")
	}
	cfg, err := config.LoadClient(os.Args[1:])
	if err != nil {
		logrus.WithError(err).Fatal("bad configuration")
	}
	if err := config.SetupLogging(cfg.LogLevel, ""); err != nil {
		logrus.WithError(err).Warn("keeping default log level")
	}
	log := logrus.WithField("component", "main")

	sounds := audio.NewManager()
	if err := sounds.Init(); err != nil {
		log.WithError(err).Warn("no audio device, playing silent")
	}
	defer sounds.Close()
	sounds.SetMuted(cfg.Muted)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store leaderboard.Store = leaderboard.NewMemoryStore()
	if cfg.LeaderboardURL != "" {
		store = leaderboard.NewHTTPStore(cfg.LeaderboardURL)
	}
	reporter := leaderboard.NewReporter(store)
	reporter.Refresh()
	if cfg.LeaderboardURL != "" {
		go reporter.Watch(ctx, leaderboard.NewFeed(feedURL(cfg.LeaderboardURL)))
	}

	sim, view := rands(cfg.Seed)
	g := game.New(
		game.WithRand(sim),
		game.WithSounds(sounds),
		game.WithScoreSink(reporter),
	)
	h := newHost(g, render.New(view), sounds, reporter)

	ebiten.SetWindowSize(int(game.Width*cfg.Scale), int(game.Height*cfg.Scale))
	ebiten.SetWindowTitle("Wedding Invaders")
	ebiten.SetTPS(game.TickRate)

	log.WithField("leaderboard", cfg.LeaderboardURL).Info("starting")
	if err := ebiten.RunGame(h); err != nil {
		log.WithError(err).Fatal("game stopped")
	}
}

// rands returns separate sources for the simulation and the renderer.
// Drawing consumes random numbers once per frame, so sharing one source
// would make a seeded game depend on the frame rate.
func rands(seed int64) (sim, view game.Rand) {
	if seed == 0 {
		return game.NewRand(0), game.NewRand(0)
	}
	return game.NewRand(seed), game.NewRand(seed + 1)
}

// feedURL maps the service base URL onto its websocket endpoint
func feedURL(base string) string {
	base = strings.TrimRight(base, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		base = "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		base = "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base + "/ws"
}
