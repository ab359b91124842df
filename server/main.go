// Command server runs the reception leaderboard: score REST API, live top-N
// feed, admin moderation and the QR code that points phones at the game
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cchutis/halloween-wedding/config"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.LoadEnv(); err != nil {
		logrus.WithError(err).Warn("ignoring .env")
	}
	cfg, err := config.LoadServer(os.Args[1:])
	if err != nil {
		logrus.WithError(err).Fatal("bad configuration")
	}
	if err := config.SetupLogging(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.WithError(err).Warn("keeping default log level")
	}
	log := logrus.WithField("component", "main")

	db, err := OpenDB(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("database unavailable")
	}
	defer db.Close()

	auth, err := NewAuth(db, cfg.AdminPassword, cfg.AdminPasswordHash, cfg.JWTSecret)
	if err != nil {
		log.WithError(err).Fatal("admin auth setup failed")
	}
	if !cfg.AdminEnabled() {
		log.Warn("no admin password configured, moderation disabled")
	}

	analytics := NewAnalytics(db)
	defer analytics.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hub := NewHub()
	go hub.Run(ctx)

	srv := NewServer(db, auth, hub, analytics, Contest{Ends: cfg.ContestEnds}, cfg.PublicURL)
	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.WithFields(logrus.Fields{
			"addr":       cfg.ListenAddr,
			"db":         cfg.DBPath,
			"public_url": cfg.PublicURL,
		}).Info("server starting")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("ListenAndServe")
		}
	}()

	<-stop
	log.Info("shutting down")
	shutdownCtx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("forced shutdown")
	}
	cancel()
}
