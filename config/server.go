package config

import (
	"errors"
	"time"
)

// Server holds the leaderboard service's settings
type Server struct {
	ListenAddr        string
	DBPath            string
	AdminPassword     string
	AdminPasswordHash string // bcrypt; wins over AdminPassword
	JWTSecret         string // empty uses a generated secret kept in the database
	PublicURL         string
	ContestEnds       time.Time // zero keeps the contest open
	LogFormat         string
	LogLevel          string
}

// LoadServer resolves server settings from the environment and args
func LoadServer(args []string) (Server, error) {
	s := Server{
		ListenAddr:        env("LISTEN_ADDR", ":8080"),
		DBPath:            env("DB_PATH", "scores.db"),
		AdminPassword:     env("ADMIN_PASSWORD", ""),
		AdminPasswordHash: env("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         env("JWT_SECRET", ""),
		PublicURL:         env("PUBLIC_URL", "http://localhost:8080"),
		LogFormat:         env("LOG_FORMAT", "text"),
		LogLevel:          env("LOG_LEVEL", "info"),
	}
	contest := env("CONTEST_ENDS", "")

	fs := newFlagSet("server")
	fs.StringVar(&s.ListenAddr, "addr", s.ListenAddr, "HTTP listen address")
	fs.StringVar(&s.DBPath, "db", s.DBPath, "sqlite database path")
	fs.StringVar(&s.PublicURL, "public-url", s.PublicURL, "URL encoded in the QR code")
	fs.StringVar(&contest, "contest-ends", contest, "contest end date (YYYY-MM-DD or RFC 3339)")
	fs.StringVar(&s.LogFormat, "log-format", s.LogFormat, "log format: text or json")
	fs.StringVar(&s.LogLevel, "log-level", s.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return Server{}, err
	}

	var err error
	if s.ContestEnds, err = parseDate(contest); err != nil {
		return Server{}, err
	}
	if s.JWTSecret != "" && len(s.JWTSecret) < 16 {
		return Server{}, errors.New("JWT_SECRET must be at least 16 bytes")
	}
	return s, nil
}

// AdminEnabled reports whether moderation is configured
func (s Server) AdminEnabled() bool {
	return s.AdminPassword != "" || s.AdminPasswordHash != ""
}
