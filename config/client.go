package config

import "fmt"

// Client holds the game client's settings
type Client struct {
	LeaderboardURL string // empty plays offline against an in-memory board
	Muted          bool
	Seed           int64 // zero seeds from the clock
	Scale          float64
	LogLevel       string
}

// LoadClient resolves client settings from the environment and args
func LoadClient(args []string) (Client, error) {
	c := Client{
		LeaderboardURL: env("LEADERBOARD_URL", ""),
		Muted:          envBool("INVADERS_MUTED", false),
		Seed:           envInt("INVADERS_SEED", 0),
		Scale:          envFloat("INVADERS_SCALE", 1),
		LogLevel:       env("LOG_LEVEL", "info"),
	}

	fs := newFlagSet("invaders")
	fs.StringVar(&c.LeaderboardURL, "leaderboard", c.LeaderboardURL, "leaderboard service base URL")
	fs.BoolVar(&c.Muted, "muted", c.Muted, "start with sound muted")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 = clock)")
	fs.Float64Var(&c.Scale, "scale", c.Scale, "window scale factor")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level")
	if err := fs.Parse(args); err != nil {
		return Client{}, err
	}

	if c.Scale <= 0 {
		return Client{}, fmt.Errorf("scale must be positive, got %v", c.Scale)
	}
	return c, nil
}
