package leaderboard

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNameRunes = 20
	DefaultLimit = 10
	MaxLimit     = 100
	DateLayout   = "2006-01-02"
)

var (
	// ErrUnavailable is returned when the store cannot be reached
	ErrUnavailable = errors.New("leaderboard unavailable")
	// ErrInvalidEntry is returned for an empty name or a negative score
	ErrInvalidEntry = errors.New("invalid leaderboard entry")
)

// Entry is one recorded score
type Entry struct {
	ID    int64  `json:"id,omitempty" msgpack:"id"`
	Name  string `json:"name" msgpack:"n"`
	Score int    `json:"score" msgpack:"s"`
	Date  string `json:"date" msgpack:"d"`
}

// Snapshot is one frame of the live feed: the current top entries, the
// number of recorded scores and the unix millisecond time it was taken
type Snapshot struct {
	Entries []Entry `msgpack:"e"`
	Total   int     `msgpack:"t"`
	At      int64   `msgpack:"at"`
}

// NormalizeName trims surrounding space and caps the name at MaxNameRunes
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) <= MaxNameRunes {
		return name
	}
	runes := []rune(name)
	return strings.TrimSpace(string(runes[:MaxNameRunes]))
}

// NewEntry validates and normalizes a submission
func NewEntry(name string, score int, now time.Time) (Entry, error) {
	name = NormalizeName(name)
	if name == "" || score < 0 {
		return Entry{}, ErrInvalidEntry
	}
	return Entry{Name: name, Score: score, Date: now.Format(DateLayout)}, nil
}

// ClampLimit maps a requested row count onto [1, MaxLimit], with
// DefaultLimit for anything not positive
func ClampLimit(n int) int {
	if n <= 0 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// IsHighScore reports whether score would take first place on the board
func IsHighScore(score int, top []Entry) bool {
	if len(top) == 0 {
		return true
	}
	return score > top[0].Score
}

// Fallback returns the scores shown when the leaderboard is offline
func Fallback() []Entry {
	return []Entry{
		{Name: "Ghost Bride", Score: 12000},
		{Name: "Zombie Groom", Score: 10500},
		{Name: "Spooky DJ", Score: 9000},
		{Name: "Phantom Baker", Score: 8500},
		{Name: "Witch Officiant", Score: 7500},
	}
}
