package main

import (
	"context"
	"time"

	"github.com/cchutis/halloween-wedding/leaderboard"
)

// Contest is the reception's score contest. A zero Ends means it never
// closes.
type Contest struct {
	Ends time.Time
}

// Closed reports whether scores recorded at now no longer count
func (c Contest) Closed(now time.Time) bool {
	return !c.Ends.IsZero() && now.After(c.Ends)
}

// Winner returns the best entry recorded by the end of the contest, or the
// current leader while it is still open
func (c Contest) Winner(ctx context.Context, db *DB) (*leaderboard.Entry, error) {
	if c.Ends.IsZero() {
		top, err := db.Top(ctx, 1)
		if err != nil || len(top) == 0 {
			return nil, err
		}
		return &top[0], nil
	}
	return db.TopBefore(ctx, c.Ends)
}
