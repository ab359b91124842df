package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cchutis/halloween-wedding/leaderboard"
)

// timeLayout is fixed width so stored times sort as text
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DB wraps the SQLite database connection. It is the service's
// leaderboard.Store.
type DB struct {
	conn *sql.DB
	now  func() time.Time
}

// OpenDB opens (or creates) the SQLite database. The pragmas go in the DSN
// so every pooled connection gets them, not just the first.
func OpenDB(path string) (*DB, error) {
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	db := &DB{conn: conn, now: time.Now}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		score INTEGER NOT NULL CHECK (score >= 0),
		day TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS analytics_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_type TEXT NOT NULL,
		ip TEXT,
		data TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scores_rank ON scores(score DESC, id ASC);
	CREATE INDEX IF NOT EXISTS idx_events_type ON analytics_events(event_type);
	`
	if _, err := db.conn.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Submit records a score. It implements leaderboard.Store.
func (db *DB) Submit(ctx context.Context, name string, score int) error {
	_, _, err := db.InsertScore(ctx, name, score)
	return err
}

// InsertScore validates and records a score, returning the stored entry
// and its 1-based rank. The rank is read in the insert's transaction, and
// equal scores rank by insertion order, so concurrent inserts never share
// a rank.
func (db *DB) InsertScore(ctx context.Context, name string, score int) (leaderboard.Entry, int, error) {
	now := db.now().UTC()
	e, err := leaderboard.NewEntry(name, score, now)
	if err != nil {
		return leaderboard.Entry{}, 0, err
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return leaderboard.Entry{}, 0, fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO scores (name, score, day, created_at) VALUES (?, ?, ?, ?)",
		e.Name, e.Score, e.Date, now.Format(timeLayout),
	)
	if err != nil {
		return leaderboard.Entry{}, 0, fmt.Errorf("insert score: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return leaderboard.Entry{}, 0, fmt.Errorf("insert score id: %w", err)
	}

	var rank int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM scores WHERE score > ? OR (score = ? AND id <= ?)",
		e.Score, e.Score, e.ID,
	).Scan(&rank)
	if err != nil {
		return leaderboard.Entry{}, 0, fmt.Errorf("rank new score: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return leaderboard.Entry{}, 0, fmt.Errorf("commit score: %w", err)
	}
	return e, rank, nil
}

// Top returns the n best scores, ties in insertion order. It implements
// leaderboard.Store.
func (db *DB) Top(ctx context.Context, n int) ([]leaderboard.Entry, error) {
	rows, err := db.conn.QueryContext(ctx,
		"SELECT id, name, score, day FROM scores ORDER BY score DESC, id ASC LIMIT ?", n,
	)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	result := make([]leaderboard.Entry, 0, n)
	for rows.Next() {
		var e leaderboard.Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.Date); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// CountScores returns the number of recorded scores
func (db *DB) CountScores(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM scores").Scan(&n); err != nil {
		return 0, fmt.Errorf("count scores: %w", err)
	}
	return n, nil
}

// RankFor returns the 1-based position a new score would take. Equal
// scores already on the board stay ahead of it.
func (db *DB) RankFor(ctx context.Context, score int) (int, error) {
	var ahead int
	err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM scores WHERE score >= ?", score).Scan(&ahead)
	if err != nil {
		return 0, fmt.Errorf("rank score: %w", err)
	}
	return ahead + 1, nil
}

// DeleteScore removes an entry, reporting whether it existed
func (db *DB) DeleteScore(ctx context.Context, id int64) (bool, error) {
	res, err := db.conn.ExecContext(ctx, "DELETE FROM scores WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("delete score %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete score %d: %w", id, err)
	}
	return n > 0, nil
}

// TopBefore returns the best score recorded at or before t, or nil when
// there is none
func (db *DB) TopBefore(ctx context.Context, t time.Time) (*leaderboard.Entry, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT id, name, score, day FROM scores
		WHERE created_at <= ?
		ORDER BY score DESC, id ASC LIMIT 1`,
		t.UTC().Format(timeLayout),
	)
	e := &leaderboard.Entry{}
	err := row.Scan(&e.ID, &e.Name, &e.Score, &e.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query winner: %w", err)
	}
	return e, nil
}

// GetSetting returns a stored setting, or "" when unset
func (db *DB) GetSetting(key string) string {
	var v string
	if err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&v); err != nil {
		return ""
	}
	return v
}

// SetSetting stores a setting
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
