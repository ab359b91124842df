package main

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Event types for analytics tracking
const (
	EvtScoreSubmit  = "score_submit"
	EvtScoreDelete  = "score_delete"
	EvtAdminLogin   = "admin_login"
	EvtFeedConnect  = "feed_connect"
	EvtQRCodeServed = "qr_served"
)

const (
	analyticsBuffer     = 1024
	analyticsBatch      = 50
	analyticsFlushEvery = 5 * time.Second
)

// AnalyticsEvent represents a single trackable event
type AnalyticsEvent struct {
	Type      string
	IP        string
	Data      string // JSON metadata (optional)
	Timestamp time.Time
}

// Analytics handles event tracking with batched background writes
type Analytics struct {
	db     *DB
	events chan AnalyticsEvent
	stop   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
	every  time.Duration
	log    *logrus.Entry
}

// NewAnalytics creates and starts the analytics background writer
func NewAnalytics(db *DB) *Analytics {
	return newAnalytics(db, analyticsFlushEvery)
}

func newAnalytics(db *DB, every time.Duration) *Analytics {
	a := &Analytics{
		db:     db,
		events: make(chan AnalyticsEvent, analyticsBuffer),
		stop:   make(chan struct{}),
		every:  every,
		log:    logrus.WithField("component", "analytics"),
	}
	a.wg.Add(1)
	go a.writer()
	return a
}

// Track enqueues an event for async persistence (non-blocking)
func (a *Analytics) Track(evtType, ip, data string) {
	select {
	case <-a.stop:
		return
	default:
	}
	select {
	case a.events <- AnalyticsEvent{
		Type:      evtType,
		IP:        ip,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}:
	default:
		// Channel full, drop the event rather than block a handler
	}
}

// Stop flushes what is queued and shuts the writer down
func (a *Analytics) Stop() {
	a.once.Do(func() { close(a.stop) })
	a.wg.Wait()
}

// writer is the background goroutine that batches and writes events to DB
func (a *Analytics) writer() {
	defer a.wg.Done()

	batch := make([]AnalyticsEvent, 0, analyticsBatch)
	ticker := time.NewTicker(a.every)
	defer ticker.Stop()

	for {
		select {
		case evt := <-a.events:
			batch = append(batch, evt)
			if len(batch) >= analyticsBatch {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				a.flush(batch)
				batch = batch[:0]
			}
		case <-a.stop:
			// Drain remaining events
			for {
				select {
				case evt := <-a.events:
					batch = append(batch, evt)
				default:
					a.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes a batch of events in one transaction
func (a *Analytics) flush(events []AnalyticsEvent) {
	if a.db == nil || len(events) == 0 {
		return
	}
	if err := a.write(events); err != nil {
		a.log.WithError(err).WithField("events", len(events)).Warn("dropping analytics batch")
	}
}

func (a *Analytics) write(events []AnalyticsEvent) error {
	tx, err := a.db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO analytics_events (event_type, ip, data, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, evt := range events {
		ip := sql.NullString{String: evt.IP, Valid: evt.IP != ""}
		data := sql.NullString{String: evt.Data, Valid: evt.Data != ""}
		if _, err := stmt.Exec(evt.Type, ip, data, evt.Timestamp.Format(timeLayout)); err != nil {
			return fmt.Errorf("insert %s: %w", evt.Type, err)
		}
	}
	return tx.Commit()
}

// EventCounts returns the number of recorded events of each type
func (a *Analytics) EventCounts(ctx context.Context) (map[string]int, error) {
	result := make(map[string]int)
	if a.db == nil {
		return result, nil
	}
	rows, err := a.db.conn.QueryContext(ctx, `
		SELECT event_type, COUNT(*) FROM analytics_events
		GROUP BY event_type ORDER BY COUNT(*) DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("count events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var evtType string
		var count int
		if err := rows.Scan(&evtType, &count); err != nil {
			return nil, fmt.Errorf("scan event count: %w", err)
		}
		result[evtType] = count
	}
	return result, rows.Err()
}
