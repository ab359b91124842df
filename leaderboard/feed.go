package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	feedMinBackoff = time.Second
	feedMaxBackoff = 30 * time.Second
)

// Feed follows the service's live top-N websocket and hands every snapshot
// to a callback
type Feed struct {
	url    string
	dialer *websocket.Dialer
	log    *logrus.Entry
}

// NewFeed creates a subscriber for the websocket at url, e.g.
// "ws://localhost:8080/ws"
func NewFeed(url string) *Feed {
	return &Feed{
		url:    url,
		dialer: websocket.DefaultDialer,
		log:    logrus.WithField("component", "feed"),
	}
}

// Run connects, delivers snapshots and reconnects with doubling backoff
// until ctx is done. down is called every time the connection is lost.
func (f *Feed) Run(ctx context.Context, up func(Snapshot), down func(error)) {
	backoff := feedMinBackoff
	for {
		err := f.follow(ctx, func(s Snapshot) {
			backoff = feedMinBackoff
			up(s)
		})
		if ctx.Err() != nil {
			return
		}
		f.log.WithError(err).WithField("retry_in", backoff).Warn("live feed lost")
		down(err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > feedMaxBackoff {
			backoff = feedMaxBackoff
		}
	}
}

// follow reads one connection until it fails
func (f *Feed) follow(ctx context.Context, up func(Snapshot)) error {
	conn, _, err := f.dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		return fmt.Errorf("dial feed: %w: %v", ErrUnavailable, err)
	}
	defer conn.Close()
	f.log.WithField("url", f.url).Debug("live feed connected")

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		kind, msg, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read feed: %w: %v", ErrUnavailable, err)
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		s, err := DecodeSnapshot(msg)
		if err != nil {
			f.log.WithError(err).Warn("bad feed frame")
			continue
		}
		up(s)
	}
}

// EncodeSnapshot packs a snapshot for the wire
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	return msgpack.Marshal(&s)
}

// DecodeSnapshot unpacks one feed frame
func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return s, nil
}
