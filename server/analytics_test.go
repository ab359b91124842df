package main

import (
	"context"
	"testing"
	"time"
)

func TestAnalyticsFlushOnStop(t *testing.T) {
	db := openTestDB(t)
	a := newAnalytics(db, time.Hour)

	a.Track(EvtScoreSubmit, "1.1.1.1", `{"score":10}`)
	a.Track(EvtScoreSubmit, "1.1.1.1", "")
	a.Track(EvtFeedConnect, "", "")
	a.Stop()
	a.Track(EvtFeedConnect, "", "") // dropped after stop
	a.Stop()

	counts, err := a.EventCounts(context.Background())
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[EvtScoreSubmit] != 2 || counts[EvtFeedConnect] != 1 {
		t.Errorf("unexpected counts %v", counts)
	}
}

func TestAnalyticsFlushOnTicker(t *testing.T) {
	db := openTestDB(t)
	a := newAnalytics(db, 10*time.Millisecond)
	defer a.Stop()

	a.Track(EvtAdminLogin, "ip", "")
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		counts, err := a.EventCounts(context.Background())
		if err != nil {
			t.Fatalf("counts: %v", err)
		}
		if counts[EvtAdminLogin] == 1 {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("event was not flushed by the ticker")
}
