package main

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/cchutis/halloween-wedding/leaderboard"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInsertAndTop(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	db.now = func() time.Time { return time.Date(2025, 10, 31, 22, 0, 0, 0, time.UTC) }

	for _, s := range []struct {
		name  string
		score int
	}{{"Ghost", 500}, {"Witch", 900}, {"Bat", 500}, {"Mummy", 100}} {
		if _, _, err := db.InsertScore(ctx, s.name, s.score); err != nil {
			t.Fatalf("insert %s: %v", s.name, err)
		}
	}

	top, err := db.Top(ctx, 3)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	want := []string{"Witch", "Ghost", "Bat"}
	if len(top) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(top))
	}
	for i, name := range want {
		if top[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i+1, name, top[i].Name)
		}
	}
	if top[0].Date != "2025-10-31" {
		t.Errorf("expected date 2025-10-31, got %s", top[0].Date)
	}
	if top[0].ID == 0 {
		t.Error("expected stored entries to carry an id")
	}
}

func TestInsertScoreNormalizesAndRejects(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	e, _, err := db.InsertScore(ctx, "   Count Dracula of Transylvania   ", 10)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if e.Name != "Count Dracula of Tra" {
		t.Errorf("expected name capped at 20 runes, got %q", e.Name)
	}

	if _, _, err := db.InsertScore(ctx, "   ", 10); !errors.Is(err, leaderboard.ErrInvalidEntry) {
		t.Errorf("expected ErrInvalidEntry for blank name, got %v", err)
	}
	if _, _, err := db.InsertScore(ctx, "Ghost", -1); !errors.Is(err, leaderboard.ErrInvalidEntry) {
		t.Errorf("expected ErrInvalidEntry for negative score, got %v", err)
	}
	if n, _ := db.CountScores(ctx); n != 1 {
		t.Errorf("expected 1 stored score, got %d", n)
	}
}

func TestRankFor(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if r, _ := db.RankFor(ctx, 0); r != 1 {
		t.Errorf("empty board: expected rank 1, got %d", r)
	}
	db.Submit(ctx, "A", 300)
	db.Submit(ctx, "B", 200)
	db.Submit(ctx, "C", 100)

	cases := map[int]int{
		400: 1,
		300: 2, // ties rank behind the existing entry
		250: 2,
		50:  4,
	}
	for score, want := range cases {
		got, err := db.RankFor(ctx, score)
		if err != nil {
			t.Fatalf("rank %d: %v", score, err)
		}
		if got != want {
			t.Errorf("score %d: expected rank %d, got %d", score, want, got)
		}
	}
}

func TestInsertScoreRanks(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, first, _ := db.InsertScore(ctx, "A", 300)
	_, tie, _ := db.InsertScore(ctx, "B", 300)
	_, low, _ := db.InsertScore(ctx, "C", 100)
	_, high, _ := db.InsertScore(ctx, "D", 900)
	if first != 1 || tie != 2 || low != 3 || high != 1 {
		t.Errorf("ranks = %d %d %d %d, want 1 2 3 1", first, tie, low, high)
	}
}

func TestConcurrentInsertsGetDistinctRanks(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	const n = 10

	var mu sync.Mutex
	var wg sync.WaitGroup
	ranks := make([]int, 0, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, rank, err := db.InsertScore(ctx, "Twin", 500)
			if err != nil {
				t.Errorf("insert: %v", err)
				return
			}
			mu.Lock()
			ranks = append(ranks, rank)
			mu.Unlock()
		}()
	}
	wg.Wait()

	sort.Ints(ranks)
	if len(ranks) != n {
		t.Fatalf("got %d ranks", len(ranks))
	}
	for i, r := range ranks {
		if r != i+1 {
			t.Fatalf("ranks = %v, want 1..%d", ranks, n)
		}
	}
}

func TestDeleteScore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	e, _, _ := db.InsertScore(ctx, "Ghost", 100)
	found, err := db.DeleteScore(ctx, e.ID)
	if err != nil || !found {
		t.Fatalf("expected delete to find entry, got found=%v err=%v", found, err)
	}
	found, err = db.DeleteScore(ctx, e.ID)
	if err != nil || found {
		t.Fatalf("expected second delete to miss, got found=%v err=%v", found, err)
	}
}

func TestTopBefore(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	ends := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	if w, err := db.TopBefore(ctx, ends); err != nil || w != nil {
		t.Fatalf("expected no winner on empty board, got %v %v", w, err)
	}

	db.now = func() time.Time { return ends.Add(-time.Hour) }
	db.Submit(ctx, "OnTime", 500)
	db.now = func() time.Time { return ends.Add(time.Minute) }
	db.Submit(ctx, "Late", 900)

	w, err := db.TopBefore(ctx, ends)
	if err != nil {
		t.Fatalf("winner: %v", err)
	}
	if w == nil || w.Name != "OnTime" {
		t.Errorf("expected OnTime to win, got %+v", w)
	}
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)
	if v := db.GetSetting("missing"); v != "" {
		t.Errorf("expected empty setting, got %q", v)
	}
	if err := db.SetSetting("k", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.SetSetting("k", "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v := db.GetSetting("k"); v != "two" {
		t.Errorf("expected two, got %q", v)
	}
}

func TestContest(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	ends := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)

	open := Contest{}
	if open.Closed(ends.Add(100 * time.Hour)) {
		t.Error("contest without an end should never close")
	}
	c := Contest{Ends: ends}
	if c.Closed(ends) {
		t.Error("contest should still be open at its end instant")
	}
	if !c.Closed(ends.Add(time.Second)) {
		t.Error("contest should be closed after its end")
	}

	db.now = func() time.Time { return ends.Add(-time.Minute) }
	db.Submit(ctx, "Early", 100)
	db.now = func() time.Time { return ends.Add(time.Minute) }
	db.Submit(ctx, "Late", 200)

	w, _ := open.Winner(ctx, db)
	if w == nil || w.Name != "Late" {
		t.Errorf("open contest: expected current leader Late, got %+v", w)
	}
	w, _ = c.Winner(ctx, db)
	if w == nil || w.Name != "Early" {
		t.Errorf("closed contest: expected Early, got %+v", w)
	}
}
