package main

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cchutis/halloween-wedding/leaderboard"
)

func newTestHost() *host {
	return &host{
		offline: leaderboard.NewMemoryStore(),
		log:     logrus.WithField("component", "host"),
	}
}

func sentPrompt(t *testing.T, name string, score int) *namePrompt {
	t.Helper()
	p := newNamePrompt(score, nil)
	p.typeRunes([]rune(name))
	if _, ok := p.submit(); !ok {
		t.Fatalf("could not submit %q", name)
	}
	return p
}

func TestFailedSubmitKeptAfterPromptClosed(t *testing.T) {
	h := newTestHost()
	h.prompt = nil // player already clicked Play Again

	h.settle(leaderboard.SubmitResult{Name: "Ann", Score: 900, Err: leaderboard.ErrUnavailable})

	top, _ := h.offline.Top(context.Background(), 1)
	if len(top) != 1 || top[0].Name != "Ann" || top[0].Score != 900 {
		t.Fatalf("offline board = %+v", top)
	}
}

func TestLateResultLeavesNewPromptAlone(t *testing.T) {
	h := newTestHost()
	h.prompt = newNamePrompt(50, nil) // next game ended before the result

	h.settle(leaderboard.SubmitResult{Name: "Ann", Score: 900, Err: leaderboard.ErrUnavailable})

	if h.prompt.status != "" {
		t.Errorf("new prompt status = %q", h.prompt.status)
	}
	top, _ := h.offline.Top(context.Background(), 5)
	if len(top) != 1 || top[0].Name != "Ann" {
		t.Errorf("offline board = %+v", top)
	}

	h.settle(leaderboard.SubmitResult{Name: "Ann", Score: 900})
	if h.prompt.status != "" {
		t.Errorf("new prompt status after success = %q", h.prompt.status)
	}
}

func TestResultFinishesItsOwnPrompt(t *testing.T) {
	h := newTestHost()
	h.prompt = sentPrompt(t, "Ann", 900)

	h.settle(leaderboard.SubmitResult{Name: "Bob", Score: 900})
	if h.prompt.status != statusSubmitting {
		t.Errorf("status after other result = %q", h.prompt.status)
	}

	h.settle(leaderboard.SubmitResult{Name: "Ann", Score: 900})
	if h.prompt.status != statusSubmitted {
		t.Errorf("status = %q", h.prompt.status)
	}
	if h.offline.Len() != 0 {
		t.Error("successful score kept offline")
	}
}

func TestFailedResultMarksOwnPrompt(t *testing.T) {
	h := newTestHost()
	h.prompt = sentPrompt(t, "Ann", 900)

	h.settle(leaderboard.SubmitResult{Name: "Ann", Score: 900, Err: leaderboard.ErrUnavailable})
	if h.prompt.status != statusFailed {
		t.Errorf("status = %q", h.prompt.status)
	}
	if h.offline.Len() != 1 {
		t.Errorf("offline scores = %d", h.offline.Len())
	}
}
