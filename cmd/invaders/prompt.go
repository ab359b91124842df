package main

import (
	"strings"
	"unicode"

	"github.com/cchutis/halloween-wedding/leaderboard"
	"github.com/cchutis/halloween-wedding/render"
)

const (
	statusSubmitting = "Submitting..."
	statusSubmitted  = "Submitted"
	statusFailed     = "Failed (saved offline)"
)

// namePrompt is the score submission dialog of one finished game
type namePrompt struct {
	score     int
	highScore bool
	name      []rune
	status    string
	sent      bool
	sentName  string
}

func newNamePrompt(score int, top []leaderboard.Entry) *namePrompt {
	return &namePrompt{score: score, highScore: leaderboard.IsHighScore(score, top)}
}

// typeRunes appends printable runes up to the name limit
func (p *namePrompt) typeRunes(rs []rune) {
	if p.sent {
		return
	}
	for _, r := range rs {
		if len(p.name) >= leaderboard.MaxNameRunes {
			return
		}
		if unicode.IsPrint(r) {
			p.name = append(p.name, r)
		}
	}
}

func (p *namePrompt) backspace() {
	if !p.sent && len(p.name) > 0 {
		p.name = p.name[:len(p.name)-1]
	}
}

// submit returns the trimmed name and marks the prompt sent, or false when
// there is nothing to send
func (p *namePrompt) submit() (string, bool) {
	if p.sent {
		return "", false
	}
	name := strings.TrimSpace(string(p.name))
	if name == "" {
		return "", false
	}
	p.sent = true
	p.sentName = name
	p.status = statusSubmitting
	return name, true
}

// awaits reports whether the prompt is waiting on the result for name and
// score
func (p *namePrompt) awaits(name string, score int) bool {
	return p.sent && p.status == statusSubmitting && p.sentName == name && p.score == score
}

func (p *namePrompt) finish(err error) {
	if err != nil {
		p.status = statusFailed
		return
	}
	p.status = statusSubmitted
}

func (p *namePrompt) view(caret bool) *render.Prompt {
	return &render.Prompt{
		Name:      string(p.name),
		HighScore: p.highScore,
		Status:    p.status,
		Caret:     caret && !p.sent,
	}
}
