package main

import (
	"context"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/sirupsen/logrus"

	"github.com/cchutis/halloween-wedding/audio"
	"github.com/cchutis/halloween-wedding/game"
	"github.com/cchutis/halloween-wedding/leaderboard"
	"github.com/cchutis/halloween-wedding/render"
)

// host runs the game inside ebiten. ebiten calls Update and Draw from one
// goroutine, so nothing here needs locking.
type host struct {
	game     *game.Game
	renderer *render.Renderer
	canvas   canvas
	sounds   *audio.Manager
	reporter *leaderboard.Reporter
	offline  *leaderboard.MemoryStore // scores that could not be sent
	board    leaderboard.Board
	prompt   *namePrompt
	chars    []rune
	now      func() time.Time
	log      *logrus.Entry
}

func newHost(g *game.Game, r *render.Renderer, sounds *audio.Manager, rep *leaderboard.Reporter) *host {
	return &host{
		game:     g,
		renderer: r,
		sounds:   sounds,
		reporter: rep,
		offline:  leaderboard.NewMemoryStore(),
		board:    leaderboard.Board{Entries: leaderboard.Fallback(), Offline: true},
		now:      time.Now,
		log:      logrus.WithField("component", "host"),
	}
}

// Update implements ebiten.Game
func (h *host) Update() error {
	now := h.now()
	h.drain()

	if inpututil.IsKeyJustPressed(ebiten.KeyM) && h.prompt == nil {
		muted := h.sounds.ToggleMute()
		h.log.WithField("muted", muted).Debug("mute toggled")
	}
	if h.game.State == game.StateGameOver && h.prompt != nil {
		h.editPrompt()
	}

	before := h.game.State
	h.game.Update(now, h.input())
	if before == game.StateGameOver && h.game.State != game.StateGameOver {
		h.prompt = nil
	}
	return nil
}

// drain picks up whatever the reporter finished since the last tick
func (h *host) drain() {
	for {
		select {
		case score := <-h.reporter.Finished():
			h.prompt = newNamePrompt(score, h.board.Entries)
			if h.prompt.highScore {
				h.sounds.Play(game.MusicHighScore)
			}
		case res := <-h.reporter.Submitted():
			h.settle(res)
		case b := <-h.reporter.Boards():
			h.board = b
		default:
			return
		}
	}
}

// settle applies a submission result. A failed score is kept offline even
// when its prompt is gone; only the prompt that sent it shows the status.
func (h *host) settle(res leaderboard.SubmitResult) {
	if res.Err != nil {
		h.keepOffline(res.Name, res.Score)
	}
	if h.prompt != nil && h.prompt.awaits(res.Name, res.Score) {
		h.prompt.finish(res.Err)
	}
}

// keepOffline records a score locally so the offline board still shows it
func (h *host) keepOffline(name string, score int) {
	if err := h.offline.Submit(context.Background(), name, score); err != nil {
		h.log.WithError(err).Warn("could not keep score offline")
	}
}

func (h *host) editPrompt() {
	h.chars = ebiten.AppendInputChars(h.chars[:0])
	h.prompt.typeRunes(h.chars)
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		h.prompt.backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		if name, ok := h.prompt.submit(); ok {
			h.reporter.Submit(name, h.prompt.score)
		}
	}
}

func (h *host) input() game.Input {
	in := game.Input{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Fire:  inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Pause: inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		in.Clicked = true
		in.Click = game.Point{X: float64(x), Y: float64(y)}
	}
	return in
}

// Draw implements ebiten.Game
func (h *host) Draw(screen *ebiten.Image) {
	now := h.now()
	h.canvas.begin(screen)

	f := render.Frame{
		Game:    h.game,
		Now:     now,
		Scores:  h.scores(),
		Offline: h.board.Offline,
		Muted:   h.sounds.Muted(),
	}
	if h.prompt != nil {
		f.Prompt = h.prompt.view(now.UnixMilli()/500%2 == 0)
	}
	h.renderer.Draw(&h.canvas, f)
}

// scores is the board to display. Offline, local scores are merged into
// the fallback set.
func (h *host) scores() []leaderboard.Entry {
	if !h.board.Offline || h.offline.Len() == 0 {
		return h.board.Entries
	}
	local, _ := h.offline.Top(context.Background(), leaderboard.BoardRows)
	merged := append(append([]leaderboard.Entry(nil), local...), h.board.Entries...)
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Score > merged[j].Score })
	if len(merged) > leaderboard.BoardRows {
		merged = merged[:leaderboard.BoardRows]
	}
	return merged
}

// Layout implements ebiten.Game with a fixed logical playfield
func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return game.Width, game.Height
}
