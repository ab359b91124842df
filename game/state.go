package game

// State is the lifecycle phase of a game
type State int

const (
	StateTitle         State = 0
	StatePlaying       State = 1
	StatePaused        State = 2
	StateLevelComplete State = 3
	StateGameOver      State = 4
)

var stateNames = [...]string{"title", "playing", "paused", "levelComplete", "gameOver"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// InPlay reports whether the playfield is shown for this state
func (s State) InPlay() bool {
	return s == StatePlaying || s == StatePaused || s == StateLevelComplete
}

// HitRegions holds the menu buttons the renderer last drew. A button that
// has not been drawn yet cannot be clicked.
type HitRegions struct {
	start        Rect
	playAgain    Rect
	hasStart     bool
	hasPlayAgain bool
}

// SetStart records the bounds of the title screen's Start button
func (h *HitRegions) SetStart(r Rect) {
	h.start = r
	h.hasStart = true
}

// SetPlayAgain records the bounds of the game over Play Again button
func (h *HitRegions) SetPlayAgain(r Rect) {
	h.playAgain = r
	h.hasPlayAgain = true
}

// Start returns the Start button bounds and whether they are known
func (h *HitRegions) Start() (Rect, bool) { return h.start, h.hasStart }

// PlayAgain returns the Play Again button bounds and whether they are known
func (h *HitRegions) PlayAgain() (Rect, bool) { return h.playAgain, h.hasPlayAgain }

func (h *HitRegions) startHit(p Point) bool {
	return h.hasStart && h.start.Contains(p.X, p.Y)
}

func (h *HitRegions) playAgainHit(p Point) bool {
	return h.hasPlayAgain && h.playAgain.Contains(p.X, p.Y)
}
