package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/cchutis/halloween-wedding/game"
	"github.com/cchutis/halloween-wedding/leaderboard"
)

// Menu layout in logical units
var (
	StartButton     = game.Rect{X: 300, Y: 500, W: 200, H: 50}
	PlayAgainButton = game.Rect{X: 300, Y: 350, W: 200, H: 50}

	controlsPanel = game.Rect{X: 50, Y: 130, W: 300, H: 320}
	prizePanel    = game.Rect{X: 450, Y: 130, W: 300, H: 320}
)

// BoardRows is how many leaderboard rows the menus show
const BoardRows = 5

type legendRow struct {
	kind game.PowerKind
	name string
	desc string
}

var powerLegend = []legendRow{
	{game.PowerBeam, "Beam", "Powerful laser shot"},
	{game.PowerSpread, "Spread", "Multi-directional shots"},
	{game.PowerShield, "Shield", "Protects from one hit"},
}

var rules = []string{
	"One hit = Game Over",
	"Destroy UFOs for power-ups",
	"Destroy all enemies",
}

func (r *Renderer) drawTitle(c Canvas, f Frame) {
	c.Text("WEDDING INVADERS", game.Width/2+2, 82, 44, AlignCenter, colorTitleShade)
	c.Text("WEDDING INVADERS", game.Width/2, 80, 44, AlignCenter, colorTitle)
	c.Line(100, 100, 700, 100, 2, colorTitle)
	c.Text("Defend the reception from the undead guests", game.Width/2, 120, 16, AlignCenter, colorWhite)

	drawPanel(c, controlsPanel)
	c.Text("CONTROLS", 80, 160, 22, AlignLeft, colorTitle)
	drawKey(c, 80, 175, 30, "<")
	drawKey(c, 115, 175, 30, ">")
	c.Text("Move Ship", 160, 195, 16, AlignLeft, colorWhite)
	drawKey(c, 80, 215, 100, "SPACE")
	c.Text("Shoot", 190, 232, 16, AlignLeft, colorWhite)
	c.Text("DESTROY UFOS", 80, 270, 16, AlignLeft, colorTitle)
	c.Text("TO GET POWER-UPS", 80, 290, 16, AlignLeft, colorTitle)
	for i, row := range powerLegend {
		y := 310 + float64(i)*50
		c.FillCircle(95, y, 10, powerColor(row.kind))
		c.Text(row.name, 115, y+5, 16, AlignLeft, colorWhite)
		c.Text(row.desc, 115, y+25, 14, AlignLeft, colorKey)
	}

	drawPanel(c, prizePanel)
	c.Text("SPECIAL PRIZE", 480, 160, 22, AlignLeft, colorTitle)
	r.drawTrophy(c, 500, 185)
	c.Text("The #1 high score by", 525, 190, 14, AlignLeft, colorWhite)
	c.Text("the wedding date wins!", 525, 215, 14, AlignLeft, colorWhite)
	c.Text("GAME RULES", 480, 260, 22, AlignLeft, colorTitle)
	for i, rule := range rules {
		y := 290 + float64(i)*30
		c.FillCircle(490, y-5, 6, colorOrange)
		c.Text(rule, 505, y, 14, AlignLeft, colorWhite)
	}
	if len(f.Scores) > 0 {
		c.Text("TOP SCORES", 480, 378, 14, AlignLeft, colorTitle)
		if f.Offline {
			c.Text("offline", 740, 378, 12, AlignRight, colorMuted)
		}
		for i, e := range f.Scores {
			if i == BoardRows {
				break
			}
			y := 394 + float64(i)*13
			c.Text(fmt.Sprintf("%d. %s", i+1, e.Name), 480, y, 12, AlignLeft, colorWhite)
			c.Text(fmt.Sprintf("%d", e.Score), 740, y, 12, AlignRight, colorWhite)
		}
	}

	c.Text("A crappy game by Constantine", game.Width/2, 480, 14, AlignCenter, colorKey)
	drawButton(c, StartButton, "Start Game", colorBarricade, colorBackground)
	f.Game.Buttons.SetStart(StartButton)
}

func (r *Renderer) drawGameOver(c Canvas, f Frame) {
	g := f.Game
	c.FillRect(0, 0, game.Width, game.Height, colorPanel)
	c.Text("GAME OVER", game.Width/2, 200, 40, AlignCenter, colorWhite)
	c.Text(fmt.Sprintf("Final Score: %d", g.Score()), game.Width/2, 300, 24, AlignCenter, colorWhite)
	drawButton(c, PlayAgainButton, "Play Again", colorButtonDark, colorWhite)
	g.Buttons.SetPlayAgain(PlayAgainButton)

	if f.Prompt != nil {
		drawPrompt(c, f.Prompt)
	}
	drawBoard(c, f.Scores, f.Offline, 440)
}

// drawPrompt draws the name-entry panel above the Play Again button
func drawPrompt(c Canvas, p *Prompt) {
	title := "Great Score!"
	if p.HighScore {
		title = "High Score!"
	}
	c.Text(title, game.Width/2, 245, 22, AlignCenter, colorTitle)
	name := p.Name
	if p.Caret {
		name += "_"
	}
	c.Text("Name: "+name, game.Width/2, 270, 18, AlignCenter, colorWhite)
	status := p.Status
	if status == "" {
		status = "Type your name and press Enter"
	}
	c.Text(status, game.Width/2, 335, 14, AlignCenter, colorKey)
}

// drawBoard lists the top rows starting at baseline y
func drawBoard(c Canvas, entries []leaderboard.Entry, offline bool, y float64) {
	if len(entries) == 0 {
		return
	}
	heading := "LEADERBOARD"
	if offline {
		heading += " (offline)"
	}
	c.Text(heading, game.Width/2, y, 18, AlignCenter, colorTitle)
	for i, e := range entries {
		if i == BoardRows {
			break
		}
		row := y + 25 + float64(i)*24
		c.Text(fmt.Sprintf("%d. %s", i+1, e.Name), 280, row, 16, AlignLeft, colorWhite)
		c.Text(fmt.Sprintf("%d", e.Score), 520, row, 16, AlignRight, colorWhite)
	}
}

func drawPanel(c Canvas, r game.Rect) {
	c.FillRect(r.X, r.Y, r.W, r.H, colorPanel)
	c.StrokeRect(r.X, r.Y, r.W, r.H, 2, colorTitle)
}

func drawKey(c Canvas, x, y, w float64, label string) {
	const h = 25
	c.StrokeRect(x, y, w, h, 2, colorKey)
	c.Text(label, x+w/2, y+18, 14, AlignCenter, colorKey)
}

func drawButton(c Canvas, r game.Rect, label string, fill, ink color.Color) {
	c.FillRect(r.X, r.Y, r.W, r.H, fill)
	c.Text(label, r.CenterX(), r.Y+33, 24, AlignCenter, ink)
}

// drawTrophy draws the prize cup with its rim centered on (cx, top)
func (r *Renderer) drawTrophy(c Canvas, cx, top float64) {
	c.FillPolygon(r.arc(cx, top, 15, 0, math.Pi, 10), colorGold)
	c.FillRect(cx-15, top, 30, 20, colorGold)
	c.FillRect(cx-5, top+20, 10, 15, colorGold)
	c.FillRect(cx-10, top+35, 20, 5, colorGold)
}
