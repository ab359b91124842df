package game

import (
	"math"
	"time"
)

const (
	EnemyWidth      = 40.0
	EnemyHeight     = 40.0
	EnemyCols       = 8
	EnemyGap        = 20.0
	FormationMargin = 50.0

	EnemyBaseSpeed     = 2.0
	EnemySpeedPerLevel = 0.5

	MoveStep = 15.0 // horizontal formation step
	DropStep = 30.0 // vertical step taken at an edge

	InitialMoveInterval = 800 * time.Millisecond
	MinMoveInterval     = 300 * time.Millisecond

	// Interval scaling: closeness to the loss line, share of the grid
	// destroyed, and the permanent boost once barricades are overrun.
	DescentSpeedFactor   = 1.2
	ClearedSpeedFactor   = 1.3
	BarricadeBreakFactor = 1.5

	LossLine          = 580.0
	EnemyFireInterval = 2 * time.Second
)

// Enemy is one invader in the formation grid
type Enemy struct {
	Rect
	Speed float64
	Kind  EnemyKind
	Row   int
	Col   int
	Alive bool
}

// NewEnemy places an enemy at its grid cell
func NewEnemy(row, col int, speed float64) Enemy {
	return Enemy{
		Rect: Rect{
			X: float64(col)*(EnemyWidth+EnemyGap) + FormationMargin,
			Y: float64(row)*(EnemyHeight+EnemyGap) + FormationMargin,
			W: EnemyWidth,
			H: EnemyHeight,
		},
		Speed: speed,
		Kind:  EnemyKindForRow(row),
		Row:   row,
		Col:   col,
		Alive: true,
	}
}

// Formation is the enemy grid moved as one body. Enemies keep their slot
// for the whole level; a kill only clears the Alive flag.
type Formation struct {
	Enemies   []Enemy
	Direction float64
	Interval  time.Duration
	LastMove  time.Time
	Boost     float64

	initial int
	alive   int
}

// NewFormation builds the rows x EnemyCols grid for a level
func NewFormation(rows int, speed float64, now time.Time) *Formation {
	f := &Formation{
		Enemies:   make([]Enemy, 0, rows*EnemyCols),
		Direction: 1,
		Interval:  InitialMoveInterval,
		LastMove:  now,
		Boost:     1,
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < EnemyCols; col++ {
			f.Enemies = append(f.Enemies, NewEnemy(row, col, speed))
		}
	}
	f.initial = len(f.Enemies)
	f.alive = f.initial
	return f
}

// Alive returns the number of surviving enemies
func (f *Formation) Alive() int { return f.alive }

// Initial returns the size of the grid at level start
func (f *Formation) Initial() int { return f.initial }

// Kill destroys enemy i and returns false if it was already dead
func (f *Formation) Kill(i int) bool {
	if i < 0 || i >= len(f.Enemies) || !f.Enemies[i].Alive {
		return false
	}
	f.Enemies[i].Alive = false
	f.alive--
	return true
}

// Neighbors returns the closest surviving enemies before and after i in
// grid order, or -1 where there is none
func (f *Formation) Neighbors(i int) (left, right int) {
	left, right = -1, -1
	for j := i - 1; j >= 0; j-- {
		if f.Enemies[j].Alive {
			left = j
			break
		}
	}
	for j := i + 1; j < len(f.Enemies); j++ {
		if f.Enemies[j].Alive {
			right = j
			break
		}
	}
	return left, right
}

// Exposed appends the indices of enemies that may fire: the bottom-most
// survivor of every column
func (f *Formation) Exposed(buf []int) []int {
	var bottom [EnemyCols]int
	for c := range bottom {
		bottom[c] = -1
	}
	for i := range f.Enemies {
		e := &f.Enemies[i]
		if !e.Alive || e.Col < 0 || e.Col >= EnemyCols {
			continue
		}
		if b := bottom[e.Col]; b < 0 || f.Enemies[b].Row < e.Row {
			bottom[e.Col] = i
		}
	}
	for _, i := range bottom {
		if i >= 0 {
			buf = append(buf, i)
		}
	}
	return buf
}

// Lowest returns the surviving enemy whose bottom edge is furthest down,
// or nil when the grid is empty
func (f *Formation) Lowest() *Enemy {
	var lowest *Enemy
	for i := range f.Enemies {
		e := &f.Enemies[i]
		if e.Alive && (lowest == nil || e.Bottom() > lowest.Bottom()) {
			lowest = e
		}
	}
	return lowest
}

// Reached reports whether any surviving enemy's bottom edge is at or below y
func (f *Formation) Reached(y float64) bool {
	l := f.Lowest()
	return l != nil && l.Bottom() >= y
}

// Due reports whether the move interval has elapsed
func (f *Formation) Due(now time.Time) bool {
	return now.Sub(f.LastMove) >= f.Interval
}

// Step moves the formation once. If any enemy's next horizontal step would
// touch a side wall the whole grid drops and reverses instead.
func (f *Formation) Step(now time.Time) {
	f.LastMove = now

	atEdge := false
	for i := range f.Enemies {
		e := &f.Enemies[i]
		if !e.Alive {
			continue
		}
		next := e.X + MoveStep*f.Direction
		if next <= 0 || next+e.W >= Width {
			atEdge = true
			break
		}
	}

	for i := range f.Enemies {
		e := &f.Enemies[i]
		if !e.Alive {
			continue
		}
		if atEdge {
			e.Y += DropStep
		} else {
			e.X += MoveStep * f.Direction
		}
	}
	if atEdge {
		f.Direction = -f.Direction
	}

	f.Retime()
}

// Retime recomputes the move interval from how far the grid has descended
// and how much of it has been destroyed
func (f *Formation) Retime() {
	f.Interval = MoveInterval(f.descent(), f.initial, f.alive, f.Boost)
}

// BreakBarricades applies the permanent speed-up for overrunning the
// barricade row
func (f *Formation) BreakBarricades() {
	f.Boost = BarricadeBreakFactor
	f.Retime()
}

func (f *Formation) descent() float64 {
	l := f.Lowest()
	if l == nil {
		return 0
	}
	return math.Min(1, l.Y/LossLine)
}

// MoveInterval returns the formation cadence for the given descent fraction,
// grid sizes and boost, floored at MinMoveInterval
func MoveInterval(descent float64, initial, alive int, boost float64) time.Duration {
	countMult := 1.0
	if initial > 0 {
		countMult = 1 + float64(initial-alive)/float64(initial)*ClearedSpeedFactor
	}
	if boost <= 0 {
		boost = 1
	}
	ns := float64(InitialMoveInterval) * (1 - descent*DescentSpeedFactor) / countMult / boost
	d := time.Duration(ns)
	if d < MinMoveInterval {
		return MinMoveInterval
	}
	return d
}
