package game

// Point is a location in logical playfield units
type Point struct {
	X, Y float64
}

// Input is the device state sampled by the host for one tick.
// Left and Right are held keys. Fire, Pause and Click are edges that
// occurred since the previous tick.
type Input struct {
	Left    bool
	Right   bool
	Fire    bool
	Pause   bool
	Clicked bool
	Click   Point
}

// Direction resolves the held keys into -1, 0 or +1. Right is applied
// after left, so holding both moves right.
func (in Input) Direction() float64 {
	dir := 0.0
	if in.Left {
		dir = -1
	}
	if in.Right {
		dir = 1
	}
	return dir
}
