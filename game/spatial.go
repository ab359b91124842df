package game

const (
	SpatialCellSize = 80.0 // two enemy widths
	SpatialCols     = 11   // ceil(800/80) + 1
	SpatialRows     = 9    // ceil(600/80) + 1
)

// SpatialGrid is a fixed-size grid for broad-phase queries against enemy
// slots. It stores indices into the formation's enemy list.
type SpatialGrid struct {
	cells [SpatialCols * SpatialRows][]int
}

// Clear resets all cells (keeps allocated capacity)
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

func cellRange(r Rect) (minCX, maxCX, minCY, maxCY int) {
	minCX = clampCell(int(r.X/SpatialCellSize), SpatialCols)
	maxCX = clampCell(int(r.Right()/SpatialCellSize), SpatialCols)
	minCY = clampCell(int(r.Y/SpatialCellSize), SpatialRows)
	maxCY = clampCell(int(r.Bottom()/SpatialCellSize), SpatialRows)
	return
}

func clampCell(c, n int) int {
	if c < 0 {
		return 0
	}
	if c >= n {
		return n - 1
	}
	return c
}

// Insert adds idx to every cell the rectangle overlaps
func (g *SpatialGrid) Insert(r Rect, idx int) {
	minCX, maxCX, minCY, maxCY := cellRange(r)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			c := cy*SpatialCols + cx
			g.cells[c] = append(g.cells[c], idx)
		}
	}
}

// QueryBuf appends the indices stored in cells overlapping r. An index that
// spans several cells can appear more than once.
func (g *SpatialGrid) QueryBuf(r Rect, buf []int) []int {
	minCX, maxCX, minCY, maxCY := cellRange(r)
	for cy := minCY; cy <= maxCY; cy++ {
		for cx := minCX; cx <= maxCX; cx++ {
			buf = append(buf, g.cells[cy*SpatialCols+cx]...)
		}
	}
	return buf
}

// Index rebuilds the grid from the surviving enemies
func (g *SpatialGrid) Index(f *Formation) {
	g.Clear()
	for i := range f.Enemies {
		if f.Enemies[i].Alive {
			g.Insert(f.Enemies[i].Rect, i)
		}
	}
}
