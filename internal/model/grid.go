package model

// Position identifies a cell on the grid
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// Less orders positions row-major
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// CellState tracks a cell's selection lifecycle
type CellState string

const (
	CellUnselected CellState = "unselected"
	CellSelected   CellState = "selected"
	CellFound      CellState = "found" // Part of a confirmed word, never reverts
)

// Cell is a single grid square
type Cell struct {
	Letter rune      `json:"letter"` // Lowercase a-z, 0 while generating
	State  CellState `json:"state"`
}

// Grid is the N×N letter square of a puzzle
type Grid struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"` // Row-major: Cells[row][col]
}

// NewGrid creates an empty grid of the given size
func NewGrid(size int) *Grid {
	cells := make([][]Cell, size)
	for i := range cells {
		cells[i] = make([]Cell, size)
		for j := range cells[i] {
			cells[i][j].State = CellUnselected
		}
	}
	return &Grid{
		Size:  size,
		Cells: cells,
	}
}

// IsValidPosition returns true if the position is within bounds
func (g *Grid) IsValidPosition(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Size && pos.Col >= 0 && pos.Col < g.Size
}

// Letter returns the letter at the given position, or 0 if empty
func (g *Grid) Letter(pos Position) rune {
	if !g.IsValidPosition(pos) {
		return 0
	}
	return g.Cells[pos.Row][pos.Col].Letter
}

// SetLetter writes a letter at the given position
func (g *Grid) SetLetter(pos Position, letter rune) {
	if g.IsValidPosition(pos) {
		g.Cells[pos.Row][pos.Col].Letter = letter
	}
}

// IsEmpty returns true if no letter has been written at the position
func (g *Grid) IsEmpty(pos Position) bool {
	return g.Letter(pos) == 0
}

// State returns the selection state of a cell
func (g *Grid) State(pos Position) CellState {
	if !g.IsValidPosition(pos) {
		return CellUnselected
	}
	return g.Cells[pos.Row][pos.Col].State
}

// SetState updates the selection state of a cell
func (g *Grid) SetState(pos Position, state CellState) {
	if g.IsValidPosition(pos) {
		g.Cells[pos.Row][pos.Col].State = state
	}
}

// IsFull returns true if every cell holds a letter
func (g *Grid) IsFull() bool {
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			if g.Cells[row][col].Letter == 0 {
				return false
			}
		}
	}
	return true
}

// Selected returns the selected cells in row-major order
func (g *Grid) Selected() []Position {
	var result []Position
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			if g.Cells[row][col].State == CellSelected {
				result = append(result, Position{Row: row, Col: col})
			}
		}
	}
	return result
}

// ClearSelection resets every selected cell and returns how many were cleared.
// Found cells are untouched.
func (g *Grid) ClearSelection() int {
	cleared := 0
	for row := 0; row < g.Size; row++ {
		for col := 0; col < g.Size; col++ {
			if g.Cells[row][col].State == CellSelected {
				g.Cells[row][col].State = CellUnselected
				cleared++
			}
		}
	}
	return cleared
}

// ReadAlong reads length letters starting at anchor in the given orientation.
// Returns false if the run leaves the grid.
func (g *Grid) ReadAlong(anchor Position, o Orientation, length int) (string, bool) {
	letters := make([]rune, 0, length)
	for _, pos := range Span(anchor, o, length) {
		if !g.IsValidPosition(pos) {
			return "", false
		}
		letters = append(letters, g.Letter(pos))
	}
	return string(letters), true
}

// Row returns the letters of a row as a string
func (g *Grid) Row(row int) string {
	if row < 0 || row >= g.Size {
		return ""
	}
	letters := make([]rune, g.Size)
	for col := 0; col < g.Size; col++ {
		letters[col] = g.Cells[row][col].Letter
	}
	return string(letters)
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	cells := make([][]Cell, len(g.Cells))
	for i := range g.Cells {
		cells[i] = make([]Cell, len(g.Cells[i]))
		copy(cells[i], g.Cells[i])
	}
	return &Grid{Size: g.Size, Cells: cells}
}
