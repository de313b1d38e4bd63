package model

// Orientation is the direction a word runs through the grid
type Orientation string

const (
	OrientationRow              Orientation = "row"               // Left to right
	OrientationColumn           Orientation = "column"            // Top to bottom
	OrientationForwardDiagonal  Orientation = "forward_diagonal"  // Down-right
	OrientationBackwardDiagonal Orientation = "backward_diagonal" // Down-left
)

// AllOrientations lists orientations in placement and contiguity-check order
var AllOrientations = []Orientation{
	OrientationRow,
	OrientationColumn,
	OrientationForwardDiagonal,
	OrientationBackwardDiagonal,
}

// Step returns the row and column delta between consecutive letters
func (o Orientation) Step() (dRow, dCol int) {
	switch o {
	case OrientationRow:
		return 0, 1
	case OrientationColumn:
		return 1, 0
	case OrientationForwardDiagonal:
		return 1, 1
	case OrientationBackwardDiagonal:
		return 1, -1
	default:
		return 0, 0
	}
}

// IsValid returns true for the four known orientations
func (o Orientation) IsValid() bool {
	dRow, dCol := o.Step()
	return dRow != 0 || dCol != 0
}

// Next returns the position one step along the orientation
func (o Orientation) Next(pos Position) Position {
	dRow, dCol := o.Step()
	return Position{Row: pos.Row + dRow, Col: pos.Col + dCol}
}

// Span returns the cells covered by a run of the given length
func Span(anchor Position, o Orientation, length int) []Position {
	if length <= 0 {
		return nil
	}
	span := make([]Position, length)
	pos := anchor
	for i := 0; i < length; i++ {
		span[i] = pos
		pos = o.Next(pos)
	}
	return span
}

// Direction is a user-facing orientation toggle.
// Diagonal covers both diagonal orientations.
type Direction string

const (
	DirectionRow      Direction = "row"
	DirectionColumn   Direction = "column"
	DirectionDiagonal Direction = "diagonal"
)

// AllDirections lists every direction toggle
var AllDirections = []Direction{DirectionRow, DirectionColumn, DirectionDiagonal}

// IsValid returns true for the known directions
func (d Direction) IsValid() bool {
	switch d {
	case DirectionRow, DirectionColumn, DirectionDiagonal:
		return true
	default:
		return false
	}
}

// Orientations returns the orientations enabled by a direction
func (d Direction) Orientations() []Orientation {
	switch d {
	case DirectionRow:
		return []Orientation{OrientationRow}
	case DirectionColumn:
		return []Orientation{OrientationColumn}
	case DirectionDiagonal:
		return []Orientation{OrientationForwardDiagonal, OrientationBackwardDiagonal}
	default:
		return nil
	}
}
