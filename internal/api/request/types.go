package request

// CreateGameRequest is the request body for starting a game
type CreateGameRequest struct {
	GridSize   int      `json:"grid_size,omitempty"`
	Directions []string `json:"directions,omitempty"`
	Words      []string `json:"words,omitempty"`
}

// PositionRequest is the request body for toggling a cell
type PositionRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SelectionRequest is the request body for replacing the selection
type SelectionRequest struct {
	Cells []PositionRequest `json:"cells"`
}
