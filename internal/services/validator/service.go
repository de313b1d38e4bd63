package validator

import (
	"log/slog"
	"sort"

	"github.com/mcoot/wordsearchgame-go/internal/model"
)

// Service checks selections against a game's word bank
type Service struct {
	logger *slog.Logger
}

// New creates a new validator Service
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// Validate decides whether the selected cells spell an unfound bank word
// along a single straight, gap-free line. Letters are read in row-major
// order regardless of the order the cells were picked. Cells outside the
// grid or already found are ignored. Nothing is mutated.
func (s *Service) Validate(grid *model.Grid, bank *model.WordBank, selection []model.Position) model.SelectionResult {
	cells := normalize(grid, selection)
	if len(cells) < model.MinWordLength {
		return model.NoMatch()
	}

	letters := make([]rune, len(cells))
	for i, pos := range cells {
		letters[i] = grid.Letter(pos)
	}
	candidate := string(letters)

	word, ok := bank.FirstUnfound(candidate)
	if !ok {
		s.logger.Debug("selection rejected",
			slog.String("reason", "not in word bank"),
			slog.Int("cell_count", len(cells)),
		)
		return model.NoMatch()
	}

	orientation, ok := Contiguous(cells)
	if !ok {
		s.logger.Debug("selection rejected",
			slog.String("reason", "not a straight line"),
			slog.String("word", word.Word),
		)
		return model.NoMatch()
	}

	return model.SelectionResult{
		Matched:     true,
		Word:        word.Word,
		Orientation: orientation,
		Span:        cells,
	}
}

// Contiguous reports the orientation in which each consecutive pair of
// row-major sorted cells is exactly one step apart. Orientations are
// tried row, column, forward diagonal, backward diagonal.
func Contiguous(cells []model.Position) (model.Orientation, bool) {
	if len(cells) < 2 {
		return "", false
	}
	for _, o := range model.AllOrientations {
		if followsOrientation(cells, o) {
			return o, true
		}
	}
	return "", false
}

func followsOrientation(cells []model.Position, o model.Orientation) bool {
	for i := 1; i < len(cells); i++ {
		if o.Next(cells[i-1]) != cells[i] {
			return false
		}
	}
	return true
}

// normalize drops out-of-grid, found and duplicate cells and sorts the
// rest row-major
func normalize(grid *model.Grid, selection []model.Position) []model.Position {
	seen := make(map[model.Position]bool, len(selection))
	cells := make([]model.Position, 0, len(selection))
	for _, pos := range selection {
		if !grid.IsValidPosition(pos) || grid.State(pos) == model.CellFound || seen[pos] {
			continue
		}
		seen[pos] = true
		cells = append(cells, pos)
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].Less(cells[j])
	})
	return cells
}
