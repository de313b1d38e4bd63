package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/wordsearchgame-go/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errOut, string(data))
	} else {
		_, _ = fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.out, string(data))
	} else {
		_, _ = fmt.Fprintln(o.out, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Game:
		o.printGame(v)
	case response.CreateGameResponse:
		o.printGame(v.Game)
		o.printf("Token: %s\n", v.Token)
	case response.SelectionResponse:
		o.printSelection(v)
	case response.GameListResponse:
		o.printGameList(v)
	case response.ScoresResponse:
		o.printScores(v)
	case response.SummaryResponse:
		o.printf("%s\n%s\n", v.Result, v.Headline)
	case response.HealthResponse:
		o.printf("Status: %s\n", v.Status)
		o.printf("Dictionary words: %d\n", v.DictionaryWords)
	case Puzzle:
		o.printPuzzle(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.out, format, args...)
}

func (o *Output) printGame(g response.Game) {
	o.printf("Game: %s\n", g.ID)
	o.printf("State: %s\n", g.State)
	o.printf("Tier: %s (%dx%d)\n", g.Tier, g.GridSize, g.GridSize)
	o.printf("Elapsed: %s\n", g.Elapsed)
	o.printf("Found: %d / %d\n", g.Found, g.Total)

	if g.Grid == nil {
		o.printf("\nGrid hidden while paused\n")
	} else {
		o.printf("\n")
		o.printGrid(gridLetters(g.Grid), func(row, col int) string {
			return g.Grid[row][col].State
		})
	}

	o.printf("\nWords:\n")
	for _, w := range g.Words {
		mark := " "
		if w.Found {
			mark = "x"
		}
		o.printf("  [%s] %s\n", mark, w.Word)
	}
}

func (o *Output) printSelection(s response.SelectionResponse) {
	if s.Result.Matched {
		o.printf("Found %s!\n", s.Result.Word)
	} else if len(s.Game.Selected) > 0 {
		o.printf("Selected %d cells\n", len(s.Game.Selected))
	}
	if s.Game.State == "complete" {
		o.printf("All %d words found in %s\n", s.Game.Total, s.Game.Elapsed)
		return
	}
	o.printf("Found: %d / %d\n", s.Game.Found, s.Game.Total)
}

func (o *Output) printGameList(l response.GameListResponse) {
	if len(l.Games) == 0 {
		o.printf("No games in play\n")
		return
	}
	for _, id := range l.Games {
		o.printf("%s\n", id)
	}
}

func (o *Output) printScores(s response.ScoresResponse) {
	for i, b := range s.Boards {
		if i > 0 {
			o.printf("\n")
		}
		o.printf("%s:\n", strings.ToUpper(b.Tier[:1])+b.Tier[1:])
		if len(b.Scores) == 0 {
			o.printf("  No scores yet\n")
			continue
		}
		for rank, score := range b.Scores {
			o.printf("  %d. %s  %s  %s\n", rank+1, score.Elapsed, score.GameID,
				score.RecordedAt.Format("2006-01-02 15:04"))
		}
	}
}

func (o *Output) printPuzzle(p Puzzle) {
	o.printf("Seed: %d\n", p.Seed)
	o.printf("Tier: %s (%dx%d)\n\n", p.Tier, p.GridSize, p.GridSize)
	o.printGrid(p.Rows, func(int, int) string { return "" })
	o.printf("\nWords:\n")
	for _, w := range p.Words {
		o.printf("  %-12s %-17s (%d,%d)\n", w.Word, w.Orientation, w.Row, w.Col)
	}
}

// printGrid renders letters with selected cells in brackets and found
// cells in parentheses
func (o *Output) printGrid(rows [][]string, state func(row, col int) string) {
	size := len(rows)
	if size == 0 {
		return
	}

	// Print column headers
	o.printf("    ")
	for col := 0; col < size; col++ {
		o.printf("%3d", col)
	}
	o.printf("\n")

	for row := 0; row < size; row++ {
		o.printf("%3d ", row)
		for col, letter := range rows[row] {
			switch state(row, col) {
			case "selected":
				o.printf("[%s]", letter)
			case "found":
				o.printf("(%s)", letter)
			default:
				o.printf(" %s ", letter)
			}
		}
		o.printf("\n")
	}
}

func gridLetters(grid [][]response.Cell) [][]string {
	rows := make([][]string, len(grid))
	for i, row := range grid {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = cell.Letter
		}
	}
	return rows
}
