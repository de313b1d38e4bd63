// Package viewmodel holds the data the HTML pages render
package viewmodel

import (
	"strings"
	"time"

	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/services/scoreboard"
)

// Cell is one grid square as displayed
type Cell struct {
	Row    int
	Col    int
	Letter string // Uppercase
	State  model.CellState
}

// Word is a word bank entry
type Word struct {
	Text  string // Uppercase
	Found bool
}

// GamePage is the board view of a single game
type GamePage struct {
	GameID    string
	Tier      string
	GridSize  int
	State     model.GameState
	Rows      [][]Cell // Empty while paused
	Words     []Word   // Alphabetical
	Found     int
	Total     int
	Elapsed   string
	EventsURL string
}

// Paused reports whether the grid is hidden
func (p GamePage) Paused() bool {
	return p.State == model.GameStatePaused
}

// ScoreRow is one line of a score table
type ScoreRow struct {
	Rank    int
	Elapsed string
	GameID  string
	When    string
}

// ScoreTable is the score board of one tier
type ScoreTable struct {
	Tier string
	ID   string
	Rows []ScoreRow
}

// HomePage is the score board overview
type HomePage struct {
	Result   string
	Headline string
	Tables   []ScoreTable
}

// NewGamePage builds the board view of a game as of now
func NewGamePage(game *model.Game, now time.Time) GamePage {
	page := GamePage{
		GameID:    string(game.ID),
		Tier:      game.Tier().Label(),
		GridSize:  game.Config.GridSize,
		State:     game.State,
		Found:     game.Bank.FoundCount(),
		Total:     game.Bank.Len(),
		Elapsed:   model.FormatElapsed(game.ElapsedAt(now)),
		EventsURL: "/games/" + string(game.ID) + "/events",
	}

	if game.State != model.GameStatePaused {
		page.Rows = make([][]Cell, game.Grid.Size)
		for row := 0; row < game.Grid.Size; row++ {
			page.Rows[row] = make([]Cell, game.Grid.Size)
			for col := 0; col < game.Grid.Size; col++ {
				pos := model.Position{Row: row, Col: col}
				page.Rows[row][col] = Cell{
					Row:    row,
					Col:    col,
					Letter: strings.ToUpper(string(game.Grid.Letter(pos))),
					State:  game.Grid.State(pos),
				}
			}
		}
	}

	for _, w := range game.Bank.Sorted() {
		page.Words = append(page.Words, Word{Text: strings.ToUpper(w.Word), Found: w.Found})
	}
	return page
}

// NewHomePage builds the score board overview
func NewHomePage(boards []scoreboard.Board, summary *scoreboard.Summary) HomePage {
	page := HomePage{}
	if summary != nil {
		page.Result = summary.Result()
		page.Headline = summary.Headline()
	}

	for _, board := range boards {
		table := ScoreTable{
			Tier: board.Tier.Label(),
			ID:   "board-" + string(board.Tier),
		}
		for i, score := range board.Scores {
			table.Rows = append(table.Rows, ScoreRow{
				Rank:    i + 1,
				Elapsed: model.FormatElapsed(score.Elapsed),
				GameID:  string(score.GameID),
				When:    score.RecordedAt.UTC().Format("2006-01-02 15:04"),
			})
		}
		page.Tables = append(page.Tables, table)
	}
	return page
}
