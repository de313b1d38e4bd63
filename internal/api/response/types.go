package response

import (
	"strings"
	"time"

	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/services/scoreboard"
)

// Position is a grid coordinate
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// PositionsFromModel converts a list of model positions
func PositionsFromModel(positions []model.Position) []Position {
	if positions == nil {
		return nil
	}
	result := make([]Position, len(positions))
	for i, p := range positions {
		result[i] = Position{Row: p.Row, Col: p.Col}
	}
	return result
}

// Cell is one grid square
type Cell struct {
	Letter string `json:"letter"`
	State  string `json:"state"`
}

// Word is a word bank entry. Placement is revealed once found.
type Word struct {
	Word        string     `json:"word"`
	Found       bool       `json:"found"`
	Orientation string     `json:"orientation,omitempty"`
	Span        []Position `json:"span,omitempty"`
}

// WordFromModel converts model.PlacedWord
func WordFromModel(w model.PlacedWord) Word {
	word := Word{
		Word:  strings.ToUpper(w.Word),
		Found: w.Found,
	}
	if w.Found {
		word.Orientation = string(w.Orientation)
		word.Span = PositionsFromModel(w.Span())
	}
	return word
}

// Game represents a game in API responses
type Game struct {
	ID             string     `json:"id"`
	State          string     `json:"state"`
	Tier           string     `json:"tier"`
	GridSize       int        `json:"grid_size"`
	Directions     []string   `json:"directions"`
	Orientations   []string   `json:"orientations"` // Passes the generator ran
	CustomWords    bool       `json:"custom_words"`
	Grid           [][]Cell   `json:"grid,omitempty"` // Hidden while paused
	Selected       []Position `json:"selected"`
	Words          []Word     `json:"words"`
	Found          int        `json:"found"`
	Total          int        `json:"total"`
	Elapsed        string     `json:"elapsed"`
	ElapsedSeconds int64      `json:"elapsed_seconds"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at"`
}

// GameFromModel converts model.Game as of now
func GameFromModel(g *model.Game, now time.Time) Game {
	directions := make([]string, len(g.Config.Directions))
	for i, d := range g.Config.Directions {
		directions[i] = string(d)
	}

	order := g.Config.PlacementOrder()
	orientations := make([]string, len(order))
	for i, o := range order {
		orientations[i] = string(o)
	}

	sorted := g.Bank.Sorted()
	words := make([]Word, len(sorted))
	for i, w := range sorted {
		words[i] = WordFromModel(w)
	}

	elapsed := g.ElapsedAt(now)
	resp := Game{
		ID:             string(g.ID),
		State:          string(g.State),
		Tier:           string(g.Tier()),
		GridSize:       g.Config.GridSize,
		Directions:     directions,
		Orientations:   orientations,
		CustomWords:    g.Config.CustomPool,
		Selected:       []Position{},
		Words:          words,
		Found:          g.Bank.FoundCount(),
		Total:          g.Bank.Len(),
		Elapsed:        model.FormatElapsed(elapsed),
		ElapsedSeconds: int64(elapsed / time.Second),
		StartedAt:      g.StartedAt,
	}
	if !g.EndedAt.IsZero() {
		ended := g.EndedAt
		resp.EndedAt = &ended
	}

	if g.State != model.GameStatePaused {
		resp.Grid = make([][]Cell, g.Grid.Size)
		for row := range g.Grid.Cells {
			resp.Grid[row] = make([]Cell, g.Grid.Size)
			for col, cell := range g.Grid.Cells[row] {
				resp.Grid[row][col] = Cell{
					Letter: strings.ToUpper(string(cell.Letter)),
					State:  string(cell.State),
				}
			}
		}
		if selected := g.Grid.Selected(); len(selected) > 0 {
			resp.Selected = PositionsFromModel(selected)
		}
	}

	return resp
}

// CreateGameResponse is returned once when a game is created.
// The token is never shown again.
type CreateGameResponse struct {
	Game  Game   `json:"game"`
	Token string `json:"token"`
}

// GameListResponse lists the IDs of games still in play
type GameListResponse struct {
	Games []string `json:"games"`
}

// SelectionResult is the outcome of checking a selection
type SelectionResult struct {
	Matched     bool       `json:"matched"`
	Word        string     `json:"word,omitempty"`
	Orientation string     `json:"orientation,omitempty"`
	Span        []Position `json:"span,omitempty"`
}

// SelectionResultFromModel converts model.SelectionResult
func SelectionResultFromModel(r model.SelectionResult) SelectionResult {
	return SelectionResult{
		Matched:     r.Matched,
		Word:        strings.ToUpper(r.Word),
		Orientation: string(r.Orientation),
		Span:        PositionsFromModel(r.Span),
	}
}

// SelectionResponse pairs the game with the selection outcome
type SelectionResponse struct {
	Game   Game            `json:"game"`
	Result SelectionResult `json:"result"`
}

// Score is one completed game
type Score struct {
	GameID         string    `json:"game_id"`
	Tier           string    `json:"tier"`
	Elapsed        string    `json:"elapsed"`
	ElapsedSeconds int64     `json:"elapsed_seconds"`
	RecordedAt     time.Time `json:"recorded_at"`
}

// ScoreFromModel converts model.ScoreRecord
func ScoreFromModel(s model.ScoreRecord) Score {
	return Score{
		GameID:         string(s.GameID),
		Tier:           string(s.Tier),
		Elapsed:        model.FormatElapsed(s.Elapsed),
		ElapsedSeconds: int64(s.Elapsed / time.Second),
		RecordedAt:     s.RecordedAt,
	}
}

// ScoreBoard is the ranked scores of one tier
type ScoreBoard struct {
	Tier   string  `json:"tier"`
	Scores []Score `json:"scores"`
}

// ScoreBoardFromService converts scoreboard.Board
func ScoreBoardFromService(b scoreboard.Board) ScoreBoard {
	scores := make([]Score, len(b.Scores))
	for i, s := range b.Scores {
		scores[i] = ScoreFromModel(s)
	}
	return ScoreBoard{
		Tier:   string(b.Tier),
		Scores: scores,
	}
}

// ScoresResponse lists score boards
type ScoresResponse struct {
	Boards []ScoreBoard `json:"boards"`
}

// SummaryResponse compares the latest completion with the tier's best
type SummaryResponse struct {
	Latest        Score  `json:"latest"`
	Best          Score  `json:"best"`
	BeatHighScore bool   `json:"beat_high_score"`
	Result        string `json:"result"`
	Headline      string `json:"headline"`
}

// SummaryFromService converts scoreboard.Summary
func SummaryFromService(s *scoreboard.Summary) SummaryResponse {
	return SummaryResponse{
		Latest:        ScoreFromModel(s.Latest),
		Best:          ScoreFromModel(s.Best),
		BeatHighScore: s.BeatHighScore,
		Result:        s.Result(),
		Headline:      s.Headline(),
	}
}

// HealthResponse reports server readiness
type HealthResponse struct {
	Status           string `json:"status"`
	DictionaryLoaded bool   `json:"dictionary_loaded"`
	DictionaryWords  int    `json:"dictionary_words"`
}
