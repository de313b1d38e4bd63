package sse

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcoot/wordsearchgame-go/internal/model"
)

// Position is a cell coordinate on the wire
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// EventData is the JSON body of every game event sent to clients.
// Only the fields relevant to the event type are set.
type EventData struct {
	Type      string `json:"type"`
	GameID    string `json:"game_id"`
	Timestamp string `json:"timestamp"`

	GridSize  int    `json:"grid_size,omitempty"`
	Tier      string `json:"tier,omitempty"`
	WordCount int    `json:"word_count,omitempty"`

	Position *Position `json:"position,omitempty"`
	Letter   string    `json:"letter,omitempty"`
	Word     string    `json:"word,omitempty"`

	Selected []Position `json:"selected,omitempty"`
	Span     []Position `json:"span,omitempty"`
	Found    int        `json:"found,omitempty"`
	Total    int        `json:"total,omitempty"`

	Elapsed        string `json:"elapsed,omitempty"`
	ElapsedSeconds int64  `json:"elapsed_seconds,omitempty"`
}

// Renderer converts model events to SSE payloads
type Renderer struct{}

// NewRenderer creates a new Renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render returns the SSE event name and JSON data for an event
func (r *Renderer) Render(event model.Event) (string, string, error) {
	data := EventData{
		Type:      string(event.Type),
		GameID:    string(event.GameID),
		Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
	}

	switch p := event.Payload.(type) {
	case nil:
	case model.GameStartedPayload:
		data.GridSize = p.GridSize
		data.Tier = string(p.Tier)
		data.WordCount = p.WordCount
	case model.LetterPlacedPayload:
		pos := toPosition(p.Position)
		data.Position = &pos
		data.Letter = string(p.Letter)
		data.Word = p.Word
	case model.SelectionChangedPayload:
		data.Selected = toPositions(p.Selected)
		if data.Selected == nil {
			data.Selected = []Position{}
		}
	case model.WordFoundPayload:
		data.Word = p.Word
		data.Span = toPositions(p.Span)
		data.Found = p.Found
		data.Total = p.Total
	case model.TimerTickPayload:
		setElapsed(&data, p.Elapsed)
	case model.GameCompletePayload:
		setElapsed(&data, p.Elapsed)
		data.Tier = string(p.Tier)
	case model.GameAbandonedPayload:
		setElapsed(&data, p.Elapsed)
	default:
		return "", "", fmt.Errorf("unsupported payload %T for event %s", event.Payload, event.Type)
	}

	body, err := json.Marshal(data)
	if err != nil {
		return "", "", err
	}
	return eventName(event.Type), string(body), nil
}

// eventName turns game_started into game-started
func eventName(t model.EventType) string {
	b := []byte(t)
	for i := range b {
		if b[i] == '_' {
			b[i] = '-'
		}
	}
	return string(b)
}

func setElapsed(data *EventData, elapsed time.Duration) {
	data.Elapsed = model.FormatElapsed(elapsed)
	data.ElapsedSeconds = int64(elapsed / time.Second)
}

func toPosition(p model.Position) Position {
	return Position{Row: p.Row, Col: p.Col}
}

func toPositions(ps []model.Position) []Position {
	if ps == nil {
		return nil
	}
	result := make([]Position, len(ps))
	for i, p := range ps {
		result[i] = toPosition(p)
	}
	return result
}
