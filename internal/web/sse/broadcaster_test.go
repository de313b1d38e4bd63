package sse

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/services/game"
	"github.com/mcoot/wordsearchgame-go/internal/testutil"
)

var _ game.Publisher = (*Broadcaster)(nil)

var eventTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func render(t *testing.T, event model.Event) (string, EventData) {
	t.Helper()
	name, data, err := NewRenderer().Render(event)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	var decoded EventData
	if err := json.Unmarshal([]byte(data), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", data, err)
	}
	return name, decoded
}

func TestRenderer_EventNames(t *testing.T) {
	tests := []struct {
		eventType model.EventType
		payload   any
		expected  string
	}{
		{model.EventGameStarted, model.GameStartedPayload{}, "game-started"},
		{model.EventLetterPlaced, model.LetterPlacedPayload{}, "letter-placed"},
		{model.EventSelectionChanged, model.SelectionChangedPayload{}, "selection-changed"},
		{model.EventWordFound, model.WordFoundPayload{}, "word-found"},
		{model.EventTimerTick, model.TimerTickPayload{}, "timer-tick"},
		{model.EventGamePaused, nil, "game-paused"},
		{model.EventGameResumed, nil, "game-resumed"},
		{model.EventGameComplete, model.GameCompletePayload{}, "game-complete"},
		{model.EventGameAbandoned, model.GameAbandonedPayload{}, "game-abandoned"},
	}

	for _, tt := range tests {
		t.Run(string(tt.eventType), func(t *testing.T) {
			name, data := render(t, model.Event{Type: tt.eventType, GameID: "GAME1", Timestamp: eventTime, Payload: tt.payload})
			if name != tt.expected {
				t.Errorf("name = %q, want %q", name, tt.expected)
			}
			if data.Type != string(tt.eventType) || data.GameID != "GAME1" {
				t.Errorf("unexpected envelope %+v", data)
			}
			if data.Timestamp != "2024-01-01T12:00:00Z" {
				t.Errorf("timestamp = %q", data.Timestamp)
			}
		})
	}
}

func TestRenderer_WordFound(t *testing.T) {
	_, data := render(t, model.Event{
		Type:      model.EventWordFound,
		GameID:    "GAME1",
		Timestamp: eventTime,
		Payload: model.WordFoundPayload{
			Word:  "cat",
			Span:  []model.Position{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
			Found: 1,
			Total: 4,
		},
	})

	if data.Word != "cat" || data.Found != 1 || data.Total != 4 {
		t.Errorf("unexpected data %+v", data)
	}
	if len(data.Span) != 3 || data.Span[2] != (Position{Row: 0, Col: 2}) {
		t.Errorf("span = %+v", data.Span)
	}
}

func TestRenderer_LetterPlaced(t *testing.T) {
	_, data := render(t, model.Event{
		Type:    model.EventLetterPlaced,
		Payload: model.LetterPlacedPayload{Position: model.Position{Row: 3, Col: 4}, Letter: 'q', Word: "quiz"},
	})

	if data.Letter != "q" || data.Word != "quiz" {
		t.Errorf("unexpected data %+v", data)
	}
	if data.Position == nil || *data.Position != (Position{Row: 3, Col: 4}) {
		t.Errorf("position = %+v", data.Position)
	}
}

func TestRenderer_Elapsed(t *testing.T) {
	_, data := render(t, model.Event{
		Type:    model.EventGameComplete,
		Payload: model.GameCompletePayload{Elapsed: time.Hour + 2*time.Minute + 3*time.Second, Tier: model.TierHard},
	})

	if data.Elapsed != "01:02:03" || data.ElapsedSeconds != 3723 || data.Tier != "hard" {
		t.Errorf("unexpected data %+v", data)
	}
}

func TestRenderer_EmptySelection(t *testing.T) {
	_, raw, err := NewRenderer().Render(model.Event{
		Type:    model.EventSelectionChanged,
		Payload: model.SelectionChangedPayload{},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(raw, `"selected":[]`) {
		t.Errorf("empty selection should be an empty list: %s", raw)
	}
}

func TestRenderer_UnsupportedPayload(t *testing.T) {
	_, _, err := NewRenderer().Render(model.Event{Type: "mystery", Payload: 42})
	if err == nil {
		t.Error("expected error for unsupported payload")
	}
}

func TestBroadcaster_PublishWithoutHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	// Should not panic or create a hub
	broadcaster.Publish(context.Background(), model.Event{Type: model.EventGamePaused, GameID: "NOBODY"})

	if manager.GetHub("NOBODY") != nil {
		t.Error("Publish() should not create hubs")
	}
}

func TestBroadcaster_PublishReachesClients(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	broadcaster := NewBroadcaster(manager, testutil.NopLogger())

	hub := manager.GetOrCreateHub("GAME1")
	defer manager.RemoveHub("GAME1")
	client := NewClient(hub, "127.0.0.1")
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	broadcaster.Publish(context.Background(), model.Event{
		Type:      model.EventTimerTick,
		GameID:    "GAME1",
		Timestamp: eventTime,
		Payload:   model.TimerTickPayload{Elapsed: 75 * time.Second},
	})

	select {
	case msg := <-client.send:
		s := string(msg)
		if !strings.HasPrefix(s, "event: timer-tick\ndata: ") {
			t.Errorf("unexpected message %q", s)
		}
		if !strings.Contains(s, `"elapsed":"00:01:15"`) {
			t.Errorf("missing elapsed in %q", s)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}
