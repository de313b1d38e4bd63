package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameStarted      EventType = "game_started"
	EventLetterPlaced     EventType = "letter_placed"
	EventSelectionChanged EventType = "selection_changed"
	EventWordFound        EventType = "word_found"
	EventTimerTick        EventType = "timer_tick"
	EventGamePaused       EventType = "game_paused"
	EventGameResumed      EventType = "game_resumed"
	EventGameComplete     EventType = "game_complete"
	EventGameAbandoned    EventType = "game_abandoned"
)

// Event is the base structure for all events
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	Payload   any // Type-specific data
}

// GameStartedPayload contains data for game started events
type GameStartedPayload struct {
	GridSize  int
	Tier      Tier
	WordCount int
}

// LetterPlacedPayload is emitted for each letter of a placed word
type LetterPlacedPayload struct {
	Position Position
	Letter   rune
	Word     string
}

// SelectionChangedPayload contains the current selection
type SelectionChangedPayload struct {
	Selected []Position
}

// WordFoundPayload contains data for word found events
type WordFoundPayload struct {
	Word  string
	Span  []Position
	Found int
	Total int
}

// TimerTickPayload carries the elapsed play time
type TimerTickPayload struct {
	Elapsed time.Duration
}

// GameCompletePayload contains data for game complete events
type GameCompletePayload struct {
	Elapsed time.Duration
	Tier    Tier
}

// GameAbandonedPayload contains data for game abandoned events
type GameAbandonedPayload struct {
	Elapsed time.Duration
}
