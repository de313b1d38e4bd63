package sse

import (
	"context"
	"log/slog"

	"github.com/mcoot/wordsearchgame-go/internal/model"
)

// Broadcaster forwards game events to the SSE clients watching that game
type Broadcaster struct {
	hubManager *HubManager
	renderer   *Renderer
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		renderer:   NewRenderer(),
		logger:     logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// Publish sends an event to the game's hub. Events for games nobody is
// watching are dropped.
func (b *Broadcaster) Publish(_ context.Context, event model.Event) {
	hub := b.hubManager.GetHub(event.GameID)
	if hub == nil {
		return
	}

	name, data, err := b.renderer.Render(event)
	if err != nil {
		b.logger.Error("sse failed to render event",
			slog.String("game_id", string(event.GameID)),
			slog.String("event", string(event.Type)),
			slog.Any("error", err))
		return
	}
	hub.BroadcastEvent(name, data)
}
