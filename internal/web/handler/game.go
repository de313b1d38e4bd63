package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearchgame-go/internal/dependencies/clock"
	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/services/game"
	"github.com/mcoot/wordsearchgame-go/internal/web/sse"
	"github.com/mcoot/wordsearchgame-go/internal/web/templates/pages"
	"github.com/mcoot/wordsearchgame-go/internal/web/viewmodel"
)

// GameHandler renders game boards and streams their events
type GameHandler struct {
	gameController game.ControllerInterface
	hubManager     *sse.HubManager
	clock          clock.Clock
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController game.ControllerInterface, hubManager *sse.HubManager, clock clock.Clock, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		hubManager:     hubManager,
		clock:          clock,
		logger:         logger,
	}
}

// View renders the game page
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.GetGame(r.Context(), gameID)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			renderError(w, r, http.StatusNotFound, "Not Found", "Game not found")
			return
		}
		h.logger.Error("failed to load game",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()))
		renderError(w, r, http.StatusInternalServerError, "Error", "Could not load game")
		return
	}

	render(w, r, http.StatusOK, pages.Game(viewmodel.NewGamePage(g, h.clock.Now())))
}

// Events streams a game's events over SSE
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	gameID := model.GameID(mux.Vars(r)["id"])

	if _, err := h.gameController.GetGame(r.Context(), gameID); err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	hub := h.hubManager.GetOrCreateHub(gameID)
	sse.ServeSSE(w, r, hub)
}
