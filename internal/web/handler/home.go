package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mcoot/wordsearchgame-go/internal/services/scoreboard"
	"github.com/mcoot/wordsearchgame-go/internal/web/templates/pages"
	"github.com/mcoot/wordsearchgame-go/internal/web/viewmodel"
)

// HomeHandler renders the score board
type HomeHandler struct {
	scoreboard scoreboard.ServiceInterface
	logger     *slog.Logger
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(scoreboard scoreboard.ServiceInterface, logger *slog.Logger) *HomeHandler {
	return &HomeHandler{
		scoreboard: scoreboard,
		logger:     logger,
	}
}

// Home renders the home page
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	boards, err := h.scoreboard.Boards(r.Context())
	if err != nil {
		h.logger.Error("failed to load scores", slog.String("error", err.Error()))
		renderError(w, r, http.StatusInternalServerError, "Error", "Could not load scores")
		return
	}

	summary, err := h.scoreboard.Summarize(r.Context())
	if err != nil && !errors.Is(err, scoreboard.ErrNoScores) {
		h.logger.Error("failed to summarize scores", slog.String("error", err.Error()))
		renderError(w, r, http.StatusInternalServerError, "Error", "Could not load scores")
		return
	}

	render(w, r, http.StatusOK, pages.Home(viewmodel.NewHomePage(boards, summary)))
}
