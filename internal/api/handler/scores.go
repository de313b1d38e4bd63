package handler

import (
	"net/http"

	"github.com/mcoot/wordsearchgame-go/internal/api/response"
	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/services/scoreboard"
)

// ScoreHandler handles score board endpoints
type ScoreHandler struct {
	scoreboard scoreboard.ServiceInterface
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoreboard scoreboard.ServiceInterface) *ScoreHandler {
	return &ScoreHandler{scoreboard: scoreboard}
}

// List handles GET /api/v1/scores, optionally filtered with ?tier=
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	var boards []scoreboard.Board

	if tier := model.Tier(r.URL.Query().Get("tier")); tier != "" {
		if !tier.IsValid() {
			WriteError(w, NewInvalidRequestError("tier must be easy, medium or hard"))
			return
		}
		board, err := h.scoreboard.Board(r.Context(), tier)
		if err != nil {
			WriteError(w, err)
			return
		}
		boards = []scoreboard.Board{board}
	} else {
		var err error
		boards, err = h.scoreboard.Boards(r.Context())
		if err != nil {
			WriteError(w, err)
			return
		}
	}

	resp := response.ScoresResponse{Boards: make([]response.ScoreBoard, len(boards))}
	for i, b := range boards {
		resp.Boards[i] = response.ScoreBoardFromService(b)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Summary handles GET /api/v1/scores/summary
func (h *ScoreHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.scoreboard.Summarize(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SummaryFromService(summary))
}
