package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearchgame-go/internal/api/request"
	"github.com/mcoot/wordsearchgame-go/internal/api/response"
	"github.com/mcoot/wordsearchgame-go/internal/dependencies/clock"
	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/services/game"
)

// GameHandler handles game endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	clock          clock.Clock
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface, clock clock.Clock) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		clock:          clock,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	opts := game.NewGameOptions{
		GridSize:    req.GridSize,
		Directions:  model.AllDirections,
		CustomWords: req.Words,
	}
	if opts.GridSize == 0 {
		opts.GridSize = model.MinGridSize
	}
	if len(req.Directions) > 0 {
		opts.Directions = make([]model.Direction, len(req.Directions))
		for i, d := range req.Directions {
			opts.Directions[i] = model.Direction(d)
		}
	}

	created, err := h.gameController.CreateGame(r.Context(), opts)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateGameResponse{
		Game:  response.GameFromModel(created.Game, h.clock.Now()),
		Token: created.Token,
	})
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	ids, err := h.gameController.ActiveGameIDs(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	games := make([]string, len(ids))
	for i, id := range ids {
		games[i] = string(id)
	}
	response.JSON(w, http.StatusOK, response.GameListResponse{Games: games})
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.GetGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeGame(w, g)
}

// Toggle handles POST /api/v1/games/{id}/cells
func (h *GameHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	var req request.PositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	outcome, err := h.gameController.ToggleCell(r.Context(), gameID(r), model.Position{Row: req.Row, Col: req.Col})
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeOutcome(w, outcome)
}

// SetSelection handles PUT /api/v1/games/{id}/selection
func (h *GameHandler) SetSelection(w http.ResponseWriter, r *http.Request) {
	var req request.SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	cells := make([]model.Position, len(req.Cells))
	for i, c := range req.Cells {
		cells[i] = model.Position{Row: c.Row, Col: c.Col}
	}

	g, err := h.gameController.SetSelection(r.Context(), gameID(r), cells)
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeGame(w, g)
}

// ClearSelection handles DELETE /api/v1/games/{id}/selection
func (h *GameHandler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.ClearSelection(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeGame(w, g)
}

// Validate handles POST /api/v1/games/{id}/validate
func (h *GameHandler) Validate(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.gameController.Validate(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeOutcome(w, outcome)
}

// Pause handles POST /api/v1/games/{id}/pause
func (h *GameHandler) Pause(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.Pause(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeGame(w, g)
}

// Resume handles POST /api/v1/games/{id}/resume
func (h *GameHandler) Resume(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.Resume(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeGame(w, g)
}

// Abandon handles DELETE /api/v1/games/{id}
func (h *GameHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	g, err := h.gameController.AbandonGame(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeGame(w, g)
}

func (h *GameHandler) writeGame(w http.ResponseWriter, g *model.Game) {
	response.JSON(w, http.StatusOK, response.GameFromModel(g, h.clock.Now()))
}

func (h *GameHandler) writeOutcome(w http.ResponseWriter, outcome *game.SelectionOutcome) {
	response.JSON(w, http.StatusOK, response.SelectionResponse{
		Game:   response.GameFromModel(outcome.Game, h.clock.Now()),
		Result: response.SelectionResultFromModel(outcome.Result),
	})
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}
