package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/services/scoreboard"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeInvalidConfiguration = "INVALID_CONFIGURATION"
	CodeInvalidWordList      = "INVALID_WORD_LIST"
	CodePoolExhausted        = "POOL_EXHAUSTED"
	CodeInvalidPosition      = "INVALID_POSITION"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeGameNotFound         = "GAME_NOT_FOUND"
	CodeGameComplete         = "GAME_COMPLETE"
	CodeGameAbandoned        = "GAME_ABANDONED"
	CodeGamePaused           = "GAME_PAUSED"
	CodeGameNotPaused        = "GAME_NOT_PAUSED"
	CodeCellFound            = "CELL_FOUND"
	CodeDictionaryNotLoaded  = "DICTIONARY_NOT_LOADED"
	CodeNoScores             = "NO_SCORES"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrInvalidConfiguration):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidConfiguration, err.Error()}}
	case errors.Is(err, model.ErrInvalidWordList):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidWordList, err.Error()}}
	case errors.Is(err, model.ErrPoolExhausted):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodePoolExhausted, "Not enough words fit this grid"}}
	case errors.Is(err, model.ErrInvalidPosition):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPosition, "Invalid grid position"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrGameComplete):
		return &httpError{http.StatusConflict, APIError{CodeGameComplete, "Game is already complete"}}
	case errors.Is(err, model.ErrGameAbandoned):
		return &httpError{http.StatusConflict, APIError{CodeGameAbandoned, "Game has been abandoned"}}
	case errors.Is(err, model.ErrGamePaused):
		return &httpError{http.StatusConflict, APIError{CodeGamePaused, "Game is paused"}}
	case errors.Is(err, model.ErrGameNotPaused):
		return &httpError{http.StatusConflict, APIError{CodeGameNotPaused, "Game is not paused"}}
	case errors.Is(err, model.ErrCellFound):
		return &httpError{http.StatusConflict, APIError{CodeCellFound, "Cell is part of a found word"}}
	case errors.Is(err, model.ErrInvalidToken):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid game token"}}
	case errors.Is(err, model.ErrDictionaryNotLoaded):
		return &httpError{http.StatusServiceUnavailable, APIError{CodeDictionaryNotLoaded, "Dictionary not loaded"}}

	// Map scoreboard errors
	case errors.Is(err, scoreboard.ErrNoScores):
		return &httpError{http.StatusNotFound, APIError{CodeNoScores, "No completed games yet"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Game token required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
