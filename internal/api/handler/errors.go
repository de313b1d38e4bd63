package handler

import (
	"net/http"

	"github.com/mcoot/wordsearchgame-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest       = apierr.CodeInvalidRequest
	CodeInvalidConfiguration = apierr.CodeInvalidConfiguration
	CodeInvalidWordList      = apierr.CodeInvalidWordList
	CodePoolExhausted        = apierr.CodePoolExhausted
	CodeInvalidPosition      = apierr.CodeInvalidPosition
	CodeUnauthorized         = apierr.CodeUnauthorized
	CodeGameNotFound         = apierr.CodeGameNotFound
	CodeGameComplete         = apierr.CodeGameComplete
	CodeGameAbandoned        = apierr.CodeGameAbandoned
	CodeGamePaused           = apierr.CodeGamePaused
	CodeGameNotPaused        = apierr.CodeGameNotPaused
	CodeCellFound            = apierr.CodeCellFound
	CodeDictionaryNotLoaded  = apierr.CodeDictionaryNotLoaded
	CodeNoScores             = apierr.CodeNoScores
	CodeInternalError        = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
