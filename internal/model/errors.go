package model

import "errors"

// Common errors used across the application
var (
	// Configuration errors
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrPoolExhausted        = errors.New("word pool exhausted")
	ErrInvalidWordList      = errors.New("invalid word list")

	// Game errors
	ErrGameNotFound    = errors.New("game not found")
	ErrGameComplete    = errors.New("game is already complete")
	ErrGameAbandoned   = errors.New("game has been abandoned")
	ErrGamePaused      = errors.New("game is paused")
	ErrGameNotPaused   = errors.New("game is not paused")
	ErrInvalidPosition = errors.New("invalid grid position")
	ErrCellFound       = errors.New("cell is already part of a found word")
	ErrInvalidToken    = errors.New("invalid game token")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
