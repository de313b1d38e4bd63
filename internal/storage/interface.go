package storage

import (
	"context"

	"github.com/mcoot/wordsearchgame-go/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Game operations
	SaveGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error
	ListGameIDs(ctx context.Context) ([]model.GameID, error)
	// ListActiveGameIDs returns the games that are playing or paused
	ListActiveGameIDs(ctx context.Context) ([]model.GameID, error)

	// Dictionary operations. Word order is preserved.
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error

	// Score operations. Scores are append-only and listed in append order.
	AppendScore(ctx context.Context, record *model.ScoreRecord) error
	ListScores(ctx context.Context) ([]model.ScoreRecord, error)
}
