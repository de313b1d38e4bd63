package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/storage"
)

// Storage is a SQLite-backed implementation of the storage interface.
// Games are stored as JSON documents; scores and dictionary words get
// their own tables.
type Storage struct {
	db *sql.DB
}

// Open opens (creating if missing) the database at cfg.Path and applies migrations
func Open(cfg Config, logger *slog.Logger) (*Storage, error) {
	dir := filepath.Dir(cfg.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// A single connection serialises writers
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}

	if err := migrate(db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (id, state, data, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET
            state = excluded.state,
            data = excluded.data,
            updated_at = excluded.updated_at`,
		string(game.ID), string(game.State), string(data), game.UpdatedAt.UnixMilli(),
	)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM games WHERE id=?`, string(id)).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal([]byte(data), &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM games WHERE id=?`, string(id))
	return err
}

func (s *Storage) ListGameIDs(ctx context.Context) ([]model.GameID, error) {
	return s.queryGameIDs(ctx, `SELECT id FROM games ORDER BY id ASC`)
}

func (s *Storage) ListActiveGameIDs(ctx context.Context) ([]model.GameID, error) {
	return s.queryGameIDs(ctx, `SELECT id FROM games WHERE state IN (?, ?) ORDER BY id ASC`,
		string(model.GameStatePlaying), string(model.GameStatePaused))
}

func (s *Storage) queryGameIDs(ctx context.Context, query string, args ...any) ([]model.GameID, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []model.GameID{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, model.GameID(id))
	}
	return ids, rows.Err()
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM dictionary_words ORDER BY position ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}
	return words, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM dictionary_words`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO dictionary_words (position, word) VALUES (?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i, w := range words {
		if _, err := stmt.ExecContext(ctx, i, w); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// Score operations

func (s *Storage) AppendScore(ctx context.Context, record *model.ScoreRecord) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO scores (game_id, tier, elapsed_ms, recorded_at)
        VALUES (?, ?, ?, ?)`,
		string(record.GameID), string(record.Tier), record.Elapsed.Milliseconds(), record.RecordedAt.UnixMilli(),
	)
	return err
}

func (s *Storage) ListScores(ctx context.Context) ([]model.ScoreRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT game_id, tier, elapsed_ms, recorded_at
        FROM scores
        ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := []model.ScoreRecord{}
	for rows.Next() {
		var (
			gameID, tier          string
			elapsedMs, recordedAt int64
		)
		if err := rows.Scan(&gameID, &tier, &elapsedMs, &recordedAt); err != nil {
			return nil, err
		}
		scores = append(scores, model.ScoreRecord{
			GameID:     model.GameID(gameID),
			Tier:       model.Tier(tier),
			Elapsed:    time.Duration(elapsedMs) * time.Millisecond,
			RecordedAt: time.UnixMilli(recordedAt).UTC(),
		})
	}
	return scores, rows.Err()
}
