package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) SaveGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, gameKey(game.ID), data, s.cfg.GameTTL)
	pipe.SAdd(ctx, gamesIndexKey(), string(game.ID))
	if game.IsActive() {
		pipe.SAdd(ctx, activeGamesIndexKey(), string(game.ID))
	} else {
		pipe.SRem(ctx, activeGamesIndexKey(), string(game.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, gameKey(id))
	pipe.SRem(ctx, gamesIndexKey(), string(id))
	pipe.SRem(ctx, activeGamesIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

// ListGameIDs returns indexed games whose key has not expired.
// Expired entries are pruned from the index as they are found.
func (s *Storage) ListGameIDs(ctx context.Context) ([]model.GameID, error) {
	return s.listIndexed(ctx, gamesIndexKey())
}

// ListActiveGameIDs reads the active index, which SaveGame keeps in step
// with each game's state
func (s *Storage) ListActiveGameIDs(ctx context.Context) ([]model.GameID, error) {
	return s.listIndexed(ctx, activeGamesIndexKey())
}

func (s *Storage) listIndexed(ctx context.Context, index string) ([]model.GameID, error) {
	members, err := s.client.SMembers(ctx, index).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []model.GameID{}, nil
	}

	pipe := s.client.Pipeline()
	exists := make([]*redis.IntCmd, len(members))
	for i, member := range members {
		exists[i] = pipe.Exists(ctx, gameKey(model.GameID(member)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	ids := make([]model.GameID, 0, len(members))
	var stale []any
	for i, member := range members {
		if exists[i].Val() > 0 {
			ids = append(ids, model.GameID(member))
		} else {
			stale = append(stale, member)
		}
	}
	if len(stale) > 0 {
		if err := s.client.SRem(ctx, index, stale...).Err(); err != nil {
			return nil, err
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	words, err := s.client.LRange(ctx, dictionaryKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}
	return words, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	values := make([]any, len(words))
	for i, w := range words {
		values[i] = w
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, dictionaryKey())
	if len(values) > 0 {
		pipe.RPush(ctx, dictionaryKey(), values...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Score operations

func (s *Storage) AppendScore(ctx context.Context, record *model.ScoreRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, scoresKey(), data).Err()
}

func (s *Storage) ListScores(ctx context.Context) ([]model.ScoreRecord, error) {
	entries, err := s.client.LRange(ctx, scoresKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]model.ScoreRecord, 0, len(entries))
	for _, entry := range entries {
		var record model.ScoreRecord
		if err := json.Unmarshal([]byte(entry), &record); err != nil {
			return nil, err
		}
		scores = append(scores, record)
	}
	return scores, nil
}
