package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/mcoot/wordsearchgame-go/internal/dependencies/clock"
	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/storage"
)

// ErrNoScores is returned by Summarize before any game has been completed
var ErrNoScores = errors.New("no scores recorded")

// Service records completion times and reports on them
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new scoreboard Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Board is the completion times for one tier, fastest first
type Board struct {
	Tier   model.Tier
	Scores []model.ScoreRecord
}

// Best returns the fastest score on the board
func (b Board) Best() (model.ScoreRecord, bool) {
	if len(b.Scores) == 0 {
		return model.ScoreRecord{}, false
	}
	return b.Scores[0], true
}

// Summary describes the most recent result against its tier's best
type Summary struct {
	Latest        model.ScoreRecord
	Best          model.ScoreRecord
	BeatHighScore bool
	Unit          string
}

// Result renders the latest completion, e.g. "You beat the word search in 00:01:35 minutes in Easy Mode."
func (s Summary) Result() string {
	return fmt.Sprintf("You beat the word search in %s %s in %s Mode.",
		model.FormatElapsed(s.Latest.Elapsed), s.Unit, s.Latest.Tier.Label())
}

// Headline reports whether the latest completion is a new best
func (s Summary) Headline() string {
	if s.BeatHighScore {
		return "You beat your high score!"
	}
	return fmt.Sprintf("You did not beat your high score of %s.", model.FormatElapsed(s.Best.Elapsed))
}

// Record appends a completion time for a game. A game already on the
// scoreboard keeps its first record.
func (s *Service) Record(ctx context.Context, gameID model.GameID, tier model.Tier, elapsed time.Duration) (*model.ScoreRecord, error) {
	existing, err := s.storage.ListScores(ctx)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].GameID == gameID {
			return &existing[i], nil
		}
	}

	record := &model.ScoreRecord{
		GameID:     gameID,
		Tier:       tier,
		Elapsed:    elapsed,
		RecordedAt: s.clock.Now(),
	}
	if err := s.storage.AppendScore(ctx, record); err != nil {
		s.logger.Error("failed to record score",
			slog.String("game_id", string(gameID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("score recorded",
		slog.String("game_id", string(gameID)),
		slog.String("tier", string(tier)),
		slog.String("elapsed", model.FormatElapsed(elapsed)),
	)
	return record, nil
}

// List returns every score in the order it was recorded
func (s *Service) List(ctx context.Context) ([]model.ScoreRecord, error) {
	return s.storage.ListScores(ctx)
}

// Boards groups scores by tier, easiest tier first, fastest time first.
// Every tier is present even when empty.
func (s *Service) Boards(ctx context.Context) ([]Board, error) {
	scores, err := s.storage.ListScores(ctx)
	if err != nil {
		return nil, err
	}

	boards := make([]Board, len(model.AllTiers))
	for i, tier := range model.AllTiers {
		boards[i] = Board{Tier: tier, Scores: filterTier(scores, tier)}
	}
	return boards, nil
}

// Board returns the scores for a single tier, fastest first
func (s *Service) Board(ctx context.Context, tier model.Tier) (Board, error) {
	scores, err := s.storage.ListScores(ctx)
	if err != nil {
		return Board{}, err
	}
	return Board{Tier: tier, Scores: filterTier(scores, tier)}, nil
}

// Summarize compares the most recent score against the best in its tier.
// Equalling the best time counts as beating it.
func (s *Service) Summarize(ctx context.Context) (*Summary, error) {
	scores, err := s.storage.ListScores(ctx)
	if err != nil {
		return nil, err
	}
	if len(scores) == 0 {
		return nil, ErrNoScores
	}

	latest := scores[len(scores)-1]
	best := filterTier(scores, latest.Tier)[0]

	return &Summary{
		Latest:        latest,
		Best:          best,
		BeatHighScore: latest.Elapsed <= best.Elapsed,
		Unit:          model.ElapsedUnit(latest.Elapsed),
	}, nil
}

// filterTier returns the tier's scores sorted by elapsed time.
// Ties keep recording order.
func filterTier(scores []model.ScoreRecord, tier model.Tier) []model.ScoreRecord {
	result := []model.ScoreRecord{}
	for _, score := range scores {
		if score.Tier == tier {
			result = append(result, score)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Elapsed < result[j].Elapsed
	})
	return result
}

// ServiceInterface defines the scoreboard operations used by handlers
type ServiceInterface interface {
	Record(ctx context.Context, gameID model.GameID, tier model.Tier, elapsed time.Duration) (*model.ScoreRecord, error)
	List(ctx context.Context) ([]model.ScoreRecord, error)
	Boards(ctx context.Context) ([]Board, error)
	Board(ctx context.Context, tier model.Tier) (Board, error)
	Summarize(ctx context.Context) (*Summary, error)
}

var _ ServiceInterface = (*Service)(nil)
