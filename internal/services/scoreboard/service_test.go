package scoreboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordsearchgame-go/internal/dependencies/mocks"
	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/storage/memory"
	"github.com/mcoot/wordsearchgame-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) record(id model.GameID, tier model.Tier, elapsed time.Duration) {
	_, err := s.service.Record(s.ctx, id, tier, elapsed)
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
}

func (s *ServiceSuite) TestRecordUsesClock() {
	record, err := s.service.Record(s.ctx, "game-1", model.TierEasy, 95*time.Second)
	s.Require().NoError(err)
	s.Equal(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), record.RecordedAt)

	scores, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(scores, 1)
	s.Equal(model.GameID("game-1"), scores[0].GameID)
}

func (s *ServiceSuite) TestRecordKeepsFirstResultPerGame() {
	first, err := s.service.Record(s.ctx, "game-1", model.TierEasy, 95*time.Second)
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)

	again, err := s.service.Record(s.ctx, "game-1", model.TierEasy, 99*time.Second)
	s.Require().NoError(err)
	s.Equal(first.Elapsed, again.Elapsed)
	s.True(first.RecordedAt.Equal(again.RecordedAt))

	scores, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(scores, 1)
}

func (s *ServiceSuite) TestBoardsGroupAndSort() {
	s.record("g1", model.TierEasy, 95*time.Second)
	s.record("g2", model.TierHard, time.Hour)
	s.record("g3", model.TierEasy, 80*time.Second)
	s.record("g4", model.TierEasy, 120*time.Second)

	boards, err := s.service.Boards(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(boards, 3)

	s.Equal(model.TierEasy, boards[0].Tier)
	s.Require().Len(boards[0].Scores, 3)
	s.Equal(model.GameID("g3"), boards[0].Scores[0].GameID)
	s.Equal(model.GameID("g1"), boards[0].Scores[1].GameID)
	s.Equal(model.GameID("g4"), boards[0].Scores[2].GameID)

	s.Equal(model.TierMedium, boards[1].Tier)
	s.Empty(boards[1].Scores)
	_, ok := boards[1].Best()
	s.False(ok)

	best, ok := boards[2].Best()
	s.True(ok)
	s.Equal(model.GameID("g2"), best.GameID)
}

func (s *ServiceSuite) TestBoardSingleTier() {
	s.record("g1", model.TierMedium, 3*time.Minute)
	s.record("g2", model.TierEasy, time.Minute)

	board, err := s.service.Board(s.ctx, model.TierMedium)
	s.Require().NoError(err)
	s.Require().Len(board.Scores, 1)
	s.Equal(model.GameID("g1"), board.Scores[0].GameID)
}

func (s *ServiceSuite) TestSummarizeNoScores() {
	_, err := s.service.Summarize(s.ctx)
	s.ErrorIs(err, ErrNoScores)
}

func (s *ServiceSuite) TestSummarizeFirstScoreBeatsHighScore() {
	s.record("g1", model.TierEasy, 95*time.Second)

	summary, err := s.service.Summarize(s.ctx)
	s.Require().NoError(err)
	s.True(summary.BeatHighScore)
	s.Equal("minutes", summary.Unit)
	s.Equal("You beat the word search in 00:01:35 minutes in Easy Mode.", summary.Result())
	s.Equal("You beat your high score!", summary.Headline())
}

func (s *ServiceSuite) TestSummarizeSlowerThanBest() {
	s.record("g1", model.TierEasy, 80*time.Second)
	s.record("g2", model.TierHard, 10*time.Second)
	s.record("g3", model.TierEasy, 95*time.Second)

	summary, err := s.service.Summarize(s.ctx)
	s.Require().NoError(err)
	s.False(summary.BeatHighScore)
	s.Equal(model.GameID("g3"), summary.Latest.GameID)
	s.Equal(model.GameID("g1"), summary.Best.GameID)
	s.Equal("You did not beat your high score of 00:01:20.", summary.Headline())
}

func (s *ServiceSuite) TestSummarizeOnlyComparesSameTier() {
	s.record("g1", model.TierHard, 10*time.Second)
	s.record("g2", model.TierEasy, 95*time.Second)

	summary, err := s.service.Summarize(s.ctx)
	s.Require().NoError(err)
	s.True(summary.BeatHighScore)
}

func (s *ServiceSuite) TestSummarizeTieCountsAsBeat() {
	s.record("g1", model.TierEasy, 80*time.Second)
	s.record("g2", model.TierEasy, 80*time.Second)

	summary, err := s.service.Summarize(s.ctx)
	s.Require().NoError(err)
	s.True(summary.BeatHighScore)
}

func (s *ServiceSuite) TestSummaryUnits() {
	s.record("g1", model.TierHard, time.Hour+5*time.Second)

	summary, err := s.service.Summarize(s.ctx)
	s.Require().NoError(err)
	s.Equal("hours", summary.Unit)
	s.Equal("You beat the word search in 01:00:05 hours in Hard Mode.", summary.Result())
}
