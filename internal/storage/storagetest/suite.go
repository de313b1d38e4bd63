// Package storagetest holds behaviour every storage backend must share
package storagetest

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/storage"
)

// Suite runs the common storage tests. Backends embed it and set Storage
// in their own SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
}

// SampleGame builds a small in-progress game
func SampleGame(id model.GameID) *model.Game {
	started := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	grid := model.NewGrid(10)
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			grid.SetLetter(model.Position{Row: row, Col: col}, 'q')
		}
	}
	for i, r := range "cat" {
		grid.SetLetter(model.Position{Row: 0, Col: i}, r)
	}
	grid.SetState(model.Position{Row: 0, Col: 1}, model.CellSelected)

	return &model.Game{
		ID: id,
		Config: model.Configuration{
			GridSize:   10,
			Directions: []model.Direction{model.DirectionRow, model.DirectionDiagonal},
		},
		State: model.GameStatePlaying,
		Grid:  grid,
		Bank: model.WordBank{Words: []model.PlacedWord{
			{Word: "cat", Orientation: model.OrientationRow, Anchor: model.Position{Row: 0, Col: 0}},
		}},
		StartedAt: started,
		PausedFor: 3 * time.Second,
		TokenHash: "$2a$04$hash",
		CreatedAt: started,
		UpdatedAt: started,
	}
}

// Game tests

func (s *Suite) TestSaveAndGetGame() {
	game := SampleGame("game-1")

	err := s.Storage.SaveGame(s.Ctx, game)
	s.Require().NoError(err)

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(game.ID, retrieved.ID)
	s.Equal(game.Config, retrieved.Config)
	s.Equal(game.State, retrieved.State)
	s.Equal(game.Grid, retrieved.Grid)
	s.Equal(game.Bank, retrieved.Bank)
	s.Equal(game.PausedFor, retrieved.PausedFor)
	s.Equal(game.TokenHash, retrieved.TokenHash)
	s.True(game.StartedAt.Equal(retrieved.StartedAt))
}

func (s *Suite) TestGetGameNotFound() {
	_, err := s.Storage.GetGame(s.Ctx, "nonexistent")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *Suite) TestSaveGameOverwrites() {
	game := SampleGame("game-1")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	game.State = model.GameStateComplete
	game.Bank.MarkFound("cat")
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	retrieved, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameStateComplete, retrieved.State)
	s.True(retrieved.Bank.AllFound())
}

func (s *Suite) TestRetrievedGameIsIndependent() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, SampleGame("game-1")))

	first, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	first.Grid.SetState(model.Position{Row: 5, Col: 5}, model.CellFound)

	second, err := s.Storage.GetGame(s.Ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.CellUnselected, second.Grid.State(model.Position{Row: 5, Col: 5}))
}

func (s *Suite) TestDeleteGame() {
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, SampleGame("game-1")))

	err := s.Storage.DeleteGame(s.Ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.Storage.GetGame(s.Ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotFound)

	ids, err := s.Storage.ListGameIDs(s.Ctx)
	s.Require().NoError(err)
	s.Empty(ids)
}

func (s *Suite) TestListGameIDs() {
	for _, id := range []model.GameID{"game-b", "game-a", "game-c"} {
		s.Require().NoError(s.Storage.SaveGame(s.Ctx, SampleGame(id)))
	}
	// Saving again must not duplicate the entry
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, SampleGame("game-a")))

	ids, err := s.Storage.ListGameIDs(s.Ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"game-a", "game-b", "game-c"}, ids)
}

func (s *Suite) TestListActiveGameIDs() {
	states := map[model.GameID]model.GameState{
		"game-a": model.GameStatePlaying,
		"game-b": model.GameStateComplete,
		"game-c": model.GameStatePaused,
		"game-d": model.GameStateAbandoned,
	}
	for id, state := range states {
		game := SampleGame(id)
		game.State = state
		s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))
	}

	ids, err := s.Storage.ListActiveGameIDs(s.Ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"game-a", "game-c"}, ids)

	// A finished game drops out once saved
	game := SampleGame("game-a")
	game.State = model.GameStateAbandoned
	s.Require().NoError(s.Storage.SaveGame(s.Ctx, game))

	ids, err = s.Storage.ListActiveGameIDs(s.Ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"game-c"}, ids)
}

func (s *Suite) TestListActiveGameIDsEmpty() {
	ids, err := s.Storage.ListActiveGameIDs(s.Ctx)
	s.Require().NoError(err)
	s.Empty(ids)
}

// Dictionary tests

func (s *Suite) TestDictionaryNotLoaded() {
	_, err := s.Storage.GetDictionaryWords(s.Ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *Suite) TestSaveAndGetDictionaryPreservesOrder() {
	words := []string{"zebra", "apple", "mango"}
	s.Require().NoError(s.Storage.SaveDictionaryWords(s.Ctx, words))

	retrieved, err := s.Storage.GetDictionaryWords(s.Ctx)
	s.Require().NoError(err)
	s.Equal(words, retrieved)
}

func (s *Suite) TestSaveDictionaryReplaces() {
	s.Require().NoError(s.Storage.SaveDictionaryWords(s.Ctx, []string{"old", "words"}))
	s.Require().NoError(s.Storage.SaveDictionaryWords(s.Ctx, []string{"new"}))

	retrieved, err := s.Storage.GetDictionaryWords(s.Ctx)
	s.Require().NoError(err)
	s.Equal([]string{"new"}, retrieved)
}

// Score tests

func (s *Suite) TestListScoresEmpty() {
	scores, err := s.Storage.ListScores(s.Ctx)
	s.Require().NoError(err)
	s.Empty(scores)
}

func (s *Suite) TestAppendScoresKeepsOrder() {
	recorded := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	records := []model.ScoreRecord{
		{GameID: "game-1", Tier: model.TierEasy, Elapsed: 95 * time.Second, RecordedAt: recorded},
		{GameID: "game-2", Tier: model.TierHard, Elapsed: time.Hour, RecordedAt: recorded.Add(time.Minute)},
		{GameID: "game-3", Tier: model.TierEasy, Elapsed: 80 * time.Second, RecordedAt: recorded.Add(2 * time.Minute)},
	}
	for i := range records {
		s.Require().NoError(s.Storage.AppendScore(s.Ctx, &records[i]))
	}

	scores, err := s.Storage.ListScores(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(scores, 3)
	for i, score := range scores {
		s.Equal(records[i].GameID, score.GameID)
		s.Equal(records[i].Tier, score.Tier)
		s.Equal(records[i].Elapsed, score.Elapsed)
		s.True(records[i].RecordedAt.Equal(score.RecordedAt))
	}
}
