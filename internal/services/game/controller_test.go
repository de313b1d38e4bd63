package game

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/wordsearchgame-go/internal/dependencies/mocks"
	"github.com/mcoot/wordsearchgame-go/internal/dependencies/random"
	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/services/dictionary"
	"github.com/mcoot/wordsearchgame-go/internal/services/generator"
	"github.com/mcoot/wordsearchgame-go/internal/services/scoreboard"
	"github.com/mcoot/wordsearchgame-go/internal/services/session"
	"github.com/mcoot/wordsearchgame-go/internal/services/validator"
	"github.com/mcoot/wordsearchgame-go/internal/storage/memory"
	"github.com/mcoot/wordsearchgame-go/internal/testutil"
)

// recordingPublisher collects published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []model.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) ofType(t model.EventType) []model.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	var result []model.Event
	for _, e := range p.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

var errScoreWrite = errors.New("score write failed")

// flakyScores fails score writes while fail is set
type flakyScores struct {
	*memory.Storage
	fail bool
}

func (f *flakyScores) AppendScore(ctx context.Context, record *model.ScoreRecord) error {
	if f.fail {
		return errScoreWrite
	}
	return f.Storage.AppendScore(ctx, record)
}

type ControllerSuite struct {
	suite.Suite
	storage    *memory.Storage
	dictionary *dictionary.Service
	scoreboard *scoreboard.Service
	sessions   *session.Service
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	publisher  *recordingPublisher
	controller *Controller
	ctx        context.Context
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	logger := testutil.NopLogger()

	s.storage = memory.New()
	s.dictionary = dictionary.New(s.storage, logger)
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.scoreboard = scoreboard.New(s.storage, s.clock, logger)
	s.sessions = session.New(session.Config{Cost: bcrypt.MinCost})
	s.publisher = &recordingPublisher{}

	s.controller = NewController(
		s.storage,
		generator.New(random.NewSeeded(7), logger, generator.DefaultConfig()),
		validator.New(logger),
		s.dictionary,
		s.scoreboard,
		s.sessions,
		s.clock,
		s.random,
		logger,
	)
	s.controller.SetPublisher(s.publisher)
	s.ctx = context.Background()
}

// seedGame stores a 10x10 game of 'x' holding three known words:
// cat along row 0, dog down column 5 and owl on the forward diagonal from (5,0)
func (s *ControllerSuite) seedGame(id model.GameID) string {
	grid := model.NewGrid(10)
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			grid.SetLetter(model.Position{Row: row, Col: col}, 'x')
		}
	}

	bank := model.WordBank{}
	for _, w := range []model.PlacedWord{
		{Word: "cat", Orientation: model.OrientationRow, Anchor: model.Position{Row: 0, Col: 0}},
		{Word: "dog", Orientation: model.OrientationColumn, Anchor: model.Position{Row: 2, Col: 5}},
		{Word: "owl", Orientation: model.OrientationForwardDiagonal, Anchor: model.Position{Row: 5, Col: 0}},
	} {
		for i, pos := range w.Span() {
			grid.SetLetter(pos, rune(w.Word[i]))
		}
		bank.Add(w)
	}

	token, hash, err := s.sessions.Issue()
	s.Require().NoError(err)

	now := s.clock.Now()
	game := &model.Game{
		ID:        id,
		Config:    model.DefaultConfiguration(),
		State:     model.GameStatePlaying,
		Grid:      grid,
		Bank:      bank,
		StartedAt: now,
		TokenHash: hash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Require().NoError(s.storage.SaveGame(s.ctx, game))
	return token
}

func pos(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

func (s *ControllerSuite) toggleAll(id model.GameID, cells ...model.Position) *SelectionOutcome {
	var outcome *SelectionOutcome
	for _, cell := range cells {
		var err error
		outcome, err = s.controller.ToggleCell(s.ctx, id, cell)
		s.Require().NoError(err)
	}
	return outcome
}

func (s *ControllerSuite) findAll(id model.GameID) {
	s.toggleAll(id, pos(0, 0), pos(0, 1), pos(0, 2))
	s.toggleAll(id, pos(2, 5), pos(3, 5), pos(4, 5))
	s.toggleAll(id, pos(5, 0), pos(6, 1), pos(7, 2))
}

// CreateGame tests

func (s *ControllerSuite) loadDictionary() {
	s.Require().NoError(s.dictionary.LoadWords([]string{
		"cat", "dog", "bird", "fish", "lion", "tiger", "horse", "zebra", "otter", "camel",
	}))
}

func (s *ControllerSuite) TestCreateGameSucceeds() {
	s.loadDictionary()
	s.random.QueueString("GAME12345678")

	created, err := s.controller.CreateGame(s.ctx, NewGameOptions{
		GridSize:   10,
		Directions: model.AllDirections,
	})
	s.Require().NoError(err)

	game := created.Game
	s.Equal(model.GameID("GAME12345678"), game.ID)
	s.Equal(model.GameStatePlaying, game.State)
	s.Equal(model.TierEasy, game.Tier())
	s.False(game.Config.CustomPool)
	s.True(game.Grid.IsFull())
	s.Greater(game.Bank.Len(), 0)
	s.NotEmpty(created.Token)
	s.NotContains(game.TokenHash, created.Token)
	s.Equal(s.clock.Now(), game.StartedAt)
}

func (s *ControllerSuite) TestCreateGameIsPersisted() {
	s.loadDictionary()
	s.random.QueueString("GAME12345678")

	created, err := s.controller.CreateGame(s.ctx, NewGameOptions{GridSize: 12, Directions: model.AllDirections})
	s.Require().NoError(err)

	retrieved, err := s.controller.GetGame(s.ctx, created.Game.ID)
	s.Require().NoError(err)
	s.Equal(created.Game.Bank, retrieved.Bank)
	s.Equal(created.Game.Grid, retrieved.Grid)
}

func (s *ControllerSuite) TestCreateGamePublishesPlacements() {
	s.loadDictionary()
	s.random.QueueString("GAME12345678")

	created, err := s.controller.CreateGame(s.ctx, NewGameOptions{GridSize: 10, Directions: model.AllDirections})
	s.Require().NoError(err)

	started := s.publisher.ofType(model.EventGameStarted)
	s.Require().Len(started, 1)
	payload := started[0].Payload.(model.GameStartedPayload)
	s.Equal(10, payload.GridSize)
	s.Equal(created.Game.Bank.Len(), payload.WordCount)

	letters := 0
	for _, w := range created.Game.Bank.Words {
		letters += len(w.Word)
	}
	placed := s.publisher.ofType(model.EventLetterPlaced)
	s.Len(placed, letters)
	for _, e := range placed {
		p := e.Payload.(model.LetterPlacedPayload)
		s.Equal(p.Letter, created.Game.Grid.Letter(p.Position))
	}
}

func (s *ControllerSuite) TestCreateGameTokenAuthorizes() {
	s.loadDictionary()
	s.random.QueueString("GAME12345678")

	created, err := s.controller.CreateGame(s.ctx, NewGameOptions{GridSize: 10, Directions: model.AllDirections})
	s.Require().NoError(err)

	s.NoError(s.controller.Authorize(s.ctx, created.Game.ID, created.Token))
	s.ErrorIs(s.controller.Authorize(s.ctx, created.Game.ID, "gt_wrong"), model.ErrInvalidToken)
}

func (s *ControllerSuite) TestCreateGameInvalidConfiguration() {
	s.loadDictionary()

	_, err := s.controller.CreateGame(s.ctx, NewGameOptions{GridSize: 9, Directions: model.AllDirections})
	s.ErrorIs(err, model.ErrInvalidConfiguration)

	_, err = s.controller.CreateGame(s.ctx, NewGameOptions{GridSize: 10})
	s.ErrorIs(err, model.ErrInvalidConfiguration)
}

func (s *ControllerSuite) TestCreateGameWithoutDictionary() {
	_, err := s.controller.CreateGame(s.ctx, NewGameOptions{GridSize: 10, Directions: model.AllDirections})
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *ControllerSuite) TestCreateGameCustomWords() {
	s.random.QueueString("CUSTOM000001")
	custom := []string{"Apple", "grape", "melon", "peach", "lemon", "mango"}

	created, err := s.controller.CreateGame(s.ctx, NewGameOptions{
		GridSize:    10,
		Directions:  []model.Direction{model.DirectionRow},
		CustomWords: custom,
	})
	s.Require().NoError(err)

	game := created.Game
	s.True(game.Config.CustomPool)
	for _, w := range game.Bank.Words {
		s.Contains([]string{"apple", "grape", "melon", "peach", "lemon", "mango"}, w.Word)
		s.Equal(model.OrientationRow, w.Orientation)
	}
}

func (s *ControllerSuite) TestCreateGameInvalidCustomWords() {
	_, err := s.controller.CreateGame(s.ctx, NewGameOptions{
		GridSize:    10,
		Directions:  model.AllDirections,
		CustomWords: []string{"apple", "grape"},
	})
	s.ErrorIs(err, model.ErrInvalidWordList)
}

func (s *ControllerSuite) TestAuthorizeUnknownGame() {
	err := s.controller.Authorize(s.ctx, "missing", "gt_token")
	s.ErrorIs(err, model.ErrGameNotFound)
}

// Selection tests

func (s *ControllerSuite) TestToggleSelectsAndDeselects() {
	s.seedGame("game-1")

	outcome, err := s.controller.ToggleCell(s.ctx, "game-1", pos(4, 4))
	s.Require().NoError(err)
	s.Equal(model.CellSelected, outcome.Game.Grid.State(pos(4, 4)))
	s.False(outcome.Result.Matched)

	outcome, err = s.controller.ToggleCell(s.ctx, "game-1", pos(4, 4))
	s.Require().NoError(err)
	s.Equal(model.CellUnselected, outcome.Game.Grid.State(pos(4, 4)))
	s.Len(s.publisher.ofType(model.EventSelectionChanged), 2)
}

func (s *ControllerSuite) TestToggleCompletesWord() {
	s.seedGame("game-1")

	outcome := s.toggleAll("game-1", pos(0, 2), pos(0, 0), pos(0, 1))

	s.True(outcome.Result.Matched)
	s.Equal("cat", outcome.Result.Word)
	s.Equal(model.OrientationRow, outcome.Result.Orientation)
	for _, cell := range []model.Position{pos(0, 0), pos(0, 1), pos(0, 2)} {
		s.Equal(model.CellFound, outcome.Game.Grid.State(cell))
	}
	s.Empty(outcome.Game.Grid.Selected())
	s.Equal(1, outcome.Game.Bank.FoundCount())

	found := s.publisher.ofType(model.EventWordFound)
	s.Require().Len(found, 1)
	payload := found[0].Payload.(model.WordFoundPayload)
	s.Equal("cat", payload.Word)
	s.Equal(1, payload.Found)
	s.Equal(3, payload.Total)

	stored, err := s.controller.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.True(stored.Bank.Words[0].Found)
}

func (s *ControllerSuite) TestToggleFoundCellRejected() {
	s.seedGame("game-1")
	s.toggleAll("game-1", pos(0, 0), pos(0, 1), pos(0, 2))

	_, err := s.controller.ToggleCell(s.ctx, "game-1", pos(0, 1))
	s.ErrorIs(err, model.ErrCellFound)
}

func (s *ControllerSuite) TestToggleOutOfBounds() {
	s.seedGame("game-1")

	_, err := s.controller.ToggleCell(s.ctx, "game-1", pos(10, 0))
	s.ErrorIs(err, model.ErrInvalidPosition)

	_, err = s.controller.ToggleCell(s.ctx, "game-1", pos(0, -1))
	s.ErrorIs(err, model.ErrInvalidPosition)
}

func (s *ControllerSuite) TestToggleUnknownGame() {
	_, err := s.controller.ToggleCell(s.ctx, "missing", pos(0, 0))
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ControllerSuite) TestSetSelectionDoesNotValidate() {
	s.seedGame("game-1")

	game, err := s.controller.SetSelection(s.ctx, "game-1", []model.Position{pos(2, 5), pos(3, 5), pos(4, 5)})
	s.Require().NoError(err)
	s.Equal([]model.Position{pos(2, 5), pos(3, 5), pos(4, 5)}, game.Grid.Selected())
	s.Equal(0, game.Bank.FoundCount())
}

func (s *ControllerSuite) TestSetSelectionReplaces() {
	s.seedGame("game-1")
	_, err := s.controller.SetSelection(s.ctx, "game-1", []model.Position{pos(9, 9)})
	s.Require().NoError(err)

	game, err := s.controller.SetSelection(s.ctx, "game-1", []model.Position{pos(1, 1), pos(1, 2)})
	s.Require().NoError(err)
	s.Equal([]model.Position{pos(1, 1), pos(1, 2)}, game.Grid.Selected())
}

func (s *ControllerSuite) TestSetSelectionRejectsInvalidCellsAtomically() {
	s.seedGame("game-1")
	_, err := s.controller.SetSelection(s.ctx, "game-1", []model.Position{pos(9, 9)})
	s.Require().NoError(err)

	_, err = s.controller.SetSelection(s.ctx, "game-1", []model.Position{pos(1, 1), pos(12, 0)})
	s.ErrorIs(err, model.ErrInvalidPosition)

	game, err := s.controller.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal([]model.Position{pos(9, 9)}, game.Grid.Selected())
}

func (s *ControllerSuite) TestValidateMatch() {
	s.seedGame("game-1")
	_, err := s.controller.SetSelection(s.ctx, "game-1", []model.Position{pos(7, 2), pos(5, 0), pos(6, 1)})
	s.Require().NoError(err)

	outcome, err := s.controller.Validate(s.ctx, "game-1")
	s.Require().NoError(err)
	s.True(outcome.Result.Matched)
	s.Equal("owl", outcome.Result.Word)
	s.Equal(model.OrientationForwardDiagonal, outcome.Result.Orientation)
	s.Equal([]model.Position{pos(5, 0), pos(6, 1), pos(7, 2)}, outcome.Result.Span)
}

func (s *ControllerSuite) TestValidateMismatchKeepsSelection() {
	s.seedGame("game-1")
	_, err := s.controller.SetSelection(s.ctx, "game-1", []model.Position{pos(2, 5), pos(3, 5)})
	s.Require().NoError(err)

	outcome, err := s.controller.Validate(s.ctx, "game-1")
	s.Require().NoError(err)
	s.False(outcome.Result.Matched)
	s.Equal([]model.Position{pos(2, 5), pos(3, 5)}, outcome.Game.Grid.Selected())
}

func (s *ControllerSuite) TestClearSelection() {
	s.seedGame("game-1")
	s.toggleAll("game-1", pos(1, 1), pos(8, 8))

	game, err := s.controller.ClearSelection(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Empty(game.Grid.Selected())
}

func (s *ControllerSuite) TestConcurrentTogglesAreSerialised() {
	s.seedGame("game-1")

	var wg sync.WaitGroup
	for col := 0; col < 10; col++ {
		for _, row := range []int{8, 9} {
			wg.Add(1)
			go func(cell model.Position) {
				defer wg.Done()
				_, err := s.controller.ToggleCell(s.ctx, "game-1", cell)
				s.NoError(err)
			}(pos(row, col))
		}
	}
	wg.Wait()

	game, err := s.controller.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Len(game.Grid.Selected(), 20)
}

// Completion tests

func (s *ControllerSuite) TestFindingAllWordsCompletesGame() {
	s.seedGame("game-1")
	s.toggleAll("game-1", pos(0, 0), pos(0, 1), pos(0, 2))
	s.toggleAll("game-1", pos(2, 5), pos(3, 5), pos(4, 5))

	s.clock.Advance(95 * time.Second)
	outcome := s.toggleAll("game-1", pos(5, 0), pos(6, 1), pos(7, 2))

	game := outcome.Game
	s.Equal(model.GameStateComplete, game.State)
	s.Equal(95*time.Second, game.Elapsed)
	s.Equal(s.clock.Now(), game.EndedAt)

	complete := s.publisher.ofType(model.EventGameComplete)
	s.Require().Len(complete, 1)
	s.Equal(95*time.Second, complete[0].Payload.(model.GameCompletePayload).Elapsed)

	scores, err := s.scoreboard.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(scores, 1)
	s.Equal(model.GameID("game-1"), scores[0].GameID)
	s.Equal(model.TierEasy, scores[0].Tier)
	s.Equal(95*time.Second, scores[0].Elapsed)
}

func (s *ControllerSuite) TestFailedScoreWriteLeavesGamePlayable() {
	logger := testutil.NopLogger()
	store := &flakyScores{Storage: s.storage}
	s.controller = NewController(
		store,
		generator.New(random.NewSeeded(7), logger, generator.DefaultConfig()),
		validator.New(logger),
		s.dictionary,
		scoreboard.New(store, s.clock, logger),
		s.sessions,
		s.clock,
		s.random,
		logger,
	)
	s.controller.SetPublisher(s.publisher)

	s.seedGame("game-1")
	s.toggleAll("game-1", pos(0, 0), pos(0, 1), pos(0, 2))
	s.toggleAll("game-1", pos(2, 5), pos(3, 5), pos(4, 5))
	s.toggleAll("game-1", pos(5, 0), pos(6, 1))

	store.fail = true
	_, err := s.controller.ToggleCell(s.ctx, "game-1", pos(7, 2))
	s.ErrorIs(err, errScoreWrite)

	stored, err := s.storage.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameStatePlaying, stored.State)
	s.Equal(2, stored.Bank.FoundCount())
	s.Equal(model.CellUnselected, stored.Grid.State(pos(7, 2)))
	s.Empty(s.publisher.ofType(model.EventGameComplete))

	scores, err := s.storage.ListScores(s.ctx)
	s.Require().NoError(err)
	s.Empty(scores)

	// The same move succeeds once scores can be written again
	store.fail = false
	outcome := s.toggleAll("game-1", pos(7, 2))
	s.Equal(model.GameStateComplete, outcome.Game.State)
	s.Len(s.publisher.ofType(model.EventGameComplete), 1)

	scores, err = s.storage.ListScores(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(scores, 1)
	s.Equal(model.GameID("game-1"), scores[0].GameID)
}

func (s *ControllerSuite) TestElapsedFrozenAfterCompletion() {
	s.seedGame("game-1")
	s.clock.Advance(time.Minute)
	s.findAll("game-1")

	s.clock.Advance(time.Hour)
	game, err := s.controller.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(time.Minute, game.ElapsedAt(s.clock.Now()))
}

func (s *ControllerSuite) TestCompletedGameRejectsChanges() {
	s.seedGame("game-1")
	s.findAll("game-1")

	_, err := s.controller.ToggleCell(s.ctx, "game-1", pos(9, 9))
	s.ErrorIs(err, model.ErrGameComplete)
	_, err = s.controller.Validate(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameComplete)
	_, err = s.controller.Pause(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameComplete)
	_, err = s.controller.Resume(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameComplete)
	_, err = s.controller.AbandonGame(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameComplete)

	scores, _ := s.scoreboard.List(s.ctx)
	s.Len(scores, 1)
}

// Pause tests

func (s *ControllerSuite) TestPauseRejectsSelection() {
	s.seedGame("game-1")

	game, err := s.controller.Pause(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameStatePaused, game.State)

	_, err = s.controller.ToggleCell(s.ctx, "game-1", pos(0, 0))
	s.ErrorIs(err, model.ErrGamePaused)
	_, err = s.controller.SetSelection(s.ctx, "game-1", []model.Position{pos(0, 0)})
	s.ErrorIs(err, model.ErrGamePaused)
	_, err = s.controller.ClearSelection(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGamePaused)
	_, err = s.controller.Validate(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGamePaused)
}

func (s *ControllerSuite) TestPauseTwice() {
	s.seedGame("game-1")
	_, err := s.controller.Pause(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.controller.Pause(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGamePaused)
}

func (s *ControllerSuite) TestResumeWhenPlaying() {
	s.seedGame("game-1")

	_, err := s.controller.Resume(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameNotPaused)
}

func (s *ControllerSuite) TestPausedTimeIsExcluded() {
	s.seedGame("game-1")

	s.clock.Advance(30 * time.Second)
	_, err := s.controller.Pause(s.ctx, "game-1")
	s.Require().NoError(err)

	s.clock.Advance(10 * time.Minute)
	game, err := s.controller.GetGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(30*time.Second, game.ElapsedAt(s.clock.Now()))

	game, err = s.controller.Resume(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(model.GameStatePlaying, game.State)
	s.Equal(10*time.Minute, game.PausedFor)
	s.True(game.PausedAt.IsZero())

	s.clock.Advance(15 * time.Second)
	s.findAll("game-1")

	scores, err := s.scoreboard.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(scores, 1)
	s.Equal(45*time.Second, scores[0].Elapsed)

	s.Len(s.publisher.ofType(model.EventGamePaused), 1)
	s.Len(s.publisher.ofType(model.EventGameResumed), 1)
}

// Abandon tests

func (s *ControllerSuite) TestAbandonGame() {
	s.seedGame("game-1")
	s.toggleAll("game-1", pos(0, 0), pos(0, 1), pos(0, 2))
	s.toggleAll("game-1", pos(9, 9))

	s.clock.Advance(2 * time.Minute)
	game, err := s.controller.AbandonGame(s.ctx, "game-1")
	s.Require().NoError(err)

	s.Equal(model.GameStateAbandoned, game.State)
	s.Equal(2*time.Minute, game.Elapsed)
	s.Empty(game.Grid.Selected())
	s.Len(s.publisher.ofType(model.EventGameAbandoned), 1)

	scores, err := s.scoreboard.List(s.ctx)
	s.Require().NoError(err)
	s.Empty(scores)
}

func (s *ControllerSuite) hasLock(id model.GameID) bool {
	s.controller.mu.Lock()
	defer s.controller.mu.Unlock()
	_, ok := s.controller.locks[id]
	return ok
}

func (s *ControllerSuite) TestFinishedGamesReleaseTheirLock() {
	s.seedGame("game-1")
	s.seedGame("game-2")
	s.seedGame("game-3")

	s.findAll("game-1")
	_, err := s.controller.AbandonGame(s.ctx, "game-2")
	s.Require().NoError(err)
	s.toggleAll("game-3", pos(9, 9))

	s.False(s.hasLock("game-1"))
	s.False(s.hasLock("game-2"))
	s.True(s.hasLock("game-3"))

	// Later calls on finished or unknown games leave nothing behind
	_, err = s.controller.ToggleCell(s.ctx, "game-1", pos(9, 9))
	s.ErrorIs(err, model.ErrGameComplete)
	_, err = s.controller.AbandonGame(s.ctx, "game-2")
	s.Require().NoError(err)
	_, err = s.controller.ToggleCell(s.ctx, "missing", pos(0, 0))
	s.ErrorIs(err, model.ErrGameNotFound)

	s.False(s.hasLock("game-1"))
	s.False(s.hasLock("game-2"))
	s.False(s.hasLock("missing"))
}

func (s *ControllerSuite) TestAbandonTwiceIsNoop() {
	s.seedGame("game-1")
	_, err := s.controller.AbandonGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.controller.AbandonGame(s.ctx, "game-1")
	s.NoError(err)
	s.Len(s.publisher.ofType(model.EventGameAbandoned), 1)
}

func (s *ControllerSuite) TestAbandonedGameRejectsChanges() {
	s.seedGame("game-1")
	_, err := s.controller.AbandonGame(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.controller.ToggleCell(s.ctx, "game-1", pos(0, 0))
	s.ErrorIs(err, model.ErrGameAbandoned)
	_, err = s.controller.Resume(s.ctx, "game-1")
	s.ErrorIs(err, model.ErrGameAbandoned)
}

func (s *ControllerSuite) TestAbandonPausedGame() {
	s.seedGame("game-1")
	s.clock.Advance(20 * time.Second)
	_, err := s.controller.Pause(s.ctx, "game-1")
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)
	game, err := s.controller.AbandonGame(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(20*time.Second, game.Elapsed)
}

// Timer tests

func (s *ControllerSuite) TestTickPublishesElapsed() {
	s.seedGame("game-1")
	s.clock.Advance(3*time.Second + 400*time.Millisecond)

	elapsed, err := s.controller.Tick(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Equal(3*time.Second, elapsed)

	ticks := s.publisher.ofType(model.EventTimerTick)
	s.Require().Len(ticks, 1)
	s.Equal(3*time.Second, ticks[0].Payload.(model.TimerTickPayload).Elapsed)
}

func (s *ControllerSuite) TestTickWhilePausedIsSilent() {
	s.seedGame("game-1")
	_, err := s.controller.Pause(s.ctx, "game-1")
	s.Require().NoError(err)

	_, err = s.controller.Tick(s.ctx, "game-1")
	s.Require().NoError(err)
	s.Empty(s.publisher.ofType(model.EventTimerTick))
}

func (s *ControllerSuite) TestActiveGameIDs() {
	s.seedGame("game-a")
	s.seedGame("game-b")
	s.seedGame("game-c")
	s.seedGame("game-d")

	_, err := s.controller.Pause(s.ctx, "game-b")
	s.Require().NoError(err)
	_, err = s.controller.AbandonGame(s.ctx, "game-c")
	s.Require().NoError(err)
	s.findAll("game-d")

	ids, err := s.controller.ActiveGameIDs(s.ctx)
	s.Require().NoError(err)
	s.Equal([]model.GameID{"game-a", "game-b"}, ids)
}

func (s *ControllerSuite) TestRunTickerStopsOnCancel() {
	s.seedGame("game-1")
	ctx, cancel := context.WithCancel(s.ctx)

	done := make(chan struct{})
	go func() {
		s.controller.RunTicker(ctx, 5*time.Millisecond)
		close(done)
	}()

	s.Eventually(func() bool {
		return len(s.publisher.ofType(model.EventTimerTick)) > 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		s.Fail("ticker did not stop")
	}
}
