package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/wordsearchgame-go/internal/dependencies/clock"
	"github.com/mcoot/wordsearchgame-go/internal/dependencies/random"
	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/services/dictionary"
	"github.com/mcoot/wordsearchgame-go/internal/services/generator"
	"github.com/mcoot/wordsearchgame-go/internal/services/scoreboard"
	"github.com/mcoot/wordsearchgame-go/internal/services/session"
	"github.com/mcoot/wordsearchgame-go/internal/services/validator"
	"github.com/mcoot/wordsearchgame-go/internal/storage"
)

const gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Publisher receives game events as they happen
type Publisher interface {
	Publish(ctx context.Context, event model.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, model.Event) {}

// NewGameOptions are the player's choices for a new puzzle
type NewGameOptions struct {
	GridSize   int
	Directions []model.Direction
	// CustomWords replaces the dictionary when non-empty
	CustomWords []string
}

// CreatedGame is a new game plus the control token needed to play it.
// The token is only available here.
type CreatedGame struct {
	Game  *model.Game
	Token string
}

// SelectionOutcome is the game after a selection change and the
// validation result it produced
type SelectionOutcome struct {
	Game   *model.Game
	Result model.SelectionResult
}

// Controller runs word-search games. Operations on one game are serialised.
type Controller struct {
	storage    storage.Storage
	generator  *generator.Service
	validator  *validator.Service
	dictionary dictionary.ServiceInterface
	scoreboard scoreboard.ServiceInterface
	sessions   session.ServiceInterface
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger

	publisher Publisher

	mu    sync.Mutex
	locks map[model.GameID]*sync.Mutex
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	generator *generator.Service,
	validator *validator.Service,
	dictionary dictionary.ServiceInterface,
	scoreboard scoreboard.ServiceInterface,
	sessions session.ServiceInterface,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:    storage,
		generator:  generator,
		validator:  validator,
		dictionary: dictionary,
		scoreboard: scoreboard,
		sessions:   sessions,
		clock:      clock,
		random:     random,
		logger:     logger,
		publisher:  nopPublisher{},
		locks:      make(map[model.GameID]*sync.Mutex),
	}
}

// SetPublisher sets where game events are sent
func (c *Controller) SetPublisher(p Publisher) {
	if p == nil {
		p = nopPublisher{}
	}
	c.publisher = p
}

// lock acquires the mutex for a single game
func (c *Controller) lock(id model.GameID) func() {
	c.mu.Lock()
	m, ok := c.locks[id]
	if !ok {
		m = &sync.Mutex{}
		c.locks[id] = m
	}
	c.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// forget drops the mutex of a game that can no longer change. Callers
// still waiting on it find the game finished and make no writes.
func (c *Controller) forget(id model.GameID) {
	c.mu.Lock()
	delete(c.locks, id)
	c.mu.Unlock()
}

// CreateGame generates a puzzle and starts its timer
func (c *Controller) CreateGame(ctx context.Context, opts NewGameOptions) (*CreatedGame, error) {
	cfg := model.Configuration{
		GridSize:   opts.GridSize,
		Directions: append([]model.Direction(nil), opts.Directions...),
		CustomPool: len(opts.CustomWords) > 0,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var pool []string
	var err error
	if cfg.CustomPool {
		pool, err = dictionary.ValidateCustomWords(opts.CustomWords)
	} else {
		pool, err = c.dictionary.Pool()
	}
	if err != nil {
		return nil, err
	}

	var placed []model.PlacedWord
	puzzle, err := c.generator.Generate(cfg, pool, func(w model.PlacedWord) {
		placed = append(placed, w)
	})
	if err != nil {
		c.logger.Warn("puzzle generation failed",
			slog.Int("grid_size", cfg.GridSize),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	token, hash, err := c.sessions.Issue()
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:        model.GameID(c.random.String(12, gameIDAlphabet)),
		Config:    cfg,
		State:     model.GameStatePlaying,
		Grid:      puzzle.Grid,
		Bank:      puzzle.Bank,
		StartedAt: now,
		TokenHash: hash,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("grid_size", cfg.GridSize),
		slog.String("tier", string(cfg.Tier())),
		slog.Int("word_count", game.Bank.Len()),
	)

	c.publish(ctx, game.ID, now, model.EventGameStarted, model.GameStartedPayload{
		GridSize:  cfg.GridSize,
		Tier:      cfg.Tier(),
		WordCount: game.Bank.Len(),
	})
	for _, w := range placed {
		for i, pos := range w.Span() {
			c.publish(ctx, game.ID, now, model.EventLetterPlaced, model.LetterPlacedPayload{
				Position: pos,
				Letter:   rune(w.Word[i]),
				Word:     w.Word,
			})
		}
	}

	return &CreatedGame{Game: game, Token: token}, nil
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// Authorize checks a control token against the game's stored hash
func (c *Controller) Authorize(ctx context.Context, gameID model.GameID, token string) error {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return err
	}
	return c.sessions.Verify(game.TokenHash, token)
}

// ToggleCell selects an unselected cell or deselects a selected one,
// then validates the resulting selection
func (c *Controller) ToggleCell(ctx context.Context, gameID model.GameID, pos model.Position) (*SelectionOutcome, error) {
	var result model.SelectionResult
	game, err := c.update(ctx, gameID, func(game *model.Game, now time.Time) ([]model.Event, error) {
		if err := checkPlayable(game); err != nil {
			return nil, err
		}
		if err := checkSelectable(game, pos); err != nil {
			return nil, err
		}

		if game.Grid.State(pos) == model.CellSelected {
			game.Grid.SetState(pos, model.CellUnselected)
		} else {
			game.Grid.SetState(pos, model.CellSelected)
		}

		events := []model.Event{selectionChanged(game, now)}
		var more []model.Event
		result, more = c.resolve(game, now)
		return append(events, more...), nil
	})
	if err != nil {
		return nil, err
	}
	return &SelectionOutcome{Game: game, Result: result}, nil
}

// SetSelection replaces the current selection. It does not validate.
func (c *Controller) SetSelection(ctx context.Context, gameID model.GameID, cells []model.Position) (*model.Game, error) {
	return c.update(ctx, gameID, func(game *model.Game, now time.Time) ([]model.Event, error) {
		if err := checkPlayable(game); err != nil {
			return nil, err
		}
		for _, pos := range cells {
			if err := checkSelectable(game, pos); err != nil {
				return nil, err
			}
		}

		game.Grid.ClearSelection()
		for _, pos := range cells {
			game.Grid.SetState(pos, model.CellSelected)
		}
		return []model.Event{selectionChanged(game, now)}, nil
	})
}

// ClearSelection deselects every selected cell
func (c *Controller) ClearSelection(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.update(ctx, gameID, func(game *model.Game, now time.Time) ([]model.Event, error) {
		if err := checkPlayable(game); err != nil {
			return nil, err
		}
		game.Grid.ClearSelection()
		return []model.Event{selectionChanged(game, now)}, nil
	})
}

// Validate checks the current selection against the word bank.
// A rejected selection is left in place.
func (c *Controller) Validate(ctx context.Context, gameID model.GameID) (*SelectionOutcome, error) {
	var result model.SelectionResult
	game, err := c.update(ctx, gameID, func(game *model.Game, now time.Time) ([]model.Event, error) {
		if err := checkPlayable(game); err != nil {
			return nil, err
		}
		var events []model.Event
		result, events = c.resolve(game, now)
		return events, nil
	})
	if err != nil {
		return nil, err
	}
	return &SelectionOutcome{Game: game, Result: result}, nil
}

// Pause stops the timer
func (c *Controller) Pause(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.update(ctx, gameID, func(game *model.Game, now time.Time) ([]model.Event, error) {
		if err := checkPlayable(game); err != nil {
			return nil, err
		}
		game.State = model.GameStatePaused
		game.PausedAt = now
		return []model.Event{newEvent(game.ID, now, model.EventGamePaused, nil)}, nil
	})
}

// Resume restarts the timer of a paused game
func (c *Controller) Resume(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.update(ctx, gameID, func(game *model.Game, now time.Time) ([]model.Event, error) {
		switch game.State {
		case model.GameStatePaused:
		case model.GameStateComplete:
			return nil, model.ErrGameComplete
		case model.GameStateAbandoned:
			return nil, model.ErrGameAbandoned
		default:
			return nil, model.ErrGameNotPaused
		}

		if now.After(game.PausedAt) {
			game.PausedFor += now.Sub(game.PausedAt)
		}
		game.PausedAt = time.Time{}
		game.State = model.GameStatePlaying
		return []model.Event{newEvent(game.ID, now, model.EventGameResumed, nil)}, nil
	})
}

// AbandonGame ends a game without recording a score
func (c *Controller) AbandonGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.update(ctx, gameID, func(game *model.Game, now time.Time) ([]model.Event, error) {
		switch game.State {
		case model.GameStateComplete:
			return nil, model.ErrGameComplete
		case model.GameStateAbandoned:
			return nil, nil // Already finished
		}

		game.Elapsed = game.ElapsedAt(now)
		game.State = model.GameStateAbandoned
		game.PausedAt = time.Time{}
		game.EndedAt = now
		game.Grid.ClearSelection()

		c.logger.Info("game abandoned",
			slog.String("game_id", string(game.ID)),
			slog.Int("found", game.Bank.FoundCount()),
			slog.Int("total", game.Bank.Len()),
		)

		return []model.Event{newEvent(game.ID, now, model.EventGameAbandoned, model.GameAbandonedPayload{
			Elapsed: game.Elapsed,
		})}, nil
	})
}

// Tick publishes the elapsed time of a running game
func (c *Controller) Tick(ctx context.Context, gameID model.GameID) (time.Duration, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return 0, err
	}

	now := c.clock.Now()
	elapsed := game.ElapsedAt(now)
	if game.State == model.GameStatePlaying {
		c.publish(ctx, game.ID, now, model.EventTimerTick, model.TimerTickPayload{Elapsed: elapsed})
	}
	return elapsed, nil
}

// ActiveGameIDs returns the games that are playing or paused
func (c *Controller) ActiveGameIDs(ctx context.Context) ([]model.GameID, error) {
	return c.storage.ListActiveGameIDs(ctx)
}

// RunTicker ticks every active game each interval until ctx is cancelled
func (c *Controller) RunTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.tickAll(ctx)
		}
	}
}

func (c *Controller) tickAll(ctx context.Context) {
	ids, err := c.ActiveGameIDs(ctx)
	if err != nil {
		c.logger.Warn("failed to list active games", slog.String("error", err.Error()))
		return
	}
	for _, id := range ids {
		if _, err := c.Tick(ctx, id); err != nil {
			c.logger.Warn("tick failed",
				slog.String("game_id", string(id)),
				slog.String("error", err.Error()),
			)
		}
	}
}

// update loads a game under its lock, applies fn and saves the result.
// fn reports every change as an event; no events means nothing to save.
// Events are published after the save. A game that becomes complete has
// its score recorded.
func (c *Controller) update(ctx context.Context, gameID model.GameID, fn func(game *model.Game, now time.Time) ([]model.Event, error)) (*model.Game, error) {
	unlock := c.lock(gameID)
	defer unlock()

	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			c.forget(gameID)
		}
		return nil, err
	}
	if !game.IsActive() {
		defer c.forget(gameID)
	}
	before := game.State

	now := c.clock.Now()
	events, err := fn(game, now)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return game, nil // Nothing changed
	}

	// The score is written first. If it fails the stored game is still
	// playing and the same move can be retried.
	completed := before != model.GameStateComplete && game.State == model.GameStateComplete
	if completed {
		if _, err := c.scoreboard.Record(ctx, game.ID, game.Tier(), game.Elapsed); err != nil {
			return nil, err
		}
	}

	game.UpdatedAt = now
	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	if !game.IsActive() {
		c.forget(gameID)
	}

	if completed {
		c.logger.Info("game completed",
			slog.String("game_id", string(game.ID)),
			slog.String("tier", string(game.Tier())),
			slog.String("elapsed", model.FormatElapsed(game.Elapsed)),
		)
	}

	for _, event := range events {
		c.publisher.Publish(ctx, event)
	}
	return game, nil
}

// resolve validates the current selection and applies a match
func (c *Controller) resolve(game *model.Game, now time.Time) (model.SelectionResult, []model.Event) {
	result := c.validator.Validate(game.Grid, &game.Bank, game.Grid.Selected())
	if !result.Matched {
		return result, nil
	}

	for _, pos := range result.Span {
		game.Grid.SetState(pos, model.CellFound)
	}
	game.Bank.MarkFound(result.Word)
	game.Grid.ClearSelection()

	c.logger.Info("word found",
		slog.String("game_id", string(game.ID)),
		slog.String("word", result.Word),
		slog.Int("found", game.Bank.FoundCount()),
		slog.Int("total", game.Bank.Len()),
	)

	events := []model.Event{newEvent(game.ID, now, model.EventWordFound, model.WordFoundPayload{
		Word:  result.Word,
		Span:  result.Span,
		Found: game.Bank.FoundCount(),
		Total: game.Bank.Len(),
	})}

	if game.Bank.AllFound() {
		game.Elapsed = game.ElapsedAt(now)
		game.State = model.GameStateComplete
		game.EndedAt = now
		events = append(events, newEvent(game.ID, now, model.EventGameComplete, model.GameCompletePayload{
			Elapsed: game.Elapsed,
			Tier:    game.Tier(),
		}))
	}
	return result, events
}

func (c *Controller) publish(ctx context.Context, id model.GameID, now time.Time, t model.EventType, payload any) {
	c.publisher.Publish(ctx, newEvent(id, now, t, payload))
}

func newEvent(id model.GameID, now time.Time, t model.EventType, payload any) model.Event {
	return model.Event{
		Type:      t,
		Timestamp: now,
		GameID:    id,
		Payload:   payload,
	}
}

func selectionChanged(game *model.Game, now time.Time) model.Event {
	return newEvent(game.ID, now, model.EventSelectionChanged, model.SelectionChangedPayload{
		Selected: game.Grid.Selected(),
	})
}

// checkPlayable rejects selection changes unless the timer is running
func checkPlayable(game *model.Game) error {
	switch game.State {
	case model.GameStatePaused:
		return model.ErrGamePaused
	case model.GameStateComplete:
		return model.ErrGameComplete
	case model.GameStateAbandoned:
		return model.ErrGameAbandoned
	}
	return nil
}

func checkSelectable(game *model.Game, pos model.Position) error {
	if !game.Grid.IsValidPosition(pos) {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d grid", model.ErrInvalidPosition, pos.Row, pos.Col, game.Grid.Size, game.Grid.Size)
	}
	if game.Grid.State(pos) == model.CellFound {
		return fmt.Errorf("%w: (%d, %d)", model.ErrCellFound, pos.Row, pos.Col)
	}
	return nil
}

// ControllerInterface for dependency injection
type ControllerInterface interface {
	CreateGame(ctx context.Context, opts NewGameOptions) (*CreatedGame, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	Authorize(ctx context.Context, gameID model.GameID, token string) error
	ToggleCell(ctx context.Context, gameID model.GameID, pos model.Position) (*SelectionOutcome, error)
	SetSelection(ctx context.Context, gameID model.GameID, cells []model.Position) (*model.Game, error)
	ClearSelection(ctx context.Context, gameID model.GameID) (*model.Game, error)
	Validate(ctx context.Context, gameID model.GameID) (*SelectionOutcome, error)
	Pause(ctx context.Context, gameID model.GameID) (*model.Game, error)
	Resume(ctx context.Context, gameID model.GameID) (*model.Game, error)
	AbandonGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	Tick(ctx context.Context, gameID model.GameID) (time.Duration, error)
	ActiveGameIDs(ctx context.Context) ([]model.GameID, error)
	RunTicker(ctx context.Context, interval time.Duration)
}

var _ ControllerInterface = (*Controller)(nil)
