package model

import "time"

// GameID uniquely identifies a game
type GameID string

// GameState represents the current phase of a game
type GameState string

const (
	GameStatePlaying   GameState = "playing"   // Timer running, selections accepted
	GameStatePaused    GameState = "paused"    // Timer stopped, grid hidden
	GameStateComplete  GameState = "complete"  // Every word found
	GameStateAbandoned GameState = "abandoned" // Quit before completion
)

// Game is a single word-search puzzle and its progress
type Game struct {
	ID     GameID
	Config Configuration
	State  GameState

	Grid *Grid
	Bank WordBank

	// Timing. Elapsed is frozen once the game is complete or abandoned.
	StartedAt time.Time
	PausedAt  time.Time     // Zero unless paused
	PausedFor time.Duration // Total time spent paused
	Elapsed   time.Duration
	EndedAt   time.Time

	// TokenHash is the bcrypt hash of the game's control token
	TokenHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tier returns the difficulty tier of the game
func (g *Game) Tier() Tier {
	return g.Config.Tier()
}

// IsActive returns true while the game can still change
func (g *Game) IsActive() bool {
	return g.State == GameStatePlaying || g.State == GameStatePaused
}

// ElapsedAt returns the whole seconds of play time as of now.
// Time spent paused is excluded.
func (g *Game) ElapsedAt(now time.Time) time.Duration {
	var elapsed time.Duration
	switch g.State {
	case GameStateComplete, GameStateAbandoned:
		elapsed = g.Elapsed
	case GameStatePaused:
		elapsed = g.PausedAt.Sub(g.StartedAt) - g.PausedFor
	default:
		elapsed = now.Sub(g.StartedAt) - g.PausedFor
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed.Truncate(time.Second)
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	clone := *g
	clone.Config.Directions = append([]Direction(nil), g.Config.Directions...)
	clone.Grid = g.Grid.Clone()
	clone.Bank = g.Bank.Clone()
	return &clone
}
