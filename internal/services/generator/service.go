package generator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/wordsearchgame-go/internal/dependencies/random"
	"github.com/mcoot/wordsearchgame-go/internal/model"
)

// Config tunes word placement
type Config struct {
	// MaxDrawAttempts bounds the random draws spent looking for an unused
	// word that fits a slot before the slot is skipped
	MaxDrawAttempts int
	// BandSpacing is the distance between row bands and column bands
	BandSpacing int
}

// DefaultConfig returns the standard placement settings
func DefaultConfig() Config {
	return Config{
		MaxDrawAttempts: 64,
		BandSpacing:     3,
	}
}

// Puzzle is a generated grid and the words hidden in it
type Puzzle struct {
	Grid *model.Grid
	Bank model.WordBank
}

// PlacementFunc observes each word as it is placed
type PlacementFunc func(word model.PlacedWord)

// Service builds word-search grids
type Service struct {
	random random.Random
	logger *slog.Logger
	cfg    Config
}

// New creates a new generator Service
func New(random random.Random, logger *slog.Logger, cfg Config) *Service {
	defaults := DefaultConfig()
	if cfg.MaxDrawAttempts <= 0 {
		cfg.MaxDrawAttempts = defaults.MaxDrawAttempts
	}
	if cfg.BandSpacing <= 0 {
		cfg.BandSpacing = defaults.BandSpacing
	}
	return &Service{
		random: random,
		logger: logger,
		cfg:    cfg,
	}
}

// Generate builds an N×N grid and embeds words from pool along the
// orientations allowed by cfg. Every cell of the returned grid holds a
// letter. onPlace may be nil.
func (s *Service) Generate(cfg model.Configuration, pool []string, onPlace PlacementFunc) (*Puzzle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	candidates := EligibleWords(pool, cfg.GridSize)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no word of length %d to %d in pool of %d",
			model.ErrPoolExhausted, model.MinWordLength, cfg.GridSize-1, len(pool))
	}

	p := newPlacement(cfg.GridSize, candidates, s.random, s.cfg.MaxDrawAttempts, onPlace)
	for _, o := range cfg.PlacementOrder() {
		switch o {
		case model.OrientationRow, model.OrientationColumn:
			p.placeBands(o, s.cfg.BandSpacing)
		case model.OrientationForwardDiagonal, model.OrientationBackwardDiagonal:
			p.placeDiagonals(o)
		}
	}

	if p.bank.Len() == 0 {
		return nil, fmt.Errorf("%w: no word could be placed", model.ErrPoolExhausted)
	}

	p.fill()

	s.logger.Debug("puzzle generated",
		slog.Int("grid_size", cfg.GridSize),
		slog.Int("word_count", p.bank.Len()),
		slog.Int("candidate_count", len(candidates)),
	)

	return &Puzzle{
		Grid: p.grid,
		Bank: p.bank,
	}, nil
}

// EligibleWords filters a pool down to distinct lowercase alphabetic words
// that can fit a grid of the given size, keeping pool order
func EligibleWords(pool []string, size int) []string {
	seen := make(map[string]bool, len(pool))
	var result []string
	for _, raw := range pool {
		word := strings.ToLower(strings.TrimSpace(raw))
		if len(word) < model.MinWordLength || len(word) >= size {
			continue
		}
		if !isAlpha(word) || seen[word] {
			continue
		}
		seen[word] = true
		result = append(result, word)
	}
	return result
}

func isAlpha(word string) bool {
	for _, r := range word {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
