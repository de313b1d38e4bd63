package model

import "fmt"

// Grid and word limits
const (
	MinGridSize    = 10
	MaxGridSize    = 40
	MinWordLength  = 3
	MinCustomWords = 5
)

// Tier is the difficulty label derived from grid size
type Tier string

const (
	TierEasy   Tier = "easy"   // 10-19
	TierMedium Tier = "medium" // 20-29
	TierHard   Tier = "hard"   // 30-40
)

// AllTiers lists tiers from easiest to hardest
var AllTiers = []Tier{TierEasy, TierMedium, TierHard}

// TierForSize returns the tier for a grid size
func TierForSize(size int) Tier {
	switch {
	case size >= 30:
		return TierHard
	case size >= 20:
		return TierMedium
	default:
		return TierEasy
	}
}

// Label returns the display name of a tier
func (t Tier) Label() string {
	switch t {
	case TierEasy:
		return "Easy"
	case TierMedium:
		return "Medium"
	case TierHard:
		return "Hard"
	default:
		return string(t)
	}
}

// IsValid returns true for the known tiers
func (t Tier) IsValid() bool {
	return t == TierEasy || t == TierMedium || t == TierHard
}

// Configuration is fixed for the lifetime of a game
type Configuration struct {
	GridSize   int         `json:"grid_size"`
	Directions []Direction `json:"directions"`
	// CustomPool is set when the word pool is a user supplied list.
	// Only the selected directions are placed in that case.
	CustomPool bool `json:"custom_pool"`
}

// DefaultConfiguration enables every direction on the smallest grid
func DefaultConfiguration() Configuration {
	return Configuration{
		GridSize:   MinGridSize,
		Directions: append([]Direction(nil), AllDirections...),
	}
}

// Tier returns the difficulty tier of the configured grid size
func (c Configuration) Tier() Tier {
	return TierForSize(c.GridSize)
}

// Validate checks grid bounds and that at least one direction is enabled
func (c Configuration) Validate() error {
	if c.GridSize < MinGridSize || c.GridSize > MaxGridSize {
		return fmt.Errorf("%w: grid size %d outside [%d, %d]", ErrInvalidConfiguration, c.GridSize, MinGridSize, MaxGridSize)
	}
	if len(c.Directions) == 0 {
		return fmt.Errorf("%w: no direction enabled", ErrInvalidConfiguration)
	}
	for _, d := range c.Directions {
		if !d.IsValid() {
			return fmt.Errorf("%w: unknown direction %q", ErrInvalidConfiguration, d)
		}
	}
	return nil
}

// HasDirection reports whether a direction is enabled
func (c Configuration) HasDirection(d Direction) bool {
	for _, enabled := range c.Directions {
		if enabled == d {
			return true
		}
	}
	return false
}

// PlacementOrder returns the orientation passes the generator runs.
// Dictionary games run every orientation; custom lists run only the
// enabled ones. Order is always row, column, forward, backward.
func (c Configuration) PlacementOrder() []Orientation {
	if !c.CustomPool {
		return append([]Orientation(nil), AllOrientations...)
	}
	enabled := make(map[Orientation]bool)
	for _, d := range c.Directions {
		for _, o := range d.Orientations() {
			enabled[o] = true
		}
	}
	var order []Orientation
	for _, o := range AllOrientations {
		if enabled[o] {
			order = append(order, o)
		}
	}
	return order
}
