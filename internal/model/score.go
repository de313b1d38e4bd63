package model

import (
	"fmt"
	"time"
)

// ScoreRecord is one completed game on the score board
type ScoreRecord struct {
	GameID     GameID        `json:"game_id"`
	Tier       Tier          `json:"tier"`
	Elapsed    time.Duration `json:"elapsed"`
	RecordedAt time.Time     `json:"recorded_at"`
}

// FormatElapsed renders a duration as hh:mm:ss
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total/60)%60, total%60)
}

// ElapsedUnit names the largest non-zero unit of a duration
func ElapsedUnit(d time.Duration) string {
	switch {
	case d >= time.Hour:
		return "hours"
	case d >= time.Minute:
		return "minutes"
	default:
		return "seconds"
	}
}
