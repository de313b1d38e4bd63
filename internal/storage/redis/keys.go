package redis

import (
	"fmt"

	"github.com/mcoot/wordsearchgame-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "wsgame"

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the SET of known game IDs
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// activeGamesIndexKey returns the Redis key for the SET of playing or paused game IDs
func activeGamesIndexKey() string {
	return fmt.Sprintf("%s:idx:active", keyPrefix)
}

// dictionaryKey returns the Redis key for the ordered dictionary LIST
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}

// scoresKey returns the Redis key for the append-only score LIST
func scoresKey() string {
	return fmt.Sprintf("%s:scores", keyPrefix)
}
