package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Token     string
	TokenDir  string
	Output    string
	Verbose   bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("WSGAME_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("WSGAME_TOKEN"),
		TokenDir:  getEnvOrDefault("WSGAME_TOKEN_DIR", defaultTokenDir()),
		Output:    "text",
		Verbose:   false,
	}
}

// LoadToken returns the token for a game: the explicit token if set,
// otherwise the one saved when the game was created
func (c *Config) LoadToken(gameID string) (string, error) {
	if c.Token != "" {
		return c.Token, nil
	}

	data, err := os.ReadFile(c.tokenPath(gameID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("no saved token for game %s; pass --token", gameID)
		}
		return "", err
	}

	return strings.TrimSpace(string(data)), nil
}

// SaveToken saves a game's token to the token directory
func (c *Config) SaveToken(gameID, token string) error {
	if err := os.MkdirAll(c.TokenDir, 0700); err != nil {
		return err
	}
	return os.WriteFile(c.tokenPath(gameID), []byte(token), 0600)
}

func (c *Config) tokenPath(gameID string) string {
	return filepath.Join(c.TokenDir, filepath.Base(gameID))
}

func defaultTokenDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".wsgame", "tokens")
	}
	return filepath.Join(home, ".wsgame", "tokens")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
