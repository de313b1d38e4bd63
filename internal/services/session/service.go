package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/wordsearchgame-go/internal/model"
)

// tokenPrefix marks game control tokens
const tokenPrefix = "gt_"

// Config holds configuration for the session service
type Config struct {
	// Cost is the bcrypt work factor for token hashes
	Cost int
}

// DefaultConfig returns default session configuration
func DefaultConfig() Config {
	return Config{
		Cost: bcrypt.DefaultCost,
	}
}

// Service issues and verifies per-game control tokens.
// Only the bcrypt hash of a token is ever stored.
type Service struct {
	cost int
}

// New creates a new session Service
func New(cfg Config) *Service {
	if cfg.Cost == 0 {
		cfg.Cost = DefaultConfig().Cost
	}
	return &Service{cost: cfg.Cost}
}

// Issue generates a new token and its hash
func (s *Service) Issue() (token string, hash string, err error) {
	token = generateToken()
	digest, err := bcrypt.GenerateFromPassword([]byte(token), s.cost)
	if err != nil {
		return "", "", fmt.Errorf("hash token: %w", err)
	}
	return token, string(digest), nil
}

// Verify checks a token against a stored hash
func (s *Service) Verify(hash, token string) error {
	if hash == "" || token == "" {
		return model.ErrInvalidToken
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
		return model.ErrInvalidToken
	}
	return nil
}

// generateToken generates a random URL-safe token
func generateToken() string {
	b := make([]byte, 24)
	_, _ = rand.Read(b)
	return tokenPrefix + base64.RawURLEncoding.EncodeToString(b)
}

// ServiceInterface defines the token operations used by the game controller
type ServiceInterface interface {
	Issue() (token string, hash string, err error)
	Verify(hash, token string) error
}

var _ ServiceInterface = (*Service)(nil)
