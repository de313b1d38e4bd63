package dictionary

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/storage"
)

// Service holds the default word pool puzzles are drawn from
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu     sync.RWMutex
	words  []string
	loaded bool
}

// New creates a new DictionaryService
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// LoadFromStorage loads dictionary words from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	return s.loadWords(words)
}

// LoadFromFile loads dictionary words from a file (one word per line)
// and saves them to storage for future use
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := s.LoadFromReader(ctx, file); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	s.logger.Info("dictionary loaded", slog.String("path", path))
	return nil
}

// LoadFromReader loads one word per line from r and saves them to storage
func (s *Service) LoadFromReader(ctx context.Context, r io.Reader) error {
	words, err := ParseWords(r)
	if err != nil {
		return err
	}

	normalized := normalize(words)
	if err := s.storage.SaveDictionaryWords(ctx, normalized); err != nil {
		return err
	}

	s.logger.Debug("dictionary words saved", slog.Int("word_count", len(normalized)))
	return s.loadWords(normalized)
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) error {
	return s.loadWords(words)
}

func (s *Service) loadWords(words []string) error {
	normalized := normalize(words)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = normalized
	s.loaded = true
	return nil
}

// Pool returns a copy of the loaded words in load order
func (s *Service) Pool() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return nil, model.ErrDictionaryNotLoaded
	}
	return append([]string(nil), s.words...), nil
}

// IsLoaded returns whether the dictionary has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// WordCount returns the number of words in the dictionary
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// ValidateCustomWords checks a user-supplied word list and returns it lowercased
// with repeats removed. Every word must be alphabetic and at least MinWordLength
// long, and the list must hold at least MinCustomWords distinct words.
func ValidateCustomWords(words []string) ([]string, error) {
	seen := make(map[string]struct{}, len(words))
	result := make([]string, 0, len(words))
	for _, raw := range words {
		word := strings.ToLower(strings.TrimSpace(raw))
		if word == "" {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		if len(word) < model.MinWordLength {
			return nil, fmt.Errorf("%w: %q is shorter than %d letters", model.ErrInvalidWordList, raw, model.MinWordLength)
		}
		if !isAlpha(word) {
			return nil, fmt.Errorf("%w: %q contains non-letter characters", model.ErrInvalidWordList, raw)
		}
		result = append(result, word)
	}

	if len(result) < model.MinCustomWords {
		return nil, fmt.Errorf("%w: need at least %d words, got %d", model.ErrInvalidWordList, model.MinCustomWords, len(result))
	}
	return result, nil
}

// ParseWords reads one word per line, skipping blank lines and # comments
func ParseWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// normalize lowercases and trims words, dropping blanks and duplicates.
// First occurrence order is kept.
func normalize(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	result := make([]string, 0, len(words))
	for _, raw := range words {
		word := strings.ToLower(strings.TrimSpace(raw))
		if word == "" {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
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

// Interface check
type ServiceInterface interface {
	IsLoaded() bool
	WordCount() int
	Pool() ([]string, error)
	LoadFromStorage(ctx context.Context) error
	LoadFromFile(ctx context.Context, path string) error
	LoadFromReader(ctx context.Context, r io.Reader) error
	LoadWords(words []string) error
}

var _ ServiceInterface = (*Service)(nil)

// ErrDictionaryNotLoaded is returned when operations are attempted before loading
var ErrDictionaryNotLoaded = model.ErrDictionaryNotLoaded
