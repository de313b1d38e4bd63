package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/wordsearchgame-go/internal/dependencies/clock"
	"github.com/mcoot/wordsearchgame-go/internal/dependencies/random"
	"github.com/mcoot/wordsearchgame-go/internal/services/dictionary"
	"github.com/mcoot/wordsearchgame-go/internal/services/game"
	"github.com/mcoot/wordsearchgame-go/internal/services/generator"
	"github.com/mcoot/wordsearchgame-go/internal/services/scoreboard"
	"github.com/mcoot/wordsearchgame-go/internal/services/session"
	"github.com/mcoot/wordsearchgame-go/internal/services/validator"
	"github.com/mcoot/wordsearchgame-go/internal/storage"
	"github.com/mcoot/wordsearchgame-go/internal/storage/memory"
	redisstorage "github.com/mcoot/wordsearchgame-go/internal/storage/redis"
	sqlitestorage "github.com/mcoot/wordsearchgame-go/internal/storage/sqlite"
	"github.com/mcoot/wordsearchgame-go/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService *dictionary.Service
	GeneratorService  *generator.Service
	ValidatorService  *validator.Service
	ScoreboardService *scoreboard.Service
	SessionService    *session.Service
	GameController    *game.Controller
	HubManager        *sse.HubManager
	Broadcaster       *sse.Broadcaster

	logger  *slog.Logger
	closers []io.Closer
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, the dictionary is loaded from storage when present
	DictionaryPath string
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLiteConfig holds the database location (defaults if StorageType is "sqlite" and nil)
	SQLiteConfig *sqlitestorage.Config
	// SessionConfig tunes game token hashing (optional)
	SessionConfig session.Config
	// GeneratorConfig tunes word placement (optional)
	GeneratorConfig generator.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, closer, err := openStorage(cfg, logger)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	app := newWithDependencies(store, clk, rnd, rnd, cfg, logger)
	if closer != nil {
		app.closers = append(app.closers, closer)
	}

	if err := app.loadDictionary(context.Background(), cfg.DictionaryPath); err != nil {
		_ = app.Close()
		return nil, err
	}

	return app, nil
}

func openStorage(cfg Config, logger *slog.Logger) (storage.Storage, io.Closer, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		return memory.New(), nil, nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, nil, err
		}
		return redisStore, redisStore, nil
	case StorageTypeSQLite:
		sqliteCfg := sqlitestorage.DefaultConfig()
		if cfg.SQLiteConfig != nil {
			sqliteCfg = *cfg.SQLiteConfig
		}
		sqliteStore, err := sqlitestorage.Open(sqliteCfg, logger)
		if err != nil {
			return nil, nil, err
		}
		return sqliteStore, sqliteStore, nil
	default:
		return nil, nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing).
// placementRandom drives the generator; idRandom drives game IDs.
func newWithDependencies(store storage.Storage, clk clock.Clock, placementRandom, idRandom random.Random, cfg Config, logger *slog.Logger) *App {
	// Create services
	dictService := dictionary.New(store, logger)
	generatorService := generator.New(placementRandom, logger, cfg.GeneratorConfig)
	validatorService := validator.New(logger)
	scoreboardService := scoreboard.New(store, clk, logger)
	sessionService := session.New(cfg.SessionConfig)
	gameController := game.NewController(
		store,
		generatorService,
		validatorService,
		dictService,
		scoreboardService,
		sessionService,
		clk,
		idRandom,
		logger,
	)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)
	gameController.SetPublisher(broadcaster)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            idRandom,
		DictionaryService: dictService,
		GeneratorService:  generatorService,
		ValidatorService:  validatorService,
		ScoreboardService: scoreboardService,
		SessionService:    sessionService,
		GameController:    gameController,
		HubManager:        hubManager,
		Broadcaster:       broadcaster,
		logger:            logger,
	}
}

// loadDictionary loads from path when given, otherwise from storage if a
// previous run saved one
func (a *App) loadDictionary(ctx context.Context, path string) error {
	if path != "" {
		if err := a.DictionaryService.LoadFromFile(ctx, path); err != nil {
			return fmt.Errorf("failed to load dictionary: %w", err)
		}
		return nil
	}

	err := a.DictionaryService.LoadFromStorage(ctx)
	if errors.Is(err, dictionary.ErrDictionaryNotLoaded) {
		a.logger.Warn("no dictionary loaded; games must supply custom words")
		return nil
	}
	return err
}

// Close releases storage connections and closes SSE hubs
func (a *App) Close() error {
	a.HubManager.CloseAll()
	var errs []error
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
