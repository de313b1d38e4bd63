package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearchgame-go/internal/api/handler"
	"github.com/mcoot/wordsearchgame-go/internal/api/middleware"
	"github.com/mcoot/wordsearchgame-go/internal/api/response"
	"github.com/mcoot/wordsearchgame-go/internal/dependencies/clock"
	"github.com/mcoot/wordsearchgame-go/internal/services/dictionary"
	"github.com/mcoot/wordsearchgame-go/internal/services/game"
	"github.com/mcoot/wordsearchgame-go/internal/services/scoreboard"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	GameController    game.ControllerInterface
	ScoreboardService scoreboard.ServiceInterface
	DictionaryService dictionary.ServiceInterface
	Clock             clock.Clock
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	registerRoutes(r, cfg)
	return r
}

// Mount adds the API routes to an existing router
func Mount(r *mux.Router, cfg RouterConfig) {
	registerRoutes(r, cfg)
}

func registerRoutes(r *mux.Router, cfg RouterConfig) {
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController, clk)
	scoreHandler := handler.NewScoreHandler(cfg.ScoreboardService)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Public game routes
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)

	// Game control routes require the game's token
	games := api.PathPrefix("/games/{id}").Subrouter()
	games.Use(middleware.GameToken(cfg.GameController))
	games.HandleFunc("", gameHandler.Abandon).Methods(http.MethodDelete)
	games.HandleFunc("/cells", gameHandler.Toggle).Methods(http.MethodPost)
	games.HandleFunc("/selection", gameHandler.SetSelection).Methods(http.MethodPut)
	games.HandleFunc("/selection", gameHandler.ClearSelection).Methods(http.MethodDelete)
	games.HandleFunc("/validate", gameHandler.Validate).Methods(http.MethodPost)
	games.HandleFunc("/pause", gameHandler.Pause).Methods(http.MethodPost)
	games.HandleFunc("/resume", gameHandler.Resume).Methods(http.MethodPost)

	// Score routes
	api.HandleFunc("/scores", scoreHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/scores/summary", scoreHandler.Summary).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler(cfg.DictionaryService)).Methods(http.MethodGet)
}

func healthHandler(dict dictionary.ServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := response.HealthResponse{Status: "ok"}
		if dict != nil {
			resp.DictionaryLoaded = dict.IsLoaded()
			resp.DictionaryWords = dict.WordCount()
		}
		// Dictionary games cannot be created until words are loaded
		if !resp.DictionaryLoaded {
			resp.Status = "degraded"
		}
		response.JSON(w, http.StatusOK, resp)
	}
}
