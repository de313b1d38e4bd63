package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/wordsearchgame-go/internal/dependencies/clock"
	"github.com/mcoot/wordsearchgame-go/internal/services/game"
	"github.com/mcoot/wordsearchgame-go/internal/services/scoreboard"
	"github.com/mcoot/wordsearchgame-go/internal/web/handler"
	"github.com/mcoot/wordsearchgame-go/internal/web/middleware"
	"github.com/mcoot/wordsearchgame-go/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger            *slog.Logger
	GameController    game.ControllerInterface
	ScoreboardService scoreboard.ServiceInterface
	HubManager        *sse.HubManager
	Clock             clock.Clock
	StaticDir         string // Serves static files from disk instead of the embedded copy
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Apply global middleware to all routes
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	// Create SSE hub manager if not provided
	hubManager := cfg.HubManager
	if hubManager == nil {
		hubManager = sse.NewHubManager(cfg.Logger)
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	homeHandler := handler.NewHomeHandler(cfg.ScoreboardService, cfg.Logger)
	gameHandler := handler.NewGameHandler(cfg.GameController, hubManager, clk, cfg.Logger)

	// Static files
	staticHandler := http.StripPrefix("/static/", http.FileServer(staticFS(cfg.StaticDir)))
	r.PathPrefix("/static/").Handler(staticHandler)

	r.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	r.HandleFunc("/games/{id}", gameHandler.View).Methods(http.MethodGet)
	r.HandleFunc("/games/{id}/events", gameHandler.Events).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(handler.NotFound)

	return r
}
