package factory

import (
	"net/http"

	"github.com/mcoot/wordsearchgame-go/internal/api"
	"github.com/mcoot/wordsearchgame-go/internal/web"
)

// Handler returns the JSON API under /api/ and the HTML pages everywhere else
func (a *App) Handler(staticDir string) http.Handler {
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:            a.logger,
		GameController:    a.GameController,
		ScoreboardService: a.ScoreboardService,
		DictionaryService: a.DictionaryService,
		Clock:             a.Clock,
	})

	webRouter := web.NewRouter(web.RouterConfig{
		Logger:            a.logger,
		GameController:    a.GameController,
		ScoreboardService: a.ScoreboardService,
		HubManager:        a.HubManager,
		Clock:             a.Clock,
		StaticDir:         staticDir,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)
	return mux
}
