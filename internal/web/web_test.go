package web_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordsearchgame-go/internal/factory"
	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/services/game"
	"github.com/mcoot/wordsearchgame-go/internal/testutil"
	"github.com/mcoot/wordsearchgame-go/internal/web"
)

// webTestServer provides a test server for web interface testing
type webTestServer struct {
	t       *testing.T
	handler http.Handler
	app     *factory.TestApp
}

// newWebTestServer creates a new test server with all dependencies wired
func newWebTestServer(t *testing.T) *webTestServer {
	t.Helper()

	app := factory.NewTestApp()
	require.NoError(t, app.LoadTestDictionary())

	router := web.NewRouter(web.RouterConfig{
		Logger:            testutil.NopLogger(),
		GameController:    app.GameController,
		ScoreboardService: app.ScoreboardService,
		HubManager:        app.HubManager,
		Clock:             app.MockClock,
	})

	return &webTestServer{
		t:       t,
		handler: router,
		app:     app,
	}
}

// get makes a GET request
func (ts *webTestServer) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// createGame starts a dictionary game with the given ID
func (ts *webTestServer) createGame(id string, size int) *model.Game {
	ts.t.Helper()
	ts.app.MockRandom.QueueString(id)
	created, err := ts.app.GameController.CreateGame(ts.t.Context(), game.NewGameOptions{
		GridSize:   size,
		Directions: model.AllDirections,
	})
	require.NoError(ts.t, err)
	return created.Game
}

// findWord confirms a single word
func (ts *webTestServer) findWord(id model.GameID, w model.PlacedWord) {
	ts.t.Helper()
	_, err := ts.app.GameController.SetSelection(ts.t.Context(), id, w.Span())
	require.NoError(ts.t, err)
	outcome, err := ts.app.GameController.Validate(ts.t.Context(), id)
	require.NoError(ts.t, err)
	require.True(ts.t, outcome.Result.Matched)
}

// completeGame finds every word of a game
func (ts *webTestServer) completeGame(g *model.Game) {
	ts.t.Helper()
	for _, w := range g.Bank.Words {
		ts.findWord(g.ID, w)
	}
}

// parseHTML parses the response body as HTML
func parseHTML(r io.Reader) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		panic(err)
	}
	return doc
}
