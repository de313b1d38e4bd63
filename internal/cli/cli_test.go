package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/wordsearchgame-go/internal/api/request"
	"github.com/mcoot/wordsearchgame-go/internal/api/response"
	"github.com/mcoot/wordsearchgame-go/internal/factory"
	"github.com/mcoot/wordsearchgame-go/internal/model"
	"github.com/mcoot/wordsearchgame-go/internal/services/session"
)

// cliHarness runs commands in-process against a real server
type cliHarness struct {
	t        *testing.T
	app      *factory.App
	server   *httptest.Server
	tokenDir string
}

func newCLIHarness(t *testing.T) *cliHarness {
	t.Helper()

	app, err := factory.New(factory.Config{
		DictionaryPath: "../../data/words.txt",
		SessionConfig:  session.Config{Cost: bcrypt.MinCost},
	})
	require.NoError(t, err)

	server := httptest.NewServer(app.Handler(""))
	t.Cleanup(func() {
		server.Close()
		_ = app.Close()
	})

	return &cliHarness{
		t:        t,
		app:      app,
		server:   server,
		tokenDir: t.TempDir(),
	}
}

// run executes the CLI with the given args and returns stdout
func (h *cliHarness) run(args ...string) (string, error) {
	h.t.Helper()

	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{
		"--server", h.server.URL,
		"--token-dir", h.tokenDir,
		"--token", "",
	}, args...))

	err := cmd.Execute()
	return stdout.String(), err
}

// runJSON executes the CLI with JSON output and decodes the result
func (h *cliHarness) runJSON(result any, args ...string) {
	h.t.Helper()
	out, err := h.run(append([]string{"-o", "json"}, args...)...)
	require.NoError(h.t, err, out)
	require.NoError(h.t, json.Unmarshal([]byte(out), result), out)
}

func (h *cliHarness) newGame(args ...string) response.CreateGameResponse {
	h.t.Helper()
	var created response.CreateGameResponse
	h.runJSON(&created, append([]string{"game", "new"}, args...)...)
	return created
}

func (h *cliHarness) placedWords(id string) []model.PlacedWord {
	h.t.Helper()
	g, err := h.app.Storage.GetGame(h.t.Context(), model.GameID(id))
	require.NoError(h.t, err)
	return g.Bank.Words
}

func cellArgs(w model.PlacedWord) []string {
	var args []string
	for _, p := range w.Span() {
		args = append(args, fmt.Sprintf("%d,%d", p.Row, p.Col))
	}
	return args
}

func TestHealthCommand(t *testing.T) {
	h := newCLIHarness(t)

	var result response.HealthResponse
	h.runJSON(&result, "health")
	assert.Equal(t, "ok", result.Status)
	assert.Positive(t, result.DictionaryWords)

	out, err := h.run("health")
	require.NoError(t, err)
	assert.Contains(t, out, "Status: ok")
}

func TestGameNewSavesToken(t *testing.T) {
	h := newCLIHarness(t)

	created := h.newGame("--size", "12", "--directions", "row,column")
	assert.Equal(t, 12, created.Game.GridSize)
	assert.Equal(t, []string{"row", "column"}, created.Game.Directions)

	data, err := os.ReadFile(filepath.Join(h.tokenDir, created.Game.ID))
	require.NoError(t, err)
	assert.Equal(t, created.Token, string(data))

	var listed response.GameListResponse
	h.runJSON(&listed, "game", "list")
	assert.Equal(t, []string{created.Game.ID}, listed.Games)
}

func TestGameNewCustomWordsFile(t *testing.T) {
	h := newCLIHarness(t)

	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("# fruit\napple\nberry\ncherry\n\ngrape\nlemon\n"), 0600))

	created := h.newGame("--words-file", path)
	assert.True(t, created.Game.CustomWords)

	_, err := h.run("game", "new", "--words", "ab,cd")
	assert.Error(t, err)
}

func TestPlayGameToCompletion(t *testing.T) {
	h := newCLIHarness(t)
	created := h.newGame()
	id := created.Game.ID

	var g response.Game
	h.runJSON(&g, "game", "get", id)
	assert.Equal(t, "playing", g.State)

	var toggled response.SelectionResponse
	h.runJSON(&toggled, "game", "toggle", id, "9", "9")
	assert.Len(t, toggled.Game.Selected, 1)

	h.runJSON(&g, "game", "clear", id)
	assert.Empty(t, g.Selected)

	var last response.SelectionResponse
	for _, w := range h.placedWords(id) {
		h.runJSON(&g, append([]string{"game", "select", id}, cellArgs(w)...)...)
		h.runJSON(&last, "game", "validate", id)
		require.True(t, last.Result.Matched, "word %s", w.Word)
	}
	assert.Equal(t, "complete", last.Game.State)

	var scores response.ScoresResponse
	h.runJSON(&scores, "scores", "list", "--tier", "easy")
	require.Len(t, scores.Boards, 1)
	require.Len(t, scores.Boards[0].Scores, 1)
	assert.Equal(t, id, scores.Boards[0].Scores[0].GameID)

	out, err := h.run("scores", "summary")
	require.NoError(t, err)
	assert.Contains(t, out, "in Easy Mode.")
	assert.Contains(t, out, "You beat your high score!")
}

func TestPauseResumeAbandon(t *testing.T) {
	h := newCLIHarness(t)
	id := h.newGame().Game.ID

	var g response.Game
	h.runJSON(&g, "game", "pause", id)
	assert.Equal(t, "paused", g.State)

	out, err := h.run("game", "get", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Grid hidden while paused")

	_, err = h.run("game", "toggle", id, "0", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GAME_PAUSED")

	h.runJSON(&g, "game", "resume", id)
	assert.Equal(t, "playing", g.State)

	out, err = h.run("game", "abandon", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Game abandoned")
}

func TestControlWithoutSavedToken(t *testing.T) {
	h := newCLIHarness(t)
	id := h.newGame().Game.ID
	require.NoError(t, os.Remove(filepath.Join(h.tokenDir, id)))

	_, err := h.run("game", "pause", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no saved token")

	_, err = h.run("--token", "gt_wrong", "game", "pause", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNAUTHORIZED")
}

func TestGameTextOutput(t *testing.T) {
	h := newCLIHarness(t)
	created := h.newGame()

	out, err := h.run("game", "get", created.Game.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Game: "+created.Game.ID)
	assert.Contains(t, out, "Tier: easy (10x10)")
	assert.Contains(t, out, fmt.Sprintf("Found: 0 / %d", created.Game.Total))
	assert.Contains(t, out, "[ ] "+created.Game.Words[0].Word)
}

func TestGenerateIsRepeatable(t *testing.T) {
	cmd := func() string {
		root := NewRootCmd()
		var stdout bytes.Buffer
		root.SetOut(&stdout)
		root.SetArgs([]string{"generate", "--seed", "7", "--size", "12", "--words-file", "../../data/words.txt", "-o", "json"})
		require.NoError(t, root.Execute())
		return stdout.String()
	}

	first := cmd()
	assert.Equal(t, first, cmd())

	var puzzle Puzzle
	require.NoError(t, json.Unmarshal([]byte(first), &puzzle))
	assert.Equal(t, uint64(7), puzzle.Seed)
	assert.Equal(t, "Easy", puzzle.Tier)
	require.Len(t, puzzle.Rows, 12)
	assert.NotEmpty(t, puzzle.Words)

	// The answer key matches the grid
	for _, w := range puzzle.Words {
		var letters strings.Builder
		for _, p := range model.Span(model.Position{Row: w.Row, Col: w.Col}, model.Orientation(w.Orientation), len(w.Word)) {
			letters.WriteString(puzzle.Rows[p.Row][p.Col])
		}
		assert.Equal(t, w.Word, letters.String())
	}
}

func TestGenerateCustomWordsRowOnly(t *testing.T) {
	root := NewRootCmd()
	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetArgs([]string{"generate", "--seed", "3", "--words", "apple,berry,cherry,grape,lemon", "--directions", "row"})
	require.NoError(t, root.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Seed: 3")
	assert.NotContains(t, out, "column")
	assert.NotContains(t, out, "diagonal")
}

func TestParseCells(t *testing.T) {
	cells, err := parseCells([]string{"0,1", " 2 , 3 "})
	require.NoError(t, err)
	assert.Equal(t, []request.PositionRequest{{Row: 0, Col: 1}, {Row: 2, Col: 3}}, cells)

	for _, bad := range []string{"1", "a,1", "1,b"} {
		_, err := parseCells([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestReadEvents(t *testing.T) {
	stream := "event: connected\ndata: {\"status\":\"connected\"}\n\n" +
		": keepalive\n\n" +
		"event: word-found\ndata: {\"word\":\"cat\"}\n\n" +
		"event: multi\ndata: one\ndata: two\n\n"

	type evt struct{ name, data string }
	var got []evt
	err := readEvents(strings.NewReader(stream), func(event, data string) {
		got = append(got, evt{event, data})
	})
	require.NoError(t, err)

	assert.Equal(t, []evt{
		{"connected", `{"status":"connected"}`},
		{"word-found", `{"word":"cat"}`},
		{"multi", "one\ntwo"},
	}, got)
}
