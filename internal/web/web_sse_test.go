package web_test

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordsearchgame-go/internal/model"
)

func posAt(row, col int) model.Position {
	return model.Position{Row: row, Col: col}
}

// TestSSE_EndpointHeaders verifies the SSE endpoint returns correct headers
func TestSSE_EndpointHeaders(t *testing.T) {
	ts := newWebTestServer(t)
	ts.createGame("GAME01", 10)

	// Use a context with timeout since SSE is a long-running connection
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/games/GAME01/events", nil).WithContext(ctx)

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "keep-alive", rr.Header().Get("Connection"))
	assert.Equal(t, "no", rr.Header().Get("X-Accel-Buffering"))
	assert.Contains(t, rr.Body.String(), "event: connected")
}

// TestSSE_UnknownGame verifies no stream is opened for a missing game
func TestSSE_UnknownGame(t *testing.T) {
	ts := newWebTestServer(t)

	rr := ts.get("/games/MISSING/events")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, 0, ts.app.HubManager.HubCount())
}

// TestSSE_StreamsGameEvents verifies controller events reach a live connection
func TestSSE_StreamsGameEvents(t *testing.T) {
	ts := newWebTestServer(t)
	g := ts.createGame("GAME01", 10)

	server := httptest.NewServer(ts.handler)
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"/games/GAME01/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	lines := make(chan string, 64)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	waitForLine(t, lines, "event: connected")

	// The hub exists once the client is registered
	require.Eventually(t, func() bool {
		hub := ts.app.HubManager.GetHub("GAME01")
		return hub != nil && hub.ClientCount() == 1
	}, time.Second, 10*time.Millisecond)

	ts.findWord(g.ID, g.Bank.Words[0])

	waitForLine(t, lines, "event: selection-changed")
	waitForLine(t, lines, "event: word-found")
	data := waitForLine(t, lines, "data: ")
	assert.Contains(t, data, `"word":"`+g.Bank.Words[0].Word+`"`)
}

// waitForLine returns the first line with the given prefix
func waitForLine(t *testing.T, lines <-chan string, prefix string) string {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case line, ok := <-lines:
			if !ok {
				t.Fatalf("stream closed waiting for %q", prefix)
			}
			if strings.HasPrefix(line, prefix) {
				return line
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %q", prefix)
		}
	}
}
