package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mcoot/wordsearchgame-go/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "word-found",
			data:      `{"word":"cat"}`,
			expected:  "event: word-found\ndata: {\"word\":\"cat\"}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "board",
			data:      "<div>\n  <p>line1</p>\n</div>",
			expected:  "event: board\ndata: <div>\ndata:   <p>line1</p>\ndata: </div>\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single line", "hello", []string{"hello"}},
		{"two lines", "line1\nline2", []string{"line1", "line2"}},
		{"trailing newline", "line1\n", []string{"line1"}},
		{"empty string", "", []string{""}},
		{"crlf line endings", "line1\r\nline2\r\n", []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("splitLines(%q) returned %d lines, want %d", tt.input, len(result), len(tt.expected))
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q", tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

// waitFor polls cond until it holds or a second passes
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := NewHub("GAME1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "127.0.0.1")
	if !hub.Register(client) {
		t.Fatal("Register() = false on running hub")
	}
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.BroadcastEvent("timer-tick", "tick")

	select {
	case msg := <-client.send:
		if string(msg) != "event: timer-tick\ndata: tick\n\n" {
			t.Errorf("unexpected message %q", msg)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for broadcast")
	}
}

func TestHub_UnregisterClosesClient(t *testing.T) {
	hub := NewHub("GAME1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "127.0.0.1")
	hub.Register(client)
	hub.Unregister(client)

	waitFor(t, func() bool { return hub.ClientCount() == 0 })
	if _, ok := <-client.send; ok {
		t.Error("client channel should be closed after unregister")
	}
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub("GAME1", testutil.NopLogger())
	go hub.Run()

	client := NewClient(hub, "127.0.0.1")
	hub.Register(client)
	hub.Close()
	hub.Close() // Safe to call twice

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for close")
	}

	if hub.Register(NewClient(hub, "127.0.0.2")) {
		t.Error("Register() = true on closed hub")
	}
}

func TestHubManager_GetOrCreate(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	if manager.GetHub("GAME1") != nil {
		t.Error("GetHub() should be nil before creation")
	}

	first := manager.GetOrCreateHub("GAME1")
	second := manager.GetOrCreateHub("GAME1")
	if first != second {
		t.Error("GetOrCreateHub() should return the same hub")
	}
	if manager.GetHub("GAME1") != first {
		t.Error("GetHub() should return the created hub")
	}

	manager.RemoveHub("GAME1")
	if manager.GetHub("GAME1") != nil {
		t.Error("GetHub() should be nil after removal")
	}
}

func TestHubManager_CleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	busy := manager.GetOrCreateHub("BUSY")
	manager.GetOrCreateHub("IDLE")

	client := NewClient(busy, "127.0.0.1")
	busy.Register(client)
	waitFor(t, func() bool { return busy.ClientCount() == 1 })

	if removed := manager.CleanupEmptyHubs(); removed != 1 {
		t.Errorf("CleanupEmptyHubs() = %d, want 1", removed)
	}
	if manager.HubCount() != 1 || manager.GetHub("BUSY") == nil {
		t.Error("busy hub should survive cleanup")
	}
}

func TestHubManager_CloseAll(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())

	hub := manager.GetOrCreateHub("GAME1")
	manager.GetOrCreateHub("GAME2")

	client := NewClient(hub, "127.0.0.1")
	hub.Register(client)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	manager.CloseAll()

	if manager.HubCount() != 0 {
		t.Errorf("HubCount() = %d, want 0", manager.HubCount())
	}
	if hub.Register(NewClient(hub, "127.0.0.1")) {
		t.Error("Register() should fail on a closed hub")
	}
}

func TestServeSSE_StreamsEvents(t *testing.T) {
	hub := NewHub("GAME1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/games/GAME1/events", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		serveSSE(rr, req, hub, time.Hour)
		close(done)
	}()

	waitFor(t, func() bool { return hub.ClientCount() == 1 })
	hub.BroadcastEvent("word-found", `{"word":"cat"}`)

	// Give the client time to write before disconnecting
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	body := rr.Body.String()
	if rr.Header().Get("Content-Type") != "text/event-stream" {
		t.Errorf("Content-Type = %q", rr.Header().Get("Content-Type"))
	}
	if !strings.Contains(body, "event: connected") {
		t.Error("missing connected event")
	}
	if !strings.Contains(body, "event: word-found\ndata: {\"word\":\"cat\"}\n\n") {
		t.Errorf("missing broadcast event in %q", body)
	}
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestServeSSE_Keepalive(t *testing.T) {
	hub := NewHub("GAME1", testutil.NopLogger())
	go hub.Run()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req := httptest.NewRequest(http.MethodGet, "/games/GAME1/events", nil).WithContext(ctx)
	rr := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		serveSSE(rr, req, hub, 5*time.Millisecond)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	hub.Close()
	<-done

	if !strings.Contains(rr.Body.String(), ": keepalive") {
		t.Error("expected keepalive comment")
	}
}
