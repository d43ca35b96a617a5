package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"matchengine/internal/match"
)

func TestServeWebSocketRelaysBroadcastMessages(t *testing.T) {
	m := buildTestMatch(21)
	runner := match.NewRunner(m)
	hub := NewMatchHub("ws-match", runner)
	connLimiter := NewConnLimiter(10)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWebSocket(w, r, hub, connLimiter)
	}))
	defer srv.Close()

	go runner.Run()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{}
	header.Set("Origin", "http://localhost:3000")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err != nil {
		t.Fatalf("unexpected dial error: %v (status %v)", err, resp)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("unexpected error reading first message: %v", err)
	}
	var envelope struct {
		Event string `json:"event"`
	}
	if err := json.Unmarshal(msg, &envelope); err != nil {
		t.Fatalf("unexpected error unmarshalling message: %v", err)
	}
	if envelope.Event != "minute" {
		t.Fatalf("expected first message event %q, got %q", "minute", envelope.Event)
	}

	runner.Stop()
}

func TestServeWebSocketRejectsDisallowedOrigin(t *testing.T) {
	m := buildTestMatch(22)
	runner := match.NewRunner(m)
	hub := NewMatchHub("ws-match-2", runner)
	connLimiter := NewConnLimiter(10)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWebSocket(w, r, hub, connLimiter)
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{}
	header.Set("Origin", "https://evil.example.com")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if err == nil {
		t.Fatal("expected the handshake to fail for a disallowed origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		status := -1
		if resp != nil {
			status = resp.StatusCode
		}
		t.Fatalf("expected a 403 handshake rejection, got status %d", status)
	}
	runner.Stop()
}

func TestServeWebSocketRejectsOverConnLimit(t *testing.T) {
	m := buildTestMatch(23)
	runner := match.NewRunner(m)
	hub := NewMatchHub("ws-match-3", runner)
	connLimiter := NewConnLimiter(1)
	connLimiter.Allow("192.0.2.9")

	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.RemoteAddr = "192.0.2.9:4444"
	rec := httptest.NewRecorder()

	ServeWebSocket(rec, req, hub, connLimiter)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	runner.Stop()
}
