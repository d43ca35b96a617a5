package transport

import (
	"bufio"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"matchengine/internal/match"
)

func TestServeSSEStreamsBroadcastMessages(t *testing.T) {
	m := buildTestMatch(11)
	runner := match.NewRunner(m)
	hub := NewMatchHub("sse-match", runner)
	connLimiter := NewConnLimiter(10)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeSSE(w, r, hub, connLimiter)
	}))
	defer srv.Close()

	go runner.Run()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("Content-Type = %q, want text/event-stream", ct)
	}

	reader := bufio.NewReader(resp.Body)
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		if strings.HasPrefix(line, "data:") {
			runner.Stop()
			return
		}
	}
	t.Fatal("expected at least one SSE data line before the deadline")
}

func TestServeSSERejectsOverConnLimit(t *testing.T) {
	m := buildTestMatch(12)
	runner := match.NewRunner(m)
	hub := NewMatchHub("sse-match-2", runner)
	connLimiter := NewConnLimiter(1)
	connLimiter.Allow("10.0.0.1") // occupy the only slot

	req := httptest.NewRequest(http.MethodGet, "/stream", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	rec := httptest.NewRecorder()

	ServeSSE(rec, req, hub, connLimiter)

	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	runner.Stop()
}
