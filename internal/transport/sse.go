package transport

import (
	"fmt"
	"net/http"
)

// ServeSSE streams hub's broadcast messages to r as Server-Sent Events, one
// data line per message carrying the hub's JSON envelope, whose "event"
// field names it (minute/goal/card/half_time/full_time; no lineup event is
// sent). When the match finishes it writes a final SSE "full_time" event;
// it also returns when the client disconnects.
func ServeSSE(w http.ResponseWriter, r *http.Request, hub *MatchHub, connLimiter *ConnLimiter) {
	ip := ClientIP(r)
	if !connLimiter.Allow(ip) {
		recordConnectionRejected("conn_limit")
		http.Error(w, "Too many streaming connections from your IP", http.StatusTooManyRequests)
		return
	}
	defer connLimiter.Release(ip)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-hub.Done():
			fmt.Fprintf(w, "event: full_time\ndata: {}\n\n")
			flusher.Flush()
			return
		case msg, ok := <-sub:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
