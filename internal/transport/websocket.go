package transport

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// MaxWSConnectionsPerIP is a per-IP WebSocket connection count in the same
// DoS-protection shape as the teacher's WebSocketHub. ServeWebSocket does not
// read it: the cap it enforces is the ConnLimiter it is given.
const MaxWSConnectionsPerIP = 10

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if IsAllowedOrigin(origin) {
			return true
		}
		log.Printf("websocket connection rejected from origin: %s", origin)
		recordConnectionRejected("origin")
		return false
	},
}

// ServeWebSocket upgrades r to a WebSocket and relays hub's broadcast
// messages to the client until it disconnects or the match finishes.
func ServeWebSocket(w http.ResponseWriter, r *http.Request, hub *MatchHub, wsLimiter *ConnLimiter) {
	ip := ClientIP(r)
	if !wsLimiter.Allow(ip) {
		recordConnectionRejected("ws_ip_limit")
		http.Error(w, "Too many connections from your IP", http.StatusTooManyRequests)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		wsLimiter.Release(ip)
		return
	}
	defer wsLimiter.Release(ip)
	defer conn.Close()

	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	updateWSConnections(hub.SubscriberCount())
	defer updateWSConnections(hub.SubscriberCount() - 1)

	// Drain inbound reads so the connection's read deadline / close frames
	// are honoured; this server takes no commands from the client.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	for {
		select {
		case <-hub.Done():
			conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"full_time","data":{}}`))
			return
		case msg, ok := <-sub:
			if !ok {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
			incrementWSMessages()
		}
	}
}
