package transport

import (
	"encoding/json"
	"log"
	"sync"

	"matchengine/internal/match"
)

// MatchHub fans out one match.Runner's single Tick channel to any number of
// subscribers (SSE responses, WebSocket connections), the same
// register/unregister/broadcast shape as the teacher's WebSocketHub, but
// fed by the engine's own producer instead of a periodic ticker pulling
// engine state.
type MatchHub struct {
	ID     string
	Runner *match.Runner

	mu          sync.RWMutex
	subscribers map[chan []byte]struct{}

	done chan struct{}
}

// NewMatchHub wraps runner and begins pumping its ticks to subscribers.
func NewMatchHub(id string, runner *match.Runner) *MatchHub {
	h := &MatchHub{
		ID:          id,
		Runner:      runner,
		subscribers: make(map[chan []byte]struct{}),
		done:        make(chan struct{}),
	}
	go h.pump()
	return h
}

// pump drains the runner's tick stream and rebroadcasts each tick as named
// events: minute every tick, plus goal/card/half_time/full_time on the ticks
// that contain them. No lineup event is sent.
func (h *MatchHub) pump() {
	defer close(h.done)
	for tick := range h.Runner.Ticks() {
		h.broadcast("minute", tick)
		for _, ev := range tick.Events {
			switch ev.Type {
			case match.EventGoal:
				h.broadcast("goal", tick)
			case match.EventYellowCard, match.EventRedCard:
				h.broadcast("card", tick)
			}
		}
		if tick.Phase == match.PhaseHalfTime {
			h.broadcast("half_time", tick)
		}
		if tick.Phase == match.PhaseFullTime {
			h.broadcast("full_time", tick)
		}
	}
}

func (h *MatchHub) broadcast(event string, tick match.Tick) {
	payload, err := json.Marshal(struct {
		Event string     `json:"event"`
		Data  match.Tick `json:"data"`
	}{Event: event, Data: tick})
	if err != nil {
		log.Printf("matchhub %s: marshal error: %v", h.ID, err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subscribers {
		select {
		case sub <- payload:
		default:
			// Subscriber too slow; drop this tick for it rather than
			// block the whole match's broadcast (same backpressure
			// posture as the teacher's WebSocketHub.Broadcast).
		}
	}
}

// Subscribe registers a new subscriber channel and returns it.
func (h *MatchHub) Subscribe() chan []byte {
	ch := make(chan []byte, 32)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (h *MatchHub) Unsubscribe(ch chan []byte) {
	h.mu.Lock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// SubscriberCount reports the number of currently attached subscribers.
func (h *MatchHub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Done reports whether the underlying match has finished and the hub's pump
// has exited.
func (h *MatchHub) Done() <-chan struct{} {
	return h.done
}
