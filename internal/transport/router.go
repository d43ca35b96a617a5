package transport

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"sync"

	"matchengine/internal/match"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterConfig bundles the dependencies NewRouter wires into the demo
// server (spec §6: the consumer contract, not engine functionality).
type RouterConfig struct {
	Registerer        *prometheus.Registry
	RateLimiter       *IPRateLimiter
	RateLimitConfig   *RateLimitConfig
	MaxStreamsPerIP   int
	CORSOrigins       []string
	DisableLogging    bool
}

// MatchRegistry tracks every match started by the demo server, keyed by ID,
// so stream/websocket requests can find the right MatchHub.
type MatchRegistry struct {
	mu     sync.RWMutex
	hubs   map[string]*MatchHub
}

// NewMatchRegistry creates an empty registry.
func NewMatchRegistry() *MatchRegistry {
	return &MatchRegistry{hubs: make(map[string]*MatchHub)}
}

func (r *MatchRegistry) put(id string, hub *MatchHub) {
	r.mu.Lock()
	r.hubs[id] = hub
	r.mu.Unlock()
}

func (r *MatchRegistry) get(id string) (*MatchHub, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hub, ok := r.hubs[id]
	return hub, ok
}

// routerHandlers closes over the registry and shared limiters.
type routerHandlers struct {
	registry    *MatchRegistry
	streamConns *ConnLimiter
}

// NewRouter constructs the HTTP router. It opens no listeners of its own,
// and the only goroutine it starts is the default IP rate limiter's cleanup
// loop when cfg.RateLimiter is nil (matches' Runner goroutines are started
// from handlePostMatch), the same testability discipline the teacher's
// NewRouter documents.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		rateLimitCfg := DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			rateLimitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = NewIPRateLimiter(rateLimitCfg)
	}
	r.Use(rateLimiter.Middleware)

	corsOrigins := cfg.CORSOrigins
	if corsOrigins == nil {
		corsOrigins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	maxStreams := cfg.MaxStreamsPerIP
	if maxStreams <= 0 {
		maxStreams = 20
	}

	h := &routerHandlers{
		registry:    NewMatchRegistry(),
		streamConns: NewConnLimiter(maxStreams),
	}

	r.Route("/api/matches", func(r chi.Router) {
		r.Post("/", h.handlePostMatch)
		r.Get("/{id}/stream", h.handleStream)
		r.Get("/{id}/ws", h.handleWebSocket)
	})

	if cfg.Registerer != nil {
		r.Get("/metrics", Handler(cfg.Registerer).ServeHTTP)
	}

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("matchengine demo server\n"))
	})

	return r
}

// createMatchRequest is the JSON body accepted by POST /api/matches.
type createMatchRequest struct {
	Home          teamPayload `json:"home"`
	Away          teamPayload `json:"away"`
	HomeFormation string      `json:"home_formation"`
	AwayFormation string      `json:"away_formation"`
	Seed          int64       `json:"seed"`
}

type teamPayload struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Roster []playerPayload `json:"roster"`
	Tactic *match.Tactic   `json:"tactic"`
}

type playerPayload struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	NaturalRole match.Role        `json:"natural_role"`
	Attributes  match.Attributes  `json:"attributes"`
	Traits      match.PlayerTraits `json:"traits"`
}

func buildTeam(p teamPayload) *match.Team {
	roster := make([]*match.Player, 0, len(p.Roster))
	for _, pl := range p.Roster {
		roster = append(roster, &match.Player{
			ID:          pl.ID,
			Name:        pl.Name,
			NaturalRole: pl.NaturalRole,
			Attributes:  pl.Attributes,
			Traits:      pl.Traits,
		})
	}
	return &match.Team{ID: p.ID, Name: p.Name, Roster: roster, Tactic: p.Tactic}
}

// handlePostMatch starts a new simulated match and returns its ID plus
// stream/websocket URLs.
func (h *routerHandlers) handlePostMatch(w http.ResponseWriter, req *http.Request) {
	var body createMatchRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m, err := match.NewMatch(match.MatchConfig{
		HomeTeam:      buildTeam(body.Home),
		AwayTeam:      buildTeam(body.Away),
		HomeFormation: body.HomeFormation,
		AwayFormation: body.AwayFormation,
		Seed:          body.Seed,
		Registerer:    matchRegistererOrNil(),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id := newMatchID()
	runner := match.NewRunner(m)
	hub := NewMatchHub(id, runner)
	h.registry.put(id, hub)
	go runner.Run()

	writeJSON(w, http.StatusCreated, map[string]string{
		"id":        id,
		"stream_url": "/api/matches/" + id + "/stream",
		"ws_url":     "/api/matches/" + id + "/ws",
	})
}

func (h *routerHandlers) handleStream(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	hub, ok := h.registry.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown match id")
		return
	}
	ServeSSE(w, req, hub, h.streamConns)
}

func (h *routerHandlers) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	id := chi.URLParam(req, "id")
	hub, ok := h.registry.get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown match id")
		return
	}
	ServeWebSocket(w, req, hub, h.streamConns)
}

// matchRegistererOrNil leaves per-match metrics disabled in the demo
// server; the transport layer's own Metrics (registered once, process-wide)
// already covers request/connection observability.
func matchRegistererOrNil() prometheus.Registerer { return nil }

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"event": "error", "error": msg})
}

func newMatchID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "match"
	}
	return hex.EncodeToString(b)
}
