package transport

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the demo server's HTTP-layer instrumentation, registered
// against a caller-supplied Registerer rather than the global
// DefaultRegisterer — the same discipline the engine's own match.Metrics
// follows, so one process can host several matches' registries side by
// side without label collisions.
type Metrics struct {
	requestLatency       *prometheus.HistogramVec
	requestTotal         *prometheus.CounterVec
	connectionRejected   *prometheus.CounterVec
	wsConnectionsActive  prometheus.Gauge
	wsMessagesTotal      prometheus.Counter
}

// NewMetrics builds and registers the transport layer's metrics against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matchserver_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "endpoint"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchserver_http_requests_total",
			Help: "Total HTTP requests.",
		}, []string{"method", "endpoint", "status"}),
		connectionRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchserver_connection_rejected_total",
			Help: "Streaming connections rejected, by reason.",
		}, []string{"reason"}), // bounded: rate_limit, origin, conn_limit, ws_ip_limit
		wsConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchserver_websocket_connections_active",
			Help: "Currently active WebSocket connections.",
		}),
		wsMessagesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchserver_websocket_messages_total",
			Help: "Total WebSocket messages sent.",
		}),
	}
	reg.MustRegister(m.requestLatency, m.requestTotal, m.connectionRejected, m.wsConnectionsActive, m.wsMessagesTotal)
	return m
}

// globalMetrics is set once by Handler/NewRouter's caller and consulted by
// the package-level recording helpers that middleware and the WS hub call
// without threading a *Metrics value through every call site. A nil value
// makes every helper a no-op, matching the nil-safe convention the engine's
// own match.Metrics follows.
var globalMetrics *Metrics

// SetMetrics installs m as the process-wide transport metrics instance.
func SetMetrics(m *Metrics) { globalMetrics = m }

func recordConnectionRejected(reason string) {
	if globalMetrics == nil {
		return
	}
	globalMetrics.connectionRejected.WithLabelValues(reason).Inc()
}

func recordRequest(method, endpoint string, status int, d time.Duration) {
	if globalMetrics == nil {
		return
	}
	globalMetrics.requestLatency.WithLabelValues(method, endpoint).Observe(d.Seconds())
	globalMetrics.requestTotal.WithLabelValues(method, endpoint, http.StatusText(status)).Inc()
}

func updateWSConnections(count int) {
	if globalMetrics == nil {
		return
	}
	globalMetrics.wsConnectionsActive.Set(float64(count))
}

func incrementWSMessages() {
	if globalMetrics == nil {
		return
	}
	globalMetrics.wsMessagesTotal.Inc()
}

// Handler returns the promhttp handler for reg, to be mounted at /metrics.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

// requestLogger wraps next with latency/status recording.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		recordRequest(r.Method, r.URL.Path, rw.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
