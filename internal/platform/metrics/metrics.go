package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los collectors del dashboard.
// Cada instancia tiene su propio registry (permite varios routers en tests).
type Metrics struct {
	registry *prometheus.Registry

	backendRequests *prometheus.CounterVec
	backendDuration *prometheus.HistogramVec
	transitions     *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		backendRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sheep_dashboard_backend_requests_total",
				Help: "Calls to the sheep backend by method, endpoint and outcome",
			},
			[]string{"method", "endpoint", "outcome"},
		),
		backendDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sheep_dashboard_backend_request_duration_seconds",
				Help:    "Latency of calls to the sheep backend",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		transitions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sheep_dashboard_notification_transitions_total",
				Help: "Buy-request workflow operations by action and result",
			},
			[]string{"action", "result"},
		),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sheep_dashboard_http_requests_total",
				Help: "Dashboard HTTP requests by method and status",
			},
			[]string{"method", "status"},
		),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveBackend registra una llamada al backend.
// status=0 significa error de transporte.
func (m *Metrics) ObserveBackend(method, path string, status int, d time.Duration) {
	if m == nil {
		return
	}
	endpoint := NormalizeEndpoint(path)
	outcome := "ok"
	switch {
	case status == 0:
		outcome = "network_error"
	case status >= 400:
		outcome = "http_" + strconv.Itoa(status)
	}
	m.backendRequests.WithLabelValues(method, endpoint, outcome).Inc()
	m.backendDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

func (m *Metrics) ObserveTransition(action string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.transitions.WithLabelValues(action, result).Inc()
}

func (m *Metrics) ObserveHTTP(method string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// NormalizeEndpoint colapsa ids para no explotar cardinalidad:
// /sheep/42 -> /sheep/:id, /sheep/all -> /sheep/all.
func NormalizeEndpoint(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "/"
	}
	for i := 1; i < len(parts); i++ {
		switch parts[i] {
		case "all", "login", "register":
		default:
			parts[i] = ":id"
		}
	}
	return "/" + strings.Join(parts, "/")
}
