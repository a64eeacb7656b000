package obs

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Metrics records outbound API call counts and latency.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the outbound call collectors on the given
// registerer (the default registerer when nil).
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "calls_total",
			Help:      "Outbound API calls by method, resource and status.",
		}, []string{"method", "resource", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "call_duration_seconds",
			Help:      "Outbound API call latency by method and resource.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "resource"}),
	}
	reg.MustRegister(m.calls, m.duration)
	return m
}

// MetricsHandler returns the prometheus exposition handler for the given
// gatherer (the default gatherer when nil).
func MetricsHandler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	return mux
}

// ServeMetrics exposes MetricsHandler on addr for the lifetime of the
// process. A listener failure is logged, not fatal; the command's own
// work does not depend on the scrape endpoint.
func ServeMetrics(addr string, g prometheus.Gatherer, logger zerolog.Logger) *http.Server {
	srv := &http.Server{Addr: addr, Handler: MetricsHandler(g)}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("addr", addr).Msg("metrics listener stopped")
		}
	}()
	return srv
}

// RoundTripper wraps next, recording one observation per call.
func (m *Metrics) RoundTripper(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return metricsTransport{metrics: m, next: next}
}

type metricsTransport struct {
	metrics *Metrics
	next    http.RoundTripper
}

func (t metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.next.RoundTrip(req)

	status := "error"
	if err == nil {
		status = strconv.Itoa(resp.StatusCode)
	}
	resource := ResourceLabel(req.URL.Path)
	t.metrics.calls.WithLabelValues(req.Method, resource, status).Inc()
	t.metrics.duration.WithLabelValues(req.Method, resource).Observe(time.Since(start).Seconds())
	return resp, err
}

// ResourceLabel reduces a request path to its leading resource segment so
// metric label cardinality stays bounded regardless of entity ids.
func ResourceLabel(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, segment := range segments {
		if segment == "api" && i == 0 {
			continue
		}
		if segment != "" {
			return segment
		}
	}
	return "unknown"
}
