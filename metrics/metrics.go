package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result write outcomes.
const (
	OutcomeWritten   = "written"
	OutcomeUnchanged = "unchanged"
	OutcomeConflict  = "conflict"
	OutcomeError     = "error"
)

type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	resultWrites      *prometheus.CounterVec
	casRetries        prometheus.Counter
	statusPromotions  *prometheus.CounterVec
}

// New registers the application collectors on a fresh registry, together with
// the Go runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		resultWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tournament_result_writes_total",
			Help: "Score table writes by operation and outcome.",
		}, []string{"op", "outcome"}),
		casRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tournament_result_cas_retries_total",
			Help: "Score table writes retried after a concurrent modification.",
		}),
		statusPromotions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tournament_status_promotions_total",
			Help: "Tournament status changes applied by the scheduler.",
		}, []string{"to"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.resultWrites,
		m.casRetries,
		m.statusPromotions,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and durations labelled by chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		if m == nil {
			return
		}
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) ResultWrite(op, outcome string) {
	if m == nil {
		return
	}
	m.resultWrites.WithLabelValues(op, outcome).Inc()
}

func (m *Metrics) CASRetry() {
	if m == nil {
		return
	}
	m.casRetries.Inc()
}

func (m *Metrics) StatusPromotion(to string) {
	if m == nil {
		return
	}
	m.statusPromotions.WithLabelValues(to).Inc()
}
