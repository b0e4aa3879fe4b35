package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics exports provider call and sync run counters on its own registry.
type Metrics struct {
	registry        *prometheus.Registry
	apiCalls        *prometheus.CounterVec
	apiCallDuration *prometheus.HistogramVec
	syncRuns        *prometheus.CounterVec
	syncRunDuration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		apiCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoresync_api_calls_total",
				Help: "Total number of outbound score provider calls",
			},
			[]string{"provider", "call_type", "status"},
		),
		apiCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scoresync_api_call_duration_seconds",
				Help:    "Duration of outbound score provider calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "call_type"},
		),
		syncRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scoresync_sync_runs_total",
				Help: "Total number of sync job runs",
			},
			[]string{"job", "status"},
		),
		syncRunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scoresync_sync_run_duration_seconds",
				Help:    "Duration of sync job runs in seconds",
				Buckets: []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"job"},
		),
	}
}

func (m *Metrics) ObserveAPICall(provider, callType string, success bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := statusError
	if success {
		status = statusSuccess
	}
	m.apiCalls.WithLabelValues(provider, callType, status).Inc()
	m.apiCallDuration.WithLabelValues(provider, callType).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveSyncRun(job, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.syncRuns.WithLabelValues(job, status).Inc()
	m.syncRunDuration.WithLabelValues(job).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
