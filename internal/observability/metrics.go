package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "derby_xg"

// DashboardMetrics records dashboard computations on a private registry so
// tests and multiple instances never collide on the global one.
type DashboardMetrics struct {
	registry *prometheus.Registry
	duration prometheus.Histogram
	computes *prometheus.CounterVec
	records  prometheus.Gauge
	lastRun  prometheus.Gauge
}

func NewDashboardMetrics() *DashboardMetrics {
	m := &DashboardMetrics{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "dashboard_compute_duration_seconds",
			Help:      "Time spent loading match_stats and computing the dashboard.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		computes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "dashboard_computations_total",
			Help:      "Dashboard computations by result.",
		}, []string{"result"}),
		records: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "dashboard_match_records",
			Help:      "Match records in the last successful computation.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "dashboard_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful computation.",
		}),
	}

	m.registry.MustRegister(
		m.duration,
		m.computes,
		m.records,
		m.lastRun,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *DashboardMetrics) ObserveDashboardCompute(elapsed time.Duration, records int, err error) {
	m.duration.Observe(elapsed.Seconds())
	if err != nil {
		m.computes.WithLabelValues("error").Inc()
		return
	}
	m.computes.WithLabelValues("success").Inc()
	m.records.Set(float64(records))
	m.lastRun.SetToCurrentTime()
}

func (m *DashboardMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *DashboardMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
