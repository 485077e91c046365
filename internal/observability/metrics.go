package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for one report run.
// They live on a private registry: the CLI exits after a single run, so the
// values are written out with WriteTextfile instead of being scraped.
type Metrics struct {
	registry *prometheus.Registry

	FetchRequests *prometheus.CounterVec // labels: outcome={success,error}
	FetchDuration prometheus.Histogram

	ReportSections     prometheus.Counter
	RenderDuration     prometheus.Histogram
	PublishedMessages  prometheus.Counter
	LastSuccessSeconds prometheus.Gauge
}

// NewMetrics creates all report metrics and registers them with a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forecast_report",
			Name:      "fetch_requests_total",
			Help:      "Forecast API requests by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forecast_report",
			Name:      "fetch_duration_seconds",
			Help:      "Forecast API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ReportSections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forecast_report",
			Name:      "report_sections_total",
			Help:      "Forecast element sections written to reports.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forecast_report",
			Name:      "render_duration_seconds",
			Help:      "Duration of LaTeX source generation and compilation.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		PublishedMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forecast_report",
			Name:      "publish_messages_total",
			Help:      "Report sections published to Kafka.",
		}),
		LastSuccessSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "forecast_report",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successfully generated report.",
		}),
	}

	m.registry.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.ReportSections,
		m.RenderDuration,
		m.PublishedMessages,
		m.LastSuccessSeconds,
	)

	return m
}

// WriteTextfile writes the current metric values in the Prometheus text
// format, for pickup by the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
