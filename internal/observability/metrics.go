package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the catalog
// pipeline and the guide.
type Metrics struct {
	CatalogLoads        *prometheus.CounterVec // labels: outcome={loaded,empty,decode_failed,read_failed}
	CatalogRecords      prometheus.Gauge
	CatalogLoadDuration prometheus.Histogram
	CatalogCache        *prometheus.CounterVec // labels: result={hit,miss}
	DecodeEncoding      *prometheus.CounterVec // labels: encoding={cp949,utf-8}
	FieldDefaults       *prometheus.CounterVec // labels: field
	SkippedRows         prometheus.Counter

	GuideRequests *prometheus.CounterVec // labels: outcome={found,not_found,rate_limited}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.CatalogLoads,
		m.CatalogRecords,
		m.CatalogLoadDuration,
		m.CatalogCache,
		m.DecodeEncoding,
		m.FieldDefaults,
		m.SkippedRows,
		m.GuideRequests,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		CatalogLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "festival_guide",
			Name:      "catalog_loads_total",
			Help:      "Catalog builds by outcome.",
		}, []string{"outcome"}),
		CatalogRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "festival_guide",
			Name:      "catalog_records",
			Help:      "Festival records in the current catalog.",
		}),
		CatalogLoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "festival_guide",
			Name:      "catalog_load_duration_seconds",
			Help:      "Duration of decoding and normalizing one source.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		CatalogCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "festival_guide",
			Name:      "catalog_cache_total",
			Help:      "Content-addressed catalog cache lookups by result.",
		}, []string{"result"}),
		DecodeEncoding: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "festival_guide",
			Name:      "decode_encoding_total",
			Help:      "Sources decoded, by the encoding that accepted them.",
		}, []string{"encoding"}),
		FieldDefaults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "festival_guide",
			Name:      "field_defaults_total",
			Help:      "Cells filled with a field default because the column or value was missing.",
		}, []string{"field"}),
		SkippedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "festival_guide",
			Name:      "csv_rows_skipped_total",
			Help:      "CSV lines the tokenizer could not read.",
		}),
		GuideRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "festival_guide",
			Name:      "guide_requests_total",
			Help:      "Guide recommendations by outcome.",
		}, []string{"outcome"}),
	}
}
