package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus gauges, counters, and histograms for the
// dashboard data pipeline.
type Metrics struct {
	ReadingsLoaded  prometheus.Gauge
	MalformedRows   prometheus.Counter
	DatasetReady    prometheus.Gauge
	LoadDuration    prometheus.Histogram
	ViewRecomputes  prometheus.Counter
	RecomputeTime   prometheus.Histogram
	VisibleReadings prometheus.Gauge
}

// NewMetrics creates and registers all dashboard metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ReadingsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rail_dashboard",
			Name:      "readings_loaded",
			Help:      "Number of readings in the base dataset.",
		}),
		MalformedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rail_dashboard",
			Name:      "malformed_rows_total",
			Help:      "CSV lines that could not be read as rows.",
		}),
		DatasetReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rail_dashboard",
			Name:      "dataset_ready",
			Help:      "1 once the initial dataset load has completed, 0 before.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rail_dashboard",
			Name:      "dataset_load_duration_seconds",
			Help:      "Duration of the fetch-parse-normalize load.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ViewRecomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rail_dashboard",
			Name:      "view_recomputations_total",
			Help:      "Filter/sort recomputations triggered by state changes.",
		}),
		RecomputeTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rail_dashboard",
			Name:      "view_recompute_duration_seconds",
			Help:      "Duration of one filter+sort pass over the dataset.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		VisibleReadings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rail_dashboard",
			Name:      "visible_readings",
			Help:      "Readings in the current filtered view.",
		}),
	}

	prometheus.MustRegister(
		m.ReadingsLoaded,
		m.MalformedRows,
		m.DatasetReady,
		m.LoadDuration,
		m.ViewRecomputes,
		m.RecomputeTime,
		m.VisibleReadings,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ReadingsLoaded:  prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "rail_dashboard", Name: "readings_loaded"}),
		MalformedRows:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rail_dashboard", Name: "malformed_rows_total"}),
		DatasetReady:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "rail_dashboard", Name: "dataset_ready"}),
		LoadDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "rail_dashboard", Name: "dataset_load_duration_seconds"}),
		ViewRecomputes:  prometheus.NewCounter(prometheus.CounterOpts{Namespace: "rail_dashboard", Name: "view_recomputations_total"}),
		RecomputeTime:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "rail_dashboard", Name: "view_recompute_duration_seconds"}),
		VisibleReadings: prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "rail_dashboard", Name: "visible_readings"}),
	}
}
