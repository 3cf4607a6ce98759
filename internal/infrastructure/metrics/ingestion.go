// Package metrics exposes ingestion counters to Prometheus.
package metrics

import (
	"time"

	"scmicro_tracker/internal/usecase/interfaces"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type IngestionMetrics struct {
	rows             *prometheus.CounterVec
	customersCreated *prometheus.CounterVec
	batches          *prometheus.CounterVec
	batchDuration    *prometheus.HistogramVec
}

var _ interfaces.IIngestionMetrics = (*IngestionMetrics)(nil)

// NewIngestionMetrics registers the ingestion collectors on reg.
// Pass prometheus.DefaultRegisterer to expose them on /metrics.
func NewIngestionMetrics(reg prometheus.Registerer) *IngestionMetrics {
	factory := promauto.With(reg)
	return &IngestionMetrics{
		rows: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_rows_total",
				Help: "Spreadsheet rows reconciled, by import type and outcome",
			},
			[]string{"type", "outcome"},
		),
		customersCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_customers_created_total",
				Help: "Customers created implicitly while importing",
			},
			[]string{"type"},
		),
		batches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ingest_batches_total",
				Help: "Import batches, by import type and result",
			},
			[]string{"type", "result"},
		),
		batchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ingest_batch_duration_seconds",
				Help:    "Time taken to import one spreadsheet",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"type"},
		),
	}
}

func (m *IngestionMetrics) ObserveRow(importType, outcome string) {
	m.rows.WithLabelValues(importType, outcome).Inc()
}

func (m *IngestionMetrics) ObserveCustomerCreated(importType string) {
	m.customersCreated.WithLabelValues(importType).Inc()
}

func (m *IngestionMetrics) ObserveBatch(importType, result string, elapsed time.Duration) {
	m.batches.WithLabelValues(importType, result).Inc()
	m.batchDuration.WithLabelValues(importType).Observe(elapsed.Seconds())
}
