package interfaces

import "time"

// IIngestionMetrics records batch and row outcomes.

type IIngestionMetrics interface {
	ObserveRow(importType, outcome string)
	ObserveCustomerCreated(importType string)
	ObserveBatch(importType, result string, elapsed time.Duration)
}
