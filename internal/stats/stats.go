package stats

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// StatusOK labels operations which succeeded
	StatusOK = "ok"
	// StatusError labels operations which failed
	StatusError = "error"
)

// OperationStatistics contains statistics about the operations applied to a collection
type OperationStatistics struct {
	startTime  time.Time
	registry   *prometheus.Registry
	operations *prometheus.CounterVec   // geoprep_operations_total
	runtimes   *prometheus.HistogramVec // geoprep_operation_duration_seconds
	rows       *prometheus.CounterVec   // geoprep_rows_total
}

// NewOperationStatistics creates statistics backed by a private prometheus registry
func NewOperationStatistics() (*OperationStatistics, error) {
	registry := prometheus.NewRegistry()
	operations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geoprep_operations_total",
			Help: "Number of collection operations, partitioned by operation and status.",
		},
		[]string{"operation", "status"},
	)
	runtimes := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geoprep_operation_duration_seconds",
			Help:    "Duration of collection operations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"operation"},
	)
	rows := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geoprep_rows_total",
			Help: "Rows affected by collection operations, partitioned by operation and kind (read, removed, invalid, ...).",
		},
		[]string{"operation", "kind"},
	)
	for _, c := range []prometheus.Collector{operations, runtimes, rows} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("stats: register collector: %w", err)
		}
	}
	return &OperationStatistics{
		startTime:  time.Now(),
		registry:   registry,
		operations: operations,
		runtimes:   runtimes,
		rows:       rows,
	}, nil
}

// EndOperation records the completion of an operation which began at start
func (s *OperationStatistics) EndOperation(operation string, start time.Time, err error) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	s.operations.WithLabelValues(operation, status).Inc()
	s.runtimes.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// AddRows records a number of rows affected by an operation
func (s *OperationStatistics) AddRows(operation string, kind string, n int) {
	if n <= 0 {
		return
	}
	s.rows.WithLabelValues(operation, kind).Add(float64(n))
}

// GetStartTime returns the time at which these statistics were created
func (s *OperationStatistics) GetStartTime() time.Time {
	return s.startTime
}

// GetRuntime returns the time elapsed since these statistics were created
func (s *OperationStatistics) GetRuntime() time.Duration {
	return time.Since(s.startTime)
}

// Gatherer exposes the underlying registry
func (s *OperationStatistics) Gatherer() prometheus.Gatherer {
	return s.registry
}

// WriteToTextfile writes the current statistics in the prometheus text format
func (s *OperationStatistics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, s.registry)
}
