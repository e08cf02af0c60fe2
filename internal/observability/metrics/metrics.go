package metrics

import (
	"database/sql"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const (
	metricPrefix = "raumbuch_"

	resultSuccess = "success"
)

var (
	registerOnce sync.Once

	importRequests *prometheus.CounterVec
	importErrors   *prometheus.CounterVec
	importLatency  *prometheus.HistogramVec

	importRowsSkipped prometheus.Counter

	entitiesCreated *prometheus.CounterVec

	exportTotal   *prometheus.CounterVec
	exportLatency *prometheus.HistogramVec
)

// Init registers observability metrics and DB-backed gauges.
func Init(db *sql.DB, logger *zap.Logger) {
	registerOnce.Do(func() {
		importRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "import_requests_total",
				Help: "Total room-book imports by result",
			},
			[]string{"result"},
		)
		importErrors = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "import_errors_total",
				Help: "Total import errors by reason",
			},
			[]string{"reason"},
		)
		importLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "import_latency_seconds",
				Help:    "Import latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		importRowsSkipped = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "import_rows_skipped_total",
				Help: "Total worksheet rows skipped during imports",
			},
		)

		entitiesCreated = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "entities_created_total",
				Help: "Total entities created by type",
			},
			[]string{"entity"},
		)

		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_total",
				Help: "Total room-book exports by format and result",
			},
			[]string{"format", "result"},
		)
		exportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_latency_seconds",
				Help:    "Export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format", "result"},
		)

		prometheus.MustRegister(
			importRequests,
			importErrors,
			importLatency,
			importRowsSkipped,
			entitiesCreated,
			exportTotal,
			exportLatency,
		)

		if db != nil {
			registerDBMetrics(db, logger)
		}
	})
}

// ObserveImport records import request duration and result.
func ObserveImport(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if importRequests != nil {
		importRequests.WithLabelValues(result).Inc()
	}
	if importLatency != nil {
		importLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncImportError increments import error counter.
func IncImportError(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if importErrors != nil {
		importErrors.WithLabelValues(reason).Inc()
	}
}

// AddImportRowsSkipped increments skipped-row counter by count.
func AddImportRowsSkipped(count int) {
	if count <= 0 {
		return
	}
	if importRowsSkipped != nil {
		importRowsSkipped.Add(float64(count))
	}
}

// AddEntitiesCreated increments created-entity counter by type.
func AddEntitiesCreated(entity string, count int) {
	if entity == "" || count <= 0 {
		return
	}
	if entitiesCreated != nil {
		entitiesCreated.WithLabelValues(entity).Add(float64(count))
	}
}

// ObserveExport records export latency and result.
func ObserveExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if exportTotal != nil {
		exportTotal.WithLabelValues(format, result).Inc()
	}
	if exportLatency != nil {
		exportLatency.WithLabelValues(format, result).Observe(duration.Seconds())
	}
}
