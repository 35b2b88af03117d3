// Package metrics expone los contadores Prometheus del servicio.
// Todas las funciones Observe/Inc son seguras antes de Init (no hacen nada).
package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "inventory_"

	ResultSuccess = "success"
	ResultError   = "error"
)

var (
	registerOnce sync.Once

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	stockRejections *prometheus.CounterVec

	reportExportTotal   *prometheus.CounterVec
	reportExportLatency *prometheus.HistogramVec

	reportCacheLookups *prometheus.CounterVec
)

// Init registra las métricas en el registro por defecto. Idempotente.
func Init() {
	registerOnce.Do(func() {
		httpRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		)
		httpLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		)
		stockRejections = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "stock_rejections_total",
				Help: "Movements rejected by the stock ledger, by reason",
			},
			[]string{"reason"},
		)
		reportExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_export_total",
				Help: "Report exports by format and result",
			},
			[]string{"format", "result"},
		)
		reportExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "report_export_latency_seconds",
				Help:    "Report export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"format"},
		)
		reportCacheLookups = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "report_cache_lookups_total",
				Help: "Report cache lookups by outcome",
			},
			[]string{"outcome"},
		)

		prometheus.MustRegister(
			httpRequests,
			httpLatency,
			stockRejections,
			reportExportTotal,
			reportExportLatency,
			reportCacheLookups,
		)
	})
}

// ObserveHTTP registra una petición atendida. route es la plantilla de la ruta.
func ObserveHTTP(method, route string, status int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	if httpRequests != nil {
		httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	}
	if httpLatency != nil {
		httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
	}
}

// IncStockRejection cuenta un movimiento rechazado (negative_stock, insufficient_stock, invalid_quantity).
func IncStockRejection(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	if stockRejections != nil {
		stockRejections.WithLabelValues(reason).Inc()
	}
}

// ObserveReportExport registra una exportación del reporte.
func ObserveReportExport(format, result string, duration time.Duration) {
	if format == "" {
		format = "json"
	}
	if result == "" {
		result = ResultSuccess
	}
	if reportExportTotal != nil {
		reportExportTotal.WithLabelValues(format, result).Inc()
	}
	if reportExportLatency != nil {
		reportExportLatency.WithLabelValues(format).Observe(duration.Seconds())
	}
}

// IncCacheHit cuenta un acierto del caché de reportes.
func IncCacheHit() {
	if reportCacheLookups != nil {
		reportCacheLookups.WithLabelValues("hit").Inc()
	}
}

// IncCacheMiss cuenta un fallo del caché de reportes.
func IncCacheMiss() {
	if reportCacheLookups != nil {
		reportCacheLookups.WithLabelValues("miss").Inc()
	}
}
