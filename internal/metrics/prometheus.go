package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors exported on /metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	layerUploads    *prometheus.CounterVec
	ingestPhase     *prometheus.HistogramVec
	layerFeatures   prometheus.Histogram
	facilityQueries *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	revokedTokens   prometheus.Counter
	storageOps      *prometheus.HistogramVec
	storageBytes    *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		layerUploads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "layer_uploads_total",
				Help: "Shapefile layer uploads by outcome",
			},
			[]string{"result"},
		),
		ingestPhase: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "layer_ingest_phase_latency_ms",
				Help:    "Latency of each shapefile ingestion phase in milliseconds",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
			},
			[]string{"phase"},
		),
		layerFeatures: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "layer_features_decoded",
				Help:    "Number of features decoded per shapefile",
				Buckets: prometheus.ExponentialBuckets(1, 4, 10),
			},
		),
		facilityQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "facility_queries_total",
				Help: "Facility lookups by operation",
			},
			[]string{"operation"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_latency_ms",
				Help:    "HTTP request latency in milliseconds",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
			},
			[]string{"method", "route"},
		),
		revokedTokens: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_refresh_tokens_revoked_total",
				Help: "Refresh tokens revoked through logout",
			},
		),
		storageOps: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "file_store_operation_latency_ms",
				Help:    "Latency of layer file store operations in milliseconds",
				Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
			},
			[]string{"operation", "result"},
		),
		storageBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "file_store_bytes_total",
				Help: "Bytes moved through the layer file store",
			},
			[]string{"direction"},
		),
	}
}

// RecordUpload counts a finished upload; result is "success", "invalid" or "error".
func (m *Metrics) RecordUpload(result string) {
	if m == nil {
		return
	}
	m.layerUploads.WithLabelValues(result).Inc()
}

// RecordIngest exports the phase timings and feature count of one ingestion.
func (m *Metrics) RecordIngest(t *IngestTimings) {
	if m == nil || t == nil {
		return
	}
	for phase, ms := range t.Snapshot() {
		m.ingestPhase.WithLabelValues(phase).Observe(ms)
	}
	m.layerFeatures.Observe(float64(t.FeatureCount))
}

func (m *Metrics) RecordFacilityQuery(operation string) {
	if m == nil {
		return
	}
	m.facilityQueries.WithLabelValues(operation).Inc()
}

func (m *Metrics) RecordRequest(method, route, status string, latencyMs float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(latencyMs)
}

func (m *Metrics) RecordRevocation() {
	if m == nil {
		return
	}
	m.revokedTokens.Inc()
}

// RecordStorageOp observes one file store call; result is "ok", "not_found" or "error".
func (m *Metrics) RecordStorageOp(operation, result string, latencyMs float64) {
	if m == nil {
		return
	}
	m.storageOps.WithLabelValues(operation, result).Observe(latencyMs)
}

// RecordStorageBytes counts bytes written ("in") or read ("out").
func (m *Metrics) RecordStorageBytes(direction string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.storageBytes.WithLabelValues(direction).Add(float64(n))
}
