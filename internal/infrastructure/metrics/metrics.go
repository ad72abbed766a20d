package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memberhub",
			Subsystem: "media_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "memberhub",
			Subsystem: "media_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memberhub",
			Subsystem: "media_api",
			Name:      "uploads_total",
			Help:      "Total media uploads",
		},
		[]string{"media_type", "status"},
	)

	UploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memberhub",
			Subsystem: "media_api",
			Name:      "upload_bytes_total",
			Help:      "Total bytes uploaded",
		},
		[]string{"media_type"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memberhub",
			Subsystem: "media_api",
			Name:      "cache_lookups_total",
			Help:      "Local cache lookups by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	CacheEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "memberhub",
			Subsystem: "media_api",
			Name:      "cache_evictions_total",
			Help:      "Blob entries evicted from the local cache",
		},
	)

	CacheBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "memberhub",
			Subsystem: "media_api",
			Name:      "cache_bytes",
			Help:      "Bytes of blob data held by the local cache",
		},
	)

	BlobOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "memberhub",
			Subsystem: "media_api",
			Name:      "blob_operations_total",
			Help:      "Remote blob store operations",
		},
		[]string{"operation", "status"},
	)

	BlobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "memberhub",
			Subsystem: "media_api",
			Name:      "blob_duration_seconds",
			Help:      "Remote blob store operation duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"operation"},
	)
)

// RecordRequest records an HTTP request.
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordUpload records a media upload.
func RecordUpload(mediaType, status string, bytes int64) {
	UploadsTotal.WithLabelValues(mediaType, status).Inc()
	if status == "success" {
		UploadBytesTotal.WithLabelValues(mediaType).Add(float64(bytes))
	}
}

// RecordCacheLookup records a local cache lookup.
func RecordCacheLookup(kind string, hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	CacheLookupsTotal.WithLabelValues(kind, outcome).Inc()
}

// RecordCacheEviction records one evicted blob entry.
func RecordCacheEviction() {
	CacheEvictionsTotal.Inc()
}

// SetCacheBytes publishes the cache's tracked byte total.
func SetCacheBytes(used int64) {
	CacheBytes.Set(float64(used))
}

// RecordBlobOperation records a remote blob store operation.
func RecordBlobOperation(operation, status string, durationSec float64) {
	BlobOperationsTotal.WithLabelValues(operation, status).Inc()
	BlobDuration.WithLabelValues(operation).Observe(durationSec)
}
