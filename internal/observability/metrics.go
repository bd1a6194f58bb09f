package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelcodec",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "modelcodec",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	codecOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelcodec",
			Subsystem: "codec",
			Name:      "operations_total",
			Help:      "Encode and decode operations by kind, format and outcome.",
		},
		[]string{"kind", "op", "format", "success"},
	)
	codecBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modelcodec",
			Subsystem: "codec",
			Name:      "bytes_total",
			Help:      "Bytes consumed by decodes and produced by encodes.",
		},
		[]string{"kind", "op", "format"},
	)
	codecDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "modelcodec",
			Subsystem: "codec",
			Name:      "operation_duration_seconds",
			Help:      "Encode and decode duration in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
		[]string{"kind", "op", "format"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, codecOps, codecBytes, codecDuration)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// RecordCodecOp counts one encode or decode. size is the byte length of the
// wire data involved and is only counted on success.
func RecordCodecOp(kind, op, format string, size int, duration time.Duration, success bool) {
	RegisterMetrics()
	codecOps.WithLabelValues(kind, op, format, strconv.FormatBool(success)).Inc()
	codecDuration.WithLabelValues(kind, op, format).Observe(duration.Seconds())
	if success {
		codecBytes.WithLabelValues(kind, op, format).Add(float64(size))
	}
}
