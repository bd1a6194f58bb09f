package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordHTTPRequest("modelctl", "GET", "/health", 200, 12*time.Millisecond)
	RecordCodecOp("response", "decode", "json", 64, time.Millisecond, true)
	RecordCodecOp("response", "decode", "json", 0, time.Millisecond, false)

	if got := testutil.ToFloat64(codecOps.WithLabelValues("response", "decode", "json", "true")); got != 1 {
		t.Fatalf("unexpected success count: %v", got)
	}
	if got := testutil.ToFloat64(codecOps.WithLabelValues("response", "decode", "json", "false")); got != 1 {
		t.Fatalf("unexpected failure count: %v", got)
	}
	if got := testutil.ToFloat64(codecBytes.WithLabelValues("response", "decode", "json")); got != 64 {
		t.Fatalf("unexpected byte count: %v", got)
	}
}
