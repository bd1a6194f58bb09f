package transcode

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/danmuck/modelcodec/internal/codec/tagged"
	"github.com/danmuck/modelcodec/internal/models"
	"github.com/danmuck/modelcodec/internal/testutil/testlog"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T, mutate func(*Config)) *Server {
	t.Helper()
	testlog.Start(t)
	gin.SetMode(gin.TestMode)

	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	s := NewServer(cfg, NewService(models.Catalog()))
	s.RegisterRoutes()
	return s
}

func do(s *Server, method, target string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	return rr
}

func TestServerKindsListsSamples(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(s, http.MethodGet, "/kinds", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	var body struct {
		Kinds []struct {
			ID            string   `json:"id"`
			DefaultFormat string   `json:"default_format"`
			Fields        []string `json:"fields"`
		} `json:"kinds"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Kinds) != 4 {
		t.Fatalf("unexpected kinds: %+v", body.Kinds)
	}
	if body.Kinds[1].ID != models.KindResponse || strings.Join(body.Kinds[1].Fields, ",") != "code,msg,data" {
		t.Fatalf("unexpected response entry: %+v", body.Kinds[1])
	}
	if body.Kinds[2].ID != models.KindTelemetry || body.Kinds[2].DefaultFormat != "binary" {
		t.Fatalf("unexpected telemetry entry: %+v", body.Kinds[2])
	}
}

func TestServerFormats(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(s, http.MethodGet, "/formats", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["host_byte_order"] != tagged.HostByteOrder() {
		t.Fatalf("unexpected byte order: %#v", body)
	}
	formats, _ := body["formats"].([]any)
	if len(formats) != 3 {
		t.Fatalf("unexpected formats: %#v", body["formats"])
	}
}

func TestServerTranscode(t *testing.T) {
	s := newTestServer(t, func(cfg *Config) { cfg.Compress = false })

	in := []byte(`{"code":0,"msg":"","data":[{"id":123,"name":"Alice"},{"id":456,"name":"Bob"}]}`)
	rr := do(s, http.MethodPost, "/kinds/response/transcode?from=json&to=literal", in, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if got := rr.Body.String(); got != `(0,"",[(123,"Alice"),(456,"Bob")])` {
		t.Fatalf("unexpected literal body: %s", got)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("unexpected content type: %q", ct)
	}
}

func TestServerTranscodeErrors(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(s, http.MethodPost, "/kinds/response/transcode?from=literal&to=json", []byte(`{"code":0}`), nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d body=%s", rr.Code, rr.Body.String())
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.Contains(body["error"], "structural") {
		t.Fatalf("unexpected error body: %#v", body)
	}

	rr = do(s, http.MethodPost, "/kinds/nope/transcode", []byte(`{}`), nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}

	rr = do(s, http.MethodGet, "/kinds/user/sample?format=xml", nil, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rr.Code)
	}
}

func TestServerBodyLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *Config) { cfg.MaxBodyBytes = 8 })

	rr := do(s, http.MethodPost, "/kinds/user/transcode?from=literal&to=json", []byte(`(123,"Alice")`), nil)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestServerSampleBrotli(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(s, http.MethodGet, "/kinds/telemetry/sample?format=binary", nil, map[string]string{"Accept-Encoding": "gzip, br;q=0.9"})
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Encoding") != "br" {
		t.Fatalf("expected brotli encoding, headers=%v", rr.Header())
	}
	plain, err := io.ReadAll(brotli.NewReader(rr.Body))
	if err != nil {
		t.Fatalf("brotli read: %v", err)
	}
	if len(plain) == 0 || plain[0] != tagged.TagModel {
		t.Fatalf("expected binary model payload, got % x", plain)
	}

	plainRR := do(s, http.MethodGet, "/kinds/telemetry/sample?format=binary", nil, nil)
	if !bytes.Equal(plainRR.Body.Bytes(), plain) {
		t.Fatalf("compressed and plain samples differ")
	}
}

func TestServerHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rr := do(s, http.MethodGet, "/health", nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	rr = do(s, http.MethodGet, "/metrics", nil, nil)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "modelcodec_http_requests_total") {
		t.Fatalf("expected metrics exposition, got %d", rr.Code)
	}
}
