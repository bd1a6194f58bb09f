package transcode

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/danmuck/modelcodec/internal/catalog"
	"github.com/danmuck/modelcodec/internal/codec"
	"github.com/danmuck/modelcodec/internal/codec/tagged"
	"github.com/danmuck/modelcodec/internal/model"
	"github.com/danmuck/modelcodec/internal/observability"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const version = "0.1.0"

// Server exposes a Service over HTTP.
type Server struct {
	cfg     Config
	svc     *Service
	router  *gin.Engine
	started time.Time
}

// NewServer builds the router with logging, metrics and CORS middleware. Call
// RegisterRoutes before serving.
func NewServer(cfg Config, svc *Service) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(observability.ServiceLogger(cfg.ID)))
	r.Use(observability.RequestMetricsMiddleware(cfg.ID))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(cfg.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept-Encoding"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		cfg:     cfg,
		svc:     svc,
		router:  r,
		started: time.Now(),
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) RegisterRoutes() {
	r := s.router
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"uptime":  time.Since(s.started).String(),
			"service": s.cfg.ID,
			"version": version,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/formats", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"formats":         model.Formats(),
			"default":         s.cfg.DefaultFormat,
			"host_byte_order": tagged.HostByteOrder(),
		})
	})

	r.GET("/kinds", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"kinds": s.svc.Catalog().List(),
		})
	})

	r.GET("/kinds/:kind/sample", func(c *gin.Context) {
		kind := c.Param("kind")
		format := c.DefaultQuery("format", s.cfg.DefaultFormat)
		c.Set(observability.KeyKind, kind)
		c.Set(observability.KeyTo, format)

		out, err := s.svc.Sample(kind, format)
		if err != nil {
			s.fail(c, err)
			return
		}
		s.write(c, format, out)
	})

	r.POST("/kinds/:kind/transcode", func(c *gin.Context) {
		kind := c.Param("kind")
		from := c.DefaultQuery("from", s.cfg.DefaultFormat)
		to := c.DefaultQuery("to", s.cfg.DefaultFormat)
		c.Set(observability.KeyKind, kind)
		c.Set(observability.KeyFrom, from)
		c.Set(observability.KeyTo, to)

		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes))
		if err != nil {
			s.fail(c, err)
			return
		}
		out, err := s.svc.Transcode(kind, from, to, body)
		if err != nil {
			s.fail(c, err)
			return
		}
		s.write(c, to, out)
	})
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("id", s.cfg.ID).Str("addr", s.cfg.Addr).Msg("transcode server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	var codecErr *codec.Error
	switch {
	case errors.Is(err, catalog.ErrKindNotFound):
		return http.StatusNotFound
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, model.ErrUnknownFormat), errors.As(err, &codecErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) write(c *gin.Context, format string, body []byte) {
	contentType := ContentType(format)
	if !s.cfg.Compress || !acceptsBrotli(c.GetHeader("Accept-Encoding")) {
		c.Data(http.StatusOK, contentType, body)
		return
	}
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	if _, err := w.Write(body); err != nil {
		s.fail(c, err)
		return
	}
	if err := w.Close(); err != nil {
		s.fail(c, err)
		return
	}
	c.Header("Content-Encoding", "br")
	c.Header("Vary", "Accept-Encoding")
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// ContentType maps a format name to the media type it is served with.
func ContentType(format string) string {
	f, err := model.LookupFormat(format)
	if err != nil {
		return "application/octet-stream"
	}
	switch model.FormatName(f) {
	case codec.FormatJSON:
		return "application/json"
	case codec.FormatLiteral:
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

func acceptsBrotli(header string) bool {
	for _, part := range strings.Split(header, ",") {
		enc, _, _ := strings.Cut(strings.TrimSpace(part), ";")
		if strings.EqualFold(strings.TrimSpace(enc), "br") {
			return true
		}
	}
	return false
}

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		if v := strings.TrimSpace(origin); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return []string{"http://localhost:3000"}
	}
	return out
}
