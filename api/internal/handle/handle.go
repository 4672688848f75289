package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ergo-proxy/api/internal/analysis"
	"ergo-proxy/api/internal/config"
)

const (
	ServiceName = "Adapty Global - Biomechanical Analysis API"
	Version     = "1.0.0"

	// JS toISOString layout.
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Analyzer is the part of analysis.Service the handlers need.
type Analyzer interface {
	Analyze(ctx context.Context, req analysis.Request) (analysis.Response, error)
	Model() string
	APIKeyConfigured() bool
}

type Handle struct {
	svc Analyzer
	cfg *config.Config
	now func() time.Time
}

func New(svc Analyzer, cfg *config.Config) *Handle {
	return &Handle{
		svc: svc,
		cfg: cfg,
		now: time.Now,
	}
}

// Router wires every route and middleware onto a fresh gin engine.
func (h *Handle) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), recovery(h.cfg.IsDevelopment()), cors())

	limited := r.Group("/")
	limited.Use(bodyLimit(h.cfg.MaxRequestBodySize))
	for _, prefix := range []string{"", "/api"} {
		limited.POST(prefix+"/analyze", h.Analyze)
		r.GET(prefix+"/health", h.Health)
	}

	r.GET("/api/languages", h.Languages)
	r.GET("/api/languages/:lang", h.Language)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})
	return r
}

func (h *Handle) timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
