// Package server wires the HTTP API: totals recomputation, invoice
// validation and preview, file export, and the two AI extraction
// endpoints.
package server

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/facturafacil/facturafacil/internal/config"
	"github.com/facturafacil/facturafacil/internal/extract"
)

// ItemExtractor is the contract both extraction flows satisfy. Parse
// never fails; failures surface as an empty result.
type ItemExtractor interface {
	Parse(ctx context.Context, input string) extract.Result
}

// Server holds handler dependencies.
type Server struct {
	cfg       *config.Config
	textFlow  ItemExtractor
	imageFlow ItemExtractor
	logger    *zap.Logger
}

// New creates the API server.
func New(cfg *config.Config, textFlow, imageFlow ItemExtractor, logger *zap.Logger) *Server {
	return &Server{
		cfg:       cfg,
		textFlow:  textFlow,
		imageFlow: imageFlow,
		logger:    logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(s.requestLogger(), gin.Recovery())

	r.GET("/health", s.Health)

	api := r.Group("/api")
	{
		api.POST("/invoice/totals", s.Totals)
		api.POST("/invoice/preview", s.Preview)
		api.POST("/invoice/preview.html", s.PreviewHTML)
		api.POST("/invoice/export", s.Export)

		api.POST("/extract/text", s.ExtractText)
		api.POST("/extract/image", s.ExtractImage)
	}

	return r
}

// requestLogger logs one line per request with latency and status.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// Health reports liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(200, gin.H{"status": "ok"})
}
