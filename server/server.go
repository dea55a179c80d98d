// Package server exposes the transform over HTTP for host build tools running out of process.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/viant/sourcejump/annotator"
	"github.com/viant/sourcejump/plugin"
)

// TransformRequest represents a single file handed over by a build tool
type TransformRequest struct {
	ID   string `json:"id" binding:"required"`
	Code string `json:"code"`
}

// TransformResponse represents the rewritten file
type TransformResponse struct {
	Code    string `json:"code"`
	Changed bool   `json:"changed"`
}

// ErrorResponse represents a failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server routes transform requests to a plugin
type Server struct {
	plugin *plugin.Plugin
	logger *slog.Logger
}

// New creates a server
func New(aPlugin *plugin.Plugin, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{plugin: aPlugin, logger: logger}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/v1/transform", s.transform)
	return router
}

func (s *Server) transform(c *gin.Context) {
	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	output, changed, err := s.plugin.Transform(c.Request.Context(), req.ID, []byte(req.Code))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, annotator.ErrSyntax) {
			status = http.StatusUnprocessableEntity
		}
		s.logger.Warn("transform rejected", slog.String("id", req.ID), slog.Any("error", err))
		c.JSON(status, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, TransformResponse{Code: string(output), Changed: changed})
}
