package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newswatch/pipeline"
	"newswatch/poster"
)

// Server exposes the pipeline state over HTTP.
type Server struct {
	pipeline *pipeline.Pipeline
	posts    *poster.PostGenerator
	started  time.Time
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(p *pipeline.Pipeline, posts *poster.PostGenerator) *gin.Engine {
	s := &Server{pipeline: p, posts: posts, started: time.Now()}

	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/news", s.handleNews)
	r.GET("/api/fact-check", s.handleFactCheck)
	r.POST("/api/analyze", s.handleAnalyze)
	r.GET("/api/social-ready-articles", s.handleSocialReady)
	r.GET("/api/news-summary", s.handleSummary)
	r.GET("/api/queue/status", s.handleQueueStatus)
	r.POST("/api/generate-social-post", s.handleGeneratePost)
	r.POST("/api/generate-multiple-posts", s.handleGenerateMultiple)
	return r
}

// handleHealth reports process liveness and store depth.
// GET /api/health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"uptime":  time.Since(s.started).Round(time.Second).String(),
		"results": s.pipeline.Store().Len(),
	})
}
