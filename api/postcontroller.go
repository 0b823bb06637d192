package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GeneratePostRequest asks for one platform-specific post for an analyzed
// article.
type GeneratePostRequest struct {
	URL      string `json:"url" binding:"required"`
	Platform string `json:"platform"`
	Tone     string `json:"tone"`
}

// handleGeneratePost drafts a social post for a previously analyzed article.
// POST /api/generate-social-post
func (s *Server) handleGeneratePost(c *gin.Context) {
	var req GeneratePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := s.pipeline.Store().ByURL(req.URL)
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article has not been analyzed"})
		return
	}

	post := s.posts.GeneratePost(c.Request.Context(), result.Article, result.Analysis, req.Platform, req.Tone)
	c.JSON(http.StatusOK, gin.H{
		"platform":   req.Platform,
		"tone":       req.Tone,
		"post":       post,
		"finalScore": result.Analysis.FinalScore,
	})
}

// GenerateMultipleRequest asks for posts across several platforms in one call.
type GenerateMultipleRequest struct {
	URL       string   `json:"url" binding:"required"`
	Platforms []string `json:"platforms"`
	Tone      string   `json:"tone"`
}

// handleGenerateMultiple drafts one post per platform for an analyzed article.
// POST /api/generate-multiple-posts
func (s *Server) handleGenerateMultiple(c *gin.Context) {
	var req GenerateMultipleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := s.pipeline.Store().ByURL(req.URL)
	if result == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article has not been analyzed"})
		return
	}

	posts := s.posts.GenerateVariants(c.Request.Context(), result.Article, result.Analysis, req.Platforms, req.Tone)
	c.JSON(http.StatusOK, gin.H{
		"tone":  req.Tone,
		"posts": posts,
	})
}
