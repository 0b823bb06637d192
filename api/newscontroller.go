package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"newswatch/poster"
	"newswatch/sources"
	"newswatch/types"
)

// handleNews runs a live fetch, filter and dedupe pass and returns the
// admitted candidates without analyzing them.
// GET /api/news
func (s *Server) handleNews(c *gin.Context) {
	articles := s.pipeline.FetchCandidates(c.Request.Context())

	items := make([]gin.H, 0, len(articles))
	for _, a := range articles {
		items = append(items, gin.H{
			"id":          a.ID,
			"title":       a.Title,
			"url":         a.URL,
			"source":      a.SourceName,
			"published":   a.PublishedAt,
			"relevance":   a.RelevanceScore,
			"credibility": a.SourceCredibility,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(items),
		"articles": items,
	})
}

// handleFactCheck returns the 20 most recent full analyses.
// GET /api/fact-check
func (s *Server) handleFactCheck(c *gin.Context) {
	results := s.pipeline.Store().Latest(20)
	c.JSON(http.StatusOK, gin.H{
		"count":   len(results),
		"results": results,
	})
}

// AnalyzeRequest is the on-demand analysis payload.
type AnalyzeRequest struct {
	Title       string  `json:"title" binding:"required"`
	Content     string  `json:"content" binding:"required"`
	URL         string  `json:"url" binding:"required"`
	Source      string  `json:"source"`
	Credibility float64 `json:"credibility"`
}

// handleAnalyze fact-checks a caller-supplied article synchronously.
// POST /api/analyze
func (s *Server) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A catalog id as the source fills in the known name and credibility.
	source := req.Source
	credibility := req.Credibility
	if src := sources.ByID(req.Source); src != nil {
		source = src.Name
		credibility = src.Credibility
	}
	if source == "" {
		source = "user-submitted"
	}
	if credibility == 0 {
		credibility = 0.5
	}

	article := &types.Article{
		ID:                types.GenerateID(req.URL),
		Title:             req.Title,
		URL:               req.URL,
		Content:           req.Content,
		PublishedAt:       time.Now(),
		FetchedAt:         time.Now(),
		SourceName:        source,
		SourceCredibility: credibility,
	}

	analysis := s.pipeline.AnalyzeOne(c.Request.Context(), article)
	c.JSON(http.StatusOK, gin.H{
		"article":  article,
		"analysis": analysis,
	})
}

// handleSocialReady returns analyses above a credibility floor, formatted as
// ready-to-share posts.
// GET /api/social-ready-articles?limit=10&minCredibility=0.7
func (s *Server) handleSocialReady(c *gin.Context) {
	limit := intQuery(c, "limit", 10)
	minCredibility := floatQuery(c, "minCredibility", 0.7)

	results := s.pipeline.Store().Latest(s.pipeline.Store().Len())

	items := make([]gin.H, 0, limit)
	for _, r := range results {
		if r.Analysis.FinalScore < minCredibility {
			continue
		}
		if len(items) == limit {
			break
		}
		items = append(items, gin.H{
			"title":       r.Article.Title,
			"url":         r.Article.URL,
			"source":      r.Article.SourceName,
			"assessment":  r.Analysis.OverallAssessment,
			"credibility": r.Analysis.CredibilityScore,
			"finalScore":  r.Analysis.FinalScore,
			"message":     poster.BuildMessage(r.Article, r.Analysis),
			"hashtags":    poster.Hashtags(r.Article, r.Analysis),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(items),
		"articles": items,
	})
}

// handleSummary aggregates the stored analyses into credibility and risk
// buckets, with a compact per-article summary.
// GET /api/news-summary?limit=20
func (s *Server) handleSummary(c *gin.Context) {
	limit := intQuery(c, "limit", 20)
	results := s.pipeline.Store().Latest(limit)

	high, medium, low := 0, 0, 0
	verifiedClaims, totalClaims := 0, 0
	assessments := make(map[string]int)
	summaries := make([]gin.H, 0, len(results))

	for _, r := range results {
		level := credibilityLevel(r.Analysis.FinalScore)
		switch level {
		case "HIGH":
			high++
		case "MEDIUM":
			medium++
		default:
			low++
		}
		assessments[r.Analysis.OverallAssessment]++
		for _, kf := range r.Analysis.KeyFindings {
			totalClaims++
			if kf.Verification == "VERIFIED" || kf.Verification == "CONFIRMED" {
				verifiedClaims++
			}
		}

		summaries = append(summaries, gin.H{
			"title":            r.Article.Title,
			"source":           r.Article.SourceName,
			"url":              r.Article.URL,
			"assessment":       r.Analysis.OverallAssessment,
			"credibilityLevel": level,
			"riskLevel":        riskLevel(r.Analysis),
			"finalScore":       r.Analysis.FinalScore,
		})
	}

	verifiedRatio := 0.0
	if totalClaims > 0 {
		verifiedRatio = float64(verifiedClaims) / float64(totalClaims)
	}

	c.JSON(http.StatusOK, gin.H{
		"totalArticles": len(results),
		"credibilityLevels": gin.H{
			"high":   high,
			"medium": medium,
			"low":    low,
		},
		"assessments":         assessments,
		"verifiedClaimsRatio": verifiedRatio,
		"articles":            summaries,
		"generatedAt":         time.Now(),
	})
}

func credibilityLevel(score float64) string {
	switch {
	case score >= 0.8:
		return "HIGH"
	case score >= 0.5:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func riskLevel(a *types.Analysis) string {
	switch {
	case a.FinalScore < 0.4 || len(a.RedFlags) >= 3:
		return "HIGH"
	case a.FinalScore < 0.7 || len(a.RedFlags) >= 1:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func floatQuery(c *gin.Context, key string, fallback float64) float64 {
	if v := c.Query(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// handleQueueStatus reports the publish queue, today's usage and the next
// posting slot.
// GET /api/queue/status
func (s *Server) handleQueueStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.pipeline.Poster().Status(time.Now()))
}
