package scraper

import (
	"strings"
	"time"

	"newswatch/config"
	"newswatch/sources"
	"newswatch/types"
)

// Score computes a candidate's relevance in [0,1]: distinct keyword hits
// weighted by vocabulary tier, a recency bump for articles under 24h old, and
// a source-quality bump for highly credible outlets.
func Score(a *types.Article) float64 {
	text := strings.ToLower(a.Title + " " + a.Content)

	score := 0.0
	for _, kw := range sources.HighWeightKeywords {
		if strings.Contains(text, kw) {
			score += 0.3
		}
	}
	for _, kw := range sources.MediumWeightKeywords {
		if strings.Contains(text, kw) {
			score += 0.2
		}
	}

	if !a.PublishedAt.IsZero() && time.Since(a.PublishedAt) < 24*time.Hour {
		score += 0.4
	}
	if a.SourceCredibility >= 0.9 {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

// Filter admits candidates that contain at least one vocabulary keyword, fall
// inside the source's recency window, and score strictly above the relevance
// threshold. The admitted articles carry their computed score.
func Filter(candidates []*types.Article, src *sources.Source) []*types.Article {
	var kept []*types.Article
	for _, a := range candidates {
		if !ContainsKeyword(a.Title + " " + a.Content) {
			continue
		}
		if !withinRecencyWindow(a, src.Priority) {
			continue
		}
		score := Score(a)
		if score <= config.RelevanceThreshold {
			continue
		}
		a.RelevanceScore = score
		kept = append(kept, a)
	}
	return kept
}

// ContainsKeyword reports whether the text mentions any admission keyword.
func ContainsKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range sources.AllKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// withinRecencyWindow applies the 72h window for priority sources and the
// 7-day window otherwise. Articles without a publish date are too stale to
// place and are rejected.
func withinRecencyWindow(a *types.Article, priority bool) bool {
	if a.PublishedAt.IsZero() {
		return false
	}
	window := config.DefaultRecencyWindow
	if priority {
		window = config.PriorityRecencyWindow
	}
	return time.Since(a.PublishedAt) <= window
}
