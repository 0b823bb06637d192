package social

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"newswatch/sources"
	"newswatch/types"
)

// EvidenceProvider supplies candidate social posts for a set of query
// keywords. Implementations may scrape, call APIs, or replay fixtures; the
// scorer is pure given a fixed provider response set.
type EvidenceProvider interface {
	Search(ctx context.Context, keywords []string) ([]types.SocialPost, error)
}

// Scorer corroborates an article against independent social-signal evidence.
type Scorer struct {
	provider EvidenceProvider
}

// NewScorer creates a scorer over the given provider.
func NewScorer(provider EvidenceProvider) *Scorer {
	return &Scorer{provider: provider}
}

// Corroborate classifies an article's social-signal support:
//   - confirmed: at least two highly relevant posts, or any verified post
//   - disputed: posts exist but neither threshold is met
//   - contradicted: the provider was queried and returned nothing
//   - not_found: no usable keywords, so no query was made
func (s *Scorer) Corroborate(ctx context.Context, article *types.Article) types.SocialVerification {
	log.Printf("🔍 Social verification: %s", article.Title)

	keywords := ExtractKeywords(article.Title + " " + article.Content)
	if len(keywords) == 0 {
		return types.SocialVerification{
			Status:   types.SocialNotFound,
			Result:   "No relevant social media content found",
			Details:  "No query keywords matched the social-relevance vocabulary",
			Posts:    []types.SocialPost{},
			Keywords: []string{},
		}
	}

	posts, err := s.provider.Search(ctx, keywords)
	if err != nil {
		log.Printf("Social evidence lookup failed: %v", err)
		posts = nil
	}

	verification := classify(posts)
	verification.Keywords = keywords
	return verification
}

func classify(posts []types.SocialPost) types.SocialVerification {
	if len(posts) == 0 {
		return types.SocialVerification{
			Status:  types.SocialContradicted,
			Result:  "Minimal independent source verification",
			Details: "This story has minimal coverage from independent journalists and citizen sources",
			Posts:   []types.SocialPost{},
		}
	}

	sorted := make([]types.SocialPost, len(posts))
	copy(sorted, posts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Relevance > sorted[j].Relevance
	})
	if len(sorted) > 10 {
		sorted = sorted[:10]
	}

	highRelevance := 0
	verified := 0
	for _, p := range sorted {
		if p.Relevance >= 5 {
			highRelevance++
		}
		if p.Verified {
			verified++
		}
	}

	switch {
	case highRelevance >= 2:
		return types.SocialVerification{
			Status:  types.SocialConfirmed,
			Result:  "Multiple independent sources confirm related content",
			Details: fmt.Sprintf("Found %d highly relevant posts from independent journalists and citizen sources", highRelevance),
			Posts:   sorted,
		}
	case verified >= 1:
		return types.SocialVerification{
			Status:  types.SocialConfirmed,
			Result:  "Verified accounts confirm information",
			Details: fmt.Sprintf("Found %d posts from verified accounts", verified),
			Posts:   sorted,
		}
	default:
		return types.SocialVerification{
			Status:  types.SocialDisputed,
			Result:  "Limited independent source coverage",
			Details: "Found related posts but limited verification from independent sources",
			Posts:   sorted,
		}
	}
}

// ExtractKeywords picks up to five distinct words (length > 3) from the text
// that intersect the social-relevance vocabulary. Matching is substring in
// both directions so "gazans" matches "gaza" and "aid" matches nothing.
func ExtractKeywords(text string) []string {
	if text == "" {
		return nil
	}

	var words []string
	var current strings.Builder
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			current.WriteRune(r)
		} else if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}

	seen := make(map[string]bool)
	var keywords []string
	for _, word := range words {
		if len(word) <= 3 || seen[word] {
			continue
		}
		if !matchesSocialVocabulary(word) {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == 5 {
			break
		}
	}
	return keywords
}

func matchesSocialVocabulary(word string) bool {
	for _, kw := range sources.SocialKeywords {
		lkw := strings.ToLower(kw)
		if strings.Contains(lkw, word) || strings.Contains(word, lkw) {
			return true
		}
	}
	return false
}
