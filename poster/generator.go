package poster

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"unicode/utf8"

	"newswatch/factcheck"
	"newswatch/types"
)

// Platform character budgets for generated posts.
var platformLimits = map[string]int{
	"twitter":   280,
	"facebook":  500,
	"instagram": 400,
	"telegram":  600,
}

// DefaultPlatforms are the targets for a multi-platform generation request
// that names none.
var DefaultPlatforms = []string{"twitter", "facebook", "instagram"}

// PostGenerator drafts platform- and tone-specific social posts for analyzed
// articles using the reasoning collaborator. When the model output is missing
// or over budget the template renderer takes over, so generation never fails
// outward.
type PostGenerator struct {
	gen factcheck.Generator
}

// NewPostGenerator creates a generator over the shared model client.
func NewPostGenerator(gen factcheck.Generator) *PostGenerator {
	return &PostGenerator{gen: gen}
}

// GeneratePost drafts one post for the platform and tone. Unknown platforms
// fall back to twitter; an empty tone means informative.
func (g *PostGenerator) GeneratePost(ctx context.Context, article *types.Article, analysis *types.Analysis, platform, tone string) string {
	platform = strings.ToLower(strings.TrimSpace(platform))
	limit, ok := platformLimits[platform]
	if !ok {
		platform = "twitter"
		limit = platformLimits[platform]
	}
	if tone == "" {
		tone = "informative"
	}

	response, err := g.gen.Generate(ctx, buildPostPrompt(article, analysis, platform, tone, limit))
	if err != nil {
		log.Printf("Post generation failed for %q: %v (using template)", article.Title, err)
		return BuildMessage(article, analysis)
	}

	post := strings.TrimSpace(strings.Trim(strings.TrimSpace(response), `"`))
	if post == "" || utf8.RuneCountInString(post) > limit {
		log.Printf("Generated post for %q unusable (%d runes, limit %d); using template",
			article.Title, utf8.RuneCountInString(post), limit)
		return BuildMessage(article, analysis)
	}
	return post
}

// GenerateVariants drafts one post per requested platform, all in the same
// tone. An empty platform list uses the defaults.
func (g *PostGenerator) GenerateVariants(ctx context.Context, article *types.Article, analysis *types.Analysis, platforms []string, tone string) map[string]string {
	if len(platforms) == 0 {
		platforms = DefaultPlatforms
	}

	posts := make(map[string]string, len(platforms))
	for _, platform := range platforms {
		posts[platform] = g.GeneratePost(ctx, article, analysis, platform, tone)
	}
	return posts
}

func buildPostPrompt(article *types.Article, analysis *types.Analysis, platform, tone string, limit int) string {
	credPct := int(math.Round(analysis.CredibilityScore * 100))

	return fmt.Sprintf(`Write a social media post for %s about this fact-checked news article.

**Article Title:** %s
**Source:** %s
**Credibility:** %d%% (%s)
**URL:** %s

Requirements:
1. Tone: %s
2. Maximum %d characters including the URL
3. State the credibility assessment so readers know how verified this is
4. End with the article URL
5. Remind readers to verify before sharing when the assessment is not VERIFIED

Respond with the post text only, no commentary or quotation marks.`,
		platform, article.Title, article.SourceName, credPct,
		analysis.OverallAssessment, article.URL, tone, limit)
}
