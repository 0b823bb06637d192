package factcheck

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"newswatch/config"
	"newswatch/types"
)

// FactChecker orchestrates one fact-check per article: truncate content,
// invoke the reasoning collaborator, parse its free-text verdict, and compute
// the composite trust score. Analyze never fails outward; any model or parse
// problem degrades to a neutral UNVERIFIED analysis. The mutex guards the
// cache; the scheduled cycle and the on-demand API endpoint analyze from
// separate goroutines.
type FactChecker struct {
	gen   Generator
	delay time.Duration

	mu    sync.Mutex
	cache map[string]*types.Analysis
}

// New creates a FactChecker around the given generator.
func New(gen Generator) *FactChecker {
	return &FactChecker{
		gen:   gen,
		delay: config.ModelDelay,
		cache: make(map[string]*types.Analysis),
	}
}

// Cached returns the memoized analysis for a URL, if one exists. An analysis
// is computed at most once per article URL per process lifetime.
func (f *FactChecker) Cached(url string) (*types.Analysis, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.cache[url]
	return a, ok
}

// Analyze fact-checks one article. The social verification verdict is
// supplied by the caller so the composite score can weigh it.
func (f *FactChecker) Analyze(ctx context.Context, article *types.Article, social types.SocialVerification) *types.Analysis {
	if cached, ok := f.Cached(article.URL); ok {
		return cached
	}

	log.Printf("Analyzing article: %s", article.Title)

	content := TruncateContent(article.Content, config.MaxContentLength)
	prompt := buildPrompt(article, content)

	response, err := f.gen.Generate(ctx, prompt)

	// Fixed pause after every model call to respect collaborator rate limits.
	select {
	case <-time.After(f.delay):
	case <-ctx.Done():
	}

	var analysis *types.Analysis
	if err != nil {
		log.Printf("Model call failed for %q: %v", article.Title, err)
		analysis = degradedAnalysis(article, social)
	} else if v, ok := parseVerdict(response); ok {
		analysis = coerce(v, article, social)
	} else {
		log.Printf("Failed to parse model response for %q", article.Title)
		analysis = degradedAnalysis(article, social)
	}

	// A concurrent request for the same URL may have finished first; keep
	// whichever analysis landed in the cache.
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.cache[article.URL]; ok {
		return existing
	}
	f.cache[article.URL] = analysis
	return analysis
}

// coerce converts a decoded verdict into the canonical Analysis shape,
// filling every optional field so no consumer branches on absence.
func coerce(v *verdict, article *types.Article, social types.SocialVerification) *types.Analysis {
	a := &types.Analysis{
		ArticleTitle:      article.Title,
		ArticleSource:     article.SourceName,
		ArticleURL:        article.URL,
		SourceCredibility: article.SourceCredibility,
		CredibilityScore:  clamp01(v.CredibilityScore),
		OverallAssessment: normalizeAssessment(v.OverallAssessment),
		KeyFindings:       make([]types.KeyFinding, 0, len(v.KeyFindings)),
		ContextualFactors: v.ContextualFactors,
		RedFlags:          v.RedFlags,
		Recommendations:   v.Recommendations,
		SocialMedia:       social,
		ProcessedAt:       time.Now(),
	}

	for _, kf := range v.KeyFindings {
		finding := types.KeyFinding{
			Claim:        kf.Claim,
			Verification: kf.Verification,
			Evidence:     kf.Evidence,
			Sources:      kf.Sources,
		}
		if finding.Sources == nil {
			finding.Sources = []string{}
		}
		a.KeyFindings = append(a.KeyFindings, finding)
	}

	a.SourceAnalysis = types.SourceAnalysis{
		Reputation:           v.SourceAnalysis.Reputation,
		Bias:                 v.SourceAnalysis.Bias,
		PreviousAccuracy:     v.SourceAnalysis.PreviousAccuracy,
		GroundTruthAlignment: v.SourceAnalysis.GroundTruthAlignment,
	}
	a.CrossReference = types.CrossReference{
		SimilarReporting:   v.CrossReference.SimilarReporting,
		ConflictingReports: v.CrossReference.ConflictingReports,
	}

	if a.ContextualFactors == nil {
		a.ContextualFactors = []string{}
	}
	if a.RedFlags == nil {
		a.RedFlags = []string{}
	}

	a.FinalScore = ComputeFinalScore(a)
	return a
}

// degradedAnalysis is the neutral fallback when the model response is
// unusable: UNVERIFIED, final score 0.5, parse flag set.
func degradedAnalysis(article *types.Article, social types.SocialVerification) *types.Analysis {
	return &types.Analysis{
		ArticleTitle:      article.Title,
		ArticleSource:     article.SourceName,
		ArticleURL:        article.URL,
		SourceCredibility: article.SourceCredibility,
		CredibilityScore:  0.5,
		OverallAssessment: types.AssessmentUnverified,
		KeyFindings:       []types.KeyFinding{},
		ContextualFactors: []string{},
		RedFlags:          []string{},
		SocialMedia:       social,
		FinalScore:        0.5,
		ParseFailed:       true,
		ProcessedAt:       time.Now(),
	}
}

func normalizeAssessment(s string) string {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case types.AssessmentVerified:
		return types.AssessmentVerified
	case types.AssessmentPartiallyVerified:
		return types.AssessmentPartiallyVerified
	case types.AssessmentDisputed:
		return types.AssessmentDisputed
	case types.AssessmentMisleading:
		return types.AssessmentMisleading
	default:
		return types.AssessmentUnverified
	}
}

// TruncateContent bounds the text sent to the model, breaking at the nearest
// sentence or paragraph boundary rather than mid-word. A boundary is only
// used when it sits past 80% of the limit; otherwise the text is hard-cut
// with an ellipsis, backed up to a rune boundary so the cut never produces
// invalid UTF-8.
func TruncateContent(text string, maxLength int) string {
	sanitized := strings.TrimSpace(text)
	if len(sanitized) <= maxLength {
		return sanitized
	}

	cut := maxLength
	for cut > 0 && !utf8.RuneStart(sanitized[cut]) {
		cut--
	}
	window := sanitized[:cut]

	lastSentence := strings.LastIndex(window, ".")
	lastParagraph := strings.LastIndex(window, "\n\n")

	breakPoint := lastSentence
	if lastParagraph > breakPoint {
		breakPoint = lastParagraph
	}

	if float64(breakPoint) > float64(maxLength)*0.8 {
		return sanitized[:breakPoint+1]
	}
	return window + "..."
}
