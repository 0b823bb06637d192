package types

import "time"

// Assessment values returned by the fact-check model.
const (
	AssessmentVerified          = "VERIFIED"
	AssessmentPartiallyVerified = "PARTIALLY_VERIFIED"
	AssessmentDisputed          = "DISPUTED"
	AssessmentMisleading        = "MISLEADING"
	AssessmentUnverified        = "UNVERIFIED"
)

// Social verification status values.
const (
	SocialConfirmed    = "confirmed"
	SocialDisputed     = "disputed"
	SocialContradicted = "contradicted"
	SocialNotFound     = "not_found"
)

// KeyFinding is a single fact-checked claim from the article.
type KeyFinding struct {
	Claim        string   `json:"claim"`
	Verification string   `json:"verification"`
	Evidence     string   `json:"evidence"`
	Sources      []string `json:"sources"`
}

// SourceAnalysis describes the model's view of the publishing source.
type SourceAnalysis struct {
	Reputation           string `json:"reputation"`
	Bias                 string `json:"bias"`
	PreviousAccuracy     string `json:"previousAccuracy"`
	GroundTruthAlignment string `json:"groundTruthAlignment"`
}

// CrossReference captures corroboration across outlets.
type CrossReference struct {
	SimilarReporting   string `json:"similarReporting"`
	ConflictingReports string `json:"conflictingReports"`
}

// SocialPost is a single piece of social-signal evidence.
type SocialPost struct {
	Platform  string    `json:"platform"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Relevance int       `json:"relevance"` // 0-10
	Verified  bool      `json:"verified"`
}

// SocialVerification is the outcome of cross-checking an article against
// independent social-signal evidence.
type SocialVerification struct {
	Status   string       `json:"status"` // confirmed, disputed, contradicted, not_found
	Result   string       `json:"result"`
	Details  string       `json:"details"`
	Posts    []SocialPost `json:"posts,omitempty"`
	Keywords []string     `json:"keywords_used,omitempty"`
}

// Analysis is the canonical fact-check verdict for one article. It is computed
// at most once per article URL and never mutated afterwards.
type Analysis struct {
	ArticleTitle      string             `json:"article_title"`
	ArticleSource     string             `json:"article_source"`
	ArticleURL        string             `json:"article_url"`
	SourceCredibility float64            `json:"source_credibility"`
	CredibilityScore  float64            `json:"credibility_score"`
	OverallAssessment string             `json:"overall_assessment"`
	KeyFindings       []KeyFinding       `json:"key_findings"`
	SourceAnalysis    SourceAnalysis     `json:"source_analysis"`
	ContextualFactors []string           `json:"contextual_factors"`
	RedFlags          []string           `json:"red_flags"`
	CrossReference    CrossReference     `json:"cross_reference"`
	Recommendations   string             `json:"recommendations"`
	SocialMedia       SocialVerification `json:"social_media_verification"`
	FinalScore        float64            `json:"final_score"`
	ParseFailed       bool               `json:"parse_failed,omitempty"`
	ProcessedAt       time.Time          `json:"processed_at"`
}

// Result pairs an article with its completed analysis.
type Result struct {
	Article  *Article  `json:"article"`
	Analysis *Analysis `json:"analysis"`
}
