package factcheck

import (
	"encoding/json"
	"strings"
)

// verdict mirrors the JSON object the model is asked to emit. Every field is
// optional; coercion to the canonical Analysis shape happens once, after
// decoding, so downstream consumers never branch on absent fields.
type verdict struct {
	CredibilityScore  float64 `json:"credibilityScore"`
	OverallAssessment string  `json:"overallAssessment"`
	KeyFindings       []struct {
		Claim        string   `json:"claim"`
		Verification string   `json:"verification"`
		Evidence     string   `json:"evidence"`
		Sources      []string `json:"sources"`
	} `json:"keyFindings"`
	SourceAnalysis struct {
		Reputation           string `json:"reputation"`
		Bias                 string `json:"bias"`
		PreviousAccuracy     string `json:"previousAccuracy"`
		GroundTruthAlignment string `json:"groundTruthAlignment"`
	} `json:"sourceAnalysis"`
	ContextualFactors []string `json:"contextualFactors"`
	RedFlags          []string `json:"redFlags"`
	CrossReference    struct {
		SimilarReporting   string `json:"similarReporting"`
		ConflictingReports string `json:"conflictingReports"`
	} `json:"crossReference"`
	Recommendations string `json:"recommendations"`
}

// extractJSONBlock locates the outermost {...} block in free text, from the
// first opening brace to the last closing brace. The model offers no schema
// guarantee.
func extractJSONBlock(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// parseVerdict decodes the model response into a verdict. It returns ok=false
// on any extraction or decode failure; callers degrade to a neutral analysis
// rather than propagating the error.
func parseVerdict(response string) (*verdict, bool) {
	block, ok := extractJSONBlock(response)
	if !ok {
		return nil, false
	}

	var v verdict
	if err := json.Unmarshal([]byte(block), &v); err != nil {
		return nil, false
	}
	return &v, true
}
