package factcheck

import (
	"strings"

	"newswatch/types"
)

// ComputeFinalScore derives the composite trust score from a coerced
// analysis. The adjustment sequence is fixed so the result is deterministic
// and independent of response field ordering; clamping to [0,1] is the last
// step only.
func ComputeFinalScore(a *types.Analysis) float64 {
	score := a.CredibilityScore

	if a.SourceCredibility > 0 {
		score = (score + a.SourceCredibility) / 2
	}

	switch a.SocialMedia.Status {
	case types.SocialConfirmed:
		score += 0.15
	case types.SocialContradicted:
		score -= 0.2
	}

	switch groundTruthSignal(a.SourceAnalysis.GroundTruthAlignment) {
	case 1:
		score += 0.1
	case -1:
		score -= 0.15
	}

	score -= 0.08 * float64(len(a.RedFlags))

	switch a.OverallAssessment {
	case types.AssessmentVerified:
		score += 0.1
	case types.AssessmentDisputed, types.AssessmentMisleading:
		score -= 0.2
	}

	return clamp01(score)
}

// groundTruthSignal reads the free-text alignment field: 1 for alignment,
// -1 for contradiction, 0 when the text commits to neither. Contradiction
// wording dominates when both appear.
func groundTruthSignal(text string) int {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "contradict") || strings.Contains(lower, "conflict") {
		return -1
	}
	if strings.Contains(lower, "align") || strings.Contains(lower, "consistent") ||
		strings.Contains(lower, "corroborat") {
		return 1
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
