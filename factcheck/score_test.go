package factcheck

import (
	"math"
	"testing"

	"newswatch/types"
)

func scoreAlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeFinalScoreAdjustments(t *testing.T) {
	tests := []struct {
		name string
		a    types.Analysis
		want float64
	}{
		{
			name: "verified with confirmed social",
			a: types.Analysis{
				CredibilityScore:  0.9,
				OverallAssessment: types.AssessmentVerified,
				SocialMedia:       types.SocialVerification{Status: types.SocialConfirmed},
			},
			// 0.9 + 0.15 + 0.1 clamps to 1.
			want: 1.0,
		},
		{
			name: "disputed with contradicted social and red flag",
			a: types.Analysis{
				CredibilityScore:  0.9,
				OverallAssessment: types.AssessmentDisputed,
				SocialMedia:       types.SocialVerification{Status: types.SocialContradicted},
				RedFlags:          []string{"anonymous sourcing"},
			},
			// 0.9 - 0.2 - 0.08 - 0.2 = 0.42
			want: 0.42,
		},
		{
			name: "source credibility averages in",
			a: types.Analysis{
				CredibilityScore:  0.6,
				SourceCredibility: 0.8,
				OverallAssessment: types.AssessmentUnverified,
			},
			want: 0.7,
		},
		{
			name: "ground truth contradiction dominates alignment wording",
			a: types.Analysis{
				CredibilityScore:  0.7,
				OverallAssessment: types.AssessmentUnverified,
				SourceAnalysis: types.SourceAnalysis{
					GroundTruthAlignment: "claims align in part but contradict independent footage",
				},
			},
			// 0.7 - 0.15 = 0.55
			want: 0.55,
		},
		{
			name: "ground truth alignment adds",
			a: types.Analysis{
				CredibilityScore:  0.7,
				OverallAssessment: types.AssessmentUnverified,
				SourceAnalysis: types.SourceAnalysis{
					GroundTruthAlignment: "corroborated by independent reporting",
				},
			},
			want: 0.8,
		},
		{
			name: "misleading with many red flags clamps at zero",
			a: types.Analysis{
				CredibilityScore:  0.2,
				OverallAssessment: types.AssessmentMisleading,
				RedFlags:          []string{"a", "b", "c", "d", "e"},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeFinalScore(&tt.a)
			if !scoreAlmostEqual(got, tt.want) {
				t.Fatalf("ComputeFinalScore = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComputeFinalScoreStaysInRange(t *testing.T) {
	a := types.Analysis{
		CredibilityScore:  1.0,
		SourceCredibility: 1.0,
		OverallAssessment: types.AssessmentVerified,
		SocialMedia:       types.SocialVerification{Status: types.SocialConfirmed},
		SourceAnalysis:    types.SourceAnalysis{GroundTruthAlignment: "aligned"},
	}
	if got := ComputeFinalScore(&a); got != 1.0 {
		t.Fatalf("ComputeFinalScore = %v, want exactly 1.0", got)
	}

	b := types.Analysis{
		CredibilityScore:  0.0,
		OverallAssessment: types.AssessmentMisleading,
		SocialMedia:       types.SocialVerification{Status: types.SocialContradicted},
		RedFlags:          []string{"a", "b", "c"},
	}
	if got := ComputeFinalScore(&b); got != 0.0 {
		t.Fatalf("ComputeFinalScore = %v, want exactly 0.0", got)
	}
}
