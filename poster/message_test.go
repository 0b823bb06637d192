package poster

import (
	"strings"
	"testing"
	"unicode/utf8"

	"newswatch/config"
	"newswatch/types"
)

func TestBuildMessageVerified(t *testing.T) {
	article := &types.Article{
		Title:      "Gaza ceasefire agreement reached",
		URL:        "https://example.com/story",
		SourceName: "Test Wire",
	}
	analysis := &types.Analysis{
		OverallAssessment: types.AssessmentVerified,
		CredibilityScore:  0.92,
	}

	msg := BuildMessage(article, analysis)

	if !strings.HasPrefix(msg, "✅ VERIFIED: ") {
		t.Fatalf("message prefix wrong: %q", msg)
	}
	if !strings.Contains(msg, "Credibility: 92% (VERIFIED)") {
		t.Fatalf("credibility line missing: %q", msg)
	}
	if !strings.Contains(msg, "#FactCheck") || !strings.Contains(msg, "#Verified") {
		t.Fatalf("verification hashtags missing: %q", msg)
	}
	if !strings.Contains(msg, "🔗 https://example.com/story") {
		t.Fatalf("URL missing: %q", msg)
	}
	if utf8.RuneCountInString(msg) > config.TweetLimit {
		t.Fatalf("message exceeds limit: %d runes", utf8.RuneCountInString(msg))
	}
}

func TestBuildMessageWarningBadges(t *testing.T) {
	tests := []struct {
		assessment string
		cred       float64
		prefix     string
	}{
		{types.AssessmentMisleading, 0.6, "🚨 VERIFY: "},
		{types.AssessmentUnverified, 0.2, "🚨 VERIFY: "},
		{types.AssessmentDisputed, 0.6, "⚠️ CAUTION: "},
		{types.AssessmentUnverified, 0.4, "⚠️ CAUTION: "},
		{types.AssessmentUnverified, 0.6, "📋 "},
	}

	for _, tt := range tests {
		article := &types.Article{Title: "Some headline", URL: "https://e.com/1", SourceName: "W"}
		analysis := &types.Analysis{OverallAssessment: tt.assessment, CredibilityScore: tt.cred}
		msg := BuildMessage(article, analysis)
		if !strings.HasPrefix(msg, tt.prefix) {
			t.Errorf("assessment %s cred %.1f: prefix = %q, want %q",
				tt.assessment, tt.cred, msg[:20], tt.prefix)
		}
	}
}

func TestBuildMessageTruncationPreservesCredibilityAndURL(t *testing.T) {
	article := &types.Article{
		Title:      strings.Repeat("Extremely long headline about the ceasefire ", 10),
		URL:        "https://example.com/a-very-long-path/to/the/full/story-page",
		SourceName: "A Rather Long Publication Name",
	}
	analysis := &types.Analysis{
		OverallAssessment: types.AssessmentVerified,
		CredibilityScore:  0.88,
	}

	msg := BuildMessage(article, analysis)

	if utf8.RuneCountInString(msg) > config.TweetLimit {
		t.Fatalf("message exceeds limit: %d runes", utf8.RuneCountInString(msg))
	}
	if !strings.Contains(msg, "88%") {
		t.Fatalf("credibility figure lost in truncation: %q", msg)
	}
	if !strings.Contains(msg, article.URL) {
		t.Fatalf("URL lost in truncation: %q", msg)
	}
}

func TestHashtagsSelection(t *testing.T) {
	article := &types.Article{Title: "Gaza hospital hit as ceasefire falters"}
	analysis := &types.Analysis{
		OverallAssessment: types.AssessmentUnverified,
		CredibilityScore:  0.4,
	}

	tags := Hashtags(article, analysis)
	if len(tags) > 4 {
		t.Fatalf("too many hashtags: %v", tags)
	}

	joined := strings.Join(tags, " ")
	if !strings.Contains(joined, "#FactCheck") {
		t.Fatalf("#FactCheck missing: %v", tags)
	}
	if !strings.Contains(joined, "#VerifyBeforeSharing") {
		t.Fatalf("low-credibility tag missing: %v", tags)
	}
	if !strings.Contains(joined, "#Gaza") {
		t.Fatalf("topical tag missing: %v", tags)
	}
}
