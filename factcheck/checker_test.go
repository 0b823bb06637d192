package factcheck

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"newswatch/types"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
}

func (f *fakeGenerator) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

func testArticle() *types.Article {
	return &types.Article{
		ID:                "abc123",
		Title:             "Ceasefire talks resume in Cairo",
		URL:               "https://example.com/story",
		Content:           "Negotiators from both sides met on Tuesday.",
		SourceName:        "Test Wire",
		SourceCredibility: 0.9,
	}
}

func newTestChecker(gen Generator) *FactChecker {
	f := New(gen)
	f.delay = 0
	return f
}

func TestAnalyzeParsesVerdict(t *testing.T) {
	gen := &fakeGenerator{response: `Here is my assessment:
{
  "credibilityScore": 0.9,
  "overallAssessment": "VERIFIED",
  "keyFindings": [
    {"claim": "Talks resumed", "verification": "CONFIRMED", "evidence": "Multiple wires", "sources": ["Reuters"]}
  ],
  "sourceAnalysis": {"reputation": "strong", "bias": "low", "previousAccuracy": "high", "groundTruthAlignment": "consistent with ground truth"},
  "contextualFactors": ["ongoing negotiations"],
  "redFlags": [],
  "crossReference": {"similarReporting": "yes", "conflictingReports": "none"},
  "recommendations": "Safe to share"
}`}

	f := newTestChecker(gen)
	social := types.SocialVerification{Status: types.SocialConfirmed}
	a := f.Analyze(context.Background(), testArticle(), social)

	if a.OverallAssessment != types.AssessmentVerified {
		t.Fatalf("OverallAssessment = %q, want VERIFIED", a.OverallAssessment)
	}
	if a.ParseFailed {
		t.Fatal("ParseFailed set on a parseable response")
	}
	if len(a.KeyFindings) != 1 || a.KeyFindings[0].Claim != "Talks resumed" {
		t.Fatalf("KeyFindings not coerced: %+v", a.KeyFindings)
	}
	// 0.9 averaged with source 0.9, +0.15 social, +0.1 alignment, +0.1
	// verified, clamped to 1.
	if a.FinalScore != 1.0 {
		t.Fatalf("FinalScore = %v, want 1.0", a.FinalScore)
	}
	if a.RedFlags == nil || a.ContextualFactors == nil {
		t.Fatal("optional slices not filled during coercion")
	}
}

func TestAnalyzeDegradesOnUnparseableResponse(t *testing.T) {
	gen := &fakeGenerator{response: "I cannot assess this article."}
	f := newTestChecker(gen)

	a := f.Analyze(context.Background(), testArticle(), types.SocialVerification{})

	if a.OverallAssessment != types.AssessmentUnverified {
		t.Fatalf("OverallAssessment = %q, want UNVERIFIED", a.OverallAssessment)
	}
	if a.CredibilityScore != 0.5 || a.FinalScore != 0.5 {
		t.Fatalf("degraded scores = %v/%v, want 0.5/0.5", a.CredibilityScore, a.FinalScore)
	}
	if !a.ParseFailed {
		t.Fatal("ParseFailed not set on unparseable response")
	}
}

func TestAnalyzeDegradesOnModelError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream unavailable")}
	f := newTestChecker(gen)

	a := f.Analyze(context.Background(), testArticle(), types.SocialVerification{})
	if !a.ParseFailed || a.FinalScore != 0.5 {
		t.Fatalf("model error did not degrade: %+v", a)
	}
}

func TestAnalyzeCachesPerURL(t *testing.T) {
	gen := &fakeGenerator{response: `{"credibilityScore": 0.7, "overallAssessment": "PARTIALLY_VERIFIED"}`}
	f := newTestChecker(gen)
	article := testArticle()

	first := f.Analyze(context.Background(), article, types.SocialVerification{})
	second := f.Analyze(context.Background(), article, types.SocialVerification{})

	if gen.calls != 1 {
		t.Fatalf("generator called %d times, want 1", gen.calls)
	}
	if first != second {
		t.Fatal("cached analysis not returned on second call")
	}
	if cached, ok := f.Cached(article.URL); !ok || cached != first {
		t.Fatal("Cached did not return the memoized analysis")
	}
}

func TestAnalyzeConcurrentURLs(t *testing.T) {
	gen := &fakeGenerator{response: `{"credibilityScore": 0.7, "overallAssessment": "PARTIALLY_VERIFIED"}`}
	f := newTestChecker(gen)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			article := testArticle()
			article.URL = fmt.Sprintf("https://example.com/story-%d", i)
			f.Analyze(context.Background(), article, types.SocialVerification{})
		}(i)
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		if _, ok := f.Cached(fmt.Sprintf("https://example.com/story-%d", i)); !ok {
			t.Fatalf("analysis %d missing from cache after concurrent runs", i)
		}
	}
}

func TestTruncateContentBreaksAtSentence(t *testing.T) {
	sentence := strings.Repeat("x", 90) + "."
	text := sentence + " " + strings.Repeat("y", 50)

	got := TruncateContent(text, 100)
	if got != sentence {
		t.Fatalf("TruncateContent = %q, want the complete first sentence", got)
	}
}

func TestTruncateContentHardCutsWhenNoLateBoundary(t *testing.T) {
	text := strings.Repeat("z", 200)
	got := TruncateContent(text, 100)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("TruncateContent = %q, want an ellipsis hard cut", got)
	}
	if len(got) != 103 {
		t.Fatalf("TruncateContent length = %d, want 103", len(got))
	}
}

func TestTruncateContentShortTextUnchanged(t *testing.T) {
	if got := TruncateContent("  short  ", 100); got != "short" {
		t.Fatalf("TruncateContent = %q, want trimmed original", got)
	}
}

func TestTruncateContentNeverSplitsRunes(t *testing.T) {
	// Two-byte runes force the cut position into the middle of a rune.
	text := strings.Repeat("é", 100)
	got := TruncateContent(text, 99)
	if !utf8.ValidString(got) {
		t.Fatalf("TruncateContent produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("TruncateContent = %q, want hard cut with ellipsis", got)
	}
	if len(got) > 99+3 {
		t.Fatalf("TruncateContent length = %d bytes, want at most 102", len(got))
	}
}
