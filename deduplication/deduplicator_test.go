package deduplication

import (
	"testing"
	"time"

	"newswatch/types"
)

func TestDedupeExactTitleCollision(t *testing.T) {
	d := New(nil)

	articles := []*types.Article{
		{Title: "Ceasefire Talks Resume in Cairo!", URL: "https://a.example/1"},
		{Title: "ceasefire talks resume in cairo", URL: "https://b.example/2"},
	}

	out := d.Dedupe(articles)
	if len(out) != 1 {
		t.Fatalf("Dedupe returned %d articles, want 1", len(out))
	}
	if out[0].URL != "https://a.example/1" {
		t.Fatalf("Dedupe kept %q, want the first occurrence", out[0].URL)
	}
}

func TestDedupeCanonicalURLCollision(t *testing.T) {
	d := New(nil)

	articles := []*types.Article{
		{Title: "First headline about the talks", URL: "https://example.com/story?utm_source=rss"},
		{Title: "A completely different headline entirely", URL: "https://EXAMPLE.com/story/"},
	}

	out := d.Dedupe(articles)
	if len(out) != 1 {
		t.Fatalf("Dedupe returned %d articles, want 1", len(out))
	}
}

func TestDedupeNearDuplicateKeepsHigherCredibility(t *testing.T) {
	d := New(nil)

	older := time.Now().Add(-5 * time.Hour)
	newer := time.Now().Add(-1 * time.Hour)

	low := &types.Article{
		Title:             "Israeli airstrikes kill dozens in Gaza City",
		URL:               "https://low.example/story",
		SourceCredibility: 0.85,
		PublishedAt:       newer,
	}
	high := &types.Article{
		Title:             "Israeli airstrikes kill dozens in Gaza City overnight",
		URL:               "https://high.example/story",
		SourceCredibility: 0.95,
		PublishedAt:       older,
	}

	out := d.Dedupe([]*types.Article{low, high})
	if len(out) != 1 {
		t.Fatalf("Dedupe returned %d articles, want 1", len(out))
	}
	if out[0].URL != high.URL {
		t.Fatalf("Dedupe kept %q, want the higher-credibility source", out[0].URL)
	}
}

func TestDedupeNearDuplicateTieBreaksOnRecency(t *testing.T) {
	d := New(nil)

	older := &types.Article{
		Title:             "Israeli airstrikes kill dozens in Gaza City",
		URL:               "https://a.example/story",
		SourceCredibility: 0.9,
		PublishedAt:       time.Now().Add(-5 * time.Hour),
	}
	newer := &types.Article{
		Title:             "Israeli airstrikes kill dozens in Gaza City overnight",
		URL:               "https://b.example/story",
		SourceCredibility: 0.9,
		PublishedAt:       time.Now().Add(-1 * time.Hour),
	}

	out := d.Dedupe([]*types.Article{older, newer})
	if len(out) != 1 {
		t.Fatalf("Dedupe returned %d articles, want 1", len(out))
	}
	if out[0].URL != newer.URL {
		t.Fatalf("Dedupe kept %q, want the more recent article", out[0].URL)
	}
}

func TestDedupeDistinctStoriesSurvive(t *testing.T) {
	d := New(nil)

	articles := []*types.Article{
		{Title: "Ceasefire talks resume in Cairo", URL: "https://a.example/1"},
		{Title: "Hospital supplies running out in Rafah", URL: "https://b.example/2"},
	}

	if out := d.Dedupe(articles); len(out) != 2 {
		t.Fatalf("Dedupe returned %d articles, want 2", len(out))
	}
}

func TestTitleSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{
			"Israeli airstrikes kill dozens in Gaza City",
			"Israeli airstrikes kill dozens in Gaza City overnight",
			6.0 / 7.0,
		},
		{
			"Ceasefire talks resume in Cairo",
			"Hospital supplies running out in Rafah",
			0,
		},
		{"", "anything here", 0},
	}

	for _, tt := range tests {
		got := TitleSimilarity(tt.a, tt.b)
		if got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("TitleSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestNormalizeTitle(t *testing.T) {
	got := NormalizeTitle("  BREAKING: Gaza -- talks 'resume'!  ")
	want := "breaking gaza talks resume"
	if got != want {
		t.Fatalf("NormalizeTitle = %q, want %q", got, want)
	}
}

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://EXAMPLE.com/Story/", "https://example.com/Story"},
		{"https://example.com/story?utm_source=rss&id=7", "https://example.com/story?id=7"},
		{"https://example.com/story#section", "https://example.com/story"},
	}

	for _, tt := range tests {
		if got := CanonicalURL(tt.in); got != tt.want {
			t.Errorf("CanonicalURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
