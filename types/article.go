package types

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Article represents a single candidate article collected from a news source.
type Article struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	URL               string    `json:"url"`
	Content           string    `json:"content"`
	PublishedAt       time.Time `json:"published_at"`
	FetchedAt         time.Time `json:"fetched_at"`
	SourceID          string    `json:"source_id"`
	SourceName        string    `json:"source_name"`
	SourceCredibility float64   `json:"source_credibility"`
	RelevanceScore    float64   `json:"relevance_score"`
	ExtractionError   string    `json:"extraction_error,omitempty"`
}

// GenerateID creates a unique ID from URL
func GenerateID(url string) string {
	hash := sha256.Sum256([]byte(url))
	return hex.EncodeToString(hash[:])[:16]
}
