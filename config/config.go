package config

import (
	"os"
	"strconv"
	"time"
)

// Scraping constants
const (
	// HTTPTimeout bounds every outbound fetch; there is no explicit
	// cancellation beyond it.
	HTTPTimeout = 10 * time.Second

	// RequestDelay is the fixed pause between per-source fetches. This is
	// backpressure toward upstream providers, not a tuning knob.
	RequestDelay = 1 * time.Second

	// UserAgent sent on all scraping requests.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// MinFeedArticles is the floor below which the page-scrape fallback kicks in.
	MinFeedArticles = 3

	// MaxScrapedPerSource caps candidates taken from a scraped page.
	MaxScrapedPerSource = 10
)

// Relevance and recency constants
const (
	// PriorityRecencyWindow is the admission window for priority sources.
	PriorityRecencyWindow = 72 * time.Hour

	// DefaultRecencyWindow is the admission window for everything else.
	DefaultRecencyWindow = 7 * 24 * time.Hour

	// RelevanceThreshold is the strict admission floor: a score equal to it
	// is rejected.
	RelevanceThreshold = 0.3
)

// Pipeline constants
const (
	// MaxAggregated caps the admitted pool to bound downstream analysis cost.
	MaxAggregated = 50

	// MaxContentLength bounds the article text sent to the model.
	MaxContentLength = 3000

	// ModelDelay is the fixed pause after each model call.
	ModelDelay = 2 * time.Second

	// MaxResults is the capacity of the in-memory results ring buffer.
	MaxResults = 100

	// MaxProcessedURLs caps the processed-URL set.
	MaxProcessedURLs = 200

	// ExtractWorkers sizes the content-extraction worker pool.
	ExtractWorkers = 5
)

// Posting constants
const (
	// MaxQueueSize caps the publish queue; lowest-priority overflow is trimmed.
	MaxQueueSize = 20

	// TweetLimit is the platform character limit.
	TweetLimit = 280
)

// PostingHours are the fixed daily publish slots (local time).
var PostingHours = []int{8, 12, 16, 20}

// GetEnvOrDefault returns the value of an environment variable or a default value.
func GetEnvOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// GetEnvInt returns an integer environment variable or a default value.
func GetEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

// GetEnvFloat returns a float environment variable or a default value.
func GetEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
