package poster

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"newswatch/config"
	"newswatch/types"
)

// AutoPoster manages the publish queue and the scheduled drain. One post at
// most leaves per drain slot, bounded by a daily cap that resets on the first
// drain of each calendar date. The mutex guards the queue and posting state;
// the ingestion cycle enqueues while the drain job and API handlers read from
// their own goroutines.
type AutoPoster struct {
	mu        sync.Mutex
	queue     *PublishQueue
	publisher Publisher

	maxPerDay      int
	minCredibility float64

	dailyCount    int
	lastResetDate string
	halted        bool
}

// Config carries the operator-tunable posting limits.
type Config struct {
	MaxPerDay      int
	MinCredibility float64
}

// New creates an auto-poster. A nil publisher disables posting entirely;
// articles still queue so the API can expose what would have been posted.
func New(publisher Publisher, cfg Config) *AutoPoster {
	return &AutoPoster{
		queue:          NewQueue(config.MaxQueueSize),
		publisher:      publisher,
		maxPerDay:      cfg.MaxPerDay,
		minCredibility: cfg.MinCredibility,
	}
}

// Enqueue admits an analyzed article to the publish queue. Articles below the
// credibility floor or already queued are rejected.
func (p *AutoPoster) Enqueue(article *types.Article, analysis *types.Analysis) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if analysis.FinalScore < p.minCredibility {
		log.Printf("Skipping %q for posting: score %.2f below threshold %.2f",
			article.Title, analysis.FinalScore, p.minCredibility)
		return false
	}
	if p.queue.Contains(article.URL) {
		return false
	}

	item := &QueueItem{
		Article:    article,
		Analysis:   analysis,
		Message:    BuildMessage(article, analysis),
		Priority:   CalculatePriority(article, analysis, time.Now()),
		EnqueuedAt: time.Now(),
	}
	p.queue.Push(item)
	log.Printf("📤 Queued for posting (priority %d, queue %d): %s", item.Priority, p.queue.Len(), article.Title)
	return true
}

// Drain publishes the single highest-priority queued item, honoring the daily
// cap. A rate-limited publish aborts the slot without requeueing. A forbidden
// response halts auto-posting until the process restarts, since it signals a
// credential or app-permission problem no retry will fix.
func (p *AutoPoster) Drain(ctx context.Context, now time.Time) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.halted {
		log.Println("Auto-posting halted; skipping drain")
		return nil
	}

	today := now.Format("2006-01-02")
	if today != p.lastResetDate {
		p.lastResetDate = today
		p.dailyCount = 0
	}

	if p.dailyCount >= p.maxPerDay {
		log.Printf("Daily post limit reached (%d/%d); skipping drain", p.dailyCount, p.maxPerDay)
		return nil
	}

	item := p.queue.Pop()
	if item == nil {
		log.Println("Publish queue empty; nothing to post")
		return nil
	}

	if p.publisher == nil {
		log.Printf("No publisher configured; dropping queued post: %s", item.Article.Title)
		return nil
	}

	id, err := p.publisher.Publish(ctx, item.Message)
	switch {
	case errors.Is(err, ErrRateLimited):
		log.Println("⏳ Rate limited by platform; aborting this drain slot")
		return err
	case errors.Is(err, ErrForbidden):
		p.halted = true
		log.Printf("🚫 Publishing forbidden, halting auto-posting: %v", err)
		return err
	case err != nil:
		log.Printf("Publish failed for %q: %v", item.Article.Title, err)
		return fmt.Errorf("publish %q: %w", item.Article.Title, err)
	}

	p.dailyCount++
	log.Printf("✅ Posted %s (%d/%d today): %s", id, p.dailyCount, p.maxPerDay, item.Article.Title)
	return nil
}

// Halted reports whether auto-posting has been disabled by a forbidden
// response.
func (p *AutoPoster) Halted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.halted
}

// Status is a point-in-time snapshot of the posting machinery for the API.
type Status struct {
	QueueSize    int              `json:"queueSize"`
	DailyCount   int              `json:"dailyCount"`
	MaxPerDay    int              `json:"maxPerDay"`
	Halted       bool             `json:"halted"`
	NextPostTime time.Time        `json:"nextPostTime"`
	Queued       []QueuedSnapshot `json:"queued"`
}

// QueuedSnapshot summarizes one pending post.
type QueuedSnapshot struct {
	Title      string    `json:"title"`
	Source     string    `json:"source"`
	URL        string    `json:"url"`
	Priority   int       `json:"priority"`
	FinalScore float64   `json:"finalScore"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

// Status reports queue depth, today's usage and the next posting slot.
func (p *AutoPoster) Status(now time.Time) Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	items := p.queue.Items()
	queued := make([]QueuedSnapshot, 0, len(items))
	for _, item := range items {
		queued = append(queued, QueuedSnapshot{
			Title:      item.Article.Title,
			Source:     item.Article.SourceName,
			URL:        item.Article.URL,
			Priority:   item.Priority,
			FinalScore: item.Analysis.FinalScore,
			EnqueuedAt: item.EnqueuedAt,
		})
	}
	return Status{
		QueueSize:    p.queue.Len(),
		DailyCount:   p.dailyCount,
		MaxPerDay:    p.maxPerDay,
		Halted:       p.halted,
		NextPostTime: NextPostTime(now),
		Queued:       queued,
	}
}

// NextPostTime returns the next scheduled drain slot strictly after now.
func NextPostTime(now time.Time) time.Time {
	for _, hour := range config.PostingHours {
		slot := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
		if slot.After(now) {
			return slot
		}
	}
	next := now.AddDate(0, 0, 1)
	return time.Date(next.Year(), next.Month(), next.Day(), config.PostingHours[0], 0, 0, 0, now.Location())
}
