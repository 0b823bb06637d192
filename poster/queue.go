package poster

import (
	"math"
	"sort"
	"strings"
	"time"

	"newswatch/sources"
	"newswatch/types"
)

// QueueItem is one pending post with its formatted message and computed
// priority.
type QueueItem struct {
	Article    *types.Article
	Analysis   *types.Analysis
	Message    string
	Priority   int
	EnqueuedAt time.Time
}

// PublishQueue is a bounded priority queue of pending posts. When the cap is
// exceeded the lowest-priority item is discarded, so a late high-priority
// arrival can displace an earlier low-priority one. Not safe for concurrent
// use on its own; the AutoPoster serializes all access.
type PublishQueue struct {
	items []*QueueItem
	max   int
}

// NewQueue creates a queue bounded at the given capacity.
func NewQueue(max int) *PublishQueue {
	return &PublishQueue{max: max}
}

// Push inserts an item, keeping the queue ordered by descending priority and
// trimming the tail past the cap.
func (q *PublishQueue) Push(item *QueueItem) {
	q.items = append(q.items, item)
	sort.SliceStable(q.items, func(i, j int) bool {
		return q.items[i].Priority > q.items[j].Priority
	})
	if len(q.items) > q.max {
		q.items = q.items[:q.max]
	}
}

// Pop removes and returns the highest-priority item, or nil when empty.
func (q *PublishQueue) Pop() *QueueItem {
	if len(q.items) == 0 {
		return nil
	}
	item := q.items[0]
	q.items = q.items[1:]
	return item
}

// Contains reports whether an item for the URL is already queued.
func (q *PublishQueue) Contains(url string) bool {
	for _, item := range q.items {
		if item.Article.URL == url {
			return true
		}
	}
	return false
}

// Len reports the number of queued items.
func (q *PublishQueue) Len() int {
	return len(q.items)
}

// Items returns a snapshot of the queue in priority order.
func (q *PublishQueue) Items() []*QueueItem {
	out := make([]*QueueItem, len(q.items))
	copy(out, q.items)
	return out
}

// CalculatePriority ranks a pending post. The composite trust score dominates,
// with additive bumps for urgent vocabulary in the title, freshness, and a
// fully verified assessment.
func CalculatePriority(article *types.Article, analysis *types.Analysis, now time.Time) int {
	score := analysis.FinalScore * 50

	title := strings.ToLower(article.Title)
	for _, kw := range sources.HighPriorityKeywords {
		if strings.Contains(title, kw) {
			score += 10
		}
	}

	if !article.PublishedAt.IsZero() {
		age := now.Sub(article.PublishedAt)
		switch {
		case age < 6*time.Hour:
			score += 20
		case age < 24*time.Hour:
			score += 10
		}
	}

	if analysis.OverallAssessment == types.AssessmentVerified {
		score += 15
	}

	return int(math.Round(score))
}
