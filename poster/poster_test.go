package poster

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"newswatch/types"
)

type fakePublisher struct {
	err      error
	calls    int
	messages []string
}

func (f *fakePublisher) Publish(_ context.Context, text string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	f.messages = append(f.messages, text)
	return fmt.Sprintf("post-%d", f.calls), nil
}

func queueArticle(i int) (*types.Article, *types.Analysis) {
	article := &types.Article{
		ID:          fmt.Sprintf("id-%d", i),
		Title:       fmt.Sprintf("Ceasefire development number %d", i),
		URL:         fmt.Sprintf("https://example.com/story-%d", i),
		SourceName:  "Test Wire",
		PublishedAt: time.Now().Add(-2 * time.Hour),
	}
	analysis := &types.Analysis{
		OverallAssessment: types.AssessmentVerified,
		CredibilityScore:  0.85,
		FinalScore:        0.85,
	}
	return article, analysis
}

func TestEnqueueRejectsBelowThreshold(t *testing.T) {
	p := New(&fakePublisher{}, Config{MaxPerDay: 5, MinCredibility: 0.7})

	article, analysis := queueArticle(1)
	analysis.FinalScore = 0.6

	if p.Enqueue(article, analysis) {
		t.Fatal("Enqueue admitted an article below the credibility floor")
	}
}

func TestEnqueueRejectsDuplicateURL(t *testing.T) {
	p := New(&fakePublisher{}, Config{MaxPerDay: 5, MinCredibility: 0.7})

	article, analysis := queueArticle(1)
	if !p.Enqueue(article, analysis) {
		t.Fatal("first Enqueue rejected")
	}
	if p.Enqueue(article, analysis) {
		t.Fatal("Enqueue admitted the same URL twice")
	}
}

func TestQueueCapEvictsLowestPriority(t *testing.T) {
	q := NewQueue(3)

	for i, prio := range []int{50, 30, 70} {
		article, analysis := queueArticle(i)
		q.Push(&QueueItem{Article: article, Analysis: analysis, Priority: prio})
	}

	article, analysis := queueArticle(99)
	q.Push(&QueueItem{Article: article, Analysis: analysis, Priority: 60})

	if q.Len() != 3 {
		t.Fatalf("queue length = %d, want 3", q.Len())
	}
	prios := []int{}
	for _, item := range q.Items() {
		prios = append(prios, item.Priority)
	}
	want := []int{70, 60, 50}
	for i := range want {
		if prios[i] != want[i] {
			t.Fatalf("queue priorities = %v, want %v", prios, want)
		}
	}
}

func TestCalculatePriority(t *testing.T) {
	now := time.Now()
	article := &types.Article{
		Title:       "Breaking: Gaza ceasefire reached",
		PublishedAt: now.Add(-2 * time.Hour),
	}
	analysis := &types.Analysis{
		OverallAssessment: types.AssessmentVerified,
		FinalScore:        0.8,
	}

	// 0.8*50 + 3 title keywords (breaking, gaza, ceasefire) + 20 recency + 15
	// verified = 105.
	if got := CalculatePriority(article, analysis, now); got != 105 {
		t.Fatalf("CalculatePriority = %d, want 105", got)
	}
}

func TestDrainPublishesHighestPriorityFirst(t *testing.T) {
	pub := &fakePublisher{}
	p := New(pub, Config{MaxPerDay: 5, MinCredibility: 0.7})

	lowArticle, lowAnalysis := queueArticle(1)
	lowAnalysis.OverallAssessment = types.AssessmentPartiallyVerified
	lowAnalysis.FinalScore = 0.72
	highArticle, highAnalysis := queueArticle(2)
	highAnalysis.FinalScore = 0.95

	p.Enqueue(lowArticle, lowAnalysis)
	p.Enqueue(highArticle, highAnalysis)

	if err := p.Drain(context.Background(), time.Now()); err != nil {
		t.Fatalf("Drain failed: %v", err)
	}
	if pub.calls != 1 {
		t.Fatalf("publisher called %d times, want 1", pub.calls)
	}
	if got := p.Status(time.Now()); got.QueueSize != 1 || got.DailyCount != 1 {
		t.Fatalf("status after drain = %+v", got)
	}
	if q := p.queue.Items(); q[0].Article.URL != lowArticle.URL {
		t.Fatal("the lower-priority item did not remain queued")
	}
}

func TestDrainHonorsDailyCapAndResetsPerDate(t *testing.T) {
	pub := &fakePublisher{}
	p := New(pub, Config{MaxPerDay: 1, MinCredibility: 0.7})

	for i := 0; i < 3; i++ {
		article, analysis := queueArticle(i)
		p.Enqueue(article, analysis)
	}

	day1 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	if err := p.Drain(context.Background(), day1); err != nil {
		t.Fatalf("first drain failed: %v", err)
	}
	if err := p.Drain(context.Background(), day1.Add(4*time.Hour)); err != nil {
		t.Fatalf("capped drain errored: %v", err)
	}
	if pub.calls != 1 {
		t.Fatalf("publisher called %d times on day one, want 1", pub.calls)
	}

	if err := p.Drain(context.Background(), day2); err != nil {
		t.Fatalf("next-day drain failed: %v", err)
	}
	if pub.calls != 2 {
		t.Fatalf("publisher called %d times after date change, want 2", pub.calls)
	}
}

func TestDrainRateLimitAbortsWithoutRequeue(t *testing.T) {
	pub := &fakePublisher{err: ErrRateLimited}
	p := New(pub, Config{MaxPerDay: 5, MinCredibility: 0.7})

	article, analysis := queueArticle(1)
	p.Enqueue(article, analysis)

	err := p.Drain(context.Background(), time.Now())
	if err == nil {
		t.Fatal("Drain swallowed the rate limit error")
	}
	if p.queue.Len() != 0 {
		t.Fatal("rate-limited item was requeued")
	}
	if p.Halted() {
		t.Fatal("rate limiting halted auto-posting")
	}
}

func TestDrainForbiddenHaltsAutoPosting(t *testing.T) {
	pub := &fakePublisher{err: ErrForbidden}
	p := New(pub, Config{MaxPerDay: 5, MinCredibility: 0.7})

	for i := 0; i < 2; i++ {
		article, analysis := queueArticle(i)
		p.Enqueue(article, analysis)
	}

	if err := p.Drain(context.Background(), time.Now()); err == nil {
		t.Fatal("Drain swallowed the forbidden error")
	}
	if !p.Halted() {
		t.Fatal("forbidden response did not halt auto-posting")
	}

	if err := p.Drain(context.Background(), time.Now()); err != nil {
		t.Fatalf("halted drain returned error: %v", err)
	}
	if pub.calls != 1 {
		t.Fatalf("publisher called %d times while halted, want 1", pub.calls)
	}
}

func TestEnqueueConcurrentWithDrainAndStatus(t *testing.T) {
	pub := &fakePublisher{}
	p := New(pub, Config{MaxPerDay: 100, MinCredibility: 0.7})

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			article, analysis := queueArticle(i)
			p.Enqueue(article, analysis)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = p.Drain(context.Background(), time.Now())
			_ = p.Status(time.Now())
			_ = p.Halted()
		}
	}()
	wg.Wait()

	status := p.Status(time.Now())
	if status.QueueSize > 20 {
		t.Fatalf("queue grew past its cap under concurrency: %d", status.QueueSize)
	}
	if status.DailyCount != pub.calls {
		t.Fatalf("daily count %d disagrees with publishes %d", status.DailyCount, pub.calls)
	}
}

func TestNextPostTime(t *testing.T) {
	morning := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	next := NextPostTime(morning)
	if next.Hour() != 12 || next.Day() != 1 {
		t.Fatalf("NextPostTime(09:30) = %v, want 12:00 same day", next)
	}

	late := time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)
	next = NextPostTime(late)
	if next.Hour() != 8 || next.Day() != 2 {
		t.Fatalf("NextPostTime(21:00) = %v, want 08:00 next day", next)
	}
}
