package store

import (
	"sync"

	"newswatch/types"
)

// ResultStore holds the process-lifetime pipeline state: a bounded ring of
// completed analyses and a bounded set of processed article URLs. Both caps
// are design properties, not incidental trims. The mutex covers all access;
// cron jobs and API handlers touch the store from separate goroutines.
type ResultStore struct {
	mu sync.Mutex

	results    []*types.Result
	maxResults int

	processed     map[string]bool
	processedFIFO []string
	maxProcessed  int
}

// New creates a store with the given capacities.
func New(maxResults, maxProcessed int) *ResultStore {
	return &ResultStore{
		results:      make([]*types.Result, 0, maxResults),
		maxResults:   maxResults,
		processed:    make(map[string]bool),
		maxProcessed: maxProcessed,
	}
}

// AddResult appends a completed analysis, evicting the oldest entry when the
// ring is full.
func (s *ResultStore) AddResult(r *types.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, r)
	if len(s.results) > s.maxResults {
		s.results = s.results[len(s.results)-s.maxResults:]
	}
}

// Latest returns up to n most recent results, newest-first. The returned
// slice is a copy; callers may not mutate store state through it.
func (s *ResultStore) Latest(n int) []*types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n > len(s.results) {
		n = len(s.results)
	}
	out := make([]*types.Result, 0, n)
	for i := len(s.results) - 1; i >= len(s.results)-n; i-- {
		out = append(out, s.results[i])
	}
	return out
}

// ByURL returns the most recent stored result for an article URL, or nil.
func (s *ResultStore) ByURL(url string) *types.Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.results) - 1; i >= 0; i-- {
		if s.results[i].Article.URL == url {
			return s.results[i]
		}
	}
	return nil
}

// Len reports the number of stored results.
func (s *ResultStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

// MarkProcessed records a URL in the de-dup set, evicting the oldest entry
// once the cap is reached.
func (s *ResultStore) MarkProcessed(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.processed[url] {
		return
	}
	s.processed[url] = true
	s.processedFIFO = append(s.processedFIFO, url)
	if len(s.processedFIFO) > s.maxProcessed {
		oldest := s.processedFIFO[0]
		s.processedFIFO = s.processedFIFO[1:]
		delete(s.processed, oldest)
	}
}

// WasProcessed reports whether the URL has already been through analysis.
func (s *ResultStore) WasProcessed(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processed[url]
}
