package pipeline

import (
	"context"
	"log"
	"sync"
	"time"

	"newswatch/common"
	"newswatch/deduplication"
	"newswatch/factcheck"
	"newswatch/kafka"
	"newswatch/poster"
	"newswatch/scraper"
	"newswatch/social"
	"newswatch/sources"
	"newswatch/store"
	"newswatch/types"
)

// Pipeline wires the full fetch, dedupe, analyze and enqueue cycle. Archive
// and events are optional sinks; everything else is required.
type Pipeline struct {
	fetcher *scraper.Fetcher
	dedup   *deduplication.Deduplicator
	checker *factcheck.FactChecker
	social  *social.Scorer
	poster  *poster.AutoPoster
	store   *store.ResultStore
	archive *common.AnalysisArchive
	events  *kafka.Producer
	catalog []sources.Source
	running sync.Mutex
}

// Options collects the pipeline's collaborators. Archive and Events may be nil.
type Options struct {
	Fetcher *scraper.Fetcher
	Dedup   *deduplication.Deduplicator
	Checker *factcheck.FactChecker
	Social  *social.Scorer
	Poster  *poster.AutoPoster
	Store   *store.ResultStore
	Archive *common.AnalysisArchive
	Events  *kafka.Producer
	Catalog []sources.Source
}

// New assembles a pipeline.
func New(opts Options) *Pipeline {
	return &Pipeline{
		fetcher: opts.Fetcher,
		dedup:   opts.Dedup,
		checker: opts.Checker,
		social:  opts.Social,
		poster:  opts.Poster,
		store:   opts.Store,
		archive: opts.Archive,
		events:  opts.Events,
		catalog: opts.Catalog,
	}
}

// RunCycle executes one full ingest-and-analyze cycle. Overlapping cycles are
// collapsed: if one is already running, the new invocation returns
// immediately.
func (p *Pipeline) RunCycle(ctx context.Context) {
	if !p.running.TryLock() {
		log.Println("Cycle already in progress; skipping")
		return
	}
	defer p.running.Unlock()

	started := time.Now()
	log.Println("🔄 Starting fact-check cycle")

	articles := p.fetcher.FetchAll(ctx, p.catalog)
	log.Printf("Fetched %d relevant articles from %d sources", len(articles), len(p.catalog))

	articles = p.dedup.Dedupe(articles)
	articles = scraper.Aggregate(articles)
	scraper.ExtractAllContent(articles)

	analyzed := 0
	for _, article := range articles {
		if ctx.Err() != nil {
			log.Println("Cycle canceled")
			return
		}
		if p.store.WasProcessed(article.URL) {
			continue
		}
		if p.dedup.SeenBefore(article) {
			p.store.MarkProcessed(article.URL)
			continue
		}

		verification := p.social.Corroborate(ctx, article)
		analysis := p.checker.Analyze(ctx, article, verification)

		result := &types.Result{Article: article, Analysis: analysis}
		p.store.AddResult(result)
		p.store.MarkProcessed(article.URL)
		p.dedup.Remember(article)
		analyzed++

		p.emit(ctx, result)
		p.poster.Enqueue(article, analysis)
	}

	log.Printf("✅ Cycle complete: %d analyzed, %d total results, took %s",
		analyzed, p.store.Len(), time.Since(started).Round(time.Second))
}

// FetchCandidates runs the ingest stages only: fetch, filter, dedupe and
// aggregate, without analysis. Used by the live news endpoint.
func (p *Pipeline) FetchCandidates(ctx context.Context) []*types.Article {
	articles := p.fetcher.FetchAll(ctx, p.catalog)
	articles = p.dedup.Dedupe(articles)
	return scraper.Aggregate(articles)
}

// AnalyzeOne runs the analysis stages for a single externally supplied
// article, bypassing fetch and dedup. Used by the on-demand API endpoint.
func (p *Pipeline) AnalyzeOne(ctx context.Context, article *types.Article) *types.Analysis {
	if article.ID == "" {
		article.ID = types.GenerateID(article.URL)
	}
	if article.FetchedAt.IsZero() {
		article.FetchedAt = time.Now()
	}

	verification := p.social.Corroborate(ctx, article)
	analysis := p.checker.Analyze(ctx, article, verification)

	result := &types.Result{Article: article, Analysis: analysis}
	p.store.AddResult(result)
	p.store.MarkProcessed(article.URL)
	p.emit(ctx, result)
	return analysis
}

// DrainQueue publishes one queued post. Called on the posting schedule.
func (p *Pipeline) DrainQueue(ctx context.Context) {
	if err := p.poster.Drain(ctx, time.Now()); err != nil {
		log.Printf("Drain finished with error: %v", err)
	}
}

// Store exposes the result store for the API layer.
func (p *Pipeline) Store() *store.ResultStore {
	return p.store
}

// Poster exposes the auto-poster for the API layer.
func (p *Pipeline) Poster() *poster.AutoPoster {
	return p.poster
}

// emit fans a completed result out to the optional sinks. Sink failures are
// logged and swallowed; they never affect the cycle.
func (p *Pipeline) emit(ctx context.Context, result *types.Result) {
	if p.archive != nil {
		if err := p.archive.Archive(ctx, result); err != nil {
			log.Printf("Archive failed for %q: %v", result.Article.Title, err)
		}
	}
	if p.events != nil {
		if err := p.events.PublishAnalysis(result); err != nil {
			log.Printf("Event publish failed for %q: %v", result.Article.Title, err)
		}
	}
}
