package scraper

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"newswatch/config"
	"newswatch/sources"
	"newswatch/types"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// Fetcher collects candidate articles per source, trying the RSS feed first
// and falling back to scraping the source's landing page when the feed runs
// dry. A fetch never fails outward: transport errors produce an empty result
// for that source only.
type Fetcher struct {
	parser *gofeed.Parser
	client *http.Client
	delay  time.Duration
}

// NewFetcher builds a fetcher with the shared HTTP timeout and user agent.
func NewFetcher() *Fetcher {
	client := &http.Client{Timeout: config.HTTPTimeout}
	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = config.UserAgent

	return &Fetcher{
		parser: parser,
		client: client,
		delay:  config.RequestDelay,
	}
}

// FetchAll walks the catalog sequentially, admitting candidates through the
// relevance filter. The inter-source delay bounds our outbound request rate.
func (f *Fetcher) FetchAll(ctx context.Context, catalog []sources.Source) []*types.Article {
	var admitted []*types.Article

	for i := range catalog {
		src := &catalog[i]
		log.Printf("Scraping %s...", src.Name)

		candidates := f.FetchSource(ctx, src)
		kept := Filter(candidates, src)
		admitted = append(admitted, kept...)
		log.Printf("Found %d relevant articles from %s", len(kept), src.Name)

		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return admitted
		}
	}

	return admitted
}

// FetchSource retrieves candidates for one source. Errors are logged and
// converted into an empty result so a bad source never aborts the cycle.
func (f *Fetcher) FetchSource(ctx context.Context, src *sources.Source) []*types.Article {
	var candidates []*types.Article

	if src.FeedURL != "" {
		feedArticles, err := f.fetchFeed(ctx, src)
		if err != nil {
			log.Printf("Feed fetch failed for %s: %v", src.Name, err)
		} else {
			candidates = append(candidates, feedArticles...)
		}
	}

	// If the feed yielded too few recent items, also scrape the landing page.
	if countRecent(candidates, src) < config.MinFeedArticles && src.PageURL != "" {
		pageArticles, err := f.scrapePage(ctx, src)
		if err != nil {
			log.Printf("Page scrape failed for %s: %v", src.Name, err)
		} else {
			candidates = append(candidates, pageArticles...)
		}
	}

	return candidates
}

func (f *Fetcher) fetchFeed(ctx context.Context, src *sources.Source) ([]*types.Article, error) {
	feed, err := f.parser.ParseURLWithContext(src.FeedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	articles := make([]*types.Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		content := item.Description
		if content == "" {
			content = item.Content
		}

		articles = append(articles, &types.Article{
			ID:                types.GenerateID(item.Link),
			Title:             sanitizeText(item.Title),
			URL:               item.Link,
			Content:           sanitizeText(content),
			PublishedAt:       publishedAt,
			FetchedAt:         time.Now(),
			SourceID:          src.ID,
			SourceName:        src.Name,
			SourceCredibility: src.Credibility,
		})
	}

	return articles, nil
}

// scrapePage extracts anchor texts matching the keyword vocabulary from the
// source's landing page. Scraped candidates carry no body content and a
// now-timestamp; relevance scoring treats them like any other candidate.
func (f *Fetcher) scrapePage(ctx context.Context, src *sources.Source) ([]*types.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.PageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, src.PageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	var articles []*types.Article
	doc.Find("a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		text := strings.TrimSpace(sel.Text())
		if !ok || text == "" || !ContainsKeyword(text) {
			return true
		}

		fullURL := href
		if !strings.HasPrefix(href, "http") {
			fullURL = strings.TrimRight(src.PageURL, "/") + "/" + strings.TrimLeft(href, "/")
		}
		if !isValidURL(fullURL) {
			return true
		}

		articles = append(articles, &types.Article{
			ID:                types.GenerateID(fullURL),
			Title:             sanitizeText(text),
			URL:               fullURL,
			Content:           "",
			PublishedAt:       time.Now(),
			FetchedAt:         time.Now(),
			SourceID:          src.ID,
			SourceName:        src.Name,
			SourceCredibility: src.Credibility,
		})
		return len(articles) < config.MaxScrapedPerSource
	})

	return articles, nil
}

func countRecent(articles []*types.Article, src *sources.Source) int {
	n := 0
	for _, a := range articles {
		if withinRecencyWindow(a, src.Priority) {
			n++
		}
	}
	return n
}

func isValidURL(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}
