package scraper

import (
	"fmt"
	"log"
	"sync"
	"time"

	"newswatch/config"
	"newswatch/types"

	readability "github.com/go-shiori/go-readability"
)

const extractorTimeout = 30 * time.Second

// ExtractAllContent fetches full body text for articles that arrived without
// one (page-scraped candidates) using a worker pool. Failures are recorded on
// the article and do not stop the batch.
func ExtractAllContent(articles []*types.Article) {
	var wg sync.WaitGroup
	articleChan := make(chan *types.Article, len(articles))

	for i := 0; i < config.ExtractWorkers; i++ {
		go func(workerID int) {
			for article := range articleChan {
				if err := extractContent(article); err != nil {
					article.ExtractionError = err.Error()
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, article.URL, err)
				}
				wg.Done()
			}
		}(i)
	}

	for _, article := range articles {
		if article.Content != "" {
			continue
		}
		wg.Add(1)
		articleChan <- article
	}

	wg.Wait()
	close(articleChan)
}

func extractContent(article *types.Article) error {
	if article.URL == "" {
		return fmt.Errorf("article URL is empty")
	}

	extracted, err := readability.FromURL(article.URL, extractorTimeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}

	article.Content = sanitizeText(extracted.TextContent)
	log.Printf("✓ Extracted: %s", article.Title)
	return nil
}
