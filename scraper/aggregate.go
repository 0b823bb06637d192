package scraper

import (
	"sort"

	"newswatch/config"
	"newswatch/types"
)

// Aggregate time-sorts the admitted pool newest-first and truncates it to a
// bounded size, capping the analysis cost of one cycle.
func Aggregate(articles []*types.Article) []*types.Article {
	sorted := make([]*types.Article, len(articles))
	copy(sorted, articles)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
	})

	if len(sorted) > config.MaxAggregated {
		sorted = sorted[:config.MaxAggregated]
	}
	return sorted
}
