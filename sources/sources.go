package sources

// Selectors holds the per-source CSS selectors used when scraping full
// article pages.
type Selectors struct {
	Title   string
	Content string
	Date    string
	Author  string
}

// Source is the static metadata for one news feed. Loaded once, never mutated.
type Source struct {
	ID          string
	Name        string
	FeedURL     string
	PageURL     string
	Credibility float64 // 0-1
	Bias        string
	Priority    bool // breaking-news source, gets the tighter recency window
	Selectors   Selectors
}

// Catalog lists every source the pipeline ingests from.
var Catalog = []Source{
	{
		ID:          "aljazeera",
		Name:        "Al Jazeera English",
		FeedURL:     "https://www.aljazeera.com/xml/rss/all.xml",
		PageURL:     "https://www.aljazeera.com",
		Credibility: 0.9,
		Bias:        "slight-left",
		Priority:    true,
		Selectors:   Selectors{Title: "h1", Content: ".wysiwyg", Date: "time", Author: ".article-author"},
	},
	{
		ID:          "aljazeera-palestine",
		Name:        "Al Jazeera Palestine",
		FeedURL:     "https://www.aljazeera.com/where/palestine/rss.xml",
		PageURL:     "https://www.aljazeera.com/where/palestine/",
		Credibility: 0.9,
		Bias:        "slight-left",
		Priority:    true,
		Selectors:   Selectors{Title: "h1", Content: ".wysiwyg", Date: "time", Author: ".article-author"},
	},
	{
		ID:          "bbc",
		Name:        "BBC News Middle East",
		FeedURL:     "https://feeds.bbci.co.uk/news/world/middle_east/rss.xml",
		PageURL:     "https://www.bbc.com",
		Credibility: 0.95,
		Bias:        "center-left",
		Priority:    true,
		Selectors:   Selectors{Title: `[data-component="headline"]`, Content: `[data-component="text-block"]`, Date: "time", Author: ".ssrcss-68pt20-Text-TextContributorName"},
	},
	{
		ID:          "reuters",
		Name:        "Reuters Middle East",
		FeedURL:     "https://www.reuters.com/arc/outboundfeeds/rss/category/world/middle-east/",
		PageURL:     "https://www.reuters.com",
		Credibility: 0.95,
		Bias:        "center",
		Priority:    true,
		Selectors:   Selectors{Title: `[data-testid="Heading"]`, Content: `[data-component="ArticleBody"]`, Date: "time", Author: `[data-module="ArticleByline"]`},
	},
	{
		ID:          "ap",
		Name:        "Associated Press",
		FeedURL:     "https://apnews.com/index.rss",
		PageURL:     "https://apnews.com",
		Credibility: 0.93,
		Bias:        "center",
		Priority:    true,
		Selectors:   Selectors{Title: "h1", Content: ".RichTextStoryBody", Date: `[data-key="timestamp"]`, Author: ".Component-bylines"},
	},
	{
		ID:          "middleeasteye",
		Name:        "Middle East Eye",
		FeedURL:     "https://www.middleeasteye.net/rss.xml",
		PageURL:     "https://www.middleeasteye.net",
		Credibility: 0.8,
		Bias:        "left",
		Selectors:   Selectors{Title: "h1.article-title", Content: ".field-body", Date: ".date-published", Author: ".author-name"},
	},
	{
		ID:          "guardian",
		Name:        "The Guardian World",
		FeedURL:     "https://www.theguardian.com/world/rss",
		PageURL:     "https://www.theguardian.com",
		Credibility: 0.85,
		Bias:        "left",
		Selectors:   Selectors{Title: `[data-gu-name="headline"]`, Content: ".dcr-1eu861s", Date: "time", Author: `[data-gu-name="meta"]`},
	},
	{
		ID:          "guardian-israel-palestine",
		Name:        "The Guardian Israel-Palestine",
		FeedURL:     "https://www.theguardian.com/world/israel-and-the-palestinians/rss",
		PageURL:     "https://www.theguardian.com",
		Credibility: 0.85,
		Bias:        "left",
		Priority:    true,
		Selectors:   Selectors{Title: `[data-gu-name="headline"]`, Content: ".dcr-1eu861s", Date: "time", Author: `[data-gu-name="meta"]`},
	},
	{
		ID:          "timesofisrael",
		Name:        "Times of Israel",
		FeedURL:     "https://www.timesofisrael.com/feed/",
		PageURL:     "https://www.timesofisrael.com",
		Credibility: 0.8,
		Bias:        "center-right",
		Selectors:   Selectors{Title: "h1", Content: ".entry-content", Date: ".entry-date", Author: ".entry-author"},
	},
	{
		ID:          "palestinechronicle",
		Name:        "Palestine Chronicle",
		FeedURL:     "https://www.palestinechronicle.com/feed/",
		PageURL:     "https://www.palestinechronicle.com",
		Credibility: 0.85,
		Bias:        "pro-palestine",
		Priority:    true,
		Selectors:   Selectors{Title: "h1.entry-title", Content: ".entry-content", Date: ".entry-date", Author: ".entry-author"},
	},
}

// ByID returns the catalog entry for a source id, or nil.
func ByID(id string) *Source {
	for i := range Catalog {
		if Catalog[i].ID == id {
			return &Catalog[i]
		}
	}
	return nil
}

// ReputableNames returns names of sources with credibility at or above the
// given floor, used when building the fact-check prompt.
func ReputableNames(minCredibility float64) []string {
	var names []string
	for _, s := range Catalog {
		if s.Credibility >= minCredibility {
			names = append(names, s.Name)
		}
	}
	return names
}
