package deduplication

import (
	"log"
	"strings"
	"unicode"

	"newswatch/types"
)

// SimilarityThreshold is the token-overlap ratio above which two titles are
// considered the same story.
const SimilarityThreshold = 0.8

// Deduplicator collapses exact and near-duplicate candidates into one best
// representative per story. The optional RedisBloom filter adds a cross-cycle
// probable-duplicate fast path; when it is nil only the in-pool merge runs.
type Deduplicator struct {
	bloom *RedisBloom
}

// New creates a deduplicator. bloom may be nil.
func New(bloom *RedisBloom) *Deduplicator {
	return &Deduplicator{bloom: bloom}
}

// Dedupe performs the two-phase merge over the admitted pool:
//  1. exact collision on normalized title or canonical URL drops the second
//     occurrence;
//  2. near-duplicate titles (token overlap above the threshold) merge,
//     retaining the higher-credibility candidate, ties broken by the more
//     recent publish time.
//
// Chains of near-duplicates resolve pairwise, so the single best
// representative survives even when the endpoints of the chain are below the
// threshold relative to each other.
func (d *Deduplicator) Dedupe(articles []*types.Article) []*types.Article {
	seenTitles := make(map[string]bool)
	seenURLs := make(map[string]bool)

	var pool []*types.Article
	for _, a := range articles {
		title := NormalizeTitle(a.Title)
		url := CanonicalURL(a.URL)
		if title != "" && seenTitles[title] {
			continue
		}
		if url != "" && seenURLs[url] {
			continue
		}
		if title != "" {
			seenTitles[title] = true
		}
		if url != "" {
			seenURLs[url] = true
		}
		pool = append(pool, a)
	}

	var reps []*types.Article
	for _, candidate := range pool {
		merged := false
		for i, rep := range reps {
			if TitleSimilarity(candidate.Title, rep.Title) > SimilarityThreshold {
				if preferOver(candidate, rep) {
					reps[i] = candidate
				}
				merged = true
				break
			}
		}
		if !merged {
			reps = append(reps, candidate)
		}
	}

	return reps
}

// SeenBefore consults the optional bloom filter for a probable cross-cycle
// duplicate. Bloom failures degrade to "not seen" so the pipeline keeps going.
func (d *Deduplicator) SeenBefore(a *types.Article) bool {
	if d.bloom == nil {
		return false
	}
	exists, err := d.bloom.Exists(Fingerprint(a))
	if err != nil {
		log.Printf("Warning: bloom check failed: %v", err)
		return false
	}
	return exists
}

// Remember records the article in the bloom filter, if configured.
func (d *Deduplicator) Remember(a *types.Article) {
	if d.bloom == nil {
		return
	}
	if err := d.bloom.Add(Fingerprint(a)); err != nil {
		log.Printf("Warning: failed to add article to bloom filter: %v", err)
	}
}

// Close releases the bloom filter's connection.
func (d *Deduplicator) Close() error {
	if d.bloom == nil {
		return nil
	}
	return d.bloom.Close()
}

// preferOver reports whether a should replace b as the story representative:
// higher source credibility wins, ties go to the more recent article.
func preferOver(a, b *types.Article) bool {
	if a.SourceCredibility != b.SourceCredibility {
		return a.SourceCredibility > b.SourceCredibility
	}
	return a.PublishedAt.After(b.PublishedAt)
}

// NormalizeTitle lowercases, strips punctuation, and collapses whitespace.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// TitleSimilarity computes |intersection| / max(|tokensA|, |tokensB|) over
// distinct normalized title words longer than three characters.
func TitleSimilarity(a, b string) float64 {
	tokensA := titleTokens(a)
	tokensB := titleTokens(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	common := 0
	for tok := range tokensA {
		if tokensB[tok] {
			common++
		}
	}

	denom := len(tokensA)
	if len(tokensB) > denom {
		denom = len(tokensB)
	}
	return float64(common) / float64(denom)
}

func titleTokens(title string) map[string]bool {
	tokens := make(map[string]bool)
	for _, word := range strings.Fields(NormalizeTitle(title)) {
		if len(word) > 3 {
			tokens[word] = true
		}
	}
	return tokens
}
