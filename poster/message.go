package poster

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"newswatch/config"
	"newswatch/types"
)

// BuildMessage renders the public post for an analyzed article. The output
// always fits the platform character limit; when it would not, hashtags are
// dropped first, then the title is shortened. The credibility figure and the
// article URL survive every truncation stage.
func BuildMessage(article *types.Article, analysis *types.Analysis) string {
	credPct := int(math.Round(analysis.CredibilityScore * 100))
	assessment := analysis.OverallAssessment
	icon, warning := statusBadge(assessment, credPct)

	title := article.Title
	maxTitle := 200 - utf8.RuneCountInString(warning) - 50
	if utf8.RuneCountInString(title) > maxTitle {
		title = truncateRunes(title, maxTitle) + "..."
	}

	hashtags := Hashtags(article, analysis)

	full := fmt.Sprintf("%s %s%s\n\n🔍 Credibility: %d%% (%s)\n📰 Source: %s\n\n%s\n\n🔗 %s",
		icon, warning, title, credPct, assessment, article.SourceName,
		strings.Join(hashtags, " "), article.URL)
	if utf8.RuneCountInString(full) <= config.TweetLimit {
		return full
	}

	// Drop hashtags and compress the labels.
	basic := fmt.Sprintf("%s %s%s\n\n🔍 %d%%\n📰 %s\n\n🔗 %s",
		icon, warning, title, credPct, article.SourceName, article.URL)
	if utf8.RuneCountInString(basic) <= config.TweetLimit {
		return basic
	}

	// Last resort: shorten the title to whatever room is left after the
	// badge, credibility figure and URL.
	skeleton := fmt.Sprintf("%s %s\n\n🔍 %d%%\n🔗 %s", icon, warning, credPct, article.URL)
	available := config.TweetLimit - utf8.RuneCountInString(skeleton)
	if available > 3 {
		title = truncateRunes(article.Title, available-3) + "..."
	} else {
		title = ""
	}
	return fmt.Sprintf("%s %s%s\n\n🔍 %d%%\n🔗 %s", icon, warning, title, credPct, article.URL)
}

// statusBadge picks the leading icon and warning prefix from the assessment
// and credibility percentage.
func statusBadge(assessment string, credPct int) (icon, warning string) {
	switch {
	case assessment == types.AssessmentMisleading || credPct < 30:
		return "🚨", "VERIFY: "
	case assessment == types.AssessmentDisputed || credPct < 50:
		return "⚠️", "CAUTION: "
	case credPct >= 80:
		return "✅", "VERIFIED: "
	default:
		return "📋", ""
	}
}

// Hashtags selects up to four topical tags from the title plus the
// verification tags.
func Hashtags(article *types.Article, analysis *types.Analysis) []string {
	title := strings.ToLower(article.Title)
	var tags []string

	topical := []struct {
		needle string
		tag    string
	}{
		{"gaza", "#Gaza"},
		{"palestine", "#Palestine"},
		{"israel", "#Israel"},
		{"ceasefire", "#Ceasefire"},
		{"hostage", "#Hostages"},
		{"humanitarian", "#HumanitarianAid"},
		{"aid", "#HumanitarianAid"},
		{"hospital", "#HealthCare"},
		{"medical", "#HealthCare"},
	}
	// Topical tags are capped at two so the verification tags below always
	// fit within the four-tag limit.
	seen := make(map[string]bool)
	for _, t := range topical {
		if len(tags) == 2 {
			break
		}
		if strings.Contains(title, t.needle) && !seen[t.tag] {
			seen[t.tag] = true
			tags = append(tags, t.tag)
		}
	}

	tags = append(tags, "#FactCheck")
	if analysis.OverallAssessment == types.AssessmentVerified {
		tags = append(tags, "#Verified")
	} else if analysis.CredibilityScore < 0.5 {
		tags = append(tags, "#VerifyBeforeSharing")
	}
	return tags
}

func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
