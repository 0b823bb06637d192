package scraper

import "strings"

// sanitizeText collapses runs of whitespace into single spaces and trims.
func sanitizeText(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(text), " ")
}
