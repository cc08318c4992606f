// Package classify derives cheap relevance heuristics from chunk text and
// source metadata: a navigation flag and an importance weight. Both are
// computed once at build time and persisted with the chunk.
package classify

import (
	"strings"

	"github.com/wovenhouse/support-rag/internal/corpus"
)

// navigationKeywords is the canonical wayfinding vocabulary. The same list
// classifies chunks at build time and queries at retrieval time.
var navigationKeywords = []string{
	"navigation", "menu", "sitemap",
	"find", "locate", "page", "link",
	"go to", "visit", "browse", "section",
	"homepage", "header", "footer", "sidebar", "navbar",
	"route", "path",
	"measurements", "measure", "sizing", "size",
	"account icon",
}

// navigationSourceMarkers flag documents whose filename or location is
// itself navigational.
var navigationSourceMarkers = []string{"nav", "menu", "sitemap"}

// importantCategories get a flat importance bonus.
var importantCategories = map[string]bool{
	"faq":      true,
	"help":     true,
	"guide":    true,
	"tutorial": true,
}

// longChunkThreshold is the text length above which a chunk earns a small
// importance bonus.
const longChunkThreshold = 500

// IsNavigationContent reports whether a chunk concerns wayfinding rather
// than content substance. It is a pure function of the chunk text and its
// source metadata.
func IsNavigationContent(text string, meta corpus.Metadata) bool {
	source := strings.ToLower(meta.Source)
	for _, marker := range navigationSourceMarkers {
		if strings.Contains(source, marker) {
			return true
		}
	}

	if containsAnyKeyword(text) {
		return true
	}

	if strings.Contains(strings.ToLower(meta.Extra["tags"]), "navigation") {
		return true
	}
	if strings.EqualFold(meta.Extra["type"], "navigation") {
		return true
	}
	return strings.EqualFold(meta.Category, "navigation")
}

// CalculateImportance computes the chunk's importance weight. The base is
// 1.0 and bonuses only add, so the result is never below 1.
func CalculateImportance(text string, meta corpus.Metadata) float64 {
	score := 1.0
	if IsNavigationContent(text, meta) {
		score += 2
	}
	if importantCategories[strings.ToLower(meta.Category)] {
		score += 1
	}
	if len(text) > longChunkThreshold {
		score += 0.5
	}
	return score
}

// IsNavigationQuery reports whether a user query has navigation intent,
// using the same keyword vocabulary as chunk classification.
func IsNavigationQuery(query string) bool {
	return containsAnyKeyword(query)
}

func containsAnyKeyword(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range navigationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
