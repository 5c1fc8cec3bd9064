package ai

import "strings"

// placeholderMarkers flag generated text that leaked template scaffolding.
var placeholderMarkers = []string{"[", "]", "TODO", "FIXME", "XXX"}

// FilterCandidates applies the post-generation quality gate, preserving
// order and never mutating survivors: candidates below the relevance
// threshold, with fewer than 3 title words or 10 summary words, or with
// placeholder markers in title or summary are dropped.
func FilterCandidates(items []Candidate, minRelevance float64) []Candidate {
	var kept []Candidate
	for _, item := range items {
		if item.RelevanceScore < minRelevance {
			continue
		}
		if len(strings.Fields(item.Title)) < 3 {
			continue
		}
		if len(strings.Fields(item.Summary)) < 10 {
			continue
		}
		if hasPlaceholder(item.Title) || hasPlaceholder(item.Summary) {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func hasPlaceholder(s string) bool {
	for _, marker := range placeholderMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
