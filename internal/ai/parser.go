package ai

import (
	"regexp"
	"strings"
)

// segment marker the prompt asks the model to emit before each item.
const segmentMarker = "NEWS ITEM:"

const minSegmentChars = 50

var (
	markerPattern     = regexp.MustCompile(`(?i)NEWS ITEM:\s*`)
	paragraphPattern  = regexp.MustCompile(`\n\n+|\d+\.\s*`)
	titlePrefixRegexp = regexp.MustCompile(`(?i)^(Title:|Headline:)\s*`)
)

// Draft is a partially-filled candidate produced by parsing alone: title,
// summary and content are set, category/tags/image are not. Segment keeps
// the original text block for metadata extraction.
type Draft struct {
	Title    string
	Summary  string
	Content  string
	Segment  string
	Fallback bool
}

// ParseDrafts turns a free-text completion into at most max drafts. The
// text is split on the segment marker when present, otherwise on blank-line
// runs and leading enumeration markers. Segments shorter than 50 characters
// are discarded. When nothing survives and at least one item was requested,
// exactly one low-signal fallback draft is synthesized so the pipeline
// always has something to validate.
func ParseDrafts(text string, max int) []Draft {
	var segments []string
	if strings.Contains(text, segmentMarker) {
		segments = markerPattern.Split(text, -1)
	} else {
		segments = paragraphPattern.Split(text, -1)
	}

	var drafts []Draft
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if len(segment) < minSegmentChars {
			continue
		}
		if len(drafts) >= max {
			break
		}
		drafts = append(drafts, draftFromSegment(segment))
	}

	if len(drafts) == 0 && max >= 1 {
		drafts = append(drafts, fallbackDraft())
	}
	return drafts
}

func draftFromSegment(segment string) Draft {
	lines := strings.Split(segment, "\n")

	title := strings.TrimSpace(lines[0])
	title = titlePrefixRegexp.ReplaceAllString(title, "")
	title = strings.Trim(title, `*"'`)

	var summary string
	if len(lines) > 1 {
		parts := make([]string, 0, len(lines)-1)
		for _, line := range lines[1:] {
			parts = append(parts, strings.TrimSpace(line))
		}
		summary = strings.TrimSpace(strings.Join(parts, " "))
	} else {
		summary = segment
	}

	// Pad up to the minimum lengths rather than dropping the draft.
	if len(title) < 10 {
		title = "Latest AI Development: " + title
	}
	if len(summary) < 50 {
		summary += " This represents a significant development in artificial intelligence and related technologies."
		summary = strings.TrimSpace(summary)
	}

	title = truncate(title, 200)
	summary = truncate(summary, 500)

	content := summary
	if len(summary) <= 500 {
		content = truncate(summary+" "+truncate(segment, 1500), 2000)
	}

	return Draft{
		Title:   title,
		Summary: summary,
		Content: content,
		Segment: segment,
	}
}

func fallbackDraft() Draft {
	return Draft{
		Title:   "AI Research Update #1",
		Summary: "Latest developments in artificial intelligence and machine learning research.",
		Content: "Recent advances in AI technology continue to shape various industries. " +
			"Researchers are making progress in areas including natural language processing, " +
			"computer vision, and automated reasoning systems.",
		Fallback: true,
	}
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
