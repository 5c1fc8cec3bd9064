package ai

import (
	"strings"
	"testing"
)

func TestParseDraftsMarkerSplit(t *testing.T) {
	text := "NEWS ITEM: OpenAI Releases New Model\n" +
		"The company announced a new flagship model with improved reasoning capabilities and lower latency.\n" +
		"NEWS ITEM: Google Expands AI Infrastructure\n" +
		"New data centers will support the growing demand for machine learning workloads across cloud regions."

	drafts := ParseDrafts(text, 5)
	if len(drafts) != 2 {
		t.Fatalf("ParseDrafts returned %d drafts, want 2", len(drafts))
	}
	if drafts[0].Title != "OpenAI Releases New Model" {
		t.Errorf("first title = %q", drafts[0].Title)
	}
	if drafts[1].Title != "Google Expands AI Infrastructure" {
		t.Errorf("second title = %q", drafts[1].Title)
	}
	if drafts[0].Fallback || drafts[1].Fallback {
		t.Error("parsed drafts should not be marked as fallback")
	}
}

func TestParseDraftsParagraphSplit(t *testing.T) {
	text := "Researchers published a new study on transformer efficiency with significant memory savings.\n\n" +
		"A major chip vendor unveiled its next accelerator generation aimed at large training clusters."

	drafts := ParseDrafts(text, 5)
	if len(drafts) != 2 {
		t.Fatalf("ParseDrafts returned %d drafts, want 2", len(drafts))
	}
}

func TestParseDraftsRespectsMax(t *testing.T) {
	text := "First paragraph about artificial intelligence research developments in the industry today.\n\n" +
		"Second paragraph about artificial intelligence research developments in the industry today."

	drafts := ParseDrafts(text, 1)
	if len(drafts) != 1 {
		t.Fatalf("ParseDrafts returned %d drafts, want 1", len(drafts))
	}
	if !strings.HasPrefix(drafts[0].Title, "First paragraph") {
		t.Errorf("kept draft should be the first segment, got title %q", drafts[0].Title)
	}
}

func TestParseDraftsDropsShortSegments(t *testing.T) {
	text := "Too short.\n\n" +
		"This segment is comfortably long enough to survive the minimum length requirement for parsing."

	drafts := ParseDrafts(text, 5)
	if len(drafts) != 1 {
		t.Fatalf("ParseDrafts returned %d drafts, want 1", len(drafts))
	}
}

func TestParseDraftsStripsTitlePrefix(t *testing.T) {
	text := "NEWS ITEM: Title: Anthropic Publishes Safety Research\n" +
		"The research lab shared new findings on model interpretability and alignment techniques this week."

	drafts := ParseDrafts(text, 5)
	if len(drafts) != 1 {
		t.Fatalf("ParseDrafts returned %d drafts, want 1", len(drafts))
	}
	if drafts[0].Title != "Anthropic Publishes Safety Research" {
		t.Errorf("title = %q, want prefix stripped", drafts[0].Title)
	}
}

func TestParseDraftsPadsShortFields(t *testing.T) {
	text := "NEWS ITEM: GPT news\n" +
		"Short note here, but the segment itself is long enough not to be dropped by the parser."

	drafts := ParseDrafts(text, 5)
	if len(drafts) != 1 {
		t.Fatalf("ParseDrafts returned %d drafts, want 1", len(drafts))
	}
	d := drafts[0]
	if !strings.HasPrefix(d.Title, "Latest AI Development: ") {
		t.Errorf("short title should be padded, got %q", d.Title)
	}
	if len(d.Summary) < 50 {
		t.Errorf("summary length %d, want at least 50", len(d.Summary))
	}
}

func TestParseDraftsBounds(t *testing.T) {
	longTitle := strings.Repeat("A", 300)
	longBody := strings.Repeat("word ", 400)
	drafts := ParseDrafts("NEWS ITEM: "+longTitle+"\n"+longBody, 5)
	if len(drafts) != 1 {
		t.Fatalf("ParseDrafts returned %d drafts, want 1", len(drafts))
	}
	d := drafts[0]
	if len(d.Title) > 200 {
		t.Errorf("title length %d exceeds 200", len(d.Title))
	}
	if len(d.Summary) > 500 {
		t.Errorf("summary length %d exceeds 500", len(d.Summary))
	}
	if len(d.Content) > 2000 {
		t.Errorf("content length %d exceeds 2000", len(d.Content))
	}
}

func TestParseDraftsFallback(t *testing.T) {
	for _, text := range []string{"", "   ", "too short to keep"} {
		drafts := ParseDrafts(text, 3)
		if len(drafts) != 1 {
			t.Fatalf("ParseDrafts(%q) returned %d drafts, want 1 fallback", text, len(drafts))
		}
		if !drafts[0].Fallback {
			t.Errorf("ParseDrafts(%q) draft not marked fallback", text)
		}
		if drafts[0].Title != "AI Research Update #1" {
			t.Errorf("fallback title = %q", drafts[0].Title)
		}
	}
}

func TestParseDraftsNoFallbackWhenMaxZero(t *testing.T) {
	if drafts := ParseDrafts("", 0); len(drafts) != 0 {
		t.Errorf("ParseDrafts with max 0 returned %d drafts, want 0", len(drafts))
	}
}
