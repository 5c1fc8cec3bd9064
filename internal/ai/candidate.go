package ai

import (
	"fmt"
	"strings"
	"time"
)

// Category is the fine-grained taxonomy candidates are classified into
// during generation. Stored items use the coarser models.NewsCategory;
// the persistence adapter owns the mapping.
type Category string

const (
	CategoryBreakthrough     Category = "breakthrough"
	CategoryResearch         Category = "research"
	CategoryProductLaunch    Category = "product_launch"
	CategoryIndustryUpdate   Category = "industry_update"
	CategoryPolicyRegulation Category = "policy_regulation"
	CategoryTutorialGuide    Category = "tutorial_guide"
	CategoryOpinionAnalysis  Category = "opinion_analysis"
)

// categories in declaration order; classification tie-breaks follow it.
var categories = []Category{
	CategoryBreakthrough,
	CategoryResearch,
	CategoryProductLaunch,
	CategoryIndustryUpdate,
	CategoryPolicyRegulation,
	CategoryTutorialGuide,
	CategoryOpinionAnalysis,
}

// ParseCategory validates a raw category string.
func ParseCategory(s string) (Category, bool) {
	for _, c := range categories {
		if Category(s) == c {
			return c, true
		}
	}
	return "", false
}

// Source attributes a candidate to its publication.
type Source struct {
	Name             string
	URL              string
	CredibilityScore float64
}

// Candidate is an in-memory structured news draft produced by parsing and
// enrichment. It only ever reaches storage through the persistence adapter.
type Candidate struct {
	Title          string
	Summary        string
	Content        string
	Category       Category
	Tags           []string
	Source         Source
	Link           string
	ImageURL       string
	PublishedAt    time.Time
	RelevanceScore float64
}

var clickbaitPhrases = []string{"You Won't Believe", "SHOCKING", "BREAKING"}

// NewCandidate builds a validated candidate. Titles that contain a known
// clickbait phrase are rejected outright rather than cleaned, and the
// length bounds on title, summary and content are enforced here so that
// downstream filters can assume well-formed inputs.
func NewCandidate(c Candidate) (*Candidate, error) {
	upper := strings.ToUpper(c.Title)
	for _, phrase := range clickbaitPhrases {
		if strings.Contains(upper, strings.ToUpper(phrase)) {
			return nil, fmt.Errorf("title contains clickbait pattern: %s", phrase)
		}
	}

	if n := len(c.Title); n < 10 || n > 200 {
		return nil, fmt.Errorf("title length %d outside [10, 200]", n)
	}
	if n := len(c.Summary); n < 50 || n > 500 {
		return nil, fmt.Errorf("summary length %d outside [50, 500]", n)
	}
	if n := len(c.Content); n < 100 || n > 2000 {
		return nil, fmt.Errorf("content length %d outside [100, 2000]", n)
	}
	if c.RelevanceScore < 0 || c.RelevanceScore > 1 {
		return nil, fmt.Errorf("relevance score %.2f outside [0, 1]", c.RelevanceScore)
	}
	if len(c.Tags) > 10 {
		c.Tags = c.Tags[:10]
	}

	c.Title = strings.TrimSpace(c.Title)
	tags := make([]string, 0, len(c.Tags))
	for _, tag := range c.Tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	c.Tags = tags

	return &c, nil
}

// GenerationRequest describes one generation call. Immutable once built.
type GenerationRequest struct {
	Count        int
	Categories   []Category
	SearchQuery  string
	Recency      string // "day", "week" or "month"
	MinRelevance float64
}

// DefaultGenerationRequest returns a request with the standing defaults.
func DefaultGenerationRequest() GenerationRequest {
	return GenerationRequest{
		Count:        5,
		SearchQuery:  "latest AI artificial intelligence news breakthroughs",
		Recency:      "day",
		MinRelevance: 0.7,
	}
}

// GenerationResult is the agent's terminal output for a successful run.
type GenerationResult struct {
	Candidates  []Candidate
	Total       int
	GeneratedAt time.Time
	Model       string
	Request     GenerationRequest
}
