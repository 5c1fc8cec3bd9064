package ai

import (
	"regexp"
	"strings"
)

// Fixed keyword tables. Ordered slices, not maps, so classification and
// image derivation stay deterministic.

var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryBreakthrough, []string{"breakthrough", "discovery", "novel", "first-ever"}},
	{CategoryResearch, []string{"paper", "study", "research", "arxiv", "journal"}},
	{CategoryProductLaunch, []string{"launch", "release", "announce", "unveil", "introduce"}},
	{CategoryIndustryUpdate, []string{"partner", "acquisition", "funding", "investment"}},
	{CategoryPolicyRegulation, []string{"regulation", "policy", "law", "compliance", "ethics"}},
	{CategoryTutorialGuide, []string{"how-to", "tutorial", "guide", "learn", "implement"}},
	{CategoryOpinionAnalysis, []string{"analysis", "opinion", "perspective", "future", "impact"}},
}

// ClassifyCategory scores each category by literal keyword matches and
// returns the highest scorer. Ties break toward the first category in
// declaration order; a zero score everywhere defaults to industry_update.
func ClassifyCategory(text string) Category {
	lower := strings.ToLower(text)

	best := CategoryIndustryUpdate
	bestScore := 0
	for _, entry := range categoryKeywords {
		score := 0
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			best = entry.category
			bestScore = score
		}
	}
	return best
}

var titleImageGroups = []struct {
	keywords []string
	imageURL string
}{
	{[]string{"medical", "health", "blood", "injury"},
		"https://images.unsplash.com/photo-1559757148-5c350d0d3c56?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3"},
	{[]string{"robot", "robotics"},
		"https://images.unsplash.com/photo-1485827404703-89b55fcc595e?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3"},
	{[]string{"nvidia", "chip", "infrastructure"},
		"https://images.unsplash.com/photo-1518709268805-4e9042af2176?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3"},
	{[]string{"blockchain", "clinical", "trial"},
		"https://images.unsplash.com/photo-1576091160550-2173dba999ef?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3"},
	{[]string{"research", "study"},
		"https://images.unsplash.com/photo-1582719471384-894fbb16e074?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3"},
}

const defaultImageURL = "https://images.unsplash.com/photo-1677442136019-21780ecad995?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3"

var categoryImages = map[Category]string{
	CategoryBreakthrough:     "https://images.unsplash.com/photo-1620712943543-bcc4688e7485?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3",
	CategoryResearch:         "https://images.unsplash.com/photo-1582719471384-894fbb16e074?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3",
	CategoryProductLaunch:    "https://images.unsplash.com/photo-1519389950473-47ba0277781c?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3",
	CategoryIndustryUpdate:   "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3",
	CategoryPolicyRegulation: "https://images.unsplash.com/photo-1589829545856-d10d557cf95f?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3",
	CategoryTutorialGuide:    "https://images.unsplash.com/photo-1501504905252-473c47e087f8?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3",
	CategoryOpinionAnalysis:  "https://images.unsplash.com/photo-1507679799987-c73779587ccf?q=80&w=500&auto=format&fit=crop&ixlib=rb-4.0.3",
}

// DeriveImageURL picks a representative image: title keyword groups are
// checked in order first, then the per-category default, then a generic
// AI/technology image.
func DeriveImageURL(title string, category Category) string {
	lower := strings.ToLower(title)
	for _, group := range titleImageGroups {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.imageURL
			}
		}
	}
	if url, ok := categoryImages[category]; ok {
		return url
	}
	return defaultImageURL
}

// Metadata is light structure pattern-matched out of a text segment.
type Metadata struct {
	Dates         []string
	Organizations []string
	Tags          []string
}

var (
	datePattern = regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2}, \d{4}\b`)
	orgPattern  = regexp.MustCompile(`(?i)\b(?:OpenAI|Google|Microsoft|Meta|Apple|Amazon|IBM|NVIDIA|DeepMind|Anthropic)\b`)
)

var techTerms = []string{
	"LLM", "GPT", "transformer", "neural network", "deep learning",
	"reinforcement learning", "computer vision", "NLP", "AGI",
}

// ExtractMetadata pulls dates, known organizations and technical-term tags
// out of a segment. Pure function over the fixed tables above.
func ExtractMetadata(text string) Metadata {
	var meta Metadata

	meta.Dates = datePattern.FindAllString(text, -1)

	seen := make(map[string]bool)
	for _, org := range orgPattern.FindAllString(text, -1) {
		key := strings.ToLower(org)
		if !seen[key] {
			seen[key] = true
			meta.Organizations = append(meta.Organizations, org)
		}
	}

	lower := strings.ToLower(text)
	for _, term := range techTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			meta.Tags = append(meta.Tags, strings.ToLower(term))
		}
	}

	return meta
}
