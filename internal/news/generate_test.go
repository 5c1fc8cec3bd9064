package news

import (
	"context"
	"errors"
	"testing"

	"github.com/newsdeck/newsdeck/internal/ai"
	"github.com/newsdeck/newsdeck/internal/models"
)

type fakeGenerator struct {
	result  *ai.GenerationResult
	err     error
	lastReq ai.GenerationRequest
}

func (g *fakeGenerator) Generate(ctx context.Context, req ai.GenerationRequest) (*ai.GenerationResult, error) {
	g.lastReq = req
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func generatedCandidate(title, link string, category ai.Category) ai.Candidate {
	return ai.Candidate{
		Title:    title,
		Summary:  "A generated summary with enough words to satisfy every downstream check.",
		Content:  "Generated content describing the development in considerably more detail than the summary does.",
		Category: category,
		Source:   ai.Source{Name: "Perplexity AI Research"},
		Link:     link,
	}
}

func TestGenerateAndStore(t *testing.T) {
	gen := &fakeGenerator{result: &ai.GenerationResult{
		Candidates: []ai.Candidate{
			generatedCandidate("First Generated Headline", "https://example.com/g1", ai.CategoryResearch),
			generatedCandidate("Second Generated Headline", "https://example.com/g2", ai.CategoryProductLaunch),
		},
		Total: 2,
	}}
	svc := NewAIService(gen, NewService(newMemoryRepo()))

	stored, err := svc.GenerateAndStore(context.Background(), "user-1", 2,
		[]string{"research", "bogus"}, true)
	if err != nil {
		t.Fatalf("GenerateAndStore: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("stored %d items, want 2", len(stored))
	}

	if gen.lastReq.Count != 2 {
		t.Errorf("request count = %d, want 2", gen.lastReq.Count)
	}
	// Unknown category strings are dropped rather than forwarded.
	if len(gen.lastReq.Categories) != 1 || gen.lastReq.Categories[0] != ai.CategoryResearch {
		t.Errorf("request categories = %v, want [research]", gen.lastReq.Categories)
	}

	for _, item := range stored {
		if item.Status != models.StatusPending {
			t.Errorf("stored item status = %q, want pending", item.Status)
		}
		if !item.IsPublic {
			t.Error("stored item should be public")
		}
	}
	if stored[1].Category != models.CategoryProduct {
		t.Errorf("mapped category = %q, want product", stored[1].Category)
	}
}

func TestGenerateAndStoreSkipsDuplicates(t *testing.T) {
	gen := &fakeGenerator{result: &ai.GenerationResult{
		Candidates: []ai.Candidate{
			generatedCandidate("Repeated Generated Headline", "https://example.com/same", ai.CategoryResearch),
			generatedCandidate("Repeated Generated Headline", "https://example.com/same", ai.CategoryResearch),
		},
		Total: 2,
	}}
	svc := NewAIService(gen, NewService(newMemoryRepo()))

	stored, err := svc.GenerateAndStore(context.Background(), "user-1", 2, nil, false)
	if err != nil {
		t.Fatalf("GenerateAndStore: %v", err)
	}
	if len(stored) != 1 {
		t.Errorf("stored %d items, want 1 with the duplicate skipped", len(stored))
	}
}

func TestGenerateAndStorePropagatesFailure(t *testing.T) {
	gen := &fakeGenerator{err: &ai.GenerationError{
		Cause:    errors.New("dial tcp: refused"),
		Attempts: 3,
	}}
	repo := newMemoryRepo()
	svc := NewAIService(gen, NewService(repo))

	_, err := svc.GenerateAndStore(context.Background(), "user-1", 3, nil, false)
	var genErr *ai.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("error = %v, want GenerationError", err)
	}
	if len(repo.items) != 0 {
		t.Errorf("%d items stored after a failed generation, want 0", len(repo.items))
	}
}

func TestMapCategory(t *testing.T) {
	tests := []struct {
		in   ai.Category
		want models.NewsCategory
	}{
		{ai.CategoryBreakthrough, models.CategoryResearch},
		{ai.CategoryResearch, models.CategoryResearch},
		{ai.CategoryProductLaunch, models.CategoryProduct},
		{ai.CategoryIndustryUpdate, models.CategoryCompany},
		{ai.CategoryPolicyRegulation, models.CategoryGeneral},
		{ai.CategoryTutorialGuide, models.CategoryTutorial},
		{ai.CategoryOpinionAnalysis, models.CategoryOpinion},
		{ai.Category("unknown"), models.CategoryGeneral},
	}

	for _, tt := range tests {
		if got := MapCategory(tt.in); got != tt.want {
			t.Errorf("MapCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
