package news

import (
	"context"
	"errors"
	"log/slog"

	"github.com/newsdeck/newsdeck/internal/ai"
	"github.com/newsdeck/newsdeck/internal/models"
)

// Generator is the slice of the AI agent the adapter needs.
type Generator interface {
	Generate(ctx context.Context, req ai.GenerationRequest) (*ai.GenerationResult, error)
}

// categoryMapping folds the fine generation taxonomy into the coarse
// stored one. Unmapped values fall back to general.
var categoryMapping = map[ai.Category]models.NewsCategory{
	ai.CategoryBreakthrough:     models.CategoryResearch,
	ai.CategoryResearch:         models.CategoryResearch,
	ai.CategoryProductLaunch:    models.CategoryProduct,
	ai.CategoryIndustryUpdate:   models.CategoryCompany,
	ai.CategoryPolicyRegulation: models.CategoryGeneral,
	ai.CategoryTutorialGuide:    models.CategoryTutorial,
	ai.CategoryOpinionAnalysis:  models.CategoryOpinion,
}

// MapCategory converts a generation category to its stored counterpart.
func MapCategory(c ai.Category) models.NewsCategory {
	if mapped, ok := categoryMapping[c]; ok {
		return mapped
	}
	return models.CategoryGeneral
}

// AIService generates news through the agent and persists the validated
// candidates for a user via the generic create use case.
type AIService struct {
	agent Generator
	news  *Service
}

func NewAIService(agent Generator, newsSvc *Service) *AIService {
	return &AIService{agent: agent, news: newsSvc}
}

// GenerateAndStore runs one generation and stores each candidate
// independently. Per-item failures (duplicate links, validation) are
// logged and skipped so one bad item never aborts the batch; only a total
// generation failure propagates.
func (s *AIService) GenerateAndStore(ctx context.Context, userID string, count int,
	categories []string, isPublic bool) ([]models.NewsItem, error) {

	req := ai.DefaultGenerationRequest()
	req.Count = count
	for _, raw := range categories {
		if c, ok := ai.ParseCategory(raw); ok {
			req.Categories = append(req.Categories, c)
		}
	}

	result, err := s.agent.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var stored []models.NewsItem
	for _, candidate := range result.Candidates {
		item, err := s.news.Create(
			candidate.Source.Name,
			candidate.Title,
			candidate.Summary,
			candidate.Link,
			candidate.ImageURL,
			MapCategory(candidate.Category),
			userID,
			isPublic,
		)
		if err != nil {
			var dup *DuplicateNewsError
			if errors.As(err, &dup) {
				slog.Debug("Skipping duplicate generated item", "link", dup.Link, "user_id", userID)
			} else {
				slog.Warn("Failed to store generated item", "title", candidate.Title, "error", err)
			}
			continue
		}
		stored = append(stored, *item)
	}

	slog.Info("AI news generation stored",
		"user_id", userID, "generated", result.Total, "stored", len(stored))
	return stored, nil
}
