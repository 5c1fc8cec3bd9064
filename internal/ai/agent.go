package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/juju/clock"
	"github.com/juju/retry"
)

// CompletionClient is the slice of the model client the agent needs.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (*Completion, error)
}

// AgentConfig tunes the generation orchestrator.
type AgentConfig struct {
	Model       string
	MaxAttempts int           // total attempts, default 3
	RetryDelay  time.Duration // first backoff sleep, doubled per attempt, default 1s
	Clock       clock.Clock
}

// Agent owns the end-to-end generation flow: build prompt, call the model,
// parse, enrich, validate. Attempts are retried with exponential backoff;
// only after all attempts fail does Generate return a GenerationError.
type Agent struct {
	client      CompletionClient
	model       string
	maxAttempts int
	retryDelay  time.Duration
	clock       clock.Clock
}

func NewAgent(client CompletionClient, cfg AgentConfig) *Agent {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.WallClock
	}
	return &Agent{
		client:      client,
		model:       cfg.Model,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
		clock:       cfg.Clock,
	}
}

// Generate runs the generation pipeline for one request. It returns between
// 0 and req.Count validated candidates, or a GenerationError once the
// attempt budget is exhausted.
func (a *Agent) Generate(ctx context.Context, req GenerationRequest) (*GenerationResult, error) {
	if req.Count < 1 {
		return nil, fmt.Errorf("generation count must be at least 1, got %d", req.Count)
	}
	if req.SearchQuery == "" {
		req.SearchQuery = DefaultGenerationRequest().SearchQuery
	}
	if req.Recency == "" {
		req.Recency = "day"
	}

	prompt := buildPrompt(req)

	var result *GenerationResult
	var lastErr error
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			r, err := a.attempt(ctx, prompt, req)
			if err != nil {
				return err
			}
			result = r
			return nil
		},
		NotifyFunc: func(err error, attempt int) {
			lastErr = err
			slog.Warn("News generation attempt failed", "attempt", attempt, "error", err)
		},
		Attempts:    a.maxAttempts,
		Delay:       a.retryDelay,
		BackoffFunc: retry.DoubleDelay,
		Clock:       a.clock,
		Stop:        ctx.Done(),
	})
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}
		return nil, &GenerationError{Cause: lastErr, Attempts: a.maxAttempts}
	}

	slog.Info("News generation succeeded",
		"requested", req.Count, "validated", result.Total, "model", a.model)
	return result, nil
}

// attempt executes one full pass of the pipeline. Errors returned here
// count toward the attempt budget.
func (a *Agent) attempt(ctx context.Context, prompt string, req GenerationRequest) (*GenerationResult, error) {
	content, err := a.completeWithFallback(ctx, prompt, req.Count)
	if err != nil {
		return nil, err
	}

	drafts := ParseDrafts(content, req.Count)

	now := a.clock.Now().UTC()
	candidates := make([]Candidate, 0, len(drafts))
	for _, draft := range drafts {
		candidate, err := buildCandidate(draft, now)
		if err != nil {
			return nil, fmt.Errorf("build candidate %q: %w", draft.Title, err)
		}
		candidates = append(candidates, *candidate)
	}

	validated := FilterCandidates(candidates, req.MinRelevance)

	return &GenerationResult{
		Candidates:  validated,
		Total:       len(validated),
		GeneratedAt: now,
		Model:       a.model,
		Request:     req,
	}, nil
}

// completeWithFallback is the inner failure domain: typed transport errors
// propagate so the retry loop sees them, while malformed-response errors
// degrade into a canned completion and let the pipeline continue.
func (a *Agent) completeWithFallback(ctx context.Context, prompt string, count int) (string, error) {
	completion, err := a.client.Complete(ctx, prompt)
	if err == nil {
		return completion.Content, nil
	}
	if isTransportError(err) || ctx.Err() != nil {
		return "", err
	}
	slog.Warn("Model response unusable, degrading to canned completion", "error", err)
	return fallbackCompletion(count), nil
}

func fallbackCompletion(count int) string {
	return fmt.Sprintf("Recent AI developments include advances in machine learning, "+
		"natural language processing, and computer vision. Generated %d news items about "+
		"artificial intelligence breakthroughs and research updates.", count)
}

// buildCandidate enriches a parsed draft into a full candidate. Fallback
// drafts carry their own fixed attribution and a deliberately low
// relevance score.
func buildCandidate(draft Draft, now time.Time) (*Candidate, error) {
	if draft.Fallback {
		return NewCandidate(Candidate{
			Title:    draft.Title,
			Summary:  draft.Summary,
			Content:  draft.Content,
			Category: CategoryResearch,
			Tags:     []string{"ai", "research", "technology"},
			Source: Source{
				Name:             "AI Research News",
				URL:              "https://example.com",
				CredibilityScore: 0.7,
			},
			Link:           "https://example.com/ai-research",
			ImageURL:       DeriveImageURL(draft.Title, CategoryResearch),
			PublishedAt:    now,
			RelevanceScore: 0.7,
		})
	}

	category := ClassifyCategory(draft.Title + " " + draft.Summary)
	meta := ExtractMetadata(draft.Segment)

	return NewCandidate(Candidate{
		Title:    draft.Title,
		Summary:  draft.Summary,
		Content:  draft.Content,
		Category: category,
		Tags:     meta.Tags,
		Source: Source{
			Name:             "Perplexity AI Research",
			URL:              "https://perplexity.ai",
			CredibilityScore: 0.8,
		},
		Link:           searchLink(draft.Title),
		ImageURL:       DeriveImageURL(draft.Title, category),
		PublishedAt:    now,
		RelevanceScore: 0.8,
	})
}

func searchLink(title string) string {
	q := strings.ReplaceAll(title, " ", "+")
	if len(q) > 50 {
		q = q[:50]
	}
	return "https://perplexity.ai/search?q=" + q
}

func buildPrompt(req GenerationRequest) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(
		"Find and summarize %d fresh and current AI/technology news items from the last %s.\n",
		req.Count, req.Recency))
	sb.WriteString(fmt.Sprintf("Search query: %s\n\n", req.SearchQuery))
	sb.WriteString("For each news item, provide:\n")
	sb.WriteString("1. A compelling headline (50-150 characters)\n")
	sb.WriteString("2. A brief summary (100-300 words)\n")
	sb.WriteString("3. Key details and impact\n\n")
	sb.WriteString("Format your response as separate news items, each starting with 'NEWS ITEM:' " +
		"followed by the headline, then a paragraph summary.")

	if len(req.Categories) > 0 {
		names := make([]string, len(req.Categories))
		for i, c := range req.Categories {
			names[i] = string(c)
		}
		sb.WriteString(fmt.Sprintf("\nFocus on these categories: %s", strings.Join(names, ", ")))
	}

	sb.WriteString("\n\nEnsure all information is factual, well-sourced, and current. " +
		"Focus on breakthrough developments, significant updates, and impactful news.")

	return sb.String()
}
