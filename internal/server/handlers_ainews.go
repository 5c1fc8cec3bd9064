package server

import (
	"fmt"
	"log/slog"
	"net/http"
)

const (
	defaultGenerateCount = 5
	maxGenerateCount     = 15
)

func (s *Server) handleGenerateNews(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Count      int      `json:"count"`
		Categories []string `json:"categories"`
		IsPublic   bool     `json:"is_public"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Count == 0 {
		req.Count = defaultGenerateCount
	}
	if req.Count < 1 || req.Count > maxGenerateCount {
		jsonError(w, fmt.Sprintf("Count must be between 1 and %d", maxGenerateCount), http.StatusBadRequest)
		return
	}

	user := currentUser(r)
	slog.Info("Generating AI news", "user", user.Username, "count", req.Count)

	items, err := s.aiNews.GenerateAndStore(r.Context(), user.ID, req.Count, req.Categories, req.IsPublic)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"news_items":      items,
		"total_generated": len(items),
		"message":         fmt.Sprintf("Successfully generated %d AI news items", len(items)),
	})
}
