package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/newsdeck/newsdeck/internal/ai"
	"github.com/newsdeck/newsdeck/internal/models"
	"github.com/newsdeck/newsdeck/internal/news"
)

const (
	defaultPageSize = 100
	maxPageSize     = 500
)

func (s *Server) handleNewsCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Source   string `json:"source"`
		Title    string `json:"title"`
		Summary  string `json:"summary"`
		Link     string `json:"link"`
		ImageURL string `json:"image_url"`
		Category string `json:"category"`
		IsPublic bool   `json:"is_public"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	category := models.CategoryGeneral
	if req.Category != "" {
		parsed, ok := models.ParseNewsCategory(req.Category)
		if !ok {
			jsonError(w, "Unknown category: "+req.Category, http.StatusBadRequest)
			return
		}
		category = parsed
	}

	user := currentUser(r)
	item, err := s.news.Create(req.Source, req.Title, req.Summary, req.Link,
		req.ImageURL, category, user.ID, req.IsPublic)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

func (s *Server) handleUserNews(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := s.news.UserNews(currentUser(r).ID, f)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

func (s *Server) handlePublicNews(w http.ResponseWriter, r *http.Request) {
	f, err := filterFromQuery(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	items, err := s.news.PublicNews(f)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

func (s *Server) handleNewsStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.news.Stats(currentUser(r).ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}

func (s *Server) handleNewsStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	status, ok := models.ParseNewsStatus(req.Status)
	if !ok {
		jsonError(w, "Unknown status: "+req.Status, http.StatusBadRequest)
		return
	}

	item, err := s.news.UpdateStatus(r.PathValue("id"), currentUser(r).ID, status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

func (s *Server) handleNewsFavorite(w http.ResponseWriter, r *http.Request) {
	item, err := s.news.ToggleFavorite(r.PathValue("id"), currentUser(r).ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

func (s *Server) handleNewsDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.news.Delete(r.PathValue("id"), currentUser(r).ID); err != nil {
		writeDomainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "News item deleted"})
}

func (s *Server) handleNewsDeleteAll(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.news.DeleteAll(currentUser(r).ID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"message": "All news items deleted",
		"deleted": deleted,
	})
}

// filterFromQuery builds a news.Filter from query parameters. Unknown
// values are rejected so typos never silently return everything.
func filterFromQuery(r *http.Request) (news.Filter, error) {
	f := news.Filter{Limit: defaultPageSize}
	q := r.URL.Query()

	if raw := q.Get("status"); raw != "" {
		status, ok := models.ParseNewsStatus(raw)
		if !ok {
			return f, errors.New("Unknown status: " + raw)
		}
		f.Status = &status
	}
	if raw := q.Get("category"); raw != "" {
		category, ok := models.ParseNewsCategory(raw)
		if !ok {
			return f, errors.New("Unknown category: " + raw)
		}
		f.Category = &category
	}
	if raw := q.Get("favorite"); raw != "" {
		fav, err := strconv.ParseBool(raw)
		if err != nil {
			return f, errors.New("Invalid favorite value: " + raw)
		}
		f.IsFavorite = &fav
	}
	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxPageSize {
			return f, errors.New("Limit must be between 1 and 500")
		}
		f.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return f, errors.New("Invalid offset value: " + raw)
		}
		f.Offset = offset
	}
	return f, nil
}

// writeDomainError maps service errors to HTTP statuses.
func writeDomainError(w http.ResponseWriter, err error) {
	var (
		notFound     *news.NotFoundError
		unauthorized *news.UnauthorizedError
		duplicate    *news.DuplicateNewsError
		transition   *news.InvalidTransitionError
		generation   *ai.GenerationError
	)
	switch {
	case errors.Is(err, news.ErrInvalid):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &notFound):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &unauthorized):
		jsonError(w, err.Error(), http.StatusForbidden)
	case errors.As(err, &duplicate):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &transition):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &generation):
		jsonError(w, "AI news generation failed: "+err.Error(), http.StatusServiceUnavailable)
	default:
		slog.Error("Unhandled service error", "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
	}
}
