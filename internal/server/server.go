package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/newsdeck/newsdeck/internal/config"
	"github.com/newsdeck/newsdeck/internal/database"
	"github.com/newsdeck/newsdeck/internal/news"
)

type Server struct {
	cfg     config.Config
	db      *database.DB
	news    *news.Service
	aiNews  *news.AIService
	httpSrv *http.Server
}

func New(cfg config.Config, db *database.DB, newsSvc *news.Service, aiNews *news.AIService) *Server {
	return &Server{
		cfg:    cfg,
		db:     db,
		news:   newsSvc,
		aiNews: aiNews,
	}
}

// Start sets up routes and starts the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	s.routes(mux)

	handler := recoveryMiddleware(loggingMiddleware(mux))

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	slog.Info("Starting server", "addr", addr)
	return s.httpSrv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) routes(mux *http.ServeMux) {
	// Auth
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.Handle("POST /api/auth/logout", s.requireAuth(http.HandlerFunc(s.handleLogout)))
	mux.Handle("GET /api/users/me", s.requireAuth(http.HandlerFunc(s.handleMe)))

	// News. The public feed is open, everything else needs a session.
	mux.HandleFunc("GET /api/news/public", s.handlePublicNews)
	mux.Handle("POST /api/news", s.requireAuth(http.HandlerFunc(s.handleNewsCreate)))
	mux.Handle("GET /api/news/user", s.requireAuth(http.HandlerFunc(s.handleUserNews)))
	mux.Handle("GET /api/news/stats", s.requireAuth(http.HandlerFunc(s.handleNewsStats)))
	mux.Handle("PATCH /api/news/{id}/status", s.requireAuth(http.HandlerFunc(s.handleNewsStatus)))
	mux.Handle("PATCH /api/news/{id}/favorite", s.requireAuth(http.HandlerFunc(s.handleNewsFavorite)))
	mux.Handle("DELETE /api/news/{id}", s.requireAuth(http.HandlerFunc(s.handleNewsDelete)))
	mux.Handle("DELETE /api/news", s.requireAuth(http.HandlerFunc(s.handleNewsDeleteAll)))

	// AI generation
	mux.Handle("POST /api/ai-news/generate", s.requireAuth(http.HandlerFunc(s.handleGenerateNews)))
}

// Handler builds the full middleware-wrapped handler without binding a
// listener. Used by tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.routes(mux)
	return recoveryMiddleware(loggingMiddleware(mux))
}

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
