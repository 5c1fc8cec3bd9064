package server

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/newsdeck/newsdeck/internal/auth"
	"github.com/newsdeck/newsdeck/internal/models"
)

const sessionTTL = 7 * 24 * time.Hour

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		jsonError(w, "A valid email is required", http.StatusBadRequest)
		return
	}
	if req.Username == "" {
		jsonError(w, "Username is required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < 8 {
		jsonError(w, "Password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.db.CreateUser(user); err != nil {
		slog.Debug("Registration failed", "username", req.Username, "error", err)
		jsonError(w, "Email or username already registered", http.StatusBadRequest)
		return
	}

	token, err := s.openSession(user.ID)
	if err != nil {
		slog.Error("Failed to create session", "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	slog.Info("User registered", "username", user.Username)
	jsonResponse(w, http.StatusCreated, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		jsonError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	// Accept either username or email in the username field.
	user, err := s.db.GetUserByUsername(req.Username)
	if err != nil {
		user, err = s.db.GetUserByEmail(req.Username)
	}
	if err != nil || !user.IsActive {
		jsonError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	if err := auth.CheckPassword(req.Password, user.PasswordHash); err != nil {
		slog.Debug("Login failed: wrong password", "username", req.Username)
		jsonError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token, err := s.openSession(user.ID)
	if err != nil {
		slog.Error("Failed to create session", "error", err)
		jsonError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	slog.Info("User logged in", "username", user.Username)
	jsonResponse(w, http.StatusOK, tokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        &user,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := bearerToken(r); token != "" {
		s.db.DeleteSession(token)
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, currentUser(r))
}

func (s *Server) openSession(userID string) (string, error) {
	token, err := auth.GenerateToken()
	if err != nil {
		return "", err
	}
	sess := &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.db.CreateSession(sess); err != nil {
		return "", err
	}
	return token, nil
}
