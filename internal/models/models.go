package models

import "time"

// NewsStatus tracks where an item sits on the user's reading board.
type NewsStatus string

const (
	StatusPending NewsStatus = "pending"
	StatusReading NewsStatus = "reading"
	StatusRead    NewsStatus = "read"
)

// ParseNewsStatus validates a raw status string.
func ParseNewsStatus(s string) (NewsStatus, bool) {
	switch NewsStatus(s) {
	case StatusPending, StatusReading, StatusRead:
		return NewsStatus(s), true
	}
	return "", false
}

// NewsCategory is the coarse taxonomy used for stored items. It is distinct
// from the finer category set the generation pipeline works with.
type NewsCategory string

const (
	CategoryGeneral  NewsCategory = "general"
	CategoryResearch NewsCategory = "research"
	CategoryProduct  NewsCategory = "product"
	CategoryCompany  NewsCategory = "company"
	CategoryTutorial NewsCategory = "tutorial"
	CategoryOpinion  NewsCategory = "opinion"
)

// ParseNewsCategory validates a raw category string.
func ParseNewsCategory(s string) (NewsCategory, bool) {
	switch NewsCategory(s) {
	case CategoryGeneral, CategoryResearch, CategoryProduct,
		CategoryCompany, CategoryTutorial, CategoryOpinion:
		return NewsCategory(s), true
	}
	return "", false
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Session struct {
	ID        int64     `json:"id"`
	Token     string    `json:"-"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

type NewsItem struct {
	ID         string       `json:"id"`
	Source     string       `json:"source"`
	Title      string       `json:"title"`
	Summary    string       `json:"summary"`
	Link       string       `json:"link"`
	ImageURL   string       `json:"image_url"`
	Category   NewsCategory `json:"category"`
	UserID     string       `json:"user_id"`
	IsPublic   bool         `json:"is_public"`
	Status     NewsStatus   `json:"status"`
	IsFavorite bool         `json:"is_favorite"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

// CanBeAccessedBy reports whether a user may read this item.
func (n *NewsItem) CanBeAccessedBy(userID string) bool {
	return n.IsPublic || n.UserID == userID
}

type NewsStats struct {
	Pending   int `json:"pending"`
	Reading   int `json:"reading"`
	Read      int `json:"read"`
	Favorites int `json:"favorites"`
	Total     int `json:"total"`
}
