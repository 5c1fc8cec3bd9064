// Package news holds the application use cases around stored news items:
// creation with duplicate suppression, filtered reads, status/favorite
// mutations, and the AI-generation persistence adapter.
package news

import (
	"fmt"
	"strings"

	"github.com/newsdeck/newsdeck/internal/models"
)

// Filter narrows repository reads. Nil fields mean "no constraint".
type Filter struct {
	Status     *models.NewsStatus
	Category   *models.NewsCategory
	IsFavorite *bool
	Limit      int
	Offset     int
}

// Repository is the persistence contract the use cases depend on. The
// sqlite adapter in internal/database implements it.
type Repository interface {
	CreateNews(item *models.NewsItem) error
	GetNewsByID(id string) (*models.NewsItem, error)
	GetNewsByUser(userID string, f Filter) ([]models.NewsItem, error)
	GetPublicNews(f Filter) ([]models.NewsItem, error)
	UpdateNews(item *models.NewsItem) error
	DeleteNews(id string) (bool, error)
	DeleteAllByUser(userID string) (int64, error)
	ExistsByLinkAndUser(link, userID string) (bool, error)
	NewsStats(userID string) (models.NewsStats, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and stores a new item. Items always start pending and
// unfavorited. A link the user already saved yields a DuplicateNewsError.
func (s *Service) Create(source, title, summary, link, imageURL string,
	category models.NewsCategory, userID string, isPublic bool) (*models.NewsItem, error) {

	switch {
	case strings.TrimSpace(source) == "":
		return nil, fmt.Errorf("%w: source cannot be empty", ErrInvalid)
	case strings.TrimSpace(title) == "":
		return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalid)
	case strings.TrimSpace(summary) == "":
		return nil, fmt.Errorf("%w: summary cannot be empty", ErrInvalid)
	case strings.TrimSpace(link) == "":
		return nil, fmt.Errorf("%w: link cannot be empty", ErrInvalid)
	case strings.TrimSpace(userID) == "":
		return nil, fmt.Errorf("%w: user ID cannot be empty", ErrInvalid)
	}
	if _, ok := models.ParseNewsCategory(string(category)); !ok {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalid, category)
	}

	exists, err := s.repo.ExistsByLinkAndUser(link, userID)
	if err != nil {
		return nil, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return nil, &DuplicateNewsError{Link: link, UserID: userID}
	}

	item := &models.NewsItem{
		Source:     source,
		Title:      title,
		Summary:    summary,
		Link:       link,
		ImageURL:   imageURL,
		Category:   category,
		UserID:     userID,
		IsPublic:   isPublic,
		Status:     models.StatusPending,
		IsFavorite: false,
	}
	if err := s.repo.CreateNews(item); err != nil {
		return nil, err
	}
	return item, nil
}

// UserNews returns the caller's items matching the filter.
func (s *Service) UserNews(userID string, f Filter) ([]models.NewsItem, error) {
	return s.repo.GetNewsByUser(userID, f)
}

// PublicNews returns publicly shared items matching the filter.
func (s *Service) PublicNews(f Filter) ([]models.NewsItem, error) {
	return s.repo.GetPublicNews(f)
}

// UpdateStatus moves an item on the reading board. A read item cannot move
// back to reading.
func (s *Service) UpdateStatus(newsID, userID string, status models.NewsStatus) (*models.NewsItem, error) {
	item, err := s.ownedItem(newsID, userID)
	if err != nil {
		return nil, err
	}

	if item.Status == models.StatusRead && status == models.StatusReading {
		return nil, &InvalidTransitionError{From: item.Status, To: status}
	}

	item.Status = status
	if err := s.repo.UpdateNews(item); err != nil {
		return nil, err
	}
	return item, nil
}

// ToggleFavorite flips the favorite flag.
func (s *Service) ToggleFavorite(newsID, userID string) (*models.NewsItem, error) {
	item, err := s.ownedItem(newsID, userID)
	if err != nil {
		return nil, err
	}

	item.IsFavorite = !item.IsFavorite
	if err := s.repo.UpdateNews(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes one of the caller's items.
func (s *Service) Delete(newsID, userID string) error {
	if _, err := s.ownedItem(newsID, userID); err != nil {
		return err
	}
	_, err := s.repo.DeleteNews(newsID)
	return err
}

// DeleteAll removes every item the caller owns, returning the count.
func (s *Service) DeleteAll(userID string) (int64, error) {
	return s.repo.DeleteAllByUser(userID)
}

// Stats aggregates the caller's board counts.
func (s *Service) Stats(userID string) (models.NewsStats, error) {
	return s.repo.NewsStats(userID)
}

func (s *Service) ownedItem(newsID, userID string) (*models.NewsItem, error) {
	item, err := s.repo.GetNewsByID(newsID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &NotFoundError{ID: newsID}
	}
	if item.UserID != userID {
		return nil, &UnauthorizedError{UserID: userID, NewsID: newsID}
	}
	return item, nil
}
