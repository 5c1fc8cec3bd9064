package news

import (
	"errors"
	"fmt"

	"github.com/newsdeck/newsdeck/internal/models"
)

// ErrInvalid marks entity validation failures. Wrapped errors carry the
// specific field message.
var ErrInvalid = errors.New("invalid news item")

// NotFoundError is returned when a news item does not exist.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("news item %s not found", e.ID)
}

// UnauthorizedError is returned when a user touches an item they don't own.
type UnauthorizedError struct {
	UserID string
	NewsID string
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("user %s is not authorized to access news item %s", e.UserID, e.NewsID)
}

// DuplicateNewsError is returned when an item with the same link already
// exists for the user. The storage layer's (link, user_id) uniqueness
// constraint is the final arbiter for concurrent creates.
type DuplicateNewsError struct {
	Link   string
	UserID string
}

func (e *DuplicateNewsError) Error() string {
	return fmt.Sprintf("news item with link %s already exists for user %s", e.Link, e.UserID)
}

// InvalidTransitionError is returned for disallowed status changes.
type InvalidTransitionError struct {
	From models.NewsStatus
	To   models.NewsStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition from %s to %s", e.From, e.To)
}
