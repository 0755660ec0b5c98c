package storage

import (
	"context"
	"errors"

	"github.com/UkralStul/video-ideas-service/internal/domain"
)

// ErrNotFound is returned by every backend when the requested idea does not exist.
var ErrNotFound = errors.New("idea not found")

// Storage is the contract every idea backend implements.
type Storage interface {
	CreateIdea(ctx context.Context, idea *domain.Idea) (*domain.Idea, error)
	GetIdeaByID(ctx context.Context, id string) (*domain.Idea, error)
	// ListIdeas returns the non-archived ideas of userID, newest first.
	ListIdeas(ctx context.Context, userID string) ([]*domain.Idea, error)
	UpdateIdea(ctx context.Context, id string, patch domain.IdeaPatch) (*domain.Idea, error)
	DeleteIdea(ctx context.Context, id string) error

	// IncrementLikes adds one to the like counter in a single atomic step.
	IncrementLikes(ctx context.Context, id string) (*domain.Idea, error)

	Close() error
}
