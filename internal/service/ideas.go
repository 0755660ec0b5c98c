package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/UkralStul/video-ideas-service/internal/apperr"
	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/storage"
	"github.com/go-playground/validator/v10"
)

// CreateInput is the body accepted by POST /ideas.
type CreateInput struct {
	Title       string               `json:"title" validate:"required,min=1,max=255"`
	Description string               `json:"description" validate:"required,min=1"`
	Tags        []string             `json:"tags" validate:"required"`
	Category    *string              `json:"category,omitempty"`
	UserID      string               `json:"userId" validate:"required"`
	Metadata    *domain.IdeaMetadata `json:"metadata,omitempty"`
}

// UpdateInput is the body accepted by PATCH /ideas/{id}. Absent fields are kept.
type UpdateInput struct {
	Title       *string        `json:"title,omitempty" validate:"omitnil,min=1,max=255"`
	Description *string        `json:"description,omitempty" validate:"omitnil,min=1"`
	Tags        []string       `json:"tags,omitempty"`
	Category    *string        `json:"category,omitempty"`
	Status      *domain.Status `json:"status,omitempty" validate:"omitnil,oneof=DRAFT PUBLISHED ARCHIVED"`
}

// IdeaService validates requests and applies them to the storage backend.
type IdeaService struct {
	store    storage.Storage
	validate *validator.Validate
}

// NewIdeaService wires the service to a storage backend.
func NewIdeaService(store storage.Storage) *IdeaService {
	return &IdeaService{
		store:    store,
		validate: newValidator(),
	}
}

// Create validates in and stores a new idea. System fields (id, timestamps,
// likes, archive flag, status) are never taken from the client.
func (s *IdeaService) Create(ctx context.Context, in CreateInput) (*domain.Idea, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	idea := &domain.Idea{
		Title:       in.Title,
		Description: in.Description,
		Tags:        append([]string{}, in.Tags...),
		Category:    in.Category,
		Status:      domain.StatusDraft,
		UserID:      in.UserID,
	}
	if in.Metadata != nil {
		raw, err := json.Marshal(in.Metadata)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		idea.Metadata = raw
	}

	created, err := s.store.CreateIdea(ctx, idea)
	if err != nil {
		return nil, apperr.Storage("create idea", err)
	}
	slog.Debug("idea created", slog.String("id", created.ID), slog.String("user_id", created.UserID))
	return created, nil
}

// List returns the non-archived ideas owned by userID, newest first.
func (s *IdeaService) List(ctx context.Context, userID string) ([]*domain.Idea, error) {
	if userID == "" {
		return nil, apperr.InvalidInput("userId is required")
	}
	ideas, err := s.store.ListIdeas(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("fetch ideas", err)
	}
	return ideas, nil
}

// GetByID looks an idea up. A missing idea is reported through ok, not err.
func (s *IdeaService) GetByID(ctx context.Context, id string) (idea *domain.Idea, ok bool, err error) {
	idea, err = s.store.GetIdeaByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperr.Storage("fetch idea", err)
	}
	return idea, true, nil
}

// Update applies the supplied fields of in to the idea.
func (s *IdeaService) Update(ctx context.Context, id string, in UpdateInput) (*domain.Idea, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	patch := domain.IdeaPatch{
		Title:       in.Title,
		Description: in.Description,
		Tags:        in.Tags,
		Category:    in.Category,
		Status:      in.Status,
	}
	idea, err := s.store.UpdateIdea(ctx, id, patch)
	if err != nil {
		return nil, s.storageErr("update idea", id, err)
	}
	return idea, nil
}

// Delete removes the idea permanently.
func (s *IdeaService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteIdea(ctx, id); err != nil {
		return s.storageErr("delete idea", id, err)
	}
	return nil
}

// Like increments the like counter by one and returns the updated idea.
func (s *IdeaService) Like(ctx context.Context, id string) (*domain.Idea, error) {
	idea, err := s.store.IncrementLikes(ctx, id)
	if err != nil {
		return nil, s.storageErr("like idea", id, err)
	}
	return idea, nil
}

// storageErr maps a store error to its coded form; the transport logs it.
func (s *IdeaService) storageErr(op, id string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound("Idea", id)
	}
	return apperr.Storage(op, err)
}
