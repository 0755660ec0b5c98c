package inmemory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/storage"
	"github.com/google/uuid"
)

// Store implements storage.Storage in process memory.
type Store struct {
	mu    sync.RWMutex
	ideas map[string]*domain.Idea
	order []string // insertion order, used to break CreatedAt ties
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		ideas: make(map[string]*domain.Idea),
	}
}

func (s *Store) CreateIdea(ctx context.Context, idea *domain.Idea) (*domain.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	stored := clone(idea)
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	if stored.Status == "" {
		stored.Status = domain.StatusDraft
	}
	if stored.Tags == nil {
		stored.Tags = []string{}
	}

	s.ideas[stored.ID] = stored
	s.order = append(s.order, stored.ID)
	return clone(stored), nil
}

func (s *Store) GetIdeaByID(ctx context.Context, id string) (*domain.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idea, ok := s.ideas[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(idea), nil
}

func (s *Store) ListIdeas(ctx context.Context, userID string) ([]*domain.Idea, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Idea, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		idea, ok := s.ideas[s.order[i]]
		if !ok || idea.UserID != userID || idea.IsArchived {
			continue
		}
		result = append(result, clone(idea))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) UpdateIdea(ctx context.Context, id string, patch domain.IdeaPatch) (*domain.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idea, ok := s.ideas[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	patch.Apply(idea)
	idea.UpdatedAt = time.Now().UTC()
	return clone(idea), nil
}

func (s *Store) DeleteIdea(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ideas[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.ideas, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}

// IncrementLikes holds the write lock for the whole read-increment so
// concurrent likes on the same idea never lose an update.
func (s *Store) IncrementLikes(ctx context.Context, id string) (*domain.Idea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idea, ok := s.ideas[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	idea.Likes++
	idea.UpdatedAt = time.Now().UTC()
	return clone(idea), nil
}

func (s *Store) Close() error { return nil }

// clone returns a copy that shares no mutable state with the stored idea.
func clone(idea *domain.Idea) *domain.Idea {
	c := *idea
	if idea.Tags != nil {
		c.Tags = append([]string{}, idea.Tags...)
	}
	if idea.Category != nil {
		category := *idea.Category
		c.Category = &category
	}
	if idea.Metadata != nil {
		c.Metadata = append([]byte{}, idea.Metadata...)
	}
	return &c
}
