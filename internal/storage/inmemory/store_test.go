package inmemory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/storage"
	"github.com/UkralStul/video-ideas-service/internal/storage/storagetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore creates a store holding one idea for user-1.
func newTestStore(t *testing.T) (storage.Storage, *domain.Idea) {
	store := New()
	idea, err := store.CreateIdea(context.Background(), &domain.Idea{
		Title:       "Test Idea",
		Description: "Description",
		Tags:        []string{"saas", "ai"},
		UserID:      "user-1",
	})
	require.NoError(t, err)
	return store, idea
}

func TestStore_CreateAndGetIdea(t *testing.T) {
	store, idea := newTestStore(t)
	ctx := context.Background()

	assert.NotEmpty(t, idea.ID)
	assert.Equal(t, domain.StatusDraft, idea.Status)
	assert.Zero(t, idea.Likes)
	assert.False(t, idea.IsArchived)
	assert.False(t, idea.CreatedAt.IsZero())

	retrieved, err := store.GetIdeaByID(ctx, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, idea.Title, retrieved.Title)
	assert.Equal(t, []string{"saas", "ai"}, []string(retrieved.Tags))

	_, err = store.GetIdeaByID(ctx, "non-existent-id")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_ReturnedIdeasAreCopies(t *testing.T) {
	store, idea := newTestStore(t)

	idea.Title = "mutated"
	idea.Tags[0] = "mutated"

	retrieved, err := store.GetIdeaByID(context.Background(), idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Idea", retrieved.Title)
	assert.Equal(t, "saas", retrieved.Tags[0])
}

func TestStore_ListIdeas(t *testing.T) {
	store, first := newTestStore(t)
	ctx := context.Background()

	time.Sleep(time.Millisecond)
	second, err := store.CreateIdea(ctx, &domain.Idea{Title: "Second", Description: "d", UserID: "user-1"})
	require.NoError(t, err)
	_, err = store.CreateIdea(ctx, &domain.Idea{Title: "Archived", Description: "d", UserID: "user-1", IsArchived: true})
	require.NoError(t, err)
	_, err = store.CreateIdea(ctx, &domain.Idea{Title: "Other", Description: "d", UserID: "user-2"})
	require.NoError(t, err)

	ideas, err := store.ListIdeas(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, ideas, 2)
	assert.Equal(t, second.ID, ideas[0].ID)
	assert.Equal(t, first.ID, ideas[1].ID)

	none, err := store.ListIdeas(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_UpdateIdea(t *testing.T) {
	store, idea := newTestStore(t)
	ctx := context.Background()

	title := "Renamed"
	status := domain.StatusPublished
	updated, err := store.UpdateIdea(ctx, idea.ID, domain.IdeaPatch{Title: &title, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, domain.StatusPublished, updated.Status)
	assert.Equal(t, "Description", updated.Description)
	assert.Equal(t, idea.CreatedAt, updated.CreatedAt)

	_, err = store.UpdateIdea(ctx, "missing", domain.IdeaPatch{Title: &title})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_DeleteIdea(t *testing.T) {
	store, idea := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.DeleteIdea(ctx, idea.ID))

	_, err := store.GetIdeaByID(ctx, idea.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = store.DeleteIdea(ctx, idea.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_IncrementLikesConcurrently(t *testing.T) {
	store, idea := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.IncrementLikes(ctx, idea.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	retrieved, err := store.GetIdeaByID(ctx, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), retrieved.Likes)

	_, err = store.IncrementLikes(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage { return New() })
}
