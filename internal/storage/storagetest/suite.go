// Package storagetest holds behaviour checks shared by every storage backend.
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises newStore against the storage.Storage contract.
func Run(t *testing.T, newStore func(t *testing.T) storage.Storage) {
	t.Run("CreateAssignsSystemFields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		category := "SaaS"
		created, err := s.CreateIdea(ctx, &domain.Idea{
			Title:       "Idea",
			Description: "Desc",
			Tags:        []string{"b", "a", "b"},
			Category:    &category,
			UserID:      "user-1",
			Metadata:    []byte(`{"viabilityScore":"7/10"}`),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, domain.StatusDraft, created.Status)
		assert.Zero(t, created.Likes)
		assert.False(t, created.IsArchived)
		assert.False(t, created.CreatedAt.IsZero())

		got, err := s.GetIdeaByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "b"}, []string(got.Tags))
		require.NotNil(t, got.Category)
		assert.Equal(t, "SaaS", *got.Category)
		assert.JSONEq(t, `{"viabilityScore":"7/10"}`, string(got.Metadata))
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)
		_, err := s.GetIdeaByID(context.Background(), "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListFiltersAndOrders", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		older, err := s.CreateIdea(ctx, &domain.Idea{Title: "Older", Description: "d", UserID: "user-1"})
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
		newer, err := s.CreateIdea(ctx, &domain.Idea{Title: "Newer", Description: "d", UserID: "user-1"})
		require.NoError(t, err)
		_, err = s.CreateIdea(ctx, &domain.Idea{Title: "Archived", Description: "d", UserID: "user-1", IsArchived: true})
		require.NoError(t, err)
		_, err = s.CreateIdea(ctx, &domain.Idea{Title: "Foreign", Description: "d", UserID: "user-2"})
		require.NoError(t, err)

		ideas, err := s.ListIdeas(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, ideas, 2)
		assert.Equal(t, newer.ID, ideas[0].ID)
		assert.Equal(t, older.ID, ideas[1].ID)

		empty, err := s.ListIdeas(ctx, "user-3")
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)
	})

	t.Run("UpdateAppliesOnlyPatchedFields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.CreateIdea(ctx, &domain.Idea{Title: "Idea", Description: "Desc", Tags: []string{"x"}, UserID: "user-1"})
		require.NoError(t, err)

		desc := "New description"
		status := domain.StatusArchived
		updated, err := s.UpdateIdea(ctx, created.ID, domain.IdeaPatch{Description: &desc, Tags: []string{"y", "z"}, Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "Idea", updated.Title)
		assert.Equal(t, "New description", updated.Description)
		assert.Equal(t, []string{"y", "z"}, []string(updated.Tags))
		assert.Equal(t, domain.StatusArchived, updated.Status)
		assert.Equal(t, created.ID, updated.ID)

		_, err = s.UpdateIdea(ctx, "00000000-0000-0000-0000-000000000000", domain.IdeaPatch{Description: &desc})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("DeleteThenGet", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.CreateIdea(ctx, &domain.Idea{Title: "Idea", Description: "Desc", UserID: "user-1"})
		require.NoError(t, err)
		require.NoError(t, s.DeleteIdea(ctx, created.ID))

		_, err = s.GetIdeaByID(ctx, created.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.DeleteIdea(ctx, created.ID), storage.ErrNotFound)
	})

	t.Run("ConcurrentLikes", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.CreateIdea(ctx, &domain.Idea{Title: "Idea", Description: "Desc", UserID: "user-1"})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.IncrementLikes(ctx, created.ID)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := s.GetIdeaByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.Likes)

		_, err = s.IncrementLikes(ctx, "00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
