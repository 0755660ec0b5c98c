package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID    string
	Likes int
}

func itemKey(i item) string { return i.ID }

func newList() *Optimistic[string, item] {
	return NewOptimistic(itemKey, []item{{"a", 1}, {"b", 2}, {"c", 3}})
}

func TestOptimistic_UpdateShowsSpeculativeThenServerValue(t *testing.T) {
	list := newList()

	got, err := list.Update(context.Background(), "b",
		func(i item) item { i.Likes++; return i },
		func(ctx context.Context) (item, error) {
			assert.Equal(t, item{"b", 3}, list.Items()[1])
			return item{"b", 10}, nil
		})

	require.NoError(t, err)
	assert.Equal(t, item{"b", 10}, got)
	assert.Equal(t, []item{{"a", 1}, {"b", 10}, {"c", 3}}, list.Items())
}

func TestOptimistic_UpdateRevertsOnFailure(t *testing.T) {
	list := newList()
	boom := errors.New("boom")

	_, err := list.Update(context.Background(), "a",
		func(i item) item { i.Likes++; return i },
		func(ctx context.Context) (item, error) { return item{}, boom })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []item{{"a", 1}, {"b", 2}, {"c", 3}}, list.Items())
}

func TestOptimistic_UnknownKey(t *testing.T) {
	list := newList()
	called := false

	_, err := list.Update(context.Background(), "z",
		func(i item) item { return i },
		func(ctx context.Context) (item, error) { called = true; return item{}, nil })

	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.False(t, called)
	assert.ErrorIs(t, list.Remove(context.Background(), "z", nil), ErrUnknownKey)
}

func TestOptimistic_Remove(t *testing.T) {
	list := newList()

	err := list.Remove(context.Background(), "b", func(ctx context.Context) error {
		assert.Len(t, list.Items(), 2)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []item{{"a", 1}, {"c", 3}}, list.Items())
}

func TestOptimistic_RemoveRestoresPositionOnFailure(t *testing.T) {
	list := newList()

	err := list.Remove(context.Background(), "b", func(ctx context.Context) error {
		return errors.New("boom")
	})

	assert.Error(t, err)
	assert.Equal(t, []item{{"a", 1}, {"b", 2}, {"c", 3}}, list.Items())
}
