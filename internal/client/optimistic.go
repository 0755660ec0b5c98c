package client

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var ErrUnknownKey = errors.New("no item with that key")

// Optimistic is a local list that applies changes before the server confirms
// them. A failed request restores the item's last confirmed value. A
// successful one replaces the speculative value with what the server returned.
type Optimistic[K comparable, V any] struct {
	mu    sync.Mutex
	key   func(V) K
	items []V
}

func NewOptimistic[K comparable, V any](key func(V) K, items []V) *Optimistic[K, V] {
	return &Optimistic[K, V]{key: key, items: slices.Clone(items)}
}

// Items returns a copy of the current local state.
func (o *Optimistic[K, V]) Items() []V {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.items)
}

func (o *Optimistic[K, V]) index(k K) int {
	return slices.IndexFunc(o.items, func(v V) bool { return o.key(v) == k })
}

// Update shows speculative(v) for key k while commit runs.
func (o *Optimistic[K, V]) Update(ctx context.Context, k K, speculative func(V) V, commit func(context.Context) (V, error)) (V, error) {
	var zero V

	o.mu.Lock()
	i := o.index(k)
	if i < 0 {
		o.mu.Unlock()
		return zero, ErrUnknownKey
	}
	snapshot := o.items[i]
	o.items[i] = speculative(snapshot)
	o.mu.Unlock()

	confirmed, err := commit(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()
	if i = o.index(k); i < 0 {
		// Removed locally while the request was in flight.
		if err != nil {
			return zero, err
		}
		return confirmed, nil
	}
	if err != nil {
		o.items[i] = snapshot
		return zero, err
	}
	o.items[i] = confirmed
	return confirmed, nil
}

// Remove hides key k while commit runs and puts it back where it was if
// commit fails.
func (o *Optimistic[K, V]) Remove(ctx context.Context, k K, commit func(context.Context) error) error {
	o.mu.Lock()
	i := o.index(k)
	if i < 0 {
		o.mu.Unlock()
		return ErrUnknownKey
	}
	snapshot := o.items[i]
	o.items = slices.Delete(o.items, i, i+1)
	o.mu.Unlock()

	if err := commit(ctx); err != nil {
		o.mu.Lock()
		defer o.mu.Unlock()
		o.items = slices.Insert(o.items, min(i, len(o.items)), snapshot)
		return err
	}
	return nil
}
