// Package observer fans idea change events out to per-user subscribers.
package observer

import (
	"log/slog"
	"sync"

	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventLiked   EventType = "liked"
	EventDeleted EventType = "deleted"
)

// Event is one change to a user's ideas. For deletions Idea holds the last
// known state.
type Event struct {
	Type EventType    `json:"type"`
	Idea *domain.Idea `json:"idea"`
}

const bufferSize = 16

// IdeaObserver keeps subscriber channels keyed by user id.
type IdeaObserver struct {
	mu sync.RWMutex
	//   map[userID] map[subscriberID] channel
	subs map[string]map[string]chan Event
}

func New() *IdeaObserver {
	return &IdeaObserver{
		subs: make(map[string]map[string]chan Event),
	}
}

// Subscribe registers a listener for userID. The returned cancel func
// unregisters it and closes the channel; it is safe to call more than once.
func (o *IdeaObserver) Subscribe(userID string) (<-chan Event, func()) {
	subID := uuid.NewString()
	ch := make(chan Event, bufferSize)

	o.mu.Lock()
	if o.subs[userID] == nil {
		o.subs[userID] = make(map[string]chan Event)
	}
	o.subs[userID][subID] = ch
	o.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			if userSubs, ok := o.subs[userID]; ok {
				delete(userSubs, subID)
				if len(userSubs) == 0 {
					delete(o.subs, userID)
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers ev to every subscriber of the idea's owner. Slow
// subscribers whose buffer is full miss the event instead of blocking the caller.
func (o *IdeaObserver) Publish(t EventType, idea *domain.Idea) {
	if idea == nil {
		return
	}
	ev := Event{Type: t, Idea: idea}

	o.mu.RLock()
	defer o.mu.RUnlock()
	for subID, ch := range o.subs[idea.UserID] {
		select {
		case ch <- ev:
		default:
			slog.Warn("dropping idea event for slow subscriber",
				slog.String("subscriber", subID), slog.String("type", string(t)))
		}
	}
}

// Subscribers reports how many listeners userID has.
func (o *IdeaObserver) Subscribers(userID string) int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.subs[userID])
}
