package client

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/service"
	"github.com/sourcegraph/conc"
)

const (
	SaveBatchSize  = 3
	SaveBatchPause = 500 * time.Millisecond
)

// Creator stores one idea.
type Creator interface {
	CreateIdea(ctx context.Context, in service.CreateInput) (*domain.Idea, error)
}

// SaveFailure records an input that could not be saved.
type SaveFailure struct {
	Index int
	Title string
	Err   error
}

// SaveSummary is the aggregate outcome of SaveIdeas. Saved is in input order
// with nil entries for failures.
type SaveSummary struct {
	Saved    []*domain.Idea
	Failures []SaveFailure
}

func (s SaveSummary) Succeeded() int { return len(s.Saved) - len(s.Failures) }
func (s SaveSummary) Failed() int    { return len(s.Failures) }

// SaveIdeas stores inputs in batches of SaveBatchSize, sleeping pause between
// batches. Requests within a batch run concurrently and a failure does not
// stop its siblings. Context cancellation stops further batches; inputs that
// were never sent are reported as failed with the context error.
func SaveIdeas(ctx context.Context, c Creator, inputs []service.CreateInput, pause time.Duration) SaveSummary {
	summary := SaveSummary{Saved: make([]*domain.Idea, len(inputs))}
	var mu sync.Mutex

	for start := 0; start < len(inputs); start += SaveBatchSize {
		if start > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(pause):
			}
		}
		if err := ctx.Err(); err != nil {
			for i := start; i < len(inputs); i++ {
				summary.Failures = append(summary.Failures, SaveFailure{Index: i, Title: inputs[i].Title, Err: err})
			}
			break
		}

		end := min(start+SaveBatchSize, len(inputs))
		var wg conc.WaitGroup
		for i := start; i < end; i++ {
			wg.Go(func() {
				idea, err := c.CreateIdea(ctx, inputs[i])
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					slog.Warn("failed to save idea", slog.String("title", inputs[i].Title), slog.Any("error", err))
					summary.Failures = append(summary.Failures, SaveFailure{Index: i, Title: inputs[i].Title, Err: err})
					return
				}
				summary.Saved[i] = idea
			})
		}
		wg.Wait()
	}

	slices.SortFunc(summary.Failures, func(a, b SaveFailure) int { return a.Index - b.Index })
	return summary
}
