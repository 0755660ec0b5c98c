package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/UkralStul/video-ideas-service/internal/analysis"
	"github.com/UkralStul/video-ideas-service/internal/httpapi"
	"github.com/UkralStul/video-ideas-service/internal/observer"
	"github.com/UkralStul/video-ideas-service/internal/service"
	"github.com/UkralStul/video-ideas-service/internal/storage/inmemory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnalyzer struct{}

func (stubAnalyzer) Analyze(ctx context.Context, rawURL string) (*analysis.Result, error) {
	return &analysis.Result{Analysis: "[START_IDEA]\nIDEA_NAME: A\n[END_IDEA]", VideoTitle: "Video"}, nil
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := httptest.NewServer(httpapi.NewRouter(&httpapi.Handlers{
		Ideas:    service.NewIdeaService(inmemory.New()),
		Analyzer: stubAnalyzer{},
		Observer: observer.New(),
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", srv.Client())
}

func input(title string) service.CreateInput {
	return service.CreateInput{Title: title, Description: "d", Tags: []string{}, UserID: "user-1"}
}

func TestClient_RoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	res, err := c.Analyze(ctx, "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Video", res.VideoTitle)

	idea, err := c.CreateIdea(ctx, input("First"))
	require.NoError(t, err)

	got, err := c.GetIdea(ctx, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)

	title := "Renamed"
	updated, err := c.UpdateIdea(ctx, idea.ID, service.UpdateInput{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	liked, err := c.LikeIdea(ctx, idea.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), liked.Likes)

	ideas, err := c.ListIdeas(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, ideas, 1)

	require.NoError(t, c.DeleteIdea(ctx, idea.ID))

	_, err = c.GetIdea(ctx, idea.ID)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestClient_ValidationError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.CreateIdea(context.Background(), input(""))

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "VALIDATION_ERROR", apiErr.Code)
	assert.Contains(t, string(apiErr.Details), `"title"`)
}

func TestClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).GetIdea(context.Background(), "x")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestClient_ContextCanceled(t *testing.T) {
	c := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListIdeas(ctx, "user-1")

	assert.True(t, errors.Is(err, context.Canceled))
}

