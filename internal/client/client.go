// Package client talks to the ideas service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/UkralStul/video-ideas-service/internal/analysis"
	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/service"
)

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string          `json:"code"`
	Message string          `json:"error"`
	Details json.RawMessage `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("server returned %d (%s): %s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) Analyze(ctx context.Context, videoURL string) (*analysis.Result, error) {
	var res analysis.Result
	if err := c.do(ctx, http.MethodPost, "/analyze", map[string]string{"url": videoURL}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) CreateIdea(ctx context.Context, in service.CreateInput) (*domain.Idea, error) {
	var idea domain.Idea
	if err := c.do(ctx, http.MethodPost, "/ideas", in, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

func (c *Client) ListIdeas(ctx context.Context, userID string) ([]*domain.Idea, error) {
	var ideas []*domain.Idea
	path := "/ideas?userId=" + url.QueryEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &ideas); err != nil {
		return nil, err
	}
	return ideas, nil
}

func (c *Client) GetIdea(ctx context.Context, id string) (*domain.Idea, error) {
	var idea domain.Idea
	if err := c.do(ctx, http.MethodGet, "/ideas/"+url.PathEscape(id), nil, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

func (c *Client) UpdateIdea(ctx context.Context, id string, in service.UpdateInput) (*domain.Idea, error) {
	var idea domain.Idea
	if err := c.do(ctx, http.MethodPatch, "/ideas/"+url.PathEscape(id), in, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

func (c *Client) DeleteIdea(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/ideas/"+url.PathEscape(id), nil, nil)
}

func (c *Client) LikeIdea(ctx context.Context, id string) (*domain.Idea, error) {
	var idea domain.Idea
	if err := c.do(ctx, http.MethodPost, "/ideas/"+url.PathEscape(id)+"/like", nil, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, apiErr) != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(raw))
			if apiErr.Message == "" {
				apiErr.Message = http.StatusText(resp.StatusCode)
			}
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
