// Package transcript turns a video's audio track into text through AssemblyAI.
package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the AssemblyAI REST endpoint.
const DefaultBaseURL = "https://api.assemblyai.com"

const (
	statusCompleted = "completed"
	statusError     = "error"
)

// ErrEmptyTranscript is returned when transcription finished without any text.
var ErrEmptyTranscript = errors.New("transcript is empty")

// Config controls the AssemblyAI client.
type Config struct {
	APIKey       string
	BaseURL      string
	LanguageCode string
	PollInterval time.Duration
}

// AssemblyAI submits transcription jobs and waits for them to finish.
type AssemblyAI struct {
	cfg  Config
	http *http.Client
}

// NewAssemblyAI builds a client, filling unset config with defaults.
func NewAssemblyAI(cfg Config, httpClient *http.Client) *AssemblyAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.LanguageCode == "" {
		cfg.LanguageCode = "en"
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 3 * time.Second
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AssemblyAI{cfg: cfg, http: httpClient}
}

type submitRequest struct {
	AudioURL     string `json:"audio_url"`
	LanguageCode string `json:"language_code"`
}

type transcriptResp struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

// Transcribe submits audioURL and polls until the job completes or fails.
// Polling stops when ctx is done.
func (a *AssemblyAI) Transcribe(ctx context.Context, audioURL string) (string, error) {
	body, err := json.Marshal(submitRequest{AudioURL: audioURL, LanguageCode: a.cfg.LanguageCode})
	if err != nil {
		return "", err
	}

	job, err := a.do(ctx, http.MethodPost, "/v2/transcript", body)
	if err != nil {
		return "", fmt.Errorf("submit transcript: %w", err)
	}

	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	for {
		switch job.Status {
		case statusCompleted:
			if strings.TrimSpace(job.Text) == "" {
				return "", ErrEmptyTranscript
			}
			return job.Text, nil
		case statusError:
			return "", fmt.Errorf("transcript %s failed: %s", job.ID, job.Error)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}

		job, err = a.do(ctx, http.MethodGet, "/v2/transcript/"+job.ID, nil)
		if err != nil {
			return "", fmt.Errorf("poll transcript: %w", err)
		}
	}
}

func (a *AssemblyAI) do(ctx context.Context, method, path string, body []byte) (*transcriptResp, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, a.cfg.BaseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", a.cfg.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("AssemblyAI API error (status %d): %s", resp.StatusCode, msg)
	}

	var out transcriptResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
