// Package youtube reads video metadata from the YouTube Data API v3.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// DefaultBaseURL is the public Data API endpoint.
const DefaultBaseURL = "https://www.googleapis.com/youtube/v3"

// ErrVideoNotFound is returned when the API knows no video with the given id.
var ErrVideoNotFound = errors.New("video not found")

// The id runs to the next query, fragment or path delimiter. Whether it names
// a real video is left to the Data API.
var videoIDRE = regexp.MustCompile(`(?:youtube\.com/watch\?(?:[^#]*&)?v=|youtu\.be/)([^&#?/\s]+)`)

// ExtractVideoID pulls the video id out of a watch?v= or youtu.be/ URL.
func ExtractVideoID(rawURL string) (string, bool) {
	m := videoIDRE.FindStringSubmatch(strings.TrimSpace(rawURL))
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// WatchURL is the canonical page URL for a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// Video is the subset of a video's snippet the analysis needs.
type Video struct {
	ID           string
	Title        string
	Description  string
	ChannelTitle string
	ThumbnailURL string
	PublishedAt  string
}

// Client calls the Data API with an API key.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient builds a client. An empty baseURL selects DefaultBaseURL.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{apiKey: apiKey, baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

type videosResp struct {
	Items []struct {
		ID      string  `json:"id"`
		Snippet snippet `json:"snippet"`
	} `json:"items"`
}

type snippet struct {
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	ChannelTitle string                `json:"channelTitle"`
	PublishedAt  string                `json:"publishedAt"`
	Thumbnails   map[string]*thumbnail `json:"thumbnails"`
}

type thumbnail struct {
	URL string `json:"url"`
}

// Video fetches the snippet for id.
func (c *Client) Video(ctx context.Context, id string) (*Video, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", id)
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/videos?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube data API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("youtube data API error (status %d): %s", resp.StatusCode, body)
	}

	var parsed videosResp
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("youtube data API: decode: %w", err)
	}
	if len(parsed.Items) == 0 {
		return nil, ErrVideoNotFound
	}

	sn := parsed.Items[0].Snippet
	return &Video{
		ID:           id,
		Title:        sn.Title,
		Description:  sn.Description,
		ChannelTitle: sn.ChannelTitle,
		ThumbnailURL: bestThumbnail(sn.Thumbnails),
		PublishedAt:  sn.PublishedAt,
	}, nil
}

// bestThumbnail prefers maxres, then high, then medium.
func bestThumbnail(thumbs map[string]*thumbnail) string {
	for _, size := range []string{"maxres", "high", "medium"} {
		if t := thumbs[size]; t != nil && t.URL != "" {
			return t.URL
		}
	}
	return ""
}
