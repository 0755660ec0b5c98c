package youtube

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		url  string
		id   string
		want bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtube.com/watch?feature=share&v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", true},
		{"https://m.youtube.com/watch?v=abc_DEF-123", "abc_DEF-123", true},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtu.be/dQw4w9WgXcQ?si=tracking", "dQw4w9WgXcQ", true},
		{"  https://youtu.be/dQw4w9WgXcQ  ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=abc", "abc", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQEXTRA", "dQw4w9WgXcQEXTRA", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ#t=10", "dQw4w9WgXcQ", true},
		{"https://youtu.be/short", "short", true},
		{"https://youtu.be/short/extra", "short", true},
		{"https://www.youtube.com/watch?v=", "", false},
		{"https://youtu.be/", "", false},
		{"https://vimeo.com/123456", "", false},
		{"https://www.youtube.com/channel/UC123", "", false},
		{"not a url", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			id, ok := ExtractVideoID(tt.url)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestClient_Video(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "snippet", r.URL.Query().Get("part"))
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		if r.URL.Query().Get("id") != "dQw4w9WgXcQ" {
			w.Write([]byte(`{"items":[]}`))
			return
		}
		w.Write([]byte(`{"items":[{"id":"dQw4w9WgXcQ","snippet":{
			"title":"Ten SaaS ideas","description":"desc","channelTitle":"Founders",
			"publishedAt":"2024-01-02T03:04:05Z",
			"thumbnails":{"medium":{"url":"m.jpg"},"high":{"url":"h.jpg"}}}}]}`))
	}))
	defer srv.Close()

	c := NewClient("secret", srv.URL, srv.Client())

	v, err := c.Video(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "Ten SaaS ideas", v.Title)
	assert.Equal(t, "Founders", v.ChannelTitle)
	assert.Equal(t, "h.jpg", v.ThumbnailURL)
	assert.Equal(t, "2024-01-02T03:04:05Z", v.PublishedAt)

	_, err = c.Video(context.Background(), "xxxxxxxxxxx")
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestClient_VideoAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewClient("k", srv.URL, srv.Client()).Video(context.Background(), "dQw4w9WgXcQ")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrVideoNotFound)
	assert.Contains(t, err.Error(), "403")
}

func TestBestThumbnail(t *testing.T) {
	assert.Equal(t, "x.jpg", bestThumbnail(map[string]*thumbnail{"maxres": {URL: "x.jpg"}, "high": {URL: "h.jpg"}}))
	assert.Equal(t, "m.jpg", bestThumbnail(map[string]*thumbnail{"medium": {URL: "m.jpg"}, "default": {URL: "d.jpg"}}))
	assert.Equal(t, "", bestThumbnail(map[string]*thumbnail{"default": {URL: "d.jpg"}}))
	assert.Equal(t, "", bestThumbnail(nil))
}
