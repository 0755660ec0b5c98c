package transcript

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *AssemblyAI {
	return NewAssemblyAI(Config{APIKey: "key", BaseURL: srv.URL, PollInterval: time.Millisecond}, srv.Client())
}

func TestTranscribe_PollsUntilCompleted(t *testing.T) {
	var polls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("Authorization"))
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v2/transcript":
			var req submitRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "https://www.youtube.com/watch?v=abc", req.AudioURL)
			assert.Equal(t, "en", req.LanguageCode)
			w.Write([]byte(`{"id":"t1","status":"queued"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v2/transcript/t1":
			if polls.Add(1) < 3 {
				w.Write([]byte(`{"id":"t1","status":"processing"}`))
				return
			}
			w.Write([]byte(`{"id":"t1","status":"completed","text":"hello world"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	text, err := newTestClient(srv).Transcribe(context.Background(), "https://www.youtube.com/watch?v=abc")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.Equal(t, int32(3), polls.Load())
}

func TestTranscribe_JobError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.Write([]byte(`{"id":"t2","status":"queued"}`))
			return
		}
		w.Write([]byte(`{"id":"t2","status":"error","error":"Download error"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Transcribe(context.Background(), "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Download error")
}

func TestTranscribe_EmptyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"t3","status":"completed","text":"  "}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Transcribe(context.Background(), "u")
	assert.ErrorIs(t, err, ErrEmptyTranscript)
}

func TestTranscribe_SubmitRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Transcribe(context.Background(), "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestTranscribe_StopsOnCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"t4","status":"processing"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestClient(srv).Transcribe(ctx, "u")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
