// Package analysis runs a video through metadata lookup, transcription and
// language-model idea extraction.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UkralStul/video-ideas-service/internal/analysis/youtube"
	"github.com/UkralStul/video-ideas-service/internal/apperr"
)

// VideoSource looks up video metadata by id.
type VideoSource interface {
	Video(ctx context.Context, id string) (*youtube.Video, error)
}

// Transcriber turns an audio/video URL into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioURL string) (string, error)
}

// Completer sends a system+user prompt pair to a language model.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Result is the payload returned by POST /analyze.
type Result struct {
	Analysis         string `json:"analysis"`
	VideoTitle       string `json:"videoTitle"`
	VideoDescription string `json:"videoDescription"`
	ChannelTitle     string `json:"channelTitle"`
	ThumbnailURL     string `json:"thumbnailUrl"`
	PublishedAt      string `json:"publishedAt"`
}

// Analyzer sequences the three collaborators. Each step runs once; the
// first failure aborts the request.
type Analyzer struct {
	videos      VideoSource
	transcriber Transcriber
	model       Completer
}

func New(videos VideoSource, transcriber Transcriber, model Completer) *Analyzer {
	return &Analyzer{videos: videos, transcriber: transcriber, model: model}
}

// Analyze resolves rawURL to a video and returns the model's raw idea text
// together with the video metadata.
func (a *Analyzer) Analyze(ctx context.Context, rawURL string) (*Result, error) {
	id, ok := youtube.ExtractVideoID(rawURL)
	if !ok {
		return nil, apperr.InvalidInput("Invalid YouTube URL")
	}
	log := slog.With(slog.String("video_id", id))

	video, err := a.videos.Video(ctx, id)
	if errors.Is(err, youtube.ErrVideoNotFound) {
		return nil, apperr.NotFound("Video", id)
	}
	if err != nil {
		log.Error("video lookup failed", slog.Any("error", err))
		return nil, apperr.Upstream("video metadata", err)
	}

	transcript, err := a.transcriber.Transcribe(ctx, youtube.WatchURL(id))
	if err != nil {
		log.Error("transcription failed", slog.Any("error", err))
		return nil, apperr.Transcription(err)
	}

	text, err := a.model.Complete(ctx, SystemPrompt, UserPrompt(video.Title, video.Description, transcript))
	if err != nil {
		log.Error("language model call failed", slog.Any("error", err))
		return nil, apperr.Upstream("language model", err)
	}
	log.Info("video analyzed", slog.Int("transcript_chars", len(transcript)), slog.Int("analysis_chars", len(text)))

	return &Result{
		Analysis:         text,
		VideoTitle:       video.Title,
		VideoDescription: video.Description,
		ChannelTitle:     video.ChannelTitle,
		ThumbnailURL:     video.ThumbnailURL,
		PublishedAt:      video.PublishedAt,
	}, nil
}

// UserPrompt is the video context handed to the model.
func UserPrompt(title, description, transcript string) string {
	return fmt.Sprintf("\nTitle: %s\nDescription: %s\n\nTranscript:\n%s\n", title, description, transcript)
}
