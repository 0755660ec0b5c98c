// Package httpapi exposes the analysis and idea endpoints over JSON/HTTP.
package httpapi

import (
	"context"
	"net/http"

	"github.com/UkralStul/video-ideas-service/internal/analysis"
	"github.com/UkralStul/video-ideas-service/internal/apperr"
	"github.com/UkralStul/video-ideas-service/internal/observer"
	"github.com/UkralStul/video-ideas-service/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"
)

// Analyzer produces the raw idea analysis for a video URL.
type Analyzer interface {
	Analyze(ctx context.Context, rawURL string) (*analysis.Result, error)
}

// Handlers holds everything the routes need.
type Handlers struct {
	Ideas *service.IdeaService
	// Analyzer is nil when the provider keys are not configured.
	Analyzer Analyzer
	Observer *observer.IdeaObserver

	// AnalyzeLimiter caps POST /analyze across all callers. Nil means unlimited.
	AnalyzeLimiter *rate.Limiter
}

// NewRouter mounts all routes on a chi router.
func NewRouter(h *Handlers) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.With(limit(h.AnalyzeLimiter)).Post("/analyze", h.analyze)

	router.Route("/ideas", func(r chi.Router) {
		r.Post("/", h.createIdea)
		r.Get("/", h.listIdeas)
		r.Get("/events", h.ideaEvents)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getIdea)
			r.Patch("/", h.updateIdea)
			r.Delete("/", h.deleteIdea)
			r.Post("/like", h.likeIdea)
		})
	})

	return router
}

// limit rejects requests once l has no tokens left.
func limit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if l == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				writeError(w, r, apperr.RateLimited("too many analysis requests, try again later"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
