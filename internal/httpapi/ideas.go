package httpapi

import (
	"net/http"

	"github.com/UkralStul/video-ideas-service/internal/apperr"
	"github.com/UkralStul/video-ideas-service/internal/observer"
	"github.com/UkralStul/video-ideas-service/internal/service"
	"github.com/go-chi/chi/v5"
)

type analyzeRequest struct {
	URL string `json:"url"`
}

// analyze handles POST /analyze.
func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request) {
	if h.Analyzer == nil {
		writeError(w, r, apperr.Unavailable("video analysis is not configured on this server"))
		return
	}
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.URL == "" {
		writeError(w, r, apperr.InvalidInput("url is required"))
		return
	}

	result, err := h.Analyzer.Analyze(r.Context(), req.URL)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// createIdea handles POST /ideas.
func (h *Handlers) createIdea(w http.ResponseWriter, r *http.Request) {
	var in service.CreateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	idea, err := h.Ideas.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.Observer.Publish(observer.EventCreated, idea)
	writeJSON(w, http.StatusCreated, idea)
}

// listIdeas handles GET /ideas?userId=.
func (h *Handlers) listIdeas(w http.ResponseWriter, r *http.Request) {
	ideas, err := h.Ideas.List(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ideas)
}

// getIdea handles GET /ideas/{id}.
func (h *Handlers) getIdea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	idea, ok, err := h.Ideas.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		writeError(w, r, apperr.NotFound("Idea", id))
		return
	}
	writeJSON(w, http.StatusOK, idea)
}

// updateIdea handles PATCH /ideas/{id}.
func (h *Handlers) updateIdea(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	idea, err := h.Ideas.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.Observer.Publish(observer.EventUpdated, idea)
	writeJSON(w, http.StatusOK, idea)
}

// deleteIdea handles DELETE /ideas/{id}.
func (h *Handlers) deleteIdea(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// Looked up first so subscribers learn whose idea went away.
	existing, _, _ := h.Ideas.GetByID(r.Context(), id)

	if err := h.Ideas.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	h.Observer.Publish(observer.EventDeleted, existing)
	w.WriteHeader(http.StatusNoContent)
}

// likeIdea handles POST /ideas/{id}/like.
func (h *Handlers) likeIdea(w http.ResponseWriter, r *http.Request) {
	idea, err := h.Ideas.Like(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	h.Observer.Publish(observer.EventLiked, idea)
	writeJSON(w, http.StatusOK, idea)
}
