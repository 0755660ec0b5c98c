package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/UkralStul/video-ideas-service/internal/apperr"
	"github.com/go-chi/chi/v5/middleware"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string      `json:"error"`
	Code    apperr.Code `json:"code"`
	Details any         `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := apperr.From(err)
	if e.Status >= http.StatusInternalServerError {
		slog.Error("request failed",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Any("error", err),
		)
	}
	writeJSON(w, e.Status, errorBody{Error: e.Message, Code: e.Code, Details: e.Details})
}

// decodeJSON reads the request body into dst. Type mismatches are reported
// as field validation errors, anything else as invalid input.
func decodeJSON(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &typeErr):
		return apperr.Validation([]apperr.FieldError{{
			Field:   typeErr.Field,
			Message: "must be " + typeErr.Type.String(),
		}})
	case errors.Is(err, io.EOF):
		return apperr.InvalidInput("request body is required")
	default:
		return apperr.InvalidInput("invalid JSON body: " + err.Error())
	}
}
