package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

type pgLikeError struct{}

func (pgLikeError) Error() string    { return "duplicate key" }
func (pgLikeError) SQLState() string { return "23505" }

func TestIs_FollowsWrapChain(t *testing.T) {
	err := fmt.Errorf("handler: %w", NotFound("idea", "42"))

	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeValidation))
	assert.False(t, Is(errors.New("plain"), CodeNotFound))
}

func TestFrom_WrapsUnknownErrors(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")
	e := From(cause)
	assert.Equal(t, CodeInternal, e.Code)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.Equal(t, "internal error", e.Message)
	assert.ErrorIs(t, e, cause)

	nf := NotFound("idea", "1")
	assert.Same(t, nf, From(fmt.Errorf("wrapped: %w", nf)))
}

func TestStorage_KeepsDriverCode(t *testing.T) {
	e := Storage("create idea", fmt.Errorf("insert: %w", pgLikeError{}))

	assert.Equal(t, CodeStorage, e.Code)
	assert.Equal(t, map[string]any{"dbCode": "23505"}, e.Details)
	assert.ErrorIs(t, e, e.Err)
	assert.Contains(t, e.Error(), "duplicate key")
}

func TestTranscription_IsBadRequest(t *testing.T) {
	cause := errors.New("audio unavailable")
	e := Transcription(cause)

	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.ErrorIs(t, e, cause)
}

func TestUnavailable(t *testing.T) {
	e := Unavailable("analysis is not configured")

	assert.Equal(t, CodeUnavailable, e.Code)
	assert.Equal(t, http.StatusServiceUnavailable, e.Status)
}
