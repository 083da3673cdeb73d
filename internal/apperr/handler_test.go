package apperr

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandler_Handle(t *testing.T) {
	h := NewHandler(nil, false)

	msg, retryable := h.Handle(context.Background(), nil)
	assert.Empty(t, msg)
	assert.False(t, retryable)

	msg, retryable = h.Handle(context.Background(), ErrNoData)
	assert.Equal(t, "Nothing here yet", msg)
	assert.False(t, retryable)

	msg, retryable = h.Handle(context.Background(), NewRemoteError(errors.New("dial tcp: refused")))
	assert.Equal(t, "Connection problem, please try again later", msg)
	assert.True(t, retryable)

	// Errors outside the taxonomy fall back to the generic message.
	msg, retryable = h.Handle(context.Background(), errors.New("surprise"))
	assert.Equal(t, "Something went wrong, please try again later", msg)
	assert.False(t, retryable)
}

func TestHandler_RecordsHandledErrors(t *testing.T) {
	var codes []string
	RegisterErrorRecorder(func(code, severity string) {
		codes = append(codes, code+"/"+severity)
	})
	t.Cleanup(func() { RegisterErrorRecorder(nil) })

	h := NewHandler(nil, false)
	h.Handle(context.Background(), ErrNoData)
	h.Handle(context.Background(), errors.New("surprise"))

	assert.Equal(t, []string{"E100/low", "unknown/high"}, codes)
}
