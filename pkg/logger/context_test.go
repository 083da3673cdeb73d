package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, CorrelationIDFromContext(ctx))

	ctx = WithCorrelationID(ctx)
	id := CorrelationIDFromContext(ctx)
	assert.NotEmpty(t, id)

	// A second call keeps the existing identifier.
	assert.Equal(t, id, CorrelationIDFromContext(WithCorrelationID(ctx)))
}
