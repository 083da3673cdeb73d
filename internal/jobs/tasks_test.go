package jobs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBlitzRefreshTask(t *testing.T) {
	task, err := NewBlitzRefreshTask()
	require.NoError(t, err)
	assert.Equal(t, TaskTypeBlitzRefresh, task.Type())
}

func TestNewSessionRefreshTask(t *testing.T) {
	task, err := NewSessionRefreshTask(true, false)
	require.NoError(t, err)
	assert.Equal(t, TaskTypeSessionRefresh, task.Type())

	var payload SessionRefreshPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.True(t, payload.User)
	assert.False(t, payload.HostConfig)
}
