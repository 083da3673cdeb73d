// Package jobs schedules and runs the background refresh tasks that keep
// slow-moving remote data (blitz tiers, host limits) from going stale between
// pushes.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TaskTypeBlitzRefresh   = "blitz:refresh"
	TaskTypeSessionRefresh = "session:refresh"
)

const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// BlitzRefreshPayload is currently empty; the task always refreshes the full
// definition list.
type BlitzRefreshPayload struct{}

// SessionRefreshPayload selects which one-shot fetches to re-run.
type SessionRefreshPayload struct {
	User       bool `json:"user"`
	HostConfig bool `json:"host_config"`
}

func NewBlitzRefreshTask() (*asynq.Task, error) {
	payload, err := json.Marshal(BlitzRefreshPayload{})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskTypeBlitzRefresh, payload, asynq.Queue(QueueLow)), nil
}

func NewSessionRefreshTask(user, hostConfig bool) (*asynq.Task, error) {
	payload, err := json.Marshal(SessionRefreshPayload{User: user, HostConfig: hostConfig})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(TaskTypeSessionRefresh, payload, asynq.Queue(QueueDefault)), nil
}
