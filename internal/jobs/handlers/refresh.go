// Package handlers implements the background task handlers.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/quickplay-games/sessiond/internal/apperr"
	"github.com/quickplay-games/sessiond/internal/jobs"
	"github.com/quickplay-games/sessiond/internal/session"
)

// BlitzRefreshHandler re-fetches the blitz definitions through the session core.
type BlitzRefreshHandler struct {
	session *session.Session
	log     *slog.Logger
}

func NewBlitzRefreshHandler(sess *session.Session, log *slog.Logger) *BlitzRefreshHandler {
	return &BlitzRefreshHandler{session: sess, log: log}
}

func (h *BlitzRefreshHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	defs, err := h.session.FetchBlitzDefinitions(ctx)
	if err != nil {
		if h.log != nil {
			h.log.ErrorContext(ctx, "blitz refresh failed", "task_type", t.Type(), "error", err)
		}
		return err
	}

	if h.log != nil {
		h.log.InfoContext(ctx, "blitz definitions refreshed", "count", len(defs))
	}

	return nil
}

// SessionRefreshHandler re-runs the one-shot session fetches. A missing
// signed-in user is not a task failure; observation simply has nothing to do.
type SessionRefreshHandler struct {
	session *session.Session
	log     *slog.Logger
}

func NewSessionRefreshHandler(sess *session.Session, log *slog.Logger) *SessionRefreshHandler {
	return &SessionRefreshHandler{session: sess, log: log}
}

func (h *SessionRefreshHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload jobs.SessionRefreshPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		if h.log != nil {
			h.log.ErrorContext(ctx, "session refresh: failed to decode payload",
				"task_type", t.Type(), "error", err)
		}
		return err
	}

	if payload.User {
		if _, err := h.session.GetUserOnce(ctx); err != nil && !errors.Is(err, apperr.ErrNoUserID) {
			return err
		}
	}

	if payload.HostConfig {
		if _, err := h.session.GetHostConfigOnce(ctx); err != nil && !errors.Is(err, apperr.ErrNoData) {
			return err
		}
	}

	if h.log != nil {
		h.log.InfoContext(ctx, "session refresh completed",
			"user", payload.User, "host_config", payload.HostConfig)
	}

	return nil
}
