package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

type Scheduler interface {
	RegisterTasks() error
	Run()
	Shutdown()
}

type scheduler struct {
	asynqScheduler *asynq.Scheduler
	blitzSpec      string
	sessionSpec    string
	log            *slog.Logger
}

// NewScheduler builds a cron-driven scheduler for the refresh tasks. Empty
// specs disable the corresponding task.
func NewScheduler(redisOpt asynq.RedisConnOpt, blitzSpec, sessionSpec string, log *slog.Logger) Scheduler {
	return &scheduler{
		asynqScheduler: asynq.NewScheduler(redisOpt, nil),
		blitzSpec:      blitzSpec,
		sessionSpec:    sessionSpec,
		log:            log,
	}
}

func (s *scheduler) RegisterTasks() error {
	if s.blitzSpec != "" {
		task, err := NewBlitzRefreshTask()
		if err != nil {
			return err
		}

		if _, err := s.asynqScheduler.Register(s.blitzSpec, task); err != nil {
			return err
		}
	}

	if s.sessionSpec != "" {
		task, err := NewSessionRefreshTask(false, true)
		if err != nil {
			return err
		}

		if _, err := s.asynqScheduler.Register(s.sessionSpec, task); err != nil {
			return err
		}
	}

	if s.log != nil {
		s.log.InfoContext(context.Background(), "scheduler: registered refresh tasks",
			"blitz_spec", s.blitzSpec, "session_spec", s.sessionSpec)
	}

	return nil
}

func (s *scheduler) Run() {
	if s.log != nil {
		s.log.InfoContext(context.Background(), "scheduler: starting")
	}

	go func() {
		if err := s.asynqScheduler.Run(); err != nil && s.log != nil {
			s.log.ErrorContext(context.Background(), "scheduler: run failed", "error", err)
		}
	}()
}

func (s *scheduler) Shutdown() {
	if s.log != nil {
		s.log.InfoContext(context.Background(), "scheduler: shutting down")
	}

	s.asynqScheduler.Shutdown()
}
