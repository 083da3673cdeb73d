// Package lifecycle coordinates ordered teardown of the daemon's components.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Hook describes a named shutdown hook.
type Hook struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Shutdown runs registered hooks in reverse registration order, so components
// tear down before their dependencies: subscriptions close before the store
// client, the store client before the redis connection.
type Shutdown struct {
	mu          sync.Mutex
	hooks       []Hook
	log         *slog.Logger
	hookTimeout time.Duration
}

// NewShutdown constructs a Shutdown coordinator with a per-hook timeout.
func NewShutdown(log *slog.Logger, hookTimeout time.Duration) *Shutdown {
	if log == nil {
		log = slog.Default()
	}
	if hookTimeout <= 0 {
		hookTimeout = 10 * time.Second
	}

	return &Shutdown{log: log, hookTimeout: hookTimeout}
}

// Register adds a named shutdown hook. Later registrations run first.
func (s *Shutdown) Register(name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.hooks = append(s.hooks, Hook{Name: name, Fn: fn})
}

// Execute runs all registered hooks sequentially, newest first, each bounded
// by the hook timeout. It collects failures instead of stopping early.
func (s *Shutdown) Execute(ctx context.Context) error {
	s.mu.Lock()
	hooks := append([]Hook(nil), s.hooks...)
	s.mu.Unlock()

	start := time.Now()
	s.log.Info("shutdown sequence started", slog.Int("hook_count", len(hooks)))

	var errs []string
	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]

		hookCtx, cancel := context.WithTimeout(ctx, s.hookTimeout)
		s.log.Info("running shutdown hook", slog.String("hook", h.Name))

		if err := h.Fn(hookCtx); err != nil {
			s.log.Error("shutdown hook failed", slog.String("hook", h.Name), slog.Any("error", err))
			errs = append(errs, fmt.Sprintf("%s: %v", h.Name, err))
		}
		cancel()
	}

	s.log.Info("shutdown sequence finished", slog.Duration("elapsed", time.Since(start)))

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}
