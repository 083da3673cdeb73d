// Package registry tracks live remote subscriptions by path, guaranteeing at
// most one subscription per path and fencing out callbacks from handles that
// have been replaced or removed.
package registry

import (
	"log/slog"
	"sync"
)

// Handle is the cancellable side of a live subscription.
type Handle interface {
	Cancel() error
}

// Token identifies one registration of a path. Callbacks hold the token and
// check Current before mutating downstream state, so a late delivery from a
// cancelled handle can never resurrect session data.
type Token struct {
	path       string
	generation uint64
}

// Path returns the registered path.
func (t Token) Path() string {
	return t.path
}

type entry struct {
	handle     Handle
	generation uint64
}

var subscriptionRecorder = func(count int) {}

// RegisterSubscriptionRecorder allows external packages to observe the number
// of live subscriptions.
func RegisterSubscriptionRecorder(recorder func(count int)) {
	if recorder == nil {
		subscriptionRecorder = func(int) {}
		return
	}

	subscriptionRecorder = recorder
}

// Registry is a single-writer map from path to subscription handle.
type Registry struct {
	mu         sync.Mutex
	log        *slog.Logger
	entries    map[string]entry
	generation uint64
}

// New constructs an empty Registry.
func New(log *slog.Logger) *Registry {
	if log == nil {
		log = slog.Default()
	}

	return &Registry{
		log:     log,
		entries: make(map[string]entry),
	}
}

// RegisterIfAbsent registers a subscription for path unless one already
// exists. The factory receives the token that callbacks should carry; it is
// invoked with the registry lock held, so concurrent callers for the same
// path cannot race a second subscription into existence.
func (r *Registry) RegisterIfAbsent(path string, factory func(Token) (Handle, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[path]; exists {
		r.log.Debug("subscription already registered", "path", path)
		return nil
	}

	r.generation++
	token := Token{path: path, generation: r.generation}

	handle, err := factory(token)
	if err != nil {
		return err
	}

	r.entries[path] = entry{handle: handle, generation: token.generation}
	subscriptionRecorder(len(r.entries))

	return nil
}

// Current reports whether the token still identifies the live registration
// for its path.
func (r *Registry) Current(token Token) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, exists := r.entries[token.path]
	return exists && e.generation == token.generation
}

// Remove cancels and discards the handle for path, if any. Cancellation
// errors are logged and swallowed; the entry is cleared regardless.
func (r *Registry) Remove(path string) {
	r.mu.Lock()
	e, exists := r.entries[path]
	if exists {
		delete(r.entries, path)
	}
	count := len(r.entries)
	r.mu.Unlock()

	if !exists {
		return
	}

	subscriptionRecorder(count)

	if err := e.handle.Cancel(); err != nil {
		r.log.Warn("failed to cancel subscription", "path", path, "error", err)
	}
}

// RemoveAll cancels and discards every handle. Used on sign-out.
func (r *Registry) RemoveAll() {
	r.mu.Lock()
	entries := r.entries
	r.entries = make(map[string]entry)
	r.mu.Unlock()

	subscriptionRecorder(0)

	for path, e := range entries {
		if err := e.handle.Cancel(); err != nil {
			r.log.Warn("failed to cancel subscription", "path", path, "error", err)
		}
	}
}

// Len returns the number of live subscriptions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}
