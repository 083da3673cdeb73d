package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/quickplay-games/sessiond/internal/apperr"
)

// Document is a raw payload fetched from the remote store.
type Document struct {
	Path string
	Raw  json.RawMessage
}

// Decode unmarshals the payload into v, reporting shape mismatches as a
// decode error.
func (d Document) Decode(v any) error {
	if err := json.Unmarshal(d.Raw, v); err != nil {
		return apperr.NewDecodeError(d.Path, err)
	}

	return nil
}

// Result is one delivery on a document subscription.
type Result struct {
	Doc Document
	Err error
}

// CollectionResult is one delivery on a collection subscription.
type CollectionResult struct {
	Docs []Document
	Err  error
}

// Handle represents a live subscription. Cancel is idempotent.
type Handle interface {
	ID() string
	Cancel() error
}

// Client is the remote store boundary. Implementations perform network I/O
// only; they never touch the local cache or session state.
type Client interface {
	// FetchOne reads a single document. Returns apperr.ErrNoData when absent.
	FetchOne(ctx context.Context, req Request) (Document, error)
	// FetchMany reads a collection honoring filter, order and limit. An empty
	// collection yields an empty slice and no error.
	FetchMany(ctx context.Context, req Request) ([]Document, error)
	// Subscribe registers a live document callback. The callback fires once
	// immediately with current state and again on every remote change, in
	// delivery order, until the handle is cancelled.
	Subscribe(ctx context.Context, req Request, onChange func(Result)) (Handle, error)
	// SubscribeMany is the collection variant of Subscribe.
	SubscribeMany(ctx context.Context, req Request, onChange func(CollectionResult)) (Handle, error)
	// Write merge-updates a document. Empty field sets are rejected.
	Write(ctx context.Context, req Request, fields map[string]any) error
	// Create creates or replaces a document.
	Create(ctx context.Context, req Request, fields map[string]any) error
}

var requestRecorder = func(op, status string, duration time.Duration) {}

// RegisterRequestRecorder allows external packages to observe store operations.
func RegisterRequestRecorder(recorder func(op, status string, duration time.Duration)) {
	if recorder == nil {
		requestRecorder = func(string, string, time.Duration) {}
		return
	}

	requestRecorder = recorder
}

func recordRequest(op string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}

	requestRecorder(op, status, time.Since(start))
}
