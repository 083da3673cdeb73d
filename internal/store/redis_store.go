package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"

	"github.com/quickplay-games/sessiond/internal/apperr"
)

const (
	docKeyPattern     = "%s:doc:%s"
	colKeyPattern     = "%s:col:%s"
	chgChannelPattern = "%s:chg:%s"
)

// RedisStore implements Client on top of a redis-backed document store:
// documents are JSON values at path-derived keys, collection membership lives
// in sets, and every write publishes the new state on a per-path channel.
type RedisStore struct {
	client    *redis.Client
	namespace string
	log       *slog.Logger
}

// NewRedisStore builds a store client scoped to the given namespace.
func NewRedisStore(client *redis.Client, namespace string, log *slog.Logger) *RedisStore {
	if log == nil {
		log = slog.Default()
	}

	return &RedisStore{
		client:    client,
		namespace: namespace,
		log:       log,
	}
}

func (s *RedisStore) docKey(path string) string {
	return fmt.Sprintf(docKeyPattern, s.namespace, path)
}

func (s *RedisStore) colKey(path string) string {
	return fmt.Sprintf(colKeyPattern, s.namespace, path)
}

func (s *RedisStore) changeChannel(path string) string {
	return fmt.Sprintf(chgChannelPattern, s.namespace, path)
}

// FetchOne reads a single document or field projection.
func (s *RedisStore) FetchOne(ctx context.Context, req Request) (doc Document, err error) {
	start := time.Now()
	defer func() { recordRequest("fetch_one", start, err) }()

	resolved, err := req.ResolveDocument()
	if err != nil {
		return Document{}, err
	}

	raw, err := s.fetchRaw(ctx, resolved.DocPath)
	if err != nil {
		return Document{}, err
	}

	if resolved.Kind == TargetField {
		raw, err = projectField(req.Path, raw, resolved.Field)
		if err != nil {
			return Document{}, err
		}
	}

	return Document{Path: req.Path, Raw: raw}, nil
}

// FetchMany reads a collection, applying filter, order and limit client-side.
func (s *RedisStore) FetchMany(ctx context.Context, req Request) (docs []Document, err error) {
	start := time.Now()
	defer func() { recordRequest("fetch_many", start, err) }()

	resolved, err := req.ResolveCollection()
	if err != nil {
		return nil, err
	}

	return s.fetchCollection(ctx, req, resolved.CollectionPath)
}

// Subscribe delivers the current document state immediately, then every
// published change in delivery order, until the handle is cancelled.
func (s *RedisStore) Subscribe(ctx context.Context, req Request, onChange func(Result)) (Handle, error) {
	start := time.Now()

	resolved, err := req.ResolveDocument()
	if err != nil {
		recordRequest("subscribe", start, err)
		return nil, err
	}

	pubsub := s.client.Subscribe(ctx, s.changeChannel(resolved.DocPath))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		wrapped := apperr.NewRemoteError(err)
		recordRequest("subscribe", start, wrapped)
		return nil, wrapped
	}
	recordRequest("subscribe", start, nil)

	handle := newRedisHandle(pubsub)

	go func() {
		raw, fetchErr := s.fetchRaw(ctx, resolved.DocPath)
		s.deliverDocument(req, resolved, raw, fetchErr, onChange)

		for msg := range pubsub.Channel() {
			s.deliverDocument(req, resolved, json.RawMessage(msg.Payload), nil, onChange)
		}
	}()

	return handle, nil
}

// SubscribeMany delivers the current collection state immediately, then
// re-reads the collection on every published change.
func (s *RedisStore) SubscribeMany(ctx context.Context, req Request, onChange func(CollectionResult)) (Handle, error) {
	start := time.Now()

	resolved, err := req.ResolveCollection()
	if err != nil {
		recordRequest("subscribe_many", start, err)
		return nil, err
	}

	pubsub := s.client.Subscribe(ctx, s.changeChannel(resolved.CollectionPath))
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		wrapped := apperr.NewRemoteError(err)
		recordRequest("subscribe_many", start, wrapped)
		return nil, wrapped
	}
	recordRequest("subscribe_many", start, nil)

	handle := newRedisHandle(pubsub)

	deliver := func() {
		docs, fetchErr := s.fetchCollection(ctx, req, resolved.CollectionPath)
		if fetchErr != nil {
			onChange(CollectionResult{Err: fetchErr})
			return
		}
		onChange(CollectionResult{Docs: docs})
	}

	go func() {
		deliver()

		for range pubsub.Channel() {
			deliver()
		}
	}()

	return handle, nil
}

// Write merge-updates a document and publishes the new state.
func (s *RedisStore) Write(ctx context.Context, req Request, fields map[string]any) (err error) {
	start := time.Now()
	defer func() { recordRequest("write", start, err) }()

	if len(fields) == 0 {
		return apperr.NewInvalidRequest("no fields to write")
	}

	resolved, err := req.ResolveDocument()
	if err != nil {
		return err
	}
	if resolved.Kind != TargetDocument {
		return apperr.NewInvalidEndpoint(req.Path)
	}

	existing := map[string]any{}
	raw, err := s.fetchRaw(ctx, resolved.DocPath)
	if err != nil && !errors.Is(err, apperr.ErrNoData) {
		return err
	}
	if err == nil {
		if uerr := json.Unmarshal(raw, &existing); uerr != nil {
			return apperr.NewInvalidResponse(fmt.Sprintf("stored document at %s is not an object", resolved.DocPath))
		}
	}

	for k, v := range fields {
		existing[k] = v
	}

	return s.storeDocument(ctx, resolved.DocPath, existing)
}

// Create creates or replaces a document and publishes the new state.
func (s *RedisStore) Create(ctx context.Context, req Request, fields map[string]any) (err error) {
	start := time.Now()
	defer func() { recordRequest("create", start, err) }()

	resolved, err := req.ResolveDocument()
	if err != nil {
		return err
	}
	if resolved.Kind != TargetDocument {
		return apperr.NewInvalidEndpoint(req.Path)
	}

	return s.storeDocument(ctx, resolved.DocPath, fields)
}

func (s *RedisStore) fetchRaw(ctx context.Context, docPath string) (json.RawMessage, error) {
	data, err := s.client.Get(ctx, s.docKey(docPath)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.ErrNoData
		}

		return nil, apperr.NewRemoteError(err)
	}

	return json.RawMessage(data), nil
}

func (s *RedisStore) fetchCollection(ctx context.Context, req Request, colPath string) ([]Document, error) {
	ids, err := s.client.SMembers(ctx, s.colKey(colPath)).Result()
	if err != nil {
		return nil, apperr.NewRemoteError(err)
	}
	sort.Strings(ids)

	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		docPath := colPath + "/" + id
		raw, ferr := s.fetchRaw(ctx, docPath)
		if ferr != nil {
			if errors.Is(ferr, apperr.ErrNoData) {
				continue
			}

			return nil, ferr
		}

		docs = append(docs, Document{Path: docPath, Raw: raw})
	}

	return applyQuery(req, docs)
}

func (s *RedisStore) storeDocument(ctx context.Context, docPath string, fields map[string]any) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return apperr.NewInvalidRequest(fmt.Sprintf("encode fields for %s", docPath))
	}

	segments := strings.Split(docPath, "/")
	parentCol := strings.Join(segments[:len(segments)-1], "/")
	id := segments[len(segments)-1]

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.docKey(docPath), payload, 0)
	pipe.SAdd(ctx, s.colKey(parentCol), id)
	pipe.Publish(ctx, s.changeChannel(docPath), payload)
	pipe.Publish(ctx, s.changeChannel(parentCol), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return apperr.NewRemoteError(err)
	}

	return nil
}

func (s *RedisStore) deliverDocument(req Request, resolved ResolvedPath, raw json.RawMessage, fetchErr error, onChange func(Result)) {
	if fetchErr != nil {
		onChange(Result{Err: fetchErr})
		return
	}

	if resolved.Kind == TargetField {
		projected, err := projectField(req.Path, raw, resolved.Field)
		if err != nil {
			onChange(Result{Err: err})
			return
		}
		raw = projected
	}

	onChange(Result{Doc: Document{Path: req.Path, Raw: raw}})
}

func projectField(path string, raw json.RawMessage, field string) (json.RawMessage, error) {
	var parent map[string]json.RawMessage
	if err := json.Unmarshal(raw, &parent); err != nil {
		return nil, apperr.NewDecodeError(path, err)
	}

	value, ok := parent[field]
	if !ok {
		return nil, apperr.ErrNoData
	}

	return value, nil
}

type redisHandle struct {
	id     string
	pubsub *redis.PubSub
	once   sync.Once
	err    error
}

func newRedisHandle(pubsub *redis.PubSub) *redisHandle {
	return &redisHandle{
		id:     uuid.NewString(),
		pubsub: pubsub,
	}
}

func (h *redisHandle) ID() string {
	return h.id
}

// Cancel closes the underlying pubsub, which ends the delivery goroutine.
func (h *redisHandle) Cancel() error {
	h.once.Do(func() {
		h.err = h.pubsub.Close()
	})

	return h.err
}
