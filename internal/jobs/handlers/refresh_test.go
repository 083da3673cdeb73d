package handlers

import (
	"context"
	"log/slog"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickplay-games/sessiond/internal/auth"
	"github.com/quickplay-games/sessiond/internal/jobs"
	"github.com/quickplay-games/sessiond/internal/localcache"
	"github.com/quickplay-games/sessiond/internal/notify"
	"github.com/quickplay-games/sessiond/internal/registry"
	"github.com/quickplay-games/sessiond/internal/session"
	"github.com/quickplay-games/sessiond/internal/store"
)

func newTestSession(t *testing.T, identity auth.Identity) (*session.Session, *store.RedisStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := slog.New(slog.NewTextHandler(discard{}, &slog.HandlerOptions{Level: slog.LevelError}))
	storeClient := store.NewRedisStore(client, "test", log)

	reg := registry.New(log)
	t.Cleanup(reg.RemoveAll)

	cache, err := localcache.New(t.TempDir(), log)
	require.NoError(t, err)

	sess := session.New(log, storeClient, reg, cache, identity, notify.NewDispatcher(log), "solitaire")
	return sess, storeClient
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func TestBlitzRefreshHandler(t *testing.T) {
	sess, storeClient := newTestSession(t, auth.StaticIdentity("u1"))
	ctx := context.Background()

	require.NoError(t, storeClient.Create(ctx, store.Request{Path: "blitzDefinitions/b1"},
		map[string]any{"id": "b1", "buyIn": 100}))

	task, err := jobs.NewBlitzRefreshTask()
	require.NoError(t, err)

	handler := NewBlitzRefreshHandler(sess, nil)
	require.NoError(t, handler.ProcessTask(ctx, task))

	defs := sess.BlitzDefinitions()
	require.Len(t, defs, 1)
	assert.Equal(t, "b1", defs[0].ID)
}

func TestSessionRefreshHandler(t *testing.T) {
	sess, storeClient := newTestSession(t, auth.StaticIdentity("u1"))
	ctx := context.Background()

	require.NoError(t, storeClient.Create(ctx, store.Request{Path: "users/u1"},
		map[string]any{"balance": 500}))
	require.NoError(t, storeClient.Create(ctx, store.Request{Path: "hostConfig/main"},
		map[string]any{"minWithdrawal": 100}))

	task, err := jobs.NewSessionRefreshTask(true, true)
	require.NoError(t, err)

	handler := NewSessionRefreshHandler(sess, nil)
	require.NoError(t, handler.ProcessTask(ctx, task))

	user, ok := sess.User()
	require.True(t, ok)
	assert.Equal(t, int64(500), user.Balance)

	cfg, ok := sess.HostConfig()
	require.True(t, ok)
	assert.Equal(t, int64(100), cfg.MinWithdrawal)
}

func TestSessionRefreshHandler_NoIdentityIsNotAFailure(t *testing.T) {
	sess, _ := newTestSession(t, auth.StaticIdentity(""))

	task, err := jobs.NewSessionRefreshTask(true, false)
	require.NoError(t, err)

	handler := NewSessionRefreshHandler(sess, nil)
	assert.NoError(t, handler.ProcessTask(context.Background(), task))
}

func TestSessionRefreshHandler_BadPayload(t *testing.T) {
	sess, _ := newTestSession(t, auth.StaticIdentity("u1"))

	handler := NewSessionRefreshHandler(sess, nil)
	task := asynq.NewTask(jobs.TaskTypeSessionRefresh, []byte("{not json"))
	assert.Error(t, handler.ProcessTask(context.Background(), task))
}
