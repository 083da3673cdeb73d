package localcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(t.TempDir(), nil)
	require.NoError(t, err)
	return s
}

func TestStore_PutGet(t *testing.T) {
	s := newTestStore(t)

	type snapshot struct {
		ID      string `json:"id"`
		Balance int64  `json:"balance"`
	}

	require.NoError(t, s.Put(KeyUser, snapshot{ID: "u1", Balance: 500}))

	var got snapshot
	require.True(t, s.Get(KeyUser, &got))
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, int64(500), got.Balance)
}

func TestStore_Get_Missing(t *testing.T) {
	s := newTestStore(t)

	var got map[string]any
	assert.False(t, s.Get(KeyUser, &got))
}

func TestStore_Get_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "user.json"), []byte("{not json"), 0o644))

	var got map[string]any
	assert.False(t, s.Get(KeyUser, &got), "corrupt files read as absent, never as an error")
}

func TestStore_Get_ShapeMismatch(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put(KeyHostConfig, map[string]any{"minWithdrawal": 100}))

	var wrongShape []string
	assert.False(t, s.Get(KeyHostConfig, &wrongShape))
}

func TestStore_Put_Overwrites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put(KeyBlitzSeedCycle, map[string]int64{"gameNumber": 1}))
	require.NoError(t, s.Put(KeyBlitzSeedCycle, map[string]int64{"gameNumber": 2}))

	var got map[string]int64
	require.True(t, s.Get(KeyBlitzSeedCycle, &got))
	assert.Equal(t, int64(2), got["gameNumber"])
}

func TestStore_Clear_KeepsDeviceScopedKeys(t *testing.T) {
	s := newTestStore(t)

	for _, key := range SessionKeys {
		require.NoError(t, s.Put(key, map[string]string{"k": string(key)}))
	}
	require.NoError(t, s.Put(KeyBirthday, "1990-04-01"))
	require.NoError(t, s.Put(KeyTermsAccepted, true))
	require.NoError(t, s.Put(KeyBlitzSeedCycle, map[string]int64{"gameNumber": 7}))

	s.Clear()

	var m map[string]string
	for _, key := range SessionKeys {
		assert.Falsef(t, s.Get(key, &m), "session key %s survives Clear", key)
	}

	var birthday string
	assert.True(t, s.Get(KeyBirthday, &birthday))

	var terms bool
	assert.True(t, s.Get(KeyTermsAccepted, &terms))

	var cycle map[string]int64
	assert.True(t, s.Get(KeyBlitzSeedCycle, &cycle))
	assert.Equal(t, int64(7), cycle["gameNumber"])
}

func TestStore_Delete(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Put(KeyLockdown, map[string]bool{"active": true}))
	s.Delete(KeyLockdown)

	var got map[string]bool
	assert.False(t, s.Get(KeyLockdown, &got))

	// Deleting an absent key is a no-op.
	s.Delete(KeyLockdown)
}
