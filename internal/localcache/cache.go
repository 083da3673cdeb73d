// Package localcache persists last-known session entities on disk so the next
// launch can paint immediately, before any network connection exists. It is a
// best-effort mirror: reads never fail hard, and last write wins.
package localcache

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Key is one of the closed set of cache slots.
type Key string

const (
	KeyUser           Key = "user"
	KeyUserPublicInfo Key = "userPublicInfo"
	KeyHostConfig     Key = "hostConfig"
	KeyMissionsUser   Key = "missionsUser"
	KeyMissionConfigs Key = "missionConfigs"
	KeyLockdown       Key = "lockdown"
	KeyBirthday       Key = "birthday"
	KeyTermsAccepted  Key = "termsAccepted"
	KeyBlitzSeedCycle Key = "blitzSeedCycle"
)

// SessionKeys are cleared on sign-out. Birthday, terms acceptance and the
// blitz seed counter survive across accounts on the same device.
var SessionKeys = []Key{
	KeyUser,
	KeyUserPublicInfo,
	KeyHostConfig,
	KeyMissionsUser,
	KeyMissionConfigs,
	KeyLockdown,
}

const envelopeVersion = 1

// envelope is the on-disk format: a versioned wrapper so older snapshot files
// keep unmarshalling after the payload shape evolves.
type envelope struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"savedAt"`
	Payload json.RawMessage `json:"payload"`
}

// Store is a file-per-key snapshot store rooted at a directory.
type Store struct {
	dir string
	log *slog.Logger
}

// New creates the store, making sure the directory exists.
func New(dir string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Store{dir: dir, log: log}, nil
}

// Get reads the cached value for key into v. Any failure — missing file,
// corrupt envelope, shape mismatch — reports (false) and never an error, so
// bootstrap degrades to "no first paint" instead of crashing.
func (s *Store) Get(key Key, v any) bool {
	data, err := os.ReadFile(s.filename(key))
	if err != nil {
		return false
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		s.log.Warn("discarding corrupt cache file", "key", string(key), "error", err)
		return false
	}

	if err := json.Unmarshal(env.Payload, v); err != nil {
		s.log.Warn("discarding stale cache payload", "key", string(key), "error", err)
		return false
	}

	return true
}

// Put writes the value for key atomically (temp file + rename).
func (s *Store) Put(key Key, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}

	data, err := json.Marshal(envelope{
		Version: envelopeVersion,
		SavedAt: time.Now().UTC(),
		Payload: payload,
	})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, string(key)+".*.tmp")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), s.filename(key))
}

// Delete removes the snapshot for key, if present.
func (s *Store) Delete(key Key) {
	if err := os.Remove(s.filename(key)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove cache file", "key", string(key), "error", err)
	}
}

// Clear removes every session-scoped snapshot.
func (s *Store) Clear() {
	for _, key := range SessionKeys {
		s.Delete(key)
	}
}

func (s *Store) filename(key Key) string {
	return filepath.Join(s.dir, string(key)+".json")
}
