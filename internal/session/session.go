// Package session holds the single-writer in-memory session of the signed-in
// player: the resident entity set, its replacement operations, and the wiring
// between the remote store, the local cache and the change notifier.
package session

import (
	"log/slog"
	"sync"

	"github.com/quickplay-games/sessiond/internal/auth"
	"github.com/quickplay-games/sessiond/internal/domain"
	"github.com/quickplay-games/sessiond/internal/history"
	"github.com/quickplay-games/sessiond/internal/localcache"
	"github.com/quickplay-games/sessiond/internal/notify"
	"github.com/quickplay-games/sessiond/internal/registry"
	"github.com/quickplay-games/sessiond/internal/store"
)

// Session owns the canonical in-memory copies of the player's entities. All
// mutation is serialized through its mutex; subscription callbacks take the
// lock before touching state, which is the only synchronization boundary.
type Session struct {
	mu         sync.Mutex
	log        *slog.Logger
	store      store.Client
	registry   *registry.Registry
	cache      *localcache.Store
	identity   auth.Identity
	dispatcher *notify.Dispatcher
	gameID     string

	user           *domain.User
	publicInfo     *domain.UserPublicInfo
	hostConfig     *domain.HostConfig
	lockdown       *domain.LockdownStatus
	missionConfigs []domain.MissionConfig
	missionsUser   []domain.MissionUser
	missionModels  []domain.MissionModel
	games          map[string]domain.GameHistoryModel
	deposits       []domain.DepositHistoryModel
	blitzDefs      []domain.BlitzDefinition
	otherGames     []domain.OtherGame
}

// New wires a Session from its collaborators.
func New(
	log *slog.Logger,
	client store.Client,
	reg *registry.Registry,
	cache *localcache.Store,
	identity auth.Identity,
	dispatcher *notify.Dispatcher,
	gameID string,
) *Session {
	if log == nil {
		log = slog.Default()
	}

	return &Session{
		log:        log,
		store:      client,
		registry:   reg,
		cache:      cache,
		identity:   identity,
		dispatcher: dispatcher,
		gameID:     gameID,
		games:      make(map[string]domain.GameHistoryModel),
	}
}

// Events exposes the change event stream for the screen layer.
func (s *Session) Events(buffer int) (<-chan notify.Event, func()) {
	return s.dispatcher.Subscribe(buffer)
}

// setUser replaces the resident user and emits the field-level diff.
// Callers must hold s.mu.
func (s *Session) setUser(new *domain.User) {
	old := s.user
	s.user = new
	s.dispatcher.Emit(notify.DiffUser(old, new)...)
}

// setPublicInfo replaces the resident profile. Callers must hold s.mu.
func (s *Session) setPublicInfo(new *domain.UserPublicInfo) {
	old := s.publicInfo
	s.publicInfo = new
	s.dispatcher.Emit(notify.DiffPublicInfo(old, new)...)
}

// setHostConfig replaces the host configuration. Callers must hold s.mu.
func (s *Session) setHostConfig(new *domain.HostConfig) {
	old := s.hostConfig
	s.hostConfig = new
	s.dispatcher.Emit(notify.DiffHostConfig(old, new)...)
}

// setLockdown replaces the lockdown status. Callers must hold s.mu.
func (s *Session) setLockdown(new *domain.LockdownStatus) {
	old := s.lockdown
	s.lockdown = new
	if new != nil && (old == nil || old.Active != new.Active) {
		s.dispatcher.Emit(notify.Event{Name: notify.EventLockdownChanged})
	}
}

// setBlitzDefinitions replaces the blitz definitions. Callers must hold s.mu.
func (s *Session) setBlitzDefinitions(new []domain.BlitzDefinition) {
	events := notify.DiffBlitzDefinitions(len(s.blitzDefs), new)
	s.blitzDefs = new
	s.dispatcher.Emit(events...)
}

// User returns a copy of the resident user, if any.
func (s *Session) User() (domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return domain.User{}, false
	}

	return *s.user, true
}

// PublicInfo returns a copy of the resident public profile, if any.
func (s *Session) PublicInfo() (domain.UserPublicInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.publicInfo == nil {
		return domain.UserPublicInfo{}, false
	}

	return *s.publicInfo, true
}

// HostConfig returns a copy of the resident host configuration, if any.
func (s *Session) HostConfig() (domain.HostConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hostConfig == nil {
		return domain.HostConfig{}, false
	}

	return *s.hostConfig, true
}

// Lockdown returns a copy of the lockdown status, if any.
func (s *Session) Lockdown() (domain.LockdownStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lockdown == nil {
		return domain.LockdownStatus{}, false
	}

	return *s.lockdown, true
}

// MissionModels returns a copy of the reconciled mission list.
func (s *Session) MissionModels() []domain.MissionModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	models := make([]domain.MissionModel, len(s.missionModels))
	copy(models, s.missionModels)
	return models
}

// BlitzDefinitions returns a copy of the active blitz definitions.
func (s *Session) BlitzDefinitions() []domain.BlitzDefinition {
	s.mu.Lock()
	defer s.mu.Unlock()

	defs := make([]domain.BlitzDefinition, len(s.blitzDefs))
	copy(defs, s.blitzDefs)
	return defs
}

// OtherGames returns a copy of the cross-promoted games list.
func (s *Session) OtherGames() []domain.OtherGame {
	s.mu.Lock()
	defer s.mu.Unlock()

	games := make([]domain.OtherGame, len(s.otherGames))
	copy(games, s.otherGames)
	return games
}

// Timeline returns the current merged history timeline.
func (s *Session) Timeline() history.Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()

	return history.BuildTimeline(s.games, s.deposits)
}

// Deposits returns a copy of the raw deposit ledger, unfiltered.
func (s *Session) Deposits() []domain.DepositHistoryModel {
	s.mu.Lock()
	defer s.mu.Unlock()

	deposits := make([]domain.DepositHistoryModel, len(s.deposits))
	copy(deposits, s.deposits)
	return deposits
}

// PrepareFromLocalStorage seeds resident state from the last-known snapshots,
// synchronously and without any network call. The first assignment diffs
// against absent state, so a populated snapshot notifies the screen layer.
func (s *Session) PrepareFromLocalStorage() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user domain.User
	if s.cache.Get(localcache.KeyUser, &user) {
		s.setUser(&user)
	}

	var info domain.UserPublicInfo
	if s.cache.Get(localcache.KeyUserPublicInfo, &info) {
		s.setPublicInfo(&info)
	}

	var cfg domain.HostConfig
	if s.cache.Get(localcache.KeyHostConfig, &cfg) {
		s.setHostConfig(&cfg)
	}

	var lockdown domain.LockdownStatus
	if s.cache.Get(localcache.KeyLockdown, &lockdown) {
		s.setLockdown(&lockdown)
	}

	var configs []domain.MissionConfig
	var users []domain.MissionUser
	gotConfigs := s.cache.Get(localcache.KeyMissionConfigs, &configs)
	gotUsers := s.cache.Get(localcache.KeyMissionsUser, &users)
	if gotConfigs || gotUsers {
		s.missionConfigs = configs
		s.missionsUser = users
		s.applyMissions()
	}
}

// ResetSession tears down every live subscription, clears resident entities
// and removes the session-scoped cache snapshots. Used on sign-out.
func (s *Session) ResetSession() {
	s.registry.RemoveAll()

	s.mu.Lock()
	s.user = nil
	s.publicInfo = nil
	s.hostConfig = nil
	s.lockdown = nil
	s.missionConfigs = nil
	s.missionsUser = nil
	s.missionModels = nil
	s.games = make(map[string]domain.GameHistoryModel)
	s.deposits = nil
	s.blitzDefs = nil
	s.otherGames = nil
	s.mu.Unlock()

	s.cache.Clear()
}
