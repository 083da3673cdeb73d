package session

import (
	"context"

	"github.com/quickplay-games/sessiond/internal/apperr"
	"github.com/quickplay-games/sessiond/internal/blitz"
	"github.com/quickplay-games/sessiond/internal/domain"
	"github.com/quickplay-games/sessiond/internal/localcache"
	"github.com/quickplay-games/sessiond/internal/store"
)

// GetHostConfigOnce fetches the host configuration singleton.
func (s *Session) GetHostConfigOnce(ctx context.Context) (domain.HostConfig, error) {
	doc, err := s.store.FetchOne(ctx, store.Request{Path: hostConfigPath})
	if err != nil {
		return domain.HostConfig{}, err
	}

	var cfg domain.HostConfig
	if err := doc.Decode(&cfg); err != nil {
		return domain.HostConfig{}, apperr.ErrNoData
	}

	s.writeThrough(localcache.KeyHostConfig, cfg)

	s.mu.Lock()
	s.setHostConfig(&cfg)
	s.mu.Unlock()

	return cfg, nil
}

// ObserveHostConfig keeps the host configuration current.
func (s *Session) ObserveHostConfig(ctx context.Context) error {
	return s.observeDocument(ctx, hostConfigPath, func(doc store.Document) {
		var cfg domain.HostConfig
		if err := doc.Decode(&cfg); err != nil {
			s.log.Warn("host config update failed to decode", "error", err)
			return
		}

		s.writeThrough(localcache.KeyHostConfig, cfg)
		s.setHostConfig(&cfg)
	})
}

// ObserveLockdown watches the lockdown field inside the global app status
// document; the odd path resolves to a field projection.
func (s *Session) ObserveLockdown(ctx context.Context) error {
	return s.observeDocument(ctx, lockdownPath, func(doc store.Document) {
		var status domain.LockdownStatus
		if err := doc.Decode(&status); err != nil {
			s.log.Warn("lockdown update failed to decode", "error", err)
			return
		}

		s.writeThrough(localcache.KeyLockdown, status)
		s.setLockdown(&status)
	})
}

// FetchBlitzDefinitions loads the blitz entry tiers, keeping only non-archived
// definitions. The fetched event fires only on the first successful population.
func (s *Session) FetchBlitzDefinitions(ctx context.Context) ([]domain.BlitzDefinition, error) {
	docs, err := s.store.FetchMany(ctx, store.Request{Path: blitzDefinitionsPath})
	if err != nil {
		return nil, err
	}

	defs := make([]domain.BlitzDefinition, 0, len(docs))
	for _, doc := range docs {
		var def domain.BlitzDefinition
		if derr := doc.Decode(&def); derr != nil {
			s.log.Warn("blitz definition failed to decode", "path", doc.Path, "error", derr)
			continue
		}
		defs = append(defs, def)
	}

	active := blitz.FilterActive(defs)

	s.mu.Lock()
	s.setBlitzDefinitions(active)
	s.mu.Unlock()

	return active, nil
}

// ObserveOtherGames keeps the cross-promoted games carousel current.
func (s *Session) ObserveOtherGames(ctx context.Context) error {
	return s.observeCollection(ctx, store.Request{Path: otherGamesPath}, func(docs []store.Document) {
		games := make([]domain.OtherGame, 0, len(docs))
		for _, doc := range docs {
			var game domain.OtherGame
			if err := doc.Decode(&game); err != nil {
				s.log.Warn("other game failed to decode", "path", doc.Path, "error", err)
				continue
			}
			if game.Archived {
				continue
			}
			games = append(games, game)
		}

		s.otherGames = games
	})
}
