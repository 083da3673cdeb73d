package session

import (
	"context"

	"github.com/quickplay-games/sessiond/internal/domain"
	"github.com/quickplay-games/sessiond/internal/localcache"
	"github.com/quickplay-games/sessiond/internal/missions"
	"github.com/quickplay-games/sessiond/internal/notify"
	"github.com/quickplay-games/sessiond/internal/store"
)

// ObserveMissions watches both mission inputs — the server-defined configs and
// the player's progress — and re-reconciles the mission models whenever either
// side changes.
func (s *Session) ObserveMissions(ctx context.Context) error {
	uid, ok := s.identity.CurrentUserID()
	if !ok {
		s.log.Info("skipping mission observation, nobody signed in")
		return nil
	}

	err := s.observeCollection(ctx, store.Request{Path: missionConfigsPath}, func(docs []store.Document) {
		configs := make([]domain.MissionConfig, 0, len(docs))
		for _, doc := range docs {
			var cfg domain.MissionConfig
			if derr := doc.Decode(&cfg); derr != nil {
				s.log.Warn("mission config failed to decode", "path", doc.Path, "error", derr)
				continue
			}
			configs = append(configs, cfg)
		}

		s.writeThrough(localcache.KeyMissionConfigs, configs)
		s.missionConfigs = configs
		s.applyMissions()
	})
	if err != nil {
		return err
	}

	return s.observeCollection(ctx, store.Request{Path: missionsUserPath(uid)}, func(docs []store.Document) {
		users := make([]domain.MissionUser, 0, len(docs))
		for _, doc := range docs {
			var mu domain.MissionUser
			if derr := doc.Decode(&mu); derr != nil {
				s.log.Warn("mission state failed to decode", "path", doc.Path, "error", derr)
				continue
			}
			users = append(users, mu)
		}

		s.writeThrough(localcache.KeyMissionsUser, users)
		s.missionsUser = users
		s.applyMissions()
	})
}

// applyMissions recomputes the mission models from the current inputs. The
// completion edges are detected against the outgoing list before it is
// replaced. Callers must hold s.mu.
func (s *Session) applyMissions() {
	models := missions.Reconcile(s.missionConfigs, s.missionsUser)
	finished := missions.CompletionEdges(s.missionModels, models, s.gameID)
	s.missionModels = models

	for _, model := range finished {
		s.dispatcher.Emit(notify.Event{
			Name:    notify.EventMissionFinished,
			Payload: notify.MissionFinishedPayload{Model: model},
		})
	}
}
