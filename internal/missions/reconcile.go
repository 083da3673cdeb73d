// Package missions joins server mission configs with per-player progress and
// detects completion transitions.
package missions

import "github.com/quickplay-games/sessiond/internal/domain"

// Reconcile joins configs with the player's mission state. A config without a
// matching user entry yields no model: the mission is not shown yet.
func Reconcile(configs []domain.MissionConfig, users []domain.MissionUser) []domain.MissionModel {
	byID := make(map[string]domain.MissionUser, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	models := make([]domain.MissionModel, 0, len(configs))
	for _, cfg := range configs {
		u, ok := byID[cfg.ID]
		if !ok {
			continue
		}

		models = append(models, domain.MissionModel{
			ID:          cfg.ID,
			Reward:      cfg.Reward,
			Description: cfg.Description,
			UnlockGames: cfg.UnlockGames,
			Completed:   u.CompletedFor,
			Unlocked:    u.UnlockedFor,
		})
	}

	return models
}

// CompletionEdges returns the models that transitioned from incomplete to
// complete for gameID between the old and new lists, and that carry an unlock
// entry for gameID. A model with no prior entry never edges: first-ever
// population is not a completion.
func CompletionEdges(old, new []domain.MissionModel, gameID string) []domain.MissionModel {
	prevByID := make(map[string]domain.MissionModel, len(old))
	for _, m := range old {
		prevByID[m.ID] = m
	}

	var finished []domain.MissionModel
	for _, m := range new {
		prev, ok := prevByID[m.ID]
		if !ok {
			continue
		}

		if prev.IsCompleted(gameID) || !m.IsCompleted(gameID) {
			continue
		}

		if _, unlocked := m.UnlockEntry(gameID); !unlocked {
			continue
		}

		finished = append(finished, m)
	}

	return finished
}
