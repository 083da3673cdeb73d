package domain

// MissionConfig is the server-defined description of a mission: what it pays
// and how it unlocks.
type MissionConfig struct {
	ID          string `json:"id"`
	Reward      int64  `json:"reward"`
	Description string `json:"description"`
	UnlockGames int    `json:"unlockGames"`
}

// MissionUser is the per-player mission progress. The maps are keyed by game id.
type MissionUser struct {
	ID           string           `json:"id"`
	CompletedFor map[string]int64 `json:"completedFor"`
	UnlockedFor  map[string]int64 `json:"unlockedFor"`
}

// MissionModel joins a MissionConfig with the player's MissionUser entry.
// It exists only when both sides are present.
type MissionModel struct {
	ID          string
	Reward      int64
	Description string
	UnlockGames int
	Completed   map[string]int64
	Unlocked    map[string]int64
}

// IsCompleted reports whether the mission is completed for the given game.
func (m MissionModel) IsCompleted(gameID string) bool {
	if m.Completed == nil {
		return false
	}

	_, ok := m.Completed[gameID]
	return ok
}

// UnlockEntry returns the unlock value for the given game, if any.
func (m MissionModel) UnlockEntry(gameID string) (int64, bool) {
	if m.Unlocked == nil {
		return 0, false
	}

	v, ok := m.Unlocked[gameID]
	return v, ok
}
