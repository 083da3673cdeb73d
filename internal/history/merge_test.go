package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickplay-games/sessiond/internal/domain"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()

	ts, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return ts
}

func TestMergeGames(t *testing.T) {
	first := domain.GameHistoryModel{ID: "g1", Kind: domain.GameKindTournament, Prize: 100}

	games := MergeGames(nil, []domain.GameHistoryModel{first})
	require.Len(t, games, 1)
	assert.Equal(t, int64(100), games["g1"].Prize)

	// Re-delivery of the same id replaces, never duplicates.
	updated := first
	updated.Prize = 250
	games = MergeGames(games, []domain.GameHistoryModel{updated})
	require.Len(t, games, 1)
	assert.Equal(t, int64(250), games["g1"].Prize)

	// The blitz stream can update an id first seen on the tournament stream.
	blitz := domain.GameHistoryModel{ID: "g2", Kind: domain.GameKindBlitz}
	games = MergeGames(games, []domain.GameHistoryModel{blitz})
	assert.Len(t, games, 2)
}

func TestDayTitle(t *testing.T) {
	assert.Equal(t, "Mar 5, 2025", DayTitle(time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)))
	assert.Equal(t, "Dec 31, 2024", DayTitle(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)))
}

func TestBuildTimeline_BucketsByDay(t *testing.T) {
	games := map[string]domain.GameHistoryModel{
		"g1": {ID: "g1", OccurredAt: day(t, "2025-03-05T10:00:00Z")},
		"g2": {ID: "g2", OccurredAt: day(t, "2025-03-05T18:00:00Z")},
		"g3": {ID: "g3", OccurredAt: day(t, "2025-03-04T12:00:00Z")},
	}

	timeline := BuildTimeline(games, nil)

	require.Len(t, timeline, 2)
	require.Len(t, timeline["Mar 5, 2025"], 2)
	require.Len(t, timeline["Mar 4, 2025"], 1)

	// Within a day, entries are ordered newest first.
	assert.Equal(t, "g2", timeline["Mar 5, 2025"][0].Game.ID)
	assert.Equal(t, "g1", timeline["Mar 5, 2025"][1].Game.ID)
}

func TestBuildTimeline_DepositAllowList(t *testing.T) {
	when := day(t, "2025-03-05T10:00:00Z")
	deposits := []domain.DepositHistoryModel{
		{ID: "d1", Type: domain.DepositTypeDeposit, CreatedAt: when},
		{ID: "d2", Type: domain.DepositTypeHotStreak, CreatedAt: when},
		{ID: "d3", Type: domain.DepositTypeWithdrawal, CreatedAt: when},
		{ID: "d4", Type: domain.DepositTypeAdjustment, CreatedAt: when},
		{ID: "d5", Type: domain.DepositTypeMissionFinish, CreatedAt: when},
	}

	timeline := BuildTimeline(nil, deposits)

	require.Len(t, timeline, 1)
	entries := timeline["Mar 5, 2025"]
	require.Len(t, entries, 3, "withdrawals and adjustments stay off the timeline")

	seen := map[string]bool{}
	for _, e := range entries {
		assert.Equal(t, EntryKindDeposit, e.Kind)
		seen[e.Deposit.ID] = true
	}
	assert.True(t, seen["d1"])
	assert.True(t, seen["d2"])
	assert.True(t, seen["d5"])
}

func TestBuildTimeline_MergesSourcesOnCollision(t *testing.T) {
	games := map[string]domain.GameHistoryModel{
		"g1": {ID: "g1", OccurredAt: day(t, "2025-03-05T10:00:00Z")},
	}
	deposits := []domain.DepositHistoryModel{
		{ID: "d1", Type: domain.DepositTypeDeposit, CreatedAt: day(t, "2025-03-05T09:00:00Z")},
	}

	timeline := BuildTimeline(games, deposits)

	require.Len(t, timeline, 1)
	entries := timeline["Mar 5, 2025"]
	require.Len(t, entries, 2)

	// Game entries come first on collision; deposits are concatenated after.
	assert.Equal(t, EntryKindGame, entries[0].Kind)
	assert.Equal(t, EntryKindDeposit, entries[1].Kind)
}

func TestBuildTimeline_Empty(t *testing.T) {
	assert.Empty(t, BuildTimeline(nil, nil))
}

func TestBuildTimeline_Recomputable(t *testing.T) {
	games := map[string]domain.GameHistoryModel{
		"g1": {ID: "g1", OccurredAt: day(t, "2025-03-05T10:00:00Z")},
	}

	first := BuildTimeline(games, nil)
	second := BuildTimeline(games, nil)
	assert.Equal(t, first, second)
}
