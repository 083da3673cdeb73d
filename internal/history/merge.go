// Package history merges the tournament, blitz and deposit streams into one
// date-bucketed timeline for presentation.
package history

import (
	"sort"
	"time"

	"github.com/quickplay-games/sessiond/internal/domain"
)

// EntryKind discriminates the two timeline entry sources.
type EntryKind string

const (
	EntryKindGame    EntryKind = "game"
	EntryKindDeposit EntryKind = "deposit"
)

// Entry is one row of the merged timeline.
type Entry struct {
	Kind       EntryKind
	Game       domain.GameHistoryModel
	Deposit    domain.DepositHistoryModel
	OccurredAt time.Time
}

// Timeline maps a day title to the entries that happened on that day.
type Timeline map[string][]Entry

// timelineDepositTypes is the allow-list of ledger types shown on the merged
// timeline. Other ledger entries stay in the raw deposit list only.
var timelineDepositTypes = map[domain.DepositType]struct{}{
	domain.DepositTypeDeposit:         {},
	domain.DepositTypeHotStreak:       {},
	domain.DepositTypeAccountCreation: {},
	domain.DepositTypeMissionFinish:   {},
	domain.DepositTypeReferral:        {},
	domain.DepositTypeNewGameBonus:    {},
}

// MergeGames folds an update batch into the identity-keyed game set. A later
// arrival of a known id replaces the earlier entry regardless of source stream.
func MergeGames(games map[string]domain.GameHistoryModel, updates []domain.GameHistoryModel) map[string]domain.GameHistoryModel {
	if games == nil {
		games = make(map[string]domain.GameHistoryModel, len(updates))
	}

	for _, g := range updates {
		games[g.ID] = g
	}

	return games
}

// DayTitle renders the human-readable bucket key for a timestamp.
func DayTitle(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// BuildTimeline recomputes the merged timeline from scratch: games and
// allow-listed deposits are each ordered newest-first, bucketed by day title,
// and the two per-source buckets are merged key-wise, concatenating on
// collision.
func BuildTimeline(games map[string]domain.GameHistoryModel, deposits []domain.DepositHistoryModel) Timeline {
	gameEntries := make([]Entry, 0, len(games))
	for _, g := range games {
		gameEntries = append(gameEntries, Entry{
			Kind:       EntryKindGame,
			Game:       g,
			OccurredAt: g.OccurredAt,
		})
	}

	depositEntries := make([]Entry, 0, len(deposits))
	for _, d := range deposits {
		if _, ok := timelineDepositTypes[d.Type]; !ok {
			continue
		}

		depositEntries = append(depositEntries, Entry{
			Kind:       EntryKindDeposit,
			Deposit:    d,
			OccurredAt: d.CreatedAt,
		})
	}

	merged := bucketByDay(gameEntries)
	for title, entries := range bucketByDay(depositEntries) {
		merged[title] = append(merged[title], entries...)
	}

	return merged
}

func bucketByDay(entries []Entry) Timeline {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})

	buckets := make(Timeline)
	for _, e := range entries {
		title := DayTitle(e.OccurredAt)
		buckets[title] = append(buckets[title], e)
	}

	return buckets
}
