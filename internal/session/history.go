package session

import (
	"context"

	"github.com/quickplay-games/sessiond/internal/domain"
	"github.com/quickplay-games/sessiond/internal/history"
	"github.com/quickplay-games/sessiond/internal/notify"
	"github.com/quickplay-games/sessiond/internal/store"
)

// ObserveGameHistory watches the tournament and blitz result streams. Both
// fold into one identity-keyed set, so the same id arriving from either
// stream replaces rather than duplicates.
func (s *Session) ObserveGameHistory(ctx context.Context) error {
	uid, ok := s.identity.CurrentUserID()
	if !ok {
		s.log.Info("skipping history observation, nobody signed in")
		return nil
	}

	err := s.observeCollection(ctx, store.Request{Path: tournamentResultsPath(uid)}, func(docs []store.Document) {
		s.foldGameResults(docs, domain.GameKindTournament)
	})
	if err != nil {
		return err
	}

	return s.observeCollection(ctx, store.Request{Path: blitzResultsPath(uid)}, func(docs []store.Document) {
		s.foldGameResults(docs, domain.GameKindBlitz)
	})
}

// ObserveDepositHistory watches the deposit ledger. The raw list is kept in
// full; the timeline allow-list is applied at merge time.
func (s *Session) ObserveDepositHistory(ctx context.Context) error {
	uid, ok := s.identity.CurrentUserID()
	if !ok {
		s.log.Info("skipping deposit observation, nobody signed in")
		return nil
	}

	return s.observeCollection(ctx, store.Request{Path: depositsPath(uid)}, func(docs []store.Document) {
		deposits := make([]domain.DepositHistoryModel, 0, len(docs))
		for _, doc := range docs {
			var d domain.DepositHistoryModel
			if derr := doc.Decode(&d); derr != nil {
				s.log.Warn("deposit entry failed to decode", "path", doc.Path, "error", derr)
				continue
			}
			deposits = append(deposits, d)
		}

		s.deposits = deposits
		s.emitTimeline()
	})
}

// foldGameResults merges a result batch into the game set and republishes the
// timeline. Callers must hold s.mu.
func (s *Session) foldGameResults(docs []store.Document, kind domain.GameKind) {
	updates := make([]domain.GameHistoryModel, 0, len(docs))
	for _, doc := range docs {
		var g domain.GameHistoryModel
		if err := doc.Decode(&g); err != nil {
			s.log.Warn("game result failed to decode", "path", doc.Path, "error", err)
			continue
		}
		if g.Kind == "" {
			g.Kind = kind
		}
		updates = append(updates, g)
	}

	s.games = history.MergeGames(s.games, updates)
	s.emitTimeline()
}

// emitTimeline recomputes the merged timeline from scratch and emits one
// HistoryUpdated per recomputation. Callers must hold s.mu.
func (s *Session) emitTimeline() {
	timeline := history.BuildTimeline(s.games, s.deposits)
	s.dispatcher.Emit(notify.Event{
		Name:    notify.EventHistoryUpdated,
		Payload: timeline,
	})
}
