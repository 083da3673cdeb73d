package session

import (
	"context"
	"errors"

	"github.com/quickplay-games/sessiond/internal/apperr"
	"github.com/quickplay-games/sessiond/internal/domain"
	"github.com/quickplay-games/sessiond/internal/localcache"
	"github.com/quickplay-games/sessiond/internal/registry"
	"github.com/quickplay-games/sessiond/internal/store"
)

// GetUserOnce fetches the signed-in player's document, writes it through to
// the local cache, replaces the resident User and returns it.
func (s *Session) GetUserOnce(ctx context.Context) (domain.User, error) {
	uid, ok := s.identity.CurrentUserID()
	if !ok {
		return domain.User{}, apperr.ErrNoUserID
	}

	doc, err := s.store.FetchOne(ctx, store.Request{Path: userPath(uid)})
	if err != nil {
		return domain.User{}, err
	}

	var user domain.User
	if err := doc.Decode(&user); err != nil {
		s.log.Warn("user document failed to decode", "uid", uid, "error", err)
		return domain.User{}, apperr.ErrNoData
	}
	user.ID = uid

	s.writeThrough(localcache.KeyUser, user)

	s.mu.Lock()
	s.setUser(&user)
	s.mu.Unlock()

	return user, nil
}

// ObserveUser keeps the resident User current with the remote document. It is
// idempotent: a second call for the same player does not create a second
// subscription. Starting observation before sign-in completes is not an
// error; it just does nothing.
func (s *Session) ObserveUser(ctx context.Context) error {
	uid, ok := s.identity.CurrentUserID()
	if !ok {
		s.log.Info("skipping user observation, nobody signed in")
		return nil
	}

	return s.observeDocument(ctx, userPath(uid), func(doc store.Document) {
		var user domain.User
		if err := doc.Decode(&user); err != nil {
			s.log.Warn("user update failed to decode", "uid", uid, "error", err)
			return
		}
		user.ID = uid

		s.writeThrough(localcache.KeyUser, user)
		s.setUser(&user)
	})
}

// PushUser merge-updates the player's document and replaces the resident User
// with the freshly written state.
func (s *Session) PushUser(ctx context.Context, fields map[string]any) error {
	uid, ok := s.identity.CurrentUserID()
	if !ok {
		return apperr.ErrNoUserID
	}

	req := store.Request{Path: userPath(uid)}
	if err := s.store.Write(ctx, req, fields); err != nil {
		return err
	}

	doc, err := s.store.FetchOne(ctx, req)
	if err != nil {
		return err
	}

	var user domain.User
	if err := doc.Decode(&user); err != nil {
		return apperr.ErrNoData
	}
	user.ID = uid

	s.writeThrough(localcache.KeyUser, user)

	s.mu.Lock()
	s.setUser(&user)
	s.mu.Unlock()

	return nil
}

// GetPublicInfoOnce fetches a public profile. The signed-in player's own copy
// becomes resident state; any other uid yields a transient, request-scoped
// value that never touches the session.
func (s *Session) GetPublicInfoOnce(ctx context.Context, uid string) (domain.UserPublicInfo, error) {
	doc, err := s.store.FetchOne(ctx, store.Request{Path: publicInfoPath(uid)})
	if err != nil {
		return domain.UserPublicInfo{}, err
	}

	var info domain.UserPublicInfo
	if err := doc.Decode(&info); err != nil {
		return domain.UserPublicInfo{}, apperr.ErrNoData
	}
	info.ID = uid

	if self, ok := s.identity.CurrentUserID(); ok && self == uid {
		s.writeThrough(localcache.KeyUserPublicInfo, info)

		s.mu.Lock()
		s.setPublicInfo(&info)
		s.mu.Unlock()
	}

	return info, nil
}

// ObservePublicInfo keeps the signed-in player's public profile current.
func (s *Session) ObservePublicInfo(ctx context.Context) error {
	uid, ok := s.identity.CurrentUserID()
	if !ok {
		s.log.Info("skipping profile observation, nobody signed in")
		return nil
	}

	return s.observeDocument(ctx, publicInfoPath(uid), func(doc store.Document) {
		var info domain.UserPublicInfo
		if err := doc.Decode(&info); err != nil {
			s.log.Warn("profile update failed to decode", "uid", uid, "error", err)
			return
		}
		info.ID = uid

		s.writeThrough(localcache.KeyUserPublicInfo, info)
		s.setPublicInfo(&info)
	})
}

// observeDocument registers a deduplicated document subscription whose apply
// function runs inside the session's exclusive context. Deliveries from a
// handle that is no longer current for its path are dropped before they can
// touch state; failed deliveries are logged and the subscription stays up.
func (s *Session) observeDocument(ctx context.Context, path string, apply func(store.Document)) error {
	return s.registry.RegisterIfAbsent(path, func(token registry.Token) (registry.Handle, error) {
		return s.store.Subscribe(ctx, store.Request{Path: path}, func(res store.Result) {
			if res.Err != nil {
				if errors.Is(res.Err, apperr.ErrNoData) {
					s.log.Debug("document not present yet", "path", path)
				} else {
					s.log.Warn("subscription delivery failed", "path", path, "error", res.Err)
				}
				return
			}

			s.mu.Lock()
			defer s.mu.Unlock()

			if !s.registry.Current(token) {
				s.log.Debug("dropping delivery from stale handle", "path", path)
				return
			}

			apply(res.Doc)
		})
	})
}

// observeCollection is the collection variant of observeDocument.
func (s *Session) observeCollection(ctx context.Context, req store.Request, apply func([]store.Document)) error {
	return s.registry.RegisterIfAbsent(req.Path, func(token registry.Token) (registry.Handle, error) {
		return s.store.SubscribeMany(ctx, req, func(res store.CollectionResult) {
			if res.Err != nil {
				s.log.Warn("collection delivery failed", "path", req.Path, "error", res.Err)
				return
			}

			s.mu.Lock()
			defer s.mu.Unlock()

			if !s.registry.Current(token) {
				s.log.Debug("dropping delivery from stale handle", "path", req.Path)
				return
			}

			apply(res.Docs)
		})
	})
}

// writeThrough mirrors a fetched entity into the local cache. Cache write
// failures only cost the next launch its first paint, so they are logged and
// swallowed.
func (s *Session) writeThrough(key localcache.Key, v any) {
	if err := s.cache.Put(key, v); err != nil {
		s.log.Warn("failed to write cache snapshot", "key", string(key), "error", err)
	}
}
