// Package session holds the CLI's current identity and keeps it in a durable
// slot so it survives restarts.
//
// The Store never merges identity fields locally: every mutating call goes
// to the server and the returned identity replaces the held one. When the
// server rejects the stored token the session is dropped.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	"github.com/dmitrijs2005/recipebox/internal/models"
)

// API is the part of the RecipeBox API the session depends on.
type API interface {
	Register(ctx context.Context, name, email string) (models.User, string, error)
	Login(ctx context.Context, email string) (models.User, string, error)
	Me(ctx context.Context, token string) (models.User, error)
	UpdateProfile(ctx context.Context, token string, patch models.ProfilePatch) (models.User, error)
	SaveRecipe(ctx context.Context, token, recipeID string) (models.User, error)
	UnsaveRecipe(ctx context.Context, token, recipeID string) (models.User, error)
}

type Store struct {
	api     API
	backend Backend
	log     logging.Logger

	mu      sync.RWMutex
	current *Snapshot
}

// Open reads the durable slot once. A missing or unreadable snapshot starts
// the store logged out; a malformed one is also removed from the slot.
func Open(ctx context.Context, api API, backend Backend, log logging.Logger) *Store {
	s := &Store{api: api, backend: backend, log: log.With("module", "session")}

	snap, err := backend.Load(ctx)
	switch {
	case errors.Is(err, common.ErrorMalformedSnapshot):
		s.log.Warn(ctx, "discarding malformed session snapshot", "error", err)
		if err := backend.Clear(ctx); err != nil {
			s.log.Error(ctx, "failed to clear session snapshot", "error", err)
		}
	case err != nil:
		s.log.Error(ctx, "failed to load session snapshot", "error", err)
	default:
		s.current = snap
	}
	return s
}

// Current returns a copy of the held identity.
func (s *Store) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.User{}, false
	}
	return s.current.User.Clone(), true
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// set replaces the held session and persists it. Persistence failures are
// logged; the in-memory session stays authoritative for this run.
func (s *Store) set(ctx context.Context, snap Snapshot) models.User {
	s.mu.Lock()
	s.current = &snap
	s.mu.Unlock()

	if err := s.backend.Save(ctx, snap); err != nil {
		s.log.Error(ctx, "failed to persist session", "error", err)
	}
	return snap.User.Clone()
}

func (s *Store) Register(ctx context.Context, name, email string) (models.User, error) {
	u, token, err := s.api.Register(ctx, name, email)
	if err != nil {
		return models.User{}, err
	}
	return s.set(ctx, Snapshot{User: u, Token: token}), nil
}

func (s *Store) Login(ctx context.Context, email string) (models.User, error) {
	u, token, err := s.api.Login(ctx, email)
	if err != nil {
		return models.User{}, err
	}
	return s.set(ctx, Snapshot{User: u, Token: token}), nil
}

// Logout forgets the session. It cannot fail.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()

	if err := s.backend.Clear(ctx); err != nil {
		s.log.Error(ctx, "failed to clear session", "error", err)
	}
}

// authed runs call with the held token and adopts the identity it returns.
func (s *Store) authed(ctx context.Context, call func(token string) (models.User, error)) (models.User, error) {
	token := s.Token()
	if token == "" {
		return models.User{}, common.ErrorUnauthenticated
	}

	u, err := call(token)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthenticated) {
			s.log.Info(ctx, "server rejected session, logging out")
			s.Logout(ctx)
		}
		return models.User{}, err
	}
	return s.set(ctx, Snapshot{User: u, Token: token}), nil
}

// Refresh reloads the identity from the server.
func (s *Store) Refresh(ctx context.Context) (models.User, error) {
	return s.authed(ctx, func(token string) (models.User, error) {
		return s.api.Me(ctx, token)
	})
}

func (s *Store) UpdateProfile(ctx context.Context, patch models.ProfilePatch) (models.User, error) {
	return s.authed(ctx, func(token string) (models.User, error) {
		return s.api.UpdateProfile(ctx, token, patch)
	})
}

func (s *Store) SaveRecipe(ctx context.Context, recipeID string) (models.User, error) {
	return s.authed(ctx, func(token string) (models.User, error) {
		return s.api.SaveRecipe(ctx, token, recipeID)
	})
}

func (s *Store) UnsaveRecipe(ctx context.Context, recipeID string) (models.User, error) {
	return s.authed(ctx, func(token string) (models.User, error) {
		return s.api.UnsaveRecipe(ctx, token, recipeID)
	})
}

// Forget drops the session if err says the server no longer accepts the
// token. Callers outside the Store use it after their own authenticated
// requests. It reports whether the session was dropped.
func (s *Store) Forget(ctx context.Context, err error) bool {
	if !errors.Is(err, common.ErrorUnauthenticated) || !s.IsAuthenticated() {
		return false
	}
	s.Logout(ctx)
	return true
}
