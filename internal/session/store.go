// internal/session/store.go
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/abccorp/corpsite-web/internal/upstream"
)

// ErrNotAuthenticated is returned by write paths that were invoked with no
// admin token present. It blocks the call before any network I/O.
var ErrNotAuthenticated = errors.New("admin session required")

// Store holds whether the current visitor is an authenticated administrator.
// Derived once at startup from the persisted token, mutated only by explicit
// Login/Logout calls.
type Store struct {
	tokens TokenStore
	api    *upstream.Client

	mu    sync.RWMutex
	token string
	admin bool
}

func New(tokens TokenStore, api *upstream.Client) *Store {
	return &Store{tokens: tokens, api: api}
}

// Initialize reads the persisted token and asks the remote API to verify
// it. Any failure — missing token, network error, non-success status,
// malformed body — silently reverts to the logged-out state; a failed
// verification also discards the persisted token. No retry.
func (s *Store) Initialize(ctx context.Context) {
	token, err := s.tokens.Load()
	if err != nil {
		logrus.WithError(err).Warn("Failed to read persisted session token")
		s.set("", false)
		return
	}
	if token == "" {
		s.set("", false)
		return
	}

	admin, err := s.api.VerifyToken(ctx, token)
	if err != nil {
		logrus.WithError(err).Warn("Session token verification failed, logging out")
		if err := s.tokens.Clear(); err != nil {
			logrus.WithError(err).Warn("Failed to discard session token")
		}
		s.set("", false)
		return
	}

	s.set(token, admin)
}

// Login persists the token and records the admin flag. The caller must
// have obtained a valid token first; how it did so is not this layer's
// concern.
func (s *Store) Login(token string, admin bool) error {
	if err := s.tokens.Save(token); err != nil {
		return err
	}
	s.set(token, admin)
	return nil
}

// Logout discards the persisted token and reverts to the logged-out state.
func (s *Store) Logout() error {
	s.set("", false)
	return s.tokens.Clear()
}

func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// Token returns the current bearer token; ok is false when no admin
// session exists.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *Store) set(token string, admin bool) {
	s.mu.Lock()
	s.token = token
	s.admin = admin
	s.mu.Unlock()
}
