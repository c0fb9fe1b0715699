package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"food-ordering-api/kv"
	"food-ordering-api/models"
)

// TokenKey is the storage key the session token persists under.
const TokenKey = "foodAppToken"

// Session holds the current authenticated user. The token lives in the
// injected kv.Store; the user record is an in-memory mirror refreshed from
// the collaborator.
type Session struct {
	store   kv.Store
	backend Backend

	mu    sync.Mutex
	token string
	user  *models.User
}

func NewSession(store kv.Store, backend Backend) *Session {
	return &Session{store: store, backend: backend}
}

// Restore re-establishes a session from a persisted token on startup. It
// fails closed: a token the collaborator rejects is discarded and the user
// stays logged out, without the failure escaping to the caller.
func (s *Session) Restore(ctx context.Context) {
	raw, err := s.store.Get(ctx, TokenKey)
	if err != nil {
		return
	}
	token := string(raw)
	user, err := s.backend.CurrentUser(ctx, token)
	if err != nil {
		_ = s.store.Delete(ctx, TokenKey)
		return
	}
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
}

// Login authenticates against the collaborator and persists the session
// token on success.
func (s *Session) Login(ctx context.Context, email, password string) error {
	token, user, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return s.establish(ctx, token, user)
}

// Register creates a new customer account and logs it in.
func (s *Session) Register(ctx context.Context, reg Registration) error {
	token, user, err := s.backend.Register(ctx, reg)
	if err != nil {
		return err
	}
	return s.establish(ctx, token, user)
}

func (s *Session) establish(ctx context.Context, token string, user *models.User) error {
	if err := s.store.Set(ctx, TokenKey, []byte(token)); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()
	return nil
}

// Logout discards the token and the current user.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	return s.store.Delete(ctx, TokenKey)
}

// UpdateProfile sends partial profile fields and replaces the local user
// on success.
func (s *Session) UpdateProfile(ctx context.Context, fields map[string]interface{}) error {
	token := s.Token()
	if token == "" {
		return fmt.Errorf("%w: not logged in", ErrAuth)
	}
	user, err := s.backend.UpdateProfile(ctx, token, fields)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// User returns the current user, or nil when logged out.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Token returns the current session token, empty when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) IsAuthenticated() bool {
	return s.User() != nil
}

// IsAdmin reflects the role the collaborator attached to the user record.
func (s *Session) IsAdmin() bool {
	u := s.User()
	return u != nil && u.IsAdmin()
}

// HasStoredToken reports whether a token is persisted, without validating it.
func (s *Session) HasStoredToken(ctx context.Context) bool {
	_, err := s.store.Get(ctx, TokenKey)
	return !errors.Is(err, kv.ErrNotFound) && err == nil
}
