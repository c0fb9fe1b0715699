package client

import (
	"context"
	"fmt"
	"testing"

	"food-ordering-api/kv"
	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend overrides only what a test needs; anything else panics via
// the embedded nil interface.
type fakeBackend struct {
	Backend

	loginToken string
	loginUser  *models.User
	loginErr   error

	currentUser    *models.User
	currentUserErr error

	createdOrder   *models.Order
	createOrderErr error
	gotOrderReq    *OrderRequest
	gotToken       string
}

func (f *fakeBackend) Login(_ context.Context, email, password string) (string, *models.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func (f *fakeBackend) CurrentUser(_ context.Context, token string) (*models.User, error) {
	f.gotToken = token
	return f.currentUser, f.currentUserErr
}

func (f *fakeBackend) CreateOrder(_ context.Context, token string, req OrderRequest) (*models.Order, error) {
	f.gotToken = token
	f.gotOrderReq = &req
	if f.createOrderErr != nil {
		return nil, f.createOrderErr
	}
	return f.createdOrder, nil
}

func TestLoginSuccessPersistsToken(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	backend := &fakeBackend{
		loginToken: "tok-123",
		loginUser:  &models.User{ID: 7, Email: "demo@example.com", Role: models.RoleCustomer},
	}
	s := NewSession(store, backend)

	assert.False(t, s.HasStoredToken(ctx))
	require.NoError(t, s.Login(ctx, "demo@example.com", "password123"))
	assert.True(t, s.IsAuthenticated())
	assert.False(t, s.IsAdmin())
	assert.Equal(t, "tok-123", s.Token())
	assert.True(t, s.HasStoredToken(ctx))

	raw, err := store.Get(ctx, TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", string(raw))
}

func TestLoginUnknownEmailPersistsNothing(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	backend := &fakeBackend{loginErr: fmt.Errorf("%w: invalid email or password", ErrAuth)}
	s := NewSession(store, backend)

	err := s.Login(ctx, "nobody@example.com", "x")
	assert.ErrorIs(t, err, ErrAuth)
	assert.False(t, s.IsAuthenticated())

	_, err = store.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestRestoreWithValidToken(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, TokenKey, []byte("tok-xyz")))

	backend := &fakeBackend{currentUser: &models.User{ID: 3, Role: models.RoleAdmin}}
	s := NewSession(store, backend)
	s.Restore(ctx)

	assert.Equal(t, "tok-xyz", backend.gotToken)
	assert.True(t, s.IsAuthenticated())
	assert.True(t, s.IsAdmin())
}

func TestRestoreWithStaleTokenFailsClosed(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	require.NoError(t, store.Set(ctx, TokenKey, []byte("stale")))

	backend := &fakeBackend{currentUserErr: fmt.Errorf("%w: invalid or expired token", ErrAuth)}
	s := NewSession(store, backend)
	s.Restore(ctx)

	assert.Nil(t, s.User())
	assert.False(t, s.IsAuthenticated())
	_, err := store.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, kv.ErrNotFound, "rejected token must be discarded")
}

func TestRestoreWithoutToken(t *testing.T) {
	s := NewSession(kv.NewMemory(), &fakeBackend{})
	s.Restore(context.Background())
	assert.False(t, s.IsAuthenticated())
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemory()
	backend := &fakeBackend{loginToken: "tok", loginUser: &models.User{ID: 1}}
	s := NewSession(store, backend)

	require.NoError(t, s.Login(ctx, "a@b.c", "pw"))
	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsAuthenticated())
	assert.Empty(t, s.Token())
	assert.False(t, s.HasStoredToken(ctx))
	_, err := store.Get(ctx, TokenKey)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestNewRequiresACollaborator(t *testing.T) {
	_, err := New(Options{})
	assert.ErrorIs(t, err, ErrCollaboratorUnavailable)
}
