package services

import (
	"context"
	"errors"
	"shop_admin_server/lib"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeTokenStore struct {
	revoked map[uuid.UUID]time.Time
	err     error
}

func (f *fakeTokenStore) BlacklistToken(_ context.Context, jti uuid.UUID, exp time.Time) error {
	if f.err != nil {
		return f.err
	}
	f.revoked[jti] = exp
	return nil
}

func (f *fakeTokenStore) IsTokenBlacklisted(_ context.Context, jti uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.revoked[jti]
	return ok, nil
}

type fakeAccounts struct {
	users map[int64]*tables.User
	err   error
}

func (f *fakeAccounts) Get(_ context.Context, id int64) (*tables.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	return user, nil
}

func withRole(id int64, role string) *tables.User {
	return &tables.User{Id: id, Name: "Admin", Email: "admin@example.com", Role: &role}
}

func newTestAuthService(store *fakeTokenStore) *AuthService {
	return newTestAuthServiceWith(store, &fakeAccounts{users: map[int64]*tables.User{
		7: withRole(7, tables.RoleAdministrator),
	}})
}

func newTestAuthServiceWith(store *fakeTokenStore, accounts *fakeAccounts) *AuthService {
	cfg := &structs.Config{Auth: &structs.AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		BlacklistCacheTTL: time.Hour,
	}}
	return NewAuthService(cfg, testLogger(), nil, store, accounts)
}

func TestAuthenticateAndLogout(t *testing.T) {
	store := &fakeTokenStore{revoked: map[uuid.UUID]time.Time{}}
	as := newTestAuthService(store)

	token, _, err := lib.GenerateAccessToken(7, "admin@example.com", "administrator", "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := as.Authenticate(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.Sub)
	require.Equal(t, "administrator", claims.Role)

	require.NoError(t, as.Logout(context.Background(), claims))
	require.Contains(t, store.revoked, claims.Jti)

	_, err = as.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, lib.ErrRevokedToken)
}

func TestAuthenticateRejectsForeignTokens(t *testing.T) {
	as := newTestAuthService(&fakeTokenStore{revoked: map[uuid.UUID]time.Time{}})

	token, _, err := lib.GenerateAccessToken(7, "admin@example.com", "administrator", "other-secret", time.Hour)
	require.NoError(t, err)

	_, err = as.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, lib.ErrInvalidToken)
}

func TestAuthenticateSurfacesStoreFailures(t *testing.T) {
	boom := errors.New("redis down")
	as := newTestAuthService(&fakeTokenStore{err: boom})

	token, _, err := lib.GenerateAccessToken(7, "admin@example.com", "administrator", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = as.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, lib.ErrInvalidToken)
}

func TestAuthenticateResolvesTheTokenUser(t *testing.T) {
	accounts := &fakeAccounts{users: map[int64]*tables.User{
		7: withRole(7, tables.RoleAdministrator),
		8: withRole(8, tables.RoleAdministrator),
	}}
	as := newTestAuthServiceWith(&fakeTokenStore{revoked: map[uuid.UUID]time.Time{}}, accounts)

	deletedToken, _, err := lib.GenerateAccessToken(7, "admin@example.com", "administrator", "test-secret", time.Hour)
	require.NoError(t, err)
	demotedToken, _, err := lib.GenerateAccessToken(8, "admin@example.com", "administrator", "test-secret", time.Hour)
	require.NoError(t, err)
	unknownToken, _, err := lib.GenerateAccessToken(999999, "ghost@example.com", "administrator", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = as.Authenticate(context.Background(), deletedToken)
	require.NoError(t, err)

	t.Run("deleted user", func(t *testing.T) {
		delete(accounts.users, 7)
		_, err := as.Authenticate(context.Background(), deletedToken)
		require.ErrorIs(t, err, lib.ErrRevokedToken)
	})

	t.Run("demoted user", func(t *testing.T) {
		accounts.users[8] = withRole(8, "customer")
		_, err := as.Authenticate(context.Background(), demotedToken)
		require.ErrorIs(t, err, lib.ErrRevokedToken)

		accounts.users[8].Role = nil
		_, err = as.Authenticate(context.Background(), demotedToken)
		require.ErrorIs(t, err, lib.ErrRevokedToken)
	})

	t.Run("user that never existed", func(t *testing.T) {
		_, err := as.Authenticate(context.Background(), unknownToken)
		require.ErrorIs(t, err, lib.ErrRevokedToken)
	})

	t.Run("lookup failure is not a token error", func(t *testing.T) {
		boom := errors.New("db down")
		broken := newTestAuthServiceWith(&fakeTokenStore{revoked: map[uuid.UUID]time.Time{}}, &fakeAccounts{err: boom})
		_, err := broken.Authenticate(context.Background(), demotedToken)
		require.ErrorIs(t, err, boom)
		require.NotErrorIs(t, err, lib.ErrRevokedToken)
	})
}
