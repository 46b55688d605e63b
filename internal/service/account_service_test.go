package service_test

import (
	"context"
	"testing"

	"github.com/mriley/stash-api/internal/service"
	"github.com/mriley/stash-api/internal/service/auth"
	"github.com/mriley/stash-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAccountService(t *testing.T) (service.AccountService, *fakeAccountStore) {
	t.Helper()
	accountStore := newFakeAccountStore()
	svc := service.NewAccountService(
		accountStore,
		auth.NewBcryptHasher(bcrypt.MinCost),
		auth.NewBcryptVerifier(),
		newTestDB(t),
		newTestLogger(),
	)
	return svc, accountStore
}

// TestRegister verifies that registering a fresh username yields an
// account whose stored hash differs from the plaintext and verifies
// against it.
func TestRegister(t *testing.T) {
	svc, accountStore := newAccountService(t)
	ctx := context.Background()

	account, err := svc.Register(ctx, "alice", "opensesame")
	require.NoError(t, err)
	require.NotNil(t, account)

	assert.Equal(t, "alice", account.Username)
	assert.Empty(t, account.Password, "plaintext must be cleared before storage")
	assert.NotEmpty(t, account.HashedPassword)
	assert.NotEqual(t, "opensesame", account.HashedPassword)

	stored, err := accountStore.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, account.ID, stored.ID)
	assert.NoError(t, auth.NewBcryptVerifier().Compare(stored.HashedPassword, "opensesame"))
}

// TestRegisterDuplicateUsername verifies that the second registration
// with the same username fails and never creates a second row.
func TestRegisterDuplicateUsername(t *testing.T) {
	svc, accountStore := newAccountService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, "alice", "opensesame")
	require.NoError(t, err)

	second, err := svc.Register(ctx, "alice", "differentpassword")
	assert.ErrorIs(t, err, store.ErrUsernameExists)
	assert.Nil(t, second)

	stored, err := accountStore.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID, "original account must be untouched")
}

// TestAuthenticate verifies success iff the username exists and the
// password matches, with an identical error for both failure modes.
func TestAuthenticate(t *testing.T) {
	svc, _ := newAccountService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "opensesame")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		account, err := svc.Authenticate(ctx, "alice", "opensesame")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, account.ID)
	})

	t.Run("unknown username", func(t *testing.T) {
		account, err := svc.Authenticate(ctx, "bob", "opensesame")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Nil(t, account)
	})

	t.Run("wrong password", func(t *testing.T) {
		account, err := svc.Authenticate(ctx, "alice", "wrong-password")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
		assert.Nil(t, account)
	})

	t.Run("failure modes are indistinguishable", func(t *testing.T) {
		_, unknownErr := svc.Authenticate(ctx, "bob", "opensesame")
		_, wrongErr := svc.Authenticate(ctx, "alice", "wrong-password")
		assert.Equal(t, unknownErr, wrongErr)
	})
}
