package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mriley/stash-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewAccount verifies that NewAccount assigns an ID and creation
// timestamp and carries the plaintext password for later hashing.
func TestNewAccount(t *testing.T) {
	before := time.Now().UTC()
	account, err := domain.NewAccount("alice", "opensesame")
	after := time.Now().UTC()

	require.NoError(t, err)
	require.NotNil(t, account)
	assert.NotEqual(t, uuid.Nil, account.ID, "account ID should be assigned at creation")
	assert.Equal(t, "alice", account.Username)
	assert.Equal(t, "opensesame", account.Password)
	assert.Empty(t, account.HashedPassword)
	assert.False(t, account.CreatedAt.Before(before))
	assert.False(t, account.CreatedAt.After(after))
}

func TestNewAccountValidation(t *testing.T) {
	testCases := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{
			name:     "empty username",
			username: "",
			password: "opensesame",
			wantErr:  domain.ErrEmptyUsername,
		},
		{
			name:     "empty password",
			username: "alice",
			password: "",
			wantErr:  domain.ErrEmptyPassword,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			account, err := domain.NewAccount(tc.username, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, account)
		})
	}
}

// TestAccountValidateStoredAccount verifies that an account loaded from
// the store, carrying only a hash, passes validation.
func TestAccountValidateStoredAccount(t *testing.T) {
	account := &domain.Account{
		ID:             uuid.New(),
		Username:       "alice",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:      time.Now().UTC(),
	}

	assert.NoError(t, account.Validate())
}

func TestAccountValidateMissingID(t *testing.T) {
	account := &domain.Account{
		Username: "alice",
		Password: "opensesame",
	}

	assert.ErrorIs(t, account.Validate(), domain.ErrEmptyAccountID)
}
