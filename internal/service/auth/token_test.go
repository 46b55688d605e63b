package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mriley/stash-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "thisisasecretkeythatis32charslong!!"

// TestOpaqueTokenRoundTrip verifies the placeholder scheme: the token
// is the raw account ID and resolves back to it.
func TestOpaqueTokenRoundTrip(t *testing.T) {
	svc := NewOpaqueTokenService()
	accountID := uuid.New()

	token, err := svc.IssueToken(context.Background(), accountID)
	require.NoError(t, err)
	assert.Equal(t, accountID.String(), token)

	resolved, err := svc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, accountID, resolved)
}

func TestOpaqueTokenInvalid(t *testing.T) {
	svc := NewOpaqueTokenService()

	_, err := svc.ResolveToken(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// TestJWTTokenRoundTrip verifies the signed scheme issues a token that
// resolves to the original account and is not the raw ID.
func TestJWTTokenRoundTrip(t *testing.T) {
	svc, err := NewJWTTokenService(config.AuthConfig{
		TokenScheme:          "jwt",
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	accountID := uuid.New()

	token, err := svc.IssueToken(context.Background(), accountID)
	require.NoError(t, err)
	assert.NotEqual(t, accountID.String(), token)

	resolved, err := svc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, accountID, resolved)
}

func TestJWTTokenExpired(t *testing.T) {
	svc, err := NewJWTTokenService(config.AuthConfig{
		TokenScheme:          "jwt",
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	jwtSvc, ok := svc.(*jwtTokenService)
	require.True(t, ok)

	accountID := uuid.New()
	token, err := svc.IssueToken(context.Background(), accountID)
	require.NoError(t, err)

	// Move validation time past the token lifetime plus clock skew.
	jwtSvc.timeFunc = func() time.Time {
		return time.Now().Add(63 * time.Minute)
	}

	_, err = svc.ResolveToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTTokenTampered(t *testing.T) {
	svc, err := NewJWTTokenService(config.AuthConfig{
		TokenScheme:          "jwt",
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	token, err := svc.IssueToken(context.Background(), uuid.New())
	require.NoError(t, err)

	_, err = svc.ResolveToken(context.Background(), token+"x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTTokenServiceShortSecret(t *testing.T) {
	_, err := NewJWTTokenService(config.AuthConfig{
		TokenScheme:          "jwt",
		JWTSecret:            "tooshort",
		TokenLifetimeMinutes: 60,
	})
	assert.Error(t, err)
}

// TestNewTokenService verifies scheme selection from configuration.
func TestNewTokenService(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     config.AuthConfig
		wantErr bool
	}{
		{
			name: "opaque",
			cfg:  config.AuthConfig{TokenScheme: "opaque"},
		},
		{
			name: "empty defaults to opaque",
			cfg:  config.AuthConfig{},
		},
		{
			name: "jwt",
			cfg: config.AuthConfig{
				TokenScheme:          "jwt",
				JWTSecret:            testJWTSecret,
				TokenLifetimeMinutes: 60,
			},
		},
		{
			name:    "unknown scheme",
			cfg:     config.AuthConfig{TokenScheme: "paseto"},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := NewTokenService(tc.cfg)
			if tc.wantErr {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}
