package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/mriley/stash-api/internal/config"
)

// TokenService defines operations for issuing and resolving bearer
// tokens. Callers never depend on a concrete scheme, so the opaque
// placeholder can be swapped for a signed, expiring one without
// touching them.
type TokenService interface {
	// IssueToken creates a bearer token for the given account.
	IssueToken(ctx context.Context, accountID uuid.UUID) (string, error)

	// ResolveToken extracts the account ID a token was issued for.
	// Returns ErrInvalidToken or ErrExpiredToken if the token cannot
	// be resolved.
	ResolveToken(ctx context.Context, token string) (uuid.UUID, error)
}

// NewTokenService constructs the token service selected by the
// configuration: "opaque" (default) or "jwt".
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	switch cfg.TokenScheme {
	case "opaque", "":
		return NewOpaqueTokenService(), nil
	case "jwt":
		return NewJWTTokenService(cfg)
	default:
		return nil, fmt.Errorf("unknown token scheme %q", cfg.TokenScheme)
	}
}
