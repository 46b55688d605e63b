package auth

import (
	"context"

	"github.com/google/uuid"
)

// opaqueTokenService issues the raw account ID string as the bearer
// token, with no expiry, no signing, and no revocation.
//
// This is a non-production placeholder. It exists so that every caller
// already goes through the TokenService interface; switch
// auth.token_scheme to "jwt" for signed, expiring tokens.
type opaqueTokenService struct{}

// Ensure opaqueTokenService implements TokenService
var _ TokenService = (*opaqueTokenService)(nil)

// NewOpaqueTokenService creates the placeholder token service.
func NewOpaqueTokenService() TokenService {
	return &opaqueTokenService{}
}

// IssueToken returns the account ID itself as the token.
func (s *opaqueTokenService) IssueToken(ctx context.Context, accountID uuid.UUID) (string, error) {
	return accountID.String(), nil
}

// ResolveToken parses the token back into the account ID it stands for.
func (s *opaqueTokenService) ResolveToken(ctx context.Context, token string) (uuid.UUID, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}
