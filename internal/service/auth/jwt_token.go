package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mriley/stash-api/internal/config"
	"github.com/mriley/stash-api/internal/platform/logger"
)

// jwtTokenService is a TokenService implementation using HMAC-SHA256
// signed, expiring JWTs.
type jwtTokenService struct {
	signingKey    []byte
	tokenLifetime time.Duration
	timeFunc      func() time.Time // Injectable for testing
	clockSkew     time.Duration    // Allowed drift when validating time claims
}

// jwtCustomClaims defines the structure of the JWT claims we use.
type jwtCustomClaims struct {
	AccountID uuid.UUID `json:"aid"`
	jwt.RegisteredClaims
}

// Ensure jwtTokenService implements TokenService interface
var _ TokenService = (*jwtTokenService)(nil)

// NewJWTTokenService creates a new token service using HMAC-SHA signing.
func NewJWTTokenService(cfg config.AuthConfig) (TokenService, error) {
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("jwt secret must be at least 32 characters")
	}

	return &jwtTokenService{
		signingKey:    []byte(cfg.JWTSecret),
		tokenLifetime: time.Duration(cfg.TokenLifetimeMinutes) * time.Minute,
		timeFunc:      time.Now,
		clockSkew:     2 * time.Minute,
	}, nil
}

// IssueToken creates a signed JWT carrying the account ID.
func (s *jwtTokenService) IssueToken(ctx context.Context, accountID uuid.UUID) (string, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	claims := jwtCustomClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(s.signingKey)
	if err != nil {
		log.Error("failed to sign token",
			"error", err,
			"account_id", accountID,
			"signing_method", jwt.SigningMethodHS256.Name)
		return "", fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	return signedToken, nil
}

// ResolveToken validates a signed JWT and returns the account ID it was
// issued for.
func (s *jwtTokenService) ResolveToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	log := logger.FromContext(ctx)
	now := s.timeFunc()

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time {
			return now
		}),
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwtCustomClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.signingKey, nil
		},
		parserOpts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			log.Debug("token validation failed: token expired", "error", err)
			return uuid.Nil, ErrExpiredToken
		}
		log.Debug("token validation failed", "error", err)
		return uuid.Nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwtCustomClaims)
	if !ok || !token.Valid || claims.AccountID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}

	return claims.AccountID, nil
}
