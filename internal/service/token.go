package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/sweetsprouts/backend/internal/domain"
	"github.com/sweetsprouts/backend/pkg/jwtx"
)

// TokenKind distinguishes the two token domains. Each kind is signed and
// verified with its own secret, so an access token can never be replayed as
// a refresh token or vice versa.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

var ErrUnknownTokenKind = errors.New("unknown token kind")

// TokenService issues and verifies the signed, time-limited tokens carrying
// a user id. Secrets and TTLs are fixed at construction.
type TokenService struct {
	access  *jwtx.HS256
	refresh *jwtx.HS256

	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService builds a token service from the two signing secrets.
// Empty secrets fail here, at startup, rather than on the first request.
func NewTokenService(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration) (*TokenService, error) {
	access, err := jwtx.NewHS256(accessSecret)
	if err != nil {
		return nil, fmt.Errorf("access token codec: %w", err)
	}
	refresh, err := jwtx.NewHS256(refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("refresh token codec: %w", err)
	}

	if accessTTL <= 0 {
		accessTTL = jwtx.DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = jwtx.DefaultRefreshTokenTTL
	}

	return &TokenService{
		access:     access,
		refresh:    refresh,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

// Issue signs a token of the given kind for subject.
func (s *TokenService) Issue(subject string, kind TokenKind) (string, error) {
	now := time.Now().UTC()
	switch kind {
	case TokenKindAccess:
		return s.access.Sign(jwtx.NewClaims(subject, s.accessTTL, now))
	case TokenKindRefresh:
		return s.refresh.Sign(jwtx.NewClaims(subject, s.refreshTTL, now))
	}
	return "", ErrUnknownTokenKind
}

// IssuePair mints the access+refresh pair returned by login.
func (s *TokenService) IssuePair(subject string) (domain.TokenPair, error) {
	access, err := s.Issue(subject, TokenKindAccess)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.Issue(subject, TokenKindRefresh)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks token against the secret for kind and returns the subject.
func (s *TokenService) Verify(token string, kind TokenKind) (string, error) {
	var claims jwtx.Claims
	var err error

	switch kind {
	case TokenKindAccess:
		claims, err = s.access.Verify(token)
	case TokenKindRefresh:
		claims, err = s.refresh.Verify(token)
	default:
		return "", ErrUnknownTokenKind
	}
	if err != nil {
		return "", err
	}

	return claims.UserID, nil
}

// AccessVerifier exposes the access-token verifier for the authentication
// middleware.
func (s *TokenService) AccessVerifier() jwtx.Verifier { return s.access }
