package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can mint signed tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// Verifier validates a token string and gives back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	// ErrNoSecret reports an empty signing secret. This is a deployment
	// mistake and should abort startup, not fail per-request.
	ErrNoSecret = errors.New("jwtx: empty signing secret")

	// ErrInvalid covers bad signatures, expired tokens and anything else
	// the parser refuses.
	ErrInvalid = errors.New("jwtx: invalid token")

	// ErrPayloadShape reports a well-signed token whose payload doesn't
	// match the expected {id, iat, exp} shape.
	ErrPayloadShape = errors.New("jwtx: unexpected payload shape")
)

// HS256 signs and verifies tokens with a single shared HMAC-SHA256 secret.
// It implements both Signer and Verifier; callers wanting separate access and
// refresh token domains construct one HS256 per secret.
type HS256 struct {
	secret []byte
}

// NewHS256 builds an HS256 codec. An empty secret is rejected up front so
// misconfiguration surfaces at startup.
func NewHS256(secret []byte) (*HS256, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &HS256{secret: secret}, nil
}

func (s *HS256) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign turns claims into a signed compact JWT string.
func (s *HS256) Sign(claims Claims) (string, error) {
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return tok, nil
}

// Verify checks the signature and expiry against this codec's secret and
// returns the claims. Tokens signed with any other algorithm are rejected
// outright, no alg-confusion downgrades.
func (s *HS256) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalid
	}

	if err := claims.validateShape(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
