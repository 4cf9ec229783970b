package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Access tokens are deliberately short-lived; refresh
// tokens trade that off for user convenience.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims is the token payload: the owning user id under the "id" claim plus
// the standard iat/exp timestamps. The wire shape is exactly
// {id: string, iat: number, exp: number} and verification rejects anything
// that doesn't carry all three.
type Claims struct {
	UserID string `json:"id"`

	jwt.RegisteredClaims
}

// NewClaims builds claims for subject expiring after ttl.
func NewClaims(subject string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		UserID: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// validateShape enforces the exact payload contract. A token signed with the
// right secret but missing any of id/iat/exp is still rejected.
func (c *Claims) validateShape() error {
	if c.UserID == "" {
		return ErrPayloadShape
	}
	if c.IssuedAt == nil || c.ExpiresAt == nil {
		return ErrPayloadShape
	}
	return nil
}
