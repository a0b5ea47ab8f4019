// Package tokens mints and verifies the signed bearer tokens used across
// the platform. Access and refresh tokens are HS256 JWTs signed with
// separate secrets, so one kind can never pass for the other.
package tokens

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Kind string

const (
	KindAccess  Kind = "access"
	KindRefresh Kind = "refresh"
)

// ErrMalformedToken covers every way a token string can fail verification:
// garbage input, bad signature, wrong kind, missing subject, expiry.
var ErrMalformedToken = errors.New("malformed token")

type Codec struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// Now overrides the clock in tests. Nil means time.Now.
	Now func() time.Time
}

func (c *Codec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Codec) secret(kind Kind) []byte {
	if kind == KindRefresh {
		return c.RefreshSecret
	}
	return c.AccessSecret
}

func (c *Codec) MintAccess(subject, role string) (string, error) {
	now := c.now()
	claims := AccessClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.AccessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.AccessSecret)
}

func (c *Codec) MintRefresh(subject string) (string, error) {
	now := c.now()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.RefreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.RefreshSecret)
}

// ExtractSubject verifies the token's signature and expiry for the given
// kind and returns its subject. Any failure comes back as ErrMalformedToken.
func (c *Codec) ExtractSubject(tokenStr string, kind Kind) (string, error) {
	var claims jwt.RegisteredClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return c.secret(kind), nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", ErrMalformedToken
	}
	return claims.Subject, nil
}

// Valid reports whether the token verifies for the given kind and names
// the given subject. It never panics on malformed input.
func (c *Codec) Valid(tokenStr, subject string, kind Kind) bool {
	got, err := c.ExtractSubject(tokenStr, kind)
	return err == nil && got == subject
}

// AccessClaimsFrom parses a verified access token into its full claims.
func (c *Codec) AccessClaimsFrom(tokenStr string) (*AccessClaims, error) {
	var claims AccessClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return c.AccessSecret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil || !tkn.Valid {
		return nil, ErrMalformedToken
	}
	return &claims, nil
}
