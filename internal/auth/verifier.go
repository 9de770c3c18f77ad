// Package auth resolves the caller identity for API requests. Sign-in itself
// happens at the external identity provider; this package only verifies the
// bearer tokens it issues and keeps the legacy uid/email query-parameter
// identification working for older clients.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// ErrInvalidToken is returned for tokens that fail signature or claim checks.
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims are the identity claims the API cares about.
type Claims struct {
	UID   string
	Email string
}

// Verifier checks HS256-signed bearer tokens.
type Verifier struct {
	Secret    []byte
	Issuer    string
	Audience  string
	ClockSkew time.Duration
}

// Verify parses and validates the raw token at the supplied instant and
// extracts the uid and email claims.
func (v Verifier) Verify(raw string, now time.Time) (Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(v.Secret) == 0 {
		return Claims{}, ErrInvalidToken
	}
	options := []jwt.ParseOption{
		jwt.WithKey(jwa.HS256, v.Secret),
		jwt.WithClock(jwt.ClockFunc(func() time.Time { return now })),
	}
	if v.ClockSkew > 0 {
		options = append(options, jwt.WithAcceptableSkew(v.ClockSkew))
	}
	if v.Issuer != "" {
		options = append(options, jwt.WithIssuer(v.Issuer))
	}
	if v.Audience != "" {
		options = append(options, jwt.WithAudience(v.Audience))
	}
	tok, err := jwt.ParseString(raw, options...)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims := Claims{UID: tok.Subject()}
	if claims.UID == "" {
		if uid, ok := tok.Get("uid"); ok {
			claims.UID, _ = uid.(string)
		}
	}
	if email, ok := tok.Get("email"); ok {
		claims.Email, _ = email.(string)
	}
	if claims.UID == "" && claims.Email == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
