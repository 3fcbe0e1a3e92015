package jwtx

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the bearer-token claims issued by the auth server. The token is
// signed server-side; the client never verifies the signature, it only decodes
// the claims to decide which view to route to. Real authorization happens on
// the server for every signed request.
type Claims struct {
	jwt.RegisteredClaims

	// Username for the authenticated user
	Username string `json:"username,omitempty"`

	// PublicKey is the PEM-encoded public half of the per-user signing key.
	// The server uses it to verify request signatures; the client carries it
	// only because it rides along in the token.
	PublicKey string `json:"public_key,omitempty"`
}

// Decode parses a bearer token's claims without verifying its signature.
func Decode(token string) (*Claims, error) {
	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("jwtx: failed to decode token: %w", err)
	}
	return claims, nil
}

// Live reports whether the claims are still valid at now. The comparison is in
// whole seconds and a token expiring exactly now is still live; only a strictly
// positive now-exp difference counts as expired. Claims without an exp are
// treated as expired.
func (c *Claims) Live(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return now.Unix()-c.ExpiresAt.Unix() <= 0
}

// IsLive decodes token and checks liveness at now. Tokens that cannot be
// decoded at all are not live; callers route both cases to the
// unauthenticated view.
func IsLive(token string, now time.Time) bool {
	claims, err := Decode(token)
	if err != nil {
		return false
	}
	return claims.Live(now)
}
