// package session resolves the caller's identity from the bearer credential and
// applies the dashboard's route gates.
//
// Claims are parsed without signature verification: the backend validates the token
// on every request, so the client only reads claims to decide which views to offer.
package session

import (
	"fmt"
	"time"

	"github.com/blossomlabs/blossom-cli/internal/shared"
	"github.com/golang-jwt/jwt/v5"
)

// Role constants as issued by the auth provider.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Session is the decoded identity behind a bearer credential.
type Session struct {
	UserID        string
	Email         string
	EmailVerified bool
	Provider      string
	Role          string
	PlanSlug      string
	ExpiresAt     time.Time
	Token         string
}

// Parse decodes the bearer token's claims without verifying its signature.
//
// An empty token yields ErrNotAuthenticated; a token the parser cannot read yields
// ErrInvalidCredentials.
func Parse(token string) (*Session, error) {
	if token == "" {
		return nil, shared.ErrNotAuthenticated
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}

	s := &Session{
		UserID:        stringClaim(claims, "sub"),
		Email:         stringClaim(claims, "email"),
		EmailVerified: boolClaim(claims, "email_verified"),
		Provider:      stringClaim(claims, "provider"),
		Role:          stringClaim(claims, "role"),
		PlanSlug:      stringClaim(claims, "plan"),
		Token:         token,
	}

	if s.Role == "" {
		s.Role = RoleUser
	}

	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.ExpiresAt = exp.Time
	}

	return s, nil
}

// Expired reports whether the token's expiry has passed. Tokens without an exp claim never expire client-side.
func (s *Session) Expired() bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// IsAdmin reports whether the session carries the admin role.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// HasActivePlan reports whether a plan slug is present on the session.
// Admins bypass the plan gate regardless.
func (s *Session) HasActivePlan() bool {
	return s != nil && s.PlanSlug != ""
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}

func boolClaim(claims jwt.MapClaims, key string) bool {
	if v, ok := claims[key].(bool); ok {
		return v
	}
	return false
}
