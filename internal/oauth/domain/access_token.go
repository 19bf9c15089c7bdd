package domain

import (
	"slices"
	"time"
)

// AccessToken is a bearer credential for the userinfo endpoint. Only the
// SHA-256 fingerprint of the opaque token is stored.
type AccessToken struct {
	ID        string
	TokenHash string
	ClientID  string
	UserID    string
	Scopes    []string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

// ValidAt reports whether the token is usable at the given instant. A token
// whose expiry equals now is already expired.
func (t AccessToken) ValidAt(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}

// HasScope reports whether the token was granted the named scope.
func (t AccessToken) HasScope(scope string) bool {
	return slices.Contains(t.Scopes, scope)
}
