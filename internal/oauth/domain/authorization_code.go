package domain

import "time"

// AuthorizationCode is a single-use credential proving that a user approved
// a specific client for a specific scope set. Only the SHA-256 fingerprint
// of the opaque code is stored.
type AuthorizationCode struct {
	ID                  string
	CodeHash            string
	ClientID            string
	UserID              string
	RedirectURI         string // must match the token request exactly
	Scopes              []string
	CodeChallenge       string // empty when the client did not use PKCE
	CodeChallengeMethod string // "S256" or empty
	ExpiresAt           time.Time
	UsedAt              *time.Time // transitions nil -> non-nil exactly once
	CreatedAt           time.Time
}
