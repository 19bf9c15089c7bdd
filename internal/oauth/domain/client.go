package domain

import (
	"slices"
	"time"
)

// Client is a registered third-party application.
type Client struct {
	ID           string
	Name         string
	Description  string
	RedirectURIs []string // exact-match set, non-empty while active
	Scopes       []string // allowed scopes, non-empty while active
	Public       bool     // true => no secret, PKCE mandatory
	SecretHash   string   // SHA-256 fingerprint; empty for public clients
	Active       bool     // soft-delete flag; inactive clients cannot authorize
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// HasRedirectURI reports whether uri is an exact member of the registered
// redirect URI set. No normalization: a trailing slash, case difference or
// query string is a different URI.
func (c Client) HasRedirectURI(uri string) bool {
	return slices.Contains(c.RedirectURIs, uri)
}

// AllowsScopes reports whether every requested scope is in the client's
// allowed set.
func (c Client) AllowsScopes(requested []string) bool {
	for _, s := range requested {
		if !slices.Contains(c.Scopes, s) {
			return false
		}
	}
	return true
}
