package oauthsdk

// ErrorResponse represents a standard OAuth2 error response per RFC 6749.
type ErrorResponse struct {
	// Error is the OAuth2 error code (e.g., "invalid_grant")
	Error string `json:"error"`

	// ErrorDescription is a human-readable description of the error
	ErrorDescription string `json:"error_description"`
}

// TokenResponse represents the token endpoint response per RFC 6749.
type TokenResponse struct {
	// AccessToken is the opaque bearer token for the userinfo endpoint
	AccessToken string `json:"access_token"`

	// TokenType is always "Bearer"
	TokenType string `json:"token_type"`

	// ExpiresIn is the lifetime in seconds of the access token
	ExpiresIn int `json:"expires_in"`

	// Scope is the space-delimited list of granted scopes
	Scope string `json:"scope,omitempty"`
}

// UserInfoResponse is the scoped profile payload of the userinfo endpoint.
// Fields beyond Sub appear only when the corresponding scope was granted.
type UserInfoResponse struct {
	Sub            string `json:"sub"`
	Username       string `json:"username,omitempty"`
	DisplayName    string `json:"display_name,omitempty"`
	GraduationYear int    `json:"graduation_year,omitempty"`
	Major          string `json:"major,omitempty"`
	Bio            string `json:"bio,omitempty"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	Email          string `json:"email,omitempty"`
}

// RevokeResponse is returned by the revocation endpoint. Always successful
// regardless of whether the token existed (RFC 7009 non-disclosure).
type RevokeResponse struct {
	Success bool `json:"success"`
}

// CreateClientRequest registers a new third-party application.
type CreateClientRequest struct {
	// Name is the human-readable application name shown on the consent page
	Name string `json:"name"`

	// Description is shown to end-users alongside the name
	Description string `json:"description,omitempty"`

	// RedirectURIs is the exact-match set of permitted callback URIs
	RedirectURIs []string `json:"redirect_uris"`

	// Scopes is the set of scopes the client may request
	Scopes []string `json:"scopes"`

	// Public marks browser/mobile clients that cannot hold a secret and
	// must use PKCE instead
	Public bool `json:"public"`
}

// UpdateClientRequest carries a partial update; nil fields are untouched.
type UpdateClientRequest struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	RedirectURIs *[]string `json:"redirect_uris,omitempty"`
	Scopes       *[]string `json:"scopes,omitempty"`
}

// ClientInfo is the admin-facing view of a client. The secret hash is never
// included; the raw secret appears only in CreateClientResponse and
// RotateSecretResponse.
type ClientInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	RedirectURIs []string `json:"redirect_uris"`
	Scopes       []string `json:"scopes"`
	Public       bool     `json:"public"`
	Active       bool     `json:"active"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

// CreateClientResponse carries the one and only disclosure of a freshly
// generated client secret.
type CreateClientResponse struct {
	Client       ClientInfo `json:"client"`
	ClientSecret string     `json:"client_secret,omitempty"`
}

// RotateSecretResponse carries the one and only disclosure of a rotated
// client secret.
type RotateSecretResponse struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// ListClientsResponse wraps the admin client listing.
type ListClientsResponse struct {
	Clients []ClientInfo `json:"clients"`
}

// HealthChecks reports the status of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is returned by the liveness and readiness probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
