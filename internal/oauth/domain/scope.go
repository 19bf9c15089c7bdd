package domain

// Scopes understood by the userinfo endpoint. Scope matching is flat string
// equality; there is no hierarchy.
const (
	ScopeProfile = "profile"
	ScopeEmail   = "email"
)

// DefaultScopes is granted when an authorization request names no scopes.
var DefaultScopes = []string{ScopeProfile}

// scopeLabels are the human-readable consent page descriptions.
var scopeLabels = map[string]string{
	ScopeProfile: "See your profile (name, major, graduation year, bio)",
	ScopeEmail:   "See your email address",
}

// ScopeLabel returns the consent-page description for a scope, falling back
// to the scope name itself for scopes registered by administrators.
func ScopeLabel(scope string) string {
	if label, ok := scopeLabels[scope]; ok {
		return label
	}
	return scope
}
