package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// PKCEMethodS256 is the only supported code_challenge_method (RFC 7636).
const PKCEMethodS256 = "S256"

// ChallengeS256 computes the S256 code challenge for a PKCE verifier:
// base64url(SHA-256(verifier)) without padding.
func ChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// VerifyS256 reports whether verifier satisfies the stored challenge.
// A plain string compare is fine: the challenge is a hash of a value the
// client already sent over TLS, not a secret in its own right.
func VerifyS256(verifier, challenge string) bool {
	if verifier == "" || challenge == "" {
		return false
	}
	return ChallengeS256(verifier) == challenge
}
