// Package identity answers exactly one question for the authorization
// server: who is the end user behind this request? Authentication itself
// (passwords, SSO, sessions) is owned by the host application; this package
// only validates the session credential the host hands the browser.
package identity

import (
	"context"
	"errors"
)

// ErrUnauthenticated reports a missing, malformed or expired session
// credential. Handlers translate it into a redirect to the login page.
var ErrUnauthenticated = errors.New("identity: unauthenticated")

// Session describes the authenticated end user.
type Session struct {
	UserID string
	Email  string
	Admin  bool
}

// Provider validates a session credential presented by the browser.
type Provider interface {
	// ValidateSession returns the session behind the credential, or
	// ErrUnauthenticated if the credential does not prove a live session.
	ValidateSession(ctx context.Context, credential string) (Session, error)
}
