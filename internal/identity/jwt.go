package identity

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// sessionClaims is the host application's session token payload.
type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Admin bool   `json:"admin,omitempty"`
}

// JWTProvider validates HS256 session tokens minted by the host
// application. Suitable when the review app and the authorization server
// share a process or a signing secret.
type JWTProvider struct {
	secret []byte
	issuer string
}

// NewJWTProvider builds a provider for HS256 tokens signed with secret.
// issuer is optional; when set, tokens from other issuers are rejected.
func NewJWTProvider(secret []byte, issuer string) *JWTProvider {
	return &JWTProvider{secret: secret, issuer: issuer}
}

func (p *JWTProvider) ValidateSession(_ context.Context, credential string) (Session, error) {
	if credential == "" {
		return Session{}, ErrUnauthenticated
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if p.issuer != "" {
		opts = append(opts, jwt.WithIssuer(p.issuer))
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(credential, &claims, func(*jwt.Token) (any, error) {
		return p.secret, nil
	}, opts...)
	if err != nil {
		return Session{}, errors.Join(ErrUnauthenticated, err)
	}

	if claims.Subject == "" {
		return Session{}, ErrUnauthenticated
	}

	return Session{
		UserID: claims.Subject,
		Email:  claims.Email,
		Admin:  claims.Admin,
	}, nil
}
