package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/campusboard/campusboard/internal/metrics"
	"github.com/campusboard/campusboard/internal/oauth/domain"
	"github.com/campusboard/campusboard/internal/oauth/store"
	"github.com/campusboard/campusboard/pkg/cryptox"
	"github.com/campusboard/campusboard/pkg/idx"
	"github.com/campusboard/campusboard/pkg/oauthsdk"
)

// ErrUserGone reports a valid token whose user row no longer exists.
var ErrUserGone = oauthsdk.NewOAuth2Error(
	http.StatusNotFound, "not_found", "user no longer exists")

// TokenRequest carries the form parameters of a token-exchange request.
type TokenRequest struct {
	GrantType    string
	Code         string
	RedirectURI  string
	ClientID     string
	ClientSecret string
	CodeVerifier string
}

// TokenService handles code exchange, bearer-token introspection for the
// userinfo endpoint, and revocation.
type TokenService struct {
	store          store.Store
	metrics        *metrics.Metrics
	accessTokenTTL time.Duration
}

func NewTokenService(st store.Store, m *metrics.Metrics, accessTokenTTL time.Duration) *TokenService {
	return &TokenService{store: st, metrics: m, accessTokenTTL: accessTokenTTL}
}

// Exchange swaps a single-use authorization code for an access token.
// Protocol failures come back as *oauthsdk.OAuth2Error; anything else is an
// infrastructure failure the handler maps to server_error.
//
// The code is consumed BEFORE the binding checks run. A code presented with
// the wrong client, redirect URI or verifier is burned anyway, so an
// attacker cannot probe a stolen code without destroying it.
func (s *TokenService) Exchange(ctx context.Context, req TokenRequest) (*oauthsdk.TokenResponse, error) {
	if req.GrantType != "authorization_code" {
		return nil, s.fail(oauthsdk.ErrUnsupportedGrantType, metrics.ReasonUnsupportedGrant)
	}
	if req.Code == "" || req.ClientID == "" || req.RedirectURI == "" {
		return nil, s.fail(oauthsdk.ErrInvalidRequest, metrics.ReasonInvalidRequest)
	}

	client, err := s.store.Clients().GetActiveClientByID(ctx, req.ClientID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, s.fail(oauthsdk.ErrInvalidClient, metrics.ReasonInvalidClient)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup client: %w", err)
	}

	if !client.Public {
		if req.ClientSecret == "" ||
			!cryptox.ConstantTimeEquals(cryptox.FingerprintToken(req.ClientSecret), client.SecretHash) {
			return nil, s.fail(oauthsdk.ErrInvalidClient, metrics.ReasonInvalidClient)
		}
	}

	now := time.Now().UTC()
	code, err := s.store.AuthorizationCodes().ConsumeAuthorizationCode(
		ctx, cryptox.FingerprintToken(req.Code), now)
	if errors.Is(err, store.ErrNotFound) {
		return nil, s.fail(oauthsdk.ErrInvalidGrant, metrics.ReasonInvalidGrant)
	}
	if err != nil {
		return nil, fmt.Errorf("consume authorization code: %w", err)
	}

	// Post-claim checks. Expired, misbound and PKCE-failing codes all
	// collapse into the same generic invalid_grant.
	if !code.ExpiresAt.After(now) {
		return nil, s.fail(oauthsdk.ErrInvalidGrant, metrics.ReasonInvalidGrant)
	}
	if code.ClientID != client.ID || code.RedirectURI != req.RedirectURI {
		return nil, s.fail(oauthsdk.ErrInvalidGrant, metrics.ReasonInvalidGrant)
	}
	if code.CodeChallenge != "" {
		if !cryptox.VerifyS256(req.CodeVerifier, code.CodeChallenge) {
			return nil, s.fail(oauthsdk.ErrInvalidGrant, metrics.ReasonInvalidGrant)
		}
	} else if req.CodeVerifier != "" {
		return nil, s.fail(oauthsdk.ErrInvalidGrant, metrics.ReasonInvalidGrant)
	}

	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	token := domain.AccessToken{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(raw),
		ClientID:  client.ID,
		UserID:    code.UserID,
		Scopes:    code.Scopes,
		ExpiresAt: now.Add(s.accessTokenTTL),
		CreatedAt: now,
	}
	if err := s.store.AccessTokens().CreateAccessToken(ctx, token); err != nil {
		return nil, fmt.Errorf("persist access token: %w", err)
	}

	s.metrics.AccessTokensIssued.Inc()

	return &oauthsdk.TokenResponse{
		AccessToken: raw,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.accessTokenTTL.Seconds()),
		Scope:       strings.Join(token.Scopes, " "),
	}, nil
}

// UserInfo resolves a bearer token into the scoped profile payload.
func (s *TokenService) UserInfo(ctx context.Context, rawToken string) (*oauthsdk.UserInfoResponse, error) {
	if rawToken == "" {
		return nil, oauthsdk.ErrInvalidToken
	}

	token, err := s.store.AccessTokens().GetAccessTokenByHash(
		ctx, cryptox.FingerprintToken(rawToken))
	if errors.Is(err, store.ErrNotFound) {
		return nil, oauthsdk.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("lookup access token: %w", err)
	}
	if !token.ValidAt(time.Now().UTC()) {
		return nil, oauthsdk.ErrInvalidToken
	}

	user, err := s.store.Users().GetUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrUserGone
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	resp := &oauthsdk.UserInfoResponse{Sub: user.ID}
	if token.HasScope(domain.ScopeProfile) {
		resp.Username = user.Username
		resp.DisplayName = user.DisplayName
		resp.GraduationYear = user.GraduationYear
		resp.Major = user.Major
		resp.Bio = user.Bio
		resp.AvatarURL = user.AvatarURL
	}
	if token.HasScope(domain.ScopeEmail) {
		resp.Email = user.Email
	}
	return resp, nil
}

// Revoke marks the token revoked. Unknown and already-revoked tokens are
// indistinguishable from live ones to the caller; only infrastructure
// failures surface.
func (s *TokenService) Revoke(ctx context.Context, rawToken string) error {
	s.metrics.RevocationRequests.Inc()

	if rawToken == "" {
		return nil
	}

	err := s.store.AccessTokens().RevokeAccessToken(
		ctx, cryptox.FingerprintToken(rawToken), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("revoke access token: %w", err)
	}
	return nil
}

func (s *TokenService) fail(err *oauthsdk.OAuth2Error, reason string) error {
	s.metrics.GrantFailures.WithLabelValues(reason).Inc()
	return err
}
