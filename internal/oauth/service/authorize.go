package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/campusboard/campusboard/internal/metrics"
	"github.com/campusboard/campusboard/internal/oauth/domain"
	"github.com/campusboard/campusboard/internal/oauth/store"
	"github.com/campusboard/campusboard/pkg/cryptox"
	"github.com/campusboard/campusboard/pkg/httpx"
	"github.com/campusboard/campusboard/pkg/idx"
	"github.com/campusboard/campusboard/pkg/oauthsdk"
)

// AuthorizeRequest carries the raw query or form parameters of an
// authorization request. Every state-machine step takes its inputs
// explicitly; there is no ambient per-request context.
type AuthorizeRequest struct {
	ResponseType        string
	ClientID            string
	RedirectURI         string
	Scope               string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string
}

// AuthorizePrompt is a fully validated authorization request, ready for
// consent rendering or code issuance.
type AuthorizePrompt struct {
	Client              domain.Client
	RedirectURI         string
	Scopes              []string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string
}

// AuthorizeService drives the authorization endpoint: ordered request
// validation, consent outcomes and code issuance.
type AuthorizeService struct {
	store   store.Store
	metrics *metrics.Metrics
	codeTTL time.Duration
}

func NewAuthorizeService(st store.Store, m *metrics.Metrics, codeTTL time.Duration) *AuthorizeService {
	return &AuthorizeService{store: st, metrics: m, codeTTL: codeTTL}
}

// ValidateRequest runs the ordered validation chain. Failures before the
// redirect URI is trusted return *PageError; failures after return
// *RedirectError. The order is load-bearing: an attacker-supplied
// redirect_uri must never receive an error redirect.
func (s *AuthorizeService) ValidateRequest(ctx context.Context, req AuthorizeRequest) (AuthorizePrompt, error) {
	if req.ResponseType != "code" {
		return AuthorizePrompt{}, &PageError{
			Status:  http.StatusBadRequest,
			Message: "unsupported response_type: only \"code\" is available",
		}
	}

	if req.ClientID == "" || req.RedirectURI == "" {
		return AuthorizePrompt{}, &PageError{
			Status:  http.StatusBadRequest,
			Message: "client_id and redirect_uri are required",
		}
	}

	client, err := s.store.Clients().GetActiveClientByID(ctx, req.ClientID)
	if errors.Is(err, store.ErrNotFound) {
		return AuthorizePrompt{}, &PageError{
			Status:  http.StatusBadRequest,
			Message: "unknown client",
		}
	}
	if err != nil {
		return AuthorizePrompt{}, fmt.Errorf("lookup client: %w", err)
	}

	if !client.HasRedirectURI(req.RedirectURI) {
		return AuthorizePrompt{}, &PageError{
			Status:  http.StatusBadRequest,
			Message: "redirect_uri is not registered for this client",
		}
	}

	// The redirect URI is trusted from here on; remaining failures go back
	// to the client application.

	scopes := httpx.ParseSpaceDelimitedFields(req.Scope)
	if len(scopes) == 0 {
		scopes = domain.DefaultScopes
	}
	if !client.AllowsScopes(scopes) {
		return AuthorizePrompt{}, &RedirectError{
			RedirectURI: req.RedirectURI,
			Code:        oauthsdk.ErrorCodeInvalidScope,
			Description: "requested scope is not allowed for this client",
			State:       req.State,
		}
	}

	if client.Public && req.CodeChallenge == "" {
		return AuthorizePrompt{}, &RedirectError{
			RedirectURI: req.RedirectURI,
			Code:        oauthsdk.ErrorCodeInvalidRequest,
			Description: "public clients must use PKCE",
			State:       req.State,
		}
	}
	if req.CodeChallenge != "" {
		if req.CodeChallengeMethod != cryptox.PKCEMethodS256 {
			return AuthorizePrompt{}, &RedirectError{
				RedirectURI: req.RedirectURI,
				Code:        oauthsdk.ErrorCodeInvalidRequest,
				Description: "code_challenge_method must be S256",
				State:       req.State,
			}
		}
		if l := len(req.CodeChallenge); l < 43 || l > 128 {
			return AuthorizePrompt{}, &RedirectError{
				RedirectURI: req.RedirectURI,
				Code:        oauthsdk.ErrorCodeInvalidRequest,
				Description: "malformed code_challenge",
				State:       req.State,
			}
		}
	}

	return AuthorizePrompt{
		Client:              client,
		RedirectURI:         req.RedirectURI,
		Scopes:              scopes,
		State:               req.State,
		CodeChallenge:       req.CodeChallenge,
		CodeChallengeMethod: req.CodeChallengeMethod,
	}, nil
}

// Approve mints a single-use authorization code for the prompt and returns
// the success redirect. Only the code's SHA-256 fingerprint is persisted.
func (s *AuthorizeService) Approve(ctx context.Context, prompt AuthorizePrompt, userID string) (string, error) {
	raw, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("generate authorization code: %w", err)
	}

	now := time.Now().UTC()
	code := domain.AuthorizationCode{
		ID:                  idx.New().String(),
		CodeHash:            cryptox.FingerprintToken(raw),
		ClientID:            prompt.Client.ID,
		UserID:              userID,
		RedirectURI:         prompt.RedirectURI,
		Scopes:              prompt.Scopes,
		CodeChallenge:       prompt.CodeChallenge,
		CodeChallengeMethod: prompt.CodeChallengeMethod,
		ExpiresAt:           now.Add(s.codeTTL),
		CreatedAt:           now,
	}
	if err := s.store.AuthorizationCodes().CreateAuthorizationCode(ctx, code); err != nil {
		return "", fmt.Errorf("persist authorization code: %w", err)
	}

	s.metrics.AuthorizationCodesIssued.Inc()

	params := url.Values{}
	params.Set("code", raw)
	if prompt.State != "" {
		params.Set("state", prompt.State)
	}
	return appendQuery(prompt.RedirectURI, params), nil
}

// Deny builds the access_denied redirect for a declined consent.
func (s *AuthorizeService) Deny(prompt AuthorizePrompt) string {
	s.metrics.ConsentDenied.Inc()

	redirect := &RedirectError{
		RedirectURI: prompt.RedirectURI,
		Code:        oauthsdk.ErrorCodeAccessDenied,
		Description: "the user denied the request",
		State:       prompt.State,
	}
	return redirect.URL()
}
