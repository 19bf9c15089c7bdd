package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/campusboard/campusboard/internal/oauth/service"
	"github.com/campusboard/campusboard/pkg/httpx"
	"github.com/campusboard/campusboard/pkg/oauthsdk"
	"github.com/campusboard/campusboard/pkg/slogx"
)

// TokenHandler serves POST /oauth/token
// Accepts application/x-www-form-urlencoded per the RFC 6749 framework.
type TokenHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		OAuth2 Token Endpoint
//	@Description	Exchanges a single-use authorization code for an opaque bearer access token.
//	@Description	Only grant_type=authorization_code is supported. Confidential clients must
//	@Description	send client_secret; public clients must send the PKCE code_verifier instead.
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			grant_type		formData	string					true	"Must be 'authorization_code'"
//	@Param			code			formData	string					true	"Authorization code from the consent redirect"
//	@Param			redirect_uri	formData	string					true	"Must equal the redirect_uri used on /oauth/authorize"
//	@Param			client_id		formData	string					true	"Client identifier"
//	@Param			client_secret	formData	string					false	"Client secret (confidential clients)"
//	@Param			code_verifier	formData	string					false	"PKCE verifier (required when the code carries a challenge)"
//	@Success		200				{object}	oauthsdk.TokenResponse	"access_token, token_type, expires_in, scope"
//	@Failure		400				{object}	oauthsdk.ErrorResponse	"error, error_description"
//	@Failure		401				{object}	oauthsdk.ErrorResponse	"error, error_description"
//	@Failure		500				{object}	oauthsdk.ErrorResponse	"error, error_description"
//	@Header			200				{string}	Cache-Control			"no-store"
//	@Header			200				{string}	Pragma					"no-cache"
//	@Router			/oauth/token [post].
func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		oauthsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		oauthsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	req := service.TokenRequest{
		GrantType:    r.Form.Get("grant_type"),
		Code:         strings.TrimSpace(r.Form.Get("code")),
		RedirectURI:  strings.TrimSpace(r.Form.Get("redirect_uri")),
		ClientID:     strings.TrimSpace(r.Form.Get("client_id")),
		ClientSecret: r.Form.Get("client_secret"),
		CodeVerifier: strings.TrimSpace(r.Form.Get("code_verifier")),
	}

	resp, err := h.TokenService.Exchange(ctx, req)
	if err != nil {
		var oauthErr *oauthsdk.OAuth2Error
		if errors.As(err, &oauthErr) {
			oauthErr.WriteError(w)
			return
		}
		log.Error("token exchange failed", "error", err)
		oauthsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
