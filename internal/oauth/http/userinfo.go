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

// UserInfoHandler serves GET /oauth/userinfo
type UserInfoHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		UserInfo Endpoint
//	@Description	Returns the profile subset permitted by the access token's granted scopes.
//	@Description	The sub claim is always present; profile fields require the "profile" scope
//	@Description	and email requires the "email" scope.
//	@Tags			OAuth2
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	oauthsdk.UserInfoResponse	"sub plus scoped profile fields"
//	@Failure		401	{object}	oauthsdk.ErrorResponse		"invalid, expired or revoked token"
//	@Failure		404	{object}	oauthsdk.ErrorResponse		"user deleted after token issuance"
//	@Router			/oauth/userinfo [get].
func (h *UserInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := h.TokenService.UserInfo(ctx, bearerToken(r))
	if err != nil {
		var oauthErr *oauthsdk.OAuth2Error
		if errors.As(err, &oauthErr) {
			oauthErr.WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("userinfo lookup failed", "error", err)
		oauthsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}

// bearerToken extracts the token from an "Authorization: Bearer x" header.
// Empty when the header is missing or differently shaped.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
