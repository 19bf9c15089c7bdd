package http

import (
	"net/http"
	"strings"

	"github.com/campusboard/campusboard/internal/oauth/service"
	"github.com/campusboard/campusboard/pkg/httpx"
	"github.com/campusboard/campusboard/pkg/oauthsdk"
	"github.com/campusboard/campusboard/pkg/slogx"
)

// RevokeHandler serves POST /oauth/revoke
type RevokeHandler struct {
	TokenService *service.TokenService
}

// ServeHTTP godoc
//
//	@Summary		Token Revocation Endpoint
//	@Description	Revokes an access token. Always responds success, whether or not the
//	@Description	token existed or was already revoked (RFC 7009 non-disclosure).
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			token	formData	string					true	"The access token to revoke"
//	@Success		200		{object}	oauthsdk.RevokeResponse	"success always true"
//	@Failure		400		{object}	oauthsdk.ErrorResponse	"malformed request body"
//	@Failure		500		{object}	oauthsdk.ErrorResponse	"infrastructure failure"
//	@Router			/oauth/revoke [post].
func (h *RevokeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		oauthsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		oauthsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	if err := h.TokenService.Revoke(ctx, strings.TrimSpace(r.Form.Get("token"))); err != nil {
		slogx.FromContext(ctx).Error("revocation failed", "error", err)
		oauthsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, oauthsdk.RevokeResponse{Success: true})
}
