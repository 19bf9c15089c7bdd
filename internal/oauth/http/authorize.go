package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/campusboard/campusboard/internal/identity"
	"github.com/campusboard/campusboard/internal/oauth/service"
	"github.com/campusboard/campusboard/pkg/slogx"
)

const sessionCookieName = "campusboard_session"

// AuthorizeHandler processes the browser-facing authorization endpoint:
// request validation, login redirect, consent rendering and code issuance.
type AuthorizeHandler struct {
	AuthorizeService *service.AuthorizeService
	Identity         identity.Provider
	LoginURL         string
	Logger           *slog.Logger
}

// HandleGet godoc
//
//	@Summary		OAuth2 authorization endpoint
//	@Description	Begins the authorization code flow. Validates the client and request,
//	@Description	redirects unauthenticated browsers to the login page, and renders the
//	@Description	consent page for authenticated users.
//	@Tags			OAuth2
//	@Produce		html
//	@Param			response_type			query		string	true	"Must be 'code'"	default(code)
//	@Param			client_id				query		string	true	"Client identifier"
//	@Param			redirect_uri			query		string	true	"Callback URI (exact match against the registered set)"
//	@Param			scope					query		string	false	"Space-delimited scopes; defaults to 'profile'"
//	@Param			state					query		string	false	"Opaque value echoed back on the redirect (CSRF protection)"
//	@Param			code_challenge			query		string	false	"PKCE S256 challenge (required for public clients)"
//	@Param			code_challenge_method	query		string	false	"Must be 'S256' when code_challenge is present"	Enums(S256)
//	@Param			token					query		string	false	"End-user session token from the identity provider"
//	@Success		200						{string}	string	"Consent page"
//	@Success		302						{string}	string	"Redirect to login, or to the client with an error"
//	@Failure		400						{string}	string	"Error page for pre-redirect-trust failures"
//	@Failure		401						{string}	string	"Error page for invalid sessions"
//	@Router			/oauth/authorize [get].
func (h *AuthorizeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	req := service.AuthorizeRequest{
		ResponseType:        q.Get("response_type"),
		ClientID:            q.Get("client_id"),
		RedirectURI:         q.Get("redirect_uri"),
		Scope:               q.Get("scope"),
		State:               q.Get("state"),
		CodeChallenge:       q.Get("code_challenge"),
		CodeChallengeMethod: q.Get("code_challenge_method"),
	}

	prompt, err := h.AuthorizeService.ValidateRequest(ctx, req)
	if err != nil {
		h.writeAuthorizeError(w, r, err)
		return
	}

	credential := h.sessionCredential(r)
	if credential == "" {
		// Suspend-and-resume: send the browser to login with a pointer back
		// to this exact authorization URL.
		h.redirectToLogin(w, r)
		return
	}

	if _, err := h.Identity.ValidateSession(ctx, credential); err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	data := consentPageData{
		ClientName:          prompt.Client.Name,
		ClientDescription:   prompt.Client.Description,
		ScopeLabels:         scopeLabels(prompt.Scopes),
		ClientID:            prompt.Client.ID,
		RedirectURI:         prompt.RedirectURI,
		Scope:               strings.Join(prompt.Scopes, " "),
		State:               prompt.State,
		Token:               credential,
		CodeChallenge:       prompt.CodeChallenge,
		CodeChallengeMethod: prompt.CodeChallengeMethod,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := consentPageTmpl.Execute(w, data); err != nil {
		slogx.FromContext(ctx).Error("failed to render consent page", "error", err)
	}
}

// HandleConfirm godoc
//
//	@Summary		OAuth2 consent submission
//	@Description	Captures the user's consent decision. Re-validates the client and
//	@Description	redirect URI against the registry before acting on the form, then
//	@Description	issues an authorization code (approve) or an access_denied redirect (deny).
//	@Tags			OAuth2
//	@Accept			application/x-www-form-urlencoded
//	@Produce		html
//	@Param			client_id				formData	string	true	"Client identifier"
//	@Param			redirect_uri			formData	string	true	"Callback URI"
//	@Param			scope					formData	string	false	"Space-delimited scopes"
//	@Param			state					formData	string	false	"Opaque client value"
//	@Param			token					formData	string	true	"End-user session token"
//	@Param			code_challenge			formData	string	false	"PKCE S256 challenge"
//	@Param			code_challenge_method	formData	string	false	"'S256' when code_challenge is present"
//	@Param			action					formData	string	true	"User decision"	Enums(approve, deny)
//	@Success		302						{string}	string	"Redirect to the client with code= or error=access_denied"
//	@Failure		400						{string}	string	"Error page"
//	@Failure		401						{string}	string	"Error page for invalid sessions"
//	@Router			/oauth/authorize/confirm [post].
func (h *AuthorizeHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		writeErrorPage(w, http.StatusBadRequest, "invalid form body")
		return
	}

	// Stale or forged forms get the full validation chain again; the hidden
	// fields are untrusted input like everything else.
	req := service.AuthorizeRequest{
		ResponseType:        "code",
		ClientID:            r.Form.Get("client_id"),
		RedirectURI:         r.Form.Get("redirect_uri"),
		Scope:               r.Form.Get("scope"),
		State:               r.Form.Get("state"),
		CodeChallenge:       r.Form.Get("code_challenge"),
		CodeChallengeMethod: r.Form.Get("code_challenge_method"),
	}

	prompt, err := h.AuthorizeService.ValidateRequest(ctx, req)
	if err != nil {
		h.writeAuthorizeError(w, r, err)
		return
	}

	credential := r.Form.Get("token")
	if credential == "" {
		credential = h.sessionCredential(r)
	}
	sess, err := h.Identity.ValidateSession(ctx, credential)
	if err != nil {
		h.handleSessionError(w, r, err)
		return
	}

	switch r.Form.Get("action") {
	case "approve":
		redirect, err := h.AuthorizeService.Approve(ctx, prompt, sess.UserID)
		if err != nil {
			slogx.FromContext(ctx).Error("failed to issue authorization code", "error", err)
			writeErrorPage(w, http.StatusInternalServerError, "something went wrong issuing the authorization code")
			return
		}
		http.Redirect(w, r, redirect, http.StatusFound)
	case "deny":
		http.Redirect(w, r, h.AuthorizeService.Deny(prompt), http.StatusFound)
	default:
		writeErrorPage(w, http.StatusBadRequest, "unrecognized consent action")
	}
}

func (h *AuthorizeHandler) writeAuthorizeError(w http.ResponseWriter, r *http.Request, err error) {
	var pageErr *service.PageError
	var redirectErr *service.RedirectError

	switch {
	case errors.As(err, &pageErr):
		writePageError(w, pageErr)
	case errors.As(err, &redirectErr):
		http.Redirect(w, r, redirectErr.URL(), http.StatusFound)
	default:
		slogx.FromContext(r.Context()).Error("authorization request failed", "error", err)
		writeErrorPage(w, http.StatusInternalServerError, "something went wrong processing the authorization request")
	}
}

func (h *AuthorizeHandler) handleSessionError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, identity.ErrUnauthenticated) {
		writeErrorPage(w, http.StatusUnauthorized, "your session is invalid or has expired; please sign in again")
		return
	}
	slogx.FromContext(r.Context()).Error("session validation failed", "error", err)
	writeErrorPage(w, http.StatusInternalServerError, "something went wrong validating your session")
}

// sessionCredential extracts the end-user session token from the query
// string (set by the login redirect) or the session cookie.
func (h *AuthorizeHandler) sessionCredential(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (h *AuthorizeHandler) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	next := r.URL.RequestURI()
	sep := "?"
	if strings.Contains(h.LoginURL, "?") {
		sep = "&"
	}
	http.Redirect(w, r, h.LoginURL+sep+"next="+url.QueryEscape(next), http.StatusFound)
}
