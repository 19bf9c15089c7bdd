package http

import (
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/campusboard/campusboard/pkg/cryptox"
	"github.com/campusboard/campusboard/pkg/oauthsdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidentialClientFullFlow(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	client, secret := ts.seedClient(t, false)
	session := signSession(t, user.ID, false)

	// 1. GET /oauth/authorize renders the consent page.
	params := authorizeQuery(client, session)
	resp := ts.getAuthorize(t, params)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), client.Name)
	assert.Contains(t, string(body), "See your email address")

	// 2. Approve consent, collect the code.
	code := ts.approveAndExtractCode(t, params, session)

	// 3. Exchange at the token endpoint.
	tokenResp := postForm(t, ts.Client(), ts.URL+"/oauth/token", url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {client.RedirectURIs[0]},
		"client_id":     {client.ID},
		"client_secret": {secret},
	})
	require.Equal(t, http.StatusOK, tokenResp.StatusCode)
	assert.Equal(t, "no-store", tokenResp.Header.Get("Cache-Control"))
	token := decodeJSON[oauthsdk.TokenResponse](t, tokenResp)
	require.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.Equal(t, 3600, token.ExpiresIn)
	assert.Equal(t, "profile email", token.Scope)

	// 4. UserInfo with the bearer token.
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/oauth/userinfo", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	infoResp, err := ts.Client().Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, infoResp.StatusCode)
	info := decodeJSON[oauthsdk.UserInfoResponse](t, infoResp)
	assert.Equal(t, user.ID, info.Sub)
	assert.Equal(t, "jsmith", info.Username)
	assert.Equal(t, "jsmith@campus.example", info.Email)

	// 5. Revoke, then the token stops working.
	revokeResp := postForm(t, ts.Client(), ts.URL+"/oauth/revoke", url.Values{
		"token": {token.AccessToken},
	})
	require.Equal(t, http.StatusOK, revokeResp.StatusCode)
	revoke := decodeJSON[oauthsdk.RevokeResponse](t, revokeResp)
	assert.True(t, revoke.Success)

	deadResp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer deadResp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, deadResp.StatusCode)
}

func TestPublicClientPKCEFlowWithReplay(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	client, _ := ts.seedClient(t, true)
	session := signSession(t, user.ID, false)

	verifier := cryptox.MustGenerateToken(cryptox.TokenSize256)

	params := authorizeQuery(client, session)
	params.Set("code_challenge", cryptox.ChallengeS256(verifier))
	params.Set("code_challenge_method", "S256")

	resp := ts.getAuthorize(t, params)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	code := ts.approveAndExtractCode(t, params, session)

	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"redirect_uri":  {client.RedirectURIs[0]},
		"client_id":     {client.ID},
		"code_verifier": {verifier},
	}

	tokenResp := postForm(t, ts.Client(), ts.URL+"/oauth/token", form)
	require.Equal(t, http.StatusOK, tokenResp.StatusCode)
	token := decodeJSON[oauthsdk.TokenResponse](t, tokenResp)
	assert.NotEmpty(t, token.AccessToken)

	// Replaying the same exchange returns invalid_grant.
	replayResp := postForm(t, ts.Client(), ts.URL+"/oauth/token", form)
	require.Equal(t, http.StatusBadRequest, replayResp.StatusCode)
	replay := decodeJSON[oauthsdk.ErrorResponse](t, replayResp)
	assert.Equal(t, "invalid_grant", replay.Error)
}

func TestAuthorizeRedirectsAnonymousToLogin(t *testing.T) {
	ts := newTestServer(t)
	client, _ := ts.seedClient(t, false)

	params := authorizeQuery(client, "")
	resp := ts.getAuthorize(t, params)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	loc := resp.Header.Get("Location")
	require.True(t, strings.HasPrefix(loc, testLoginURL), "got %q", loc)

	// The next parameter points back at the full authorization URL.
	parsed, err := url.Parse(loc)
	require.NoError(t, err)
	next := parsed.Query().Get("next")
	assert.Contains(t, next, "/oauth/authorize")
	assert.Contains(t, next, "client_id")
}

func TestAuthorizeUnregisteredRedirectURIGetsErrorPage(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	client, _ := ts.seedClient(t, false)
	session := signSession(t, user.ID, false)

	params := authorizeQuery(client, session)
	params.Set("redirect_uri", "https://evil.example/callback")

	resp := ts.getAuthorize(t, params)
	defer resp.Body.Close()

	// Never a redirect: the open-redirect defense renders a page instead.
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestAuthorizeScopeViolationRedirectsWithError(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	client, _ := ts.seedClient(t, false)
	session := signSession(t, user.ID, false)

	params := authorizeQuery(client, session)
	params.Set("scope", "profile admin:everything")

	resp := ts.getAuthorize(t, params)
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), client.RedirectURIs[0]))
	assert.Equal(t, "invalid_scope", loc.Query().Get("error"))
	assert.Equal(t, "st4te", loc.Query().Get("state"))
}

func TestConsentDenyRedirectsAccessDenied(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	client, _ := ts.seedClient(t, false)
	session := signSession(t, user.ID, false)

	params := authorizeQuery(client, session)
	resp := postForm(t, ts.noRedirect, ts.URL+"/oauth/authorize/confirm",
		confirmForm(params, session, "deny"))
	defer resp.Body.Close()

	require.Equal(t, http.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "access_denied", loc.Query().Get("error"))
	assert.Equal(t, "st4te", loc.Query().Get("state"))
}

func TestConfirmWithExpiredSessionGetsErrorPage(t *testing.T) {
	ts := newTestServer(t)
	client, _ := ts.seedClient(t, false)

	params := authorizeQuery(client, "")
	resp := postForm(t, ts.noRedirect, ts.URL+"/oauth/authorize/confirm",
		confirmForm(params, "not-a-session-token", "approve"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTokenEndpointUnsupportedGrantType(t *testing.T) {
	ts := newTestServer(t)
	client, secret := ts.seedClient(t, false)

	resp := postForm(t, ts.Client(), ts.URL+"/oauth/token", url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {client.ID},
		"client_secret": {secret},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeJSON[oauthsdk.ErrorResponse](t, resp)
	assert.Equal(t, "unsupported_grant_type", body.Error)
}

func TestTokenEndpointRejectsJSONBody(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Post(ts.URL+"/oauth/token", "application/json",
		strings.NewReader(`{"grant_type":"authorization_code"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeactivatedClientDisappearsFromAuthorize(t *testing.T) {
	ts := newTestServer(t)
	user := ts.seedUser(t)
	client, _ := ts.seedClient(t, false)
	session := signSession(t, user.ID, false)

	req, err := http.NewRequest(http.MethodDelete,
		ts.URL+"/admin/oauth-clients/"+client.ID, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+signSession(t, user.ID, true))
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The very next authorization request no longer resolves the client.
	authResp := ts.getAuthorize(t, authorizeQuery(client, session))
	defer authResp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, authResp.StatusCode)
}

func TestLivezAndReadyz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/livez")
	require.NoError(t, err)
	health := decodeJSON[oauthsdk.HealthResponse](t, resp)
	assert.Equal(t, "ok", health.Status)

	resp, err = ts.Client().Get(ts.URL + "/readyz")
	require.NoError(t, err)
	ready := decodeJSON[oauthsdk.HealthResponse](t, resp)
	assert.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	assert.Equal(t, "ok", ready.Checks.Database)
}

func TestMetricsEndpointExposesCounters(t *testing.T) {
	ts := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "oauth_authorization_codes_issued_total")
}
