package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/campusboard/campusboard/internal/identity"
	"github.com/campusboard/campusboard/internal/metrics"
	"github.com/campusboard/campusboard/internal/oauth/domain"
	"github.com/campusboard/campusboard/internal/oauth/service"
	"github.com/campusboard/campusboard/internal/oauth/store"
	"github.com/campusboard/campusboard/internal/oauth/store/drivers/sqlite"
	"github.com/campusboard/campusboard/pkg/idx"
	"github.com/campusboard/campusboard/pkg/oauthsdk"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSessionSecret = []byte("e2e-session-secret")

const testLoginURL = "https://campus.example/login"

type testServer struct {
	*httptest.Server

	store   store.Store
	clients *service.ClientService
	// noRedirect stops at the first 3xx so redirects can be asserted on.
	noRedirect *http.Client
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	m := metrics.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	provider := identity.NewJWTProvider(testSessionSecret, "campusboard")

	router := NewRouter(st, provider, m, testLoginURL, "test", logger)
	router.AuthorizeService = service.NewAuthorizeService(st, m, 10*time.Minute)
	router.TokenService = service.NewTokenService(st, m, time.Hour)
	router.ClientService = service.NewClientService(st)
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{
		Server:  srv,
		store:   st,
		clients: service.NewClientService(st),
		noRedirect: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func signSession(t *testing.T, userID string, admin bool) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"iss":   "campusboard",
		"admin": admin,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSessionSecret)
	require.NoError(t, err)
	return signed
}

func (ts *testServer) seedUser(t *testing.T) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:             idx.New().String(),
		Username:       "jsmith",
		DisplayName:    "Jordan Smith",
		Email:          "jsmith@campus.example",
		GraduationYear: 2027,
		Major:          "Computer Science",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, ts.store.Users().CreateUser(context.Background(), u))
	return u
}

func (ts *testServer) seedClient(t *testing.T, public bool) (domain.Client, string) {
	t.Helper()

	client, secret, err := ts.clients.Create(context.Background(), oauthsdk.CreateClientRequest{
		Name:         "Course Planner",
		Description:  "Semester planning helper",
		RedirectURIs: []string{"https://planner.example/callback"},
		Scopes:       []string{domain.ScopeProfile, domain.ScopeEmail},
		Public:       public,
	})
	require.NoError(t, err)
	return client, secret
}

// authorizeQuery builds the standard authorize query for a seeded client.
// Individual tests mutate the returned values before encoding.
func authorizeQuery(client domain.Client, session string) url.Values {
	params := url.Values{
		"response_type": {"code"},
		"client_id":     {client.ID},
		"redirect_uri":  {client.RedirectURIs[0]},
		"scope":         {"profile email"},
		"state":         {"st4te"},
	}
	if session != "" {
		params.Set("token", session)
	}
	return params
}

func (ts *testServer) getAuthorize(t *testing.T, params url.Values) *http.Response {
	t.Helper()

	resp, err := ts.noRedirect.Get(ts.URL + "/oauth/authorize?" + params.Encode())
	require.NoError(t, err)
	return resp
}

// confirmForm converts an authorize query into the consent form the page
// would submit, with the given action.
func confirmForm(params url.Values, session, action string) url.Values {
	form := url.Values{
		"client_id":     {params.Get("client_id")},
		"redirect_uri":  {params.Get("redirect_uri")},
		"scope":         {params.Get("scope")},
		"state":         {params.Get("state")},
		"token":         {session},
		"action":        {action},
	}
	if v := params.Get("code_challenge"); v != "" {
		form.Set("code_challenge", v)
		form.Set("code_challenge_method", params.Get("code_challenge_method"))
	}
	return form
}

func postForm(t *testing.T, client *http.Client, endpoint string, form url.Values) *http.Response {
	t.Helper()

	resp, err := client.Post(endpoint, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

// approveAndExtractCode walks consent for the given authorize query and
// returns the raw authorization code from the redirect.
func (ts *testServer) approveAndExtractCode(t *testing.T, params url.Values, session string) string {
	t.Helper()

	resp := postForm(t, ts.noRedirect, ts.URL+"/oauth/authorize/confirm",
		confirmForm(params, session, "approve"))
	defer resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(t, err)
	code := loc.Query().Get("code")
	require.NotEmpty(t, code)
	require.Equal(t, params.Get("state"), loc.Query().Get("state"))
	return code
}
