package service

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/campusboard/campusboard/internal/metrics"
	"github.com/campusboard/campusboard/internal/oauth/domain"
	"github.com/campusboard/campusboard/internal/oauth/store"
	"github.com/campusboard/campusboard/internal/oauth/store/drivers/sqlite"
	"github.com/campusboard/campusboard/pkg/idx"
	"github.com/campusboard/campusboard/pkg/oauthsdk"

	"github.com/stretchr/testify/require"
)

const testRedirectURI = "https://planner.example/callback"

type testEnv struct {
	store     store.Store
	authorize *AuthorizeService
	token     *TokenService
	clients   *ClientService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	m := metrics.New()
	return &testEnv{
		store:     st,
		authorize: NewAuthorizeService(st, m, 10*time.Minute),
		token:     NewTokenService(st, m, time.Hour),
		clients:   NewClientService(st),
	}
}

func (e *testEnv) createClient(t *testing.T, public bool) (domain.Client, string) {
	t.Helper()

	client, secret, err := e.clients.Create(context.Background(), oauthsdk.CreateClientRequest{
		Name:         "Course Planner",
		Description:  "Semester planning helper",
		RedirectURIs: []string{testRedirectURI},
		Scopes:       []string{domain.ScopeProfile, domain.ScopeEmail},
		Public:       public,
	})
	require.NoError(t, err)
	return client, secret
}

func (e *testEnv) createUser(t *testing.T) domain.User {
	t.Helper()

	now := time.Now().UTC()
	u := domain.User{
		ID:             idx.New().String(),
		Username:       "jsmith",
		DisplayName:    "Jordan Smith",
		Email:          "jsmith@campus.example",
		GraduationYear: 2027,
		Major:          "Computer Science",
		Bio:            "Coffee-powered.",
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, e.store.Users().CreateUser(context.Background(), u))
	return u
}

// approveCode runs validate+approve and extracts the raw code from the
// success redirect.
func (e *testEnv) approveCode(t *testing.T, req AuthorizeRequest, userID string) string {
	t.Helper()

	prompt, err := e.authorize.ValidateRequest(context.Background(), req)
	require.NoError(t, err)

	redirect, err := e.authorize.Approve(context.Background(), prompt, userID)
	require.NoError(t, err)

	u, err := url.Parse(redirect)
	require.NoError(t, err)
	code := u.Query().Get("code")
	require.NotEmpty(t, code)
	return code
}
