package service

import (
	"context"
	"testing"

	"github.com/campusboard/campusboard/internal/oauth/domain"
	"github.com/campusboard/campusboard/internal/oauth/store"
	"github.com/campusboard/campusboard/pkg/cryptox"
	"github.com/campusboard/campusboard/pkg/idx"
	"github.com/campusboard/campusboard/pkg/oauthsdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateConfidentialClient(t *testing.T) {
	env := newTestEnv(t)

	client, secret, err := env.clients.Create(context.Background(), oauthsdk.CreateClientRequest{
		Name:         "Course Planner",
		RedirectURIs: []string{testRedirectURI},
		Scopes:       []string{domain.ScopeProfile},
	})
	require.NoError(t, err)

	require.NotEmpty(t, secret)
	assert.Equal(t, cryptox.FingerprintToken(secret), client.SecretHash)
	assert.True(t, client.Active)
	assert.False(t, client.Public)
}

func TestCreatePublicClientHasNoSecret(t *testing.T) {
	env := newTestEnv(t)

	client, secret, err := env.clients.Create(context.Background(), oauthsdk.CreateClientRequest{
		Name:         "Mobile App",
		RedirectURIs: []string{testRedirectURI},
		Scopes:       []string{domain.ScopeProfile},
		Public:       true,
	})
	require.NoError(t, err)

	assert.Empty(t, secret)
	assert.Empty(t, client.SecretHash)
	assert.True(t, client.Public)
}

func TestCreateClientDefaultsScopes(t *testing.T) {
	env := newTestEnv(t)

	client, _, err := env.clients.Create(context.Background(), oauthsdk.CreateClientRequest{
		Name:         "Minimal",
		RedirectURIs: []string{testRedirectURI},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultScopes, client.Scopes)
}

func TestCreateClientValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := map[string]oauthsdk.CreateClientRequest{
		"missing name": {
			RedirectURIs: []string{testRedirectURI},
		},
		"no redirect uris": {
			Name: "x",
		},
		"relative redirect uri": {
			Name:         "x",
			RedirectURIs: []string{"/callback"},
		},
		"non-http scheme": {
			Name:         "x",
			RedirectURIs: []string{"myapp://callback"},
		},
		"fragment in redirect uri": {
			Name:         "x",
			RedirectURIs: []string{"https://a.example/cb#frag"},
		},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := env.clients.Create(context.Background(), req)

			var valErr *ValidationError
			assert.ErrorAs(t, err, &valErr)
		})
	}
}

func TestUpdateClientPartial(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.createClient(t, false)

	newName := "Renamed Planner"
	updated, err := env.clients.Update(context.Background(), client.ID, oauthsdk.UpdateClientRequest{
		Name: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, newName, updated.Name)
	// Untouched fields survive.
	assert.Equal(t, client.RedirectURIs, updated.RedirectURIs)
	assert.Equal(t, client.Scopes, updated.Scopes)
}

func TestUpdateClientRejectsEmptyScopes(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.createClient(t, false)

	empty := []string{}
	_, err := env.clients.Update(context.Background(), client.ID, oauthsdk.UpdateClientRequest{
		Scopes: &empty,
	})

	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestUpdateClientUnknown(t *testing.T) {
	env := newTestEnv(t)

	name := "ghost"
	_, err := env.clients.Update(context.Background(), idx.New().String(), oauthsdk.UpdateClientRequest{
		Name: &name,
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRotateSecretPublicClient(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.createClient(t, true)

	_, err := env.clients.RotateSecret(context.Background(), client.ID)

	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestDeactivateThenReactivate(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.createClient(t, false)
	ctx := context.Background()

	require.NoError(t, env.clients.SetActive(ctx, client.ID, false))
	got, err := env.clients.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	require.NoError(t, env.clients.SetActive(ctx, client.ID, true))
	got, err = env.clients.Get(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)
}

func TestClientInfoStripsSecret(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.createClient(t, false)

	info := ClientInfo(client)
	assert.Equal(t, client.ID, info.ID)
	assert.NotEmpty(t, info.CreatedAt)
	// ClientInfo has no secret field at all; spot-check the JSON shape stays
	// free of anything hash-shaped.
	assert.NotContains(t, []string{info.Name, info.Description}, client.SecretHash)
}
