package service

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/campusboard/campusboard/internal/oauth/domain"
	"github.com/campusboard/campusboard/internal/oauth/store"
	"github.com/campusboard/campusboard/pkg/cryptox"
	"github.com/campusboard/campusboard/pkg/idx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHousekeepingSweep(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.createClient(t, false)
	ctx := context.Background()
	now := time.Now().UTC()

	staleCode := cryptox.MustGenerateToken(cryptox.TokenSize256)
	require.NoError(t, env.store.AuthorizationCodes().CreateAuthorizationCode(ctx, domain.AuthorizationCode{
		ID:          idx.New().String(),
		CodeHash:    cryptox.FingerprintToken(staleCode),
		ClientID:    client.ID,
		UserID:      idx.New().String(),
		RedirectURI: testRedirectURI,
		Scopes:      []string{domain.ScopeProfile},
		ExpiresAt:   now.Add(-time.Hour),
		CreatedAt:   now.Add(-2 * time.Hour),
	}))

	staleToken := cryptox.MustGenerateToken(cryptox.TokenSize256)
	require.NoError(t, env.store.AccessTokens().CreateAccessToken(ctx, domain.AccessToken{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(staleToken),
		ClientID:  client.ID,
		UserID:    idx.New().String(),
		Scopes:    []string{domain.ScopeProfile},
		ExpiresAt: now.Add(-time.Hour),
		CreatedAt: now.Add(-2 * time.Hour),
	}))

	liveToken := cryptox.MustGenerateToken(cryptox.TokenSize256)
	require.NoError(t, env.store.AccessTokens().CreateAccessToken(ctx, domain.AccessToken{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(liveToken),
		ClientID:  client.ID,
		UserID:    idx.New().String(),
		Scopes:    []string{domain.ScopeProfile},
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}))

	h := NewHousekeeping(env.store, slog.Default(), time.Hour)
	h.sweep()

	_, err := env.store.AuthorizationCodes().ConsumeAuthorizationCode(ctx, cryptox.FingerprintToken(staleCode), now)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = env.store.AccessTokens().GetAccessTokenByHash(ctx, cryptox.FingerprintToken(staleToken))
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = env.store.AccessTokens().GetAccessTokenByHash(ctx, cryptox.FingerprintToken(liveToken))
	assert.NoError(t, err)
}

func TestHousekeepingStartStop(t *testing.T) {
	env := newTestEnv(t)

	h := NewHousekeeping(env.store, slog.Default(), 10*time.Millisecond)
	h.Start()
	time.Sleep(30 * time.Millisecond)
	h.Stop()
	// Stop blocks until the loop exits; reaching here is the assertion.
}
