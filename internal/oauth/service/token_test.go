package service

import (
	"context"
	"testing"
	"time"

	"github.com/campusboard/campusboard/internal/oauth/domain"
	"github.com/campusboard/campusboard/pkg/cryptox"
	"github.com/campusboard/campusboard/pkg/idx"
	"github.com/campusboard/campusboard/pkg/oauthsdk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confidentialTokenRequest(clientID, secret, code string) TokenRequest {
	return TokenRequest{
		GrantType:    "authorization_code",
		Code:         code,
		RedirectURI:  testRedirectURI,
		ClientID:     clientID,
		ClientSecret: secret,
	}
}

func assertOAuthError(t *testing.T, err error, code string) {
	t.Helper()

	var oauthErr *oauthsdk.OAuth2Error
	require.ErrorAs(t, err, &oauthErr)
	assert.Equal(t, code, oauthErr.Code)
}

func TestExchangeConfidentialHappyPath(t *testing.T) {
	env := newTestEnv(t)
	client, secret := env.createClient(t, false)
	user := env.createUser(t)

	req := baseAuthorizeRequest(client.ID)
	req.Scope = "profile email"
	code := env.approveCode(t, req, user.ID)

	resp, err := env.token.Exchange(context.Background(),
		confidentialTokenRequest(client.ID, secret, code))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "profile email", resp.Scope)
}

func TestExchangeReplayBurnsCode(t *testing.T) {
	env := newTestEnv(t)
	client, secret := env.createClient(t, false)
	user := env.createUser(t)

	code := env.approveCode(t, baseAuthorizeRequest(client.ID), user.ID)

	_, err := env.token.Exchange(context.Background(),
		confidentialTokenRequest(client.ID, secret, code))
	require.NoError(t, err)

	_, err = env.token.Exchange(context.Background(),
		confidentialTokenRequest(client.ID, secret, code))
	assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidGrant)
}

func TestExchangeRejectsUnsupportedGrantType(t *testing.T) {
	env := newTestEnv(t)
	client, secret := env.createClient(t, false)

	req := confidentialTokenRequest(client.ID, secret, "whatever")
	req.GrantType = "client_credentials"

	_, err := env.token.Exchange(context.Background(), req)
	assertOAuthError(t, err, oauthsdk.ErrorCodeUnsupportedGrantType)
}

func TestExchangeMissingParams(t *testing.T) {
	env := newTestEnv(t)
	client, secret := env.createClient(t, false)

	for name, mutate := range map[string]func(*TokenRequest){
		"no code":         func(r *TokenRequest) { r.Code = "" },
		"no client_id":    func(r *TokenRequest) { r.ClientID = "" },
		"no redirect_uri": func(r *TokenRequest) { r.RedirectURI = "" },
	} {
		t.Run(name, func(t *testing.T) {
			req := confidentialTokenRequest(client.ID, secret, "some-code")
			mutate(&req)

			_, err := env.token.Exchange(context.Background(), req)
			assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidRequest)
		})
	}
}

func TestExchangeClientAuthentication(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.createClient(t, false)
	user := env.createUser(t)

	code := env.approveCode(t, baseAuthorizeRequest(client.ID), user.ID)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := env.token.Exchange(context.Background(),
			confidentialTokenRequest(client.ID, "not-the-secret", code))
		assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidClient)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := env.token.Exchange(context.Background(),
			confidentialTokenRequest(client.ID, "", code))
		assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidClient)
	})

	t.Run("unknown client", func(t *testing.T) {
		_, err := env.token.Exchange(context.Background(),
			confidentialTokenRequest(idx.New().String(), "whatever", code))
		assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidClient)
	})
}

func TestExchangeBindingMismatchBurnsCode(t *testing.T) {
	env := newTestEnv(t)
	client, secret := env.createClient(t, false)
	user := env.createUser(t)

	code := env.approveCode(t, baseAuthorizeRequest(client.ID), user.ID)

	// Wrong redirect URI: invalid_grant, and the code is consumed anyway.
	req := confidentialTokenRequest(client.ID, secret, code)
	req.RedirectURI = "https://planner.example/other"
	_, err := env.token.Exchange(context.Background(), req)
	assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidGrant)

	// Retrying with the correct URI no longer works: no probing.
	_, err = env.token.Exchange(context.Background(),
		confidentialTokenRequest(client.ID, secret, code))
	assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidGrant)
}

func TestExchangeCrossClientCode(t *testing.T) {
	env := newTestEnv(t)
	owner, _ := env.createClient(t, false)
	user := env.createUser(t)

	other, otherSecret, err := env.clients.Create(context.Background(), oauthsdk.CreateClientRequest{
		Name:         "Other App",
		RedirectURIs: []string{testRedirectURI},
		Scopes:       []string{domain.ScopeProfile},
	})
	require.NoError(t, err)

	code := env.approveCode(t, baseAuthorizeRequest(owner.ID), user.ID)

	_, err = env.token.Exchange(context.Background(),
		confidentialTokenRequest(other.ID, otherSecret, code))
	assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidGrant)
}

func TestExchangeExpiredCode(t *testing.T) {
	env := newTestEnv(t)
	client, secret := env.createClient(t, false)
	user := env.createUser(t)

	raw := cryptox.MustGenerateToken(cryptox.TokenSize256)
	now := time.Now().UTC()
	require.NoError(t, env.store.AuthorizationCodes().CreateAuthorizationCode(
		context.Background(), domain.AuthorizationCode{
			ID:          idx.New().String(),
			CodeHash:    cryptox.FingerprintToken(raw),
			ClientID:    client.ID,
			UserID:      user.ID,
			RedirectURI: testRedirectURI,
			Scopes:      []string{domain.ScopeProfile},
			ExpiresAt:   now.Add(-time.Second),
			CreatedAt:   now.Add(-11 * time.Minute),
		}))

	_, err := env.token.Exchange(context.Background(),
		confidentialTokenRequest(client.ID, secret, raw))
	assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidGrant)
}

func TestExchangePKCE(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.createClient(t, true)
	user := env.createUser(t)

	verifier := "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"

	newCode := func(t *testing.T) string {
		req := baseAuthorizeRequest(client.ID)
		req.CodeChallenge = cryptox.ChallengeS256(verifier)
		req.CodeChallengeMethod = cryptox.PKCEMethodS256
		return env.approveCode(t, req, user.ID)
	}

	t.Run("correct verifier succeeds once", func(t *testing.T) {
		code := newCode(t)
		req := TokenRequest{
			GrantType:    "authorization_code",
			Code:         code,
			RedirectURI:  testRedirectURI,
			ClientID:     client.ID,
			CodeVerifier: verifier,
		}

		resp, err := env.token.Exchange(context.Background(), req)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)

		_, err = env.token.Exchange(context.Background(), req)
		assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidGrant)
	})

	t.Run("wrong verifier", func(t *testing.T) {
		code := newCode(t)
		_, err := env.token.Exchange(context.Background(), TokenRequest{
			GrantType:    "authorization_code",
			Code:         code,
			RedirectURI:  testRedirectURI,
			ClientID:     client.ID,
			CodeVerifier: "completely-wrong-verifier-but-long-enough-anyway",
		})
		assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidGrant)
	})

	t.Run("missing verifier", func(t *testing.T) {
		code := newCode(t)
		_, err := env.token.Exchange(context.Background(), TokenRequest{
			GrantType:   "authorization_code",
			Code:        code,
			RedirectURI: testRedirectURI,
			ClientID:    client.ID,
		})
		assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidGrant)
	})
}

func TestExchangeVerifierWithoutChallenge(t *testing.T) {
	env := newTestEnv(t)
	client, secret := env.createClient(t, false)
	user := env.createUser(t)

	code := env.approveCode(t, baseAuthorizeRequest(client.ID), user.ID)

	req := confidentialTokenRequest(client.ID, secret, code)
	req.CodeVerifier = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"

	_, err := env.token.Exchange(context.Background(), req)
	assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidGrant)
}

func TestSecretRotationDoesNotCascade(t *testing.T) {
	env := newTestEnv(t)
	client, oldSecret := env.createClient(t, false)
	user := env.createUser(t)

	code := env.approveCode(t, baseAuthorizeRequest(client.ID), user.ID)
	resp, err := env.token.Exchange(context.Background(),
		confidentialTokenRequest(client.ID, oldSecret, code))
	require.NoError(t, err)

	newSecret, err := env.clients.RotateSecret(context.Background(), client.ID)
	require.NoError(t, err)
	require.NotEqual(t, oldSecret, newSecret)

	// The already-issued token survives rotation.
	info, err := env.token.UserInfo(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, info.Sub)

	// The old secret no longer authenticates; the new one does.
	code2 := env.approveCode(t, baseAuthorizeRequest(client.ID), user.ID)
	_, err = env.token.Exchange(context.Background(),
		confidentialTokenRequest(client.ID, oldSecret, code2))
	assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidClient)

	code3 := env.approveCode(t, baseAuthorizeRequest(client.ID), user.ID)
	_, err = env.token.Exchange(context.Background(),
		confidentialTokenRequest(client.ID, newSecret, code3))
	assert.NoError(t, err)
}

func TestUserInfoScopeFiltering(t *testing.T) {
	env := newTestEnv(t)
	client, secret := env.createClient(t, false)
	user := env.createUser(t)

	issueWithScope := func(t *testing.T, scope string) string {
		req := baseAuthorizeRequest(client.ID)
		req.Scope = scope
		code := env.approveCode(t, req, user.ID)
		resp, err := env.token.Exchange(context.Background(),
			confidentialTokenRequest(client.ID, secret, code))
		require.NoError(t, err)
		return resp.AccessToken
	}

	t.Run("profile only", func(t *testing.T) {
		info, err := env.token.UserInfo(context.Background(), issueWithScope(t, "profile"))
		require.NoError(t, err)
		assert.Equal(t, user.ID, info.Sub)
		assert.Equal(t, "jsmith", info.Username)
		assert.Equal(t, 2027, info.GraduationYear)
		assert.Empty(t, info.Email)
	})

	t.Run("email only", func(t *testing.T) {
		info, err := env.token.UserInfo(context.Background(), issueWithScope(t, "email"))
		require.NoError(t, err)
		assert.Equal(t, user.ID, info.Sub)
		assert.Equal(t, "jsmith@campus.example", info.Email)
		assert.Empty(t, info.Username)
	})

	t.Run("profile and email", func(t *testing.T) {
		info, err := env.token.UserInfo(context.Background(), issueWithScope(t, "profile email"))
		require.NoError(t, err)
		assert.Equal(t, "jsmith", info.Username)
		assert.Equal(t, "jsmith@campus.example", info.Email)
	})
}

func TestUserInfoRejects(t *testing.T) {
	env := newTestEnv(t)
	client, secret := env.createClient(t, false)
	user := env.createUser(t)

	code := env.approveCode(t, baseAuthorizeRequest(client.ID), user.ID)
	resp, err := env.token.Exchange(context.Background(),
		confidentialTokenRequest(client.ID, secret, code))
	require.NoError(t, err)

	t.Run("empty token", func(t *testing.T) {
		_, err := env.token.UserInfo(context.Background(), "")
		assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidToken)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := env.token.UserInfo(context.Background(), cryptox.MustGenerateToken(cryptox.TokenSize256))
		assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidToken)
	})

	t.Run("revoked token", func(t *testing.T) {
		require.NoError(t, env.token.Revoke(context.Background(), resp.AccessToken))
		_, err := env.token.UserInfo(context.Background(), resp.AccessToken)
		assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidToken)
	})
}

func TestUserInfoExpiredTokenBoundary(t *testing.T) {
	env := newTestEnv(t)
	client, _ := env.createClient(t, false)
	user := env.createUser(t)

	// expires_at == now is already invalid; only strictly-future expiries pass.
	now := time.Now().UTC()
	raw := cryptox.MustGenerateToken(cryptox.TokenSize256)
	require.NoError(t, env.store.AccessTokens().CreateAccessToken(context.Background(), domain.AccessToken{
		ID:        idx.New().String(),
		TokenHash: cryptox.FingerprintToken(raw),
		ClientID:  client.ID,
		UserID:    user.ID,
		Scopes:    []string{domain.ScopeProfile},
		ExpiresAt: now.Add(-time.Millisecond),
		CreatedAt: now.Add(-time.Hour),
	}))

	_, err := env.token.UserInfo(context.Background(), raw)
	assertOAuthError(t, err, oauthsdk.ErrorCodeInvalidToken)
}

func TestUserInfoUserGone(t *testing.T) {
	env := newTestEnv(t)
	client, secret := env.createClient(t, false)
	user := env.createUser(t)

	code := env.approveCode(t, baseAuthorizeRequest(client.ID), user.ID)
	resp, err := env.token.Exchange(context.Background(),
		confidentialTokenRequest(client.ID, secret, code))
	require.NoError(t, err)

	require.NoError(t, env.store.Users().DeleteUser(context.Background(), user.ID))

	_, err = env.token.UserInfo(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, ErrUserGone)
}

func TestRevokeIsQuiet(t *testing.T) {
	env := newTestEnv(t)

	// Unknown, empty and repeated revocations all succeed.
	assert.NoError(t, env.token.Revoke(context.Background(), "no-such-token"))
	assert.NoError(t, env.token.Revoke(context.Background(), ""))
	assert.NoError(t, env.token.Revoke(context.Background(), "no-such-token"))
}
