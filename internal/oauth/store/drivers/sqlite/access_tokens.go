package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/campusboard/campusboard/internal/oauth/domain"
	"github.com/campusboard/campusboard/internal/oauth/store"
)

type accessTokensRepo struct {
	db dbtx
}

func (r *accessTokensRepo) CreateAccessToken(ctx context.Context, t domain.AccessToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO access_tokens (id, token_hash, client_id, user_id, scopes, expires_at, revoked_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULL, ?)`,
		t.ID, t.TokenHash, t.ClientID, t.UserID, joinFields(t.Scopes),
		t.ExpiresAt, t.CreatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *accessTokensRepo) GetAccessTokenByHash(ctx context.Context, hash string) (domain.AccessToken, error) {
	var (
		t         domain.AccessToken
		scopes    string
		revokedAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, token_hash, client_id, user_id, scopes, expires_at, revoked_at, created_at
		 FROM access_tokens WHERE token_hash = ?`, hash).
		Scan(&t.ID, &t.TokenHash, &t.ClientID, &t.UserID, &scopes,
			&t.ExpiresAt, &revokedAt, &t.CreatedAt)
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}
	t.Scopes = splitFields(scopes)
	t.RevokedAt = mapNullTimePtr(revokedAt)
	return t, nil
}

// RevokeAccessToken is deliberately quiet about misses: revoking a token
// that does not exist or is already revoked succeeds without touching rows.
func (r *accessTokensRepo) RevokeAccessToken(ctx context.Context, hash string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE access_tokens SET revoked_at = ? WHERE token_hash = ? AND revoked_at IS NULL`,
		now, hash,
	)
	return err
}

func (r *accessTokensRepo) DeleteExpiredAccessTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM access_tokens WHERE expires_at < ?`, time.Now().UTC())
	return err
}
