package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/campusboard/campusboard/internal/oauth/domain"
	"github.com/campusboard/campusboard/internal/oauth/store"
)

type authorizationCodesRepo struct {
	db dbtx
}

func (r *authorizationCodesRepo) CreateAuthorizationCode(ctx context.Context, code domain.AuthorizationCode) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO authorization_codes
		 (id, code_hash, client_id, user_id, redirect_uri, scopes, code_challenge, code_challenge_method, expires_at, used_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?)`,
		code.ID, code.CodeHash, code.ClientID, code.UserID, code.RedirectURI,
		joinFields(code.Scopes), code.CodeChallenge, code.CodeChallengeMethod,
		code.ExpiresAt, code.CreatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

// ConsumeAuthorizationCode claims the code in a single conditional UPDATE.
// SQLite serializes writers, so at most one concurrent caller flips used_at
// from NULL; everyone else sees zero rows affected and gets ErrNotFound.
// The follow-up SELECT only runs for the winner, which is the only caller
// holding the claim, so it needs no transaction.
func (r *authorizationCodesRepo) ConsumeAuthorizationCode(ctx context.Context, codeHash string, now time.Time) (domain.AuthorizationCode, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE authorization_codes SET used_at = ? WHERE code_hash = ? AND used_at IS NULL`,
		now, codeHash,
	)
	if err != nil {
		return domain.AuthorizationCode{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.AuthorizationCode{}, err
	}
	if n == 0 {
		return domain.AuthorizationCode{}, store.ErrNotFound
	}

	var (
		code   domain.AuthorizationCode
		scopes string
		usedAt sql.NullTime
	)
	err = r.db.QueryRowContext(ctx,
		`SELECT id, code_hash, client_id, user_id, redirect_uri, scopes, code_challenge, code_challenge_method, expires_at, used_at, created_at
		 FROM authorization_codes WHERE code_hash = ?`, codeHash).
		Scan(&code.ID, &code.CodeHash, &code.ClientID, &code.UserID, &code.RedirectURI,
			&scopes, &code.CodeChallenge, &code.CodeChallengeMethod,
			&code.ExpiresAt, &usedAt, &code.CreatedAt)
	if err != nil {
		return domain.AuthorizationCode{}, mapNotFound(err)
	}
	code.Scopes = splitFields(scopes)
	code.UsedAt = mapNullTimePtr(usedAt)
	return code, nil
}

func (r *authorizationCodesRepo) DeleteExpiredAuthorizationCodes(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM authorization_codes WHERE expires_at < ?`, time.Now().UTC())
	return err
}
