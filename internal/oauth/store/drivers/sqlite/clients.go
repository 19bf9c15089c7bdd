package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/campusboard/campusboard/internal/oauth/domain"
	"github.com/campusboard/campusboard/internal/oauth/store"
)

type clientsRepo struct {
	db dbtx
}

const clientColumns = `id, name, description, redirect_uris, scopes, public, secret_hash, active, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }) (domain.Client, error) {
	var (
		c            domain.Client
		redirectURIs string
		scopes       string
		secretHash   sql.NullString
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &redirectURIs, &scopes,
		&c.Public, &secretHash, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	c.RedirectURIs = splitFields(redirectURIs)
	c.Scopes = splitFields(scopes)
	c.SecretHash = mapNullString(secretHash)
	return c, nil
}

func (r *clientsRepo) GetClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM oauth_clients WHERE id = ?`, id)
	return scanClient(row)
}

func (r *clientsRepo) GetActiveClientByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM oauth_clients WHERE id = ? AND active = 1`, id)
	return scanClient(row)
}

func (r *clientsRepo) ListClients(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM oauth_clients ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO oauth_clients (`+clientColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, joinFields(c.RedirectURIs), joinFields(c.Scopes),
		c.Public, mapStringNull(c.SecretHash), c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *clientsRepo) UpdateClient(ctx context.Context, c domain.Client) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE oauth_clients
		 SET name = ?, description = ?, redirect_uris = ?, scopes = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name, c.Description, joinFields(c.RedirectURIs), joinFields(c.Scopes),
		time.Now().UTC(), c.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *clientsRepo) UpdateClientSecretHash(ctx context.Context, clientID, secretHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE oauth_clients SET secret_hash = ?, updated_at = ? WHERE id = ?`,
		mapStringNull(secretHash), time.Now().UTC(), clientID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *clientsRepo) SetClientActive(ctx context.Context, clientID string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE oauth_clients SET active = ?, updated_at = ? WHERE id = ?`,
		active, time.Now().UTC(), clientID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow turns a zero-row UPDATE into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
