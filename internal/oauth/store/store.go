package store

import (
	"context"
	"errors"
	"time"

	"github.com/campusboard/campusboard/internal/oauth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. It exposes sub-repositories to keep concerns tidy
// and testable.
type Store interface {
	Clients() Clients
	Users() Users
	AuthorizationCodes() AuthorizationCodes
	AccessTokens() AccessTokens

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Clients interface {
	// GetClientByID fetches a client regardless of its active flag.
	GetClientByID(ctx context.Context, id string) (domain.Client, error)

	// GetActiveClientByID fetches a client only if it is active. Inactive
	// clients behave as not found for the protocol endpoints.
	GetActiveClientByID(ctx context.Context, id string) (domain.Client, error)

	// ListClients returns all clients ordered by creation date (newest first).
	ListClients(ctx context.Context) ([]domain.Client, error)

	// CreateClient inserts a new client (id is a ULID; secret_hash is empty
	// for public clients).
	CreateClient(ctx context.Context, c domain.Client) error

	// UpdateClient overwrites the mutable configuration fields (name,
	// description, redirect URIs, scopes) and bumps updated_at.
	UpdateClient(ctx context.Context, c domain.Client) error

	// UpdateClientSecretHash replaces the stored secret fingerprint. Old
	// access tokens stay valid; only future authentications are affected.
	UpdateClientSecretHash(ctx context.Context, clientID, secretHash string) error

	// SetClientActive flips the soft-delete flag.
	SetClientActive(ctx context.Context, clientID string, active bool) error
}

type Users interface {
	// GetUserByID returns a profile row for the userinfo endpoint.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// CreateUser inserts a profile row. The host application owns user
	// provisioning; this exists for seeding and tests.
	CreateUser(ctx context.Context, u domain.User) error

	// DeleteUser removes a profile row.
	DeleteUser(ctx context.Context, id string) error
}

type AuthorizationCodes interface {
	// CreateAuthorizationCode stores a freshly minted code record.
	CreateAuthorizationCode(ctx context.Context, code domain.AuthorizationCode) error

	// ConsumeAuthorizationCode atomically claims the code identified by its
	// fingerprint: it sets used_at = now only where used_at is still null,
	// and returns the claimed row. Under concurrent replay exactly one
	// caller gets the row; everyone else gets ErrNotFound. Expiry is NOT
	// checked here, deliberately: the caller rejects expired rows after the
	// claim so that even a near-expiry code is claimed at most once.
	ConsumeAuthorizationCode(ctx context.Context, codeHash string, now time.Time) (domain.AuthorizationCode, error)

	// DeleteExpiredAuthorizationCodes is housekeeping, not correctness.
	DeleteExpiredAuthorizationCodes(ctx context.Context) error
}

type AccessTokens interface {
	// CreateAccessToken stores a freshly minted token record.
	CreateAccessToken(ctx context.Context, t domain.AccessToken) error

	// GetAccessTokenByHash fetches a token by its fingerprint.
	GetAccessTokenByHash(ctx context.Context, hash string) (domain.AccessToken, error)

	// RevokeAccessToken sets revoked_at = now where it is still null.
	// Idempotent: revoking an unknown or already-revoked token is not an
	// error (RFC 7009 forbids leaking token existence).
	RevokeAccessToken(ctx context.Context, hash string, now time.Time) error

	// DeleteExpiredAccessTokens is housekeeping, not correctness.
	DeleteExpiredAccessTokens(ctx context.Context) error
}
