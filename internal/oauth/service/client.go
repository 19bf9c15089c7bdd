package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/campusboard/campusboard/internal/oauth/domain"
	"github.com/campusboard/campusboard/internal/oauth/store"
	"github.com/campusboard/campusboard/pkg/cryptox"
	"github.com/campusboard/campusboard/pkg/idx"
	"github.com/campusboard/campusboard/pkg/oauthsdk"
)

// ClientService implements the admin-facing client registry: registration,
// configuration updates, soft deletion and secret rotation.
type ClientService struct {
	store store.Store
}

func NewClientService(st store.Store) *ClientService {
	return &ClientService{store: st}
}

// Create registers a client. For confidential clients the returned secret
// is the only time the raw value ever leaves the server.
func (s *ClientService) Create(ctx context.Context, req oauthsdk.CreateClientRequest) (domain.Client, string, error) {
	if err := validateClientConfig(req.Name, req.RedirectURIs); err != nil {
		return domain.Client{}, "", err
	}

	scopes := req.Scopes
	if len(scopes) == 0 {
		scopes = domain.DefaultScopes
	}

	now := time.Now().UTC()
	client := domain.Client{
		ID:           idx.New().String(),
		Name:         req.Name,
		Description:  req.Description,
		RedirectURIs: req.RedirectURIs,
		Scopes:       scopes,
		Public:       req.Public,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var secret string
	if !req.Public {
		var err error
		secret, err = cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return domain.Client{}, "", fmt.Errorf("generate client secret: %w", err)
		}
		client.SecretHash = cryptox.FingerprintToken(secret)
	}

	if err := s.store.Clients().CreateClient(ctx, client); err != nil {
		return domain.Client{}, "", fmt.Errorf("persist client: %w", err)
	}
	return client, secret, nil
}

// Get returns a client regardless of its active flag.
func (s *ClientService) Get(ctx context.Context, id string) (domain.Client, error) {
	return s.store.Clients().GetClientByID(ctx, id)
}

// List returns all registered clients, newest first.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	return s.store.Clients().ListClients(ctx)
}

// Update applies a partial configuration change. Nil fields keep their
// current value; the merged result is validated as a whole.
func (s *ClientService) Update(ctx context.Context, id string, req oauthsdk.UpdateClientRequest) (domain.Client, error) {
	client, err := s.store.Clients().GetClientByID(ctx, id)
	if err != nil {
		return domain.Client{}, err
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Description != nil {
		client.Description = *req.Description
	}
	if req.RedirectURIs != nil {
		client.RedirectURIs = *req.RedirectURIs
	}
	if req.Scopes != nil {
		client.Scopes = *req.Scopes
	}
	if len(client.Scopes) == 0 {
		return domain.Client{}, &ValidationError{Field: "scopes", Message: "must not be empty"}
	}
	if err := validateClientConfig(client.Name, client.RedirectURIs); err != nil {
		return domain.Client{}, err
	}

	if err := s.store.Clients().UpdateClient(ctx, client); err != nil {
		return domain.Client{}, err
	}
	return s.store.Clients().GetClientByID(ctx, id)
}

// SetActive flips the soft-delete flag. Deactivation takes effect on the
// very next authorization request; already-issued tokens ride out their
// own expiry.
func (s *ClientService) SetActive(ctx context.Context, id string, active bool) error {
	return s.store.Clients().SetClientActive(ctx, id, active)
}

// RotateSecret replaces a confidential client's secret. Old access tokens
// stay valid; only future token-endpoint authentications change.
func (s *ClientService) RotateSecret(ctx context.Context, id string) (string, error) {
	client, err := s.store.Clients().GetClientByID(ctx, id)
	if err != nil {
		return "", err
	}
	if client.Public {
		return "", &ValidationError{Field: "public", Message: "public clients have no secret to rotate"}
	}

	secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", fmt.Errorf("generate client secret: %w", err)
	}
	if err := s.store.Clients().UpdateClientSecretHash(ctx, id, cryptox.FingerprintToken(secret)); err != nil {
		return "", err
	}
	return secret, nil
}

func validateClientConfig(name string, redirectURIs []string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if len(redirectURIs) == 0 {
		return &ValidationError{Field: "redirect_uris", Message: "at least one is required"}
	}
	for _, uri := range redirectURIs {
		u, err := url.Parse(uri)
		if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
			return &ValidationError{Field: "redirect_uris", Message: fmt.Sprintf("%q is not an absolute http(s) URI", uri)}
		}
		if u.Fragment != "" {
			return &ValidationError{Field: "redirect_uris", Message: fmt.Sprintf("%q must not carry a fragment", uri)}
		}
	}
	return nil
}

// ClientInfo converts a domain client to its admin-facing view. The secret
// hash never leaves the server in any form.
func ClientInfo(c domain.Client) oauthsdk.ClientInfo {
	return oauthsdk.ClientInfo{
		ID:           c.ID,
		Name:         c.Name,
		Description:  c.Description,
		RedirectURIs: c.RedirectURIs,
		Scopes:       c.Scopes,
		Public:       c.Public,
		Active:       c.Active,
		CreatedAt:    c.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
