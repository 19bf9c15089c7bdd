package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteProvider validates session credentials against the host
// application's introspection endpoint. Used when the authorization server
// runs as a separate process.
type RemoteProvider struct {
	baseURL string
	client  *http.Client
}

// NewRemoteProvider builds a provider that calls the host's
// GET /internal/session endpoint with the credential as a bearer token.
func NewRemoteProvider(baseURL string, client *http.Client) *RemoteProvider {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &RemoteProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

type remoteSessionResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Admin  bool   `json:"admin"`
}

func (p *RemoteProvider) ValidateSession(ctx context.Context, credential string) (Session, error) {
	if credential == "" {
		return Session{}, ErrUnauthenticated
	}

	endpoint, err := url.JoinPath(p.baseURL, "/internal/session")
	if err != nil {
		return Session{}, fmt.Errorf("build session url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Session{}, fmt.Errorf("build session request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := p.client.Do(req)
	if err != nil {
		return Session{}, fmt.Errorf("session lookup: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fallthrough to decode
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return Session{}, ErrUnauthenticated
	default:
		return Session{}, fmt.Errorf("session lookup: unexpected status %d", resp.StatusCode)
	}

	var body remoteSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Session{}, fmt.Errorf("decode session response: %w", err)
	}
	if body.UserID == "" {
		return Session{}, ErrUnauthenticated
	}

	return Session{UserID: body.UserID, Email: body.Email, Admin: body.Admin}, nil
}
