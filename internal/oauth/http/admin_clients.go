package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campusboard/campusboard/internal/identity"
	"github.com/campusboard/campusboard/internal/oauth/service"
	"github.com/campusboard/campusboard/internal/oauth/store"
	"github.com/campusboard/campusboard/pkg/httpx"
	"github.com/campusboard/campusboard/pkg/oauthsdk"
	"github.com/campusboard/campusboard/pkg/slogx"
)

// AdminClientsHandler serves the /admin/oauth-clients CRUD surface. Every
// route requires an admin session from the identity provider.
type AdminClientsHandler struct {
	ClientService *service.ClientService
	Identity      identity.Provider
}

// requireAdmin wraps a handler with bearer-session admin authorization.
func (h *AdminClientsHandler) requireAdmin(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.Identity.ValidateSession(r.Context(), bearerToken(r))
		if err != nil {
			if errors.Is(err, identity.ErrUnauthenticated) {
				writeAdminError(w, http.StatusUnauthorized, "unauthorized", "a valid session is required")
				return
			}
			slogx.FromContext(r.Context()).Error("admin session validation failed", "error", err)
			writeAdminError(w, http.StatusInternalServerError, "server_error", "internal server error")
			return
		}
		if !sess.Admin {
			writeAdminError(w, http.StatusForbidden, "forbidden", "administrator access required")
			return
		}
		next(w, r)
	})
}

// HandleCreate godoc
//
//	@Summary		Register OAuth2 Client
//	@Description	Registers a third-party application. For confidential clients the
//	@Description	response carries the raw client secret; it is never shown again.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		oauthsdk.CreateClientRequest	true	"Client registration"
//	@Success		201		{object}	oauthsdk.CreateClientResponse	"client plus one-time client_secret"
//	@Failure		400		{object}	oauthsdk.ErrorResponse			"validation failure"
//	@Failure		401		{object}	oauthsdk.ErrorResponse			"missing session"
//	@Failure		403		{object}	oauthsdk.ErrorResponse			"not an administrator"
//	@Router			/admin/oauth-clients [post].
func (h *AdminClientsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req oauthsdk.CreateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	client, secret, err := h.ClientService.Create(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, oauthsdk.CreateClientResponse{
		Client:       service.ClientInfo(client),
		ClientSecret: secret,
	})
}

// HandleList godoc
//
//	@Summary	List OAuth2 Clients
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	oauthsdk.ListClientsResponse	"all clients, secrets stripped"
//	@Failure	401	{object}	oauthsdk.ErrorResponse			"missing session"
//	@Failure	403	{object}	oauthsdk.ErrorResponse			"not an administrator"
//	@Router		/admin/oauth-clients [get].
func (h *AdminClientsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	clients, err := h.ClientService.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	infos := make([]oauthsdk.ClientInfo, 0, len(clients))
	for _, c := range clients {
		infos = append(infos, service.ClientInfo(c))
	}
	httpx.WriteJSON(w, http.StatusOK, oauthsdk.ListClientsResponse{Clients: infos})
}

// HandleGet godoc
//
//	@Summary	Get OAuth2 Client
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string					true	"Client ID"
//	@Success	200	{object}	oauthsdk.ClientInfo		"client, secret stripped"
//	@Failure	404	{object}	oauthsdk.ErrorResponse	"unknown client"
//	@Router		/admin/oauth-clients/{id} [get].
func (h *AdminClientsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	client, err := h.ClientService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, service.ClientInfo(client))
}

// HandleUpdate godoc
//
//	@Summary		Update OAuth2 Client
//	@Description	Partial update; omitted fields keep their current value. Takes effect
//	@Description	on the very next authorization request.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Client ID"
//	@Param			request	body		oauthsdk.UpdateClientRequest	true	"Fields to change"
//	@Success		200		{object}	oauthsdk.ClientInfo				"updated client"
//	@Failure		400		{object}	oauthsdk.ErrorResponse			"validation failure"
//	@Failure		404		{object}	oauthsdk.ErrorResponse			"unknown client"
//	@Router			/admin/oauth-clients/{id} [patch].
func (h *AdminClientsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req oauthsdk.UpdateClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAdminError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
		return
	}

	client, err := h.ClientService.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, service.ClientInfo(client))
}

// HandleDeactivate godoc
//
//	@Summary		Deactivate OAuth2 Client
//	@Description	Soft delete. The client disappears from protocol endpoints immediately;
//	@Description	already-issued tokens ride out their own expiry.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"Client ID"
//	@Success		200	{object}	oauthsdk.ClientInfo		"deactivated client"
//	@Failure		404	{object}	oauthsdk.ErrorResponse	"unknown client"
//	@Router			/admin/oauth-clients/{id} [delete].
func (h *AdminClientsHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

// HandleActivate godoc
//
//	@Summary	Reactivate OAuth2 Client
//	@Tags		Admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string					true	"Client ID"
//	@Success	200	{object}	oauthsdk.ClientInfo		"reactivated client"
//	@Failure	404	{object}	oauthsdk.ErrorResponse	"unknown client"
//	@Router		/admin/oauth-clients/{id}/activate [post].
func (h *AdminClientsHandler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

func (h *AdminClientsHandler) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id := r.PathValue("id")
	if err := h.ClientService.SetActive(r.Context(), id, active); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	client, err := h.ClientService.Get(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, service.ClientInfo(client))
}

// HandleRotateSecret godoc
//
//	@Summary		Rotate Client Secret
//	@Description	Generates a new secret for a confidential client. The old secret stops
//	@Description	authenticating immediately; existing access tokens are untouched. The
//	@Description	response is the only time the new secret is disclosed.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string							true	"Client ID"
//	@Success		200	{object}	oauthsdk.RotateSecretResponse	"one-time client_secret"
//	@Failure		400	{object}	oauthsdk.ErrorResponse			"public client"
//	@Failure		404	{object}	oauthsdk.ErrorResponse			"unknown client"
//	@Router			/admin/oauth-clients/{id}/rotate-secret [post].
func (h *AdminClientsHandler) HandleRotateSecret(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	secret, err := h.ClientService.RotateSecret(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, oauthsdk.RotateSecretResponse{
		ClientID:     id,
		ClientSecret: secret,
	})
}

func (h *AdminClientsHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *service.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeAdminError(w, http.StatusNotFound, "not_found", "unknown client")
	case errors.As(err, &valErr):
		writeAdminError(w, http.StatusBadRequest, "invalid_request", valErr.Error())
	default:
		slogx.FromContext(r.Context()).Error("admin client operation failed", "error", err)
		writeAdminError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}

func writeAdminError(w http.ResponseWriter, status int, code, description string) {
	httpx.WriteJSON(w, status, oauthsdk.ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}
