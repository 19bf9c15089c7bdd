package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/campusboard/campusboard/internal/identity"
	"github.com/campusboard/campusboard/internal/metrics"
	"github.com/campusboard/campusboard/internal/oauth/service"
	"github.com/campusboard/campusboard/internal/oauth/store"
	"github.com/campusboard/campusboard/pkg/httpx"
	"github.com/campusboard/campusboard/pkg/slogx"

	_ "github.com/campusboard/campusboard/api/oauth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	loginURL     string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	identity identity.Provider
	metrics  *metrics.Metrics

	AuthorizeService *service.AuthorizeService
	TokenService     *service.TokenService
	ClientService    *service.ClientService
}

func NewRouter(
	st store.Store,
	provider identity.Provider,
	m *metrics.Metrics,
	loginURL, buildVersion string,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		loginURL:     loginURL,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		identity:     provider,
		metrics:      m,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerOAuth2()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CampusBoard OAuth2 Authorization Server API
//	@version		0.1.0
//	@description	OAuth2 authorization server for the CampusBoard course-review platform.
//	@description
//	@description				Implements the Authorization Code grant with optional PKCE (S256) for
//	@description				third-party applications. Access tokens are opaque bearer tokens.
//
//	@contact.name				CampusBoard Team
//	@contact.url				https://github.com/campusboard/campusboard
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerOAuth2() {
	authorizeHandler := &AuthorizeHandler{
		AuthorizeService: r.AuthorizeService,
		Identity:         r.identity,
		LoginURL:         r.loginURL,
		Logger:           r.logger,
	}

	// GET /authorize - lenient rate limit (mostly just displays forms)
	r.Mux.Handle("GET /oauth/authorize",
		httpx.Chain(http.HandlerFunc(authorizeHandler.HandleGet),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// POST /authorize/confirm - moderate limit keyed by IP + client to slow
	// scripted consent replays without locking out shared campus NATs
	r.Mux.Handle("POST /oauth/authorize/confirm",
		httpx.Chain(http.HandlerFunc(authorizeHandler.HandleConfirm),
			httpx.RateLimitByIPAndFormField(httpx.ModerateLimit, "client_id"),
		),
	)

	// POST /token - strict rate limit by IP (credential-bearing endpoint)
	tokenHandler := &TokenHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /oauth/token",
		httpx.Chain(tokenHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	userInfoHandler := &UserInfoHandler{TokenService: r.TokenService}
	r.Mux.Handle("GET /oauth/userinfo",
		httpx.Chain(userInfoHandler,
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	revokeHandler := &RevokeHandler{TokenService: r.TokenService}
	r.Mux.Handle("POST /oauth/revoke",
		httpx.Chain(revokeHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminClientsHandler{
		ClientService: r.ClientService,
		Identity:      r.identity,
	}

	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(h.requireAdmin(fn),
			httpx.RateLimitByIP(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /admin/oauth-clients", secured(h.HandleCreate))
	r.Mux.Handle("GET /admin/oauth-clients", secured(h.HandleList))
	r.Mux.Handle("GET /admin/oauth-clients/{id}", secured(h.HandleGet))
	r.Mux.Handle("PATCH /admin/oauth-clients/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /admin/oauth-clients/{id}", secured(h.HandleDeactivate))
	r.Mux.Handle("POST /admin/oauth-clients/{id}/activate", secured(h.HandleActivate))
	r.Mux.Handle("POST /admin/oauth-clients/{id}/rotate-secret", secured(h.HandleRotateSecret))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
