// Package metrics exposes Prometheus counters for the authorization flows.
// Each server instance carries its own registry so tests can build isolated
// instances without duplicate-registration panics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Grant failure reasons. Kept coarse on purpose; fine-grained reasons would
// mirror the anti-oracle conflation the protocol errors avoid leaking.
const (
	ReasonInvalidClient    = "invalid_client"
	ReasonInvalidGrant     = "invalid_grant"
	ReasonInvalidRequest   = "invalid_request"
	ReasonUnsupportedGrant = "unsupported_grant_type"
	ReasonServerError      = "server_error"
)

type Metrics struct {
	registry *prometheus.Registry

	AuthorizationCodesIssued prometheus.Counter
	AccessTokensIssued       prometheus.Counter
	GrantFailures            *prometheus.CounterVec
	RevocationRequests       prometheus.Counter
	ConsentDenied            prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		AuthorizationCodesIssued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "oauth",
			Name:      "authorization_codes_issued_total",
			Help:      "Authorization codes minted at consent approval.",
		}),
		AccessTokensIssued: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "oauth",
			Name:      "access_tokens_issued_total",
			Help:      "Access tokens minted by the token endpoint.",
		}),
		GrantFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "oauth",
			Name:      "grant_failures_total",
			Help:      "Token endpoint failures by protocol error code.",
		}, []string{"reason"}),
		RevocationRequests: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "oauth",
			Name:      "revocation_requests_total",
			Help:      "Revocation endpoint calls, successful by definition.",
		}),
		ConsentDenied: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "oauth",
			Name:      "consent_denied_total",
			Help:      "Authorization requests the end user denied.",
		}),
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
