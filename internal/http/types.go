package http

import (
	"net/http"

	"github.com/mkrogh/boldklub/internal/config"
	"github.com/mkrogh/boldklub/internal/metrics"
	"github.com/mkrogh/boldklub/internal/service"
	"github.com/mkrogh/boldklub/internal/strapi"
)

// Services bundles the per-entity services for one request scope.
type Services struct {
	Auth         *service.AuthService
	MatchResults *service.MatchResultService
	Events       *service.EventService
	Tournaments  *service.TournamentService
	Comments     *service.CommentService
}

// ServiceFactory builds a Services bundle bound to one store client handle.
// The composition root supplies it so handlers can rebuild the bundle around
// a request-scoped token.
type ServiceFactory func(client strapi.Client) *Services

type Server struct {
	Cfg            config.Config
	Client         strapi.Client
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Factory        ServiceFactory
	Router         *http.ServeMux
}
