package http

import (
	"net/http"

	"github.com/mkrogh/boldklub/internal/config"
	"github.com/mkrogh/boldklub/internal/metrics"
	"github.com/mkrogh/boldklub/internal/strapi"
)

func NewServer(cfg config.Config, client strapi.Client, metricsSvc metrics.Metrics, metricsHandler http.Handler, factory ServiceFactory) *Server {
	server := &Server{
		Cfg:            cfg,
		Client:         client,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Factory:        factory,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future.
	// e.g. Chain(s.MyHandler(), requestMiddleware, rateLimitMiddleware)
	maxBody := s.Cfg.MaxUploadMB * 1024 * 1024
	std := []Middleware{requestMiddleware, bodyLimitMiddleware(maxBody)}

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), std...))

	s.Router.Handle("POST /api/auth/login", Chain(s.LoginHandler(), std...))
	s.Router.Handle("GET /api/auth/me", Chain(s.MeHandler(), std...))

	s.Router.Handle("GET /api/match-results", Chain(s.ListMatchResultsHandler(), std...))
	s.Router.Handle("GET /api/match-results/{id}", Chain(s.GetMatchResultHandler(), std...))
	s.Router.Handle("POST /api/match-results", Chain(s.CreateMatchResultHandler(), std...))
	s.Router.Handle("PUT /api/match-results/{id}", Chain(s.UpdateMatchResultHandler(), std...))
	s.Router.Handle("DELETE /api/match-results/{id}", Chain(s.DeleteMatchResultHandler(), std...))

	s.Router.Handle("GET /api/events", Chain(s.ListEventsHandler(), std...))
	s.Router.Handle("GET /api/events/{id}", Chain(s.GetEventHandler(), std...))
	s.Router.Handle("POST /api/events", Chain(s.CreateEventHandler(), std...))
	s.Router.Handle("PUT /api/events/{id}", Chain(s.UpdateEventHandler(), std...))
	s.Router.Handle("DELETE /api/events/{id}", Chain(s.DeleteEventHandler(), std...))

	s.Router.Handle("GET /api/tournaments", Chain(s.ListTournamentsHandler(), std...))
	s.Router.Handle("GET /api/tournaments/{id}", Chain(s.GetTournamentHandler(), std...))
	s.Router.Handle("POST /api/tournaments", Chain(s.CreateTournamentHandler(), std...))
	s.Router.Handle("PUT /api/tournaments/{id}", Chain(s.UpdateTournamentHandler(), std...))
	s.Router.Handle("DELETE /api/tournaments/{id}", Chain(s.DeleteTournamentHandler(), std...))
	s.Router.Handle("GET /api/tournaments/{id}/matches", Chain(s.ListTournamentMatchesHandler(), std...))

	s.Router.Handle("POST /api/tournament-matches", Chain(s.CreateTournamentMatchesHandler(), std...))
	s.Router.Handle("PUT /api/tournament-matches/{id}", Chain(s.UpdateTournamentMatchHandler(), std...))
	s.Router.Handle("DELETE /api/tournament-matches/{id}", Chain(s.DeleteTournamentMatchHandler(), std...))

	s.Router.Handle("GET /api/comments", Chain(s.ListCommentsHandler(), std...))
	s.Router.Handle("POST /api/comments", Chain(s.CreateCommentHandler(), std...))
	s.Router.Handle("PUT /api/comments/{id}", Chain(s.UpdateCommentHandler(), std...))
	s.Router.Handle("DELETE /api/comments/{id}", Chain(s.DeleteCommentHandler(), std...))
}

// services builds the per-entity service bundle for one request, binding the
// store client to the caller's bearer token when one is present.
func (s *Server) services(r *http.Request) *Services {
	client := s.Client
	if token := tokenFromContext(r); token != "" {
		client = client.WithToken(token)
	}
	return s.Factory(client)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
