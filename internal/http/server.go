package http

import (
	"net/http"

	"github.com/mauv0809/roster-sync/internal/history"
)

func NewServer(cache Cache, store history.Store, trigger Trigger, metricsHandler http.Handler) *Server {
	server := &Server{
		Cache:          cache,
		History:        store,
		Trigger:        trigger,
		MetricsHandler: metricsHandler,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/cache", Chain(s.ListCacheHandler(), paramsMiddleware))
	s.Router.Handle("/cache/invalidate", Chain(s.InvalidateCacheHandler(), paramsMiddleware, methodMiddleware(http.MethodPost)))
	s.Router.Handle("/runs", Chain(s.ListRunsHandler(), paramsMiddleware))
	s.Router.Handle("/sync", Chain(s.SyncHandler(), paramsMiddleware, methodMiddleware(http.MethodPost)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
