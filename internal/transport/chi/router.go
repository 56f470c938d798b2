package chi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/recipedex/internal/metrics"
)

// NewRouter wires the middleware chain and the routes of s.
func NewRouter(s *Server, apiKeys []string, logger *zap.Logger) http.Handler {
	imagesPath := "/" + s.opts.ImagePrefix

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(BearerAuthMiddleware(apiKeys, imagesPath+"/"))
	r.Use(metrics.Middleware())

	r.Get("/", s.Home)
	r.Post("/search", s.Search)
	r.Get(imagesPath+"/{filename}", s.Image)
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	return r
}
