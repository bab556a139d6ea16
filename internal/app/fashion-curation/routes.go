// Package fashioncuration предоставляет маршруты и сборку основного приложения.
package fashioncuration

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/fashion-curation/internal/http/handlers/curation/readiness"
	"github.com/magabrotheeeer/fashion-curation/internal/http/handlers/health"
	"github.com/magabrotheeeer/fashion-curation/internal/http/handlers/interaction/interactioncreate"
	"github.com/magabrotheeeer/fashion-curation/internal/http/handlers/recommendation/curated"
	"github.com/magabrotheeeer/fashion-curation/internal/http/handlers/recommendation/explain"
	"github.com/magabrotheeeer/fashion-curation/internal/http/handlers/recommendation/list"
	"github.com/magabrotheeeer/fashion-curation/internal/http/handlers/recommendation/preview"
	"github.com/magabrotheeeer/fashion-curation/internal/http/handlers/subscriber/create"
	"github.com/magabrotheeeer/fashion-curation/internal/http/handlers/subscriber/favorites"
	"github.com/magabrotheeeer/fashion-curation/internal/http/handlers/subscriber/read"
	"github.com/magabrotheeeer/fashion-curation/internal/http/handlers/subscriber/update"
	"github.com/magabrotheeeer/fashion-curation/internal/http/middlewarectx"
	"github.com/magabrotheeeer/fashion-curation/internal/services"
	"github.com/magabrotheeeer/fashion-curation/internal/storage"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *storage.Storage,
	subscriberService *services.SubscriberService,
	recommendationService *services.RecommendationService,
	gateService *services.GateService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewarectx.RateLimitMiddleware(logger))

		r.Post("/subscribers", create.New(logger, subscriberService).ServeHTTP)
		r.Get("/subscribers/{uid}", read.New(logger, subscriberService).ServeHTTP)
		r.Put("/subscribers/{uid}", update.New(logger, subscriberService).ServeHTTP)
		r.Get("/subscribers/{uid}/favorites", favorites.New(logger, subscriberService).ServeHTTP)

		r.Get("/subscribers/{uid}/recommendations", list.New(logger, recommendationService).ServeHTTP)
		r.Get("/subscribers/{uid}/curated", curated.New(logger, recommendationService).ServeHTTP)
		r.Get("/subscribers/{uid}/products/{productID}/explanation", explain.New(logger, recommendationService).ServeHTTP)
		r.Post("/recommendations/preview", preview.New(logger, recommendationService).ServeHTTP)

		r.Post("/curation/readiness", readiness.New(logger, gateService).ServeHTTP)
		r.Post("/interactions", interactioncreate.New(logger, subscriberService).ServeHTTP)
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
