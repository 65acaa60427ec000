// Package coachingplatform предоставляет маршруты для основного приложения.
package coachingplatform

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/verastrelkova/coaching-platform/internal/http/handlers/auth/login"
	"github.com/verastrelkova/coaching-platform/internal/http/handlers/auth/register"
	bookingcancel "github.com/verastrelkova/coaching-platform/internal/http/handlers/booking/cancel"
	bookingcreate "github.com/verastrelkova/coaching-platform/internal/http/handlers/booking/create"
	bookinglist "github.com/verastrelkova/coaching-platform/internal/http/handlers/booking/list"
	contentlist "github.com/verastrelkova/coaching-platform/internal/http/handlers/content/list"
	"github.com/verastrelkova/coaching-platform/internal/http/handlers/health"
	trialstatus "github.com/verastrelkova/coaching-platform/internal/http/handlers/trial/status"
	"github.com/verastrelkova/coaching-platform/internal/http/middlewarectx"
	authservice "github.com/verastrelkova/coaching-platform/internal/services/auth"
	bookingservice "github.com/verastrelkova/coaching-platform/internal/services/booking"
	contentservice "github.com/verastrelkova/coaching-platform/internal/services/content"
	trialservice "github.com/verastrelkova/coaching-platform/internal/services/trial"
	"github.com/verastrelkova/coaching-platform/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, db *repository.Storage,
	authSvc *authservice.AuthService, trialSvc *trialservice.TrialService,
	contentSvc *contentservice.ContentService, bookingSvc *bookingservice.BookingService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	// Бронирование вызывается и со сторонних лендингов, CORS открыт.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authSvc).ServeHTTP)
		r.Post("/login", login.New(logger, authSvc).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authSvc, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/content", contentlist.New(logger, contentSvc).ServeHTTP)
			r.Get("/trial/status", trialstatus.New(logger, trialSvc).ServeHTTP)
			r.Post("/bookings", bookingcreate.New(logger, bookingSvc).ServeHTTP)
			r.Get("/bookings/list", bookinglist.New(logger, bookingSvc).ServeHTTP)
			r.Put("/bookings/{id}/cancel", bookingcancel.New(logger, bookingSvc).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
