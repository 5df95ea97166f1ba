package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vbazhenov/bookstore/internal/health"
)

const defaultRequestTimeout = 15 * time.Second

// NewRouter собирает chi-роутер с маршрутами API и health-пробами.
func NewRouter(handler *Handler, healthHandler *health.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultRequestTimeout))

	r.Get("/healthz", health.LivenessHandler)
	if healthHandler != nil {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Get("/ready", healthHandler.ReadinessHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/orders", handler.PlaceOrder)
		r.Get("/orders/{orderID}", handler.GetOrderDetails)
		r.Get("/books/{bookID}", handler.GetBook)
	})

	return r
}
