package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wbdash/wbdash/internal/logging"
)

// NewRouter wires every route. Everything except /health and /auth/*
// requires an authenticated caller.
func NewRouter(h *Handler, a *Authenticator, log logging.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	r.Group(func(r chi.Router) {
		r.Use(a.Middleware)

		r.Get("/user/profile", h.profile)

		r.Route("/wb-lk", func(r chi.Router) {
			r.Get("/", h.listAccounts)
			r.Post("/", h.createAccount)
			r.Post("/{id}/share", h.shareAccount)
			r.Get("/{id}/users", h.accountUsers)
			r.Delete("/{id}/unshare/{userId}", h.unshareAccount)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/orders-chart", h.ordersChart)
			r.Get("/products", h.products)
			r.Get("/stocks", h.stocks)
		})
	})

	return r
}
