// Package router assembles the HTTP surface: middleware stack, route
// registration, and the route table the Allow header is computed from.
package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/authgate/authgate-go/internal/handler"
	"github.com/authgate/authgate-go/internal/middleware"
)

// New builds the router. The route table is populated once, after all
// routes are registered, and shared read-only with the Allow
// middleware.
func New(auth *handler.AuthHandler, sessions middleware.Authenticator) (chi.Router, error) {
	r := chi.NewRouter()
	table := middleware.NewRouteTable()

	r.Use(middleware.Logger)
	r.Use(middleware.AcceptJSON)
	r.Use(middleware.Allow(table))
	r.Use(middleware.FrameDeny)

	r.Get("/api/v1/ping", handler.HandlePing)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Guest(sessions))
		r.Post("/api/v1/auth/register", auth.HandleRegister)
		r.Post("/api/v1/auth/login", auth.HandleLogin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.TokenAuth(sessions))
		r.Get("/api/v1/logic/me", auth.HandleMe)
	})

	if err := table.Populate(r); err != nil {
		return nil, err
	}

	return r, nil
}
