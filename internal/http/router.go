package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/pocketplan/internal/auth"
	authHandler "github.com/MrJamesThe3rd/pocketplan/internal/http/auth"
	"github.com/MrJamesThe3rd/pocketplan/internal/http/budget"
	"github.com/MrJamesThe3rd/pocketplan/internal/http/export"
	"github.com/MrJamesThe3rd/pocketplan/internal/http/importcsv"
	"github.com/MrJamesThe3rd/pocketplan/internal/http/projection"
)

type Handlers struct {
	Auth       *authHandler.Handler
	Budget     *budget.Handler
	Projection *projection.Handler
	Import     *importcsv.Handler
	Export     *export.Handler
}

// New wires the API. Everything except login requires a bearer token issued by tokens.
func New(h Handlers, tokens *auth.Tokens, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Auth.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(tokens))

			r.Route("/budget", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Budget.Routes(r)
			})

			h.Projection.Routes(r)

			r.Route("/import", h.Import.Routes)
			r.Route("/export", h.Export.Routes)
		})
	})

	return router
}
