package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ebenezer-app/ebenezer/internal/http/auth"
	"github.com/ebenezer-app/ebenezer/internal/http/export"
	"github.com/ebenezer-app/ebenezer/internal/http/importcsv"
	"github.com/ebenezer-app/ebenezer/internal/http/movement"
	"github.com/ebenezer-app/ebenezer/internal/http/summary"
	"github.com/ebenezer-app/ebenezer/internal/identity"
)

type Options struct {
	Timeout        time.Duration
	AllowedOrigins []string
}

func New(
	opts Options,
	tokens *identity.Tokens,
	authV1 *auth.Handler,
	movementsV1 *movement.Handler,
	summaryV1 *summary.Handler,
	exportV1 *export.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate(tokens))

			r.Route("/movements", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				movementsV1.Routes(r)
			})

			r.Route("/summary", summaryV1.Routes)
			r.Route("/export", exportV1.Routes)
			r.Route("/import", importV1.Routes)
		})
	})

	return router
}
