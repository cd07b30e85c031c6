package httpapi

import (
	"net/http"

	"infographic/internal/http/handlers"
	"infographic/internal/infra"
	"infographic/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.Get("/", app.Index)
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Route("/v1/infographics", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitPerMin))
			r.Post("/", app.Generate)
			r.Post("/regenerate", app.Regenerate)
		})
		r.Post("/relayout", app.Relayout)
		r.Get("/current", app.Current)
		r.Get("/current/view", app.View)
		r.Get("/current/export", app.Export)
	})

	return r
}
